// Package document selects the text nodes of an HTML document that should
// be chunked, and writes chunked runs back into the tree.
//
// A text node is skipped when any of these hold:
//
//   - an ancestor element is in the exclusion tag set (script, style, pre...)
//   - an ancestor is a generated wrapper (data-rwb-processed or word-wrapper)
//   - the text is empty or whitespace only
//   - the text looks like markup (contains "<...>")
//   - the text is also the value of one of its parent's attributes
//   - the document already carries the generated style block
//
// Comments, doctypes and other non-text nodes are never selected.
//
// A Document is not safe for concurrent mutation; callers serialize Replace
// and InjectStyle.
package document

import (
	_ "embed"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"wordbreak/model"
	"wordbreak/render"
)

//go:embed style.css
var Style string

const (
	// DefaultMarker is the class of the generated style block.
	DefaultMarker = "responsive_word_break"
	// ProcessedAttr marks the span that replaces a chunked text node.
	ProcessedAttr = "data-rwb-processed"
)

// DefaultExclude lists elements whose text is never chunked. Tags are
// matched against every ancestor, so <html> must not appear here.
var DefaultExclude = []string{
	"script", "style", "code", "pre", "title", "keyword",
	"head", "textarea", "noscript", "template", "svg", "math",
}

var (
	textExpr  = xpath.MustCompile("//text()")
	styleExpr = xpath.MustCompile("//style")
	headExpr  = xpath.MustCompile("//head")

	tagLike = regexp.MustCompile(`<[^>]+>`)
)

// Options configures node selection.
type Options struct {
	// Exclude replaces DefaultExclude when non-nil.
	Exclude []string
	// Extra tags excluded in addition to Exclude.
	Extra []string
	// Marker is the style block class; DefaultMarker when empty.
	Marker string
}

// Document is a parsed HTML tree.
type Document struct {
	root    *html.Node
	exclude map[string]bool
	marker  string
}

// Parse reads an HTML document. Malformed markup is recovered the way a
// browser would; only read errors are returned.
func Parse(r io.Reader, opts Options) (*Document, error) {
	root, err := htmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	tags := opts.Exclude
	if tags == nil {
		tags = DefaultExclude
	}
	exclude := make(map[string]bool, len(tags)+len(opts.Extra))
	for _, t := range append(append([]string(nil), tags...), opts.Extra...) {
		exclude[strings.ToLower(strings.TrimSpace(t))] = true
	}
	marker := opts.Marker
	if marker == "" {
		marker = DefaultMarker
	}
	return &Document{root: root, exclude: exclude, marker: marker}, nil
}

// Root returns the document node.
func (d *Document) Root() *html.Node { return d.root }

// Processed reports whether the generated style block is already present,
// meaning the document went through the pipeline before.
func (d *Document) Processed() bool {
	for _, n := range htmlquery.QuerySelectorAll(d.root, styleExpr) {
		if hasClass(n, d.marker) {
			return true
		}
	}
	return false
}

// Candidates returns, in document order, the text nodes eligible for
// chunking. It returns nil for an already processed document.
func (d *Document) Candidates() []*html.Node {
	if d.Processed() {
		return nil
	}
	var out []*html.Node
	for _, n := range htmlquery.QuerySelectorAll(d.root, textExpr) {
		if d.Eligible(n) {
			out = append(out, n)
		}
	}
	return out
}

// Eligible applies the per-node inclusion rules.
func (d *Document) Eligible(n *html.Node) bool {
	if n == nil || n.Type != html.TextNode || n.Parent == nil || n.Parent.Type != html.ElementNode {
		return false
	}
	if strings.TrimFunc(n.Data, unicode.IsSpace) == "" {
		return false
	}
	if tagLike.MatchString(n.Data) {
		return false
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type != html.ElementNode {
			continue
		}
		if d.exclude[p.Data] || hasAttr(p, ProcessedAttr) || hasClass(p, render.WrapperClass) {
			return false
		}
	}
	return !isAttrValue(n.Parent, n.Data)
}

// Replace swaps the text node n for a marked span holding the rendered
// chunks. Chunks without any word leave n in place; it reports whether the
// tree changed.
func (d *Document) Replace(n *html.Node, chunks []model.Chunk) bool {
	if n == nil || n.Parent == nil || !render.Wraps(chunks) {
		return false
	}
	wrapper := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Span,
		Data:     "span",
		Attr:     []html.Attribute{{Key: ProcessedAttr, Val: "true"}},
	}
	for _, c := range render.Nodes(chunks) {
		wrapper.AppendChild(c)
	}
	parent := n.Parent
	parent.InsertBefore(wrapper, n)
	parent.RemoveChild(n)
	return true
}

// InjectStyle appends the generated style block to <head> unless it is
// already present. It reports whether the tree changed.
func (d *Document) InjectStyle() bool {
	if d.Processed() {
		return false
	}
	head := htmlquery.QuerySelector(d.root, headExpr)
	if head == nil {
		return false
	}
	style := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Style,
		Data:     "style",
		Attr:     []html.Attribute{{Key: "class", Val: d.marker}},
	}
	style.AppendChild(&html.Node{Type: html.TextNode, Data: Style})
	head.AppendChild(style)
	return true
}

// Render serializes the tree.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return true
		}
	}
	return false
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "class" {
			for _, f := range strings.Fields(a.Val) {
				if f == class {
					return true
				}
			}
		}
	}
	return false
}

// isAttrValue reports whether text is the value of one of n's attributes,
// or one of the space-separated tokens of a value.
func isAttrValue(n *html.Node, text string) bool {
	for _, a := range n.Attr {
		if a.Val == text {
			return true
		}
		for _, f := range strings.Fields(a.Val) {
			if f == text {
				return true
			}
		}
	}
	return false
}
