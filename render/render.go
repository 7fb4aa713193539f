// Package render turns chunks into markup.
//
// Word chunks are wrapped in an inline, whitespace-preserving span; Space
// chunks are written as escaped text. Removing the wrapper markup from the
// output and unescaping it gives back the original run.
package render

import (
	"strings"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"wordbreak/model"
)

const (
	// WrapperClass marks a generated chunk wrapper.
	WrapperClass = "word-wrapper"
	// WrapperStyle keeps whitespace fused into a chunk visible.
	WrapperStyle = "white-space: pre-wrap;"
)

const openTag = `<span class="` + WrapperClass + `" style="` + WrapperStyle + `">`

// Markup renders chunks as an HTML fragment.
func Markup(chunks []model.Chunk) string {
	var b strings.Builder
	for _, c := range chunks {
		if c.Kind == model.Word {
			b.WriteString(openTag)
			b.WriteString(xhtml.EscapeString(c.Text))
			b.WriteString("</span>")
			continue
		}
		b.WriteString(xhtml.EscapeString(c.Text))
	}
	return b.String()
}

// Nodes builds the same fragment as Markup as detached DOM nodes.
func Nodes(chunks []model.Chunk) []*xhtml.Node {
	nodes := make([]*xhtml.Node, 0, len(chunks))
	for _, c := range chunks {
		text := &xhtml.Node{Type: xhtml.TextNode, Data: c.Text}
		if c.Kind != model.Word {
			nodes = append(nodes, text)
			continue
		}
		span := &xhtml.Node{
			Type:     xhtml.ElementNode,
			DataAtom: atom.Span,
			Data:     "span",
			Attr: []xhtml.Attribute{
				{Key: "class", Val: WrapperClass},
				{Key: "style", Val: WrapperStyle},
			},
		}
		span.AppendChild(text)
		nodes = append(nodes, span)
	}
	return nodes
}

// Wraps reports whether rendering chunks would produce at least one wrapper.
func Wraps(chunks []model.Chunk) bool {
	for _, c := range chunks {
		if c.Kind == model.Word {
			return true
		}
	}
	return false
}
