package chunk

import (
	"regexp"
	"strings"
	"unicode"

	"wordbreak/model"
)

// latinSurface matches tokens that are exempt from morpheme grouping:
// ASCII letters, digits and the symbols that commonly appear inside
// identifiers, numbers and URLs.
var latinSurface = regexp.MustCompile(`^[a-zA-Z0-9.,\-_!@#$%^&*()+~?=]+$`)

// IsLatinSurface reports whether a token surface belongs to an embedded
// Latin or numeric sub-run.
func IsLatinSurface(s string) bool {
	return latinSurface.MatchString(s)
}

// IsSpaceSurface reports whether s is non-empty and made only of whitespace.
func IsSpaceSurface(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Passthrough returns run as a single unwrapped chunk. It is the result used
// when the tokens for a run cannot be trusted.
func Passthrough(run string) []model.Chunk {
	if run == "" {
		return nil
	}
	return []model.Chunk{{Text: run, Kind: model.Space}}
}

// Japanese merges the tokens of run into chunks.
//
// If tokens is empty for a non-empty run, or the token surfaces do not
// reconstruct run, Japanese returns Passthrough(run) instead of guessing.
func Japanese(run string, tokens []model.Token) []model.Chunk {
	if run == "" {
		return nil
	}
	if !reconstructs(run, tokens) {
		return Passthrough(run)
	}
	m := merger{}
	for _, tk := range tokens {
		m.feed(tk)
	}
	m.finish()
	return m.out
}

func reconstructs(run string, tokens []model.Token) bool {
	if len(tokens) == 0 {
		return false
	}
	rest := run
	for _, tk := range tokens {
		if tk.Surface == "" {
			continue
		}
		if !strings.HasPrefix(rest, tk.Surface) {
			return false
		}
		rest = rest[len(tk.Surface):]
	}
	return rest == ""
}

// merger carries the chunking state across one token stream.
type merger struct {
	out     []model.Chunk
	current strings.Builder
	latin   strings.Builder
	inLatin bool
}

func (m *merger) feed(tk model.Token) {
	s := tk.Surface
	if s == "" {
		return
	}
	switch {
	case IsLatinSurface(s):
		m.flushCurrent()
		m.latin.WriteString(s)
		m.inLatin = true
	case IsSpaceSurface(s):
		switch {
		case m.inLatin:
			m.latin.WriteString(s)
		case m.current.Len() > 0:
			m.current.WriteString(s)
			m.flushCurrent()
		default:
			m.out = append(m.out, model.Chunk{Text: s, Kind: model.Space})
		}
	default:
		if m.inLatin {
			m.flushLatin()
		}
		if tk.Category.Attaches() {
			m.current.WriteString(s)
			return
		}
		m.flushCurrent()
		m.current.WriteString(s)
	}
}

func (m *merger) finish() {
	m.flushLatin()
	m.flushCurrent()
}

func (m *merger) flushCurrent() {
	if m.current.Len() == 0 {
		return
	}
	m.out = append(m.out, model.Chunk{Text: m.current.String(), Kind: model.Word})
	m.current.Reset()
}

func (m *merger) flushLatin() {
	if m.latin.Len() > 0 {
		m.out = append(m.out, Latin(m.latin.String())...)
		m.latin.Reset()
	}
	m.inLatin = false
}
