// Package chunk groups text into wrap-safe chunks.
//
// Two policies are provided:
//
//   - Latin: splits a run at whitespace, fusing each whitespace span onto the
//     word before it.
//   - Japanese: merges a token stream from a morphological tokenizer so that
//     particles, auxiliaries and punctuation stay attached to the preceding
//     content word. Latin and numeric sub-runs inside the stream are handed
//     to the Latin policy.
//
// For every run R both policies guarantee that concatenating the Text of the
// returned chunks yields R, and that no chunk is empty.
//
// All functions are pure and safe for concurrent use.
package chunk

import (
	"unicode"
	"unicode/utf8"

	"wordbreak/model"
)

// Latin splits run into alternating word and whitespace spans. A word
// followed by whitespace absorbs it; whitespace with no word before it (only
// possible at the start of the run) becomes a Space chunk.
func Latin(run string) []model.Chunk {
	if run == "" {
		return nil
	}
	var chunks []model.Chunk
	pos := 0
	for pos < len(run) {
		end := spanEnd(run, pos)
		r, _ := utf8.DecodeRuneInString(run[pos:])
		if unicode.IsSpace(r) {
			chunks = append(chunks, model.Chunk{Text: run[pos:end], Kind: model.Space})
			pos = end
			continue
		}
		if end < len(run) {
			end = spanEnd(run, end)
		}
		chunks = append(chunks, model.Chunk{Text: run[pos:end], Kind: model.Word})
		pos = end
	}
	return chunks
}

// spanEnd returns the byte offset just past the maximal run of runes starting
// at pos that share the whitespace-ness of the rune at pos.
func spanEnd(s string, pos int) int {
	first, size := utf8.DecodeRuneInString(s[pos:])
	space := unicode.IsSpace(first)
	pos += size
	for pos < len(s) {
		r, size := utf8.DecodeRuneInString(s[pos:])
		if unicode.IsSpace(r) != space {
			break
		}
		pos += size
	}
	return pos
}
