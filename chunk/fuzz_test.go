package chunk

import (
	"testing"
	"unicode/utf8"

	"wordbreak/model"
)

// runeTokens splits s into one token per rune, cycling through categories so
// every transition rule is exercised.
func runeTokens(s string) []model.Token {
	var tokens []model.Token
	i := 0
	for _, r := range s {
		tokens = append(tokens, model.Token{
			Surface:  string(r),
			Category: model.Category(i % 5),
		})
		i++
	}
	return tokens
}

func FuzzLatin(f *testing.F) {
	f.Add("hello world")
	f.Add("")
	f.Add("  leading and trailing  ")
	f.Add("tab\tnew\nline")
	f.Add("mixed 日本語 text")

	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}
		verifyChunks(t, s, Latin(s))
	})
}

func FuzzJapanese(f *testing.F) {
	f.Add("価格は100円です")
	f.Add("")
	f.Add("猫は 可愛い。")
	f.Add("Go言語 1.22 がリリースされた")
	f.Add("　全角スペース")
	f.Add("は")

	f.Fuzz(func(t *testing.T, s string) {
		if !utf8.ValidString(s) {
			return
		}
		chunks := Japanese(s, runeTokens(s))
		verifyChunks(t, s, chunks)
		for i, c := range chunks {
			if c.Kind == model.Space && !IsSpaceSurface(c.Text) {
				t.Fatalf("chunk %d: Space chunk %q holds non-space text", i, c.Text)
			}
		}
	})
}
