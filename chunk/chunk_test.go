package chunk

import (
	"reflect"
	"strings"
	"testing"

	"wordbreak/model"
)

func cw(s string) model.Token { return model.Token{Surface: s, Category: model.ContentWord} }
func pt(s string) model.Token { return model.Token{Surface: s, Category: model.AttachingParticle} }
func sy(s string) model.Token { return model.Token{Surface: s, Category: model.Symbol} }
func ws(s string) model.Token { return model.Token{Surface: s, Category: model.Whitespace} }
func ld(s string) model.Token { return model.Token{Surface: s, Category: model.LatinOrDigit} }

func word(s string) model.Chunk  { return model.Chunk{Text: s, Kind: model.Word} }
func space(s string) model.Chunk { return model.Chunk{Text: s, Kind: model.Space} }

func joinTokens(tokens []model.Token) string {
	var b strings.Builder
	for _, tk := range tokens {
		b.WriteString(tk.Surface)
	}
	return b.String()
}

// verifyChunks checks that chunks reconstruct run and that none is empty.
func verifyChunks(t *testing.T, run string, chunks []model.Chunk) {
	t.Helper()
	var b strings.Builder
	for i, c := range chunks {
		if c.Text == "" {
			t.Fatalf("chunk %d is empty", i)
		}
		b.WriteString(c.Text)
	}
	if got := b.String(); got != run {
		t.Fatalf("chunks reconstruct %q, want %q", got, run)
	}
}

func TestLatin(t *testing.T) {
	cases := []struct {
		in   string
		want []model.Chunk
	}{
		{"", nil},
		{"hello", []model.Chunk{word("hello")}},
		{"hello world", []model.Chunk{word("hello "), word("world")}},
		{"hello  world ", []model.Chunk{word("hello  "), word("world ")}},
		{"  lead", []model.Chunk{space("  "), word("lead")}},
		{" ", []model.Chunk{space(" ")}},
		{"a\tb\nc", []model.Chunk{word("a\t"), word("b\n"), word("c")}},
		{"x　y", []model.Chunk{word("x　"), word("y")}},
		{"e.g. foo-bar", []model.Chunk{word("e.g. "), word("foo-bar")}},
		{"猫", []model.Chunk{word("猫")}},
	}
	for _, tc := range cases {
		got := Latin(tc.in)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Latin(%q) = %v, want %v", tc.in, got, tc.want)
		}
		verifyChunks(t, tc.in, got)
	}
}

func TestJapanese(t *testing.T) {
	cases := []struct {
		name   string
		tokens []model.Token
		want   []model.Chunk
	}{
		{
			name:   "particle fusion",
			tokens: []model.Token{cw("猫"), pt("は"), cw("可愛い")},
			want:   []model.Chunk{word("猫は"), word("可愛い")},
		},
		{
			name:   "leading particle",
			tokens: []model.Token{pt("は"), cw("猫")},
			want:   []model.Chunk{word("は"), word("猫")},
		},
		{
			name:   "particles only",
			tokens: []model.Token{pt("は"), pt("が"), sy("。")},
			want:   []model.Chunk{word("はが。")},
		},
		{
			name:   "number inside japanese",
			tokens: []model.Token{cw("価格"), pt("は"), ld("100"), cw("円"), pt("です")},
			want:   []model.Chunk{word("価格は"), word("100"), word("円です")},
		},
		{
			name:   "latin run with spaces",
			tokens: []model.Token{cw("これ"), pt("は"), ld("Go"), ws(" "), ld("lang"), ws(" "), cw("です")},
			want:   []model.Chunk{word("これは"), word("Go "), word("lang "), word("です")},
		},
		{
			name:   "space after word travels with it",
			tokens: []model.Token{cw("猫"), pt("は"), ws(" "), cw("犬")},
			want:   []model.Chunk{word("猫は "), word("犬")},
		},
		{
			name:   "leading space",
			tokens: []model.Token{ws("　"), cw("猫")},
			want:   []model.Chunk{space("　"), word("猫")},
		},
		{
			name:   "punctuation attaches",
			tokens: []model.Token{cw("雨"), pt("が"), cw("降る"), sy("。"), cw("傘"), pt("を"), cw("持つ")},
			want:   []model.Chunk{word("雨が"), word("降る。"), word("傘を"), word("持つ")},
		},
		{
			name:   "particle after latin run starts a chunk",
			tokens: []model.Token{ld("ABC"), pt("の"), cw("本")},
			want:   []model.Chunk{word("ABC"), word("の"), word("本")},
		},
		{
			name:   "trailing latin run",
			tokens: []model.Token{cw("版"), ld("v1.2"), ws(" "), ld("beta")},
			want:   []model.Chunk{word("版"), word("v1.2 "), word("beta")},
		},
		{
			name:   "latin surface wins over category",
			tokens: []model.Token{cw("猫"), pt("!")},
			want:   []model.Chunk{word("猫"), word("!")},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			run := joinTokens(tc.tokens)
			got := Japanese(run, tc.tokens)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Japanese(%q) = %v, want %v", run, got, tc.want)
			}
			verifyChunks(t, run, got)
		})
	}
}

func TestJapaneseNumberNeverFused(t *testing.T) {
	tokens := []model.Token{cw("価格"), pt("は"), ld("100"), cw("円"), pt("です")}
	for _, c := range Japanese("価格は100円です", tokens) {
		if strings.Contains(c.Text, "100") && c.Text != "100" {
			t.Fatalf("number fused into %q", c.Text)
		}
	}
}

func TestJapaneseEmpty(t *testing.T) {
	if got := Japanese("", nil); got != nil {
		t.Fatalf("Japanese(\"\") = %v, want nil", got)
	}
}

func TestJapanesePassthrough(t *testing.T) {
	cases := []struct {
		name   string
		run    string
		tokens []model.Token
	}{
		{"no tokens", "猫は可愛い", nil},
		{"missing surface", "猫は可愛い", []model.Token{cw("猫"), cw("可愛い")}},
		{"extra surface", "猫", []model.Token{cw("猫"), pt("は")}},
		{"reordered", "猫は", []model.Token{pt("は"), cw("猫")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Japanese(tc.run, tc.tokens)
			want := []model.Chunk{space(tc.run)}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("Japanese(%q) = %v, want %v", tc.run, got, want)
			}
		})
	}
}

func TestIsLatinSurface(t *testing.T) {
	for _, s := range []string{"abc", "100", "3.14", "a-b_c", "e@x.com", "(1+2)=3", "~?"} {
		if !IsLatinSurface(s) {
			t.Errorf("IsLatinSurface(%q) = false", s)
		}
	}
	for _, s := range []string{"", " ", "a b", "猫", "ａｂｃ", "/path", "é"} {
		if IsLatinSurface(s) {
			t.Errorf("IsLatinSurface(%q) = true", s)
		}
	}
}

func TestIsSpaceSurface(t *testing.T) {
	for _, s := range []string{" ", "\t\n", "　", " "} {
		if !IsSpaceSurface(s) {
			t.Errorf("IsSpaceSurface(%q) = false", s)
		}
	}
	for _, s := range []string{"", "a", " a "} {
		if IsSpaceSurface(s) {
			t.Errorf("IsSpaceSurface(%q) = true", s)
		}
	}
}
