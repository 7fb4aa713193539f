package tokenize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"wordbreak/chunk"
	"wordbreak/model"
)

// Token represents a token / morpheme produced by the tokenizer.
type Token = model.Token

var (
	// ErrUnknownDictionary is returned for a dictionary name other than
	// "ipa" or "uni".
	ErrUnknownDictionary = errors.New("unknown dictionary")
	// ErrUnknownMode is returned for a mode name other than "normal",
	// "search" or "extended".
	ErrUnknownMode = errors.New("unknown tokenize mode")
)

// Dictionary names accepted by New.
const (
	IPA    = "ipa"
	UniDic = "uni"
)

// Mode names accepted by New.
const (
	Normal   = "normal"
	Search   = "search"
	Extended = "extended"
)

// LoadDict returns the embedded kagome dictionary for name.
func LoadDict(name string) (*dict.Dict, error) {
	switch name {
	case IPA, "":
		return ipa.Dict(), nil
	case UniDic:
		return uni.Dict(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDictionary, name)
}

func parseMode(name string) (tokenizer.TokenizeMode, error) {
	switch name {
	case Normal, "":
		return tokenizer.Normal, nil
	case Search:
		return tokenizer.Search, nil
	case Extended:
		return tokenizer.Extended, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

// Kagome is a tokenizer backed by kagome. It is safe for concurrent use.
type Kagome struct {
	kg   *tokenizer.Tokenizer
	mode tokenizer.TokenizeMode
}

// New builds a kagome tokenizer over the named dictionary ("ipa" or "uni")
// using the named segmentation mode ("normal", "search" or "extended").
// Empty names select the defaults, ipa and normal.
func New(dictName, modeName string) (*Kagome, error) {
	d, err := LoadDict(dictName)
	if err != nil {
		return nil, err
	}
	mode, err := parseMode(modeName)
	if err != nil {
		return nil, err
	}
	// omit BOS/EOS so every token carries a surface
	kg, err := tokenizer.New(d, tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("initializing kagome: %w", err)
	}
	return &Kagome{kg: kg, mode: mode}, nil
}

// Tokenize segments text into tokens whose surfaces, concatenated, are text.
func (k *Kagome) Tokenize(ctx context.Context, text string) ([]Token, error) {
	if text == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return convertKagomeTokens(text, k.kg.Analyze(text, k.mode)), nil
}

// convertKagomeTokens maps kagome tokens onto text. Any stretch of text that
// no kagome surface accounts for is emitted as a synthetic token, so the
// result always reconstructs text.
func convertKagomeTokens(text string, ktoks []tokenizer.Token) []Token {
	out := make([]Token, 0, len(ktoks))
	rest := text
	for _, kt := range ktoks {
		if kt.Class == tokenizer.DUMMY || kt.Surface == "" {
			continue
		}
		idx := strings.Index(rest, kt.Surface)
		if idx < 0 {
			break
		}
		if idx > 0 {
			out = append(out, gapToken(rest[:idx]))
		}
		pos := kt.POS()
		out = append(out, Token{
			Surface:  kt.Surface,
			Category: Categorize(kt.Surface, pos),
			POS:      strings.Join(pos, ","),
		})
		rest = rest[idx+len(kt.Surface):]
	}
	if rest != "" {
		out = append(out, gapToken(rest))
	}
	return out
}

func gapToken(s string) Token {
	return Token{Surface: s, Category: Categorize(s, nil)}
}

// Categorize maps a surface and its part-of-speech hierarchy, as produced by
// the IPA or UniDic dictionaries, to a chunker category.
func Categorize(surface string, pos []string) model.Category {
	switch {
	case chunk.IsSpaceSurface(surface):
		return model.Whitespace
	case chunk.IsLatinSurface(surface):
		return model.LatinOrDigit
	case len(pos) == 0:
		return model.ContentWord
	}
	switch pos[0] {
	case "助詞", "助動詞":
		return model.AttachingParticle
	case "記号", "補助記号", "句点", "読点":
		for _, p := range pos[1:] {
			if p == "空白" {
				return model.Whitespace
			}
		}
		return model.Symbol
	case "空白":
		return model.Whitespace
	}
	return model.ContentWord
}
