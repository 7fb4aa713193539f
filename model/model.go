package model

import (
	"encoding/json"
	"fmt"
)

// Category is the coarse grammatical class of a token as seen by the chunker.
type Category int

const (
	ContentWord Category = iota
	AttachingParticle
	Symbol
	Whitespace
	LatinOrDigit
)

var categoryNames = [...]string{
	ContentWord:       "content_word",
	AttachingParticle: "attaching_particle",
	Symbol:            "symbol",
	Whitespace:        "whitespace",
	LatinOrDigit:      "latin_or_digit",
}

func (c Category) String() string {
	if int(c) >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// MarshalJSON encodes the category as its name.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// Attaches reports whether a token of this category fuses to the preceding
// content word instead of starting a chunk of its own.
func (c Category) Attaches() bool {
	return c == AttachingParticle || c == Symbol
}

// Token represents a token / morpheme produced by the tokenizer.
type Token struct {
	Surface  string   `json:"surface"`
	Category Category `json:"category"`
	POS      string   `json:"pos,omitempty"`
}

// Kind tells whether a chunk is a wrap-safe word or bare whitespace.
type Kind int

const (
	Word Kind = iota
	Space
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Space:
		return "space"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalJSON encodes the kind as its name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Chunk is one unit of output. Concatenating the Text of every chunk
// produced for a run gives back the run.
type Chunk struct {
	Text string `json:"text"`
	Kind Kind   `json:"kind"`
}

// Verdict is the routing decision made once per run.
type Verdict int

const (
	Latin Verdict = iota
	Japanese
)

func (v Verdict) String() string {
	switch v {
	case Latin:
		return "latin"
	case Japanese:
		return "japanese"
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

// MarshalJSON encodes the verdict as its name.
func (v Verdict) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// Texts returns the text of each chunk, in order.
func Texts(chunks []Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Text
	}
	return out
}
