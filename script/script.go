// Package script decides, per text run, whether the run is routed through
// morpheme chunking or Latin chunking.
package script

import "wordbreak/model"

// IsKanji reports whether r is in the CJK Unified Ideographs block.
func IsKanji(r rune) bool {
	return r >= 0x4E00 && r <= 0x9FFF
}

// IsKana returns true if rune is Hiragana or Katakana
func IsKana(r rune) bool {
	return (r >= 0x3040 && r <= 0x309F) || (r >= 0x30A0 && r <= 0x30FF)
}

// IsLatin reports whether r is an ASCII letter or digit.
func IsLatin(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Counts returns the number of Japanese runes (kana and kanji) and the number
// of ASCII letters and digits in run.
func Counts(run string) (japanese, latin int) {
	for _, r := range run {
		switch {
		case IsKana(r) || IsKanji(r):
			japanese++
		case IsLatin(r):
			latin++
		}
	}
	return japanese, latin
}

// Classify routes run to Japanese when it holds strictly more Japanese runes
// than ASCII letters and digits. Ties go to Latin.
func Classify(run string) model.Verdict {
	japanese, latin := Counts(run)
	if japanese > latin {
		return model.Japanese
	}
	return model.Latin
}
