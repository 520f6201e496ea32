// Package nlp implements the text-understanding pipeline primitives:
// input normalization, entity extraction, input-type detection, and
// keyword-based intent classification.
package nlp

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizedText is lowercase, whitespace-collapsed text derived from raw
// input. It is the only form the classifiers and extractors accept.
type NormalizedText string

var lowerCaser = cases.Lower(language.English)

// Normalize cleans raw input into NormalizedText:
// Unicode NFC normalization, whitespace collapsing, removal of special
// characters (basic punctuation survives), and lowercasing.
func Normalize(raw string) NormalizedText {
	text := norm.NFC.String(raw)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case isAllowedRune(r):
			b.WriteRune(r)
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		}
	}

	text = strings.Join(strings.Fields(b.String()), " ")
	return NormalizedText(lowerCaser.String(text))
}

// isAllowedRune keeps word characters, whitespace and basic punctuation,
// mirroring the cleaning rule the response pipeline was specified with.
func isAllowedRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == ' ', r == '_':
		return true
	case r == '.', r == '?', r == '!', r == ',', r == ';', r == ':', r == '-', r == '\'', r == '"', r == '/':
		return true
	case r > 127:
		// Non-ASCII letters pass through; translation happens upstream.
		return !isSymbolRune(r)
	}
	return false
}

func isSymbolRune(r rune) bool {
	// Strip emoji and pictographs; keep letters in any script.
	return (r >= 0x1F000 && r <= 0x1FAFF) || (r >= 0x2600 && r <= 0x27BF)
}

// String returns the underlying string.
func (t NormalizedText) String() string {
	return string(t)
}

// Words splits the normalized text on spaces. Empty text yields nil.
func (t NormalizedText) Words() []string {
	if t == "" {
		return nil
	}
	return strings.Split(string(t), " ")
}
