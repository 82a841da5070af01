package dataprocessing

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer standardizes identifier and name fields so that records
// referring to the same person or program can be compared across sources.
// All methods are pure and idempotent: normalizing an already-normalized
// value returns the same value.
type Normalizer struct {
	stripMarks transform.Transformer
}

// defaultNormalizer backs the package-level classification helpers.
var defaultNormalizer = NewNormalizer()

// NewNormalizer creates a normalizer instance.
func NewNormalizer() *Normalizer {
	// NFD decomposition followed by removal of nonspacing marks strips
	// diacritics; NFC recomposes whatever is left.
	return &Normalizer{
		stripMarks: transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
	}
}

// Text normalizes a free-text field: trims, collapses inner whitespace,
// removes diacritics and upper-cases.
func (n *Normalizer) Text(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if stripped, _, err := transform.String(n.stripMarks, s); err == nil {
		s = stripped
	}
	return strings.ToUpper(s)
}

// Identifier canonicalizes an identifier field. Numeric identifiers lose
// separators and leading zeros so that "  01.023.456 " and "1023456"
// compare equal; non-numeric identifiers fall back to Text normalization.
func (n *Normalizer) Identifier(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var digits strings.Builder
	numeric := true
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == '.' || r == ',' || r == '-' || r == ' ':
			// separators seen in registry exports
		default:
			numeric = false
		}
		if !numeric {
			break
		}
	}

	if numeric && digits.Len() > 0 {
		return strings.TrimLeft(digits.String(), "0")
	}
	return n.Text(s)
}

// IsPlausibleIdentifier reports whether a cell value looks like a national
// ID or student code: all digits within the institutional length bounds.
func IsPlausibleIdentifier(s string, minDigits, maxDigits int) bool {
	s = strings.TrimSpace(s)
	if len(s) < minDigits || len(s) > maxDigits {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
