// Package text implements the minimal free-text normaliser.
package text

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/custodia-labs/figprep/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.TextNormaliser = (*Normaliser)(nil)

// URLPlaceholder replaces every URL token. It is reserved: case folding
// leaves it intact so that normalisation stays idempotent.
const URLPlaceholder = "<URL>"

// urlPattern matches http(s) and www tokens up to the next whitespace.
// The class mirrors IsSpace so tokens end where collapsing would split them.
var urlPattern = regexp.MustCompile(`(?:http|www)[^\s\x{0b}\x{1c}-\x{1f}\x{85}\p{Z}]+`)

// Normaliser lower-cases, trims, masks URLs and collapses whitespace.
type Normaliser struct{}

// New creates a new text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise returns the cleaned form of text. Nil yields "".
func (n *Normaliser) Normalise(text *string) string {
	if text == nil {
		return ""
	}
	return Clean(*text)
}

// Clean applies, in order: Unicode lower-casing, trimming, URL masking and
// whitespace collapsing.
func Clean(s string) string {
	s = lower(s)
	s = strings.TrimFunc(s, IsSpace)
	s = urlPattern.ReplaceAllLiteralString(s, URLPlaceholder)
	return strings.Join(strings.FieldsFunc(s, IsSpace), " ")
}

// lower case-folds s except for placeholder occurrences.
func lower(s string) string {
	// A Caser is stateful and must not be shared.
	caser := cases.Lower(language.Und)
	parts := strings.Split(s, URLPlaceholder)
	for i, p := range parts {
		parts[i] = caser.String(p)
	}
	return strings.Join(parts, URLPlaceholder)
}

// IsSpace reports whitespace as the normaliser sees it, including the ASCII
// separators 0x1c-0x1f.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
