package driven

// TextNormaliser cleans free text for downstream modelling.
// Implementations must be pure and idempotent.
type TextNormaliser interface {
	// Normalise returns the cleaned form of text.
	// A nil text (absent or non-string value) yields the empty string.
	Normalise(text *string) string
}
