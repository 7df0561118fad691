package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNoFonts is returned when a font group is created without fonts.
	ErrNoFonts = errors.New("text: no fonts")

	// ErrFontNotFound is returned by MapProvider for unknown names.
	ErrFontNotFound = errors.New("text: font not found")
)
