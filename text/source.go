package text

import (
	"fmt"

	"github.com/go-text/typesetting/language"
)

// Provider supplies raw font files by name.
type Provider interface {
	FontData(name string) ([]byte, error)
}

// MapProvider is an in-memory Provider.
type MapProvider map[string][]byte

// FontData implements Provider.
func (m MapProvider) FontData(name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFontNotFound, name)
	}
	return data, nil
}

// Source describes one sub-font of a FontGroup.
type Source struct {
	// Data is the font file. It is copied by NewFontGroup.
	Data []byte

	// Index selects a font inside a collection file.
	Index int

	// Language restricts the first lookup pass to callers asking for
	// this language. The zero value matches only in the second pass.
	Language language.Language
}

// FontRef names a sub-font to be fetched from a Provider.
type FontRef struct {
	Name     string
	Index    int
	Language language.Language
}
