// Package text rasterizes and caches glyph bitmaps.
//
// The pipeline separates heavyweight and lightweight objects:
//
//   - FontGroup: an ordered list of parsed fonts, each optionally tagged
//     with a language. It owns the fonts and every Face created from them.
//   - Face: the group at one pixel size. It resolves runes to glyphs and
//     caches the rasterized bitmaps for its lifetime.
//
// # Example usage
//
//	group, err := text.NewFontGroup(
//	    text.Source{Data: latin, Language: language.NewLanguage("en")},
//	    text.Source{Data: cjk, Language: language.NewLanguage("ja")},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	face := group.Face(16)
//	g, err := face.GlyphOrFallback('A', language.NewLanguage("en"))
//
// Rune lookup first tries the sub-fonts whose language matches the caller's,
// then all sub-fonts in order. A rune no sub-font maps is a soft miss:
// Glyph returns (nil, nil) and GlyphOrFallback substitutes a space.
//
// Bitmaps are LCD-filtered by default: the outline is rasterized at three
// times the horizontal resolution and each output pixel receives one
// filtered subpixel per color channel. WithSubpixel(false) selects plain
// grayscale coverage.
//
// Nothing in this package is safe for concurrent use; a FontGroup and its
// faces belong to one goroutine at a time.
package text
