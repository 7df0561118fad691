// Package sfnt parses TrueType fonts and TrueType collections.
//
// The parser works on a byte slice that is already resident in memory and
// performs no I/O. It decodes the tables needed to map characters to glyphs
// and to extract glyph outlines:
//
//   - head, hhea, maxp, hmtx: font-wide and per-glyph metrics
//   - name, OS/2: naming and vertical metrics
//   - cmap: character to glyph mapping (formats 0, 4, 12 and 13)
//   - loca, glyf: simple and composite glyph outlines
//
// # Example usage
//
//	f, err := sfnt.Parse(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g, err := f.LoadGlyph(f.GlyphIndex('A'))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g.Outline.Draw(pen)
//
// Every malformed input is reported as a *FormatError. A character without
// a mapping is not an error: GlyphIndex returns 0, the missing glyph.
//
// A Font is immutable after parsing and may be shared between goroutines.
// Fonts with CFF outlines (the OTTO signature) are rejected.
package sfnt
