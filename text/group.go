package text

import (
	"fmt"
	"math"

	"github.com/go-text/typesetting/language"

	"github.com/gogpu/ttcanvas/sfnt"
)

// FontGroup is an ordered list of sub-fonts used together for lookup.
type FontGroup struct {
	fonts []subFont
	faces map[faceKey]*Face
}

type subFont struct {
	font *sfnt.Font
	lang language.Language
}

type faceKey struct {
	size float64
	cfg  faceConfig
}

// NewFontGroup parses every source. The first source provides the
// group's line metrics. Parse failures are returned wrapped, so
// errors.As finds the *sfnt.FormatError.
func NewFontGroup(sources ...Source) (*FontGroup, error) {
	if len(sources) == 0 {
		return nil, ErrNoFonts
	}
	g := &FontGroup{
		fonts: make([]subFont, 0, len(sources)),
		faces: make(map[faceKey]*Face),
	}
	for i, src := range sources {
		if len(src.Data) == 0 {
			return nil, fmt.Errorf("text: font %d: %w", i, ErrEmptyFontData)
		}
		data := make([]byte, len(src.Data))
		copy(data, src.Data)

		f, err := sfnt.ParseCollection(data, src.Index)
		if err != nil {
			return nil, fmt.Errorf("text: font %d: %w", i, err)
		}
		g.fonts = append(g.fonts, subFont{font: f, lang: src.Language})
		Logger().Debug("text: font loaded",
			"family", f.Family(), "glyphs", f.NumGlyphs(), "language", string(src.Language))
	}
	return g, nil
}

// LoadFontGroup fetches each referenced font from p and builds a group.
func LoadFontGroup(p Provider, refs ...FontRef) (*FontGroup, error) {
	if len(refs) == 0 {
		return nil, ErrNoFonts
	}
	sources := make([]Source, len(refs))
	for i, ref := range refs {
		data, err := p.FontData(ref.Name)
		if err != nil {
			return nil, fmt.Errorf("text: load font %q: %w", ref.Name, err)
		}
		sources[i] = Source{Data: data, Index: ref.Index, Language: ref.Language}
	}
	return NewFontGroup(sources...)
}

// Len returns the number of sub-fonts.
func (g *FontGroup) Len() int { return len(g.fonts) }

// Font returns sub-font i.
func (g *FontGroup) Font(i int) *sfnt.Font { return g.fonts[i].font }

// Language returns the language tag of sub-font i.
func (g *FontGroup) Language(i int) language.Language { return g.fonts[i].lang }

// Face returns the face of the group at size pixels per em. Calls with the
// same size and options return the same Face, so its glyph cache is shared.
func (g *FontGroup) Face(size float64, opts ...FaceOption) *Face {
	if math.IsNaN(size) || size < 0 {
		size = 0
	}
	cfg := defaultFaceConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	key := faceKey{size: size, cfg: cfg}
	if f, ok := g.faces[key]; ok {
		return f
	}
	f := newFace(g, size, cfg)
	g.faces[key] = f
	Logger().Debug("text: face created", "size", size, "subpixel", cfg.subpixel)
	return f
}

// Close drops every face and its cached glyphs.
func (g *FontGroup) Close() {
	clear(g.faces)
}

// lookup resolves r to a sub-font and glyph. The first pass considers only
// sub-fonts whose language matches lang, the second pass all sub-fonts.
func (g *FontGroup) lookup(r rune, lang language.Language) (int, sfnt.GlyphIndex, bool) {
	if lang != "" {
		primary := lang.Primary()
		for i, sf := range g.fonts {
			if sf.lang == "" || sf.lang.Primary() != primary {
				continue
			}
			if gid := sf.font.GlyphIndex(r); gid != 0 {
				return i, gid, true
			}
		}
	}
	for i, sf := range g.fonts {
		if gid := sf.font.GlyphIndex(r); gid != 0 {
			return i, gid, true
		}
	}
	return 0, 0, false
}
