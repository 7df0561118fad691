package text

import (
	"github.com/go-text/typesetting/language"

	"github.com/gogpu/ttcanvas/internal/path"
	"github.com/gogpu/ttcanvas/internal/raster"
	"github.com/gogpu/ttcanvas/sfnt"
	"github.com/gogpu/ttcanvas/texture"
)

// Glyph is a rasterized glyph. All measurements are in device pixels.
type Glyph struct {
	// Index is the glyph index within sub-font Font of the group.
	Index sfnt.GlyphIndex
	Font  int

	// Advance is the horizontal pen advance.
	Advance float64

	// XOffset is the offset from the pen position to the left edge of
	// Bitmap, YOffset the offset from the baseline to its top edge
	// (negative above the baseline).
	XOffset int
	YOffset int

	Bitmap *texture.RGBA
}

// Stats counts glyph cache activity of a Face.
type Stats struct {
	// Hits counts lookups served from the cache.
	Hits int
	// Misses counts runes no sub-font maps.
	Misses int
	// Rasterizations counts glyphs rendered into a new bitmap.
	Rasterizations int
}

// Metrics holds the vertical metrics of a face in pixels. Descent is
// positive below the baseline.
type Metrics struct {
	Ascent  float64
	Descent float64
	LineGap float64
}

// Height returns the distance between consecutive baselines.
func (m Metrics) Height() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

// Face is a FontGroup at one pixel size. It is created by FontGroup.Face
// and caches every glyph it rasterizes until the group is closed.
type Face struct {
	group  *FontGroup
	size   float64
	cfg    faceConfig
	scales []float64

	glyphs []map[sfnt.GlyphIndex]*Glyph
	empty  *Glyph
	stats  Stats

	// Rasterization scratch, reused between glyphs.
	path   *path.Path
	raster *raster.Rasterizer
	mask   raster.Mask
}

func newFace(g *FontGroup, size float64, cfg faceConfig) *Face {
	f := &Face{
		group:  g,
		size:   size,
		cfg:    cfg,
		scales: make([]float64, len(g.fonts)),
		glyphs: make([]map[sfnt.GlyphIndex]*Glyph, len(g.fonts)),
		path:   path.New(),
		raster: raster.NewRasterizer(0, 0),
	}
	for i, sf := range g.fonts {
		f.scales[i] = size / float64(sf.font.UnitsPerEm())
	}
	return f
}

// Size returns the size in pixels per em.
func (f *Face) Size() float64 { return f.size }

// Subpixel reports whether glyphs are LCD-filtered.
func (f *Face) Subpixel() bool { return f.cfg.subpixel }

// Stats returns the cache counters.
func (f *Face) Stats() Stats { return f.stats }

// Metrics returns the vertical metrics of the group's first font.
func (f *Face) Metrics() Metrics {
	m := f.group.fonts[0].font.Metrics()
	s := f.scales[0]
	return Metrics{
		Ascent:  s * float64(m.Ascender),
		Descent: -s * float64(m.Descender),
		LineGap: s * float64(m.LineGap),
	}
}

// Glyph returns the glyph for r, rasterizing it on first use. A rune that
// no sub-font maps returns (nil, nil). Errors come from malformed glyph
// data and are *sfnt.FormatError.
func (f *Face) Glyph(r rune, lang language.Language) (*Glyph, error) {
	fi, gid, ok := f.group.lookup(r, lang)
	if !ok {
		f.stats.Misses++
		return nil, nil
	}
	return f.glyph(fi, gid)
}

// GlyphOrFallback is like Glyph but substitutes the fallback rune for an
// unmapped rune, and an empty glyph if the fallback is unmapped too.
func (f *Face) GlyphOrFallback(r rune, lang language.Language) (*Glyph, error) {
	g, err := f.Glyph(r, lang)
	if g != nil || err != nil {
		return g, err
	}
	if r != f.cfg.fallback {
		g, err = f.Glyph(f.cfg.fallback, lang)
		if g != nil || err != nil {
			return g, err
		}
	}
	Logger().Warn("text: no glyph for rune", "rune", string(r), "fallback", string(f.cfg.fallback))
	return f.emptyGlyph(), nil
}

// Measure returns the advance width of s in pixels, using the same lookup
// and fallback as GlyphOrFallback. It does not rasterize.
func (f *Face) Measure(s string, lang language.Language) float64 {
	w := 0.0
	for _, r := range s {
		fi, gid, ok := f.group.lookup(r, lang)
		if !ok {
			fi, gid, ok = f.group.lookup(f.cfg.fallback, lang)
		}
		if !ok {
			continue
		}
		adv, _ := f.group.fonts[fi].font.HMetrics(gid)
		w += f.scales[fi] * float64(adv)
	}
	return w
}

func (f *Face) glyph(fi int, gid sfnt.GlyphIndex) (*Glyph, error) {
	cache := f.glyphs[fi]
	if g, ok := cache[gid]; ok {
		f.stats.Hits++
		return g, nil
	}
	g, err := f.rasterize(fi, gid)
	if err != nil {
		return nil, err
	}
	if cache == nil {
		cache = make(map[sfnt.GlyphIndex]*Glyph)
		f.glyphs[fi] = cache
	}
	cache[gid] = g
	f.stats.Rasterizations++
	return g, nil
}

func (f *Face) emptyGlyph() *Glyph {
	if f.empty == nil {
		bitmap, _ := texture.NewRGBA(0, 0)
		f.empty = &Glyph{Bitmap: bitmap}
	}
	return f.empty
}
