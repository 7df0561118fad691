package text

import (
	"math"

	"github.com/gogpu/ttcanvas/internal/path"
	"github.com/gogpu/ttcanvas/internal/raster"
	"github.com/gogpu/ttcanvas/sfnt"
	"github.com/gogpu/ttcanvas/texture"
)

// lcdTaps is the width of the subpixel box filter.
const lcdTaps = 5

// rasterize renders glyph gid of sub-font fi. Every bitmap of a face has
// the same height, spanning the font's ascender to its descender, so
// glyphs share a baseline at row -YOffset.
func (f *Face) rasterize(fi int, gid sfnt.GlyphIndex) (*Glyph, error) {
	font := f.group.fonts[fi].font
	sg, err := font.LoadGlyph(gid)
	if err != nil {
		return nil, err
	}

	scale := f.scales[fi]
	m := font.Metrics()
	ascent := math.Round(scale * float64(m.Ascender))
	height := int(math.Round(scale * float64(int(m.Ascender)-int(m.Descender))))

	g := &Glyph{
		Index:   gid,
		Font:    fi,
		Advance: scale * float64(sg.Metrics.AdvanceWidth),
		XOffset: int(math.Round(scale * float64(sg.Metrics.LeftSideBearing))),
		YOffset: -int(ascent),
	}

	f.path.Reset()
	sg.Outline.Draw(f.path)
	lo, hi, ok := f.path.Bounds(path.Scale(scale, scale))
	if !ok || height <= 0 {
		g.Bitmap, _ = texture.NewRGBA(0, 0)
		return g, nil
	}

	// LCD filtering spreads coverage into the neighboring pixels.
	k, pad := 1, 0
	if f.cfg.subpixel {
		k, pad = 3, 1
	}
	x0 := math.Floor(lo.X)
	width := int(math.Ceil(hi.X)-x0) + 2*pad
	g.XOffset = int(x0) - pad

	ks := float64(k)
	mtx := path.Matrix{
		A: scale * ks, C: (float64(pad) - x0) * ks,
		E: -scale, F: ascent,
	}
	f.raster.Reset(width*k, height)
	f.path.Flatten(mtx, f.raster)
	f.raster.Fill(raster.FillRuleNonZero, &f.mask)

	g.Bitmap, _ = texture.NewRGBA(width, height)
	if f.cfg.subpixel {
		lcdFilter(g.Bitmap, &f.mask)
	} else {
		grayscale(g.Bitmap, &f.mask)
	}

	Logger().Debug("text: glyph rasterized",
		"glyph", gid, "font", fi, "size", f.size, "width", width, "height", height)
	return g, nil
}

// lcdFilter reduces a mask of three times the bitmap width to RGB
// subpixel coverage. Each subpixel is the average of the lcdTaps mask
// samples centered on it. Alpha is opaque wherever any channel is set.
func lcdFilter(dst *texture.RGBA, mask *raster.Mask) {
	w := mask.Width
	for y := range dst.Height() {
		src := mask.Row(y)
		row := dst.Row(y)
		for x := range dst.Width() {
			px := row[4*x : 4*x+4 : 4*x+4]
			var set uint8
			for c := range 3 {
				s := 3*x + c
				sum := 0
				for j := max(s-lcdTaps/2, 0); j <= min(s+lcdTaps/2, w-1); j++ {
					sum += int(src[j])
				}
				v := uint8((sum + lcdTaps/2) / lcdTaps)
				px[c] = v
				set |= v
			}
			if set != 0 {
				px[3] = 255
			}
		}
	}
}

// grayscale copies mask coverage into every channel.
func grayscale(dst *texture.RGBA, mask *raster.Mask) {
	for y := range dst.Height() {
		src := mask.Row(y)
		row := dst.Row(y)
		for x, v := range src[:dst.Width()] {
			row[4*x], row[4*x+1], row[4*x+2], row[4*x+3] = v, v, v, v
		}
	}
}
