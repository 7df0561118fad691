package ttcanvas

import (
	"image"
	"math"
	"slices"

	"github.com/go-text/typesetting/language"

	"github.com/gogpu/ttcanvas/internal/blend"
	"github.com/gogpu/ttcanvas/internal/clip"
	"github.com/gogpu/ttcanvas/internal/path"
	"github.com/gogpu/ttcanvas/internal/raster"
	"github.com/gogpu/ttcanvas/text"
	"github.com/gogpu/ttcanvas/texture"
)

// Canvas composites solid fills, textures, images, text and paths onto a
// Pixmap under a stack of clip rectangles.
//
// A Canvas owns its image cache, rasterizer and scratch buffers. It is not
// safe for concurrent use.
type Canvas struct {
	pixmap  *Pixmap
	scale   float64
	clip    *clip.Stack
	blender blend.Blender

	provider ImageProvider
	images   map[string]*texture.RGBA

	raster  *raster.Rasterizer
	mask    raster.Mask
	scratch []byte
}

// NewCanvas creates a canvas of width×height device pixels. With
// WithPixmap the pixmap's own dimensions are used instead.
func NewCanvas(width, height int, opts ...Option) *Canvas {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	pm := o.pixmap
	if pm == nil {
		pm = NewPixmap(width, height)
	}
	return &Canvas{
		pixmap:   pm,
		scale:    o.scale,
		clip:     clip.NewStack(pm.Bounds()),
		blender:  blend.New(o.blending.kind()),
		provider: o.images,
	}
}

// Pixmap returns the destination buffer.
func (c *Canvas) Pixmap() *Pixmap { return c.pixmap }

// Width returns the width in device pixels.
func (c *Canvas) Width() int { return c.pixmap.Width() }

// Height returns the height in device pixels.
func (c *Canvas) Height() int { return c.pixmap.Height() }

// DPIScale returns the number of device pixels per logical unit.
func (c *Canvas) DPIScale() float64 { return c.scale }

// SavePNG saves the pixmap to a PNG file.
func (c *Canvas) SavePNG(filename string) error {
	return c.pixmap.SavePNG(filename)
}

func (c *Canvas) device(v float64) int {
	return int(math.Round(v * c.scale))
}

func (c *Canvas) deviceRect(x, y, w, h float64) image.Rectangle {
	return image.Rect(c.device(x), c.device(y), c.device(x+w), c.device(y+h))
}

// Clear fills the whole pixmap with col, ignoring the clip.
func (c *Canvas) Clear(col Color) {
	c.pixmap.Clear(col)
}

// PushClip intersects the clip with a rectangle. The result may be empty,
// in which case nothing is drawn until the matching PopClip.
func (c *Canvas) PushClip(x, y, w, h float64) {
	c.clip.Push(c.deviceRect(x, y, w, h))
}

// PopClip restores the clip that was current before the last PushClip.
func (c *Canvas) PopClip() {
	c.clip.Pop()
}

// ClipBounds returns the current clip in device pixels.
func (c *Canvas) ClipBounds() image.Rectangle {
	return c.clip.Bounds()
}

// FillRect blends col over a rectangle:
// dst = col*alpha + dst*(1-alpha).
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	c.fillTile(c.clip.Clip(c.deviceRect(x, y, w, h)), col)
}

func (c *Canvas) fillTile(r image.Rectangle, col Color) {
	if r.Empty() || col.A == 0 {
		return
	}
	bc := blend.Color(col)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := c.pixmap.Row(y)
		c.blender.Fill(row[4*r.Min.X:4*r.Max.X], bc)
	}
}

// DrawTexture draws t stretched over a rectangle with nearest sampling,
// tinted by tint: dst = src*tint*srcAlpha + dst*(1-srcAlpha). Gray8
// textures are treated as alpha masks over white.
func (c *Canvas) DrawTexture(t texture.Texture, x, y, w, h float64, tint Color) {
	c.drawTile(t, c.deviceRect(x, y, w, h), tint)
}

// DrawImage draws the image called name, loading it from the image
// provider on first use. A non-positive w or h draws the image at its
// natural size of one device pixel per image pixel.
func (c *Canvas) DrawImage(name string, x, y, w, h float64) error {
	t, err := c.loadImage(name)
	if err != nil {
		return err
	}
	if w <= 0 || h <= 0 {
		dx, dy := c.device(x), c.device(y)
		c.drawTile(t, image.Rect(dx, dy, dx+t.Width(), dy+t.Height()), White)
		return nil
	}
	c.DrawTexture(t, x, y, w, h, White)
	return nil
}

func (c *Canvas) drawTile(t texture.Texture, dst image.Rectangle, tint Color) {
	vis := c.clip.Clip(dst)
	tw, th := t.Width(), t.Height()
	bpp := t.Format().BytesPerPixel()
	if vis.Empty() || tw == 0 || th == 0 || bpp == 0 || tint.A == 0 {
		return
	}
	dw, dh := dst.Dx(), dst.Dy()
	pix, stride := t.Pix(), t.Stride()
	bc := blend.Color(tint)
	direct := bpp == 4 && dw == tw && dh == th

	n := vis.Dx()
	c.scratch = slices.Grow(c.scratch[:0], 4*n)[:4*n]
	for y := vis.Min.Y; y < vis.Max.Y; y++ {
		sy := (2*(y-dst.Min.Y) + 1) * th / (2 * dh)
		srow := pix[sy*stride : sy*stride+t.Format().RowBytes(tw)]
		src := c.scratch
		if direct {
			sx := vis.Min.X - dst.Min.X
			src = srow[4*sx : 4*(sx+n)]
		} else {
			for i := range n {
				sx := (2*(vis.Min.X+i-dst.Min.X) + 1) * tw / (2 * dw)
				px := src[4*i : 4*i+4 : 4*i+4]
				if bpp == 1 {
					px[0], px[1], px[2], px[3] = 255, 255, 255, srow[sx]
				} else {
					copy(px, srow[4*sx:4*sx+4])
				}
			}
		}
		row := c.pixmap.Row(y)
		c.blender.Texture(row[4*vis.Min.X:4*vis.Max.X], src, bc)
	}
}

// Face returns the face of group for text drawn at size logical pixels
// per em on this canvas.
func (c *Canvas) Face(group *text.FontGroup, size float64, opts ...text.FaceOption) *text.Face {
	return group.Face(size*c.scale, opts...)
}

// MeasureText returns the advance width of s in logical units.
func (c *Canvas) MeasureText(face *text.Face, s string) float64 {
	return face.Measure(s, "") / c.scale
}

// DrawText draws s with its baseline starting at (x, y) and returns the
// advance in logical units. face should come from Canvas.Face so its size
// matches the DPI scale.
func (c *Canvas) DrawText(face *text.Face, x, y float64, s string, col Color) (float64, error) {
	return c.DrawTextLang(face, x, y, s, "", col)
}

// DrawTextLang is like DrawText but prefers sub-fonts tagged with lang.
// Glyphs are blended in approximately linear light.
func (c *Canvas) DrawTextLang(face *text.Face, x, y float64, s string, lang language.Language, col Color) (float64, error) {
	origin := x * c.scale
	pen := origin
	baseline := c.device(y)
	for _, r := range s {
		g, err := face.GlyphOrFallback(r, lang)
		if err != nil {
			return (pen - origin) / c.scale, err
		}
		if !g.Bitmap.Empty() && col.A != 0 {
			c.drawGlyph(g, int(math.Round(pen))+g.XOffset, baseline+g.YOffset, col)
		}
		pen += g.Advance
	}
	return (pen - origin) / c.scale, nil
}

func (c *Canvas) drawGlyph(g *text.Glyph, px, py int, col Color) {
	bm := g.Bitmap
	dst := image.Rect(px, py, px+bm.Width(), py+bm.Height())
	vis := c.clip.Clip(dst)
	if vis.Empty() {
		return
	}
	bc := blend.Color(col)
	x0, x1 := vis.Min.X-dst.Min.X, vis.Max.X-dst.Min.X
	for y := vis.Min.Y; y < vis.Max.Y; y++ {
		src := bm.Row(y - dst.Min.Y)[4*x0 : 4*x1]
		row := c.pixmap.Row(y)
		c.blender.Glyph(row[4*vis.Min.X:4*vis.Max.X], src, bc)
	}
}

// FillPath fills p with col under rule. Open subpaths are filled as if
// closed.
func (c *Canvas) FillPath(p *Path, rule FillRule, col Color) {
	vis := c.clip.Bounds()
	if vis.Empty() || col.A == 0 || p.Len() == 0 {
		return
	}
	if c.raster == nil {
		c.raster = raster.NewRasterizer(c.Width(), c.Height())
	} else {
		c.raster.Reset(c.Width(), c.Height())
	}
	p.p.Flatten(path.Scale(c.scale, c.scale), closingSink{c.raster})
	c.raster.Fill(rule, &c.mask)

	bc := blend.Color(col)
	for y := vis.Min.Y; y < vis.Max.Y; y++ {
		row := c.pixmap.Row(y)
		cov := c.mask.Row(y)
		c.blender.Mask(row[4*vis.Min.X:4*vis.Max.X], cov[vis.Min.X:vis.Max.X], bc)
	}
}

// Close drops the image cache and scratch buffers and resets the clip.
// The canvas stays usable; caches are rebuilt on demand.
func (c *Canvas) Close() {
	c.images = nil
	c.raster = nil
	c.mask = raster.Mask{}
	c.scratch = nil
	c.clip.Reset(c.pixmap.Bounds())
}
