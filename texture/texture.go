// Package texture holds the pixel buffers a canvas can draw: decoded
// images and rasterized glyph bitmaps.
//
// Pixels are 8-bit RGBA with straight (non-premultiplied) alpha, stored
// row-major. Textures are owned by whichever cache created them and are not
// modified after creation.
package texture

import (
	"errors"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ErrInvalidDimensions is returned when width or height is negative.
var ErrInvalidDimensions = errors.New("texture: invalid dimensions")

// Texture is a read-only pixel buffer.
type Texture interface {
	Width() int
	Height() int
	Format() Format
	// Stride is the distance in bytes between two vertically adjacent pixels.
	Stride() int
	// Pix returns the underlying pixel data. Callers must not modify it.
	Pix() []byte
}

// RGBA is an in-memory FormatRGBA8 texture.
type RGBA struct {
	width  int
	height int
	stride int
	pix    []byte
}

// NewRGBA allocates a transparent width×height texture.
func NewRGBA(width, height int) (*RGBA, error) {
	if width < 0 || height < 0 {
		return nil, ErrInvalidDimensions
	}
	stride := FormatRGBA8.RowBytes(width)
	return &RGBA{
		width:  width,
		height: height,
		stride: stride,
		pix:    make([]byte, stride*height),
	}, nil
}

func (t *RGBA) Width() int     { return t.width }
func (t *RGBA) Height() int    { return t.height }
func (t *RGBA) Format() Format { return FormatRGBA8 }
func (t *RGBA) Stride() int    { return t.stride }
func (t *RGBA) Pix() []byte    { return t.pix }

// Empty reports whether the texture has no pixels.
func (t *RGBA) Empty() bool {
	return t.width == 0 || t.height == 0
}

// Row returns the bytes of row y.
func (t *RGBA) Row(y int) []byte {
	off := y * t.stride
	return t.pix[off : off+4*t.width : off+4*t.width]
}

// PixOffset returns the index of the first byte of pixel (x, y).
func (t *RGBA) PixOffset(x, y int) int {
	return y*t.stride + 4*x
}

// Set stores c at (x, y). Out-of-range coordinates are ignored.
func (t *RGBA) Set(x, y int, c color.NRGBA) {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return
	}
	i := t.PixOffset(x, y)
	t.pix[i], t.pix[i+1], t.pix[i+2], t.pix[i+3] = c.R, c.G, c.B, c.A
}

// At returns the pixel at (x, y), or transparent black outside the texture.
func (t *RGBA) At(x, y int) color.NRGBA {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return color.NRGBA{}
	}
	i := t.PixOffset(x, y)
	return color.NRGBA{R: t.pix[i], G: t.pix[i+1], B: t.pix[i+2], A: t.pix[i+3]}
}

// Image returns a standard library view sharing the texture's pixels.
func (t *RGBA) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    t.pix,
		Stride: t.stride,
		Rect:   image.Rect(0, 0, t.width, t.height),
	}
}

// FromImage converts img to a texture with straight alpha.
func FromImage(img image.Image) *RGBA {
	b := img.Bounds()
	t, _ := NewRGBA(b.Dx(), b.Dy())
	if n, ok := img.(*image.NRGBA); ok {
		for y := range t.height {
			off := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(t.Row(y), n.Pix[off:off+4*t.width])
		}
		return t
	}
	draw.Copy(t.Image(), image.Point{}, img, b, draw.Src, nil)
	return t
}
