// Package blend composites solid colors, coverage masks, textures and glyph
// bitmaps onto rows of RGBA pixels.
//
// All buffers are rows of 8-bit RGBA with straight (non-premultiplied)
// alpha. A Blender processes one row at a time; the caller clips and
// samples so that dst and src hold the same number of pixels.
package blend

// Color is an 8-bit RGBA color with straight alpha.
type Color struct {
	R, G, B, A uint8
}

// Blender is a compositing strategy. Implementations differ in speed only:
// for the same inputs they produce identical pixels.
type Blender interface {
	// Fill blends c over every pixel of dst:
	// dst = c*a + dst*(1-a) with a = c.A.
	Fill(dst []byte, c Color)

	// Mask blends c over dst weighted by one coverage byte per pixel.
	Mask(dst []byte, coverage []uint8, c Color)

	// Texture blends the RGBA pixels of src tinted by c over dst:
	// dst = src*c*srcAlpha + dst*(1-srcAlpha).
	Texture(dst, src []byte, c Color)

	// Glyph blends c over dst using the per-channel coverage in src, with
	// the color channels blended in approximately linear space.
	Glyph(dst, src []byte, c Color)
}

// Kind selects a Blender implementation.
type Kind int

const (
	// KindScalar processes one pixel at a time.
	KindScalar Kind = iota
	// KindWide processes 16 pixels per step with wide vectors.
	KindWide
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindWide:
		return "wide"
	}
	return "unknown"
}

// New returns the Blender for kind. Unknown kinds fall back to Scalar.
func New(kind Kind) Blender {
	if kind == KindWide {
		return Wide{}
	}
	return Scalar{}
}
