package blend

import "github.com/gogpu/ttcanvas/internal/color"

// Scalar blends one pixel at a time.
type Scalar struct{}

// Fill implements Blender.
func (Scalar) Fill(dst []byte, c Color) {
	for i := 0; i+3 < len(dst); i += 4 {
		overPixel(dst[i:i+4:i+4], c.R, c.G, c.B, c.A)
	}
}

// Mask implements Blender.
func (Scalar) Mask(dst []byte, coverage []uint8, c Color) {
	for x, cov := range coverage {
		i := 4 * x
		if i+3 >= len(dst) {
			return
		}
		if cov == 0 {
			continue
		}
		overPixel(dst[i:i+4:i+4], c.R, c.G, c.B, mulDiv255(cov, c.A))
	}
}

// Texture implements Blender.
func (Scalar) Texture(dst, src []byte, c Color) {
	n := min(len(dst), len(src))
	for i := 0; i+3 < n; i += 4 {
		s := src[i : i+4 : i+4]
		overPixel(dst[i:i+4:i+4],
			mulDiv255(s[0], c.R),
			mulDiv255(s[1], c.G),
			mulDiv255(s[2], c.B),
			mulDiv255(s[3], c.A),
		)
	}
}

// Glyph implements Blender.
func (Scalar) Glyph(dst, src []byte, c Color) {
	n := min(len(dst), len(src))
	for i := 0; i+3 < n; i += 4 {
		s := src[i : i+4 : i+4]
		if s[3] == 0 {
			continue
		}
		d := dst[i : i+4 : i+4]
		d[0] = color.BlendLinear(c.R, d[0], mulDiv255(s[0], c.A))
		d[1] = color.BlendLinear(c.G, d[1], mulDiv255(s[1], c.A))
		d[2] = color.BlendLinear(c.B, d[2], mulDiv255(s[2], c.A))
		d[3] = over(255, d[3], mulDiv255(s[3], c.A))
	}
}

// overPixel blends (r, g, b) with alpha a over the pixel d.
func overPixel(d []byte, r, g, b, a byte) {
	d[0] = over(r, d[0], a)
	d[1] = over(g, d[1], a)
	d[2] = over(b, d[2], a)
	d[3] = over(255, d[3], a)
}
