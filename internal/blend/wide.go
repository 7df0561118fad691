package blend

import "github.com/gogpu/ttcanvas/internal/wide"

// batchBytes is the size of one batch of RGBA pixels.
const batchBytes = 4 * wide.Lanes

// Wide blends 16 pixels per step and finishes the remainder with Scalar.
// Glyph blending goes through lookup tables and always runs scalar.
type Wide struct{}

var opaque = wide.SplatU16(255)

// Fill implements Blender.
func (Wide) Fill(dst []byte, c Color) {
	n := len(dst) / 4 * 4
	r, g, b := wide.SplatU16(uint16(c.R)), wide.SplatU16(uint16(c.G)), wide.SplatU16(uint16(c.B))
	a := wide.SplatU16(uint16(c.A))
	var d wide.Pixels16
	i := 0
	for ; i+batchBytes <= n; i += batchBytes {
		d.Load(dst[i:])
		overBatch(&d, r, g, b, a)
		d.Store(dst[i:])
	}
	Scalar{}.Fill(dst[i:n], c)
}

// Mask implements Blender.
func (Wide) Mask(dst []byte, coverage []uint8, c Color) {
	n := min(len(dst)/4, len(coverage))
	r, g, b := wide.SplatU16(uint16(c.R)), wide.SplatU16(uint16(c.G)), wide.SplatU16(uint16(c.B))
	ca := wide.SplatU16(uint16(c.A))
	var d wide.Pixels16
	var cov wide.U16x16
	x := 0
	for ; x+wide.Lanes <= n; x += wide.Lanes {
		for j := range cov {
			cov[j] = uint16(coverage[x+j])
		}
		if cov == (wide.U16x16{}) {
			continue
		}
		d.Load(dst[4*x:])
		overBatch(&d, r, g, b, cov.MulDiv255(ca))
		d.Store(dst[4*x:])
	}
	Scalar{}.Mask(dst[4*x:4*n], coverage[x:n], c)
}

// Texture implements Blender.
func (Wide) Texture(dst, src []byte, c Color) {
	n := min(len(dst), len(src)) / 4 * 4
	cr, cg, cb := wide.SplatU16(uint16(c.R)), wide.SplatU16(uint16(c.G)), wide.SplatU16(uint16(c.B))
	ca := wide.SplatU16(uint16(c.A))
	var s, d wide.Pixels16
	i := 0
	for ; i+batchBytes <= n; i += batchBytes {
		s.Load(src[i:])
		d.Load(dst[i:])
		overBatch(&d, s.R.MulDiv255(cr), s.G.MulDiv255(cg), s.B.MulDiv255(cb), s.A.MulDiv255(ca))
		d.Store(dst[i:])
	}
	Scalar{}.Texture(dst[i:n], src[i:n], c)
}

// Glyph implements Blender.
func (Wide) Glyph(dst, src []byte, c Color) {
	Scalar{}.Glyph(dst, src, c)
}

func overBatch(d *wide.Pixels16, r, g, b, a wide.U16x16) {
	d.R = r.Over(d.R, a)
	d.G = g.Over(d.G, a)
	d.B = b.Over(d.B, a)
	d.A = opaque.Over(d.A, a)
}
