package wide

// Pixels16 holds 16 RGBA pixels in planar layout, one vector per channel:
//
//	R: [R0, R1, ..., R15]
//	G: [G0, G1, ..., G15]
//
// and so on for B and A.
type Pixels16 struct {
	R, G, B, A U16x16
}

// Load reads 16 interleaved RGBA pixels. b must hold at least 64 bytes.
func (p *Pixels16) Load(b []byte) {
	_ = b[4*Lanes-1]
	for i := 0; i < Lanes; i++ {
		o := i * 4
		p.R[i] = uint16(b[o])
		p.G[i] = uint16(b[o+1])
		p.B[i] = uint16(b[o+2])
		p.A[i] = uint16(b[o+3])
	}
}

// Store writes 16 interleaved RGBA pixels. Lanes must hold values in
// [0, 255].
func (p *Pixels16) Store(b []byte) {
	_ = b[4*Lanes-1]
	for i := 0; i < Lanes; i++ {
		o := i * 4
		b[o] = uint8(p.R[i])
		b[o+1] = uint8(p.G[i])
		b[o+2] = uint8(p.B[i])
		b[o+3] = uint8(p.A[i])
	}
}
