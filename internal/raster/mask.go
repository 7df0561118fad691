package raster

// Mask is an 8-bit coverage buffer, one byte per pixel, rows packed
// without padding.
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewMask allocates a cleared mask.
func NewMask(width, height int) *Mask {
	m := &Mask{}
	m.Reset(width, height)
	return m
}

// Reset resizes the mask and clears it, reusing its storage when possible.
func (m *Mask) Reset(width, height int) {
	m.Width, m.Height = max(width, 0), max(height, 0)
	m.Pix = resize(m.Pix, m.Width*m.Height)
	clear(m.Pix)
}

// At returns the coverage at (x, y), or 0 outside the mask.
func (m *Mask) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return 0
	}
	return m.Pix[y*m.Width+x]
}

// Row returns the coverage of row y.
func (m *Mask) Row(y int) []uint8 {
	return m.Pix[y*m.Width : (y+1)*m.Width]
}
