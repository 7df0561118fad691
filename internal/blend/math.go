package blend

// div255 divides x by 255 without division.
//
// Formula: (x + 1 + (x >> 8)) >> 8
//
// The result equals x/255 rounded down for every x up to 255*255, the range
// of a product of two channels. wide.U16x16.Div255 uses the same formula so
// the scalar and batch paths agree bit for bit.
func div255(x uint16) uint16 {
	return (x + 1 + (x >> 8)) >> 8
}

// mulDiv255 multiplies two bytes and divides by 255.
func mulDiv255(a, b byte) byte {
	return byte(div255(uint16(a) * uint16(b)))
}

// inv255 computes 255 - x (inverse alpha).
func inv255(x byte) byte {
	return 255 - x
}

// over blends s over d with alpha a: (s*a + d*(255-a)) / 255.
func over(s, d, a byte) byte {
	return byte(div255(uint16(s)*uint16(a) + uint16(d)*uint16(inv255(a))))
}
