// Package color provides lookup tables for blending in an approximately
// linear color space.
//
// Squaring an 8-bit channel approximates the sRGB to linear transfer
// function (gamma 2 instead of 2.2) and the square root approximates its
// inverse. Both directions are table lookups, so glyph blending costs two
// loads per channel instead of math.Pow calls.
package color

import "math"

// MaxSquare is the largest value in the square table, 255*255.
const MaxSquare = 255 * 255

// squareLUT maps an 8-bit channel to its square.
var squareLUT [256]uint16

// sqrtLUT maps a squared channel back to 8 bits, rounding to nearest.
// It has MaxSquare+1 entries.
var sqrtLUT [MaxSquare + 1]uint8

func init() {
	for i := range squareLUT {
		squareLUT[i] = uint16(i * i)
	}
	for i := range sqrtLUT {
		sqrtLUT[i] = uint8(math.Sqrt(float64(i)) + 0.5)
	}
}

// Square returns c*c.
func Square(c uint8) uint16 {
	return squareLUT[c]
}

// Sqrt returns the rounded square root of v. Values above MaxSquare map
// to 255.
func Sqrt(v uint32) uint8 {
	if v > MaxSquare {
		return 255
	}
	return sqrtLUT[v]
}

// BlendLinear blends src over dst with coverage a in the squared space:
//
//	sqrt((src²·a + dst²·(255-a)) / 255)
//
// a == 255 yields src and a == 0 yields dst exactly.
func BlendLinear(src, dst, a uint8) uint8 {
	lin := (uint32(squareLUT[src])*uint32(a) + uint32(squareLUT[dst])*uint32(255-a) + 127) / 255
	return sqrtLUT[lin]
}
