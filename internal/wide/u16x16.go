package wide

// Lanes is the number of pixels processed per batch.
const Lanes = 16

// U16x16 holds 16 uint16 lanes. Fixed-size arrays and plain loops let the
// compiler vectorize the operations.
type U16x16 [Lanes]uint16

// SplatU16 returns a vector with every lane set to n.
func SplatU16(n uint16) U16x16 {
	var result U16x16
	for i := range result {
		result[i] = n
	}
	return result
}

// Add performs lane-wise addition.
func (v U16x16) Add(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Mul performs lane-wise multiplication. Callers keep products below 65536.
func (v U16x16) Mul(other U16x16) U16x16 {
	var result U16x16
	for i := range v {
		result[i] = v[i] * other[i]
	}
	return result
}

// Div255 divides each lane by 255 with (x + 1 + (x >> 8)) >> 8, which is
// exact for multiples of 255.
func (v U16x16) Div255() U16x16 {
	var result U16x16
	for i := range v {
		x := v[i]
		result[i] = (x + 1 + (x >> 8)) >> 8
	}
	return result
}

// Inv computes 255 - v for each lane.
func (v U16x16) Inv() U16x16 {
	var result U16x16
	for i := range v {
		result[i] = 255 - v[i]
	}
	return result
}

// MulDiv255 returns v*other/255 per lane.
func (v U16x16) MulDiv255(other U16x16) U16x16 {
	return v.Mul(other).Div255()
}

// Over blends v over dst with per-lane alpha a, all in [0, 255]:
// (v*a + dst*(255-a)) / 255.
func (v U16x16) Over(dst, a U16x16) U16x16 {
	return v.Mul(a).Add(dst.Mul(a.Inv())).Div255()
}
