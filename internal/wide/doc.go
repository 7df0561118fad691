// Package wide provides SIMD-friendly wide types for batch pixel processing.
//
// U16x16 holds 16 uint16 lanes, enough headroom for the 8-bit products of
// alpha blending. Pixels16 converts 16 interleaved RGBA pixels to planar
// form so that a whole channel is processed at once.
//
// There is no assembly: simple loops over fixed-size arrays are left to
// the compiler's auto-vectorization.
//
//	var src, dst wide.Pixels16
//	src.Load(srcPixels)
//	dst.Load(dstPixels)
//	dst.R = src.R.Over(dst.R, src.A)
//	// ...
//	dst.Store(dstPixels)
package wide
