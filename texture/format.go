package texture

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatRGBA8 is 32-bit RGBA with straight alpha (4 bytes per pixel).
	FormatRGBA8 Format = iota

	// FormatGray8 is 8-bit coverage or grayscale (1 byte per pixel).
	FormatGray8

	formatCount
)

var bytesPerPixel = [formatCount]int{
	FormatRGBA8: 4,
	FormatGray8: 1,
}

// BytesPerPixel returns the number of bytes per pixel, or 0 for an unknown
// format.
func (f Format) BytesPerPixel() int {
	if f >= formatCount {
		return 0
	}
	return bytesPerPixel[f]
}

// RowBytes returns the number of bytes needed for a row of width pixels.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

func (f Format) String() string {
	switch f {
	case FormatRGBA8:
		return "RGBA8"
	case FormatGray8:
		return "Gray8"
	default:
		return "Unknown"
	}
}
