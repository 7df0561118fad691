package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	// Registered image formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decoding errors.
var (
	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("texture: empty data")

	// ErrUnsupportedFormat is returned when no registered decoder
	// recognizes the data.
	ErrUnsupportedFormat = errors.New("texture: unsupported format")
)

// Decode decodes a PNG, JPEG, GIF, BMP, TIFF or WebP image into a texture.
// It also returns the format name reported by the decoder.
func Decode(data []byte) (*RGBA, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyData
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if errors.Is(err, image.ErrFormat) {
		return nil, "", ErrUnsupportedFormat
	}
	if err != nil {
		return nil, "", fmt.Errorf("texture: decode %s: %w", format, err)
	}
	return FromImage(img), format, nil
}
