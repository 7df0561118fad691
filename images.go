package ttcanvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/ttcanvas/texture"
)

// ErrNoImageProvider is returned by DrawImage on a canvas created without
// WithImageProvider.
var ErrNoImageProvider = errors.New("ttcanvas: no image provider")

// ErrImageNotFound is returned by MapImages for unknown names.
var ErrImageNotFound = errors.New("ttcanvas: image not found")

// ImageProvider supplies raw image files by name.
type ImageProvider interface {
	ImageData(name string) ([]byte, error)
}

// MapImages is an in-memory ImageProvider.
type MapImages map[string][]byte

// ImageData implements ImageProvider.
func (m MapImages) ImageData(name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrImageNotFound, name)
	}
	return data, nil
}

// loadImage returns the decoded texture for name, loading it on first use.
// Decoded images stay cached until Close.
func (c *Canvas) loadImage(name string) (*texture.RGBA, error) {
	if t, ok := c.images[name]; ok {
		return t, nil
	}
	if c.provider == nil {
		return nil, ErrNoImageProvider
	}
	data, err := c.provider.ImageData(name)
	if err != nil {
		return nil, fmt.Errorf("ttcanvas: load image %q: %w", name, err)
	}
	t, format, err := texture.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("ttcanvas: image %q: %w", name, err)
	}
	if c.images == nil {
		c.images = make(map[string]*texture.RGBA)
	}
	c.images[name] = t
	Logger().Debug("ttcanvas: image decoded",
		"name", name, "format", format, "width", t.Width(), "height", t.Height())
	return t, nil
}
