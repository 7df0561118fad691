package ttcanvas

import "github.com/gogpu/ttcanvas/internal/blend"

// Option configures a Canvas during creation.
//
// Example:
//
//	// Default: 1:1 device pixels, wide blending, new pixmap
//	cv := ttcanvas.NewCanvas(800, 600)
//
//	// Draw into an existing buffer on a 2x display
//	cv := ttcanvas.NewCanvas(800, 600,
//	    ttcanvas.WithPixmap(pm),
//	    ttcanvas.WithDPIScale(2),
//	)
type Option func(*canvasOptions)

type canvasOptions struct {
	scale    float64
	pixmap   *Pixmap
	images   ImageProvider
	blending Blending
}

func defaultOptions() canvasOptions {
	return canvasOptions{
		scale:    1,
		blending: BlendWide,
	}
}

// WithDPIScale sets the number of device pixels per logical unit.
// Non-positive values are ignored.
func WithDPIScale(scale float64) Option {
	return func(o *canvasOptions) {
		if scale > 0 {
			o.scale = scale
		}
	}
}

// WithPixmap makes the canvas draw into pm instead of a new pixmap. The
// canvas takes the pixmap's dimensions.
func WithPixmap(pm *Pixmap) Option {
	return func(o *canvasOptions) {
		o.pixmap = pm
	}
}

// WithImageProvider sets the source of image files for DrawImage.
func WithImageProvider(p ImageProvider) Option {
	return func(o *canvasOptions) {
		o.images = p
	}
}

// WithBlender selects the compositing strategy. Both strategies produce
// identical pixels.
func WithBlender(b Blending) Option {
	return func(o *canvasOptions) {
		o.blending = b
	}
}

// Blending selects a compositing strategy.
type Blending int

const (
	// BlendScalar blends one pixel at a time.
	BlendScalar Blending = iota
	// BlendWide blends 16 pixels per step.
	BlendWide
)

func (b Blending) String() string {
	return b.kind().String()
}

func (b Blending) kind() blend.Kind {
	if b == BlendWide {
		return blend.KindWide
	}
	return blend.KindScalar
}
