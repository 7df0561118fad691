package text

// FaceOption configures Face creation.
type FaceOption func(*faceConfig)

// faceConfig is comparable and doubles as part of the face cache key.
type faceConfig struct {
	subpixel bool
	fallback rune
}

func defaultFaceConfig() faceConfig {
	return faceConfig{
		subpixel: true,
		fallback: ' ',
	}
}

// WithSubpixel selects LCD subpixel filtering (the default) or grayscale
// coverage.
func WithSubpixel(enabled bool) FaceOption {
	return func(c *faceConfig) {
		c.subpixel = enabled
	}
}

// WithFallbackRune sets the rune GlyphOrFallback substitutes for unmapped
// runes. The default is U+0020 SPACE.
func WithFallbackRune(r rune) FaceOption {
	return func(c *faceConfig) {
		c.fallback = r
	}
}
