package sfnt

import "fmt"

// FormatError reports a malformed or unsupported font file.
// It is always fatal to the Parse or LoadGlyph call that returned it.
type FormatError struct {
	// Msg describes what is wrong with the font.
	Msg string

	// Err is the underlying decoding error, if any.
	Err error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return "sfnt: " + e.Msg + ": " + e.Err.Error()
	}
	return "sfnt: " + e.Msg
}

// Unwrap returns the underlying decoding error.
func (e *FormatError) Unwrap() error { return e.Err }

func formatError(format string, args ...any) error {
	return &FormatError{Msg: fmt.Sprintf(format, args...)}
}

func wrapFormatError(err error, format string, args ...any) error {
	return &FormatError{Msg: fmt.Sprintf(format, args...), Err: err}
}
