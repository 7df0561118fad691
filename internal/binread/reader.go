// Package binread decodes big-endian binary fields from an in-memory buffer.
//
// A Reader keeps a sticky error: the first out-of-range access records an
// error and every later read returns the zero value. Callers decode a whole
// record and check Err once, the same way bufio.Scanner is used.
package binread

import (
	"errors"
	"fmt"
)

// ErrUnexpectedEOF is wrapped by the error recorded when a read runs past
// the end of the buffer.
var ErrUnexpectedEOF = errors.New("binread: unexpected end of data")

// Reader reads typed fields sequentially from a byte slice.
type Reader struct {
	data []byte
	pos  int
	err  error
}

// New returns a Reader positioned at the start of data.
func New(data []byte) *Reader {
	return &Reader{data: data}
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error { return r.err }

// Len returns the size of the underlying buffer.
func (r *Reader) Len() int { return len(r.data) }

// Offset returns the current read position.
func (r *Reader) Offset() int { return r.pos }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	if r.pos >= len(r.data) {
		return 0
	}
	return len(r.data) - r.pos
}

// Seek moves the read position to off.
func (r *Reader) Seek(off int) {
	if r.err != nil {
		return
	}
	if off < 0 || off > len(r.data) {
		r.fail(off, 0)
		return
	}
	r.pos = off
}

// Skip advances the read position by n bytes.
func (r *Reader) Skip(n int) {
	r.take(n)
}

// Sub returns a Reader over data[off:off+n]. On failure the parent records
// the error and the returned Reader carries it too.
func (r *Reader) Sub(off, n int) *Reader {
	if r.err != nil {
		return &Reader{err: r.err}
	}
	if off < 0 || n < 0 || off > len(r.data)-n {
		r.fail(off, n)
		return &Reader{err: r.err}
	}
	return &Reader{data: r.data[off : off+n]}
}

// Bytes returns the next n bytes without copying.
func (r *Reader) Bytes(n int) []byte {
	return r.take(n)
}

// U8 reads an unsigned byte.
func (r *Reader) U8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// I8 reads a signed byte.
func (r *Reader) I8() int8 { return int8(r.U8()) }

// U16 reads a big-endian uint16.
func (r *Reader) U16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return uint16(b[0])<<8 | uint16(b[1])
}

// I16 reads a big-endian int16.
func (r *Reader) I16() int16 { return int16(r.U16()) }

// U24 reads a big-endian 24-bit unsigned integer.
func (r *Reader) U24() uint32 {
	b := r.take(3)
	if b == nil {
		return 0
	}
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// U32 reads a big-endian uint32.
func (r *Reader) U32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// I32 reads a big-endian int32.
func (r *Reader) I32() int32 { return int32(r.U32()) }

// Tag reads a four byte table tag.
func (r *Reader) Tag() uint32 { return r.U32() }

// Fixed reads a 16.16 signed fixed-point number.
func (r *Reader) Fixed() float64 {
	return float64(r.I32()) / 65536
}

// F2Dot14 reads a 2.14 signed fixed-point number.
func (r *Reader) F2Dot14() float32 {
	return float32(r.I16()) / 16384
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.pos > len(r.data)-n {
		r.fail(r.pos, n)
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *Reader) fail(off, n int) {
	r.err = fmt.Errorf("%w: reading %d bytes at offset %d of %d", ErrUnexpectedEOF, n, off, len(r.data))
}
