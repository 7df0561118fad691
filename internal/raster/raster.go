// Package raster provides scanline rasterization of line segments into an
// antialiased coverage mask.
//
// Y coordinates are oversampled by Level and every segment inserts one
// crossing per oversampled row it spans, sampled at the row center. Fill
// turns the sorted crossings of each row into spans under a fill rule and
// accumulates the covered oversamples into Mask, one band of BlockSize
// pixel rows at a time.
package raster

import "math"

// FillRule specifies how to determine which areas are inside a path.
type FillRule int

const (
	// FillRuleNonZero uses the non-zero winding rule.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd uses the even-odd rule.
	FillRuleEvenOdd
)

func (r FillRule) String() string {
	if r == FillRuleEvenOdd {
		return "EvenOdd"
	}
	return "NonZero"
}

const (
	// Level is the oversampling factor in each axis.
	Level = 4
	// BlockSize is the edge length of a mask tile in pixels.
	BlockSize = 16
	// Epsilon is the smallest vertical extent, in pixels, of a segment that
	// produces crossings.
	Epsilon = 1.0 / 1024

	// unit is the coverage contributed by one oversample.
	unit = 256 / (Level * Level)
	// tileSamples is the width of a tile in oversampled columns.
	tileSamples = BlockSize * Level
)

// Rasterizer performs scanline rasterization.
// It is not safe for concurrent use.
type Rasterizer struct {
	width  int
	height int

	rows           [][]crossing
	minRow, maxRow int

	start, last point
	open        bool

	// Band scratch: coverage per pixel and fully covered tile counts per
	// pixel row.
	acc  []uint16
	full []uint8

	fullTiles int
}

type point struct{ x, y float64 }

// NewRasterizer creates a new rasterizer for the given dimensions.
func NewRasterizer(width, height int) *Rasterizer {
	r := &Rasterizer{}
	r.Reset(width, height)
	return r
}

// Reset discards all segments and resizes the rasterizer.
func (r *Rasterizer) Reset(width, height int) {
	r.width, r.height = max(width, 0), max(height, 0)
	n := r.height * Level
	if cap(r.rows) < n {
		r.rows = make([][]crossing, n)
	}
	r.rows = r.rows[:n]
	for i := range r.rows {
		r.rows[i] = r.rows[i][:0]
	}
	r.minRow, r.maxRow = n, 0
	r.open = false
}

// Width returns the width of the rasterizer in pixels.
func (r *Rasterizer) Width() int { return r.width }

// Height returns the height of the rasterizer in pixels.
func (r *Rasterizer) Height() int { return r.height }

// Begin starts a subpath at (x, y).
func (r *Rasterizer) Begin(x, y float64) {
	r.start = point{x, y}
	r.last = r.start
	r.open = true
}

// Line adds a segment from the current point to (x, y).
func (r *Rasterizer) Line(x, y float64) {
	if !r.open {
		r.Begin(x, y)
		return
	}
	p := point{x, y}
	r.addEdge(r.last, p)
	r.last = p
}

// End finishes the subpath. With close set, a segment back to the start of
// the subpath is added.
func (r *Rasterizer) End(close bool) {
	if r.open && close {
		r.addEdge(r.last, r.start)
	}
	r.open = false
}

// Fill computes the coverage of all segments under rule into mask, which is
// resized to the rasterizer's dimensions.
func (r *Rasterizer) Fill(rule FillRule, mask *Mask) {
	mask.Reset(r.width, r.height)
	r.fullTiles = 0
	if r.minRow >= r.maxRow {
		return
	}

	tiles := (r.width + BlockSize - 1) / BlockSize
	r.acc = resize(r.acc, BlockSize*r.width)
	r.full = resize(r.full, BlockSize*tiles)

	firstBand := r.minRow / Level / BlockSize
	lastBand := (r.maxRow - 1) / Level / BlockSize
	for band := firstBand; band <= lastBand; band++ {
		clear(r.acc)
		clear(r.full)
		y0 := band * BlockSize
		y1 := min(y0+BlockSize, r.height)
		for row := y0 * Level; row < y1*Level; row++ {
			local := row/Level - y0
			acc := r.acc[local*r.width : (local+1)*r.width]
			full := r.full[local*tiles : (local+1)*tiles]
			if rule == FillRuleEvenOdd {
				r.fillEvenOdd(r.rows[row], acc, full)
			} else {
				r.fillNonZero(r.rows[row], acc, full)
			}
		}
		r.writeBand(mask, y0, y1, tiles)
	}
}

// fillNonZero emits spans where the running winding number is nonzero.
func (r *Rasterizer) fillNonZero(row []crossing, acc []uint16, full []uint8) {
	winding := 0
	var x1 float32
	for _, c := range row {
		if winding == 0 {
			x1 = c.x
		}
		winding += int(c.dir)
		if winding == 0 {
			r.fillSpan(x1, c.x, acc, full)
		}
	}
}

// fillEvenOdd pairs crossings two at a time.
func (r *Rasterizer) fillEvenOdd(row []crossing, acc []uint16, full []uint8) {
	for i := 0; i+1 < len(row); i += 2 {
		r.fillSpan(row[i].x, row[i+1].x, acc, full)
	}
}

// fillSpan adds the oversampled columns whose centers lie in [x1, x2).
func (r *Rasterizer) fillSpan(x1, x2 float32, acc []uint16, full []uint8) {
	limit := r.width * Level
	c0 := max(int(math.Ceil(float64(x1)-0.5)), 0)
	c1 := min(int(math.Ceil(float64(x2)-0.5)), limit)
	for c0 < c1 {
		if c0%tileSamples == 0 && c1-c0 >= tileSamples {
			full[c0/tileSamples]++
			c0 += tileSamples
			continue
		}
		px := c0 / Level
		end := min((px+1)*Level, c1)
		acc[px] += uint16((end - c0) * unit)
		c0 = end
	}
}

// writeBand resolves the band's accumulated coverage into mask.
func (r *Rasterizer) writeBand(mask *Mask, y0, y1, tiles int) {
	rows := y1 - y0
	for tx := 0; tx < tiles; tx++ {
		x0 := tx * BlockSize
		x1 := min(x0+BlockSize, r.width)

		solid := rows == BlockSize && x1-x0 == BlockSize
		for local := 0; solid && local < rows; local++ {
			solid = r.full[local*tiles+tx] == Level
		}
		if solid {
			r.fullTiles++
			for y := y0; y < y1; y++ {
				row := mask.Pix[y*mask.Width+x0 : y*mask.Width+x1]
				for i := range row {
					row[i] = 255
				}
			}
			continue
		}

		for local := 0; local < rows; local++ {
			base := uint16(r.full[local*tiles+tx]) * Level * unit
			acc := r.acc[local*r.width:]
			dst := mask.Pix[(y0+local)*mask.Width:]
			for x := x0; x < x1; x++ {
				dst[x] = saturate(acc[x] + base)
			}
		}
	}
}

func saturate(v uint16) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func resize[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	return s[:n]
}
