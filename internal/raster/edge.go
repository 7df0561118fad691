package raster

import (
	"math"
	"slices"
)

// crossing is the intersection of a segment with the center of an
// oversampled row. x is in oversampled units.
type crossing struct {
	x   float32
	dir int8
}

// addEdge inserts the crossings of segment p0-p1 into the row lists.
// Segments with a vertical extent below Epsilon are dropped.
func (r *Rasterizer) addEdge(p0, p1 point) {
	dy := p1.y - p0.y
	if math.Abs(dy) < Epsilon || math.IsNaN(dy) || math.IsNaN(p0.x) || math.IsNaN(p1.x) {
		return
	}
	dir := int8(1)
	if dy < 0 {
		dir = -1
		p0, p1 = p1, p0
	}

	y0, y1 := p0.y*Level, p1.y*Level
	x0 := p0.x * Level
	slope := (p1.x - p0.x) / (p1.y - p0.y)

	// Rows whose center y+0.5 lies in [y0, y1).
	first := max(int(math.Ceil(y0-0.5)), 0)
	last := min(int(math.Ceil(y1-0.5)), len(r.rows))
	for row := first; row < last; row++ {
		x := x0 + (float64(row)+0.5-y0)*slope
		r.insert(row, crossing{x: float32(x), dir: dir})
	}
	if first < last {
		r.minRow = min(r.minRow, first)
		r.maxRow = max(r.maxRow, last)
	}
}

// insert keeps each row sorted by x.
func (r *Rasterizer) insert(row int, c crossing) {
	list := r.rows[row]
	i, _ := slices.BinarySearchFunc(list, c.x, func(e crossing, x float32) int {
		switch {
		case e.x < x:
			return -1
		case e.x > x:
			return 1
		}
		return 0
	})
	r.rows[row] = slices.Insert(list, i, c)
}
