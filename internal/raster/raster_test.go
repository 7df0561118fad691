package raster

import (
	"math/rand/v2"
	"slices"
	"testing"
)

// rect adds a closed rectangle. Reversed rectangles wind the other way.
func rect(r *Rasterizer, x0, y0, x1, y1 float64, reversed bool) {
	r.Begin(x0, y0)
	if reversed {
		r.Line(x0, y1)
		r.Line(x1, y1)
		r.Line(x1, y0)
	} else {
		r.Line(x1, y0)
		r.Line(x1, y1)
		r.Line(x0, y1)
	}
	r.End(true)
}

func TestFillRect(t *testing.T) {
	r := NewRasterizer(32, 32)
	rect(r, 0, 0, 32, 32, false)
	var m Mask
	r.Fill(FillRuleNonZero, &m)

	for i, v := range m.Pix {
		if v != 255 {
			t.Fatalf("pixel %d = %d, want 255", i, v)
		}
	}
	if r.fullTiles != 4 {
		t.Errorf("fullTiles = %d, want 4", r.fullTiles)
	}
}

func TestFillPartialCoverage(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		x, y           int
		want           uint8
	}{
		{"half height", 0, 0, 2, 0.5, 0, 0, 128},
		{"half width", 1.5, 0, 3, 1, 1, 0, 128},
		{"quarter", 0.5, 0.5, 1, 1, 0, 0, 64},
		{"full", 0, 0, 1, 1, 0, 0, 255},
		{"outside", 0, 0, 1, 1, 2, 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRasterizer(4, 4)
			rect(r, tt.x0, tt.y0, tt.x1, tt.y1, false)
			var m Mask
			r.Fill(FillRuleNonZero, &m)
			if got := m.At(tt.x, tt.y); got != tt.want {
				t.Errorf("At(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestFillSaturates(t *testing.T) {
	r := NewRasterizer(20, 20)
	for range 300 {
		rect(r, 2, 2, 18, 18, false)
	}
	var m Mask
	r.Fill(FillRuleNonZero, &m)
	if got := m.At(10, 10); got != 255 {
		t.Errorf("interior = %d, want 255", got)
	}
	if got := m.At(0, 0); got != 0 {
		t.Errorf("exterior = %d, want 0", got)
	}
	for i, v := range m.Pix {
		if v != 0 && v != 255 {
			t.Fatalf("pixel %d = %d, want 0 or 255 for an aligned rectangle", i, v)
		}
	}
}

func TestFillRules(t *testing.T) {
	tests := []struct {
		name     string
		rule     FillRule
		reversed bool
		overlap  uint8
	}{
		{"even odd", FillRuleEvenOdd, false, 0},
		{"non zero same winding", FillRuleNonZero, false, 255},
		{"non zero opposite winding", FillRuleNonZero, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRasterizer(32, 32)
			rect(r, 0, 0, 20, 20, false)
			rect(r, 10, 10, 30, 30, tt.reversed)
			var m Mask
			r.Fill(tt.rule, &m)

			if got := m.At(15, 15); got != tt.overlap {
				t.Errorf("overlap = %d, want %d", got, tt.overlap)
			}
			for _, p := range [][2]int{{5, 5}, {25, 25}} {
				if got := m.At(p[0], p[1]); got != 255 {
					t.Errorf("At(%d, %d) = %d, want 255", p[0], p[1], got)
				}
			}
			if got := m.At(31, 0); got != 0 {
				t.Errorf("outside = %d, want 0", got)
			}
		})
	}
}

func TestFigureEight(t *testing.T) {
	// One self-intersecting subpath: the two lobes share a crossing point
	// and wind in opposite directions.
	r := NewRasterizer(40, 20)
	r.Begin(0, 0)
	r.Line(40, 20)
	r.Line(40, 0)
	r.Line(0, 20)
	r.End(true)

	for _, rule := range []FillRule{FillRuleNonZero, FillRuleEvenOdd} {
		var m Mask
		r.Fill(rule, &m)
		// Left and right lobes are covered, top and bottom wedges are not.
		if m.At(3, 10) != 255 || m.At(36, 10) != 255 {
			t.Errorf("%v: lobes = %d, %d, want 255", rule, m.At(3, 10), m.At(36, 10))
		}
		if m.At(20, 2) != 0 || m.At(20, 17) != 0 {
			t.Errorf("%v: wedges = %d, %d, want 0", rule, m.At(20, 2), m.At(20, 17))
		}
	}
}

func TestDegenerateEdges(t *testing.T) {
	r := NewRasterizer(8, 8)
	r.Begin(1, 1)
	// Zero length, then near horizontal.
	r.Line(1, 1)
	r.Line(7, 1+Epsilon/2)
	r.End(false)
	r.Begin(3, 3)
	r.End(true)
	r.Line(5, 5) // without Begin starts a subpath

	var m Mask
	r.Fill(FillRuleNonZero, &m)
	for i, v := range m.Pix {
		if v != 0 {
			t.Fatalf("pixel %d = %d, want 0", i, v)
		}
	}
}

func TestRowsStaySorted(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	r := NewRasterizer(64, 64)
	for range 50 {
		r.Begin(rng.Float64()*80-8, rng.Float64()*80-8)
		for range 5 {
			r.Line(rng.Float64()*80-8, rng.Float64()*80-8)
		}
		r.End(true)
	}
	for i, row := range r.rows {
		if !slices.IsSortedFunc(row, func(a, b crossing) int {
			switch {
			case a.x < b.x:
				return -1
			case a.x > b.x:
				return 1
			}
			return 0
		}) {
			t.Fatalf("row %d not sorted", i)
		}
	}
	var m Mask
	r.Fill(FillRuleEvenOdd, &m)
}

func TestFillClipsToBounds(t *testing.T) {
	r := NewRasterizer(10, 10)
	rect(r, -50, -50, 50, 50, false)
	var m Mask
	r.Fill(FillRuleNonZero, &m)
	for i, v := range m.Pix {
		if v != 255 {
			t.Fatalf("pixel %d = %d, want 255", i, v)
		}
	}
}

func TestResetReusesRows(t *testing.T) {
	r := NewRasterizer(16, 16)
	rect(r, 0, 0, 16, 16, false)
	r.Reset(8, 8)
	var m Mask
	r.Fill(FillRuleNonZero, &m)
	if m.Width != 8 || m.Height != 8 {
		t.Fatalf("mask is %dx%d, want 8x8", m.Width, m.Height)
	}
	for i, v := range m.Pix {
		if v != 0 {
			t.Fatalf("pixel %d = %d after Reset, want 0", i, v)
		}
	}
}
