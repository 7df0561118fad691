package ttcanvas

import (
	"github.com/gogpu/ttcanvas/internal/path"
	"github.com/gogpu/ttcanvas/internal/raster"
)

// FillRule decides which regions of a self-overlapping path are inside.
type FillRule = raster.FillRule

const (
	// FillNonZero fills regions with a nonzero winding number.
	FillNonZero = raster.FillRuleNonZero
	// FillEvenOdd fills regions crossed an odd number of times.
	FillEvenOdd = raster.FillRuleEvenOdd
)

// Path is a sequence of subpaths in logical canvas coordinates.
type Path struct {
	p *path.Path
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{p: path.New()}
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) { p.p.MoveTo(x, y) }

// LineTo adds a line to (x, y).
func (p *Path) LineTo(x, y float64) { p.p.LineTo(x, y) }

// QuadTo adds a quadratic Bézier curve with control point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float64) { p.p.QuadTo(cx, cy, x, y) }

// CubicTo adds a cubic Bézier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.p.CubicTo(c1x, c1y, c2x, c2y, x, y)
}

// Close closes the current subpath.
func (p *Path) Close() { p.p.Close() }

// Reset removes all subpaths.
func (p *Path) Reset() { p.p.Reset() }

// Len returns the number of subpaths.
func (p *Path) Len() int { return p.p.Len() }

// Rect appends a closed rectangle.
func (p *Path) Rect(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// closingSink closes every subpath, since filling treats open subpaths as
// closed.
type closingSink struct {
	*raster.Rasterizer
}

func (s closingSink) End(bool) {
	s.Rasterizer.End(true)
}
