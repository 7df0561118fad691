// Package path accumulates vector paths and flattens them to line segments.
package path

import "math"

// Point represents a 2D point.
type Point struct {
	X, Y float64
}

// Lerp interpolates between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

func (p Point) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Command is a drawing command of a subpath.
type Command uint8

const (
	// CmdLine consumes one point: the end point.
	CmdLine Command = iota
	// CmdQuad consumes two points: the control point and the end point.
	CmdQuad
	// CmdCubic consumes three points: two control points and the end point.
	CmdCubic
)

// Points returns how many points the command consumes.
func (c Command) Points() int {
	return int(c) + 1
}

func (c Command) String() string {
	switch c {
	case CmdLine:
		return "Line"
	case CmdQuad:
		return "Quad"
	case CmdCubic:
		return "Cubic"
	}
	return "Command(?)"
}

// Subpath is a connected run of commands starting at Points[0].
// len(Points) is always 1 plus the points consumed by Commands.
type Subpath struct {
	Points   []Point
	Commands []Command
	Closed   bool
}

// Start returns the first point of the subpath.
func (s *Subpath) Start() Point { return s.Points[0] }

// Path is an ordered list of subpaths.
type Path struct {
	subpaths []Subpath
	current  Point
	// open is false after Close; the next drawing command starts a new
	// subpath at the current point.
	open bool
}

// New returns an empty path.
func New() *Path {
	return &Path{}
}

// MoveTo starts a new subpath at (x, y). A trailing subpath that has no
// commands yet is reused.
func (p *Path) MoveTo(x, y float64) {
	pt := Point{x, y}
	p.current = pt
	if n := len(p.subpaths); n > 0 && p.open && len(p.subpaths[n-1].Commands) == 0 {
		p.subpaths[n-1].Points[0] = pt
		return
	}
	p.subpaths = append(p.subpaths, Subpath{Points: []Point{pt}})
	p.open = true
}

// ensure returns the subpath commands are appended to.
func (p *Path) ensure() *Subpath {
	if !p.open || len(p.subpaths) == 0 {
		p.subpaths = append(p.subpaths, Subpath{Points: []Point{p.current}})
		p.open = true
	}
	return &p.subpaths[len(p.subpaths)-1]
}

// LineTo adds a line to (x, y).
func (p *Path) LineTo(x, y float64) {
	s := p.ensure()
	pt := Point{x, y}
	s.Points = append(s.Points, pt)
	s.Commands = append(s.Commands, CmdLine)
	p.current = pt
}

// QuadTo adds a quadratic Bézier curve with control point (cx, cy).
func (p *Path) QuadTo(cx, cy, x, y float64) {
	s := p.ensure()
	pt := Point{x, y}
	s.Points = append(s.Points, Point{cx, cy}, pt)
	s.Commands = append(s.Commands, CmdQuad)
	p.current = pt
}

// CubicTo adds a cubic Bézier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	s := p.ensure()
	pt := Point{x, y}
	s.Points = append(s.Points, Point{c1x, c1y}, Point{c2x, c2y}, pt)
	s.Commands = append(s.Commands, CmdCubic)
	p.current = pt
}

// Close closes the current subpath. The current point returns to its start.
func (p *Path) Close() {
	if !p.open || len(p.subpaths) == 0 {
		return
	}
	s := &p.subpaths[len(p.subpaths)-1]
	s.Closed = true
	p.current = s.Start()
	p.open = false
}

// Reset clears the path, keeping allocated storage.
func (p *Path) Reset() {
	p.subpaths = p.subpaths[:0]
	p.current = Point{}
	p.open = false
}

// Len returns the number of subpaths.
func (p *Path) Len() int { return len(p.subpaths) }

// Subpaths returns the subpaths. The slice is owned by the path.
func (p *Path) Subpaths() []Subpath { return p.subpaths }

// Current returns the current point.
func (p *Path) Current() Point { return p.current }

// Bounds returns the bounding box of all points of the transformed path,
// control points included. ok is false for a path without commands.
func (p *Path) Bounds(m Matrix) (lo, hi Point, ok bool) {
	lo = Point{math.Inf(1), math.Inf(1)}
	hi = Point{math.Inf(-1), math.Inf(-1)}
	for _, s := range p.subpaths {
		if len(s.Commands) == 0 {
			continue
		}
		for _, pt := range s.Points {
			q := m.Apply(pt)
			lo.X, lo.Y = min(lo.X, q.X), min(lo.Y, q.Y)
			hi.X, hi.Y = max(hi.X, q.X), max(hi.Y, q.Y)
			ok = true
		}
	}
	return lo, hi, ok
}
