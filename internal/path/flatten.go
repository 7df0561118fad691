package path

import "math"

// Tolerance controls how finely cubic curves are flattened. Smaller values
// produce more segments.
const Tolerance = 0.1

// MaxSteps bounds the number of segments a single curve flattens to.
const MaxSteps = 128

// Sink receives flattened subpaths: Begin, zero or more Line calls, End.
type Sink interface {
	Begin(x, y float64)
	Line(x, y float64)
	End(close bool)
}

// Flatten transforms the path by m and emits it to sink as line segments.
// Subpaths without commands emit nothing.
func (p *Path) Flatten(m Matrix, sink Sink) {
	for i := range p.subpaths {
		flattenSubpath(&p.subpaths[i], m, sink)
	}
}

func flattenSubpath(s *Subpath, m Matrix, sink Sink) {
	if len(s.Commands) == 0 {
		return
	}
	cur := m.Apply(s.Points[0])
	sink.Begin(cur.X, cur.Y)
	pts := s.Points[1:]
	for _, cmd := range s.Commands {
		switch cmd {
		case CmdLine:
			cur = m.Apply(pts[0])
			sink.Line(cur.X, cur.Y)
		case CmdQuad:
			c1, c2 := QuadToCubic(cur, m.Apply(pts[0]), m.Apply(pts[1]))
			cur = flattenCubic(cur, c1, c2, m.Apply(pts[1]), sink)
		case CmdCubic:
			cur = flattenCubic(cur, m.Apply(pts[0]), m.Apply(pts[1]), m.Apply(pts[2]), sink)
		}
		pts = pts[cmd.Points():]
	}
	sink.End(s.Closed)
}

// QuadToCubic returns the cubic control points of the quadratic curve
// p0, c, p1.
func QuadToCubic(p0, c, p1 Point) (c1, c2 Point) {
	c1 = p0.Add(c.Sub(p0).Mul(2.0 / 3))
	c2 = p1.Add(c.Sub(p1).Mul(2.0 / 3))
	return c1, c2
}

// CubicSteps returns the number of line segments used for a cubic curve,
// estimated from the length of its control polygon.
func CubicSteps(p0, p1, p2, p3 Point) int {
	l := p0.Distance(p1) + p1.Distance(p2) + p2.Distance(p3)
	steps := int(math.Ceil(math.Sqrt(l / Tolerance)))
	return min(max(steps, 1), MaxSteps)
}

func flattenCubic(p0, p1, p2, p3 Point, sink Sink) Point {
	steps := CubicSteps(p0, p1, p2, p3)
	dt := 1 / float64(steps)
	for i := 1; i < steps; i++ {
		t := float64(i) * dt
		u := 1 - t
		a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
		sink.Line(
			a*p0.X+b*p1.X+c*p2.X+d*p3.X,
			a*p0.Y+b*p1.Y+c*p2.Y+d*p3.Y,
		)
	}
	sink.Line(p3.X, p3.Y)
	return p3
}
