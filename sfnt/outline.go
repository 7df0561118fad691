package sfnt

// Point is an outline point in font units.
type Point struct {
	X, Y    float32
	OnCurve bool
}

// Outline is a glyph outline made of closed quadratic contours.
type Outline struct {
	Contours [][]Point
}

// Pen receives the segments of an outline.
type Pen interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadTo(cx, cy, x, y float64)
	Close()
}

// NumPoints returns the total number of points in all contours.
func (o *Outline) NumPoints() int {
	n := 0
	for _, c := range o.Contours {
		n += len(c)
	}
	return n
}

// point returns the i-th point counted across all contours.
func (o *Outline) point(i int) (Point, bool) {
	if i < 0 {
		return Point{}, false
	}
	for _, c := range o.Contours {
		if i < len(c) {
			return c[i], true
		}
		i -= len(c)
	}
	return Point{}, false
}

type matrix2x2 struct {
	a, b, c, d float32
}

var identityMatrix = matrix2x2{1, 0, 0, 1}

func (m matrix2x2) apply(x, y float32) (float32, float32) {
	return m.a*x + m.c*y, m.b*x + m.d*y
}

func (o *Outline) transform(m matrix2x2) {
	if m == identityMatrix {
		return
	}
	for _, c := range o.Contours {
		for i := range c {
			c[i].X, c[i].Y = m.apply(c[i].X, c[i].Y)
		}
	}
}

func (o *Outline) translate(dx, dy float32) {
	if dx == 0 && dy == 0 {
		return
	}
	for _, c := range o.Contours {
		for i := range c {
			c[i].X += dx
			c[i].Y += dy
		}
	}
}

// Draw walks every contour and emits it to pen. Two consecutive off-curve
// points imply an on-curve point halfway between them. Each contour starts
// with MoveTo and ends with Close.
func (o *Outline) Draw(pen Pen) {
	for _, c := range o.Contours {
		drawContour(c, pen)
	}
}

func mid(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2, OnCurve: true}
}

func drawContour(c []Point, pen Pen) {
	n := len(c)
	if n == 0 {
		return
	}

	// Find an on-curve start point. Without one, start at the implied
	// point between the last and first control points.
	var start Point
	first := 0
	switch {
	case c[0].OnCurve:
		start, first = c[0], 1
	case c[n-1].OnCurve:
		start, first = c[n-1], 0
		n--
	default:
		start, first = mid(c[n-1], c[0]), 0
	}
	pen.MoveTo(float64(start.X), float64(start.Y))

	var ctrl Point
	haveCtrl := false
	for i := first; i < n; i++ {
		p := c[i]
		switch {
		case p.OnCurve && haveCtrl:
			pen.QuadTo(float64(ctrl.X), float64(ctrl.Y), float64(p.X), float64(p.Y))
			haveCtrl = false
		case p.OnCurve:
			pen.LineTo(float64(p.X), float64(p.Y))
		case haveCtrl:
			m := mid(ctrl, p)
			pen.QuadTo(float64(ctrl.X), float64(ctrl.Y), float64(m.X), float64(m.Y))
			ctrl = p
		default:
			ctrl, haveCtrl = p, true
		}
	}
	if haveCtrl {
		pen.QuadTo(float64(ctrl.X), float64(ctrl.Y), float64(start.X), float64(start.Y))
	}
	pen.Close()
}
