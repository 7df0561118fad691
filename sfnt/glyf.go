package sfnt

import "github.com/gogpu/ttcanvas/internal/binread"

// MaxCompositeDepth bounds the nesting of composite glyphs. A component
// chain that reaches this depth, including a glyph that refers to itself,
// fails with a FormatError.
const MaxCompositeDepth = 8

// Simple glyph flags.
const (
	flagOnCurve     = 0x01
	flagXShort      = 0x02
	flagYShort      = 0x04
	flagRepeat      = 0x08
	flagXSameOrPlus = 0x10
	flagYSameOrPlus = 0x20
)

// Composite glyph component flags.
const (
	componentArgsAreWords   = 0x0001
	componentArgsAreXY      = 0x0002
	componentHaveScale      = 0x0008
	componentMoreComponents = 0x0020
	componentHaveXYScale    = 0x0040
	componentHaveTwoByTwo   = 0x0080
	componentUseMyMetrics   = 0x0200
	componentScaledOffset   = 0x0800
	componentUnscaledOffset = 0x1000
)

// GlyphMetrics holds per-glyph metrics in font units.
type GlyphMetrics struct {
	AdvanceWidth    uint16
	LeftSideBearing int16

	// Bounding box from the glyph header. All zero for a blank glyph.
	XMin, YMin, XMax, YMax int16
}

// Glyph is a decoded glyph: its metrics and its outline in font units.
type Glyph struct {
	Index   GlyphIndex
	Metrics GlyphMetrics
	Outline Outline
}

func (f *Font) parseLoca(r *binread.Reader) error {
	n := int(f.maxp.numGlyphs) + 1
	f.loca = make([]uint32, n)
	short := f.head.indexToLocFormat == 0
	for i := range f.loca {
		if short {
			f.loca[i] = uint32(r.U16()) * 2
		} else {
			f.loca[i] = r.U32()
		}
	}
	if r.Err() != nil {
		return wrapFormatError(r.Err(), "reading loca table")
	}
	for i := 1; i < n; i++ {
		if f.loca[i] < f.loca[i-1] {
			return formatError("loca offsets not ascending at glyph %d", i-1)
		}
	}
	return nil
}

// glyphData returns the glyf record of x. A zero-length record is a blank
// glyph and yields an empty slice.
func (f *Font) glyphData(x GlyphIndex) []byte {
	return f.glyf[f.loca[x]:f.loca[x+1]]
}

// LoadGlyph decodes glyph x. A glyph with an empty glyf record, such as a
// space, yields zero bounds, an empty outline and the advance from hmtx.
func (f *Font) LoadGlyph(x GlyphIndex) (*Glyph, error) {
	if int(x) >= f.NumGlyphs() {
		return nil, formatError("glyph index %d out of range, font has %d glyphs", x, f.NumGlyphs())
	}
	adv, lsb := f.HMetrics(x)
	g := &Glyph{
		Index:   x,
		Metrics: GlyphMetrics{AdvanceWidth: adv, LeftSideBearing: lsb},
	}

	data := f.glyphData(x)
	if len(data) == 0 {
		return g, nil
	}
	r := binread.New(data)
	r.Skip(2)
	g.Metrics.XMin, g.Metrics.YMin = r.I16(), r.I16()
	g.Metrics.XMax, g.Metrics.YMax = r.I16(), r.I16()
	if r.Err() != nil {
		return nil, wrapFormatError(r.Err(), "reading header of glyph %d", x)
	}

	metricsFrom, err := f.appendOutline(&g.Outline, x, 0)
	if err != nil {
		return nil, err
	}
	if metricsFrom != x {
		g.Metrics.AdvanceWidth, g.Metrics.LeftSideBearing = f.HMetrics(metricsFrom)
	}
	return g, nil
}

// appendOutline appends the contours of glyph x to out. It returns the
// glyph whose horizontal metrics the result should use, which differs from
// x when a component carries USE_MY_METRICS.
func (f *Font) appendOutline(out *Outline, x GlyphIndex, depth int) (GlyphIndex, error) {
	if depth >= MaxCompositeDepth {
		return x, formatError("composite glyph nesting exceeds depth %d at glyph %d", MaxCompositeDepth, x)
	}
	data := f.glyphData(x)
	if len(data) == 0 {
		return x, nil
	}
	r := binread.New(data)
	numContours := r.I16()
	r.Skip(8) // bounding box
	if r.Err() != nil {
		return x, wrapFormatError(r.Err(), "reading header of glyph %d", x)
	}
	if numContours >= 0 {
		return x, decodeSimple(out, r, int(numContours), x)
	}
	return f.decodeComposite(out, r, x, depth)
}

func decodeSimple(out *Outline, r *binread.Reader, numContours int, x GlyphIndex) error {
	if numContours == 0 {
		return nil
	}
	ends := make([]int, numContours)
	for i := range ends {
		ends[i] = int(r.U16())
		if i > 0 && ends[i] <= ends[i-1] {
			return formatError("glyph %d contour end points not ascending", x)
		}
	}
	numPoints := ends[numContours-1] + 1
	r.Skip(int(r.U16())) // instructions
	if r.Err() != nil {
		return wrapFormatError(r.Err(), "reading contours of glyph %d", x)
	}

	flags := make([]uint8, numPoints)
	for i := 0; i < numPoints; {
		fl := r.U8()
		if r.Err() != nil {
			return wrapFormatError(r.Err(), "reading flags of glyph %d", x)
		}
		flags[i] = fl
		i++
		if fl&flagRepeat != 0 {
			for n := int(r.U8()); n > 0 && i < numPoints; n-- {
				flags[i] = fl
				i++
			}
		}
	}

	points := make([]Point, numPoints)
	var v int32
	for i, fl := range flags {
		switch {
		case fl&flagXShort != 0:
			d := int32(r.U8())
			if fl&flagXSameOrPlus == 0 {
				d = -d
			}
			v += d
		case fl&flagXSameOrPlus == 0:
			v += int32(r.I16())
		}
		points[i].X = float32(v)
		points[i].OnCurve = fl&flagOnCurve != 0
	}
	v = 0
	for i, fl := range flags {
		switch {
		case fl&flagYShort != 0:
			d := int32(r.U8())
			if fl&flagYSameOrPlus == 0 {
				d = -d
			}
			v += d
		case fl&flagYSameOrPlus == 0:
			v += int32(r.I16())
		}
		points[i].Y = float32(v)
	}
	if r.Err() != nil {
		return wrapFormatError(r.Err(), "reading coordinates of glyph %d", x)
	}

	start := 0
	for _, end := range ends {
		out.Contours = append(out.Contours, points[start:end+1])
		start = end + 1
	}
	return nil
}

func (f *Font) decodeComposite(out *Outline, r *binread.Reader, x GlyphIndex, depth int) (GlyphIndex, error) {
	metricsFrom := x
	for {
		flags := r.U16()
		comp := GlyphIndex(r.U16())
		var arg1, arg2 int32
		switch {
		case flags&componentArgsAreWords != 0 && flags&componentArgsAreXY != 0:
			arg1, arg2 = int32(r.I16()), int32(r.I16())
		case flags&componentArgsAreWords != 0:
			arg1, arg2 = int32(r.U16()), int32(r.U16())
		case flags&componentArgsAreXY != 0:
			arg1, arg2 = int32(r.I8()), int32(r.I8())
		default:
			arg1, arg2 = int32(r.U8()), int32(r.U8())
		}

		m := identityMatrix
		switch {
		case flags&componentHaveScale != 0:
			s := r.F2Dot14()
			m = matrix2x2{s, 0, 0, s}
		case flags&componentHaveXYScale != 0:
			m = matrix2x2{r.F2Dot14(), 0, 0, r.F2Dot14()}
		case flags&componentHaveTwoByTwo != 0:
			m = matrix2x2{r.F2Dot14(), r.F2Dot14(), r.F2Dot14(), r.F2Dot14()}
		}
		if r.Err() != nil {
			return x, wrapFormatError(r.Err(), "reading components of glyph %d", x)
		}
		if int(comp) >= f.NumGlyphs() {
			return x, formatError("glyph %d refers to component %d out of range", x, comp)
		}

		var child Outline
		if _, err := f.appendOutline(&child, comp, depth+1); err != nil {
			return x, err
		}
		child.transform(m)

		var dx, dy float32
		if flags&componentArgsAreXY != 0 {
			dx, dy = float32(arg1), float32(arg2)
			if flags&componentScaledOffset != 0 && flags&componentUnscaledOffset == 0 {
				dx, dy = m.apply(dx, dy)
			}
		} else {
			// Align the child's point arg2 with the parent's point arg1.
			parent, ok := out.point(int(arg1))
			if !ok {
				return x, formatError("glyph %d anchor point %d out of range", x, arg1)
			}
			anchor, ok := child.point(int(arg2))
			if !ok {
				return x, formatError("glyph %d component %d anchor point %d out of range", x, comp, arg2)
			}
			dx, dy = parent.X-anchor.X, parent.Y-anchor.Y
		}
		child.translate(dx, dy)
		out.Contours = append(out.Contours, child.Contours...)

		if flags&componentUseMyMetrics != 0 {
			metricsFrom = comp
		}
		if flags&componentMoreComponents == 0 {
			return metricsFrom, nil
		}
	}
}
