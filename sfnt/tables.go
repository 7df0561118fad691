package sfnt

import (
	"github.com/gogpu/ttcanvas/internal/binread"
)

const headMagic = 0x5F0F3CF5

type head struct {
	unitsPerEm             uint16
	xMin, yMin, xMax, yMax int16
	macStyle               uint16
	indexToLocFormat       int16
}

type hhea struct {
	ascender         int16
	descender        int16
	lineGap          int16
	advanceWidthMax  uint16
	numberOfHMetrics uint16
}

type maxp struct {
	numGlyphs         uint16
	maxComponentDepth uint16
}

type hmtx struct {
	advances []uint16
	lsbs     []int16
}

// OS2 holds the fields of the OS/2 table used for metrics and selection.
// Fields introduced by later table versions are zero for older versions.
type OS2 struct {
	Version       uint16
	AvgCharWidth  int16
	WeightClass   uint16
	WidthClass    uint16
	FSType        uint16
	FSSelection   uint16
	TypoAscender  int16
	TypoDescender int16
	TypoLineGap   int16
	WinAscent     uint16
	WinDescent    uint16
	XHeight       int16
	CapHeight     int16
}

// fsSelectionUseTypoMetrics asks renderers to use the typo metrics.
const fsSelectionUseTypoMetrics = 1 << 7

// Metrics holds font-wide vertical metrics in font units.
// Descender is negative for descenders below the baseline.
type Metrics struct {
	Ascender   int16
	Descender  int16
	LineGap    int16
	XHeight    int16
	CapHeight  int16
	UnitsPerEm uint16
}

// Height returns the distance between consecutive baselines.
func (m Metrics) Height() int {
	return int(m.Ascender) - int(m.Descender) + int(m.LineGap)
}

func (f *Font) parseHead(r *binread.Reader) error {
	r.Skip(12) // version, fontRevision, checksumAdjustment
	magic := r.U32()
	r.Skip(2) // flags
	h := head{unitsPerEm: r.U16()}
	r.Skip(16) // created, modified
	h.xMin, h.yMin, h.xMax, h.yMax = r.I16(), r.I16(), r.I16(), r.I16()
	h.macStyle = r.U16()
	r.Skip(4) // lowestRecPPEM, fontDirectionHint
	h.indexToLocFormat = r.I16()
	if r.Err() != nil {
		return wrapFormatError(r.Err(), "reading head table")
	}
	if magic != headMagic {
		return formatError("bad head magic number %#08x", magic)
	}
	if h.unitsPerEm < 16 || h.unitsPerEm > 16384 {
		return formatError("unitsPerEm %d out of range", h.unitsPerEm)
	}
	if h.indexToLocFormat != 0 && h.indexToLocFormat != 1 {
		return formatError("unknown indexToLocFormat %d", h.indexToLocFormat)
	}
	f.head = h
	return nil
}

func (f *Font) parseHhea(r *binread.Reader) error {
	r.Skip(4) // version
	h := hhea{
		ascender:  r.I16(),
		descender: r.I16(),
		lineGap:   r.I16(),
	}
	h.advanceWidthMax = r.U16()
	r.Skip(22) // minLSB through metricDataFormat
	h.numberOfHMetrics = r.U16()
	if r.Err() != nil {
		return wrapFormatError(r.Err(), "reading hhea table")
	}
	f.hhea = h
	return nil
}

func (f *Font) parseMaxp(r *binread.Reader) error {
	version := r.U32()
	m := maxp{numGlyphs: r.U16()}
	if version >= 0x00010000 {
		r.Skip(24) // maxPoints through maxComponentElements
		m.maxComponentDepth = r.U16()
	}
	if r.Err() != nil {
		return wrapFormatError(r.Err(), "reading maxp table")
	}
	if m.numGlyphs == 0 {
		return formatError("font has no glyphs")
	}
	f.maxp = m
	return nil
}

func (f *Font) parseHmtx(r *binread.Reader) error {
	numGlyphs := int(f.maxp.numGlyphs)
	n := int(f.hhea.numberOfHMetrics)
	if n == 0 || n > numGlyphs {
		return formatError("numberOfHMetrics %d out of range for %d glyphs", n, numGlyphs)
	}
	h := hmtx{
		advances: make([]uint16, numGlyphs),
		lsbs:     make([]int16, numGlyphs),
	}
	for i := 0; i < n; i++ {
		h.advances[i] = r.U16()
		h.lsbs[i] = r.I16()
	}
	if r.Err() != nil {
		return wrapFormatError(r.Err(), "reading hmtx table")
	}
	last := h.advances[n-1]
	for i := n; i < numGlyphs; i++ {
		h.advances[i] = last
		// Some fonts omit the trailing bearings; they default to zero.
		if r.Remaining() >= 2 {
			h.lsbs[i] = r.I16()
		}
	}
	f.hmtx = h
	return nil
}

func (f *Font) parseOS2(r *binread.Reader) error {
	o := OS2{
		Version:      r.U16(),
		AvgCharWidth: r.I16(),
		WeightClass:  r.U16(),
		WidthClass:   r.U16(),
		FSType:       r.U16(),
	}
	if r.Err() != nil {
		return wrapFormatError(r.Err(), "reading OS/2 table")
	}
	// Early Apple fonts carry a truncated 68 byte table.
	if r.Len() >= 78 {
		r.Seek(62)
		o.FSSelection = r.U16()
		r.Skip(4) // usFirstCharIndex, usLastCharIndex
		o.TypoAscender = r.I16()
		o.TypoDescender = r.I16()
		o.TypoLineGap = r.I16()
		o.WinAscent = r.U16()
		o.WinDescent = r.U16()
	}
	if o.Version >= 2 && r.Len() >= 90 {
		r.Seek(86)
		o.XHeight = r.I16()
		o.CapHeight = r.I16()
	}
	if r.Err() != nil {
		return wrapFormatError(r.Err(), "reading OS/2 table")
	}
	f.os2 = o
	return nil
}

// OS2 returns the decoded OS/2 table.
func (f *Font) OS2() OS2 { return f.os2 }

// Metrics returns the font-wide vertical metrics. The typographic metrics
// from OS/2 are used when the font asks for them, hhea otherwise.
func (f *Font) Metrics() Metrics {
	m := Metrics{
		Ascender:   f.hhea.ascender,
		Descender:  f.hhea.descender,
		LineGap:    f.hhea.lineGap,
		XHeight:    f.os2.XHeight,
		CapHeight:  f.os2.CapHeight,
		UnitsPerEm: f.head.unitsPerEm,
	}
	if f.os2.FSSelection&fsSelectionUseTypoMetrics != 0 && f.os2.TypoAscender != 0 {
		m.Ascender = f.os2.TypoAscender
		m.Descender = f.os2.TypoDescender
		m.LineGap = f.os2.TypoLineGap
	}
	return m
}

// HMetrics returns the advance width and left side bearing of a glyph in
// font units. Out of range indices report zero.
func (f *Font) HMetrics(x GlyphIndex) (advance uint16, lsb int16) {
	if int(x) >= len(f.hmtx.advances) {
		return 0, 0
	}
	return f.hmtx.advances[x], f.hmtx.lsbs[x]
}
