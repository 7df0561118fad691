// Package fonttest builds small synthetic TrueType fonts for tests.
package fonttest

import (
	"encoding/binary"
	"slices"
	"sort"

	"golang.org/x/text/encoding/unicode"
)

// Point is an outline point in font units.
type Point struct {
	X, Y    int16
	OnCurve bool
}

// Component flags, as stored in the glyf table.
const (
	ArgsAreWords   = 0x0001
	ArgsAreXY      = 0x0002
	HaveScale      = 0x0008
	MoreComponents = 0x0020
	HaveXYScale    = 0x0040
	HaveTwoByTwo   = 0x0080
	UseMyMetrics   = 0x0200
	ScaledOffset   = 0x0800
)

// Component is one part of a composite glyph. Flags select how Arg1, Arg2
// and Transform are encoded; MoreComponents is set automatically.
type Component struct {
	Glyph      uint16
	Flags      uint16
	Arg1, Arg2 int16
	// Transform holds 1, 2 or 4 values for HaveScale, HaveXYScale and
	// HaveTwoByTwo respectively.
	Transform []float32
}

// Glyph describes a glyph. A glyph with neither contours nor components
// has an empty glyf record.
type Glyph struct {
	Advance    uint16
	LSB        int16
	Contours   [][]Point
	Components []Component
}

// Group is a cmap format 12/13 group.
type Group struct {
	First, Last rune
	Glyph       uint16
}

// Font describes a synthetic font. Zero fields get sensible defaults.
type Font struct {
	UnitsPerEm uint16
	Ascender   int16
	Descender  int16
	LineGap    int16
	XHeight    int16
	CapHeight  int16

	Family string
	Glyphs []Glyph

	// CMap is written as a format 4 subtable (3/1) for BMP codepoints and,
	// if any codepoint lies above the BMP, a format 12 subtable (3/10).
	CMap map[rune]uint16
	// ManyToOne, when set, is written as a format 13 subtable (0/6).
	ManyToOne []Group

	LongLoca bool
	// Signature overrides the sfnt version. Zero means 0x00010000.
	Signature uint32
	// Omit lists table tags left out of the directory.
	Omit []string
	// Replace substitutes the encoded bytes of a table.
	Replace map[string][]byte
}

// Square returns a clockwise rectangular contour.
func Square(x0, y0, x1, y1 int16) []Point {
	return []Point{
		{x0, y0, true},
		{x0, y1, true},
		{x1, y1, true},
		{x1, y0, true},
	}
}

// Bytes encodes the font.
func (f *Font) Bytes() []byte {
	if f.UnitsPerEm == 0 {
		f.UnitsPerEm = 1000
	}
	if f.Ascender == 0 && f.Descender == 0 {
		f.Ascender, f.Descender = 800, -200
	}
	if f.Family == "" {
		f.Family = "Test"
	}
	if len(f.Glyphs) == 0 {
		f.Glyphs = []Glyph{{Advance: 500}}
	}

	glyf, loca := f.glyf()
	tables := map[string][]byte{
		"head": f.head(),
		"hhea": f.hhea(),
		"maxp": f.maxp(),
		"hmtx": f.hmtx(),
		"name": f.name(),
		"OS/2": f.os2(),
		"cmap": f.cmap(),
		"loca": loca,
		"glyf": glyf,
	}
	for tag, b := range f.Replace {
		tables[tag] = b
	}
	for _, tag := range f.Omit {
		delete(tables, tag)
	}
	sig := f.Signature
	if sig == 0 {
		sig = 0x00010000
	}
	return assemble(sig, tables)
}

// Collection wraps fonts into a ttcf container.
func Collection(fonts ...[]byte) []byte {
	var b []byte
	b = append(b, "ttcf"...)
	b = be16(b, 1)
	b = be16(b, 0)
	b = be32(b, uint32(len(fonts)))
	header := 12 + 4*len(fonts)
	off := header
	for _, font := range fonts {
		b = be32(b, uint32(off))
		off += pad4(len(font))
	}
	for _, font := range fonts {
		shifted := relocate(font, uint32(len(b)))
		b = append(b, shifted...)
		for len(b)%4 != 0 {
			b = append(b, 0)
		}
	}
	return b
}

// relocate adds delta to every table offset of an encoded font so that it
// can be embedded in a collection.
func relocate(font []byte, delta uint32) []byte {
	out := slices.Clone(font)
	n := int(binary.BigEndian.Uint16(out[4:]))
	for i := 0; i < n; i++ {
		p := 12 + 16*i + 8
		binary.BigEndian.PutUint32(out[p:], binary.BigEndian.Uint32(out[p:])+delta)
	}
	return out
}

func assemble(sig uint32, tables map[string][]byte) []byte {
	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	var b []byte
	b = be32(b, sig)
	b = be16(b, uint16(len(tags)))
	b = be16(b, 0)
	b = be16(b, 0)
	b = be16(b, 0)
	off := 12 + 16*len(tags)
	for _, tag := range tags {
		data := tables[tag]
		b = append(b, tag...)
		b = be32(b, checksum(data))
		b = be32(b, uint32(off))
		b = be32(b, uint32(len(data)))
		off += pad4(len(data))
	}
	for _, tag := range tags {
		b = append(b, tables[tag]...)
		for len(b)%4 != 0 {
			b = append(b, 0)
		}
	}
	return b
}

func checksum(b []byte) uint32 {
	var sum uint32
	for i := 0; i < len(b); i += 4 {
		var w [4]byte
		copy(w[:], b[i:])
		sum += binary.BigEndian.Uint32(w[:])
	}
	return sum
}

func pad4(n int) int { return (n + 3) &^ 3 }

func be16(b []byte, v uint16) []byte { return binary.BigEndian.AppendUint16(b, v) }
func be32(b []byte, v uint32) []byte { return binary.BigEndian.AppendUint32(b, v) }

func (f *Font) head() []byte {
	var b []byte
	b = be32(b, 0x00010000) // version
	b = be32(b, 0x00010000) // fontRevision
	b = be32(b, 0)          // checksumAdjustment
	b = be32(b, 0x5F0F3CF5)
	b = be16(b, 0) // flags
	b = be16(b, f.UnitsPerEm)
	b = append(b, make([]byte, 16)...) // created, modified
	b = be16(b, 0)
	b = be16(b, uint16(f.Descender))
	b = be16(b, f.UnitsPerEm)
	b = be16(b, uint16(f.Ascender))
	b = be16(b, 0) // macStyle
	b = be16(b, 8) // lowestRecPPEM
	b = be16(b, 2) // fontDirectionHint
	if f.LongLoca {
		b = be16(b, 1)
	} else {
		b = be16(b, 0)
	}
	b = be16(b, 0) // glyphDataFormat
	return b
}

func (f *Font) hhea() []byte {
	var maxAdv uint16
	for _, g := range f.Glyphs {
		maxAdv = max(maxAdv, g.Advance)
	}
	var b []byte
	b = be32(b, 0x00010000)
	b = be16(b, uint16(f.Ascender))
	b = be16(b, uint16(f.Descender))
	b = be16(b, uint16(f.LineGap))
	b = be16(b, maxAdv)
	b = append(b, make([]byte, 22)...)
	b = be16(b, uint16(len(f.Glyphs)))
	return b
}

func (f *Font) maxp() []byte {
	var b []byte
	b = be32(b, 0x00010000)
	b = be16(b, uint16(len(f.Glyphs)))
	b = append(b, make([]byte, 24)...)
	b = be16(b, 1) // maxComponentDepth
	return b
}

func (f *Font) hmtx() []byte {
	var b []byte
	for _, g := range f.Glyphs {
		b = be16(b, g.Advance)
		b = be16(b, uint16(g.LSB))
	}
	return b
}

func (f *Font) name() []byte {
	type rec struct {
		platform, encoding, language, id uint16
		value                            []byte
	}
	utf16 := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	wide, err := utf16.Bytes([]byte(f.Family))
	if err != nil {
		panic(err)
	}
	full, err := utf16.Bytes([]byte(f.Family + " Regular"))
	if err != nil {
		panic(err)
	}
	recs := []rec{
		{1, 0, 0, 1, []byte(f.Family)},
		{3, 1, 0x0409, 1, wide},
		{3, 1, 0x0409, 4, full},
	}

	var b, storage []byte
	b = be16(b, 0)
	b = be16(b, uint16(len(recs)))
	b = be16(b, uint16(6+12*len(recs)))
	for _, r := range recs {
		b = be16(b, r.platform)
		b = be16(b, r.encoding)
		b = be16(b, r.language)
		b = be16(b, r.id)
		b = be16(b, uint16(len(r.value)))
		b = be16(b, uint16(len(storage)))
		storage = append(storage, r.value...)
	}
	return append(b, storage...)
}

func (f *Font) os2() []byte {
	b := make([]byte, 96)
	binary.BigEndian.PutUint16(b[0:], 4)   // version
	binary.BigEndian.PutUint16(b[4:], 400) // usWeightClass
	binary.BigEndian.PutUint16(b[6:], 5)   // usWidthClass
	binary.BigEndian.PutUint16(b[62:], 1<<6)
	binary.BigEndian.PutUint16(b[68:], uint16(f.Ascender))
	binary.BigEndian.PutUint16(b[70:], uint16(f.Descender))
	binary.BigEndian.PutUint16(b[72:], uint16(f.LineGap))
	binary.BigEndian.PutUint16(b[74:], uint16(f.Ascender))
	binary.BigEndian.PutUint16(b[76:], uint16(-f.Descender))
	binary.BigEndian.PutUint16(b[86:], uint16(f.XHeight))
	binary.BigEndian.PutUint16(b[88:], uint16(f.CapHeight))
	return b
}

func (f *Font) cmap() []byte {
	var bmp, all []rune
	for r := range f.CMap {
		all = append(all, r)
		if r <= 0xFFFF {
			bmp = append(bmp, r)
		}
	}
	slices.Sort(bmp)
	slices.Sort(all)

	type sub struct {
		platform, encoding uint16
		data               []byte
	}
	subs := []sub{{3, 1, f.cmap4(bmp)}}
	if len(all) > len(bmp) {
		groups := make([]Group, 0, len(all))
		for _, r := range all {
			groups = append(groups, Group{First: r, Last: r, Glyph: f.CMap[r]})
		}
		subs = append(subs, sub{3, 10, cmap1213(12, groups)})
	}
	if len(f.ManyToOne) > 0 {
		subs = append(subs, sub{0, 6, cmap1213(13, f.ManyToOne)})
	}

	var b []byte
	b = be16(b, 0)
	b = be16(b, uint16(len(subs)))
	off := 4 + 8*len(subs)
	for _, s := range subs {
		b = be16(b, s.platform)
		b = be16(b, s.encoding)
		b = be32(b, uint32(off))
		off += len(s.data)
	}
	for _, s := range subs {
		b = append(b, s.data...)
	}
	return b
}

// cmap4 writes one segment per codepoint using idDelta, plus the final
// 0xFFFF segment.
func (f *Font) cmap4(runes []rune) []byte {
	segs := len(runes) + 1
	var b []byte
	b = be16(b, 4)
	b = be16(b, uint16(16+8*segs))
	b = be16(b, 0) // language
	b = be16(b, uint16(2*segs))
	b = be16(b, 0) // searchRange
	b = be16(b, 0) // entrySelector
	b = be16(b, 0) // rangeShift
	for _, r := range runes {
		b = be16(b, uint16(r))
	}
	b = be16(b, 0xFFFF)
	b = be16(b, 0) // reservedPad
	for _, r := range runes {
		b = be16(b, uint16(r))
	}
	b = be16(b, 0xFFFF)
	for _, r := range runes {
		b = be16(b, f.CMap[r]-uint16(r))
	}
	b = be16(b, 1)
	for range segs {
		b = be16(b, 0) // idRangeOffset
	}
	return b
}

func cmap1213(format uint16, groups []Group) []byte {
	var b []byte
	b = be16(b, format)
	b = be16(b, 0)
	b = be32(b, uint32(16+12*len(groups)))
	b = be32(b, 0) // language
	b = be32(b, uint32(len(groups)))
	for _, g := range groups {
		b = be32(b, uint32(g.First))
		b = be32(b, uint32(g.Last))
		b = be32(b, uint32(g.Glyph))
	}
	return b
}

func (f *Font) glyf() (glyf, loca []byte) {
	offsets := make([]int, 0, len(f.Glyphs)+1)
	for _, g := range f.Glyphs {
		offsets = append(offsets, len(glyf))
		switch {
		case len(g.Components) > 0:
			glyf = append(glyf, encodeComposite(g)...)
		case len(g.Contours) > 0:
			glyf = append(glyf, encodeSimple(g)...)
		}
		for len(glyf)%4 != 0 {
			glyf = append(glyf, 0)
		}
	}
	offsets = append(offsets, len(glyf))
	for _, off := range offsets {
		if f.LongLoca {
			loca = be32(loca, uint32(off))
		} else {
			loca = be16(loca, uint16(off/2))
		}
	}
	return glyf, loca
}

func bbox(g Glyph) (xMin, yMin, xMax, yMax int16) {
	first := true
	for _, c := range g.Contours {
		for _, p := range c {
			if first {
				xMin, yMin, xMax, yMax = p.X, p.Y, p.X, p.Y
				first = false
				continue
			}
			xMin, yMin = min(xMin, p.X), min(yMin, p.Y)
			xMax, yMax = max(xMax, p.X), max(yMax, p.Y)
		}
	}
	return
}

func encodeSimple(g Glyph) []byte {
	var b []byte
	b = be16(b, uint16(len(g.Contours)))
	xMin, yMin, xMax, yMax := bbox(g)
	b = be16(b, uint16(xMin))
	b = be16(b, uint16(yMin))
	b = be16(b, uint16(xMax))
	b = be16(b, uint16(yMax))
	end := -1
	var pts []Point
	for _, c := range g.Contours {
		end += len(c)
		b = be16(b, uint16(end))
		pts = append(pts, c...)
	}
	b = be16(b, 0) // instructionLength

	var flags []byte
	var xs, ys []byte
	var px, py int16
	for _, p := range pts {
		var fl byte
		if p.OnCurve {
			fl |= 0x01
		}
		xs, fl = encodeDelta(xs, fl, p.X-px, 0x02, 0x10)
		ys, fl = encodeDelta(ys, fl, p.Y-py, 0x04, 0x20)
		px, py = p.X, p.Y
		flags = append(flags, fl)
	}

	// Run-length encode the flags with the repeat bit.
	for i := 0; i < len(flags); {
		j := i + 1
		for j < len(flags) && flags[j] == flags[i] && j-i <= 255 {
			j++
		}
		if n := j - i - 1; n > 0 {
			b = append(b, flags[i]|0x08, byte(n))
		} else {
			b = append(b, flags[i])
		}
		i = j
	}
	b = append(b, xs...)
	return append(b, ys...)
}

func encodeDelta(b []byte, fl byte, d int16, short, same byte) ([]byte, byte) {
	switch {
	case d == 0:
		return b, fl | same
	case d > 0 && d < 256:
		return append(b, byte(d)), fl | short | same
	case d < 0 && d > -256:
		return append(b, byte(-d)), fl | short
	default:
		return be16(b, uint16(d)), fl
	}
}

func f2dot14(v float32) uint16 {
	return uint16(int16(v * 16384))
}

func encodeComposite(g Glyph) []byte {
	var b []byte
	b = be16(b, 0xFFFF) // numberOfContours = -1
	b = append(b, make([]byte, 8)...)
	for i, c := range g.Components {
		fl := c.Flags
		if i < len(g.Components)-1 {
			fl |= MoreComponents
		}
		b = be16(b, fl)
		b = be16(b, c.Glyph)
		if fl&ArgsAreWords != 0 {
			b = be16(b, uint16(c.Arg1))
			b = be16(b, uint16(c.Arg2))
		} else {
			b = append(b, byte(c.Arg1), byte(c.Arg2))
		}
		for _, v := range c.Transform {
			b = be16(b, f2dot14(v))
		}
	}
	return b
}
