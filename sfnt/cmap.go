package sfnt

import (
	"cmp"
	"iter"
	"slices"

	"github.com/gogpu/ttcanvas/internal/binread"
)

// cmapRange maps the codepoints first..last. For one-to-one ranges the
// glyph of first is glyph and each following codepoint adds one; for
// many-to-one ranges every codepoint maps to glyph.
type cmapRange struct {
	first, last rune
	glyph       GlyphIndex
}

// cmap holds two disjoint, ascending range tables. Lookups try the
// one-to-one table first and fall back to the many-to-one table.
type cmap struct {
	oneToOne  []cmapRange
	manyToOne []cmapRange
}

type encodingID struct {
	platform, encoding uint16
}

// cmapPriority is the order in which encoding records are tried.
// Full-repertoire Unicode subtables come before BMP-only ones.
var cmapPriority = []encodingID{
	{PlatformWindows, 10},
	{PlatformUnicode, 6},
	{PlatformUnicode, 4},
	{PlatformWindows, 1},
	{PlatformUnicode, 3},
	{PlatformUnicode, 2},
	{PlatformUnicode, 1},
	{PlatformUnicode, 0},
	{PlatformWindows, 0},
	{PlatformMacintosh, 0},
}

const (
	cmapFormatByte          = 0
	cmapFormatSegmentDelta  = 4
	cmapFormatSegmented     = 12
	cmapFormatManyToOne     = 13
	maxUnicode         rune = 0x10FFFF
)

func (f *Font) parseCmap(r *binread.Reader) error {
	r.Skip(2) // version
	n := int(r.U16())
	subtables := make(map[encodingID]uint32, n)
	for i := 0; i < n; i++ {
		id := encodingID{r.U16(), r.U16()}
		off := r.U32()
		if _, dup := subtables[id]; !dup {
			subtables[id] = off
		}
	}
	if r.Err() != nil {
		return wrapFormatError(r.Err(), "reading cmap encoding records")
	}

	numGlyphs := f.maxp.numGlyphs
	found := false
	for _, id := range cmapPriority {
		off, ok := subtables[id]
		if !ok {
			continue
		}
		format, err := cmapFormat(r, off)
		if err != nil {
			return err
		}
		if format == cmapFormatManyToOne {
			// Handled by the fallback pass below.
			continue
		}
		ranges, ok, err := parseCmapSubtable(r, off, format, numGlyphs)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		f.cmap.oneToOne = normalizeRanges(ranges, false)
		found = true
		break
	}

	// Format 13 subtables supply the many-to-one fallback table.
	for _, id := range cmapPriority {
		off, ok := subtables[id]
		if !ok {
			continue
		}
		format, err := cmapFormat(r, off)
		if err != nil {
			return err
		}
		if format != cmapFormatManyToOne {
			continue
		}
		ranges, _, err := parseCmapSubtable(r, off, format, numGlyphs)
		if err != nil {
			return err
		}
		f.cmap.manyToOne = normalizeRanges(ranges, true)
		found = true
		break
	}

	if !found {
		return formatError("no supported cmap subtable")
	}
	return nil
}

func cmapFormat(r *binread.Reader, off uint32) (uint16, error) {
	r.Seek(int(off))
	format := r.U16()
	if r.Err() != nil {
		return 0, wrapFormatError(r.Err(), "cmap subtable offset %d out of range", off)
	}
	return format, nil
}

// parseCmapSubtable decodes the subtable at off. It reports ok == false for
// formats it does not support.
func parseCmapSubtable(r *binread.Reader, off uint32, format, numGlyphs uint16) ([]cmapRange, bool, error) {
	r.Seek(int(off) + 2)
	var (
		ranges []cmapRange
		err    error
	)
	switch format {
	case cmapFormatByte:
		ranges, err = parseCmap0(r, numGlyphs)
	case cmapFormatSegmentDelta:
		ranges, err = parseCmap4(r, int(off), numGlyphs)
	case cmapFormatSegmented, cmapFormatManyToOne:
		ranges, err = parseCmap12(r, format == cmapFormatManyToOne, numGlyphs)
	default:
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return ranges, true, nil
}

// rangeBuilder merges consecutive one-to-one mappings into ranges.
type rangeBuilder struct {
	ranges    []cmapRange
	numGlyphs uint16
}

func (b *rangeBuilder) add(c rune, g uint16) {
	if g == 0 || g >= b.numGlyphs {
		return
	}
	if n := len(b.ranges); n > 0 {
		last := &b.ranges[n-1]
		if last.last+1 == c && rune(last.glyph)+(c-last.first) == rune(g) {
			last.last = c
			return
		}
	}
	b.ranges = append(b.ranges, cmapRange{first: c, last: c, glyph: GlyphIndex(g)})
}

func parseCmap0(r *binread.Reader, numGlyphs uint16) ([]cmapRange, error) {
	r.Skip(4) // length, language
	ids := r.Bytes(256)
	if r.Err() != nil {
		return nil, wrapFormatError(r.Err(), "reading cmap format 0")
	}
	b := rangeBuilder{numGlyphs: numGlyphs}
	for c, g := range ids {
		b.add(rune(c), uint16(g))
	}
	return b.ranges, nil
}

func parseCmap4(r *binread.Reader, base int, numGlyphs uint16) ([]cmapRange, error) {
	r.Skip(4) // length, language
	segCount := int(r.U16()) / 2
	r.Skip(6) // searchRange, entrySelector, rangeShift
	if r.Err() != nil {
		return nil, wrapFormatError(r.Err(), "reading cmap format 4 header")
	}

	ends := make([]uint16, segCount)
	starts := make([]uint16, segCount)
	deltas := make([]uint16, segCount)
	rangeOffsets := make([]uint16, segCount)
	for i := range ends {
		ends[i] = r.U16()
	}
	r.Skip(2) // reservedPad
	for i := range starts {
		starts[i] = r.U16()
	}
	for i := range deltas {
		deltas[i] = r.U16()
	}
	rangeOffsetsPos := r.Offset()
	for i := range rangeOffsets {
		rangeOffsets[i] = r.U16()
	}
	if r.Err() != nil {
		return nil, wrapFormatError(r.Err(), "reading cmap format 4 segments")
	}

	b := rangeBuilder{numGlyphs: numGlyphs}
	for i := 0; i < segCount; i++ {
		start, end := uint32(starts[i]), uint32(ends[i])
		if start > end || start == 0xFFFF {
			continue
		}
		if rangeOffsets[i] == 0 {
			for c := start; c <= end; c++ {
				b.add(rune(c), uint16(c)+deltas[i])
			}
			continue
		}
		// idRangeOffset is relative to its own position in the table.
		addr := rangeOffsetsPos + 2*i + int(rangeOffsets[i])
		for c := start; c <= end; c++ {
			r.Seek(addr + 2*int(c-start))
			g := r.U16()
			if r.Err() != nil {
				return nil, wrapFormatError(r.Err(), "cmap format 4 glyph array at %#x", base)
			}
			if g != 0 {
				g += deltas[i]
			}
			b.add(rune(c), g)
		}
	}
	return b.ranges, nil
}

func parseCmap12(r *binread.Reader, manyToOne bool, numGlyphs uint16) ([]cmapRange, error) {
	r.Skip(2 + 4 + 4) // reserved, length, language
	n := r.U32()
	if r.Err() != nil {
		return nil, wrapFormatError(r.Err(), "reading cmap format 12/13 header")
	}
	if int64(n)*12 > int64(r.Remaining()) {
		return nil, formatError("cmap group count %d exceeds table size", n)
	}

	ranges := make([]cmapRange, 0, n)
	for i := uint32(0); i < n; i++ {
		first, last, glyph := r.U32(), r.U32(), r.U32()
		if first > last || first > uint32(maxUnicode) {
			continue
		}
		last = min(last, uint32(maxUnicode))
		if manyToOne {
			if glyph == 0 || glyph >= uint32(numGlyphs) {
				continue
			}
		} else {
			// Clip the group to the glyphs that exist.
			if glyph >= uint32(numGlyphs) {
				continue
			}
			if span := uint32(numGlyphs) - glyph - 1; last-first > span {
				last = first + span
			}
			if glyph == 0 {
				if first == last {
					continue
				}
				first, glyph = first+1, 1
			}
		}
		ranges = append(ranges, cmapRange{first: rune(first), last: rune(last), glyph: GlyphIndex(glyph)})
	}
	if r.Err() != nil {
		return nil, wrapFormatError(r.Err(), "reading cmap groups")
	}
	return ranges, nil
}

// normalizeRanges sorts ranges and trims overlaps so that the table stays
// disjoint and ascending. Earlier ranges win.
func normalizeRanges(ranges []cmapRange, manyToOne bool) []cmapRange {
	slices.SortStableFunc(ranges, func(a, b cmapRange) int { return cmp.Compare(a.first, b.first) })
	out := ranges[:0]
	for _, rg := range ranges {
		if n := len(out); n > 0 && rg.first <= out[n-1].last {
			if rg.last <= out[n-1].last {
				continue
			}
			shift := out[n-1].last + 1 - rg.first
			rg.first += shift
			if !manyToOne {
				rg.glyph += GlyphIndex(shift)
			}
		}
		out = append(out, rg)
	}
	return slices.Clip(out)
}

func searchRanges(ranges []cmapRange, r rune) (cmapRange, bool) {
	i, ok := slices.BinarySearchFunc(ranges, r, func(rg cmapRange, r rune) int {
		switch {
		case rg.last < r:
			return -1
		case rg.first > r:
			return 1
		}
		return 0
	})
	if !ok {
		return cmapRange{}, false
	}
	return ranges[i], true
}

// GlyphIndex returns the glyph for r, or 0 when the font has no mapping.
func (f *Font) GlyphIndex(r rune) GlyphIndex {
	if rg, ok := searchRanges(f.cmap.oneToOne, r); ok {
		return rg.glyph + GlyphIndex(r-rg.first)
	}
	if rg, ok := searchRanges(f.cmap.manyToOne, r); ok {
		return rg.glyph
	}
	return 0
}

// Codepoints iterates over every mapped codepoint in ascending order of the
// one-to-one table, followed by the many-to-one codepoints it does not
// already cover.
func (f *Font) Codepoints() iter.Seq2[rune, GlyphIndex] {
	return func(yield func(rune, GlyphIndex) bool) {
		for _, rg := range f.cmap.oneToOne {
			for c := rg.first; c <= rg.last; c++ {
				if !yield(c, rg.glyph+GlyphIndex(c-rg.first)) {
					return
				}
			}
		}
		for _, rg := range f.cmap.manyToOne {
			for c := rg.first; c <= rg.last; c++ {
				if _, shadowed := searchRanges(f.cmap.oneToOne, c); shadowed {
					continue
				}
				if !yield(c, rg.glyph) {
					return
				}
			}
		}
	}
}
