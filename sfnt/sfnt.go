package sfnt

import (
	"github.com/gogpu/ttcanvas/internal/binread"
)

// Tag is a four byte table or format identifier.
type Tag uint32

// MakeTag returns the Tag for a four character string.
// Shorter strings are padded with spaces.
func MakeTag(s string) Tag {
	var b [4]byte
	for i := range b {
		b[i] = ' '
		if i < len(s) {
			b[i] = s[i]
		}
	}
	return Tag(uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]))
}

// String returns the tag as four characters.
func (t Tag) String() string {
	return string([]byte{byte(t >> 24), byte(t >> 16), byte(t >> 8), byte(t)})
}

// GlyphIndex identifies a glyph within a font. Index 0 is the missing glyph.
type GlyphIndex uint16

// Signatures of the supported and rejected containers.
var (
	tagTrueType   = MakeTag("true")
	tagCollection = MakeTag("ttcf")
	tagCFF        = MakeTag("OTTO")
)

const signatureTrueType = 0x00010000

// Table tags read by the parser.
var (
	tagHead = MakeTag("head")
	tagHhea = MakeTag("hhea")
	tagMaxp = MakeTag("maxp")
	tagHmtx = MakeTag("hmtx")
	tagName = MakeTag("name")
	tagOS2  = MakeTag("OS/2")
	tagCmap = MakeTag("cmap")
	tagLoca = MakeTag("loca")
	tagGlyf = MakeTag("glyf")
)

// TableRecord is one entry of the table directory. It refers into the font
// data and owns nothing.
type TableRecord struct {
	Tag      Tag
	Checksum uint32
	Offset   uint32
	Length   uint32
}

// Font is a parsed TrueType font.
type Font struct {
	data   []byte
	tables []TableRecord

	head head
	hhea hhea
	maxp maxp
	hmtx hmtx
	name []NameRecord
	os2  OS2
	cmap cmap
	loca []uint32
	glyf []byte
}

// Parse parses a single font, or the first font of a collection.
// The data must stay unmodified for the lifetime of the Font.
func Parse(data []byte) (*Font, error) {
	return ParseCollection(data, 0)
}

// NumFonts returns the number of fonts in data: the collection size for a
// TrueType collection and 1 for a bare font.
func NumFonts(data []byte) (int, error) {
	r := binread.New(data)
	sig := r.Tag()
	if r.Err() != nil {
		return 0, wrapFormatError(r.Err(), "reading signature")
	}
	switch Tag(sig) {
	case tagCollection:
		r.Skip(4) // version
		n := r.U32()
		if r.Err() != nil {
			return 0, wrapFormatError(r.Err(), "reading collection header")
		}
		return int(n), nil
	default:
		if err := checkSignature(sig); err != nil {
			return 0, err
		}
		return 1, nil
	}
}

// ParseCollection parses the font at index within a TrueType collection.
// For a bare font only index 0 is valid.
func ParseCollection(data []byte, index int) (*Font, error) {
	r := binread.New(data)
	dirOffset, err := directoryOffset(r, index)
	if err != nil {
		return nil, err
	}

	f := &Font{data: data}
	if err := f.readDirectory(r, dirOffset); err != nil {
		return nil, err
	}

	// hmtx needs head, hhea and maxp; loca needs head and maxp.
	steps := []struct {
		tag   Tag
		parse func(*binread.Reader) error
	}{
		{tagHead, f.parseHead},
		{tagHhea, f.parseHhea},
		{tagMaxp, f.parseMaxp},
		{tagHmtx, f.parseHmtx},
		{tagName, f.parseName},
		{tagOS2, f.parseOS2},
		{tagCmap, f.parseCmap},
		{tagLoca, f.parseLoca},
	}
	for _, s := range steps {
		tr, err := f.table(s.tag)
		if err != nil {
			return nil, err
		}
		if err := s.parse(tr); err != nil {
			return nil, err
		}
	}

	glyf, err := f.table(tagGlyf)
	if err != nil {
		return nil, err
	}
	f.glyf = glyf.Bytes(glyf.Len())
	if last := f.loca[len(f.loca)-1]; int(last) > len(f.glyf) {
		return nil, formatError("loca offset %d beyond glyf length %d", last, len(f.glyf))
	}
	return f, nil
}

func checkSignature(sig uint32) error {
	switch {
	case sig == signatureTrueType || Tag(sig) == tagTrueType:
		return nil
	case Tag(sig) == tagCFF:
		return formatError("unsupported CFF outlines (signature %q)", Tag(sig))
	default:
		return formatError("unknown signature %#08x", sig)
	}
}

// directoryOffset resolves the offset of the table directory for the font
// at index, following the collection header if there is one.
func directoryOffset(r *binread.Reader, index int) (int, error) {
	sig := r.Tag()
	if r.Err() != nil {
		return 0, wrapFormatError(r.Err(), "reading signature")
	}
	if Tag(sig) != tagCollection {
		if err := checkSignature(sig); err != nil {
			return 0, err
		}
		if index != 0 {
			return 0, formatError("font index %d out of range for a single font", index)
		}
		return 0, nil
	}

	major := r.U16()
	r.Skip(2) // minor version
	n := r.U32()
	if r.Err() != nil {
		return 0, wrapFormatError(r.Err(), "reading collection header")
	}
	if major != 1 && major != 2 {
		return 0, formatError("unsupported collection version %d", major)
	}
	if index < 0 || uint32(index) >= n {
		return 0, formatError("font index %d out of range, collection has %d fonts", index, n)
	}
	r.Skip(4 * index)
	off := r.U32()
	if r.Err() != nil {
		return 0, wrapFormatError(r.Err(), "reading collection offset table")
	}
	if int64(off) >= int64(r.Len()) {
		return 0, formatError("collection font %d offset %d out of range", index, off)
	}
	return int(off), nil
}

func (f *Font) readDirectory(r *binread.Reader, off int) error {
	r.Seek(off)
	sig := r.U32()
	if r.Err() != nil {
		return wrapFormatError(r.Err(), "reading table directory")
	}
	if err := checkSignature(sig); err != nil {
		return err
	}
	numTables := int(r.U16())
	r.Skip(6) // searchRange, entrySelector, rangeShift
	f.tables = make([]TableRecord, 0, numTables)
	for i := 0; i < numTables; i++ {
		rec := TableRecord{
			Tag:      Tag(r.Tag()),
			Checksum: r.U32(),
			Offset:   r.U32(),
			Length:   r.U32(),
		}
		if r.Err() != nil {
			return wrapFormatError(r.Err(), "reading table directory")
		}
		if int64(rec.Offset)+int64(rec.Length) > int64(len(f.data)) {
			return formatError("table '%s' extends past end of file", rec.Tag)
		}
		f.tables = append(f.tables, rec)
	}
	return nil
}

// table returns a reader over the table with the given tag.
func (f *Font) table(tag Tag) (*binread.Reader, error) {
	for _, rec := range f.tables {
		if rec.Tag == tag {
			return binread.New(f.data[rec.Offset : rec.Offset+rec.Length]), nil
		}
	}
	return nil, formatError("missing table '%s'", tag)
}

// Tables returns the table directory of the font.
func (f *Font) Tables() []TableRecord {
	out := make([]TableRecord, len(f.tables))
	copy(out, f.tables)
	return out
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int { return int(f.maxp.numGlyphs) }

// UnitsPerEm returns the size of the em square in font units.
func (f *Font) UnitsPerEm() int { return int(f.head.unitsPerEm) }

// Bounds returns the union of all glyph bounding boxes in font units.
func (f *Font) Bounds() (xMin, yMin, xMax, yMax int16) {
	return f.head.xMin, f.head.yMin, f.head.xMax, f.head.yMax
}

// MaxComponentDepth returns the composite nesting depth declared in maxp.
// It is informational; LoadGlyph enforces MaxCompositeDepth regardless.
func (f *Font) MaxComponentDepth() int { return int(f.maxp.maxComponentDepth) }
