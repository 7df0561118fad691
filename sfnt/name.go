package sfnt

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/gogpu/ttcanvas/internal/binread"
)

// NameID identifies a string in the name table.
type NameID uint16

// Common name identifiers.
const (
	NameIDCopyright         NameID = 0
	NameIDFamily            NameID = 1
	NameIDSubfamily         NameID = 2
	NameIDUniqueIdentifier  NameID = 3
	NameIDFull              NameID = 4
	NameIDVersion           NameID = 5
	NameIDPostScript        NameID = 6
	NameIDTypographicFamily NameID = 16
)

// Platform identifiers used by name and cmap records.
const (
	PlatformUnicode   = 0
	PlatformMacintosh = 1
	PlatformWindows   = 3
)

// languageEnglishUS is the Windows language ID for en-US.
const languageEnglishUS = 0x0409

// NameRecord is one decoded string of the name table.
type NameRecord struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     NameID
	Value      string
}

func (f *Font) parseName(r *binread.Reader) error {
	r.Skip(2) // format
	count := int(r.U16())
	storage := int(r.U16())
	if r.Err() != nil {
		return wrapFormatError(r.Err(), "reading name table")
	}

	f.name = make([]NameRecord, 0, count)
	for i := 0; i < count; i++ {
		rec := NameRecord{
			PlatformID: r.U16(),
			EncodingID: r.U16(),
			LanguageID: r.U16(),
			NameID:     NameID(r.U16()),
		}
		length, off := int(r.U16()), int(r.U16())
		if r.Err() != nil {
			return wrapFormatError(r.Err(), "reading name record %d", i)
		}
		raw := r.Sub(storage+off, length)
		if raw.Err() != nil {
			return wrapFormatError(raw.Err(), "name record %d string out of range", i)
		}

		dec := nameDecoder(rec.PlatformID, rec.EncodingID)
		if dec == nil {
			continue
		}
		s, err := dec.Bytes(raw.Bytes(length))
		if err != nil {
			// An undecodable string is dropped; the rest of the table is usable.
			continue
		}
		rec.Value = string(s)
		f.name = append(f.name, rec)
	}
	return nil
}

// nameDecoder returns the decoder for a platform/encoding pair, or nil when
// the encoding is not supported.
func nameDecoder(platform, enc uint16) *encoding.Decoder {
	switch {
	case platform == PlatformUnicode:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	case platform == PlatformWindows && (enc == 0 || enc == 1 || enc == 10):
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()
	case platform == PlatformMacintosh && enc == 0:
		return charmap.Macintosh.NewDecoder()
	default:
		return nil
	}
}

// Names returns all decodable name records.
func (f *Font) Names() []NameRecord {
	out := make([]NameRecord, len(f.name))
	copy(out, f.name)
	return out
}

// Name returns the string for id. English Windows strings are preferred,
// then any Windows string, then Unicode, then Macintosh. The empty string
// is returned when the font has no such name.
func (f *Font) Name(id NameID) string {
	best, bestRank := "", 0
	for _, rec := range f.name {
		if rec.NameID != id {
			continue
		}
		rank := nameRank(rec)
		if rank > bestRank {
			best, bestRank = rec.Value, rank
		}
	}
	return best
}

func nameRank(rec NameRecord) int {
	switch rec.PlatformID {
	case PlatformWindows:
		if rec.LanguageID == languageEnglishUS {
			return 4
		}
		return 3
	case PlatformUnicode:
		return 2
	case PlatformMacintosh:
		return 1
	}
	return 0
}

// Family returns the font family name.
func (f *Font) Family() string {
	if s := f.Name(NameIDTypographicFamily); s != "" {
		return s
	}
	return f.Name(NameIDFamily)
}

// FullName returns the full font name.
func (f *Font) FullName() string { return f.Name(NameIDFull) }
