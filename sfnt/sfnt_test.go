package sfnt

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	xsfnt "golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/ttcanvas/internal/fonttest"
)

func basicFont() *fonttest.Font {
	return &fonttest.Font{
		Family: "Basic",
		Glyphs: []fonttest.Glyph{
			{Advance: 500, Contours: [][]fonttest.Point{fonttest.Square(50, 0, 450, 700)}},
			{Advance: 250},
			{Advance: 1000, Contours: [][]fonttest.Point{fonttest.Square(0, 0, 1000, 1000)}},
		},
		CMap: map[rune]uint16{' ': 1, 'A': 2},
	}
}

func mustParse(t *testing.T, data []byte) *Font {
	t.Helper()
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return f
}

func TestParseBasic(t *testing.T) {
	f := mustParse(t, basicFont().Bytes())

	if got := f.NumGlyphs(); got != 3 {
		t.Errorf("NumGlyphs = %d, want 3", got)
	}
	if got := f.UnitsPerEm(); got != 1000 {
		t.Errorf("UnitsPerEm = %d, want 1000", got)
	}
	m := f.Metrics()
	if m.Ascender != 800 || m.Descender != -200 {
		t.Errorf("Metrics = %+v, want ascender 800 descender -200", m)
	}
	if got := m.Height(); got != 1000 {
		t.Errorf("Height = %d, want 1000", got)
	}
	if adv, _ := f.HMetrics(2); adv != 1000 {
		t.Errorf("HMetrics(2) advance = %d, want 1000", adv)
	}
	if got := len(f.Tables()); got != 9 {
		t.Errorf("len(Tables) = %d, want 9", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data func() []byte
		want string
	}{
		{"empty", func() []byte { return nil }, "reading signature"},
		{"cff", func() []byte {
			f := basicFont()
			f.Signature = uint32(MakeTag("OTTO"))
			return f.Bytes()
		}, "unsupported CFF outlines"},
		{"unknown signature", func() []byte {
			f := basicFont()
			f.Signature = 0xDEADBEEF
			return f.Bytes()
		}, "unknown signature"},
		{"missing hmtx", func() []byte {
			f := basicFont()
			f.Omit = []string{"hmtx"}
			return f.Bytes()
		}, "missing table 'hmtx'"},
		{"missing OS/2", func() []byte {
			f := basicFont()
			f.Omit = []string{"OS/2"}
			return f.Bytes()
		}, "missing table 'OS/2'"},
		{"missing glyf", func() []byte {
			f := basicFont()
			f.Omit = []string{"glyf"}
			return f.Bytes()
		}, "missing table 'glyf'"},
		{"bad head magic", func() []byte {
			f := basicFont()
			f.Replace = map[string][]byte{"head": make([]byte, 54)}
			return f.Bytes()
		}, "bad head magic"},
		{"truncated maxp", func() []byte {
			f := basicFont()
			f.Replace = map[string][]byte{"maxp": {0, 0}}
			return f.Bytes()
		}, "reading maxp table"},
		{"no cmap subtable", func() []byte {
			f := basicFont()
			f.Replace = map[string][]byte{"cmap": {0, 0, 0, 0}}
			return f.Bytes()
		}, "no supported cmap subtable"},
		{"short loca", func() []byte {
			f := basicFont()
			f.Replace = map[string][]byte{"loca": {0, 0}}
			return f.Bytes()
		}, "reading loca table"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data())
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("Parse error = %v, want *FormatError", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestParseCollection(t *testing.T) {
	a := basicFont()
	b := basicFont()
	b.Family = "Second"
	data := fonttest.Collection(a.Bytes(), b.Bytes())

	n, err := NumFonts(data)
	if err != nil {
		t.Fatalf("NumFonts: %v", err)
	}
	if n != 2 {
		t.Fatalf("NumFonts = %d, want 2", n)
	}

	for i, want := range []string{"Basic", "Second"} {
		f, err := ParseCollection(data, i)
		if err != nil {
			t.Fatalf("ParseCollection(%d): %v", i, err)
		}
		if got := f.Family(); got != want {
			t.Errorf("font %d Family = %q, want %q", i, got, want)
		}
		if got := f.GlyphIndex('A'); got != 2 {
			t.Errorf("font %d GlyphIndex('A') = %d, want 2", i, got)
		}
	}

	for _, index := range []int{2, -1} {
		_, err := ParseCollection(data, index)
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Errorf("ParseCollection(%d) error = %v, want *FormatError", index, err)
		}
	}
}

func TestParseSingleFontIndex(t *testing.T) {
	data := basicFont().Bytes()
	if n, err := NumFonts(data); err != nil || n != 1 {
		t.Fatalf("NumFonts = %d, %v, want 1, nil", n, err)
	}
	if _, err := ParseCollection(data, 1); err == nil {
		t.Fatal("ParseCollection(1) on a single font succeeded")
	}
}

func TestTag(t *testing.T) {
	if got := MakeTag("OS/2").String(); got != "OS/2" {
		t.Errorf("MakeTag(OS/2).String() = %q", got)
	}
	if got := MakeTag("cv"); got.String() != "cv  " {
		t.Errorf("MakeTag(cv).String() = %q, want padded", got.String())
	}
}

// Every codepoint the cmap enumerates must load without error.
func TestGoFontsLoadEveryMappedGlyph(t *testing.T) {
	for _, tt := range []struct {
		name string
		data []byte
	}{
		{"goregular", goregular.TTF},
		{"gomono", gomono.TTF},
	} {
		t.Run(tt.name, func(t *testing.T) {
			f := mustParse(t, tt.data)
			n := 0
			for r, x := range f.Codepoints() {
				if got := f.GlyphIndex(r); got != x {
					t.Fatalf("GlyphIndex(%U) = %d, Codepoints reported %d", r, got, x)
				}
				if _, err := f.LoadGlyph(x); err != nil {
					t.Fatalf("LoadGlyph(%d) for %U: %v", x, r, err)
				}
				n++
			}
			if n < 500 {
				t.Errorf("only %d codepoints mapped", n)
			}
		})
	}
}

func TestGoRegularMatchesXImage(t *testing.T) {
	f := mustParse(t, goregular.TTF)
	ref, err := xsfnt.Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("x/image sfnt.Parse: %v", err)
	}
	if got, want := f.NumGlyphs(), ref.NumGlyphs(); got != want {
		t.Fatalf("NumGlyphs = %d, x/image has %d", got, want)
	}
	if got, want := f.UnitsPerEm(), int(ref.UnitsPerEm()); got != want {
		t.Fatalf("UnitsPerEm = %d, x/image has %d", got, want)
	}

	var buf xsfnt.Buffer
	ppem := fixed.I(f.UnitsPerEm())
	for r, x := range f.Codepoints() {
		want, err := ref.GlyphIndex(&buf, r)
		if err != nil {
			t.Fatalf("x/image GlyphIndex(%U): %v", r, err)
		}
		if GlyphIndex(want) != x {
			t.Fatalf("GlyphIndex(%U) = %d, x/image has %d", r, x, want)
		}
		adv, err := ref.GlyphAdvance(&buf, want, ppem, font.HintingNone)
		if err != nil {
			t.Fatalf("x/image GlyphAdvance(%d): %v", want, err)
		}
		if got, _ := f.HMetrics(x); int(got) != adv.Round() {
			t.Fatalf("advance of %U = %d, x/image has %d", r, got, adv.Round())
		}
	}
}

func TestGoMonoMatchesGoText(t *testing.T) {
	f := mustParse(t, gomono.TTF)
	face, err := gotext.ParseTTF(bytes.NewReader(gomono.TTF))
	if err != nil {
		t.Fatalf("go-text ParseTTF: %v", err)
	}
	if got, want := f.UnitsPerEm(), int(face.Upem()); got != want {
		t.Fatalf("UnitsPerEm = %d, go-text has %d", got, want)
	}
	for _, r := range "Hello, World! 0123456789 ÀÉÎõü" {
		gid, ok := face.NominalGlyph(r)
		x := f.GlyphIndex(r)
		if !ok {
			if x != 0 {
				t.Errorf("GlyphIndex(%U) = %d, go-text has no mapping", r, x)
			}
			continue
		}
		if uint32(x) != uint32(gid) {
			t.Errorf("GlyphIndex(%U) = %d, go-text has %d", r, x, gid)
		}
		adv, _ := f.HMetrics(x)
		if want := face.HorizontalAdvance(gid); float32(adv) != want {
			t.Errorf("advance of %U = %d, go-text has %v", r, adv, want)
		}
	}
}

func TestGoRegularNames(t *testing.T) {
	f := mustParse(t, goregular.TTF)
	if got := f.Family(); got != "Go" {
		t.Errorf("Family = %q, want Go", got)
	}
	if got := f.FullName(); !strings.HasPrefix(got, "Go") {
		t.Errorf("FullName = %q, want a Go name", got)
	}
	if got := f.OS2().WeightClass; got != 400 {
		t.Errorf("WeightClass = %d, want 400", got)
	}
}
