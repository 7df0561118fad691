package ttcanvas

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/ttcanvas/internal/fonttest"
	"github.com/gogpu/ttcanvas/text"
	"github.com/gogpu/ttcanvas/texture"
)

func randomPixmap(seed uint64, w, h int) *Pixmap {
	rng := rand.New(rand.NewPCG(seed, seed))
	pm := NewPixmap(w, h)
	for i := range pm.Data() {
		pm.Data()[i] = byte(rng.UintN(256))
	}
	return pm
}

// checkRect verifies that pixels inside r have color in and all others
// have color out.
func checkRect(t *testing.T, pm *Pixmap, r image.Rectangle, in, out Color) {
	t.Helper()
	for y := range pm.Height() {
		for x := range pm.Width() {
			want := out
			if image.Pt(x, y).In(r) {
				want = in
			}
			if got := pm.GetPixel(x, y); got != want {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestFillRectTransparent(t *testing.T) {
	for _, b := range []Blending{BlendScalar, BlendWide} {
		pm := randomPixmap(5, 37, 9)
		want := bytes.Clone(pm.Data())
		cv := NewCanvas(0, 0, WithPixmap(pm), WithBlender(b))

		cv.FillRect(0, 0, 37, 9, Color{R: 200, G: 100, B: 50, A: 0})
		if !bytes.Equal(pm.Data(), want) {
			t.Errorf("%v: FillRect with alpha 0 changed the pixmap", b)
		}
	}
}

func TestFillRectDPIRounding(t *testing.T) {
	cv := NewCanvas(8, 8, WithDPIScale(1.5))
	cv.Clear(White)

	// 1*1.5 rounds to 2 and 3*1.5 rounds to 5.
	cv.FillRect(1, 1, 2, 2, Black)
	checkRect(t, cv.Pixmap(), image.Rect(2, 2, 5, 5), Black, White)
}

func TestFillRectOutsideCanvas(t *testing.T) {
	cv := NewCanvas(4, 4)
	cv.FillRect(-10, -10, 12, 12, Black)
	checkRect(t, cv.Pixmap(), image.Rect(0, 0, 2, 2), Black, Transparent)
}

func TestClipStack(t *testing.T) {
	cv := NewCanvas(6, 6)
	red := Color{R: 255, A: 255}

	cv.PushClip(0, 0, 2, 3)
	cv.PushClip(10, 10, 1, 1)
	if !cv.ClipBounds().Empty() {
		t.Fatalf("disjoint clip = %v, want empty", cv.ClipBounds())
	}
	cv.FillRect(0, 0, 6, 6, red)
	checkRect(t, cv.Pixmap(), image.Rectangle{}, red, Transparent)

	cv.PopClip()
	cv.FillRect(0, 0, 6, 6, red)
	checkRect(t, cv.Pixmap(), image.Rect(0, 0, 2, 3), red, Transparent)

	cv.PopClip()
	cv.PopClip()
	if got := cv.ClipBounds(); got != image.Rect(0, 0, 6, 6) {
		t.Errorf("clip after popping everything = %v", got)
	}
}

func TestDrawTextureNearest(t *testing.T) {
	red := Color{R: 255, A: 255}
	blue := Color{B: 255, A: 255}
	tex, _ := texture.NewRGBA(2, 1)
	tex.Set(0, 0, red.NRGBA())
	tex.Set(1, 0, blue.NRGBA())

	cv := NewCanvas(5, 3)
	cv.DrawTexture(tex, 0, 0, 4, 2, White)
	want := [][]Color{
		{red, red, blue, blue, Transparent},
		{red, red, blue, blue, Transparent},
		{Transparent, Transparent, Transparent, Transparent, Transparent},
	}
	for y, row := range want {
		for x, c := range row {
			if got := cv.Pixmap().GetPixel(x, y); got != c {
				t.Errorf("pixel (%d, %d) = %v, want %v", x, y, got, c)
			}
		}
	}
}

type grayTexture struct {
	w, h int
	pix  []byte
}

func (g grayTexture) Width() int             { return g.w }
func (g grayTexture) Height() int            { return g.h }
func (g grayTexture) Format() texture.Format { return texture.FormatGray8 }
func (g grayTexture) Stride() int            { return g.w }
func (g grayTexture) Pix() []byte            { return g.pix }

func TestDrawTextureGrayTinted(t *testing.T) {
	green := Color{G: 255, A: 255}
	cv := NewCanvas(2, 1)
	cv.Clear(White)
	cv.DrawTexture(grayTexture{w: 2, h: 1, pix: []byte{255, 0}}, 0, 0, 2, 1, green)

	if got := cv.Pixmap().GetPixel(0, 0); got != green {
		t.Errorf("covered pixel = %v, want %v", got, green)
	}
	if got := cv.Pixmap().GetPixel(1, 0); got != White {
		t.Errorf("uncovered pixel = %v, want white", got)
	}
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDrawImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{R: 40, G: 50, B: 60, A: 255})
	images := MapImages{"tile": encodePNG(t, img)}
	cv := NewCanvas(4, 4, WithImageProvider(images))

	if err := cv.DrawImage("tile", 1, 1, 0, 0); err != nil {
		t.Fatal(err)
	}
	if got, want := cv.Pixmap().GetPixel(1, 1), (Color{R: 10, G: 20, B: 30, A: 255}); got != want {
		t.Errorf("pixel (1, 1) = %v, want %v", got, want)
	}
	if got, want := cv.Pixmap().GetPixel(2, 2), (Color{R: 40, G: 50, B: 60, A: 255}); got != want {
		t.Errorf("pixel (2, 2) = %v, want %v", got, want)
	}

	// The decoded image is cached, so the provider is not consulted again.
	images["tile"] = []byte("garbage")
	if err := cv.DrawImage("tile", 0, 0, 4, 4); err != nil {
		t.Errorf("cached DrawImage: %v", err)
	}

	cv.Close()
	if err := cv.DrawImage("tile", 0, 0, 4, 4); !errors.Is(err, texture.ErrUnsupportedFormat) {
		t.Errorf("DrawImage after Close error = %v, want ErrUnsupportedFormat", err)
	}
	if err := cv.DrawImage("missing", 0, 0, 1, 1); !errors.Is(err, ErrImageNotFound) {
		t.Errorf("missing image error = %v, want ErrImageNotFound", err)
	}
	if err := NewCanvas(1, 1).DrawImage("tile", 0, 0, 1, 1); !errors.Is(err, ErrNoImageProvider) {
		t.Errorf("no provider error = %v, want ErrNoImageProvider", err)
	}
}

func squareGroup(t *testing.T) *text.FontGroup {
	t.Helper()
	f := &fonttest.Font{
		Glyphs: []fonttest.Glyph{
			{Advance: 500},
			{Advance: 250},
			{Advance: 600, LSB: 100, Contours: [][]fonttest.Point{fonttest.Square(100, 0, 600, 500)}},
		},
		CMap: map[rune]uint16{' ': 1, 'A': 2},
	}
	g, err := text.NewFontGroup(text.Source{Data: f.Bytes()})
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestDrawText(t *testing.T) {
	group := squareGroup(t)
	tests := []struct {
		name     string
		scale    float64
		size     float64
		baseline float64
		subpixel bool
	}{
		{"grayscale", 1, 10, 8, false},
		{"subpixel", 1, 10, 8, true},
		{"dpi scale 2", 2, 5, 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := NewCanvas(8, 10, WithDPIScale(tt.scale))
			cv.Clear(White)
			face := cv.Face(group, tt.size, text.WithSubpixel(tt.subpixel))

			adv, err := cv.DrawText(face, 0, tt.baseline, "A", Black)
			if err != nil {
				t.Fatal(err)
			}
			if want := 6 / tt.scale; adv != want {
				t.Errorf("advance = %v, want %v", adv, want)
			}
			// The glyph square spans x 1..6 and the five rows above the
			// baseline at device row 8. Its edge columns carry LCD fringes.
			pm := cv.Pixmap()
			for y := 3; y < 8; y++ {
				for x := 2; x < 5; x++ {
					if got := pm.GetPixel(x, y); got != Black {
						t.Fatalf("pixel (%d, %d) = %v, want black", x, y, got)
					}
				}
			}
			for _, p := range []image.Point{{3, 2}, {3, 8}, {7, 5}} {
				if got := pm.GetPixel(p.X, p.Y); got != White {
					t.Errorf("pixel %v = %v, want white", p, got)
				}
			}
		})
	}
}

func TestDrawTextClipped(t *testing.T) {
	cv := NewCanvas(8, 10)
	cv.Clear(White)
	face := cv.Face(squareGroup(t), 10, text.WithSubpixel(false))

	cv.PushClip(0, 0, 3, 10)
	if _, err := cv.DrawText(face, 0, 8, "A", Black); err != nil {
		t.Fatal(err)
	}
	if got := cv.Pixmap().GetPixel(2, 5); got != Black {
		t.Errorf("pixel inside clip = %v, want black", got)
	}
	if got := cv.Pixmap().GetPixel(3, 5); got != White {
		t.Errorf("pixel outside clip = %v, want white", got)
	}
}

func TestDrawTextFallbackAndMeasure(t *testing.T) {
	cv := NewCanvas(20, 10, WithDPIScale(2))
	face := cv.Face(squareGroup(t), 5)

	adv, err := cv.DrawText(face, 0, 4, "A?A", Black)
	if err != nil {
		t.Fatal(err)
	}
	// '?' is unmapped and advances like a space.
	if want := 3 + 1.25 + 3; adv != want {
		t.Errorf("advance = %v, want %v", adv, want)
	}
	if got := cv.MeasureText(face, "A?A"); got != adv {
		t.Errorf("MeasureText = %v, want %v", got, adv)
	}
}

func TestFillPath(t *testing.T) {
	cv := NewCanvas(8, 8)
	cv.Clear(White)
	p := NewPath()
	p.Rect(2, 2, 4, 4)
	cv.FillPath(p, FillNonZero, Black)
	checkRect(t, cv.Pixmap(), image.Rect(2, 2, 6, 6), Black, White)
}

func TestFillPathOpenSubpath(t *testing.T) {
	cv := NewCanvas(10, 10)
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(10, 0)
	p.LineTo(0, 10)
	cv.FillPath(p, FillNonZero, Black)

	if got := cv.Pixmap().GetPixel(2, 2); got != Black {
		t.Errorf("pixel inside open triangle = %v, want black", got)
	}
	if got := cv.Pixmap().GetPixel(8, 8); got != Transparent {
		t.Errorf("pixel outside triangle = %v, want transparent", got)
	}
}

func TestFillPathRules(t *testing.T) {
	nested := NewPath()
	nested.Rect(0, 0, 10, 10)
	nested.Rect(3, 3, 4, 4)

	tests := []struct {
		rule   FillRule
		center Color
	}{
		{FillNonZero, Black},
		{FillEvenOdd, Transparent},
	}
	for _, tt := range tests {
		t.Run(tt.rule.String(), func(t *testing.T) {
			cv := NewCanvas(10, 10)
			cv.FillPath(nested, tt.rule, Black)
			if got := cv.Pixmap().GetPixel(5, 5); got != tt.center {
				t.Errorf("center = %v, want %v", got, tt.center)
			}
			if got := cv.Pixmap().GetPixel(1, 1); got != Black {
				t.Errorf("ring = %v, want black", got)
			}
		})
	}
}

func TestBlendersProduceIdenticalScenes(t *testing.T) {
	group := squareGroup(t)
	draw := func(b Blending) []byte {
		pm := randomPixmap(11, 40, 24)
		cv := NewCanvas(0, 0, WithPixmap(pm), WithBlender(b))
		cv.FillRect(1, 1, 30, 10, Color{R: 200, G: 30, B: 90, A: 128})

		p := NewPath()
		p.MoveTo(2, 20)
		p.QuadTo(20, -5, 38, 20)
		p.CubicTo(30, 10, 10, 30, 2, 20)
		cv.FillPath(p, FillNonZero, Color{R: 10, G: 250, B: 20, A: 180})

		tex, _ := texture.NewRGBA(3, 3)
		for i := range tex.Pix() {
			tex.Pix()[i] = byte(37 * i)
		}
		cv.DrawTexture(tex, 5, 5, 20, 17, Color{R: 255, G: 128, B: 255, A: 200})

		if _, err := cv.DrawText(cv.Face(group, 12), 3, 18, "AAA", Color{R: 90, G: 90, B: 255, A: 255}); err != nil {
			t.Fatal(err)
		}
		return pm.Data()
	}

	if diff := cmp.Diff(draw(BlendScalar), draw(BlendWide)); diff != "" {
		t.Errorf("scalar and wide scenes differ (-scalar +wide):\n%s", diff)
	}
}
