// Command ttdemo demonstrates the ttcanvas library: it fills shapes, draws
// an image and renders text, then writes the result to a PNG file.
package main

import (
	"bytes"
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/go-text/typesetting/language"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/ttcanvas"
	"github.com/gogpu/ttcanvas/text"
)

func main() {
	var (
		width   = flag.Int("width", 800, "image width in device pixels")
		height  = flag.Int("height", 600, "image height in device pixels")
		scale   = flag.Float64("scale", 1, "device pixels per logical unit")
		size    = flag.Float64("size", 24, "text size in logical pixels")
		message = flag.String("text", "Hello, ttcanvas!", "text to render")
		output  = flag.String("output", "demo.png", "output file")
		verbose = flag.Bool("v", false, "log debug output")
	)
	flag.Parse()

	if *verbose {
		ttcanvas.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	fonts := text.MapProvider{"regular": goregular.TTF, "mono": gomono.TTF}
	group, err := text.LoadFontGroup(fonts,
		text.FontRef{Name: "regular", Language: language.NewLanguage("en")},
		text.FontRef{Name: "mono"},
	)
	if err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	cv := ttcanvas.NewCanvas(*width, *height,
		ttcanvas.WithDPIScale(*scale),
		ttcanvas.WithImageProvider(ttcanvas.MapImages{"checker": checkerPNG()}),
	)
	defer cv.Close()

	w, h := float64(*width) / *scale, float64(*height) / *scale
	drawGradientBackground(cv, w, h)
	drawShapesDemo(cv)
	drawPathDemo(cv)
	if err := drawImageDemo(cv); err != nil {
		log.Fatalf("Failed to draw image: %v", err)
	}
	if err := drawTextDemo(cv, group, *size, *message); err != nil {
		log.Fatalf("Failed to draw text: %v", err)
	}

	if err := cv.SavePNG(*output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d)\n", *output, *width, *height)
}

func drawGradientBackground(cv *ttcanvas.Canvas, w, h float64) {
	steps := 100
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps)
		c := ttcanvas.RGB(0.1+t*0.4, 0.2+t*0.3, 0.4+t*0.2)
		cv.FillRect(0, h*t, w, h/float64(steps)+1, c)
	}
}

// circle appends a circle built from four cubic arcs.
func circle(p *ttcanvas.Path, cx, cy, r float64) {
	const k = 0.5522847498
	p.MoveTo(cx+r, cy)
	p.CubicTo(cx+r, cy+k*r, cx+k*r, cy+r, cx, cy+r)
	p.CubicTo(cx-k*r, cy+r, cx-r, cy+k*r, cx-r, cy)
	p.CubicTo(cx-r, cy-k*r, cx-k*r, cy-r, cx, cy-r)
	p.CubicTo(cx+k*r, cy-r, cx+r, cy-k*r, cx+r, cy)
	p.Close()
}

func drawShapesDemo(cv *ttcanvas.Canvas) {
	colors := []ttcanvas.Color{
		ttcanvas.RGBA(1, 0.3, 0.3, 0.8),
		ttcanvas.RGBA(0.3, 1, 0.3, 0.8),
		ttcanvas.RGBA(0.3, 0.3, 1, 0.8),
	}
	centers := [][2]float64{{150, 150}, {200, 150}, {175, 200}}
	for i, c := range centers {
		p := ttcanvas.NewPath()
		circle(p, c[0], c[1], 60)
		cv.FillPath(p, ttcanvas.FillNonZero, colors[i])
	}

	// Clipped rectangles
	cv.PushClip(350, 100, 120, 80)
	for i := range 6 {
		cv.FillRect(330+float64(i)*30, 90, 20, 100, ttcanvas.RGB(1, 0.8, 0))
	}
	cv.PopClip()
}

func drawPathDemo(cv *ttcanvas.Canvas) {
	// Star with a hollow center under the even-odd rule
	const points = 5
	outerR, innerR := 60.0, 30.0
	cx, cy := 600.0, 150.0

	p := ttcanvas.NewPath()
	for i := 0; i < points; i++ {
		angle := float64(2*i) * 2 * math.Pi / points
		x := cx + outerR*math.Cos(angle-math.Pi/2)
		y := cy + outerR*math.Sin(angle-math.Pi/2)
		if i == 0 {
			p.MoveTo(x, y)
		} else {
			p.LineTo(x, y)
		}
	}
	p.Close()
	cv.FillPath(p, ttcanvas.FillEvenOdd, ttcanvas.RGB(1, 1, 0))

	// Wave
	wave := ttcanvas.NewPath()
	wave.MoveTo(150, 400)
	wave.CubicTo(200, 350, 250, 450, 300, 400)
	wave.QuadTo(375, 340, 450, 400)
	wave.LineTo(450, 420)
	wave.LineTo(150, 420)
	cv.FillPath(wave, ttcanvas.FillNonZero, ttcanvas.RGBA(1, 0.5, 0, 0.9))

	p.Reset()
	circle(p, 600, 400, innerR)
	cv.FillPath(p, ttcanvas.FillNonZero, ttcanvas.White)
}

func drawImageDemo(cv *ttcanvas.Canvas) error {
	if err := cv.DrawImage("checker", 40, 300, 0, 0); err != nil {
		return err
	}
	return cv.DrawImage("checker", 40, 450, 96, 48)
}

func drawTextDemo(cv *ttcanvas.Canvas, group *text.FontGroup, size float64, message string) error {
	face := cv.Face(group, size)
	m := face.Metrics()
	y := 520.0
	x := (float64(cv.Width())/cv.DPIScale() - cv.MeasureText(face, message)) / 2

	if _, err := cv.DrawText(face, x+2, y+2, message, ttcanvas.RGBA(0, 0, 0, 0.5)); err != nil {
		return err
	}
	if _, err := cv.DrawText(face, x, y, message, ttcanvas.White); err != nil {
		return err
	}

	gray := cv.Face(group, size*0.6, text.WithSubpixel(false))
	y += m.Height() / cv.DPIScale()
	_, err := cv.DrawText(gray, 20, y, "grayscale: 0123456789 àéîõü", ttcanvas.Hex("#ffeeaa"))
	return err
}

// checkerPNG encodes a small checkerboard used as the demo image.
func checkerPNG() []byte {
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := range 64 {
		for x := range 64 {
			c := color.NRGBA{R: 40, G: 40, B: 60, A: 255}
			if (x/8+y/8)%2 == 0 {
				c = color.NRGBA{R: 230, G: 230, B: 240, A: 200}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Fatalf("Failed to encode image: %v", err)
	}
	return buf.Bytes()
}
