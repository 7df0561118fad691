// Package ttcanvas is a software canvas that draws TrueType text, images
// and filled vector paths into an RGBA pixel buffer.
//
// # Quick Start
//
//	import "github.com/gogpu/ttcanvas"
//
//	cv := ttcanvas.NewCanvas(640, 480, ttcanvas.WithDPIScale(2))
//	cv.Clear(ttcanvas.White)
//
//	group, err := text.NewFontGroup(text.Source{Data: goregular.TTF})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	face := cv.Face(group, 16)
//	cv.DrawText(face, 10, 30, "Hello, ttcanvas!", ttcanvas.Black)
//
//	cv.SavePNG("output.png")
//
// # Coordinate System
//
// Drawing coordinates are logical units with the origin at the top-left
// corner, X increasing right and Y increasing down. They are multiplied by
// the DPI scale and rounded to whole device pixels right before
// compositing, so glyphs and image tiles never straddle pixel boundaries.
//
// # Architecture
//
// The library is organized into:
//   - Public API: Canvas, Pixmap, Color, Path
//   - sfnt: TrueType container, table and glyph outline parsing
//   - text: font groups, per-size faces and the glyph bitmap cache
//   - texture: pixel buffers and image decoding
//   - Internal: path (flattening), raster (scanline coverage),
//     blend (compositing), clip (clip rectangle stack)
//
// # Concurrency
//
// A Canvas is not safe for concurrent use. Separate canvases share no
// mutable state and may be used from different goroutines.
package ttcanvas
