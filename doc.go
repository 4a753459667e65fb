// Package easyfont is the data core of a GPU-instanced ASCII text renderer
// with crude syntax highlighting.
//
// # Overview
//
// A Font rasterizes the printable ASCII range of a TrueType font into a
// single-channel atlas once. Every frame, Draw turns a string into one glyph
// instance per character (pen position, glyph index, color index) and stages
// them as tightly packed float32s. A rendering backend uploads the staged
// bytes, the atlas bitmap, the glyph lookup table and the palette, and draws
// one instanced unit quad per character with the program from the shader
// package.
//
// # Quick Start
//
//	import "github.com/gogpu/easyfont"
//
//	f, err := easyfont.New(easyfont.WithPixelSize(48))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	call, err := f.DrawHighlighted("int x = 3; // three", [2]float32{8, 8}, 24, [2]float32{1280, 720})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// upload call.Instances and call.Uniforms.Bytes(), then draw 6 vertices
//	// call.Count times.
//
// # Coordinate System
//
// Pen positions are in atlas pixels scaled to the display size. The pen
// starts at (0, 0) and every newline moves it down by one line distance,
// which in the instance data is a decrease in Y. The shader flips Y and moves
// the origin to the upper-left corner of the screen.
//
// # Packages
//
//   - atlas: glyph metrics and bounds-checked lookup
//   - raster: packs and rasterizes glyphs into the atlas bitmap
//   - fontsource: finds a usable font file
//   - layout: text to glyph instances
//   - lexer: per-character color classes
//   - staging: bounded instance storage
//   - palette: the 256-entry color table
//   - shader: the WGSL program and buffer layouts
//   - textbuf: an editable text buffer with a caret
package easyfont
