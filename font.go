package easyfont

import (
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/easyfont/atlas"
	"github.com/gogpu/easyfont/fontsource"
	"github.com/gogpu/easyfont/layout"
	"github.com/gogpu/easyfont/lexer"
	"github.com/gogpu/easyfont/palette"
	"github.com/gogpu/easyfont/raster"
	"github.com/gogpu/easyfont/shader"
	"github.com/gogpu/easyfont/staging"
)

// DrawCall is everything a backend needs to draw one string.
type DrawCall struct {
	// Instances holds Count instances as little-endian float32 quadruples
	// (pen x, pen y, glyph index, color index). It aliases the Font's staging
	// storage and stays valid until the next successful Draw.
	Instances []byte

	// Count is the number of instances to draw.
	Count int

	// Uniforms for this call.
	Uniforms shader.Uniforms
}

// VertexCount is the number of vertices per instance.
func (c *DrawCall) VertexCount() int { return 6 }

// face is everything derived from one font source. It is replaced as a
// whole by Reload.
type face struct {
	source string
	name   string
	model  *atlas.Model
	bitmap *image.Gray
	engine *layout.Engine
	table  []byte
}

// Font is a rasterized font ready for per-frame drawing.
//
// A Font is meant to be driven by one rendering goroutine. Its methods are
// serialized by a mutex, so accidental concurrent use is safe but not
// parallel.
type Font struct {
	mu      sync.Mutex
	opts    options
	face    *face
	palette *palette.Palette
	lexer   *lexer.Lexer
	buf     *staging.Buffer
	scratch []staging.Instance
}

// New resolves a font source, rasterizes the glyph range and builds the
// atlas model.
//
// If no candidate yields a usable font the error wraps ErrNoFontSource.
func New(opts ...Option) (*Font, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	fc, err := loadFace(o)
	if err != nil {
		return nil, err
	}

	f := &Font{
		opts:    o,
		face:    fc,
		palette: palette.Default(),
		lexer:   o.lexer,
		buf:     staging.New(o.capacity),
	}
	if o.palette != nil {
		f.palette = o.palette.Clone()
	}
	if f.lexer == nil {
		f.lexer = lexer.New()
	}
	return f, nil
}

func loadFace(o options) (*face, error) {
	candidates := o.candidates
	if candidates == nil {
		candidates = fontsource.DefaultCandidates()
	}
	src, err := fontsource.Resolve(o.fontFile, candidates)
	if err != nil {
		return nil, err
	}

	res, err := raster.Rasterize(src.Data, o.raster)
	if err != nil {
		return nil, fmt.Errorf("easyfont: rasterize %s: %w", src.Name, err)
	}
	model, err := res.Model()
	if err != nil {
		return nil, fmt.Errorf("easyfont: build atlas for %s: %w", src.Name, err)
	}
	table, err := shader.GlyphTableBytes(model.LookupTable())
	if err != nil {
		return nil, fmt.Errorf("easyfont: glyph table for %s: %w", src.Name, err)
	}

	fm := model.Metrics()
	pix := model.TruncateBitmap(res.Bitmap.Pix)
	bitmap := &image.Gray{
		Pix:    append([]byte(nil), pix...),
		Stride: fm.Width,
		Rect:   image.Rect(0, 0, fm.Width, fm.Height),
	}

	Logger().Debug("easyfont: atlas ready",
		"source", src.Name,
		"family", res.Name,
		"width", fm.Width,
		"height", fm.Height,
		"fullHeight", model.FullHeight())

	return &face{
		source: src.Name,
		name:   res.Name,
		model:  model,
		bitmap: bitmap,
		engine: layout.New(model, layout.Options{Capacity: o.capacity, Policy: o.policy}),
		table:  table,
	}, nil
}

// Reload rebuilds the font with the current options changed by opts. On
// failure the Font is left unchanged. The staged instances of the previous
// font are dropped.
func (f *Font) Reload(opts ...Option) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	o := f.opts
	o.palette, o.lexer = nil, nil
	for _, opt := range opts {
		opt(&o)
	}

	fc, err := loadFace(o)
	if err != nil {
		return err
	}

	f.face = fc
	if o.capacity != f.opts.capacity {
		f.buf = staging.New(o.capacity)
	} else {
		f.buf.Reset()
	}
	if o.palette != nil {
		f.palette = o.palette.Clone()
	}
	if o.lexer != nil {
		f.lexer = o.lexer
	}
	f.opts = o
	return nil
}

// Draw lays out text at display size size and stages one instance per
// non-newline character.
//
// colors, if not nil, holds the palette index of every byte of text. offset
// is the upper-left corner of the text and res the screen size, both in
// pixels. A failed Draw leaves the previous DrawCall data intact.
func (f *Font) Draw(text string, colors []byte, offset [2]float32, size float32, res [2]float32) (*DrawCall, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draw(text, colors, offset, size, res)
}

// DrawHighlighted classifies text with the Font's lexer and draws it with one
// palette entry per lexical class.
func (f *Font) DrawHighlighted(text string, offset [2]float32, size float32, res [2]float32) (*DrawCall, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draw(text, f.lexer.Tokenize(text), offset, size, res)
}

func (f *Font) draw(text string, colors []byte, offset [2]float32, size float32, res [2]float32) (*DrawCall, error) {
	fc := f.face
	instances, err := fc.engine.Layout(f.scratch, text, colors, size)
	if err != nil {
		return nil, err
	}
	f.scratch = instances

	rng, err := f.buf.Stage(instances)
	if err != nil {
		return nil, err
	}

	fm := fc.model.Metrics()
	return &DrawCall{
		Instances: f.buf.Bytes(),
		Count:     rng.Count,
		Uniforms: shader.Uniforms{
			Resolution:      res,
			StringOffset:    offset,
			ResBitmap:       [2]float32{float32(fm.Width), float32(fm.Height)},
			ScaleFactor:     fm.Scale(size),
			OffsetFirstLine: fm.OffsetFirstLine(),
			NumColors:       palette.Size,
		},
	}, nil
}

// Measure returns the size of text drawn at pixel size size.
func (f *Font) Measure(text string, size float32) (width, height float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.face.engine.Measure(text, size)
}

// Tokens classifies text with the Font's lexer.
func (f *Font) Tokens(text string) []lexer.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lexer.Tokens(text)
}

// Colors returns a copy of the palette.
func (f *Font) Colors() *palette.Palette {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.palette.Clone()
}

// SetColors replaces the palette with a copy of p.
func (f *Font) SetColors(p *palette.Palette) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.palette = p.Clone()
}

// PaletteBytes returns the palette encoded for the Palette uniform.
func (f *Font) PaletteBytes() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return shader.Float32Bytes(f.palette.Vec4())
}

// GlyphTable returns the glyph lookup table encoded for the GlyphTable
// uniform.
func (f *Font) GlyphTable() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.face.table
}

// Model returns the atlas model.
func (f *Font) Model() *atlas.Model {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.face.model
}

// Metrics returns the font-wide metrics.
func (f *Font) Metrics() atlas.FontMetrics {
	return f.Model().Metrics()
}

// Bitmap returns the truncated atlas bitmap. It must not be modified.
func (f *Font) Bitmap() *image.Gray {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.face.bitmap
}

// Source returns where the font was loaded from and its family name.
func (f *Font) Source() (source, family string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.face.source, f.face.name
}

// Capacity returns the maximum text length Draw accepts.
func (f *Font) Capacity() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buf.Capacity()
}
