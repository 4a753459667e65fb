package atlas

import "math"

// The supported character range.
const (
	// FirstCodepoint is the codepoint of glyph index 0 (ASCII space).
	FirstCodepoint = 32

	// NumGlyphs is the size of the default range, ASCII 32 through 127.
	NumGlyphs = 96

	// Placeholder is the character drawn for unsupported codepoints.
	Placeholder = '?'
)

// PackedChar holds the metrics a rasterizer reports for one packed glyph.
//
// X0..Y1 is the glyph rectangle inside the bitmap in pixels. XOff..YOff2 place
// that rectangle relative to the cursor on the baseline, with y growing
// downwards. XAdvance is the horizontal cursor advance in pixels.
type PackedChar struct {
	X0, Y0, X1, Y1           int
	XOff, YOff, XOff2, YOff2 float32
	XAdvance                 float32
}

// VMetrics are the vertical font metrics at the rasterization pixel size.
// Descent is negative for glyph parts below the baseline.
type VMetrics struct {
	Ascent  float32
	Descent float32
	LineGap float32
}

// Glyph is one entry of the atlas model.
type Glyph struct {
	Index int

	// Atlas rectangle in pixels.
	X0, Y0, X1, Y1 int

	// Placement of the rectangle relative to the cursor.
	XOff, YOff, XOff2, YOff2 float32

	XAdvance float32
}

// Width returns the width of the glyph rectangle in pixels.
func (g Glyph) Width() int { return g.X1 - g.X0 }

// Height returns the height of the glyph rectangle in pixels.
func (g Glyph) Height() int { return g.Y1 - g.Y0 }

// Rune returns the codepoint drawn by this glyph.
func (g Glyph) Rune() rune { return rune(FirstCodepoint + g.Index) }

// FontMetrics are the font-wide values shared by every glyph of a model.
type FontMetrics struct {
	// Width and Height of the used part of the atlas bitmap.
	Width, Height int

	// PixelSize is the font size the atlas was rasterized at.
	PixelSize float32

	Ascent  float32
	Descent float32
	LineGap float32

	// LineDist is the distance between two consecutive baselines.
	LineDist float32
}

// OffsetFirstLine is the distance from the top of a text block to the first
// baseline, as expected by the glyph shader.
func (m FontMetrics) OffsetFirstLine() float32 {
	return m.LineDist - m.LineGap/2
}

// Scale returns the factor that maps rasterization pixels to displaySize.
func (m FontMetrics) Scale(displaySize float32) float32 {
	return displaySize / m.PixelSize
}

// Model is the immutable glyph atlas model of one font.
type Model struct {
	glyphs     []Glyph
	metrics    FontMetrics
	fullHeight int
	maxY1      int
}

// Build organizes rasterizer output into a Model.
//
// chars[i] describes the glyph for codepoint FirstCodepoint+i. width and height
// are the dimensions of the bitmap the glyphs were packed into. The model
// height is truncated to the lowest used row so the bitmap can be cut to its
// used extent with TruncateBitmap.
func Build(chars []PackedChar, pixelSize float32, v VMetrics, width, height int) (*Model, error) {
	if len(chars) == 0 {
		return nil, ErrNoGlyphs
	}
	if width <= 0 || height <= 0 || pixelSize <= 0 ||
		math.IsNaN(float64(pixelSize)) || math.IsInf(float64(pixelSize), 0) {
		return nil, ErrInvalidSize
	}

	glyphs := make([]Glyph, len(chars))
	maxY1 := 0
	for i, c := range chars {
		if err := validate(i, c, width, height); err != nil {
			return nil, err
		}
		glyphs[i] = Glyph{
			Index:    i,
			X0:       c.X0,
			Y0:       c.Y0,
			X1:       c.X1,
			Y1:       c.Y1,
			XOff:     c.XOff,
			YOff:     c.YOff,
			XOff2:    c.XOff2,
			YOff2:    c.YOff2,
			XAdvance: c.XAdvance,
		}
		if c.Y1 > maxY1 {
			maxY1 = c.Y1
		}
	}

	used := maxY1 + 1
	if used > height {
		used = height
	}

	return &Model{
		glyphs:     glyphs,
		fullHeight: height,
		maxY1:      maxY1,
		metrics: FontMetrics{
			Width:     width,
			Height:    used,
			PixelSize: pixelSize,
			Ascent:    v.Ascent,
			Descent:   v.Descent,
			LineGap:   v.LineGap,
			LineDist:  v.Ascent - v.Descent + v.LineGap,
		},
	}, nil
}

func validate(i int, c PackedChar, width, height int) error {
	switch {
	case c.X1 < c.X0 || c.Y1 < c.Y0:
		return &GlyphError{Index: i, Reason: "inverted rectangle"}
	case c.X0 < 0 || c.Y0 < 0 || c.X1 > width || c.Y1 > height:
		return &GlyphError{Index: i, Reason: "rectangle outside bitmap"}
	case c.XAdvance < 0 || math.IsNaN(float64(c.XAdvance)):
		return &GlyphError{Index: i, Reason: "negative advance"}
	}
	return nil
}

// NumGlyphs returns the number of glyphs in the model.
func (m *Model) NumGlyphs() int { return len(m.glyphs) }

// Metrics returns the font metrics.
func (m *Model) Metrics() FontMetrics { return m.metrics }

// Lookup maps a codepoint to its glyph index. ok is false when the codepoint is
// outside the supported range.
func (m *Model) Lookup(c rune) (index int, ok bool) {
	index = int(c) - FirstCodepoint
	if index < 0 || index >= len(m.glyphs) {
		return -1, false
	}
	return index, true
}

// Glyph returns the glyph with index i. It panics if i is out of range.
func (m *Model) Glyph(i int) Glyph { return m.glyphs[i] }

// Advance returns the horizontal advance of glyph i. It panics if i is out of range.
func (m *Model) Advance(i int) float32 { return m.glyphs[i].XAdvance }

// PlaceholderIndex returns the glyph index used for unsupported codepoints.
func (m *Model) PlaceholderIndex() int {
	if i, ok := m.Lookup(Placeholder); ok {
		return i
	}
	return 0
}

// MaxY1 returns the largest y1 over all glyph rectangles.
func (m *Model) MaxY1() int { return m.maxY1 }

// LookupTable returns the glyph lookup table consumed by the rendering
// backend: two rows of NumGlyphs RGBA float entries.
//
// Row 0 holds (x0/w, y0/h, (x1-x0)/w, (y1-y0)/h) and row 1 holds
// (xoff/w, yoff/h, xoff2/w, yoff2/h), where w and h are the dimensions of the
// truncated bitmap.
func (m *Model) LookupTable() []float32 {
	n := len(m.glyphs)
	w := float64(m.metrics.Width)
	h := float64(m.metrics.Height)
	table := make([]float32, 8*n)
	for i, g := range m.glyphs {
		k1 := 4 * i
		k2 := 4 * (n + i)
		table[k1+0] = float32(float64(g.X0) / w)
		table[k1+1] = float32(float64(g.Y0) / h)
		table[k1+2] = float32(float64(g.X1-g.X0) / w)
		table[k1+3] = float32(float64(g.Y1-g.Y0) / h)

		table[k2+0] = float32(float64(g.XOff) / w)
		table[k2+1] = float32(float64(g.YOff) / h)
		table[k2+2] = float32(float64(g.XOff2) / w)
		table[k2+3] = float32(float64(g.YOff2) / h)
	}
	return table
}

// TruncateBitmap cuts a full 8-bit bitmap of Width x original height down to
// the used rows. The returned slice aliases pix.
func (m *Model) TruncateBitmap(pix []byte) []byte {
	n := m.metrics.Width * m.metrics.Height
	if n > len(pix) {
		n = len(pix)
	}
	return pix[:n]
}

// FullHeight returns the height of the bitmap before truncation.
func (m *Model) FullHeight() int { return m.fullHeight }
