package easyfont

import (
	"github.com/gogpu/easyfont/fontsource"
	"github.com/gogpu/easyfont/layout"
	"github.com/gogpu/easyfont/lexer"
	"github.com/gogpu/easyfont/palette"
	"github.com/gogpu/easyfont/raster"
	"github.com/gogpu/easyfont/staging"
)

// Option configures a Font during creation or reload.
//
// Example:
//
//	// Default font search, 48 px atlas
//	f, err := easyfont.New()
//
//	// Explicit font file, larger atlas glyphs
//	f, err := easyfont.New(
//	    easyfont.WithFontFile("Inconsolata-Regular.ttf"),
//	    easyfont.WithPixelSize(64),
//	)
type Option func(*options)

// options holds the Font configuration.
type options struct {
	fontFile   string
	candidates []fontsource.Candidate
	raster     raster.Options
	capacity   int
	policy     layout.Policy
	palette    *palette.Palette
	lexer      *lexer.Lexer
}

// defaultOptions returns the default font options.
func defaultOptions() options {
	return options{
		candidates: nil, // fontsource.DefaultCandidates
		raster:     raster.DefaultOptions(),
		capacity:   staging.DefaultCapacity,
		policy:     layout.Substitute,
		palette:    nil, // palette.Default
		lexer:      nil, // lexer default word lists
	}
}

// WithFontFile sets a font file that is tried before the candidate list.
func WithFontFile(path string) Option {
	return func(o *options) {
		o.fontFile = path
	}
}

// WithCandidates replaces the prioritized font candidate list.
func WithCandidates(c ...fontsource.Candidate) Option {
	return func(o *options) {
		o.candidates = c
	}
}

// WithPixelSize sets the height, in pixels, glyphs are rasterized at.
// Draw scales instances relative to this size.
func WithPixelSize(px float32) Option {
	return func(o *options) {
		o.raster.PixelSize = px
	}
}

// WithAtlasSize sets the dimensions of the atlas bitmap before truncation.
func WithAtlasSize(width, height int) Option {
	return func(o *options) {
		o.raster.Width = width
		o.raster.Height = height
	}
}

// WithCapacity sets the maximum text length Draw accepts.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithPolicy sets how Draw treats characters outside the glyph range.
func WithPolicy(p layout.Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithPalette sets the initial color palette. The Font keeps its own copy.
func WithPalette(p *palette.Palette) Option {
	return func(o *options) {
		o.palette = p
	}
}

// WithLexer sets the lexer DrawHighlighted classifies text with.
func WithLexer(l *lexer.Lexer) Option {
	return func(o *options) {
		o.lexer = l
	}
}
