package raster

import "github.com/gogpu/easyfont/atlas"

// Options configures how a font is packed into an atlas bitmap.
type Options struct {
	// PixelSize is the font height in pixels, measured from descent to ascent.
	// Default: 48
	PixelSize float32

	// Width and Height of the atlas bitmap.
	// Default: 512 x 512
	Width, Height int

	// Padding between glyph rectangles and around the bitmap edge.
	// Default: 1
	Padding int

	// First is the codepoint of the first glyph, Count the number of glyphs.
	// The atlas model indexes glyphs from ASCII space, so First must be 32 and
	// Count at most 96.
	// Default: 32 and 96 (printable ASCII plus DEL)
	First rune
	Count int
}

// DefaultOptions returns the default rasterization options.
func DefaultOptions() Options {
	return Options{
		PixelSize: 48,
		Width:     512,
		Height:    512,
		Padding:   1,
		First:     atlas.FirstCodepoint,
		Count:     atlas.NumGlyphs,
	}
}

// Validate checks if the options are usable.
func (o *Options) Validate() error {
	if o.PixelSize < 1 {
		return &OptionsError{Field: "PixelSize", Reason: "must be at least 1"}
	}
	if o.PixelSize > 1024 {
		return &OptionsError{Field: "PixelSize", Reason: "must be at most 1024"}
	}
	if o.Width < 16 || o.Height < 16 {
		return &OptionsError{Field: "Width/Height", Reason: "must be at least 16"}
	}
	if o.Width > 8192 || o.Height > 8192 {
		return &OptionsError{Field: "Width/Height", Reason: "must be at most 8192"}
	}
	if o.Padding < 0 {
		return &OptionsError{Field: "Padding", Reason: "must be non-negative"}
	}
	if o.First != atlas.FirstCodepoint {
		return &OptionsError{Field: "First", Reason: "must be 32"}
	}
	if o.Count < 1 {
		return &OptionsError{Field: "Count", Reason: "must be at least 1"}
	}
	if o.Count > atlas.NumGlyphs {
		return &OptionsError{Field: "Count", Reason: "must be at most 96"}
	}
	return nil
}

// OptionsError represents an options validation error.
type OptionsError struct {
	Field  string
	Reason string
}

func (e *OptionsError) Error() string {
	return "raster: invalid options." + e.Field + ": " + e.Reason
}
