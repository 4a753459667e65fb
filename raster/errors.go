package raster

import "errors"

// Sentinel errors for the raster package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("raster: empty font data")

	// ErrAtlasFull is returned when the glyphs do not fit into the bitmap.
	ErrAtlasFull = errors.New("raster: atlas bitmap full")

	// ErrNoVerticalMetrics is returned when the font has no usable ascent/descent.
	ErrNoVerticalMetrics = errors.New("raster: font has no vertical metrics")
)
