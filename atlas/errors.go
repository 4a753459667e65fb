package atlas

import (
	"errors"
	"fmt"
)

// Sentinel errors for the atlas package.
var (
	// ErrNoGlyphs is returned when Build receives an empty glyph list.
	ErrNoGlyphs = errors.New("atlas: no glyphs")

	// ErrInvalidGlyph is returned when a glyph rectangle or advance is malformed.
	ErrInvalidGlyph = errors.New("atlas: invalid glyph metrics")

	// ErrInvalidSize is returned for non-positive bitmap or pixel sizes.
	ErrInvalidSize = errors.New("atlas: invalid size")
)

// GlyphError reports which glyph failed validation.
type GlyphError struct {
	Index  int
	Reason string
}

func (e *GlyphError) Error() string {
	return fmt.Sprintf("atlas: glyph %d: %s", e.Index, e.Reason)
}

// Unwrap returns ErrInvalidGlyph.
func (e *GlyphError) Unwrap() error { return ErrInvalidGlyph }
