// Package layout turns text into positioned glyph instances.
//
// The engine walks a cursor over the text: every character places its glyph at
// the cursor and advances it by the glyph's advance, a newline moves the cursor
// back to the left edge and one line distance down. Positions are scaled from
// the atlas pixel size to the requested display size. There is no kerning,
// shaping or wrapping.
//
// Text is processed byte by byte. Bytes outside the atlas range (control
// characters other than '\n', and everything >= 0x80) are either replaced by
// the placeholder glyph or rejected, depending on the Policy.
package layout

import (
	"fmt"
	"slices"

	"github.com/gogpu/easyfont/atlas"
	"github.com/gogpu/easyfont/internal/logging"
	"github.com/gogpu/easyfont/staging"
)

// Policy selects how characters outside the atlas range are handled.
type Policy int

const (
	// Substitute draws the placeholder glyph for unsupported characters.
	Substitute Policy = iota

	// Reject fails the whole call with an UnsupportedCharError.
	Reject
)

// String returns the string representation of the policy.
func (p Policy) String() string {
	switch p {
	case Substitute:
		return "Substitute"
	case Reject:
		return "Reject"
	default:
		return "Unknown"
	}
}

// Options configures an Engine.
type Options struct {
	// Capacity is the maximum text length in bytes.
	// Default: staging.DefaultCapacity
	Capacity int

	// Policy for characters outside the atlas range.
	// Default: Substitute
	Policy Policy
}

// DefaultOptions returns the default engine options.
func DefaultOptions() Options {
	return Options{
		Capacity: staging.DefaultCapacity,
		Policy:   Substitute,
	}
}

// Engine lays out text with the glyphs of one atlas model.
// An Engine has no mutable state and may be shared.
type Engine struct {
	model    *atlas.Model
	capacity int
	policy   Policy
}

// New creates an engine for model.
func New(model *atlas.Model, opts Options) *Engine {
	if opts.Capacity <= 0 {
		opts.Capacity = staging.DefaultCapacity
	}
	return &Engine{model: model, capacity: opts.Capacity, policy: opts.Policy}
}

// Capacity returns the maximum text length in bytes.
func (e *Engine) Capacity() int { return e.capacity }

// Policy returns the policy for unsupported characters.
func (e *Engine) Policy() Policy { return e.policy }

// Model returns the atlas model.
func (e *Engine) Model() *atlas.Model { return e.model }

// Layout appends one instance per non-newline character of text to dst[:0]
// and returns the extended slice.
//
// colors, if not nil, holds the palette index of every byte of text; a nil
// colors selects class 0 for everything. The call fails without writing to dst if text is
// longer than the capacity, if colors is shorter than text, or if the Reject
// policy finds an unsupported character.
func (e *Engine) Layout(dst []staging.Instance, text string, colors []byte, displaySize float32) ([]staging.Instance, error) {
	if len(text) > e.capacity {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooLong, len(text), e.capacity)
	}
	if colors != nil && len(colors) < len(text) {
		return nil, fmt.Errorf("%w: %d < %d", ErrColorLength, len(colors), len(text))
	}
	if e.policy == Reject {
		if err := e.check(text); err != nil {
			return nil, err
		}
	}

	fm := e.model.Metrics()
	scale := fm.Scale(displaySize)
	placeholder := e.model.PlaceholderIndex()

	dst = slices.Grow(dst[:0], len(text))
	var x, y float32
	substituted := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\n' {
			x = 0
			y -= fm.LineDist
			continue
		}

		g, ok := e.model.Lookup(rune(c))
		if !ok {
			g = placeholder
			substituted++
		}

		var class uint8
		if colors != nil {
			class = colors[i]
		}
		dst = append(dst, staging.Instance{
			X:     x * scale,
			Y:     y * scale,
			Glyph: uint16(g),
			Color: class,
		})
		x += e.model.Advance(g)
	}

	if substituted > 0 {
		logging.Logger().Warn("layout: substituted unsupported characters", "count", substituted)
	}
	return dst, nil
}

// check returns an error for the first unsupported character in text.
func (e *Engine) check(text string) error {
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\n' {
			continue
		}
		if _, ok := e.model.Lookup(rune(c)); !ok {
			return &UnsupportedCharError{Pos: i, Char: c}
		}
	}
	return nil
}

// Extent returns the widest cursor position reached on any line and the
// number of lines, in atlas pixels. A trailing line without a newline counts
// as a line; every newline ends one.
func (e *Engine) Extent(text string) (width float32, lines int) {
	placeholder := e.model.PlaceholderIndex()
	var x float32
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '\n' {
			width = max(width, x)
			x = 0
			lines++
			continue
		}
		g, ok := e.model.Lookup(rune(c))
		if !ok {
			g = placeholder
		}
		x += e.model.Advance(g)
	}
	if len(text) > 0 && text[len(text)-1] != '\n' {
		width = max(width, x)
		lines++
	}
	return width, lines
}

// Measure returns the size of text drawn at pixelSize. Unsupported characters
// are measured as the placeholder glyph.
func (e *Engine) Measure(text string, pixelSize float32) (width, height float32) {
	fm := e.model.Metrics()
	scale := fm.Scale(pixelSize)
	w, lines := e.Extent(text)
	return w * scale, float32(lines) * fm.LineDist * scale
}
