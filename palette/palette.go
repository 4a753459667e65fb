// Package palette holds the 256-entry color table that lexical classes index
// into.
//
// Entry i is the color of every character whose color index is i. The first
// nine entries are the highlighting defaults; the rest start out black.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Size is the number of palette entries.
const Size = 256

// Well-known entries of the default palette.
const (
	Foreground = 0
	Operator   = 1
	Numeric    = 2
	Function   = 3
	Keyword    = 4
	Comment    = 5
	Type       = 6
	Background = 7
	Clear      = 8
)

// ErrTooManyColors is returned by Replace when more than Size colors are given.
var ErrTooManyColors = errors.New("palette: more than 256 colors")

// ErrBadHex is returned by Hex for malformed color strings.
var ErrBadHex = errors.New("palette: malformed hex color")

var defaults = [...]color.RGBA{
	Foreground: {248, 248, 242, 255},
	Operator:   {249, 38, 114, 255},
	Numeric:    {174, 129, 255, 255},
	Function:   {102, 217, 239, 255},
	Keyword:    {249, 38, 114, 255},
	Comment:    {117, 113, 94, 255},
	Type:       {102, 217, 239, 255},
	Background: {73, 72, 62, 255},
	Clear:      {39, 40, 34, 255},
}

// Palette is a fixed-size RGB color table. The zero value is all black.
type Palette struct {
	colors [Size]color.RGBA
}

// Default returns the highlighting palette.
func Default() *Palette {
	p := &Palette{}
	for i := range p.colors {
		p.colors[i] = color.RGBA{A: 255}
	}
	copy(p.colors[:], defaults[:])
	return p
}

// Len returns Size.
func (p *Palette) Len() int { return Size }

// At returns entry i.
func (p *Palette) At(i uint8) color.RGBA { return p.colors[i] }

// Set replaces entry i. Alpha is ignored.
func (p *Palette) Set(i uint8, c color.Color) {
	r, g, b, _ := c.RGBA()
	p.colors[i] = color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 255}
}

// Replace overwrites the first len(colors) entries. Entries past the end of
// colors keep their value.
func (p *Palette) Replace(colors []color.Color) error {
	if len(colors) > Size {
		return fmt.Errorf("%w: got %d", ErrTooManyColors, len(colors))
	}
	for i, c := range colors {
		p.Set(uint8(i), c)
	}
	return nil
}

// Clone returns an independent copy.
func (p *Palette) Clone() *Palette {
	c := *p
	return &c
}

// RGB returns the palette as Size*3 bytes, the layout of a 256x1 RGB texture.
func (p *Palette) RGB() []byte {
	out := make([]byte, 0, Size*3)
	for _, c := range p.colors {
		out = append(out, c.R, c.G, c.B)
	}
	return out
}

// Vec4 returns the palette as Size*4 normalized floats (alpha 1), the layout
// of an array<vec4<f32>, 256> uniform.
func (p *Palette) Vec4() []float32 {
	out := make([]float32, 0, Size*4)
	for _, c := range p.colors {
		out = append(out, float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, 1)
	}
	return out
}

// Hex parses "#RGB" or "#RRGGBB"; the leading '#' is optional.
func Hex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	default:
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadHex, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrBadHex, s)
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
}

// FromHex builds a palette whose first entries are the given hex colors and
// whose remaining entries come from Default.
func FromHex(list ...string) (*Palette, error) {
	p := Default()
	if len(list) > Size {
		return nil, fmt.Errorf("%w: got %d", ErrTooManyColors, len(list))
	}
	for i, s := range list {
		c, err := Hex(s)
		if err != nil {
			return nil, err
		}
		p.colors[i] = c
	}
	return p, nil
}
