// Package pack places glyph rectangles inside a fixed-size atlas bitmap.
package pack

// Shelf packs rectangles left to right in horizontal shelves.
//
// A shelf is as tall as the tallest rectangle placed on it. When a rectangle no
// longer fits on the current shelf a new shelf is opened below it. Rectangles
// are placed in request order, so glyphs keep their codepoint order row by row.
type Shelf struct {
	width   int
	height  int
	padding int

	x, y  int // next free slot on the current shelf
	shelf int // height of the current shelf

	bottom   int // lowest used row (exclusive)
	usedArea int
	count    int
}

// NewShelf creates a packer for a width x height bitmap. Every rectangle is
// separated from its neighbours and from the bitmap edge by padding pixels.
func NewShelf(width, height, padding int) *Shelf {
	if padding < 0 {
		padding = 0
	}
	return &Shelf{
		width:   width,
		height:  height,
		padding: padding,
		x:       padding,
		y:       padding,
	}
}

// Allocate reserves a w x h rectangle and returns its top-left corner.
// It returns -1, -1, false if the rectangle does not fit anymore.
func (s *Shelf) Allocate(w, h int) (x, y int, ok bool) {
	if w < 0 || h < 0 {
		return -1, -1, false
	}
	if w+2*s.padding > s.width || h+2*s.padding > s.height {
		return -1, -1, false
	}

	if s.x+w+s.padding > s.width {
		// open the next shelf
		s.x = s.padding
		s.y += s.shelf + s.padding
		s.shelf = 0
	}
	if s.y+h+s.padding > s.height {
		return -1, -1, false
	}

	x, y = s.x, s.y
	s.x += w + s.padding
	if h > s.shelf {
		s.shelf = h
	}
	if y+h > s.bottom {
		s.bottom = y + h
	}
	s.usedArea += w * h
	s.count++
	return x, y, true
}

// Bottom returns the first row below every allocated rectangle.
func (s *Shelf) Bottom() int { return s.bottom }

// Count returns the number of rectangles allocated so far.
func (s *Shelf) Count() int { return s.count }

// Utilization returns the fraction of the bitmap covered by rectangles.
func (s *Shelf) Utilization() float64 {
	if s.width <= 0 || s.height <= 0 {
		return 0
	}
	return float64(s.usedArea) / float64(s.width*s.height)
}

// Reset forgets all allocations.
func (s *Shelf) Reset() {
	s.x, s.y = s.padding, s.padding
	s.shelf, s.bottom, s.usedArea, s.count = 0, 0, 0, 0
}
