package easyfont

import (
	"math"
	"strings"
)

// Preview renders the first line of text as ASCII art from the atlas bitmap,
// one character cell per atlas pixel: '#' for strong coverage, '.' for weak
// coverage. It is meant for checking an atlas on a terminal.
func (f *Font) Preview(text string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}

	m := f.face.model
	bmp := f.face.bitmap
	fm := m.Metrics()
	top := int(math.Floor(float64(-fm.Ascent)))
	bottom := int(math.Ceil(float64(-fm.Descent)))

	var sb strings.Builder
	for y := top; y < bottom; y++ {
		for i := 0; i < len(text); i++ {
			g, ok := m.Lookup(rune(text[i]))
			if !ok {
				g = m.PlaceholderIndex()
			}
			gl := m.Glyph(g)
			xoff, yoff := int(gl.XOff), int(gl.YOff)
			for x := 0; x < int(math.Ceil(float64(gl.XAdvance))); x++ {
				gx, gy := x-xoff, y-yoff
				c := byte(' ')
				if gx >= 0 && gx < gl.Width() && gy >= 0 && gy < gl.Height() {
					switch v := bmp.GrayAt(gl.X0+gx, gl.Y0+gy).Y; {
					case v >= 128:
						c = '#'
					case v > 0:
						c = '.'
					}
				}
				sb.WriteByte(c)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
