package easyfont

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/easyfont/atlas"
	"github.com/gogpu/easyfont/fontsource"
	"github.com/gogpu/easyfont/layout"
	"github.com/gogpu/easyfont/lexer"
	"github.com/gogpu/easyfont/palette"
	"github.com/gogpu/easyfont/shader"
)

func newTestFont(t *testing.T, opts ...Option) *Font {
	t.Helper()
	opts = append([]Option{WithCandidates(fontsource.Embedded())}, opts...)
	f, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return f
}

// instance decodes instance i of a draw call.
func instance(c *DrawCall, i int) [4]float32 {
	var v [4]float32
	for k := range v {
		v[k] = math.Float32frombits(binary.LittleEndian.Uint32(c.Instances[16*i+4*k:]))
	}
	return v
}

// TestNew tests a font built from the embedded fallback.
func TestNew(t *testing.T) {
	f := newTestFont(t)

	src, family := f.Source()
	if src != "embedded:gomono" {
		t.Errorf("source = %q", src)
	}
	if family != "Go Mono" {
		t.Errorf("family = %q, want Go Mono", family)
	}

	fm := f.Metrics()
	if fm.PixelSize != 48 {
		t.Errorf("PixelSize = %v, want 48", fm.PixelSize)
	}
	if f.Model().NumGlyphs() != atlas.NumGlyphs {
		t.Errorf("NumGlyphs = %d", f.Model().NumGlyphs())
	}

	b := f.Bitmap()
	if b.Rect.Dx() != fm.Width || b.Rect.Dy() != fm.Height {
		t.Errorf("bitmap %v, metrics %dx%d", b.Rect, fm.Width, fm.Height)
	}
	if fm.Height != f.Model().MaxY1()+1 {
		t.Errorf("bitmap height %d, want max y1 + 1 = %d", fm.Height, f.Model().MaxY1()+1)
	}
	if len(f.GlyphTable()) != shader.GlyphTableSize {
		t.Errorf("glyph table = %d bytes", len(f.GlyphTable()))
	}
	if len(f.PaletteBytes()) != shader.PaletteSize {
		t.Errorf("palette = %d bytes", len(f.PaletteBytes()))
	}
	if f.Capacity() != 40000 {
		t.Errorf("Capacity = %d, want 40000", f.Capacity())
	}
}

// TestNew_NoFontSource tests the fatal error when no candidate loads.
func TestNew_NoFontSource(t *testing.T) {
	_, err := New(WithCandidates(fontsource.File("/nonexistent/font.ttf")))
	if !errors.Is(err, ErrNoFontSource) {
		t.Fatalf("New() error = %v, want ErrNoFontSource", err)
	}

	_, err = New(WithFontFile("/nonexistent/explicit.ttf"), WithCandidates(fontsource.Embedded()))
	if err != nil {
		t.Errorf("explicit file failure should fall back to candidates, got %v", err)
	}
}

// TestDraw tests instance data and uniforms of a two-line string.
func TestDraw(t *testing.T) {
	f := newTestFont(t)
	m := f.Model()
	fm := m.Metrics()

	call, err := f.Draw("ab\ncd", []byte{1, 2, 0, 3, 4}, [2]float32{10, 20}, 24, [2]float32{800, 600})
	if err != nil {
		t.Fatal(err)
	}
	if call.Count != 4 || len(call.Instances) != 4*16 {
		t.Fatalf("Count = %d, %d bytes", call.Count, len(call.Instances))
	}
	if call.VertexCount() != 6 {
		t.Errorf("VertexCount = %d", call.VertexCount())
	}

	ia, _ := m.Lookup('a')
	ic, _ := m.Lookup('c')
	scale := float32(0.5)

	want := [][4]float32{
		{0, 0, float32(ia), 1},
		{m.Advance(ia) * scale, 0, float32(ia + 1), 2},
		{0, -fm.LineDist * scale, float32(ic), 3},
		{m.Advance(ic) * scale, -fm.LineDist * scale, float32(ic + 1), 4},
	}
	for i, w := range want {
		if got := instance(call, i); got != w {
			t.Errorf("instance %d = %v, want %v", i, got, w)
		}
	}

	u := call.Uniforms
	if u.ScaleFactor != scale {
		t.Errorf("ScaleFactor = %v, want %v", u.ScaleFactor, scale)
	}
	if u.StringOffset != [2]float32{10, 20} || u.Resolution != [2]float32{800, 600} {
		t.Errorf("offset %v, resolution %v", u.StringOffset, u.Resolution)
	}
	if u.ResBitmap != [2]float32{float32(fm.Width), float32(fm.Height)} {
		t.Errorf("ResBitmap = %v", u.ResBitmap)
	}
	if u.OffsetFirstLine != fm.OffsetFirstLine() || u.NumColors != 256 {
		t.Errorf("OffsetFirstLine %v, NumColors %v", u.OffsetFirstLine, u.NumColors)
	}
}

// TestDraw_ErrorKeepsPrevious tests that failed draws leave staged data alone.
func TestDraw_ErrorKeepsPrevious(t *testing.T) {
	f := newTestFont(t, WithCapacity(4), WithPolicy(layout.Reject))

	call, err := f.Draw("abcd", nil, [2]float32{}, 48, [2]float32{100, 100})
	if err != nil {
		t.Fatal(err)
	}
	saved := bytes.Clone(call.Instances)

	if _, err := f.Draw("abcde", nil, [2]float32{}, 48, [2]float32{100, 100}); !errors.Is(err, ErrTooLong) {
		t.Errorf("Draw(5 chars) error = %v, want ErrTooLong", err)
	}
	if _, err := f.Draw("a\x01", nil, [2]float32{}, 48, [2]float32{100, 100}); !errors.Is(err, ErrUnsupportedChar) {
		t.Errorf("Draw(control char) error = %v, want ErrUnsupportedChar", err)
	}
	if _, err := f.Draw("ab", []byte{1}, [2]float32{}, 48, [2]float32{100, 100}); !errors.Is(err, ErrColorLength) {
		t.Errorf("Draw(short colors) error = %v, want ErrColorLength", err)
	}

	if !bytes.Equal(call.Instances, saved) {
		t.Error("failed Draw modified the previous instance data")
	}
}

// TestDrawHighlighted tests that instances carry lexical classes.
func TestDrawHighlighted(t *testing.T) {
	f := newTestFont(t)

	call, err := f.DrawHighlighted("int x;//c", [2]float32{}, 48, [2]float32{640, 480})
	if err != nil {
		t.Fatal(err)
	}
	// i n t ' ' x ; / / c
	want := []lexer.Class{lexer.Type, lexer.Type, lexer.Type, lexer.Other, lexer.Other, lexer.Other,
		lexer.Comment, lexer.Comment, lexer.Comment}
	if call.Count != len(want) {
		t.Fatalf("Count = %d, want %d", call.Count, len(want))
	}
	for i, c := range want {
		if got := instance(call, i)[3]; got != float32(c) {
			t.Errorf("instance %d color = %v, want %v (%s)", i, got, c, c)
		}
	}

	custom := newTestFont(t, WithLexer(lexer.New(lexer.WithKeywords("x"))))
	call, err = custom.DrawHighlighted("x", [2]float32{}, 48, [2]float32{640, 480})
	if err != nil {
		t.Fatal(err)
	}
	if got := instance(call, 0)[3]; got != float32(lexer.Keyword) {
		t.Errorf("custom lexer color = %v, want keyword", got)
	}
}

// TestDraw_Substitute tests the placeholder glyph for unsupported bytes.
func TestDraw_Substitute(t *testing.T) {
	f := newTestFont(t)
	call, err := f.Draw("\x01", nil, [2]float32{}, 48, [2]float32{100, 100})
	if err != nil {
		t.Fatal(err)
	}
	if got := instance(call, 0)[2]; got != float32(f.Model().PlaceholderIndex()) {
		t.Errorf("glyph = %v, want placeholder %d", got, f.Model().PlaceholderIndex())
	}
}

// TestMeasure tests string dimensions for a monospace font.
func TestMeasure(t *testing.T) {
	f := newTestFont(t)
	m := f.Model()
	i, _ := m.Lookup('a')
	adv := m.Advance(i)
	fm := f.Metrics()

	w, h := f.Measure("ab\ncde", 48)
	if w != 3*adv {
		t.Errorf("width = %v, want %v", w, 3*adv)
	}
	if h != 2*fm.LineDist {
		t.Errorf("height = %v, want %v", h, 2*fm.LineDist)
	}

	w2, h2 := f.Measure("ab\ncde", 96)
	if w2 != 2*w || h2 != 2*h {
		t.Errorf("Measure at 96 = %v x %v, want double of %v x %v", w2, h2, w, h)
	}
}

// TestColors tests palette replacement.
func TestColors(t *testing.T) {
	p, err := palette.FromHex("#ff0000")
	if err != nil {
		t.Fatal(err)
	}
	f := newTestFont(t, WithPalette(p))

	if got := f.Colors().At(0); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("initial color 0 = %v", got)
	}

	c := f.Colors()
	c.Set(0, color.RGBA{0, 255, 0, 255})
	if f.Colors().At(0) == c.At(0) {
		t.Error("Colors() did not return a copy")
	}

	f.SetColors(c)
	b := f.PaletteBytes()
	if g := math.Float32frombits(binary.LittleEndian.Uint32(b[4:])); g != 1 {
		t.Errorf("palette green of entry 0 = %v, want 1", g)
	}
}

// TestReload tests swapping the font and keeping state on failure.
func TestReload(t *testing.T) {
	f := newTestFont(t)
	f.SetColors(palette.Default())
	if _, err := f.Draw("abc", nil, [2]float32{}, 48, [2]float32{100, 100}); err != nil {
		t.Fatal(err)
	}

	if err := f.Reload(WithPixelSize(24)); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got := f.Metrics().PixelSize; got != 24 {
		t.Errorf("PixelSize after reload = %v, want 24", got)
	}

	err := f.Reload(WithCandidates(fontsource.File("/nonexistent/font.ttf")))
	if !errors.Is(err, ErrNoFontSource) {
		t.Fatalf("Reload() error = %v, want ErrNoFontSource", err)
	}
	if got := f.Metrics().PixelSize; got != 24 {
		t.Errorf("failed reload changed PixelSize to %v", got)
	}

	if err := f.Reload(WithCapacity(2)); err != nil {
		t.Fatal(err)
	}
	if f.Capacity() != 2 {
		t.Errorf("Capacity = %d, want 2", f.Capacity())
	}
	if _, err := f.Draw("abc", nil, [2]float32{}, 48, [2]float32{100, 100}); !errors.Is(err, ErrTooLong) {
		t.Errorf("Draw after capacity reload error = %v, want ErrTooLong", err)
	}
}

// TestPreview tests the ASCII art rendering of the atlas.
func TestPreview(t *testing.T) {
	f := newTestFont(t, WithPixelSize(16))
	out := f.Preview("Hi\nignored")

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) == 0 {
		t.Fatal("empty preview")
	}
	if !strings.Contains(out, "#") {
		t.Errorf("preview has no ink:\n%s", out)
	}

	m := f.Model()
	i, _ := m.Lookup('H')
	width := 2 * int(math.Ceil(float64(m.Advance(i))))
	for n, l := range lines {
		if len(l) != width {
			t.Errorf("line %d has %d cells, want %d", n, len(l), width)
		}
	}
}

// TestConcurrentDraw tests that concurrent draws are serialized.
func TestConcurrentDraw(t *testing.T) {
	f := newTestFont(t)
	done := make(chan error)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := f.DrawHighlighted("void main() { return; }", [2]float32{}, 24, [2]float32{100, 100})
			done <- err
		}()
	}
	for i := 0; i < 8; i++ {
		if err := <-done; err != nil {
			t.Error(err)
		}
	}
}
