package atlas

import (
	"errors"
	"testing"
)

// testChars returns n glyphs laid out in a single row, each 8x10 pixels with
// an advance of 9+i%3 pixels.
func testChars(n int) []PackedChar {
	chars := make([]PackedChar, n)
	for i := range chars {
		x := 1 + i*9
		chars[i] = PackedChar{
			X0: x, Y0: 1, X1: x + 8, Y1: 11 + i%2,
			XOff: 0.5, YOff: -9, XOff2: 8.5, YOff2: 1,
			XAdvance: float32(9 + i%3),
		}
	}
	return chars
}

var testV = VMetrics{Ascent: 12, Descent: -4, LineGap: 2}

// TestBuild_Metrics tests line distance and truncation height.
func TestBuild_Metrics(t *testing.T) {
	m, err := Build(testChars(NumGlyphs), 16, testV, 1024, 512)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	fm := m.Metrics()
	if fm.LineDist != 18 {
		t.Errorf("LineDist = %v, want 18", fm.LineDist)
	}
	if m.MaxY1() != 12 {
		t.Errorf("MaxY1() = %d, want 12", m.MaxY1())
	}
	if fm.Height != 13 {
		t.Errorf("Height = %d, want 13 (max y1 + 1)", fm.Height)
	}
	if m.FullHeight() != 512 {
		t.Errorf("FullHeight() = %d, want 512", m.FullHeight())
	}
	if got := fm.OffsetFirstLine(); got != 17 {
		t.Errorf("OffsetFirstLine() = %v, want 17", got)
	}
	if got := fm.Scale(32); got != 2 {
		t.Errorf("Scale(32) = %v, want 2", got)
	}
}

// TestBuild_Errors tests rejection of malformed input.
func TestBuild_Errors(t *testing.T) {
	if _, err := Build(nil, 16, testV, 64, 64); !errors.Is(err, ErrNoGlyphs) {
		t.Errorf("empty glyphs: err = %v, want ErrNoGlyphs", err)
	}
	if _, err := Build(testChars(1), 0, testV, 64, 64); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("zero pixel size: err = %v, want ErrInvalidSize", err)
	}

	inverted := testChars(3)
	inverted[2].X1 = inverted[2].X0 - 1
	_, err := Build(inverted, 16, testV, 64, 64)
	if !errors.Is(err, ErrInvalidGlyph) {
		t.Fatalf("inverted rect: err = %v, want ErrInvalidGlyph", err)
	}
	var ge *GlyphError
	if !errors.As(err, &ge) || ge.Index != 2 {
		t.Errorf("inverted rect: err = %v, want GlyphError for index 2", err)
	}

	negative := testChars(2)
	negative[0].XAdvance = -1
	if _, err := Build(negative, 16, testV, 64, 64); !errors.Is(err, ErrInvalidGlyph) {
		t.Errorf("negative advance: err = %v, want ErrInvalidGlyph", err)
	}

	outside := testChars(2)
	if _, err := Build(outside, 16, testV, 10, 64); !errors.Is(err, ErrInvalidGlyph) {
		t.Errorf("rect outside bitmap: err = %v, want ErrInvalidGlyph", err)
	}
}

// TestModel_Lookup tests the bounds-checked codepoint lookup.
func TestModel_Lookup(t *testing.T) {
	m, err := Build(testChars(NumGlyphs), 16, testV, 1024, 64)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		c     rune
		index int
		ok    bool
	}{
		{' ', 0, true},
		{'A', 33, true},
		{'~', 94, true},
		{127, 95, true},
		{31, -1, false},
		{'\n', -1, false},
		{128, -1, false},
		{'é', -1, false},
		{-5, -1, false},
	}
	for _, tt := range tests {
		index, ok := m.Lookup(tt.c)
		if index != tt.index || ok != tt.ok {
			t.Errorf("Lookup(%q) = (%d, %v), want (%d, %v)", tt.c, index, ok, tt.index, tt.ok)
		}
	}

	if got := m.PlaceholderIndex(); got != '?'-FirstCodepoint {
		t.Errorf("PlaceholderIndex() = %d, want %d", got, '?'-FirstCodepoint)
	}
	if got := m.Glyph(33).Rune(); got != 'A' {
		t.Errorf("Glyph(33).Rune() = %q, want 'A'", got)
	}
	if got := m.Advance(1); got != 10 {
		t.Errorf("Advance(1) = %v, want 10", got)
	}
}

// TestModel_PlaceholderOutsideRange tests the fallback when '?' is not covered.
func TestModel_PlaceholderOutsideRange(t *testing.T) {
	m, err := Build(testChars(10), 16, testV, 1024, 64)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.PlaceholderIndex(); got != 0 {
		t.Errorf("PlaceholderIndex() = %d, want 0", got)
	}
}

// TestModel_LookupTable tests normalization against the truncated bitmap.
func TestModel_LookupTable(t *testing.T) {
	chars := []PackedChar{
		{X0: 0, Y0: 0, X1: 10, Y1: 20, XOff: 1, YOff: -15, XOff2: 11, YOff2: 5, XAdvance: 12},
		{X0: 10, Y0: 0, X1: 30, Y1: 39, XOff: 2, YOff: -30, XOff2: 22, YOff2: 9, XAdvance: 22},
	}
	m, err := Build(chars, 32, testV, 100, 256)
	if err != nil {
		t.Fatal(err)
	}

	table := m.LookupTable()
	if len(table) != 16 {
		t.Fatalf("len(table) = %d, want 16", len(table))
	}
	// Height is truncated to 40, so y values are divided by 40.
	want := []float32{
		0, 0, 0.1, 0.5,
		0.1, 0, 0.2, 0.975,
		0.01, -0.375, 0.11, 0.125,
		0.02, -0.75, 0.22, 0.225,
	}
	for i := range want {
		if diff := table[i] - want[i]; diff > 1e-6 || diff < -1e-6 {
			t.Errorf("table[%d] = %v, want %v", i, table[i], want[i])
		}
	}
}

// TestModel_TruncateBitmap tests cutting the bitmap to its used rows.
func TestModel_TruncateBitmap(t *testing.T) {
	m, err := Build(testChars(4), 16, testV, 64, 64)
	if err != nil {
		t.Fatal(err)
	}
	pix := make([]byte, 64*64)
	got := m.TruncateBitmap(pix)
	if len(got) != 64*m.Metrics().Height {
		t.Errorf("len(truncated) = %d, want %d", len(got), 64*m.Metrics().Height)
	}
	if short := m.TruncateBitmap(pix[:10]); len(short) != 10 {
		t.Errorf("short bitmap truncated to %d bytes, want 10", len(short))
	}
}
