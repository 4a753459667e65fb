// Package raster packs a contiguous range of glyphs of a TrueType/OpenType font
// into an 8-bit coverage bitmap and reports the per-glyph metrics the atlas
// model is built from.
//
// Vertical metrics are read in font units with go-text/typesetting and scaled
// so that ascent minus descent equals the requested pixel size. Glyph images
// are rendered with golang.org/x/image/font/opentype at the matching ppem.
package raster

import (
	"bytes"
	"fmt"
	"image"

	gotext "github.com/go-text/typesetting/font"
	"github.com/gogpu/easyfont/atlas"
	"github.com/gogpu/easyfont/internal/logging"
	"github.com/gogpu/easyfont/internal/pack"
	"golang.org/x/image/draw"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Result is the output of Rasterize.
type Result struct {
	// Chars holds one entry per glyph, Chars[i] for codepoint First+i.
	Chars []atlas.PackedChar

	// VMetrics are the vertical metrics at PixelSize.
	VMetrics atlas.VMetrics

	PixelSize float32

	// Bitmap is the full Width x Height coverage bitmap.
	Bitmap *image.Alpha

	// Name is the font family name, if the font provides one.
	Name string
}

// Width returns the bitmap width.
func (r *Result) Width() int { return r.Bitmap.Rect.Dx() }

// Height returns the bitmap height.
func (r *Result) Height() int { return r.Bitmap.Rect.Dy() }

// Model builds the atlas model for this result.
func (r *Result) Model() (*atlas.Model, error) {
	return atlas.Build(r.Chars, r.PixelSize, r.VMetrics, r.Width(), r.Height())
}

// Rasterize renders opts.Count glyphs starting at opts.First into a new bitmap.
func Rasterize(data []byte, opts Options) (*Result, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	scale, upem, vm, err := verticalMetrics(data, opts.PixelSize)
	if err != nil {
		return nil, err
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("raster: failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    scale * upem,
		DPI:     72,
		Hinting: xfont.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("raster: failed to create face: %w", err)
	}
	defer face.Close()

	bitmap := image.NewAlpha(image.Rect(0, 0, opts.Width, opts.Height))
	packer := pack.NewShelf(opts.Width, opts.Height, opts.Padding)
	chars := make([]atlas.PackedChar, opts.Count)

	for i := range chars {
		r := opts.First + rune(i)
		dr, mask, maskp, advance, ok := face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			// Missing glyph: empty rectangle, keep whatever advance the font reports.
			adv, _ := face.GlyphAdvance(r)
			chars[i] = atlas.PackedChar{XAdvance: fixedToFloat32(adv)}
			continue
		}

		pc := atlas.PackedChar{
			XOff:     float32(dr.Min.X),
			YOff:     float32(dr.Min.Y),
			XOff2:    float32(dr.Max.X),
			YOff2:    float32(dr.Max.Y),
			XAdvance: fixedToFloat32(advance),
		}
		if pc.XAdvance < 0 {
			pc.XAdvance = 0
		}

		w, h := dr.Dx(), dr.Dy()
		if w > 0 && h > 0 {
			x, y, ok := packer.Allocate(w, h)
			if !ok {
				return nil, fmt.Errorf("%w: glyph %q does not fit into %dx%d",
					ErrAtlasFull, r, opts.Width, opts.Height)
			}
			draw.Draw(bitmap, image.Rect(x, y, x+w, y+h), mask, maskp, draw.Src)
			pc.X0, pc.Y0, pc.X1, pc.Y1 = x, y, x+w, y+h
		}
		chars[i] = pc
	}

	logging.Logger().Debug("raster: packed glyphs",
		"count", packer.Count(),
		"pixelSize", opts.PixelSize,
		"ppem", scale*upem,
		"bottom", packer.Bottom(),
		"utilization", packer.Utilization())

	return &Result{
		Chars:     chars,
		VMetrics:  vm,
		PixelSize: opts.PixelSize,
		Bitmap:    bitmap,
		Name:      familyName(f),
	}, nil
}

// verticalMetrics returns the pixel scale, the font's units per em and the
// scaled vertical metrics. The scale maps ascender-descender to pixelSize.
func verticalMetrics(data []byte, pixelSize float32) (scale, upem float64, vm atlas.VMetrics, err error) {
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return 0, 0, vm, fmt.Errorf("raster: failed to parse font: %w", err)
	}
	ext, ok := face.FontHExtents()
	if !ok {
		return 0, 0, vm, ErrNoVerticalMetrics
	}
	asc, desc, gap := float64(ext.Ascender), float64(ext.Descender), float64(ext.LineGap)
	if asc-desc <= 0 {
		return 0, 0, vm, ErrNoVerticalMetrics
	}

	scale = float64(pixelSize) / (asc - desc)
	vm = atlas.VMetrics{
		Ascent:  float32(asc * scale),
		Descent: float32(desc * scale),
		LineGap: float32(gap * scale),
	}
	return scale, float64(face.Upem()), vm, nil
}

func familyName(f *opentype.Font) string {
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil {
		return name
	}
	return ""
}

// fixedToFloat32 converts fixed.Int26_6 to float32.
func fixedToFloat32(x fixed.Int26_6) float32 {
	return float32(x) / 64
}
