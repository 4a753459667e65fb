// Package atlas describes where every glyph of a fixed ASCII range lives inside a
// rasterized font bitmap and how it is placed relative to a text cursor.
//
// The model is built once from metrics reported by a rasterizer (see package
// raster) and is immutable afterwards:
//
//	res, err := raster.Rasterize(ttf, raster.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	model, err := atlas.Build(res.Chars, res.PixelSize, res.VMetrics, res.Width(), res.Height())
//
// Glyph indices run from 0 to NumGlyphs-1 and correspond to the codepoints
// FirstCodepoint through FirstCodepoint+NumGlyphs-1. Lookup is always bounds
// checked; codepoints outside the range report ok == false.
package atlas
