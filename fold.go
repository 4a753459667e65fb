package easyfont

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// punctuation maps common typographic characters to their ASCII look-alikes.
var punctuation = map[rune]rune{
	'\u00a0': ' ',  // no-break space
	'\u2018': '\'', // left single quote
	'\u2019': '\'', // right single quote
	'\u201c': '"',  // left double quote
	'\u201d': '"',  // right double quote
	'\u2013': '-',  // en dash
	'\u2014': '-',  // em dash
	'\u2212': '-',  // minus sign
}

// Fold maps text towards the ASCII range the atlas covers: accents are
// stripped ("é" becomes "e") and typographic quotes and dashes are replaced.
// Characters without an ASCII counterpart are kept and later drawn according
// to the Font's policy.
func Fold(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			if a, ok := punctuation[r]; ok {
				return a
			}
			return r
		}),
		norm.NFC,
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
