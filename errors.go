package easyfont

import (
	"github.com/gogpu/easyfont/fontsource"
	"github.com/gogpu/easyfont/layout"
)

// Errors returned by Font, re-exported so callers need not import the
// sub-packages to test for them with errors.Is.
var (
	// ErrNoFontSource is returned by New and Reload when no font candidate
	// can be loaded. It is fatal for a program that has no fallback.
	ErrNoFontSource = fontsource.ErrNoFontSource

	// ErrTooLong is returned by Draw for text longer than the capacity.
	ErrTooLong = layout.ErrTooLong

	// ErrUnsupportedChar is returned by Draw under the Reject policy.
	ErrUnsupportedChar = layout.ErrUnsupportedChar

	// ErrColorLength is returned by Draw when colors is shorter than text.
	ErrColorLength = layout.ErrColorLength
)
