package layout

import (
	"errors"
	"fmt"
)

// Sentinel errors for the layout package.
var (
	// ErrTooLong is returned when the text has more characters than the
	// engine capacity. Nothing is written in that case.
	ErrTooLong = errors.New("layout: text too long")

	// ErrUnsupportedChar is returned under the Reject policy for characters
	// outside the atlas range.
	ErrUnsupportedChar = errors.New("layout: unsupported character")

	// ErrColorLength is returned when the color classes are shorter than the text.
	ErrColorLength = errors.New("layout: color classes shorter than text")
)

// UnsupportedCharError reports the first character outside the atlas range.
type UnsupportedCharError struct {
	Pos  int
	Char byte
}

func (e *UnsupportedCharError) Error() string {
	return fmt.Sprintf("layout: unsupported character 0x%02x at %d", e.Char, e.Pos)
}

// Unwrap returns ErrUnsupportedChar.
func (e *UnsupportedCharError) Unwrap() error { return ErrUnsupportedChar }
