// Package textbuf is an editable text buffer with a caret, backed by a rope.
//
// Offsets and columns count bytes. The buffer is meant for the ASCII text the
// renderer draws; multi-byte sequences are stored but the caret may land
// inside them.
package textbuf

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/npillmayer/cords"
)

// ErrLineRange is returned by Line for a line index outside the buffer.
var ErrLineRange = errors.New("textbuf: line out of range")

// Buffer holds text and a caret position. The zero value is an empty buffer.
type Buffer struct {
	text  cords.Cord
	caret uint64

	// starts holds the offset of every line start; nil until first needed.
	starts []uint64
}

// New creates a buffer holding s with the caret at the end.
func New(s string) *Buffer {
	b := &Buffer{}
	if s != "" {
		b.text = cords.FromString(s)
		b.caret = uint64(len(s))
	}
	return b
}

// Len returns the text length in bytes.
func (b *Buffer) Len() int { return int(b.text.Len()) }

// String returns the whole text.
func (b *Buffer) String() string {
	if b.text.Len() == 0 {
		return ""
	}
	return b.text.String()
}

// Offset returns the caret position as a byte offset.
func (b *Buffer) Offset() int { return int(b.caret) }

// SetOffset moves the caret to offset, clamped to the text.
func (b *Buffer) SetOffset(offset int) {
	switch {
	case offset < 0:
		b.caret = 0
	case uint64(offset) > b.text.Len():
		b.caret = b.text.Len()
	default:
		b.caret = uint64(offset)
	}
}

// Insert inserts s at the caret and moves the caret past it.
func (b *Buffer) Insert(s string) error {
	if s == "" {
		return nil
	}
	if err := b.edit(b.caret, 0, s); err != nil {
		return err
	}
	b.caret += uint64(len(s))
	return nil
}

// Backspace removes the byte before the caret. It does nothing at the start
// of the text.
func (b *Buffer) Backspace() error {
	if b.caret == 0 {
		return nil
	}
	if err := b.edit(b.caret-1, 1, ""); err != nil {
		return err
	}
	b.caret--
	return nil
}

// Delete removes the byte after the caret. It does nothing at the end of the
// text.
func (b *Buffer) Delete() error {
	if b.caret >= b.text.Len() {
		return nil
	}
	return b.edit(b.caret, 1, "")
}

// MoveLeft moves the caret one byte back.
func (b *Buffer) MoveLeft() {
	if b.caret > 0 {
		b.caret--
	}
}

// MoveRight moves the caret one byte forward.
func (b *Buffer) MoveRight() {
	if b.caret < b.text.Len() {
		b.caret++
	}
}

// MoveUp moves the caret to the previous line, keeping the column when the
// line is long enough and clamping to its end otherwise.
func (b *Buffer) MoveUp() {
	line, col := b.Caret()
	if line == 0 {
		b.caret = 0
		return
	}
	b.moveTo(line-1, col)
}

// MoveDown moves the caret to the next line. On the last line it moves to the
// end of the text.
func (b *Buffer) MoveDown() {
	line, col := b.Caret()
	if line+1 >= b.Lines() {
		b.caret = b.text.Len()
		return
	}
	b.moveTo(line+1, col)
}

// Caret returns the caret's line and column, both zero based.
func (b *Buffer) Caret() (line, col int) {
	starts := b.lineStarts()
	// last line start <= caret
	lo, hi := 0, len(starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if starts[mid] <= b.caret {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, int(b.caret - starts[lo])
}

// Lines returns the number of lines. An empty buffer has one empty line and
// a trailing newline starts a new empty line.
func (b *Buffer) Lines() int {
	return len(b.lineStarts())
}

// Line returns line i without its newline.
func (b *Buffer) Line(i int) (string, error) {
	starts := b.lineStarts()
	if i < 0 || i >= len(starts) {
		return "", fmt.Errorf("%w: %d of %d", ErrLineRange, i, len(starts))
	}
	start, end := starts[i], b.lineEnd(i)
	if end == start {
		return "", nil
	}
	return b.text.Report(start, end-start)
}

func (b *Buffer) moveTo(line, col int) {
	start, end := b.lineStarts()[line], b.lineEnd(line)
	b.caret = min(start+uint64(col), end)
}

// lineEnd returns the offset of the newline ending line i, or the text
// length for the last line.
func (b *Buffer) lineEnd(i int) uint64 {
	starts := b.lineStarts()
	if i+1 < len(starts) {
		return starts[i+1] - 1
	}
	return b.text.Len()
}

func (b *Buffer) lineStarts() []uint64 {
	if b.starts != nil {
		return b.starts
	}
	starts := []uint64{0}
	s := b.String()
	for off := 0; ; {
		j := strings.IndexByte(s[off:], '\n')
		if j < 0 {
			break
		}
		off += j + 1
		starts = append(starts, uint64(off))
	}
	b.starts = starts
	return starts
}

// leafSize is the fragment length small pieces are merged up to.
const leafSize = 64

// edit replaces n bytes at offset at with s. The rope is rebuilt from its
// fragments: untouched fragments of leafSize or more are carried over as is,
// the two fragments around the edit are cut and short neighbours merged.
// cords.Split mishandles cuts that fall on some fragment boundaries, so edits
// never go through it.
func (b *Buffer) edit(at, n uint64, s string) error {
	starts := b.lineStarts()

	var (
		out  = cords.NewBuilder()
		acc  strings.Builder
		err  error
		done bool
	)
	flush := func() {
		if acc.Len() > 0 && err == nil {
			err = out.Append(cords.StringLeaf(acc.String()))
		}
		acc.Reset()
	}
	emit := func(p string) {
		switch {
		case p == "":
		case acc.Len()+len(p) <= leafSize:
			acc.WriteString(p)
		case len(p) >= leafSize:
			flush()
			if err == nil {
				err = out.Append(cords.StringLeaf(p))
			}
		default:
			flush()
			acc.WriteString(p)
		}
	}

	var pos uint64
	walk := b.text.EachLeaf(func(l cords.Leaf, _ uint64) error {
		frag := l.String()
		end := pos + uint64(len(frag))
		cut := func(x uint64) uint64 {
			switch {
			case x <= pos:
				return 0
			case x >= end:
				return end - pos
			}
			return x - pos
		}
		emit(frag[:cut(at)])
		if !done && at < end {
			emit(s)
			done = true
		}
		emit(frag[cut(at+n):])
		pos = end
		return err
	})
	if !done {
		emit(s)
	}
	flush()
	if walk != nil {
		err = walk
	}
	if err != nil {
		return fmt.Errorf("textbuf: edit at %d: %w", at, err)
	}
	b.text = out.Cord()
	b.starts = shiftStarts(starts, at, n, s)
	return nil
}

// shiftStarts updates line starts for n bytes at offset at replaced by s.
// Starts inside the removed range go away, starts after it move by the
// length difference, and every newline in s adds one.
func shiftStarts(starts []uint64, at, n uint64, s string) []uint64 {
	i := sort.Search(len(starts), func(k int) bool { return starts[k] > at })
	j := sort.Search(len(starts), func(k int) bool { return starts[k] > at+n })

	out := make([]uint64, 0, len(starts)+strings.Count(s, "\n"))
	out = append(out, starts[:i]...)
	for k := 0; k < len(s); k++ {
		if s[k] == '\n' {
			out = append(out, at+uint64(k)+1)
		}
	}
	for _, st := range starts[j:] {
		out = append(out, st-n+uint64(len(s)))
	}
	return out
}
