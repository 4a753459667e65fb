// Package staging holds glyph instances between layout and GPU upload.
//
// A Buffer has a fixed capacity. Staging more instances than that is rejected
// as a whole and leaves the previously staged data intact, so the last good
// frame can still be drawn. Storage grows on demand up to the capacity and is
// reused by every Stage call: slices returned by Floats and Bytes are only
// valid until the next Stage.
package staging

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/easyfont/internal/logging"
)

// DefaultCapacity is more glyphs than fit on any screen at once: a 1920x1080
// window holds 20736 cells of 10x10 pixels.
const DefaultCapacity = 40000

// FloatsPerInstance is the number of float32 values per staged instance:
// x, y, glyph index and color index.
const FloatsPerInstance = 4

// InstanceStride is the size of one staged instance in bytes.
const InstanceStride = FloatsPerInstance * 4

// ErrTooLong is returned when more instances are staged than the capacity allows.
var ErrTooLong = errors.New("staging: too many glyph instances")

// Instance is one glyph to draw.
type Instance struct {
	// X and Y are the cursor position already scaled to the display size.
	X, Y float32

	// Glyph is the index into the atlas model.
	Glyph uint16

	// Color is the palette index.
	Color uint8
}

// Range describes the written prefix of the staging storage.
type Range struct {
	// Offset and Length in bytes.
	Offset, Length int

	// Count is the number of instances.
	Count int
}

// Buffer is a bounded staging area for glyph instances.
type Buffer struct {
	capacity int
	data     []float32
	raw      []byte
	count    int
}

// New creates a Buffer holding at most capacity instances.
// A non-positive capacity selects DefaultCapacity.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{capacity: capacity}
}

// Capacity returns the maximum number of instances.
func (b *Buffer) Capacity() int { return b.capacity }

// Count returns the number of instances staged by the last successful Stage.
func (b *Buffer) Count() int { return b.count }

// Stage replaces the staged instances.
//
// If len(instances) exceeds the capacity nothing is written and an error
// wrapping ErrTooLong is returned.
func (b *Buffer) Stage(instances []Instance) (Range, error) {
	n := len(instances)
	if n > b.capacity {
		return Range{}, fmt.Errorf("%w: %d > %d", ErrTooLong, n, b.capacity)
	}

	b.grow(n)
	for i, inst := range instances {
		k := FloatsPerInstance * i
		b.data[k+0] = inst.X
		b.data[k+1] = inst.Y
		b.data[k+2] = float32(inst.Glyph)
		b.data[k+3] = float32(inst.Color)
	}
	b.count = n

	logging.Logger().Debug("staging: staged instances", "count", n, "bytes", n*InstanceStride)

	return b.Range(), nil
}

// Range returns the written prefix of the last successful Stage.
func (b *Buffer) Range() Range {
	return Range{Offset: 0, Length: b.count * InstanceStride, Count: b.count}
}

// grow makes room for n instances without touching existing data.
func (b *Buffer) grow(n int) {
	need := FloatsPerInstance * n
	if need <= len(b.data) {
		return
	}
	size := 2 * len(b.data)
	if size < need {
		size = need
	}
	if limit := FloatsPerInstance * b.capacity; size > limit {
		size = limit
	}
	data := make([]float32, size)
	copy(data, b.data)
	b.data = data
}

// Floats returns the staged values, exactly FloatsPerInstance*Count() of them.
func (b *Buffer) Floats() []float32 {
	return b.data[:FloatsPerInstance*b.count]
}

// Bytes returns the staged values as little-endian float32s for upload.
func (b *Buffer) Bytes() []byte {
	floats := b.Floats()
	size := 4 * len(floats)
	if cap(b.raw) < size {
		b.raw = make([]byte, size)
	}
	b.raw = b.raw[:size]
	for i, v := range floats {
		binary.LittleEndian.PutUint32(b.raw[4*i:], math.Float32bits(v))
	}
	return b.raw
}

// Instance decodes the staged instance i. It panics if i >= Count().
func (b *Buffer) Instance(i int) Instance {
	if i < 0 || i >= b.count {
		panic(fmt.Sprintf("staging: instance %d out of range [0, %d)", i, b.count))
	}
	k := FloatsPerInstance * i
	return Instance{
		X:     b.data[k],
		Y:     b.data[k+1],
		Glyph: uint16(b.data[k+2]),
		Color: uint8(b.data[k+3]),
	}
}

// Reset drops the staged instances but keeps the storage.
func (b *Buffer) Reset() { b.count = 0 }
