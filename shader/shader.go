// Package shader describes the data contract between the text core and a GPU
// rendering backend: the WGSL program, its vertex streams, its bind group and
// the byte layout of every buffer it reads.
//
// Nothing here touches a device. A backend creates the resources from these
// descriptions and uploads the bytes produced by the core.
package shader

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
)

//go:embed glyph.wgsl
var glyphWGSL string

// Entry points of the glyph program.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
)

// Buffer sizes in bytes.
const (
	UniformsSize   = 48
	GlyphTableSize = 2 * GlyphCount * 16
	PaletteSize    = PaletteEntries * 16
	QuadStride     = 8
	InstanceStride = 16
)

// GlyphCount and PaletteEntries are the array lengths baked into the program.
const (
	GlyphCount     = 96
	PaletteEntries = 256
)

// AtlasFormat is the texel format of the glyph atlas: one coverage byte.
const AtlasFormat = gputypes.TextureFormatR8Unorm

// ErrTableSize is returned when a table does not match the program's array
// length.
var ErrTableSize = errors.New("shader: table size mismatch")

// Source returns the WGSL source of the glyph program.
func Source() string {
	return glyphWGSL
}

// CompileSPIRV translates the glyph program to SPIR-V.
func CompileSPIRV() ([]byte, error) {
	spirv, err := naga.Compile(glyphWGSL)
	if err != nil {
		return nil, fmt.Errorf("shader: compile glyph.wgsl: %w", err)
	}
	return spirv, nil
}

// VertexLayouts returns the two vertex streams of the glyph program.
//
//	buffer 0, location 0: quad corner (vec2<f32>), per vertex
//	buffer 1, location 1: (pen_x, pen_y, glyph, color) (vec4<f32>), per instance
func VertexLayouts() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: QuadStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
			},
		},
		{
			ArrayStride: InstanceStride,
			StepMode:    gputypes.VertexStepModeInstance,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 1},
			},
		},
	}
}

// BindGroupLayoutEntries returns the layout of bind group 0:
//
//	binding 0: Uniforms (uniform buffer, vertex)
//	binding 1: GlyphTable (uniform buffer, vertex)
//	binding 2: Palette (uniform buffer, vertex)
//	binding 3: atlas texture (texture_2d, fragment)
//	binding 4: atlas sampler (fragment)
func BindGroupLayoutEntries() []gputypes.BindGroupLayoutEntry {
	return []gputypes.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: gputypes.ShaderStageVertex,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
		{
			Binding:    1,
			Visibility: gputypes.ShaderStageVertex,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
		{
			Binding:    2,
			Visibility: gputypes.ShaderStageVertex,
			Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
		},
		{
			Binding:    3,
			Visibility: gputypes.ShaderStageFragment,
			Texture: &gputypes.TextureBindingLayout{
				SampleType:    gputypes.TextureSampleTypeFloat,
				ViewDimension: gputypes.TextureViewDimension2D,
			},
		},
		{
			Binding:    4,
			Visibility: gputypes.ShaderStageFragment,
			Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
		},
	}
}

// AtlasExtent returns the texture size for an atlas bitmap.
func AtlasExtent(width, height int) gputypes.Extent3D {
	return gputypes.Extent3D{
		Width:              uint32(width),
		Height:             uint32(height),
		DepthOrArrayLayers: 1,
	}
}

// QuadVertices returns the unit quad as two triangles, six (x, y) corners.
func QuadVertices() []float32 {
	return []float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
}

// QuadBytes returns QuadVertices encoded for the quad vertex buffer.
func QuadBytes() []byte {
	return Float32Bytes(QuadVertices())
}

// Uniforms are the per-draw constants of the glyph program.
type Uniforms struct {
	Resolution      [2]float32 // screen size in pixels
	StringOffset    [2]float32 // upper-left corner of the text in pixels
	ResBitmap       [2]float32 // atlas bitmap size in pixels
	ScaleFactor     float32    // display size / rasterized pixel size
	OffsetFirstLine float32    // baseline of the first line in atlas pixels
	NumColors       float32    // palette entries
}

// Bytes returns u laid out as the WGSL Uniforms struct, padded to
// UniformsSize.
func (u Uniforms) Bytes() []byte {
	buf := make([]byte, UniformsSize)
	vals := [...]float32{
		u.Resolution[0], u.Resolution[1],
		u.StringOffset[0], u.StringOffset[1],
		u.ResBitmap[0], u.ResBitmap[1],
		u.ScaleFactor,
		u.OffsetFirstLine,
		u.NumColors,
	}
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// GlyphTableBytes encodes a glyph lookup table (rects row then offsets row,
// GlyphCount entries each) for the GlyphTable uniform.
func GlyphTableBytes(table []float32) ([]byte, error) {
	if len(table) != GlyphTableSize/4 {
		return nil, fmt.Errorf("%w: glyph table has %d floats, want %d",
			ErrTableSize, len(table), GlyphTableSize/4)
	}
	return Float32Bytes(table), nil
}

// PaletteBytes encodes a palette of PaletteEntries vec4 colors for the
// Palette uniform.
func PaletteBytes(colors []float32) ([]byte, error) {
	if len(colors) != PaletteSize/4 {
		return nil, fmt.Errorf("%w: palette has %d floats, want %d",
			ErrTableSize, len(colors), PaletteSize/4)
	}
	return Float32Bytes(colors), nil
}

// Float32Bytes encodes v as little-endian float32s.
func Float32Bytes(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}
