package backend

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/lume/vertex"
)

// PrimitiveMode tells the driver how the vertex stream is connected into
// drawable primitives.
type PrimitiveMode int

const (
	// Points renders every vertex as an unconnected point.
	Points PrimitiveMode = iota
	// Lines connects every pair of vertices into a segment.
	Lines
	// LineStrip extends one polyline vertex by vertex. Supports primitive
	// restart.
	LineStrip
	// Triangles connects every three vertices into a triangle.
	Triangles
	// TriangleStrip shares the last edge with every new vertex. Supports
	// primitive restart.
	TriangleStrip
	// TriangleFan pivots every triangle around the first vertex. Supports
	// primitive restart.
	TriangleFan
	// Patches groups a fixed number of vertices per patch for tessellation
	// shaders. The group size travels in TessDesc.PatchVertexCount.
	Patches
)

// String returns the lower-case mode name.
func (m PrimitiveMode) String() string {
	switch m {
	case Points:
		return "points"
	case Lines:
		return "lines"
	case LineStrip:
		return "line strip"
	case Triangles:
		return "triangles"
	case TriangleStrip:
		return "triangle strip"
	case TriangleFan:
		return "triangle fan"
	case Patches:
		return "patches"
	default:
		return fmt.Sprintf("PrimitiveMode(%d)", int(m))
	}
}

// SupportsRestart reports whether the mode is a strip/fan mode for which a
// primitive restart index is meaningful.
func (m PrimitiveMode) SupportsRestart() bool {
	return m == LineStrip || m == TriangleStrip || m == TriangleFan
}

// Topology converts the mode to its WebGPU primitive topology. ok is false
// for TriangleFan and Patches, which have no WebGPU equivalent; drivers on
// such APIs reject those modes at NewTess.
func (m PrimitiveMode) Topology() (topo gputypes.PrimitiveTopology, ok bool) {
	switch m {
	case Points:
		return gputypes.PrimitiveTopologyPointList, true
	case Lines:
		return gputypes.PrimitiveTopologyLineList, true
	case LineStrip:
		return gputypes.PrimitiveTopologyLineStrip, true
	case Triangles:
		return gputypes.PrimitiveTopologyTriangleList, true
	case TriangleStrip:
		return gputypes.PrimitiveTopologyTriangleStrip, true
	default:
		return 0, false
	}
}

// IndexType is the width of a tess's index values, or IndexNone for a
// non-indexed tess.
type IndexType int

const (
	// IndexNone disables indexing.
	IndexNone IndexType = iota
	// IndexU8 is an 8-bit unsigned index.
	IndexU8
	// IndexU16 is a 16-bit unsigned index.
	IndexU16
	// IndexU32 is a 32-bit unsigned index.
	IndexU32
)

// Bytes returns the byte width of one index value. IndexNone reports 0.
func (t IndexType) Bytes() int {
	switch t {
	case IndexU8:
		return 1
	case IndexU16:
		return 2
	case IndexU32:
		return 4
	default:
		return 0
	}
}

// Format converts the index type to its WebGPU index format. ok is false
// for IndexNone and IndexU8 (WebGPU has no 8-bit index format); drivers on
// such APIs reject U8-indexed tesses at NewTess.
func (t IndexType) Format() (format gputypes.IndexFormat, ok bool) {
	switch t {
	case IndexU16:
		return gputypes.IndexFormatUint16, true
	case IndexU32:
		return gputypes.IndexFormatUint32, true
	default:
		return 0, false
	}
}

// String returns the index type name.
func (t IndexType) String() string {
	switch t {
	case IndexNone:
		return "none"
	case IndexU8:
		return "u8"
	case IndexU16:
		return "u16"
	case IndexU32:
		return "u32"
	default:
		return fmt.Sprintf("IndexType(%d)", int(t))
	}
}

// Column is one deinterleaved attribute buffer: the raw bytes of a single
// field across all vertices.
type Column struct {
	// Raw is the packed field data, Count*ElemSize bytes.
	Raw []byte
	// ElemSize is the byte size of one field value.
	ElemSize int
	// Count is the number of field values.
	Count int
}

// VertexData is a validated vertex or instance set handed to NewTess.
// Exactly one of Interleaved or Columns is populated.
type VertexData struct {
	// Layout describes the attributes of one record.
	Layout vertex.Layout
	// Interleaved holds Count*Stride bytes of full records, or nil for
	// deinterleaved storage.
	Interleaved []byte
	// Stride is the byte size of one interleaved record.
	Stride int
	// Columns holds one buffer per attribute, addressed by field rank, or
	// nil for interleaved storage. All columns have the same Count.
	Columns []Column
	// Count is the coherent element count of the set.
	Count int
}

// Deinterleaved reports whether the set uses one buffer per attribute.
func (d *VertexData) Deinterleaved() bool { return d != nil && d.Columns != nil }

// IndexData is a validated index set handed to NewTess.
type IndexData struct {
	// Kind is the index width.
	Kind IndexType
	// Raw is the packed index data, Count*Kind.Bytes() bytes.
	Raw []byte
	// Count is the number of indices.
	Count int
}

// TessDesc is the fully validated shape of a tess, produced by the builder.
// The driver allocates device storage for it and returns a TessHandle.
type TessDesc struct {
	Mode             PrimitiveMode
	PatchVertexCount int
	// Vertices is nil for an attributeless tess.
	Vertices *VertexData
	// Indices is nil for a non-indexed tess.
	Indices *IndexData
	// Instances is nil for a non-instanced tess.
	Instances *VertexData
	// RestartIndex, when non-nil, is the primitive restart sentinel.
	RestartIndex *uint32
}

// IndexKind returns the index width of the described tess.
func (d *TessDesc) IndexKind() IndexType {
	if d.Indices == nil {
		return IndexNone
	}
	return d.Indices.Kind
}

// BufferKind selects which of a tess's buffers a map operation targets.
type BufferKind int

const (
	// BufferVertices targets the vertex set.
	BufferVertices BufferKind = iota
	// BufferIndices targets the index set.
	BufferIndices
	// BufferInstances targets the instance set.
	BufferInstances
)

// String returns the buffer kind name.
func (k BufferKind) String() string {
	switch k {
	case BufferVertices:
		return "vertices"
	case BufferIndices:
		return "indices"
	case BufferInstances:
		return "instances"
	default:
		return fmt.Sprintf("BufferKind(%d)", int(k))
	}
}

// BufferTarget addresses one mappable buffer of a tess. Field selects the
// attribute column of a deinterleaved set and is ignored for interleaved
// storage and indices.
type BufferTarget struct {
	Kind  BufferKind
	Field int
}

// VertexBuffer targets the interleaved vertex buffer.
func VertexBuffer() BufferTarget { return BufferTarget{Kind: BufferVertices} }

// VertexColumn targets one attribute column of a deinterleaved vertex set.
func VertexColumn(field int) BufferTarget {
	return BufferTarget{Kind: BufferVertices, Field: field}
}

// IndexBuffer targets the index buffer.
func IndexBuffer() BufferTarget { return BufferTarget{Kind: BufferIndices} }

// InstanceBuffer targets the interleaved instance buffer.
func InstanceBuffer() BufferTarget { return BufferTarget{Kind: BufferInstances} }

// InstanceColumn targets one attribute column of a deinterleaved instance
// set.
func InstanceColumn(field int) BufferTarget {
	return BufferTarget{Kind: BufferInstances, Field: field}
}

// Viewport is the rectangle rendering is mapped to. The zero value selects
// the whole framebuffer.
type Viewport struct {
	specific            bool
	x, y, width, height uint32
}

// WholeViewport covers the full framebuffer.
func WholeViewport() Viewport { return Viewport{} }

// SpecificViewport covers a user-defined rectangle.
func SpecificViewport(x, y, width, height uint32) Viewport {
	return Viewport{specific: true, x: x, y: y, width: width, height: height}
}

// IsWhole reports whether the viewport covers the full framebuffer.
func (v Viewport) IsWhole() bool { return !v.specific }

// Rect returns the viewport rectangle. Only meaningful when IsWhole is
// false.
func (v Viewport) Rect() (x, y, width, height uint32) {
	return v.x, v.y, v.width, v.height
}

// ScissorRegion restricts rendering to a rectangle. A nil *ScissorRegion in
// a state struct disables the scissor test.
type ScissorRegion struct {
	X, Y, Width, Height uint32
}

// PipelineState configures a render pass: clear values, viewport, sRGB
// conversion and scissor. Nil clear fields leave the corresponding buffer
// untouched, which is how renders accumulate into a framebuffer.
type PipelineState struct {
	// ClearColor clears the color buffers when non-nil.
	ClearColor *gputypes.Color
	// ClearDepth clears the depth buffer when non-nil.
	ClearDepth *float32
	// ClearStencil clears the stencil buffer when non-nil.
	ClearStencil *int32
	// Viewport maps the render output rectangle.
	Viewport Viewport
	// SRGBEnabled converts linear shader output to sRGB for storage.
	SRGBEnabled bool
	// Scissor restricts clearing when non-nil.
	Scissor *ScissorRegion
}

// DefaultPipelineState clears color to opaque black, depth to 1 and stencil
// to 0, uses the whole viewport, and disables sRGB and scissor.
func DefaultPipelineState() *PipelineState {
	color := gputypes.Color{R: 0, G: 0, B: 0, A: 1}
	depth := float32(1)
	stencil := int32(0)
	return &PipelineState{
		ClearColor:   &color,
		ClearDepth:   &depth,
		ClearStencil: &stencil,
		Viewport:     WholeViewport(),
	}
}

// BlendComponent is one half of a blend equation (color or alpha).
type BlendComponent struct {
	Operation gputypes.BlendOperation
	SrcFactor gputypes.BlendFactor
	DstFactor gputypes.BlendFactor
}

// Blending combines fragment output with the framebuffer content.
type Blending struct {
	Color BlendComponent
	Alpha BlendComponent
}

// AlphaBlending is the standard src-alpha over blending.
func AlphaBlending() *Blending {
	c := BlendComponent{
		Operation: gputypes.BlendOperationAdd,
		SrcFactor: gputypes.BlendFactorSrcAlpha,
		DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
	}
	return &Blending{Color: c, Alpha: c}
}

// DepthTest configures the depth comparison and whether the depth buffer is
// written.
type DepthTest struct {
	Comparison gputypes.CompareFunction
	Write      bool
}

// FaceCulling discards primitives facing away from (or toward) the viewer.
type FaceCulling struct {
	Front gputypes.FrontFace
	Cull  gputypes.CullMode
}

// RenderState is the fixed-function state applied before draws. Nil fields
// disable the corresponding stage.
type RenderState struct {
	Blending *Blending
	Depth    *DepthTest
	Culling  *FaceCulling
	Scissor  *ScissorRegion
}

// DefaultRenderState disables blending and scissor, tests depth with Less
// and depth write enabled, and culls back faces with counter-clockwise
// front faces.
func DefaultRenderState() *RenderState {
	return &RenderState{
		Depth: &DepthTest{Comparison: gputypes.CompareFunctionLess, Write: true},
		Culling: &FaceCulling{
			Front: gputypes.FrontFaceCCW,
			Cull:  gputypes.CullModeBack,
		},
	}
}
