// Package vertex describes the memory layout of vertex and instance
// records.
//
// A Layout is an ordered sequence of attribute descriptors. It is supplied
// per vertex type by the application (or by external reflection tooling)
// and consumed by the core only for coherency and type-matching checks;
// drivers receive it converted to the WebGPU vertex buffer layout form.
package vertex

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// Attribute describes one field of a vertex record.
type Attribute struct {
	// Name is the shader-facing attribute name.
	Name string
	// Format is the scalar/vector representation of the field.
	Format gputypes.VertexFormat
	// Normalized asks the driver to normalize integer data to [0,1] or
	// [-1,1] when feeding shader stages.
	Normalized bool
}

// Size returns the byte size of one attribute value.
func (a Attribute) Size() int { return FormatSize(a.Format) }

// FormatSize returns the byte size of a vertex format, covering the whole
// WebGPU format set. Only VertexFormatUndefined reports 0.
func FormatSize(f gputypes.VertexFormat) int {
	return int(f.Size())
}

// Layout is an ordered, packed sequence of attributes. Offsets are
// accumulated in declaration order with no padding; records with padding
// need explicit filler attributes.
type Layout struct {
	attrs  []Attribute
	stride int
}

// NewLayout builds a layout from attributes in field order.
func NewLayout(attrs ...Attribute) Layout {
	stride := 0
	for _, a := range attrs {
		stride += a.Size()
	}
	return Layout{attrs: attrs, stride: stride}
}

// Len returns the number of attributes.
func (l Layout) Len() int { return len(l.attrs) }

// At returns the i-th attribute.
func (l Layout) At(i int) Attribute { return l.attrs[i] }

// Stride returns the byte size of one full record.
func (l Layout) Stride() int { return l.stride }

// Offset returns the byte offset of the i-th attribute within a record.
func (l Layout) Offset(i int) int {
	off := 0
	for j := 0; j < i; j++ {
		off += l.attrs[j].Size()
	}
	return off
}

// Rank returns the field rank of the named attribute, or -1 when the layout
// has no such attribute.
func (l Layout) Rank(name string) int {
	for i, a := range l.attrs {
		if a.Name == name {
			return i
		}
	}
	return -1
}

// Equal reports whether two layouts describe the same record shape.
func (l Layout) Equal(other Layout) bool {
	if len(l.attrs) != len(other.attrs) {
		return false
	}
	for i, a := range l.attrs {
		if a != other.attrs[i] {
			return false
		}
	}
	return true
}

// BufferLayout converts the layout to the WebGPU vertex buffer layout form,
// assigning shader locations in field order starting at firstLocation.
func (l Layout) BufferLayout(step gputypes.VertexStepMode, firstLocation uint32) gputypes.VertexBufferLayout {
	attrs := make([]gputypes.VertexAttribute, len(l.attrs))
	off := uint64(0)
	for i, a := range l.attrs {
		attrs[i] = gputypes.VertexAttribute{
			Format:         a.Format,
			Offset:         off,
			ShaderLocation: firstLocation + uint32(i),
		}
		off += uint64(a.Size())
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: uint64(l.stride),
		StepMode:    step,
		Attributes:  attrs,
	}
}

// String renders the layout as "name:format" pairs, for error messages.
func (l Layout) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, a := range l.attrs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s:%db", a.Name, a.Size())
		if a.Normalized {
			b.WriteString(":norm")
		}
	}
	b.WriteByte(']')
	return b.String()
}
