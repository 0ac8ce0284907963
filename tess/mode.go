package tess

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/lume/backend"
)

// Mode is the primitive connectivity of a tess. The zero value is Point.
//
// Strip and fan modes allow primitive restart: when an index equals the
// tess's restart index, the current primitive ends and a new one starts
// within the same draw call.
type Mode struct {
	prim  backend.PrimitiveMode
	patch int
}

// Predefined primitive modes.
var (
	// Point renders a point cloud.
	Point = Mode{prim: backend.Points}
	// Line connects every pair of vertices.
	Line = Mode{prim: backend.Lines}
	// LineStrip extends one polyline vertex by vertex.
	LineStrip = Mode{prim: backend.LineStrip}
	// Triangle connects every three vertices.
	Triangle = Mode{prim: backend.Triangles}
	// TriangleStrip shares the previous edge with every new vertex.
	TriangleStrip = Mode{prim: backend.TriangleStrip}
	// TriangleFan pivots every triangle around the first vertex.
	TriangleFan = Mode{prim: backend.TriangleFan}
)

// Patch groups n vertices per patch for tessellation shaders. Patch(3) is
// triangle patches.
func Patch(n int) Mode {
	return Mode{prim: backend.Patches, patch: n}
}

// Primitive returns the driver-facing primitive mode.
func (m Mode) Primitive() backend.PrimitiveMode { return m.prim }

// PatchVertexCount returns the patch group size, 0 for non-patch modes.
func (m Mode) PatchVertexCount() int { return m.patch }

// SupportsRestart reports whether a primitive restart index is meaningful
// for this mode.
func (m Mode) SupportsRestart() bool { return m.prim.SupportsRestart() }

// Topology converts the mode to its WebGPU primitive topology; ok is false
// for modes WebGPU cannot express (TriangleFan, Patch).
func (m Mode) Topology() (gputypes.PrimitiveTopology, bool) {
	return m.prim.Topology()
}

// String returns the mode name, with the group size for patch modes.
func (m Mode) String() string {
	if m.prim == backend.Patches {
		return fmt.Sprintf("patch (%d)", m.patch)
	}
	return m.prim.String()
}
