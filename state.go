package lume

import "github.com/gogpu/lume/backend"

// State types are defined in the backend package, where drivers consume
// them; the aliases here keep application code on a single import.
type (
	// PipelineState configures a render pass. See backend.PipelineState.
	PipelineState = backend.PipelineState
	// RenderState is the fixed-function state applied before draws. See
	// backend.RenderState.
	RenderState = backend.RenderState
	// Viewport is the rectangle rendering is mapped to.
	Viewport = backend.Viewport
	// ScissorRegion restricts rendering to a rectangle.
	ScissorRegion = backend.ScissorRegion
	// Blending combines fragment output with framebuffer content.
	Blending = backend.Blending
	// BlendComponent is one half of a blend equation.
	BlendComponent = backend.BlendComponent
	// DepthTest configures depth comparison and write.
	DepthTest = backend.DepthTest
	// FaceCulling discards primitives by winding.
	FaceCulling = backend.FaceCulling
)

// DefaultPipelineState clears color to opaque black, depth to 1 and stencil
// to 0, uses the whole viewport, and disables sRGB and scissor.
func DefaultPipelineState() *PipelineState { return backend.DefaultPipelineState() }

// DefaultRenderState disables blending and scissor, tests depth with Less
// and depth write enabled, and culls back faces.
func DefaultRenderState() *RenderState { return backend.DefaultRenderState() }

// WholeViewport covers the full framebuffer.
func WholeViewport() Viewport { return backend.WholeViewport() }

// SpecificViewport covers a user-defined rectangle.
func SpecificViewport(x, y, width, height uint32) Viewport {
	return backend.SpecificViewport(x, y, width, height)
}

// AlphaBlending is the standard src-alpha over blending.
func AlphaBlending() *Blending { return backend.AlphaBlending() }
