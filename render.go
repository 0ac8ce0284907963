package lume

import "github.com/gogpu/lume/backend"

// RenderGate opens render scopes inside a shading scope. Each scope applies
// one fixed-function render state to all draws submitted within it.
type RenderGate struct {
	drv backend.Driver
}

// Render applies state and runs f with the TessGate that submits draws. A
// nil state applies DefaultRenderState. Successive Render calls reapply;
// state set by an inner scope stays in effect until the next Render.
//
// A state failure is reported as *PipelineError without running f.
func (rg RenderGate) Render(state *RenderState, f func(TessGate) error) error {
	if state == nil {
		state = DefaultRenderState()
	}
	if err := rg.drv.ApplyRenderState(state); err != nil {
		return &PipelineError{Stage: "apply render state", Err: err}
	}
	return f(TessGate{drv: rg.drv})
}
