package lume

import (
	"fmt"

	"github.com/gogpu/lume/backend"
)

// PipelineError wraps a driver failure with the gate stage it happened in.
type PipelineError struct {
	// Stage names the failing operation: "begin pass", "bind program",
	// "set uniform", "apply render state", "draw", "bind texture" or
	// "bind shader data".
	Stage string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("lume: pipeline: %s: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error { return e.Err }

// Pipeline runs a render pass against fb. The driver clears and configures
// the target per state, then f receives the pass-scoped Pipeline value and
// the ShadingGate that opens the nested shading scopes. The pass is ended on
// every exit path, including callback errors and driver failures after a
// successful begin.
//
// An error returned by f (or by any nested gate callback) propagates out
// unchanged; driver failures are wrapped in *PipelineError.
func (c *Context) Pipeline(fb *Framebuffer, state *PipelineState, f func(Pipeline, ShadingGate) error) error {
	if c.closed {
		return ErrClosed
	}
	if state == nil {
		state = DefaultPipelineState()
	}
	if err := c.drv.BeginPass(fb.handle, state); err != nil {
		return &PipelineError{Stage: "begin pass", Err: err}
	}
	defer c.drv.EndPass()
	return f(Pipeline{drv: c.drv}, ShadingGate{drv: c.drv})
}

// Pipeline is the pass-scoped face of a running render pass. It binds
// resources that shaders consume; the binding points it returns are fed to
// shader inputs through ProgramScope.Set.
type Pipeline struct {
	drv backend.Driver
}

// BindTexture makes a texture available to shader stages for the rest of
// the pass and returns its binding point.
func (p Pipeline) BindTexture(t backend.TextureHandle) (uint32, error) {
	unit, err := p.drv.BindTexture(t)
	if err != nil {
		return 0, &PipelineError{Stage: "bind texture", Err: err}
	}
	return unit, nil
}

// BindShaderData makes a uniform/storage block available to shader stages
// for the rest of the pass and returns its binding point.
func (p Pipeline) BindShaderData(d backend.ShaderDataHandle) (uint32, error) {
	binding, err := p.drv.BindShaderData(d)
	if err != nil {
		return 0, &PipelineError{Stage: "bind shader data", Err: err}
	}
	return binding, nil
}
