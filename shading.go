package lume

import "github.com/gogpu/lume/backend"

// Program is an already-compiled shader program. Compilation happens in the
// driver or an external toolchain; lume only binds the handle and routes
// uniform updates to it.
type Program struct {
	handle backend.ProgramHandle
}

// NewProgram wraps a driver program handle.
func NewProgram(h backend.ProgramHandle) *Program {
	return &Program{handle: h}
}

// Handle returns the driver handle.
func (p *Program) Handle() backend.ProgramHandle { return p.handle }

// ShadingGate opens shading scopes inside a render pass.
type ShadingGate struct {
	drv backend.Driver
}

// Shade binds prog and runs f with the program-scoped uniform interface and
// the RenderGate for the nested render scopes. Successive Shade calls on
// the same gate rebind; there is no implicit unbind.
//
// A bind failure is reported as *PipelineError without running f.
func (sg ShadingGate) Shade(prog *Program, f func(ProgramScope, RenderGate) error) error {
	if err := sg.drv.BindProgram(prog.handle); err != nil {
		return &PipelineError{Stage: "bind program", Err: err}
	}
	return f(ProgramScope{drv: sg.drv, prog: prog.handle}, RenderGate{drv: sg.drv})
}

// ProgramScope updates uniforms of the program bound by the enclosing
// Shade. It is only valid inside that callback.
type ProgramScope struct {
	drv  backend.Driver
	prog backend.ProgramHandle
}

// Set updates one named shader input of the bound program.
func (ps ProgramScope) Set(name string, value any) error {
	if err := ps.drv.SetUniform(ps.prog, name, value); err != nil {
		return &PipelineError{Stage: "set uniform", Err: err}
	}
	return nil
}
