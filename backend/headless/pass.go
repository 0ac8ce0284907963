package headless

import (
	"fmt"

	"github.com/gogpu/lume/backend"
)

// framebuffer is a host-memory render target. It keeps the last pipeline
// state applied to it, for test inspection.
type framebuffer struct {
	width, height int
	lastState     backend.PipelineState
	cleared       bool
	dropped       bool
}

func (fb *framebuffer) Size() (int, int) { return fb.width, fb.height }

// LastState returns the pipeline state of the most recent pass begun on the
// target. ok is false before the first pass.
func (fb *framebuffer) LastState() (backend.PipelineState, bool) {
	return fb.lastState, fb.cleared
}

// NewFramebuffer allocates a host render target.
func (d *Driver) NewFramebuffer(width, height int) (backend.FramebufferHandle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.initialized {
		return nil, backend.ErrNotInitialized
	}
	if err := d.record(OpNewFramebuffer); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("headless: invalid framebuffer size %dx%d", width, height)
	}
	return &framebuffer{width: width, height: height}, nil
}

// DropFramebuffer releases a target.
func (d *Driver) DropFramebuffer(h backend.FramebufferHandle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record(OpDropFramebuffer)
	if fb, ok := h.(*framebuffer); ok {
		fb.dropped = true
	}
}

// BackBuffer returns the default target.
func (d *Driver) BackBuffer() backend.FramebufferHandle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.back
}

// BeginPass starts a pass on the target and records the state applied to
// it. Passes do not nest.
func (d *Driver) BeginPass(h backend.FramebufferHandle, state *backend.PipelineState) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.initialized {
		return backend.ErrNotInitialized
	}
	if err := d.record(OpBeginPass); err != nil {
		return err
	}
	if d.inPass {
		return fmt.Errorf("headless: pass already begun")
	}
	fb, ok := h.(*framebuffer)
	if !ok || fb.dropped {
		return fmt.Errorf("headless: pass on dropped framebuffer")
	}
	fb.lastState = *state
	fb.cleared = true
	d.inPass = true
	return nil
}

// EndPass closes the current pass.
func (d *Driver) EndPass() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record(OpEndPass)
	d.inPass = false
	d.boundProgram = nil
}

// BindProgram makes a program current for subsequent uniforms and draws.
func (d *Driver) BindProgram(p backend.ProgramHandle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record(OpBindProgram); err != nil {
		return err
	}
	if !d.inPass {
		return fmt.Errorf("headless: bind program outside pass")
	}
	d.boundProgram = p
	return nil
}

// SetUniform records a uniform value for the bound program.
func (d *Driver) SetUniform(p backend.ProgramHandle, name string, value any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record(OpSetUniform); err != nil {
		return err
	}
	if d.boundProgram != p {
		return fmt.Errorf("headless: uniform %q on unbound program", name)
	}
	d.uniforms[name] = value
	return nil
}

// BindTexture assigns the texture the next free unit.
func (d *Driver) BindTexture(t backend.TextureHandle) (uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record(OpBindTexture); err != nil {
		return 0, err
	}
	if !d.inPass {
		return 0, fmt.Errorf("headless: bind texture outside pass")
	}
	unit := d.nextUnit
	d.nextUnit++
	return unit, nil
}

// BindShaderData assigns the block the next free binding point.
func (d *Driver) BindShaderData(s backend.ShaderDataHandle) (uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record(OpBindShaderData); err != nil {
		return 0, err
	}
	if !d.inPass {
		return 0, fmt.Errorf("headless: bind shader data outside pass")
	}
	binding := d.nextBinding
	d.nextBinding++
	return binding, nil
}

// ApplyRenderState makes state current for subsequent draws.
func (d *Driver) ApplyRenderState(state *backend.RenderState) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record(OpApplyRenderState); err != nil {
		return err
	}
	if !d.inPass {
		return fmt.Errorf("headless: render state outside pass")
	}
	d.state = state
	return nil
}

// Draw records the draw call.
func (d *Driver) Draw(h backend.TessHandle, start, vertexCount, instanceCount int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record(OpDraw); err != nil {
		return err
	}
	if !d.inPass {
		return fmt.Errorf("headless: draw outside pass")
	}
	if d.boundProgram == nil {
		return fmt.Errorf("headless: draw without a bound program")
	}
	d.draws = append(d.draws, DrawCall{
		Tess:          h,
		Start:         start,
		VertexCount:   vertexCount,
		InstanceCount: instanceCount,
	})
	return nil
}
