// Package headless provides an in-memory driver. It implements the full
// backend.Driver contract without a GPU: buffers live in host memory, passes
// and draws are recorded instead of executed. It backs the library's own
// tests and is useful for CI and for exercising rendering code paths in
// tools that have no display.
//
// Import for side effects to register it:
//
//	import _ "github.com/gogpu/lume/backend/headless"
package headless

import (
	"log/slog"
	"sync"

	"github.com/gogpu/lume/backend"
)

func init() {
	backend.Register(backend.DriverHeadless, func() backend.Driver {
		return New()
	})
}

// Operation names, as recorded in the op log and accepted by FailNext.
const (
	OpInit             = "init"
	OpClose            = "close"
	OpNewTess          = "new tess"
	OpDropTess         = "drop tess"
	OpMapBuffer        = "map buffer"
	OpUnmapBuffer      = "unmap buffer"
	OpNewFramebuffer   = "new framebuffer"
	OpDropFramebuffer  = "drop framebuffer"
	OpBeginPass        = "begin pass"
	OpEndPass          = "end pass"
	OpBindProgram      = "bind program"
	OpSetUniform       = "set uniform"
	OpBindTexture      = "bind texture"
	OpBindShaderData   = "bind shader data"
	OpApplyRenderState = "apply render state"
	OpDraw             = "draw"
)

// DrawCall is one recorded draw.
type DrawCall struct {
	Tess          backend.TessHandle
	Start         int
	VertexCount   int
	InstanceCount int
}

// Driver is the in-memory driver. Besides the backend.Driver contract it
// exposes the recorded operation log, draw calls and uniform values so
// tests can assert on protocol order and submitted work.
//
// The zero value is not usable; call New.
type Driver struct {
	mu sync.Mutex

	logger      *slog.Logger
	initialized bool

	ops      []string
	failures map[string]error

	back   *framebuffer
	inPass bool

	boundProgram backend.ProgramHandle
	uniforms     map[string]any
	nextUnit     uint32
	nextBinding  uint32

	state *backend.RenderState
	draws []DrawCall
}

// New creates an uninitialized headless driver.
func New() *Driver {
	return &Driver{
		logger:   backend.Logger(),
		failures: make(map[string]error),
		uniforms: make(map[string]any),
	}
}

// SetLogger accepts the logger propagated by the core.
func (d *Driver) SetLogger(l *slog.Logger) {
	if l == nil {
		return
	}
	d.mu.Lock()
	d.logger = l
	d.mu.Unlock()
}

// FailNext makes the next occurrence of op fail with err. Operation names
// are the Op constants. Only one pending failure per op is kept.
func (d *Driver) FailNext(op string, err error) {
	d.mu.Lock()
	d.failures[op] = err
	d.mu.Unlock()
}

// Ops returns a copy of the recorded operation log, in call order.
func (d *Driver) Ops() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.ops))
	copy(out, d.ops)
	return out
}

// Draws returns a copy of the recorded draw calls, in submission order.
func (d *Driver) Draws() []DrawCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]DrawCall, len(d.draws))
	copy(out, d.draws)
	return out
}

// RenderState returns the render state applied most recently, nil before
// the first Render scope.
func (d *Driver) RenderState() *backend.RenderState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Uniform returns the last value set for a uniform name.
func (d *Driver) Uniform(name string) (any, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.uniforms[name]
	return v, ok
}

// record appends op to the log and consumes a pending failure for it.
// Callers hold mu.
func (d *Driver) record(op string) error {
	d.ops = append(d.ops, op)
	if err, ok := d.failures[op]; ok {
		delete(d.failures, op)
		return err
	}
	return nil
}

// Name returns the driver name.
func (d *Driver) Name() string { return backend.DriverHeadless }

// Init prepares the driver and its back buffer.
func (d *Driver) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record(OpInit); err != nil {
		return err
	}
	d.initialized = true
	d.back = &framebuffer{width: 640, height: 480}
	return nil
}

// Close releases everything. Further operations fail with
// backend.ErrNotInitialized.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record(OpClose)
	d.initialized = false
	d.back = nil
}
