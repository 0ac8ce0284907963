package backend

import "errors"

// Common driver errors.
var (
	// ErrDriverNotAvailable is returned when a requested driver is not
	// available.
	ErrDriverNotAvailable = errors.New("backend: driver not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// TessHandle is a driver-owned vertex entity: the device-side storage of a
// tess's vertex, index and instance buffers. The counts report the raw
// element counts of the allocated storage, not render defaults.
type TessHandle interface {
	VertexCount() int
	IndexCount() int
	InstanceCount() int
}

// FramebufferHandle is a driver-owned render target.
type FramebufferHandle interface {
	Size() (width, height int)
}

// ProgramHandle is an opaque, already-compiled shader program produced by an
// external compilation step. The core only passes it back to the driver.
type ProgramHandle any

// TextureHandle is an opaque driver texture. Texture allocation and pixel
// encoding happen outside the core.
type TextureHandle any

// ShaderDataHandle is an opaque driver-side uniform/storage block.
type ShaderDataHandle any

// TessDriver allocates, destroys and maps vertex-entity storage.
//
// NewTess receives a TessDesc whose buffer lengths the core has already
// validated for coherency.
type TessDriver interface {
	NewTess(desc TessDesc) (TessHandle, error)
	DropTess(h TessHandle)

	// MapBuffer exposes one buffer of the tess for host access. The
	// returned slice aliases driver memory until UnmapBuffer; its length is
	// fixed, mapping never resizes storage.
	MapBuffer(h TessHandle, target BufferTarget) ([]byte, error)
	UnmapBuffer(h TessHandle, target BufferTarget) error
}

// PassDriver owns framebuffers and render-pass bracketing.
//
// BeginPass applies the clear values, viewport and scissor of the pipeline
// state against the framebuffer. EndPass is issued exactly once for every
// successful BeginPass, on both success and error paths.
type PassDriver interface {
	NewFramebuffer(width, height int) (FramebufferHandle, error)
	DropFramebuffer(h FramebufferHandle)

	// BackBuffer returns the default framebuffer of the driver's surface.
	BackBuffer() FramebufferHandle

	BeginPass(fb FramebufferHandle, state *PipelineState) error
	EndPass()
}

// ShaderDriver binds shader programs and their inputs inside a pass.
type ShaderDriver interface {
	BindProgram(p ProgramHandle) error

	// SetUniform updates one named shader input of the bound program.
	SetUniform(p ProgramHandle, name string, value any) error

	// BindTexture makes a texture available to shader stages and returns
	// its binding point.
	BindTexture(t TextureHandle) (uint32, error)

	// BindShaderData makes a uniform/storage block available to shader
	// stages and returns its binding point.
	BindShaderData(d ShaderDataHandle) (uint32, error)
}

// RenderDriver applies fixed-function state and submits draws.
//
// Draw renders instanceCount instances of vertexCount vertices starting at
// start, using the bound program and applied render state. For an indexed
// tess the window addresses the index set; the driver dereferences indices
// into the vertex set and honors the tess's primitive restart index.
type RenderDriver interface {
	ApplyRenderState(state *RenderState) error
	Draw(h TessHandle, start, vertexCount, instanceCount int) error
}

// Driver is the full capability contract. Name identifies the driver in the
// registry; Init must be called before any other operation and Close
// releases everything the driver still owns.
type Driver interface {
	Name() string
	Init() error
	Close()

	TessDriver
	PassDriver
	ShaderDriver
	RenderDriver
}
