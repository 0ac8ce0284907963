package lume

import (
	"io"

	"github.com/gogpu/lume/backend"
)

// Framebuffer is a render target: either an offscreen target from
// NewFramebuffer or the driver's back buffer.
type Framebuffer struct {
	ctx    *Context
	handle backend.FramebufferHandle
	back   bool
	closed bool
}

// Ensure Framebuffer implements io.Closer
var _ io.Closer = (*Framebuffer)(nil)

// Size returns the pixel dimensions of the target.
func (fb *Framebuffer) Size() (width, height int) {
	return fb.handle.Size()
}

// Handle returns the driver handle, for driver-specific inspection such as
// reading pixels back from a headless target.
func (fb *Framebuffer) Handle() backend.FramebufferHandle { return fb.handle }

// Close releases the driver storage. Closing the back buffer is a no-op, as
// is a second Close.
func (fb *Framebuffer) Close() error {
	if fb.closed || fb.back {
		return nil
	}
	fb.closed = true
	fb.ctx.drv.DropFramebuffer(fb.handle)
	return nil
}
