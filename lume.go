package lume

import (
	"errors"
	"fmt"
	"io"

	"github.com/gogpu/lume/backend"
)

// ErrClosed is returned when a Context is used after Close.
var ErrClosed = errors.New("lume: context closed")

// Context owns a driver and is the entry point for rendering. It creates
// framebuffers and runs pipelines; tess builders take its Driver directly.
// Context implements io.Closer for proper resource cleanup.
type Context struct {
	drv    backend.Driver
	closed bool
}

// Ensure Context implements io.Closer
var _ io.Closer = (*Context)(nil)

// New creates a rendering context. Without options it initializes the best
// registered driver; use WithDriver to inject one, or WithDriverName to pick
// a registered driver by name.
//
//	// Best available driver
//	ctx, err := lume.New()
//
//	// Explicit driver selection
//	ctx, err := lume.New(lume.WithDriverName(backend.DriverHeadless))
func New(opts ...Option) (*Context, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	drv := options.driver
	switch {
	case drv != nil:
		if err := drv.Init(); err != nil {
			return nil, fmt.Errorf("lume: init driver %q: %w", drv.Name(), err)
		}
	case options.driverName != "":
		drv = backend.Get(options.driverName)
		if drv == nil {
			return nil, fmt.Errorf("lume: driver %q: %w", options.driverName, backend.ErrDriverNotAvailable)
		}
		if err := drv.Init(); err != nil {
			return nil, fmt.Errorf("lume: init driver %q: %w", options.driverName, err)
		}
	default:
		var err error
		drv, err = backend.InitDefault()
		if err != nil {
			return nil, fmt.Errorf("lume: no driver: %w", err)
		}
	}

	if ls, ok := drv.(backend.LoggerSetter); ok {
		ls.SetLogger(backend.Logger())
	}
	backend.Logger().Info("context created", "driver", drv.Name())

	return &Context{drv: drv}, nil
}

// Driver returns the underlying driver. Tess builders take it directly:
//
//	b := tess.NewBuilder[V, tess.None, tess.None](ctx.Driver(), layout, vertex.Layout{})
func (c *Context) Driver() backend.Driver { return c.drv }

// NewFramebuffer allocates an offscreen render target.
func (c *Context) NewFramebuffer(width, height int) (*Framebuffer, error) {
	if c.closed {
		return nil, ErrClosed
	}
	h, err := c.drv.NewFramebuffer(width, height)
	if err != nil {
		return nil, fmt.Errorf("lume: new framebuffer: %w", err)
	}
	return &Framebuffer{ctx: c, handle: h}, nil
}

// BackBuffer returns the driver's default framebuffer. Closing it is a
// no-op; the driver owns it.
func (c *Context) BackBuffer() *Framebuffer {
	return &Framebuffer{ctx: c, handle: c.drv.BackBuffer(), back: true}
}

// Close shuts the driver down. Close is idempotent; resources created from
// the context must not be used afterwards.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.drv.Close()
	return nil
}
