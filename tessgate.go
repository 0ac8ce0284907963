package lume

import (
	"github.com/gogpu/lume/backend"
	"github.com/gogpu/lume/tess"
)

// Drawable is anything that resolves to a tess view: a tess.View itself, or
// a higher-level object that picks one.
type Drawable interface {
	TessView() tess.View
}

// TessGate submits draws inside a render scope, using the program and
// render state of the enclosing scopes.
type TessGate struct {
	drv backend.Driver
}

// Draw submits one draw for the view's window: its vertex count from its
// start vertex, instanced per its instance count.
func (tg TessGate) Draw(d Drawable) error {
	v := d.TessView()
	if err := tg.drv.Draw(v.Handle(), v.Start(), v.VertexCount(), v.InstanceCount()); err != nil {
		return &PipelineError{Stage: "draw", Err: err}
	}
	return nil
}
