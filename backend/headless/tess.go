package headless

import (
	"fmt"

	"github.com/gogpu/lume/backend"
)

// tessHandle is host-memory tess storage: one byte buffer per mappable
// target, copied out of the descriptor at creation.
type tessHandle struct {
	desc    backend.TessDesc
	buffers map[backend.BufferTarget][]byte
	mapped  map[backend.BufferTarget]bool
	dropped bool
}

func (h *tessHandle) VertexCount() int {
	if h.desc.Vertices == nil {
		return 0
	}
	return h.desc.Vertices.Count
}

func (h *tessHandle) IndexCount() int {
	if h.desc.Indices == nil {
		return 0
	}
	return h.desc.Indices.Count
}

func (h *tessHandle) InstanceCount() int {
	if h.desc.Instances == nil {
		return 0
	}
	return h.desc.Instances.Count
}

// Desc returns the descriptor the tess was created from, for test
// inspection.
func (h *tessHandle) Desc() backend.TessDesc { return h.desc }

func cloneBytes(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// storeVertexData copies an interleaved buffer or per-attribute columns
// into the handle under the right targets.
func (h *tessHandle) storeVertexData(d *backend.VertexData, interleaved backend.BufferTarget, column func(int) backend.BufferTarget) {
	if d == nil {
		return
	}
	if d.Deinterleaved() {
		for i, col := range d.Columns {
			h.buffers[column(i)] = cloneBytes(col.Raw)
		}
		return
	}
	h.buffers[interleaved] = cloneBytes(d.Interleaved)
}

// NewTess allocates host storage for the described tess.
func (d *Driver) NewTess(desc backend.TessDesc) (backend.TessHandle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.initialized {
		return nil, backend.ErrNotInitialized
	}
	if err := d.record(OpNewTess); err != nil {
		return nil, err
	}

	h := &tessHandle{
		desc:    desc,
		buffers: make(map[backend.BufferTarget][]byte),
		mapped:  make(map[backend.BufferTarget]bool),
	}
	h.storeVertexData(desc.Vertices, backend.VertexBuffer(), backend.VertexColumn)
	h.storeVertexData(desc.Instances, backend.InstanceBuffer(), backend.InstanceColumn)
	if desc.Indices != nil {
		h.buffers[backend.IndexBuffer()] = cloneBytes(desc.Indices.Raw)
	}

	d.logger.Debug("headless: tess allocated",
		"mode", desc.Mode.String(),
		"buffers", len(h.buffers),
	)
	return h, nil
}

// DropTess releases the host storage.
func (d *Driver) DropTess(h backend.TessHandle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.record(OpDropTess)
	if th, ok := h.(*tessHandle); ok {
		th.dropped = true
		th.buffers = nil
	}
}

// MapBuffer exposes one stored buffer. Mapping an absent buffer or one
// already mapped fails.
func (d *Driver) MapBuffer(h backend.TessHandle, target backend.BufferTarget) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record(OpMapBuffer); err != nil {
		return nil, err
	}
	th, ok := h.(*tessHandle)
	if !ok || th.dropped {
		return nil, fmt.Errorf("headless: map on dropped tess")
	}
	buf, ok := th.buffers[target]
	if !ok {
		return nil, fmt.Errorf("headless: no %s buffer", target.Kind)
	}
	if th.mapped[target] {
		return nil, fmt.Errorf("headless: %s buffer already mapped", target.Kind)
	}
	th.mapped[target] = true
	return buf, nil
}

// UnmapBuffer releases a mapping.
func (d *Driver) UnmapBuffer(h backend.TessHandle, target backend.BufferTarget) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.record(OpUnmapBuffer); err != nil {
		return err
	}
	th, ok := h.(*tessHandle)
	if !ok {
		return fmt.Errorf("headless: unknown tess handle")
	}
	if !th.mapped[target] {
		return fmt.Errorf("headless: %s buffer not mapped", target.Kind)
	}
	th.mapped[target] = false
	return nil
}
