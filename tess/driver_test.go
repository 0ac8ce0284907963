package tess

import (
	"errors"

	"github.com/gogpu/lume/backend"
)

// fakeHandle keeps the descriptor and one host buffer per target, enough
// for the builder and mapping paths.
type fakeHandle struct {
	desc    backend.TessDesc
	buffers map[backend.BufferTarget][]byte
}

func (h *fakeHandle) VertexCount() int {
	if h.desc.Vertices == nil {
		return 0
	}
	return h.desc.Vertices.Count
}

func (h *fakeHandle) IndexCount() int {
	if h.desc.Indices == nil {
		return 0
	}
	return h.desc.Indices.Count
}

func (h *fakeHandle) InstanceCount() int {
	if h.desc.Instances == nil {
		return 0
	}
	return h.desc.Instances.Count
}

type fakeDriver struct {
	newErr  error
	mapErr  error
	dropped int
	unmaps  int
	last    *fakeHandle
}

func (d *fakeDriver) NewTess(desc backend.TessDesc) (backend.TessHandle, error) {
	if d.newErr != nil {
		return nil, d.newErr
	}
	h := &fakeHandle{desc: desc, buffers: make(map[backend.BufferTarget][]byte)}
	storeFake(h, desc.Vertices, backend.VertexBuffer(), backend.VertexColumn)
	storeFake(h, desc.Instances, backend.InstanceBuffer(), backend.InstanceColumn)
	if desc.Indices != nil {
		h.buffers[backend.IndexBuffer()] = desc.Indices.Raw
	}
	d.last = h
	return h, nil
}

func storeFake(h *fakeHandle, vd *backend.VertexData, interleaved backend.BufferTarget, column func(int) backend.BufferTarget) {
	if vd == nil {
		return
	}
	if vd.Deinterleaved() {
		for i, col := range vd.Columns {
			h.buffers[column(i)] = col.Raw
		}
		return
	}
	h.buffers[interleaved] = vd.Interleaved
}

func (d *fakeDriver) DropTess(backend.TessHandle) { d.dropped++ }

func (d *fakeDriver) MapBuffer(h backend.TessHandle, target backend.BufferTarget) ([]byte, error) {
	if d.mapErr != nil {
		return nil, d.mapErr
	}
	buf, ok := h.(*fakeHandle).buffers[target]
	if !ok {
		return nil, errors.New("fake: no such buffer")
	}
	return buf, nil
}

func (d *fakeDriver) UnmapBuffer(backend.TessHandle, backend.BufferTarget) error {
	d.unmaps++
	return nil
}
