package tess

import (
	"github.com/gogpu/lume/backend"
	"github.com/gogpu/lume/vertex"
)

// Builder assembles an interleaved tess: vertices and instances are full
// records in one contiguous buffer each.
//
// V is the vertex record type, I the index type (None disables indexing),
// W the instance record type (None disables instancing). Setter calls
// replace previously set data; Build validates everything at once and is
// the only way to obtain a Tess. A builder is consumed by Build whether it
// succeeds or fails.
type Builder[V any, I Index, W any] struct {
	drv     backend.TessDriver
	verts   interleavedSet
	insts   interleavedSet
	indices []I
	cfg     config
}

// NewBuilder creates an interleaved builder. vertexLayout describes V;
// instanceLayout describes W and may be the zero layout when W is None.
// The default mode is Point.
func NewBuilder[V any, I Index, W any](drv backend.TessDriver, vertexLayout, instanceLayout vertex.Layout) *Builder[V, I, W] {
	return &Builder[V, I, W]{
		drv:   drv,
		verts: interleavedSet{layout: vertexLayout},
		insts: interleavedSet{layout: instanceLayout},
	}
}

// SetVertices replaces the vertex set.
func (b *Builder[V, I, W]) SetVertices(data []V) *Builder[V, I, W] {
	b.verts.raw = bytesOf(data)
	b.verts.stride = sizeOf[V]()
	b.verts.count = len(data)
	b.verts.set = true
	return b
}

// SetInstances replaces the per-instance set.
func (b *Builder[V, I, W]) SetInstances(data []W) *Builder[V, I, W] {
	b.insts.raw = bytesOf(data)
	b.insts.stride = sizeOf[W]()
	b.insts.count = len(data)
	b.insts.set = true
	return b
}

// SetIndices replaces the index set. The index type was fixed when the
// builder was created; a builder instantiated with None cannot carry
// indices.
func (b *Builder[V, I, W]) SetIndices(data []I) *Builder[V, I, W] {
	b.indices = data
	return b
}

// SetMode replaces the primitive mode.
func (b *Builder[V, I, W]) SetMode(mode Mode) *Builder[V, I, W] {
	b.cfg.mode = mode
	return b
}

// SetRenderVertexNb overrides the default number of vertices to render.
func (b *Builder[V, I, W]) SetRenderVertexNb(n int) *Builder[V, I, W] {
	b.cfg.renderVertNb = n
	return b
}

// SetRenderInstanceNb overrides the default number of instances to render.
func (b *Builder[V, I, W]) SetRenderInstanceNb(n int) *Builder[V, I, W] {
	b.cfg.renderInstNb = n
	return b
}

// SetPrimitiveRestartIndex sets the restart sentinel, meaningful for
// strip/fan modes of an indexed tess.
func (b *Builder[V, I, W]) SetPrimitiveRestartIndex(i I) *Builder[V, I, W] {
	v := indexToU32(i)
	b.cfg.restart = &v
	return b
}

// Build validates the assembled data and allocates driver storage.
func (b *Builder[V, I, W]) Build() (*Tess[V, I, W], error) {
	return build[V, I, W](b.drv, &b.verts, b.indices, &b.insts, b.cfg, false)
}

// DeinterleavedBuilder assembles a deinterleaved tess: one buffer per
// attribute field, supplied independently and in any order. Missing
// columns stay unset; Build rejects the set as length-incoherent if some
// columns are set and others are not.
type DeinterleavedBuilder[V any, I Index, W any] struct {
	drv     backend.TessDriver
	verts   deinterleavedSet
	insts   deinterleavedSet
	indices []I
	cfg     config
}

// NewDeinterleavedBuilder creates a deinterleaved builder. The layouts
// name the fields whose columns SetAttributes and SetInstanceAttributes
// address by rank.
func NewDeinterleavedBuilder[V any, I Index, W any](drv backend.TessDriver, vertexLayout, instanceLayout vertex.Layout) *DeinterleavedBuilder[V, I, W] {
	return &DeinterleavedBuilder[V, I, W]{
		drv:   drv,
		verts: deinterleavedSet{layout: vertexLayout},
		insts: deinterleavedSet{layout: instanceLayout},
	}
}

// SetAttributes replaces one vertex attribute column, addressed by field
// rank in the vertex layout.
func (b *DeinterleavedBuilder[V, I, W]) SetAttributes(field int, col Column) *DeinterleavedBuilder[V, I, W] {
	b.verts.setColumn(field, col)
	return b
}

// SetInstanceAttributes replaces one instance attribute column, addressed
// by field rank in the instance layout.
func (b *DeinterleavedBuilder[V, I, W]) SetInstanceAttributes(field int, col Column) *DeinterleavedBuilder[V, I, W] {
	b.insts.setColumn(field, col)
	return b
}

// SetIndices replaces the index set.
func (b *DeinterleavedBuilder[V, I, W]) SetIndices(data []I) *DeinterleavedBuilder[V, I, W] {
	b.indices = data
	return b
}

// SetMode replaces the primitive mode.
func (b *DeinterleavedBuilder[V, I, W]) SetMode(mode Mode) *DeinterleavedBuilder[V, I, W] {
	b.cfg.mode = mode
	return b
}

// SetRenderVertexNb overrides the default number of vertices to render.
func (b *DeinterleavedBuilder[V, I, W]) SetRenderVertexNb(n int) *DeinterleavedBuilder[V, I, W] {
	b.cfg.renderVertNb = n
	return b
}

// SetRenderInstanceNb overrides the default number of instances to render.
func (b *DeinterleavedBuilder[V, I, W]) SetRenderInstanceNb(n int) *DeinterleavedBuilder[V, I, W] {
	b.cfg.renderInstNb = n
	return b
}

// SetPrimitiveRestartIndex sets the restart sentinel, meaningful for
// strip/fan modes of an indexed tess.
func (b *DeinterleavedBuilder[V, I, W]) SetPrimitiveRestartIndex(i I) *DeinterleavedBuilder[V, I, W] {
	v := indexToU32(i)
	b.cfg.restart = &v
	return b
}

// Build validates the assembled data and allocates driver storage.
func (b *DeinterleavedBuilder[V, I, W]) Build() (*Tess[V, I, W], error) {
	return build[V, I, W](b.drv, &b.verts, b.indices, &b.insts, b.cfg, true)
}

// config is the storage-independent builder state.
type config struct {
	mode         Mode
	renderVertNb int
	renderInstNb int
	restart      *uint32
}

// vertexSet is the storage-mode-independent face of a set under assembly.
type vertexSet interface {
	coherentLen() (int, error)
	present() bool
	vertexData() (*backend.VertexData, error)
}

func (s *interleavedSet) present() bool { return s.set }

func (s *interleavedSet) vertexData() (*backend.VertexData, error) { return s.data(), nil }

func (s *deinterleavedSet) present() bool { return s.set || s.badField != nil }

func (s *deinterleavedSet) vertexData() (*backend.VertexData, error) { return s.data() }

func build[V any, I Index, W any](drv backend.TessDriver, verts vertexSet, indices []I, insts vertexSet, cfg config, deinterleaved bool) (*Tess[V, I, W], error) {
	if drv == nil {
		return nil, &CannotCreateError{Err: backend.ErrDriverNotAvailable}
	}
	if cfg.mode.Primitive() == backend.Patches && cfg.mode.PatchVertexCount() < 1 {
		return nil, &ForbiddenPrimitiveModeError{Mode: cfg.mode}
	}

	renderVertNb, err := renderVertexCount(cfg.renderVertNb, len(indices), verts)
	if err != nil {
		return nil, err
	}
	renderInstNb, err := renderInstanceCount(cfg.renderInstNb, insts)
	if err != nil {
		return nil, err
	}

	desc := backend.TessDesc{
		Mode:             cfg.mode.Primitive(),
		PatchVertexCount: cfg.mode.PatchVertexCount(),
		RestartIndex:     cfg.restart,
	}
	if desc.Vertices, err = verts.vertexData(); err != nil {
		return nil, err
	}
	if desc.Instances, err = insts.vertexData(); err != nil {
		return nil, err
	}
	if kind := KindOf[I](); kind != IndexNone && len(indices) > 0 {
		desc.Indices = &backend.IndexData{
			Kind:  kind,
			Raw:   bytesOf(indices),
			Count: len(indices),
		}
	}

	handle, err := drv.NewTess(desc)
	if err != nil {
		return nil, &CannotCreateError{Err: err}
	}

	backend.Logger().Debug("tess built",
		"mode", cfg.mode.String(),
		"render_vertices", renderVertNb,
		"render_instances", renderInstNb,
		"deinterleaved", deinterleaved,
		"indexed", desc.Indices != nil,
	)

	return &Tess[V, I, W]{core: core{
		drv:            drv,
		handle:         handle,
		mode:           cfg.mode,
		indexKind:      KindOf[I](),
		vertexLayout:   vertexLayoutOf(desc.Vertices),
		instanceLayout: vertexLayoutOf(desc.Instances),
		attributeless:  desc.Vertices == nil,
		instanceless:   desc.Instances == nil,
		indexless:      desc.Indices == nil,
		deinterleaved:  deinterleaved,
		renderVertNb:   renderVertNb,
		renderInstNb:   renderInstNb,
		restart:        cfg.restart,
		mapped:         make(map[backend.BufferTarget]bool),
	}}, nil
}

func vertexLayoutOf(d *backend.VertexData) vertex.Layout {
	if d == nil {
		return vertex.Layout{}
	}
	return d.Layout
}

// renderVertexCount computes the default number of vertices to render.
//
// Without an explicit count it is inferred from the index set if present,
// else from the vertex set's coherent length; neither is ErrNoData. An
// explicit count must fit the index set (if present) or the vertex set's
// coherent length, except on an attributeless tess where any count is
// accepted.
func renderVertexCount(explicit, idxLen int, verts vertexSet) (int, error) {
	if explicit == 0 {
		if idxLen == 0 {
			if !verts.present() {
				return 0, ErrNoData
			}
			return verts.coherentLen()
		}
		return idxLen, nil
	}

	if idxLen == 0 {
		if !verts.present() {
			// Attributeless render, always accept.
			return explicit, nil
		}
		coherent, err := verts.coherentLen()
		if err != nil {
			return 0, err
		}
		if explicit > coherent {
			return 0, &LengthIncoherencyError{Len: explicit}
		}
		return explicit, nil
	}

	if explicit > idxLen {
		return 0, &LengthIncoherencyError{Len: explicit}
	}
	return explicit, nil
}

// renderInstanceCount computes the default number of instances to render.
// No instance data means a non-instanced tess (zero), but an explicit
// nonzero count without data is an error.
func renderInstanceCount(explicit int, insts vertexSet) (int, error) {
	if explicit == 0 {
		if !insts.present() {
			return 0, nil
		}
		return insts.coherentLen()
	}

	if !insts.present() {
		return 0, &AttributelessError{Reason: "missing number of instances"}
	}
	coherent, err := insts.coherentLen()
	if err != nil {
		return 0, err
	}
	if explicit > coherent {
		return 0, &LengthIncoherencyError{Len: explicit}
	}
	return explicit, nil
}
