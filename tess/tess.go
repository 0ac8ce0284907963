package tess

import (
	"fmt"

	"github.com/gogpu/lume/backend"
	"github.com/gogpu/lume/vertex"
)

// core is the storage-type-erased part of a Tess: the driver handle, the
// shape fixed at build time, and the mapping bookkeeping. Gates and views
// operate on it without knowing the generic element types.
type core struct {
	drv            backend.TessDriver
	handle         backend.TessHandle
	mode           Mode
	indexKind      IndexType
	vertexLayout   vertex.Layout
	instanceLayout vertex.Layout
	attributeless  bool
	instanceless   bool
	indexless      bool
	deinterleaved  bool
	renderVertNb   int
	renderInstNb   int
	restart        *uint32
	mapped         map[backend.BufferTarget]bool
	closed         bool
}

// Tess is a driver-resident vertex set plus the way to connect it. Its
// shape (storage mode, index type, primitive mode, buffer sizes) is fixed
// for its lifetime; content is edited through mapped views. Close releases
// the driver storage.
type Tess[V any, I Index, W any] struct {
	core core
}

// Mode returns the primitive mode.
func (t *Tess[V, I, W]) Mode() Mode { return t.core.mode }

// IndexKind returns the width of the index set, IndexNone for a
// non-indexed tess.
func (t *Tess[V, I, W]) IndexKind() IndexType { return t.core.indexKind }

// RenderVertexCount is the default number of vertices rendered when a draw
// does not ask for an explicit amount. For an indexed tess it counts
// indices, not raw vertices.
func (t *Tess[V, I, W]) RenderVertexCount() int { return t.core.renderVertNb }

// RenderInstanceCount is the default number of instances rendered; zero
// means non-instanced.
func (t *Tess[V, I, W]) RenderInstanceCount() int { return t.core.renderInstNb }

// VertexCount is the raw element count of the allocated vertex storage.
func (t *Tess[V, I, W]) VertexCount() int { return t.core.handle.VertexCount() }

// IndexCount is the raw element count of the allocated index storage.
func (t *Tess[V, I, W]) IndexCount() int { return t.core.handle.IndexCount() }

// InstanceCount is the raw element count of the allocated instance storage.
func (t *Tess[V, I, W]) InstanceCount() int { return t.core.handle.InstanceCount() }

// Close releases the driver storage. Close is idempotent; mapped views
// must be closed first.
func (t *Tess[V, I, W]) Close() error {
	if t.core.closed {
		return nil
	}
	t.core.closed = true
	t.core.drv.DropTess(t.core.handle)
	return nil
}

// Vertices maps the vertex storage as full records. It fails on a
// deinterleaved tess (map columns with Attribute instead) and on an
// attributeless one.
func (t *Tess[V, I, W]) Vertices() (*Mapped[V], error) {
	if err := t.core.checkInterleavedMap(); err != nil {
		return nil, err
	}
	return mapTyped[V](&t.core, backend.VertexBuffer())
}

// UpdateVertices maps the vertex storage, hands it to f, and unmaps on all
// exit paths.
func (t *Tess[V, I, W]) UpdateVertices(f func(verts []V) error) error {
	m, err := t.Vertices()
	if err != nil {
		return err
	}
	defer m.Close()
	return f(m.Slice())
}

// Indices maps the index storage. It fails on a non-indexed tess.
func (t *Tess[V, I, W]) Indices() (*Mapped[I], error) {
	if t.core.indexless {
		return nil, fmt.Errorf("%w: tess has no index set", ErrCannotMap)
	}
	return mapTyped[I](&t.core, backend.IndexBuffer())
}

// UpdateIndices maps the index storage, hands it to f, and unmaps on all
// exit paths.
func (t *Tess[V, I, W]) UpdateIndices(f func(indices []I) error) error {
	m, err := t.Indices()
	if err != nil {
		return err
	}
	defer m.Close()
	return f(m.Slice())
}

// Instances maps the instance storage as full records, under the same
// storage-mode rules as Vertices.
func (t *Tess[V, I, W]) Instances() (*Mapped[W], error) {
	if t.core.instanceless {
		return nil, ErrForbiddenAttributelessMapping
	}
	if t.core.deinterleaved {
		return nil, ErrForbiddenDeinterleavedMapping
	}
	return mapTyped[W](&t.core, backend.InstanceBuffer())
}

// UpdateInstances maps the instance storage, hands it to f, and unmaps on
// all exit paths.
func (t *Tess[V, I, W]) UpdateInstances(f func(instances []W) error) error {
	m, err := t.Instances()
	if err != nil {
		return err
	}
	defer m.Close()
	return f(m.Slice())
}

// Attribute maps one column of a deinterleaved vertex set as raw bytes,
// addressed by field rank. It fails on interleaved storage. For a typed
// view use AttributesOf.
func (t *Tess[V, I, W]) Attribute(field int) (*Mapped[byte], error) {
	if err := t.core.checkColumnMap(field); err != nil {
		return nil, err
	}
	return mapTyped[byte](&t.core, backend.VertexColumn(field))
}

// InstanceAttribute maps one column of a deinterleaved instance set as raw
// bytes, addressed by field rank in the instance layout. For a typed view
// use InstanceAttributesOf.
func (t *Tess[V, I, W]) InstanceAttribute(field int) (*Mapped[byte], error) {
	if err := t.core.checkInstanceColumnMap(field); err != nil {
		return nil, err
	}
	return mapTyped[byte](&t.core, backend.InstanceColumn(field))
}

func (c *core) checkInterleavedMap() error {
	if c.attributeless {
		return ErrForbiddenAttributelessMapping
	}
	if c.deinterleaved {
		return ErrForbiddenDeinterleavedMapping
	}
	return nil
}

func (c *core) checkColumnMap(field int) error {
	if c.attributeless {
		return ErrForbiddenAttributelessMapping
	}
	if !c.deinterleaved {
		return ErrForbiddenDeinterleavedMapping
	}
	if field < 0 || field >= c.vertexLayout.Len() {
		return fmt.Errorf("%w: no attribute field %d", ErrCannotMap, field)
	}
	return nil
}

func (c *core) checkInstanceColumnMap(field int) error {
	if c.instanceless {
		return ErrForbiddenAttributelessMapping
	}
	if !c.deinterleaved {
		return ErrForbiddenDeinterleavedMapping
	}
	if field < 0 || field >= c.instanceLayout.Len() {
		return fmt.Errorf("%w: no instance attribute field %d", ErrCannotMap, field)
	}
	return nil
}

// mapTyped maps one driver buffer and reinterprets it as a typed slice.
// The buffer stays mapped until the returned view is closed; a second map
// of the same buffer while mapped is refused.
func mapTyped[T any](c *core, target backend.BufferTarget) (*Mapped[T], error) {
	if c.closed {
		return nil, fmt.Errorf("%w: tess is closed", ErrCannotMap)
	}
	if c.mapped[target] {
		return nil, fmt.Errorf("%w: %s already mapped", ErrCannotMap, target.Kind)
	}
	raw, err := c.drv.MapBuffer(c.handle, target)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCannotMap, err)
	}
	c.mapped[target] = true
	return &Mapped[T]{
		data: sliceOf[T](raw),
		release: func() error {
			c.mapped[target] = false
			return c.drv.UnmapBuffer(c.handle, target)
		},
	}, nil
}

// Mapped is a scoped, typed view over driver-owned memory. The slice is
// valid until Close, which unmaps the buffer. Its length is fixed; mapping
// never resizes storage.
type Mapped[T any] struct {
	data    []T
	release func() error
}

// Slice returns the mapped elements. The slice aliases driver memory and
// must not be retained past Close.
func (m *Mapped[T]) Slice() []T { return m.data }

// Len returns the number of mapped elements.
func (m *Mapped[T]) Len() int { return len(m.data) }

// At returns the i-th element.
func (m *Mapped[T]) At(i int) T { return m.data[i] }

// Set assigns the i-th element.
func (m *Mapped[T]) Set(i int, v T) { m.data[i] = v }

// Close unmaps the buffer. Close is idempotent.
func (m *Mapped[T]) Close() error {
	if m.release == nil {
		return nil
	}
	release := m.release
	m.release = nil
	m.data = nil
	return release()
}

// Any is the type-erased face of a Tess, usable for heterogeneous storage
// and by the draw gates. The typed SliceIndices, VerticesOf and
// AttributesOf helpers recover element-typed views from it, re-checking
// the element type dynamically.
type Any interface {
	Mode() Mode
	IndexKind() IndexType
	RenderVertexCount() int
	RenderInstanceCount() int
	Close() error

	// Whole is the view covering the default render counts.
	Whole() View

	tessCore() *core
}

func (t *Tess[V, I, W]) tessCore() *core { return &t.core }

// SliceIndices maps the index storage of a type-erased tess as T,
// verifying T against the index type recorded at build time.
func SliceIndices[T Index](t Any) (*Mapped[T], error) {
	c := t.tessCore()
	if c.indexless {
		return nil, fmt.Errorf("%w: tess has no index set", ErrCannotMap)
	}
	if kind := KindOf[T](); kind != c.indexKind {
		return nil, &IndexTypeMismatchError{Requested: kind, Actual: c.indexKind}
	}
	return mapTyped[T](c, backend.IndexBuffer())
}

// VerticesOf maps the interleaved vertex storage of a type-erased tess as
// V, verifying V's size against the layout recorded at build time.
func VerticesOf[V any](t Any) (*Mapped[V], error) {
	c := t.tessCore()
	if err := c.checkInterleavedMap(); err != nil {
		return nil, err
	}
	if size := sizeOf[V](); size != c.vertexLayout.Stride() {
		return nil, &VertexTypeMismatchError{
			Layout:   c.vertexLayout,
			Expected: c.vertexLayout.Stride(),
			Got:      size,
		}
	}
	return mapTyped[V](c, backend.VertexBuffer())
}

// AttributesOf maps one deinterleaved vertex column of a type-erased tess
// as T, verifying T's size against the layout's field size.
func AttributesOf[T any](t Any, field int) (*Mapped[T], error) {
	c := t.tessCore()
	if err := c.checkColumnMap(field); err != nil {
		return nil, err
	}
	if size := sizeOf[T](); size != c.vertexLayout.At(field).Size() {
		return nil, &VertexTypeMismatchError{
			Layout:   c.vertexLayout,
			Expected: c.vertexLayout.At(field).Size(),
			Got:      size,
		}
	}
	return mapTyped[T](c, backend.VertexColumn(field))
}

// InstanceAttributesOf maps one deinterleaved instance column of a
// type-erased tess as T, verifying T's size against the instance layout's
// field size.
func InstanceAttributesOf[T any](t Any, field int) (*Mapped[T], error) {
	c := t.tessCore()
	if err := c.checkInstanceColumnMap(field); err != nil {
		return nil, err
	}
	if size := sizeOf[T](); size != c.instanceLayout.At(field).Size() {
		return nil, &VertexTypeMismatchError{
			Layout:   c.instanceLayout,
			Expected: c.instanceLayout.At(field).Size(),
			Got:      size,
		}
	}
	return mapTyped[T](c, backend.InstanceColumn(field))
}
