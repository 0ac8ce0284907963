package tess

import (
	"errors"
	"testing"

	"github.com/gogpu/lume/vertex"
)

func buildIndexed(t *testing.T, drv *fakeDriver) *Tess[testVertex, uint16, None] {
	t.Helper()
	tess, err := NewBuilder[testVertex, uint16, None](drv, testVertexLayout(), vertex.Layout{}).
		SetVertices(testVerts(4)).
		SetIndices([]uint16{0, 1, 2, 2, 3, 0}).
		SetMode(Triangle).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return tess
}

func TestVerticesRoundTrip(t *testing.T) {
	drv := &fakeDriver{}
	tri := buildIndexed(t, drv)

	m, err := tri.Vertices()
	if err != nil {
		t.Fatalf("Vertices() error = %v", err)
	}
	if m.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", m.Len())
	}
	m.Set(2, testVertex{Pos: [2]float32{1, 2}, Weight: 9})
	if err := m.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	m, err = tri.Vertices()
	if err != nil {
		t.Fatalf("remap error = %v", err)
	}
	defer m.Close()
	if got := m.At(2).Weight; got != 9 {
		t.Errorf("At(2).Weight = %v, want 9", got)
	}
}

func TestDoubleMap(t *testing.T) {
	drv := &fakeDriver{}
	tri := buildIndexed(t, drv)

	m, err := tri.Vertices()
	if err != nil {
		t.Fatalf("Vertices() error = %v", err)
	}
	defer m.Close()

	if _, err := tri.Vertices(); !errors.Is(err, ErrCannotMap) {
		t.Errorf("second Vertices() error = %v, want ErrCannotMap", err)
	}

	// The index buffer is a different target and maps independently.
	mi, err := tri.Indices()
	if err != nil {
		t.Fatalf("Indices() error = %v", err)
	}
	mi.Close()
}

func TestMappedCloseIdempotent(t *testing.T) {
	drv := &fakeDriver{}
	tri := buildIndexed(t, drv)

	m, err := tri.Vertices()
	if err != nil {
		t.Fatalf("Vertices() error = %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if drv.unmaps != 1 {
		t.Errorf("unmaps = %d, want 1", drv.unmaps)
	}
}

func TestUpdateVertices(t *testing.T) {
	drv := &fakeDriver{}
	tri := buildIndexed(t, drv)

	err := tri.UpdateVertices(func(verts []testVertex) error {
		verts[0].Weight = 42
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateVertices() error = %v", err)
	}
	if drv.unmaps != 1 {
		t.Errorf("unmaps = %d, want 1", drv.unmaps)
	}

	fail := errors.New("edit failed")
	err = tri.UpdateVertices(func([]testVertex) error { return fail })
	if !errors.Is(err, fail) {
		t.Errorf("UpdateVertices() error = %v, want callback error", err)
	}
	if drv.unmaps != 2 {
		t.Errorf("unmaps = %d, want 2 after failing callback", drv.unmaps)
	}
}

func TestIndicesRoundTrip(t *testing.T) {
	drv := &fakeDriver{}
	tri := buildIndexed(t, drv)

	err := tri.UpdateIndices(func(indices []uint16) error {
		if len(indices) != 6 {
			t.Errorf("len(indices) = %d, want 6", len(indices))
		}
		indices[0] = 3
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateIndices() error = %v", err)
	}

	m, err := tri.Indices()
	if err != nil {
		t.Fatalf("Indices() error = %v", err)
	}
	defer m.Close()
	if got := m.At(0); got != 3 {
		t.Errorf("At(0) = %d, want 3", got)
	}
}

func TestIndicesOnNonIndexed(t *testing.T) {
	tri := buildTriangle(t)
	if _, err := tri.Indices(); !errors.Is(err, ErrCannotMap) {
		t.Errorf("Indices() error = %v, want ErrCannotMap", err)
	}
}

func TestStorageModeMismatch(t *testing.T) {
	layout := testVertexLayout()

	drv := &fakeDriver{}
	deinter, err := NewDeinterleavedBuilder[testVertex, None, None](drv, layout, vertex.Layout{}).
		SetAttributes(0, NewColumn([][2]float32{{0, 0}, {1, 0}, {0, 1}})).
		SetAttributes(1, NewColumn([]float32{1, 2, 3})).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if _, err := deinter.Vertices(); !errors.Is(err, ErrForbiddenDeinterleavedMapping) {
		t.Errorf("Vertices() on deinterleaved error = %v, want ErrForbiddenDeinterleavedMapping", err)
	}

	m, err := deinter.Attribute(1)
	if err != nil {
		t.Fatalf("Attribute(1) error = %v", err)
	}
	if m.Len() != 12 {
		t.Errorf("Attribute(1) byte length = %d, want 12", m.Len())
	}
	m.Close()

	if _, err := deinter.Attribute(5); !errors.Is(err, ErrCannotMap) {
		t.Errorf("Attribute(5) error = %v, want ErrCannotMap", err)
	}

	inter := buildTriangle(t)
	if _, err := inter.Attribute(0); !errors.Is(err, ErrForbiddenDeinterleavedMapping) {
		t.Errorf("Attribute() on interleaved error = %v, want ErrForbiddenDeinterleavedMapping", err)
	}
}

func TestTessClose(t *testing.T) {
	drv := &fakeDriver{}
	tri := buildIndexed(t, drv)

	if err := tri.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := tri.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}
	if drv.dropped != 1 {
		t.Errorf("dropped = %d, want 1", drv.dropped)
	}

	if _, err := tri.Vertices(); !errors.Is(err, ErrCannotMap) {
		t.Errorf("Vertices() after Close error = %v, want ErrCannotMap", err)
	}
}

func TestTypeErased(t *testing.T) {
	drv := &fakeDriver{}
	tri := buildIndexed(t, drv)
	var a Any = tri

	if got := a.IndexKind(); got != IndexU16 {
		t.Errorf("IndexKind() = %v, want IndexU16", got)
	}

	t.Run("indices of matching type", func(t *testing.T) {
		m, err := SliceIndices[uint16](a)
		if err != nil {
			t.Fatalf("SliceIndices() error = %v", err)
		}
		defer m.Close()
		if m.Len() != 6 {
			t.Errorf("Len() = %d, want 6", m.Len())
		}
	})

	t.Run("indices of wrong type", func(t *testing.T) {
		_, err := SliceIndices[uint32](a)
		var itm *IndexTypeMismatchError
		if !errors.As(err, &itm) {
			t.Fatalf("SliceIndices() error = %v, want *IndexTypeMismatchError", err)
		}
		if itm.Requested != IndexU32 || itm.Actual != IndexU16 {
			t.Errorf("payload = {%v %v}, want {u32 u16}", itm.Requested, itm.Actual)
		}
	})

	t.Run("vertices of matching size", func(t *testing.T) {
		m, err := VerticesOf[testVertex](a)
		if err != nil {
			t.Fatalf("VerticesOf() error = %v", err)
		}
		m.Close()
	})

	t.Run("vertices of wrong size", func(t *testing.T) {
		_, err := VerticesOf[float32](a)
		var vtm *VertexTypeMismatchError
		if !errors.As(err, &vtm) {
			t.Fatalf("VerticesOf() error = %v, want *VertexTypeMismatchError", err)
		}
		if vtm.Expected != 12 || vtm.Got != 4 {
			t.Errorf("payload = {%d %d}, want {12 4}", vtm.Expected, vtm.Got)
		}
	})
}

func TestInstanceAttributeMapping(t *testing.T) {
	layout := testVertexLayout()

	drv := &fakeDriver{}
	deinter, err := NewDeinterleavedBuilder[testVertex, None, testVertex](drv, layout, layout).
		SetAttributes(0, NewColumn([][2]float32{{0, 0}, {1, 0}, {0, 1}})).
		SetAttributes(1, NewColumn([]float32{1, 2, 3})).
		SetInstanceAttributes(0, NewColumn([][2]float32{{0, 0}, {1, 1}})).
		SetInstanceAttributes(1, NewColumn([]float32{10, 20})).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if _, err := deinter.Instances(); !errors.Is(err, ErrForbiddenDeinterleavedMapping) {
		t.Errorf("Instances() on deinterleaved error = %v, want ErrForbiddenDeinterleavedMapping", err)
	}

	m, err := deinter.InstanceAttribute(1)
	if err != nil {
		t.Fatalf("InstanceAttribute(1) error = %v", err)
	}
	if m.Len() != 8 {
		t.Errorf("InstanceAttribute(1) byte length = %d, want 8", m.Len())
	}
	m.Close()

	if _, err := deinter.InstanceAttribute(9); !errors.Is(err, ErrCannotMap) {
		t.Errorf("InstanceAttribute(9) error = %v, want ErrCannotMap", err)
	}

	var a Any = deinter
	mt, err := InstanceAttributesOf[float32](a, 1)
	if err != nil {
		t.Fatalf("InstanceAttributesOf() error = %v", err)
	}
	if mt.Len() != 2 || mt.At(1) != 20 {
		t.Errorf("column = len %d last %v, want len 2 last 20", mt.Len(), mt.At(1))
	}
	mt.Set(0, 11)
	mt.Close()

	mt, err = InstanceAttributesOf[float32](a, 1)
	if err != nil {
		t.Fatalf("remap error = %v", err)
	}
	if got := mt.At(0); got != 11 {
		t.Errorf("At(0) = %v, want 11", got)
	}
	mt.Close()

	_, err = InstanceAttributesOf[[2]float32](a, 1)
	var vtm *VertexTypeMismatchError
	if !errors.As(err, &vtm) {
		t.Fatalf("InstanceAttributesOf() with wrong type error = %v, want *VertexTypeMismatchError", err)
	}

	instanceless := buildIndexed(t, &fakeDriver{})
	if _, err := instanceless.InstanceAttribute(0); !errors.Is(err, ErrForbiddenAttributelessMapping) {
		t.Errorf("InstanceAttribute() without instance data error = %v, want ErrForbiddenAttributelessMapping", err)
	}

	interleaved, err := NewBuilder[testVertex, None, testVertex](&fakeDriver{}, layout, layout).
		SetVertices(testVerts(3)).
		SetInstances(testVerts(2)).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, err := interleaved.InstanceAttribute(0); !errors.Is(err, ErrForbiddenDeinterleavedMapping) {
		t.Errorf("InstanceAttribute() on interleaved instances error = %v, want ErrForbiddenDeinterleavedMapping", err)
	}
}

func TestAttributesOf(t *testing.T) {
	drv := &fakeDriver{}
	deinter, err := NewDeinterleavedBuilder[testVertex, None, None](drv, testVertexLayout(), vertex.Layout{}).
		SetAttributes(0, NewColumn([][2]float32{{0, 0}, {1, 0}, {0, 1}})).
		SetAttributes(1, NewColumn([]float32{1, 2, 3})).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	var a Any = deinter

	m, err := AttributesOf[float32](a, 1)
	if err != nil {
		t.Fatalf("AttributesOf() error = %v", err)
	}
	if m.Len() != 3 || m.At(2) != 3 {
		t.Errorf("column = len %d last %v, want len 3 last 3", m.Len(), m.At(2))
	}
	m.Close()

	_, err = AttributesOf[[2]float32](a, 1)
	var vtm *VertexTypeMismatchError
	if !errors.As(err, &vtm) {
		t.Fatalf("AttributesOf() with wrong type error = %v, want *VertexTypeMismatchError", err)
	}
}
