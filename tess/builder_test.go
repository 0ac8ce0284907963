package tess

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/lume/backend"
	"github.com/gogpu/lume/vertex"
)

type testVertex struct {
	Pos    [2]float32
	Weight float32
}

func testVertexLayout() vertex.Layout {
	return vertex.NewLayout(
		vertex.Attribute{Name: "pos", Format: gputypes.VertexFormatFloat32x2},
		vertex.Attribute{Name: "weight", Format: gputypes.VertexFormatFloat32},
	)
}

func testVerts(n int) []testVertex {
	out := make([]testVertex, n)
	for i := range out {
		out[i].Weight = float32(i)
	}
	return out
}

func TestBuildNoData(t *testing.T) {
	drv := &fakeDriver{}
	_, err := NewBuilder[testVertex, None, None](drv, testVertexLayout(), vertex.Layout{}).Build()
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("Build() error = %v, want ErrNoData", err)
	}
}

func TestBuildNilDriver(t *testing.T) {
	_, err := NewBuilder[testVertex, None, None](nil, testVertexLayout(), vertex.Layout{}).
		SetVertices(testVerts(3)).
		Build()
	var cce *CannotCreateError
	if !errors.As(err, &cce) {
		t.Fatalf("Build() error = %v, want *CannotCreateError", err)
	}
	if !errors.Is(err, backend.ErrDriverNotAvailable) {
		t.Errorf("Build() error does not wrap ErrDriverNotAvailable: %v", err)
	}
}

func TestRenderVertexCountInference(t *testing.T) {
	tests := []struct {
		name     string
		vertices int
		indices  []uint16
		explicit int
		want     int
		wantErr  error
	}{
		{name: "from vertices", vertices: 5, want: 5},
		{name: "from indices", vertices: 3, indices: []uint16{0, 1, 2, 2, 1, 0}, want: 6},
		{name: "explicit within vertices", vertices: 5, explicit: 3, want: 3},
		{name: "explicit exceeds vertices", vertices: 5, explicit: 9, wantErr: &LengthIncoherencyError{Len: 9}},
		{name: "explicit within indices", vertices: 3, indices: []uint16{0, 1, 2, 0}, explicit: 4, want: 4},
		{name: "explicit exceeds indices", vertices: 3, indices: []uint16{0, 1, 2}, explicit: 4, wantErr: &LengthIncoherencyError{Len: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			drv := &fakeDriver{}
			b := NewBuilder[testVertex, uint16, None](drv, testVertexLayout(), vertex.Layout{}).
				SetVertices(testVerts(tt.vertices))
			if tt.indices != nil {
				b.SetIndices(tt.indices)
			}
			if tt.explicit != 0 {
				b.SetRenderVertexNb(tt.explicit)
			}

			tess, err := b.Build()
			if tt.wantErr != nil {
				var lie *LengthIncoherencyError
				if !errors.As(err, &lie) {
					t.Fatalf("Build() error = %v, want *LengthIncoherencyError", err)
				}
				if want := tt.wantErr.(*LengthIncoherencyError); lie.Len != want.Len {
					t.Errorf("Len = %d, want %d", lie.Len, want.Len)
				}
				return
			}
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if got := tess.RenderVertexCount(); got != tt.want {
				t.Errorf("RenderVertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuildAttributeless(t *testing.T) {
	drv := &fakeDriver{}
	tess, err := NewBuilder[None, None, None](drv, vertex.Layout{}, vertex.Layout{}).
		SetRenderVertexNb(100).
		SetMode(Triangle).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := tess.RenderVertexCount(); got != 100 {
		t.Errorf("RenderVertexCount() = %d, want 100", got)
	}
	if got := tess.VertexCount(); got != 0 {
		t.Errorf("VertexCount() = %d, want 0", got)
	}

	if _, err := tess.Vertices(); !errors.Is(err, ErrForbiddenAttributelessMapping) {
		t.Errorf("Vertices() error = %v, want ErrForbiddenAttributelessMapping", err)
	}
}

func TestRenderInstanceCount(t *testing.T) {
	t.Run("inferred from data", func(t *testing.T) {
		drv := &fakeDriver{}
		tess, err := NewBuilder[testVertex, None, testVertex](drv, testVertexLayout(), testVertexLayout()).
			SetVertices(testVerts(3)).
			SetInstances(testVerts(7)).
			Build()
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if got := tess.RenderInstanceCount(); got != 7 {
			t.Errorf("RenderInstanceCount() = %d, want 7", got)
		}
	})

	t.Run("absent means non-instanced", func(t *testing.T) {
		drv := &fakeDriver{}
		tess, err := NewBuilder[testVertex, None, None](drv, testVertexLayout(), vertex.Layout{}).
			SetVertices(testVerts(3)).
			Build()
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if got := tess.RenderInstanceCount(); got != 0 {
			t.Errorf("RenderInstanceCount() = %d, want 0", got)
		}
	})

	t.Run("explicit without data", func(t *testing.T) {
		drv := &fakeDriver{}
		_, err := NewBuilder[testVertex, None, None](drv, testVertexLayout(), vertex.Layout{}).
			SetVertices(testVerts(3)).
			SetRenderInstanceNb(4).
			Build()
		var ae *AttributelessError
		if !errors.As(err, &ae) {
			t.Fatalf("Build() error = %v, want *AttributelessError", err)
		}
	})

	t.Run("explicit exceeds data", func(t *testing.T) {
		drv := &fakeDriver{}
		_, err := NewBuilder[testVertex, None, testVertex](drv, testVertexLayout(), testVertexLayout()).
			SetVertices(testVerts(3)).
			SetInstances(testVerts(2)).
			SetRenderInstanceNb(5).
			Build()
		var lie *LengthIncoherencyError
		if !errors.As(err, &lie) {
			t.Fatalf("Build() error = %v, want *LengthIncoherencyError", err)
		}
	})
}

func TestDeinterleavedCoherency(t *testing.T) {
	layout := testVertexLayout()

	t.Run("coherent", func(t *testing.T) {
		drv := &fakeDriver{}
		tess, err := NewDeinterleavedBuilder[testVertex, None, None](drv, layout, vertex.Layout{}).
			SetAttributes(0, NewColumn([][2]float32{{0, 0}, {1, 0}, {0, 1}})).
			SetAttributes(1, NewColumn([]float32{1, 2, 3})).
			Build()
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if got := tess.RenderVertexCount(); got != 3 {
			t.Errorf("RenderVertexCount() = %d, want 3", got)
		}
	})

	t.Run("incoherent columns", func(t *testing.T) {
		drv := &fakeDriver{}
		_, err := NewDeinterleavedBuilder[testVertex, None, None](drv, layout, vertex.Layout{}).
			SetAttributes(0, NewColumn([][2]float32{{0, 0}, {1, 0}, {0, 1}})).
			SetAttributes(1, NewColumn([]float32{1, 2})).
			Build()
		var lie *LengthIncoherencyError
		if !errors.As(err, &lie) {
			t.Fatalf("Build() error = %v, want *LengthIncoherencyError", err)
		}
	})

	t.Run("missing column", func(t *testing.T) {
		drv := &fakeDriver{}
		_, err := NewDeinterleavedBuilder[testVertex, None, None](drv, layout, vertex.Layout{}).
			SetAttributes(0, NewColumn([][2]float32{{0, 0}, {1, 0}, {0, 1}})).
			Build()
		var lie *LengthIncoherencyError
		if !errors.As(err, &lie) {
			t.Fatalf("Build() error = %v, want *LengthIncoherencyError", err)
		}
	})

	t.Run("column for unknown field", func(t *testing.T) {
		drv := &fakeDriver{}
		_, err := NewDeinterleavedBuilder[testVertex, None, None](drv, layout, vertex.Layout{}).
			SetAttributes(0, NewColumn([][2]float32{{0, 0}, {1, 0}, {0, 1}})).
			SetAttributes(1, NewColumn([]float32{1, 2, 3})).
			SetAttributes(7, NewColumn([]float32{1, 2, 3})).
			Build()
		var uae *UnknownAttributeError
		if !errors.As(err, &uae) {
			t.Fatalf("Build() error = %v, want *UnknownAttributeError", err)
		}
		if uae.Field != 7 || uae.Len != 2 {
			t.Errorf("payload = {%d %d}, want {7 2}", uae.Field, uae.Len)
		}
	})

	t.Run("only an unknown field set", func(t *testing.T) {
		drv := &fakeDriver{}
		_, err := NewDeinterleavedBuilder[testVertex, None, None](drv, layout, vertex.Layout{}).
			SetAttributes(-1, NewColumn([]float32{1})).
			Build()
		var uae *UnknownAttributeError
		if !errors.As(err, &uae) {
			t.Fatalf("Build() error = %v, want *UnknownAttributeError", err)
		}
	})
}

func TestDeinterleavedInstanceCoherency(t *testing.T) {
	layout := testVertexLayout()

	vertexColumns := func(b *DeinterleavedBuilder[testVertex, None, testVertex]) *DeinterleavedBuilder[testVertex, None, testVertex] {
		return b.
			SetAttributes(0, NewColumn([][2]float32{{0, 0}, {1, 0}, {0, 1}})).
			SetAttributes(1, NewColumn([]float32{1, 2, 3}))
	}

	t.Run("coherent", func(t *testing.T) {
		drv := &fakeDriver{}
		tess, err := vertexColumns(NewDeinterleavedBuilder[testVertex, None, testVertex](drv, layout, layout)).
			SetInstanceAttributes(0, NewColumn([][2]float32{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}})).
			SetInstanceAttributes(1, NewColumn([]float32{1, 2, 3, 4, 5})).
			Build()
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if got := tess.RenderInstanceCount(); got != 5 {
			t.Errorf("RenderInstanceCount() = %d, want 5", got)
		}
		if got := tess.InstanceCount(); got != 5 {
			t.Errorf("InstanceCount() = %d, want 5", got)
		}
	})

	t.Run("incoherent instance columns", func(t *testing.T) {
		drv := &fakeDriver{}
		_, err := vertexColumns(NewDeinterleavedBuilder[testVertex, None, testVertex](drv, layout, layout)).
			SetInstanceAttributes(0, NewColumn([][2]float32{{0, 0}, {1, 1}})).
			SetInstanceAttributes(1, NewColumn([]float32{1, 2, 3})).
			Build()
		var lie *LengthIncoherencyError
		if !errors.As(err, &lie) {
			t.Fatalf("Build() error = %v, want *LengthIncoherencyError", err)
		}
	})

	t.Run("instance column for unknown field", func(t *testing.T) {
		drv := &fakeDriver{}
		_, err := vertexColumns(NewDeinterleavedBuilder[testVertex, None, testVertex](drv, layout, layout)).
			SetInstanceAttributes(3, NewColumn([]float32{1, 2, 3})).
			Build()
		var uae *UnknownAttributeError
		if !errors.As(err, &uae) {
			t.Fatalf("Build() error = %v, want *UnknownAttributeError", err)
		}
		if uae.Field != 3 || uae.Len != 2 {
			t.Errorf("payload = {%d %d}, want {3 2}", uae.Field, uae.Len)
		}
	})
}

func TestBuildPatchMode(t *testing.T) {
	drv := &fakeDriver{}
	_, err := NewBuilder[testVertex, None, None](drv, testVertexLayout(), vertex.Layout{}).
		SetVertices(testVerts(6)).
		SetMode(Patch(0)).
		Build()
	var fpe *ForbiddenPrimitiveModeError
	if !errors.As(err, &fpe) {
		t.Fatalf("Build() error = %v, want *ForbiddenPrimitiveModeError", err)
	}

	tess, err := NewBuilder[testVertex, None, None](drv, testVertexLayout(), vertex.Layout{}).
		SetVertices(testVerts(6)).
		SetMode(Patch(3)).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := tess.Mode().PatchVertexCount(); got != 3 {
		t.Errorf("PatchVertexCount() = %d, want 3", got)
	}
}

func TestBuildDriverFailure(t *testing.T) {
	fail := errors.New("out of device memory")
	drv := &fakeDriver{newErr: fail}
	_, err := NewBuilder[testVertex, None, None](drv, testVertexLayout(), vertex.Layout{}).
		SetVertices(testVerts(3)).
		Build()
	var cce *CannotCreateError
	if !errors.As(err, &cce) {
		t.Fatalf("Build() error = %v, want *CannotCreateError", err)
	}
	if !errors.Is(err, fail) {
		t.Errorf("Build() error does not wrap driver error: %v", err)
	}
}

func TestBuildDefaults(t *testing.T) {
	drv := &fakeDriver{}
	tess, err := NewBuilder[testVertex, None, None](drv, testVertexLayout(), vertex.Layout{}).
		SetVertices(testVerts(4)).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if tess.Mode() != Point {
		t.Errorf("Mode() = %v, want Point", tess.Mode())
	}
	if got := tess.IndexKind(); got != IndexNone {
		t.Errorf("IndexKind() = %v, want IndexNone", got)
	}
}

func TestBuildRestartIndex(t *testing.T) {
	drv := &fakeDriver{}
	_, err := NewBuilder[testVertex, uint16, None](drv, testVertexLayout(), vertex.Layout{}).
		SetVertices(testVerts(4)).
		SetIndices([]uint16{0, 1, 0xFFFF, 2, 3}).
		SetMode(TriangleStrip).
		SetPrimitiveRestartIndex(uint16(0xFFFF)).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	desc := drv.last.desc
	if desc.RestartIndex == nil || *desc.RestartIndex != 0xFFFF {
		t.Errorf("RestartIndex = %v, want 0xFFFF", desc.RestartIndex)
	}
	if got := desc.IndexKind(); got != backend.IndexU16 {
		t.Errorf("IndexKind() = %v, want IndexU16", got)
	}
}

func TestIndexKindOf(t *testing.T) {
	tests := []struct {
		name string
		got  IndexType
		want IndexType
	}{
		{"none", KindOf[None](), IndexNone},
		{"uint8", KindOf[uint8](), IndexU8},
		{"uint16", KindOf[uint16](), IndexU16},
		{"uint32", KindOf[uint32](), IndexU32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("KindOf() = %v, want %v", tt.got, tt.want)
			}
		})
	}
}
