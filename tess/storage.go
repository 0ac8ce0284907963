package tess

import (
	"unsafe"

	"github.com/gogpu/lume/backend"
	"github.com/gogpu/lume/vertex"
)

// bytesOf reinterprets a typed slice as its packed byte representation.
// The returned slice aliases data.
func bytesOf[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	size := int(unsafe.Sizeof(data[0]))
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*size)
}

// sliceOf reinterprets packed bytes as a typed slice. The returned slice
// aliases raw.
func sliceOf[T any](raw []byte) []T {
	var z T
	size := int(unsafe.Sizeof(z))
	if size == 0 || len(raw) < size {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), len(raw)/size)
}

// sizeOf returns the byte size of T.
func sizeOf[T any]() int {
	var z T
	return int(unsafe.Sizeof(z))
}

// Column is re-exported from backend; it is one deinterleaved attribute
// buffer.
type Column = backend.Column

// NewColumn packs one attribute's values across all vertices into a
// deinterleaved column.
func NewColumn[T any](data []T) Column {
	return Column{
		Raw:      bytesOf(data),
		ElemSize: sizeOf[T](),
		Count:    len(data),
	}
}

// interleavedSet is an interleaved vertex or instance set under assembly.
type interleavedSet struct {
	layout vertex.Layout
	raw    []byte
	stride int
	count  int
	set    bool
}

func (s *interleavedSet) coherentLen() (int, error) {
	return s.count, nil
}

func (s *interleavedSet) data() *backend.VertexData {
	if !s.set {
		return nil
	}
	return &backend.VertexData{
		Layout:      s.layout,
		Interleaved: s.raw,
		Stride:      s.stride,
		Count:       s.count,
	}
}

// deinterleavedSet is a deinterleaved vertex or instance set under
// assembly: one column per attribute, supplied independently and in any
// order. Unset columns report length 0, which the coherency check treats
// like any other length. A column supplied for a rank outside the layout is
// remembered and rejected at build time.
type deinterleavedSet struct {
	layout   vertex.Layout
	columns  []Column
	set      bool
	badField *int
}

func (s *deinterleavedSet) setColumn(field int, col Column) {
	if field < 0 || field >= s.layout.Len() {
		if s.badField == nil {
			f := field
			s.badField = &f
		}
		return
	}
	if s.columns == nil {
		s.columns = make([]Column, s.layout.Len())
	}
	s.columns[field] = col
	s.set = true
}

func (s *deinterleavedSet) coherentLen() (int, error) {
	if s.badField != nil {
		return 0, &UnknownAttributeError{Field: *s.badField, Len: s.layout.Len()}
	}
	if len(s.columns) == 0 {
		return 0, nil
	}
	n := s.columns[0].Count
	for _, c := range s.columns[1:] {
		if c.Count != n {
			return 0, &LengthIncoherencyError{Len: n}
		}
	}
	return n, nil
}

func (s *deinterleavedSet) data() (*backend.VertexData, error) {
	if !s.set {
		return nil, nil
	}
	n, err := s.coherentLen()
	if err != nil {
		return nil, err
	}
	return &backend.VertexData{
		Layout:  s.layout,
		Columns: s.columns,
		Count:   n,
	}, nil
}
