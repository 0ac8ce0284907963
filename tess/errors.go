package tess

import (
	"errors"
	"fmt"

	"github.com/gogpu/lume/backend"
	"github.com/gogpu/lume/vertex"
)

// Sentinel mapping errors.
var (
	// ErrCannotMap is returned when a buffer cannot be mapped: the driver
	// refused, the tess has no such buffer, or the buffer is already
	// mapped.
	ErrCannotMap = errors.New("tess: cannot map on the driver")

	// ErrForbiddenAttributelessMapping is returned when mapping vertex or
	// instance content of a tess that carries no such data.
	ErrForbiddenAttributelessMapping = errors.New("tess: cannot map an attributeless tess")

	// ErrForbiddenDeinterleavedMapping is returned when the requested view
	// shape does not match the tess's storage mode: an interleaved view of
	// a deinterleaved tess, or an attribute column of an interleaved one.
	ErrForbiddenDeinterleavedMapping = errors.New("tess: storage mode mismatch in mapping")

	// ErrNoData is returned by Build when neither vertex data nor an
	// explicit render vertex count was provided.
	ErrNoData = errors.New("tess: no data or empty tessellation")
)

// LengthIncoherencyError is returned by Build when buffer lengths disagree:
// a deinterleaved column differs from its siblings, or an explicit render
// count exceeds the data length. Len carries the offending length.
type LengthIncoherencyError struct {
	Len int
}

func (e *LengthIncoherencyError) Error() string {
	return fmt.Sprintf("tess: incoherent length for internal buffers: %d", e.Len)
}

// AttributelessError is returned by Build when a configuration needs data
// the builder never received, e.g. an explicit instance count without
// instance data.
type AttributelessError struct {
	Reason string
}

func (e *AttributelessError) Error() string {
	return "tess: attributeless error: " + e.Reason
}

// UnknownAttributeError is returned by Build when a column was supplied for
// a field rank the layout does not have.
type UnknownAttributeError struct {
	// Field is the offending rank.
	Field int
	// Len is the number of fields in the layout.
	Len int
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("tess: no attribute field %d in a %d-field layout", e.Field, e.Len)
}

// ForbiddenPrimitiveModeError is returned when the driver rejects a
// primitive mode it cannot draw.
type ForbiddenPrimitiveModeError struct {
	Mode Mode
}

func (e *ForbiddenPrimitiveModeError) Error() string {
	return fmt.Sprintf("tess: forbidden primitive mode: %s", e.Mode)
}

// CannotCreateError is returned by Build when the driver refuses to
// allocate storage for an otherwise valid shape.
type CannotCreateError struct {
	Err error
}

func (e *CannotCreateError) Error() string {
	return fmt.Sprintf("tess: creation error: %v", e.Err)
}

func (e *CannotCreateError) Unwrap() error { return e.Err }

// VertexTypeMismatchError is returned when a mapped view's element type
// disagrees with the layout the tess was built with.
type VertexTypeMismatchError struct {
	// Layout is the layout recorded at build time.
	Layout vertex.Layout
	// Expected is the byte size the layout implies for one element.
	Expected int
	// Got is the byte size of the requested view's element type.
	Got int
}

func (e *VertexTypeMismatchError) Error() string {
	return fmt.Sprintf(
		"tess: vertex type mismatch: layout %s expects %d-byte elements, view has %d-byte elements",
		e.Layout, e.Expected, e.Got,
	)
}

// IndexTypeMismatchError is returned when a mapped index view's type
// disagrees with the index type the tess was built with.
type IndexTypeMismatchError struct {
	Requested backend.IndexType
	Actual    backend.IndexType
}

func (e *IndexTypeMismatchError) Error() string {
	return fmt.Sprintf("tess: index type mismatch: requested %s, tess is indexed by %s",
		e.Requested, e.Actual)
}

// IncorrectViewWindowError is returned by view constructors when the
// requested window does not fit the tess's default render vertex count.
type IncorrectViewWindowError struct {
	// Capacity is the tess's default render vertex count.
	Capacity int
	// Start is the requested window start.
	Start int
	// Nb is the requested window length.
	Nb int
}

func (e *IncorrectViewWindowError) Error() string {
	return fmt.Sprintf(
		"tess: incorrect view window: requested %d vertices starting at %d, but capacity is only %d",
		e.Nb, e.Start, e.Capacity,
	)
}
