package tess

import (
	"unsafe"

	"github.com/gogpu/lume/backend"
)

// IndexType is re-exported from backend; it names the width of a tess's
// index values.
type IndexType = backend.IndexType

// Index type values.
const (
	IndexNone = backend.IndexNone
	IndexU8   = backend.IndexU8
	IndexU16  = backend.IndexU16
	IndexU32  = backend.IndexU32
)

// None is the unit marker that disables indexing (and instancing) in a
// builder's type parameters.
type None struct{}

// Index constrains the types allowed to index a tess in indexed draw
// commands: the unsigned widths the contract can express, or None to
// disable indexing.
type Index interface {
	None | ~uint8 | ~uint16 | ~uint32
}

// KindOf reports the index type of I. The width of the Go type decides:
// None is zero-sized and disables indexing.
func KindOf[I Index]() IndexType {
	var z I
	switch unsafe.Sizeof(z) {
	case 1:
		return IndexU8
	case 2:
		return IndexU16
	case 4:
		return IndexU32
	default:
		return IndexNone
	}
}

// indexToU32 widens an index value for the driver-facing restart sentinel.
func indexToU32[I Index](i I) uint32 {
	p := unsafe.Pointer(&i)
	switch unsafe.Sizeof(i) {
	case 1:
		return uint32(*(*uint8)(p))
	case 2:
		return uint32(*(*uint16)(p))
	case 4:
		return *(*uint32)(p)
	default:
		return 0
	}
}
