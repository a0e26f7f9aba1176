package ecs

import "fmt"

// Entity is an opaque handle to a world-managed object.
//
// A handle is a 32-bit index into the world's entity arena plus a 32-bit
// generation. Indices are recycled on destruction; the generation is bumped
// each time, so stale handles to a recycled slot compare unequal and fail
// liveness checks instead of aliasing the new occupant.
//
// Entities are comparable and usable as map keys. The zero value is never a
// live entity.
type Entity struct {
	idx uint32
	gen uint32
}

// Index returns the dense arena index of the handle. It is strictly 32-bit,
// sized for bitmap and sparse-array storage.
func (e Entity) Index() uint32 { return e.idx }

// Generation returns the recycling generation of the handle.
func (e Entity) Generation() uint32 { return e.gen }

// IsZero reports whether e is the zero handle.
func (e Entity) IsZero() bool { return e == Entity{} }

func (e Entity) String() string {
	return fmt.Sprintf("e%d:%d", e.idx, e.gen)
}
