package ecs

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrDeadEntity is returned when a component is attached to a handle that is
// not (or no longer) live.
var ErrDeadEntity = errors.New("entity is not alive")

// Component access is expressed as free generic functions because Go methods
// cannot carry their own type parameters. Each component type C occupies its
// own slot per entity: attaching a second C overwrites the first.

// storageFor returns the typed sparse set for C, creating it when asked.
func storageFor[C any](w *World, create bool) (*sparseSet[C], bool) {
	t := reflect.TypeFor[C]()
	if s, ok := w.storages[t]; ok {
		return s.(*sparseSet[C]), true
	}
	if !create {
		return nil, false
	}
	s := newSparseSet[C]()
	w.storages[t] = s
	return s, true
}

// Add attaches component c to entity e, overwriting any existing C.
func Add[C any](w *World, e Entity, c C) error {
	if !w.Alive(e) {
		return fmt.Errorf("%w: %s", ErrDeadEntity, e)
	}
	s, _ := storageFor[C](w, true)
	s.put(e.idx, c)
	return nil
}

// Get returns a copy of e's component of type C.
// Returns the zero value and false if the entity is dead or has no C.
func Get[C any](w *World, e Entity) (C, bool) {
	if !w.Alive(e) {
		var zero C
		return zero, false
	}
	s, ok := storageFor[C](w, false)
	if !ok {
		var zero C
		return zero, false
	}
	return s.get(e.idx)
}

// GetRef returns a pointer to e's component of type C for in-place mutation.
// The pointer is invalidated by the next Add or Remove touching the same
// component type on any entity.
func GetRef[C any](w *World, e Entity) (*C, bool) {
	if !w.Alive(e) {
		return nil, false
	}
	s, ok := storageFor[C](w, false)
	if !ok {
		return nil, false
	}
	return s.ref(e.idx)
}

// Has reports whether e carries a component of type C.
func Has[C any](w *World, e Entity) bool {
	if !w.Alive(e) {
		return false
	}
	s, ok := storageFor[C](w, false)
	return ok && s.hasIndex(e.idx)
}

// Remove detaches e's component of type C and reports whether one existed.
func Remove[C any](w *World, e Entity) bool {
	if !w.Alive(e) {
		return false
	}
	s, ok := storageFor[C](w, false)
	if !ok {
		return false
	}
	return s.removeIndex(e.idx)
}
