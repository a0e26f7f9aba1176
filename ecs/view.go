package ecs

import "iter"

// Each iterates every live entity carrying a component of type C, yielding
// the handle and a pointer to the component. Iteration order is unspecified.
//
// Attaching or detaching C components during iteration is not supported;
// mutating the yielded component in place is.
func Each[C any](w *World) iter.Seq2[Entity, *C] {
	return func(yield func(Entity, *C) bool) {
		s, ok := storageFor[C](w, false)
		if !ok {
			return
		}
		for pos := range s.dense {
			if !yield(w.entityAt(s.owners[pos]), &s.dense[pos]) {
				return
			}
		}
	}
}

// Query2 iterates entities carrying both an A and a B component, in ascending
// index order. The candidate set is computed up front by intersecting the two
// owner bitmaps, so detaching components during iteration is safe for
// entities not yet yielded.
func Query2[A, B any](w *World) iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		sa, ok := storageFor[A](w, false)
		if !ok {
			return
		}
		sb, ok := storageFor[B](w, false)
		if !ok {
			return
		}
		for idx := range sa.ownerSet().And(sb.ownerSet()).All() {
			if !yield(w.entityAt(idx)) {
				return
			}
		}
	}
}
