package relago

import (
	"iter"
	"maps"
	"slices"

	"github.com/relago/relago/ecs"
)

// Container is the per-entity, per-kind edge container: a mapping from
// partner entity to payload. A forward container of kind T lives on the
// source and is keyed by target; the reverse container (Container[In]) lives
// on the target and is keyed by source.
//
// Containers are attached lazily on first insertion and detached by the
// relationship service the instant they become empty; an empty container
// never persists on an entity.
type Container[T any] struct {
	elements map[ecs.Entity]T
}

// Add inserts or overwrites the entry for partner. A duplicate add on the
// same partner replaces the payload and leaves Len unchanged.
func (c *Container[T]) Add(partner ecs.Entity, payload T) {
	if c.elements == nil {
		c.elements = make(map[ecs.Entity]T)
	}
	c.elements[partner] = payload
}

// Remove deletes the entry for partner and reports whether it existed.
// Remove does not detach the container; the caller checks Len afterwards.
func (c *Container[T]) Remove(partner ecs.Entity) bool {
	if _, ok := c.elements[partner]; !ok {
		return false
	}
	delete(c.elements, partner)
	return true
}

// Contains reports whether an entry for partner exists.
func (c *Container[T]) Contains(partner ecs.Entity) bool {
	_, ok := c.elements[partner]
	return ok
}

// Get returns the payload stored for partner.
// Precondition: Contains(partner). Absent entries yield the zero value; use
// TryGet when existence is not established.
func (c *Container[T]) Get(partner ecs.Entity) T {
	return c.elements[partner]
}

// TryGet returns the payload stored for partner and whether it exists.
func (c *Container[T]) TryGet(partner ecs.Entity) (T, bool) {
	payload, ok := c.elements[partner]
	return payload, ok
}

// Len returns the number of entries.
func (c *Container[T]) Len() int {
	return len(c.elements)
}

// All returns an iterator over (partner, payload) entries.
// Iteration order is unspecified.
func (c *Container[T]) All() iter.Seq2[ecs.Entity, T] {
	return func(yield func(ecs.Entity, T) bool) {
		for partner, payload := range c.elements {
			if !yield(partner, payload) {
				return
			}
		}
	}
}

// In is the payload type of the reverse container. One In entry on a target,
// keyed by source, mirrors the forward entries that source holds toward the
// target: one tag per relationship kind, since several kinds may link the
// same pair at once.
//
// Each tag carries the kind's readable name and a removal hook that
// re-resolves the source's forward container through the store at call time.
// No container references are held, so there is no cyclic ownership between
// the two sides.
type In struct {
	kinds map[string]dropFunc
}

// dropFunc removes target from source's forward container of one kind,
// detaching the container when it empties.
type dropFunc func(w *ecs.World, source, target ecs.Entity) bool

// Kinds returns the names of the forward kinds this entry mirrors, sorted.
func (in In) Kinds() []string {
	return slices.Sorted(maps.Keys(in.kinds))
}

// HasKind reports whether this entry mirrors a forward edge of the named
// kind.
func (in In) HasKind(kind string) bool {
	_, ok := in.kinds[kind]
	return ok
}

func newIn(kind string, drop dropFunc) In {
	return In{kinds: map[string]dropFunc{kind: drop}}
}

// addKind records another forward kind on an existing entry. The kinds map is
// shared between copies of the entry, so mutating through a copy is visible
// in the container.
func (in In) addKind(kind string, drop dropFunc) {
	in.kinds[kind] = drop
}

func (in In) removeKind(kind string) {
	delete(in.kinds, kind)
}

func (in In) empty() bool {
	return len(in.kinds) == 0
}
