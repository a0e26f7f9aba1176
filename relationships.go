package relago

import (
	"iter"
	"time"

	"github.com/relago/relago/ecs"
)

// AddRelationship stores an edge source --T--> target carrying payload.
//
// The forward container of kind T on source and the reverse container on
// target are created lazily and updated together. Adding an edge that
// already exists overwrites its payload. Fails only when either handle is
// dead.
func AddRelationship[T any](r *Registry, source, target ecs.Entity, payload T) error {
	start := time.Now()
	err := addRelationship(r, source, target, payload)
	r.metrics.RecordAdd(time.Since(start), err)
	r.logger.LogAdd(kindName[T](), source, target, err)
	return err
}

func addRelationship[T any](r *Registry, source, target ecs.Entity, payload T) error {
	if !r.world.Alive(source) {
		return &ErrDeadEntity{Entity: source, cause: ecs.ErrDeadEntity}
	}
	if !r.world.Alive(target) {
		return &ErrDeadEntity{Entity: target, cause: ecs.ErrDeadEntity}
	}

	registerKind[T](r)

	fc := ensureContainer[T](r.world, source)
	fc.Add(target, payload)

	rc := ensureContainer[In](r.world, target)
	if in, ok := rc.TryGet(source); ok {
		in.addKind(kindName[T](), dropForward[T])
	} else {
		rc.Add(source, newIn(kindName[T](), dropForward[T]))
	}
	return nil
}

// AddOrGetRelationship returns the stored payload if the edge already
// exists, leaving it unchanged; otherwise it behaves as AddRelationship and
// returns the newly stored payload. This is get-if-present /
// insert-if-absent, not an upsert.
func AddOrGetRelationship[T any](r *Registry, source, target ecs.Entity, payload T) (T, error) {
	if fc, ok := ecs.GetRef[Container[T]](r.world, source); ok {
		if stored, ok := fc.TryGet(target); ok {
			return stored, nil
		}
	}
	if err := AddRelationship(r, source, target, payload); err != nil {
		var zero T
		return zero, err
	}
	return payload, nil
}

// HasRelationship reports whether the edge source --T--> target exists.
// Absence of the forward container yields false without error.
func HasRelationship[T any](r *Registry, source, target ecs.Entity) bool {
	start := time.Now()
	fc, ok := ecs.GetRef[Container[T]](r.world, source)
	hit := ok && fc.Contains(target)
	r.metrics.RecordLookup(time.Since(start), hit)
	return hit
}

// HasRelationships reports whether source owns a forward container of kind
// T at all, regardless of target. With T = In it reports whether the entity
// has any inbound edges.
func HasRelationships[T any](r *Registry, source ecs.Entity) bool {
	start := time.Now()
	hit := ecs.Has[Container[T]](r.world, source)
	r.metrics.RecordLookup(time.Since(start), hit)
	return hit
}

// GetRelationship returns the payload of the edge source --T--> target.
//
// Strict accessor: the forward container and the entry must exist, otherwise
// an error satisfying errors.Is(err, ErrNotFound) is returned. State is
// never modified.
func GetRelationship[T any](r *Registry, source, target ecs.Entity) (T, error) {
	start := time.Now()
	fc, ok := ecs.GetRef[Container[T]](r.world, source)
	if ok {
		if payload, ok := fc.TryGet(target); ok {
			r.metrics.RecordLookup(time.Since(start), true)
			return payload, nil
		}
	}
	r.metrics.RecordLookup(time.Since(start), false)
	var zero T
	return zero, &ErrNoSuchRelationship{Kind: kindName[T](), Source: source, Target: target}
}

// TryGetRelationship returns the payload of the edge source --T--> target,
// or the zero value and false if the container or the entry is absent. It
// never fails and never creates a container as a side effect.
func TryGetRelationship[T any](r *Registry, source, target ecs.Entity) (T, bool) {
	start := time.Now()
	fc, ok := ecs.GetRef[Container[T]](r.world, source)
	if !ok {
		r.metrics.RecordLookup(time.Since(start), false)
		var zero T
		return zero, false
	}
	payload, hit := fc.TryGet(target)
	r.metrics.RecordLookup(time.Since(start), hit)
	return payload, hit
}

// RemoveRelationship removes the edge source --T--> target from both sides,
// detaching each container that becomes empty.
//
// Strict accessor: the relationship must exist on both sides. Existence is
// verified before any mutation, so a failed call leaves state unmodified.
func RemoveRelationship[T any](r *Registry, source, target ecs.Entity) error {
	start := time.Now()
	err := removeRelationship[T](r, source, target)
	r.metrics.RecordRemove(time.Since(start), err)
	r.logger.LogRemove(kindName[T](), source, target, err)
	return err
}

func removeRelationship[T any](r *Registry, source, target ecs.Entity) error {
	kind := kindName[T]()

	fc, ok := ecs.GetRef[Container[T]](r.world, source)
	if !ok || !fc.Contains(target) {
		return &ErrNoSuchRelationship{Kind: kind, Source: source, Target: target}
	}
	rc, ok := ecs.GetRef[Container[In]](r.world, target)
	if !ok {
		return &ErrNoSuchRelationship{Kind: kindName[In](), Source: target, Target: source}
	}
	in, ok := rc.TryGet(source)
	if !ok || !in.HasKind(kind) {
		return &ErrNoSuchRelationship{Kind: kindName[In](), Source: target, Target: source}
	}

	fc.Remove(target)
	if fc.Len() == 0 {
		ecs.Remove[Container[T]](r.world, source)
	}
	in.removeKind(kind)
	if in.empty() {
		rc.Remove(source)
		if rc.Len() == 0 {
			ecs.Remove[Container[In]](r.world, target)
		}
	}
	return nil
}

// RelationshipCount returns the number of outgoing edges of kind T on
// source. Zero when no container is attached.
func RelationshipCount[T any](r *Registry, source ecs.Entity) int {
	fc, ok := ecs.GetRef[Container[T]](r.world, source)
	if !ok {
		return 0
	}
	return fc.Len()
}

// Outgoing iterates the (target, payload) edges of kind T on source.
// Removing relationships during iteration is not supported.
func Outgoing[T any](r *Registry, source ecs.Entity) iter.Seq2[ecs.Entity, T] {
	return func(yield func(ecs.Entity, T) bool) {
		fc, ok := ecs.GetRef[Container[T]](r.world, source)
		if !ok {
			return
		}
		for target, payload := range fc.All() {
			if !yield(target, payload) {
				return
			}
		}
	}
}

// Incoming iterates the (source, kind name) of every inbound edge on target.
// A source linked through several kinds is yielded once per kind.
func Incoming(r *Registry, target ecs.Entity) iter.Seq2[ecs.Entity, string] {
	return func(yield func(ecs.Entity, string) bool) {
		rc, ok := ecs.GetRef[Container[In]](r.world, target)
		if !ok {
			return
		}
		for source, in := range rc.All() {
			for _, kind := range in.Kinds() {
				if !yield(source, kind) {
					return
				}
			}
		}
	}
}

// ensureContainer returns the edge container of kind T on owner, attaching
// an empty one first if needed.
func ensureContainer[T any](w *ecs.World, owner ecs.Entity) *Container[T] {
	if ref, ok := ecs.GetRef[Container[T]](w, owner); ok {
		return ref
	}
	// Owner liveness was checked by the caller; Add cannot fail here.
	_ = ecs.Add(w, owner, Container[T]{})
	ref, _ := ecs.GetRef[Container[T]](w, owner)
	return ref
}

// dropForward removes target from source's forward container of kind T,
// detaching the container when it empties. Reports whether an entry was
// removed. Used by the reverse record and the cascade; re-resolves the
// container through the store instead of holding a reference.
func dropForward[T any](w *ecs.World, source, target ecs.Entity) bool {
	fc, ok := ecs.GetRef[Container[T]](w, source)
	if !ok {
		return false
	}
	removed := fc.Remove(target)
	if fc.Len() == 0 {
		ecs.Remove[Container[T]](w, source)
	}
	return removed
}

// dropIncoming removes source's whole reverse entry from target, detaching
// the container when it empties. Used only when source is being destroyed,
// where every kind tag in the entry refers back to it. Reports whether an
// entry was removed.
func dropIncoming(w *ecs.World, target, source ecs.Entity) bool {
	rc, ok := ecs.GetRef[Container[In]](w, target)
	if !ok {
		return false
	}
	removed := rc.Remove(source)
	if rc.Len() == 0 {
		ecs.Remove[Container[In]](w, target)
	}
	return removed
}
