package ecs

import "reflect"

// World owns entities and their component storage.
//
// It is a single-writer structure: no internal locking, no suspension points.
// Every operation runs to completion on the caller's goroutine.
type World struct {
	generations []uint32
	free        []uint32
	alive       *EntitySet
	storages    map[reflect.Type]componentStorage

	destroyed []destroySub
	nextSubID int
}

type destroySub struct {
	id int
	fn func(Entity)
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		alive:    NewEntitySet(),
		storages: make(map[reflect.Type]componentStorage),
	}
}

// Create allocates a new entity handle, recycling destroyed indices.
func (w *World) Create() Entity {
	var idx uint32
	if n := len(w.free); n > 0 {
		idx = w.free[n-1]
		w.free = w.free[:n-1]
	} else {
		idx = uint32(len(w.generations))
		// Generation starts at 1 so the zero Entity is never live.
		w.generations = append(w.generations, 1)
	}
	w.alive.Add(idx)
	return Entity{idx: idx, gen: w.generations[idx]}
}

// Alive reports whether the handle refers to a live entity. Stale handles to
// a recycled index return false.
func (w *World) Alive(e Entity) bool {
	if int(e.idx) >= len(w.generations) {
		return false
	}
	return w.alive.Contains(e.idx) && w.generations[e.idx] == e.gen
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.alive.Len()
}

// Destroy removes the entity and every component attached to it.
//
// Entity-destroyed subscribers run first, while the entity and its components
// are still intact; only then is storage reclaimed and the index recycled.
// Destroying a dead or stale handle is a no-op.
func (w *World) Destroy(e Entity) {
	if !w.Alive(e) {
		return
	}
	for _, sub := range w.destroyed {
		sub.fn(e)
	}

	for _, s := range w.storages {
		s.removeIndex(e.idx)
	}
	w.alive.Remove(e.idx)
	w.generations[e.idx]++
	w.free = append(w.free, e.idx)
}

// OnEntityDestroyed registers fn to be invoked exactly once per destroyed
// entity, before that entity's storage is reclaimed. The returned function
// removes the subscription.
func (w *World) OnEntityDestroyed(fn func(Entity)) (unsubscribe func()) {
	w.nextSubID++
	id := w.nextSubID
	w.destroyed = append(w.destroyed, destroySub{id: id, fn: fn})
	return func() {
		for i, sub := range w.destroyed {
			if sub.id == id {
				w.destroyed = append(w.destroyed[:i], w.destroyed[i+1:]...)
				return
			}
		}
	}
}

// entityAt rebuilds a live handle from an index. Caller guarantees liveness.
func (w *World) entityAt(idx uint32) Entity {
	return Entity{idx: idx, gen: w.generations[idx]}
}
