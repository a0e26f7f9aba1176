// Package relago layers typed, directed, payload-bearing relationships
// between entity handles stored in an entity-component world.
//
// An edge `source --T--> target` carries a payload of type T and is
// discoverable from both ends: forward from the source ("what do I relate
// to") and reverse from the target ("who relates to me"). The two sides are
// kept in lockstep by the Registry operations; storage is nothing but
// per-entity component slots, one per relationship kind, with no global
// graph structure.
//
// # Quick start
//
//	type Likes struct{ Strength float64 }
//
//	world := ecs.NewWorld()
//	reg := relago.New(world, relago.WithDestructionCascade(true))
//	defer reg.Close()
//
//	alice, bob := world.Create(), world.Create()
//
//	_ = relago.AddRelationship(reg, alice, bob, Likes{Strength: 0.9})
//	relago.HasRelationship[Likes](reg, alice, bob) // true
//	relago.HasRelationships[relago.In](reg, bob)   // true: bob has inbound edges
//
//	world.Destroy(bob) // cascade removes alice's dangling forward entry
//
// Relationship kinds are compile-time types: each distinct T denotes an
// independent kind with its own component slot, so `Likes` and `Knows`
// edges on the same entity pair never interact. A kind with no meaningful
// data is modeled with a zero-sized payload type (a plain tag).
//
// # Concurrency
//
// Everything is single-threaded and synchronous, matching the world's
// single-writer discipline. Forward and reverse updates are two separate
// component writes, not an atomic pair; callers needing crash consistency
// must provide their own transaction boundary.
package relago

import (
	"reflect"

	"github.com/relago/relago/ecs"
)

// Registry binds relationship operations to a world and holds the ambient
// configuration (logging, metrics, destruction cascade).
//
// Operations are free generic functions taking the registry as their first
// argument, because Go methods cannot introduce type parameters:
//
//	relago.AddRelationship(reg, src, dst, payload)
type Registry struct {
	world   *ecs.World
	logger  *Logger
	metrics MetricsCollector

	// kinds records every relationship kind seen by this registry, so the
	// destruction cascade can discover a destroyed entity's forward
	// containers without a runtime type query.
	kinds map[reflect.Type]kindCleanup

	unsubscribe func()
}

// kindCleanup drops the owner's forward container of one kind, scrubbing the
// matching reverse entries from all targets. Returns the number of partner
// entities touched.
type kindCleanup func(w *ecs.World, owner ecs.Entity) int

// New creates a Registry on top of the given world.
//
// With WithDestructionCascade(true), the registry subscribes to the world's
// entity-destroyed notification; Close releases that subscription.
func New(world *ecs.World, optFns ...Option) *Registry {
	opts := applyOptions(optFns)

	r := &Registry{
		world:   world,
		logger:  opts.logger,
		metrics: opts.metricsCollector,
		kinds:   make(map[reflect.Type]kindCleanup),
	}
	if opts.cascade {
		r.unsubscribe = world.OnEntityDestroyed(r.cascade)
	}
	return r
}

// World returns the underlying entity-component world.
func (r *Registry) World() *ecs.World {
	return r.world
}

// Close releases the registry's entity-destroyed subscription, if any.
// The registry must not be used afterwards.
func (r *Registry) Close() error {
	if r == nil {
		return nil
	}
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
	return nil
}

// registerKind memoizes the cascade cleanup hook for kind T.
func registerKind[T any](r *Registry) {
	t := reflect.TypeFor[T]()
	if _, ok := r.kinds[t]; ok {
		return
	}
	r.kinds[t] = func(w *ecs.World, owner ecs.Entity) int {
		fc, ok := ecs.GetRef[Container[T]](w, owner)
		if !ok {
			return 0
		}
		partners := 0
		for target := range fc.All() {
			if dropIncoming(w, target, owner) {
				partners++
			}
		}
		ecs.Remove[Container[T]](w, owner)
		return partners
	}
}

// kindName is the tag used for reverse records, logs and errors.
func kindName[T any]() string {
	return reflect.TypeFor[T]().String()
}
