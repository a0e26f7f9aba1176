package relago

import (
	"time"

	"github.com/relago/relago/ecs"
)

// cascade is the entity-destroyed hook. It runs while the destroyed entity
// and its components are still intact, and restores the bidirectional
// invariant for every partner: after it returns, no live entity holds a
// forward or reverse entry referencing the destroyed one.
func (r *Registry) cascade(e ecs.Entity) {
	start := time.Now()
	partners := 0

	// Inbound side: e was the target. Each reverse entry knows how to reach
	// back into its source's forward containers, one hook per recorded kind.
	if rc, ok := ecs.GetRef[Container[In]](r.world, e); ok {
		for source, in := range rc.All() {
			touched := false
			for _, drop := range in.kinds {
				if drop(r.world, source, e) {
					touched = true
				}
			}
			if touched {
				partners++
			}
		}
	}

	// Outbound side: e was the source. Every kind this registry has seen is
	// probed; each forward container found is scrubbed from its targets'
	// reverse containers and dropped.
	for _, cleanup := range r.kinds {
		partners += cleanup(r.world, e)
	}

	// e's own containers are reclaimed with e by the world.

	r.metrics.RecordCascade(partners, time.Since(start))
	r.logger.LogCascade(e, partners)
}
