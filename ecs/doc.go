// Package ecs provides a minimal single-threaded entity-component store:
// opaque entity handles, per-type sparse-set component storage, and an
// entity-destroyed notification hook.
//
// The store is the host that the relago relationship layer builds on. It is
// deliberately small: entities are index+generation handles, components are
// attached one value per (entity, type) slot, and iteration is backed by
// Roaring Bitmaps over entity indices.
//
// The World is not safe for concurrent use. All access must be serialized by
// the caller, typically by confining the world to a single goroutine (e.g.
// one simulation tick).
package ecs
