package relago

import (
	"errors"
	"fmt"

	"github.com/relago/relago/ecs"
)

var (
	// ErrNotFound is returned by strict accessors when the required
	// relationship container or entry does not exist.
	ErrNotFound = errors.New("relationship not found")
)

// ErrDeadEntity indicates an operation on a handle that is not live.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDeadEntity struct {
	Entity ecs.Entity
	cause  error
}

func (e *ErrDeadEntity) Error() string {
	return fmt.Sprintf("dead entity: %s", e.Entity)
}

func (e *ErrDeadEntity) Unwrap() error { return e.cause }

// ErrNoSuchRelationship indicates a strict accessor was invoked for a
// (source, target, kind) triple with no stored relationship.
//
// errors.Is(err, ErrNotFound) reports true for this error.
type ErrNoSuchRelationship struct {
	Kind   string
	Source ecs.Entity
	Target ecs.Entity
}

func (e *ErrNoSuchRelationship) Error() string {
	if e.Target.IsZero() {
		return fmt.Sprintf("no %s relationship on %s", e.Kind, e.Source)
	}
	return fmt.Sprintf("no %s relationship %s -> %s", e.Kind, e.Source, e.Target)
}

func (e *ErrNoSuchRelationship) Unwrap() error { return ErrNotFound }
