package relago_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relago/relago"
	"github.com/relago/relago/ecs"
)

// Likes and Knows are two independent relationship kinds used across tests.
type Likes struct{ Strength float64 }

type Knows struct{ Since int }

func newRegistry(t *testing.T, optFns ...relago.Option) *relago.Registry {
	t.Helper()
	r := relago.New(ecs.NewWorld(), optFns...)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestAddRelationship_Bidirectional(t *testing.T) {
	r := newRegistry(t)
	w := r.World()
	a, b := w.Create(), w.Create()

	require.NoError(t, relago.AddRelationship(r, a, b, Likes{Strength: 0.9}))

	assert.True(t, relago.HasRelationship[Likes](r, a, b))
	assert.True(t, relago.HasRelationships[Likes](r, a))
	assert.True(t, relago.HasRelationships[relago.In](r, b))
	assert.False(t, relago.HasRelationship[Likes](r, b, a), "edges are directed")
}

func TestGetRelationship_RoundTrip(t *testing.T) {
	r := newRegistry(t)
	w := r.World()
	a, b := w.Create(), w.Create()

	require.NoError(t, relago.AddRelationship(r, a, b, Likes{Strength: 0.5}))

	got, err := relago.GetRelationship[Likes](r, a, b)
	require.NoError(t, err)
	assert.Equal(t, Likes{Strength: 0.5}, got)
}

func TestAddRelationship_OverwritesPayload(t *testing.T) {
	r := newRegistry(t)
	w := r.World()
	a, b := w.Create(), w.Create()

	require.NoError(t, relago.AddRelationship(r, a, b, Likes{Strength: 0.1}))
	require.NoError(t, relago.AddRelationship(r, a, b, Likes{Strength: 0.7}))

	got, err := relago.GetRelationship[Likes](r, a, b)
	require.NoError(t, err)
	assert.Equal(t, 0.7, got.Strength)
	assert.Equal(t, 1, relago.RelationshipCount[Likes](r, a))
}

func TestAddRelationship_DeadEntity(t *testing.T) {
	r := newRegistry(t)
	w := r.World()
	a, b := w.Create(), w.Create()
	w.Destroy(b)

	err := relago.AddRelationship(r, a, b, Likes{})
	require.Error(t, err)

	var dead *relago.ErrDeadEntity
	require.ErrorAs(t, err, &dead)
	assert.Equal(t, b, dead.Entity)
	assert.False(t, relago.HasRelationships[Likes](r, a), "failed add must not create containers")
}

func TestRemoveRelationship_DetachesEmptyContainers(t *testing.T) {
	r := newRegistry(t)
	w := r.World()
	a, b := w.Create(), w.Create()

	require.NoError(t, relago.AddRelationship(r, a, b, Likes{}))
	require.NoError(t, relago.RemoveRelationship[Likes](r, a, b))

	assert.False(t, relago.HasRelationship[Likes](r, a, b))
	assert.False(t, relago.HasRelationships[Likes](r, a), "empty forward container must detach")
	assert.False(t, relago.HasRelationships[relago.In](r, b), "empty reverse container must detach")
}

func TestRemoveRelationship_KeepsSiblingEdges(t *testing.T) {
	r := newRegistry(t)
	w := r.World()
	a, b, c := w.Create(), w.Create(), w.Create()

	require.NoError(t, relago.AddRelationship(r, a, b, Likes{}))
	require.NoError(t, relago.AddRelationship(r, a, c, Likes{}))
	require.NoError(t, relago.RemoveRelationship[Likes](r, a, b))

	assert.False(t, relago.HasRelationship[Likes](r, a, b))
	assert.True(t, relago.HasRelationship[Likes](r, a, c))
	assert.True(t, relago.HasRelationships[Likes](r, a))
	assert.Equal(t, 1, relago.RelationshipCount[Likes](r, a))
}

func TestRemoveRelationship_MissingIsError(t *testing.T) {
	r := newRegistry(t)
	w := r.World()
	a, b := w.Create(), w.Create()

	err := relago.RemoveRelationship[Likes](r, a, b)
	require.Error(t, err)
	assert.ErrorIs(t, err, relago.ErrNotFound)

	// A failed strict remove must leave state untouched.
	require.NoError(t, relago.AddRelationship(r, a, b, Likes{}))
	c := w.Create()
	err = relago.RemoveRelationship[Likes](r, a, c)
	require.Error(t, err)
	assert.True(t, relago.HasRelationship[Likes](r, a, b))
	assert.True(t, relago.HasRelationships[relago.In](r, b))
}

func TestKindIndependence(t *testing.T) {
	r := newRegistry(t)
	w := r.World()
	a, b := w.Create(), w.Create()

	require.NoError(t, relago.AddRelationship(r, a, b, Likes{Strength: 1}))
	require.NoError(t, relago.AddRelationship(r, a, b, Knows{Since: 2019}))

	require.NoError(t, relago.RemoveRelationship[Likes](r, a, b))

	assert.False(t, relago.HasRelationship[Likes](r, a, b))
	assert.True(t, relago.HasRelationship[Knows](r, a, b))

	got, err := relago.GetRelationship[Knows](r, a, b)
	require.NoError(t, err)
	assert.Equal(t, 2019, got.Since)
	assert.True(t, relago.HasRelationships[relago.In](r, b), "Knows edge still inbound on b")
}

func TestAddOrGetRelationship_Idempotent(t *testing.T) {
	r := newRegistry(t)
	w := r.World()
	a, b := w.Create(), w.Create()

	first, err := relago.AddOrGetRelationship(r, a, b, Likes{Strength: 0.3})
	require.NoError(t, err)
	assert.Equal(t, 0.3, first.Strength)

	second, err := relago.AddOrGetRelationship(r, a, b, Likes{Strength: 0.8})
	require.NoError(t, err)
	assert.Equal(t, 0.3, second.Strength, "existing payload wins; input is not applied")
	assert.Equal(t, 1, relago.RelationshipCount[Likes](r, a))
}

func TestGetRelationship_StrictMiss(t *testing.T) {
	r := newRegistry(t)
	w := r.World()
	a, b := w.Create(), w.Create()

	_, err := relago.GetRelationship[Likes](r, a, b)
	require.Error(t, err)
	assert.ErrorIs(t, err, relago.ErrNotFound)

	var nsr *relago.ErrNoSuchRelationship
	require.True(t, errors.As(err, &nsr))
	assert.Equal(t, a, nsr.Source)
	assert.Equal(t, b, nsr.Target)
}

func TestTryGetRelationship_SoftMiss(t *testing.T) {
	r := newRegistry(t)
	w := r.World()
	a, b := w.Create(), w.Create()

	got, ok := relago.TryGetRelationship[Likes](r, a, b)
	assert.False(t, ok)
	assert.Zero(t, got)

	// Soft accessors must not create containers as a side effect.
	assert.False(t, relago.HasRelationships[Likes](r, a))
	assert.False(t, relago.HasRelationships[relago.In](r, b))

	require.NoError(t, relago.AddRelationship(r, a, b, Likes{Strength: 0.2}))
	got, ok = relago.TryGetRelationship[Likes](r, a, b)
	assert.True(t, ok)
	assert.Equal(t, 0.2, got.Strength)
}

func TestSourceAndTargetRolesCoexist(t *testing.T) {
	r := newRegistry(t)
	w := r.World()
	a, b, c := w.Create(), w.Create(), w.Create()

	// b is target of a, source towards c, across two kinds.
	require.NoError(t, relago.AddRelationship(r, a, b, Likes{}))
	require.NoError(t, relago.AddRelationship(r, b, c, Knows{Since: 1}))
	require.NoError(t, relago.AddRelationship(r, b, a, Likes{}))

	assert.True(t, relago.HasRelationships[relago.In](r, b))
	assert.True(t, relago.HasRelationships[Knows](r, b))
	assert.True(t, relago.HasRelationships[Likes](r, b))
	assert.True(t, relago.HasRelationship[Likes](r, b, a))
	assert.True(t, relago.HasRelationship[Likes](r, a, b))
}

func TestZeroPayloadTag(t *testing.T) {
	type ChildOf struct{}

	r := newRegistry(t)
	w := r.World()
	child, parent := w.Create(), w.Create()

	require.NoError(t, relago.AddRelationship(r, child, parent, ChildOf{}))
	assert.True(t, relago.HasRelationship[ChildOf](r, child, parent))

	_, err := relago.GetRelationship[ChildOf](r, child, parent)
	assert.NoError(t, err)
}

func TestOutgoingIncoming(t *testing.T) {
	r := newRegistry(t)
	w := r.World()
	a, b, c := w.Create(), w.Create(), w.Create()

	require.NoError(t, relago.AddRelationship(r, a, b, Likes{Strength: 1}))
	require.NoError(t, relago.AddRelationship(r, a, c, Likes{Strength: 2}))
	require.NoError(t, relago.AddRelationship(r, c, b, Knows{Since: 3}))

	out := make(map[ecs.Entity]float64)
	for target, payload := range relago.Outgoing[Likes](r, a) {
		out[target] = payload.Strength
	}
	assert.Equal(t, map[ecs.Entity]float64{b: 1, c: 2}, out)

	in := make(map[ecs.Entity]string)
	for source, kind := range relago.Incoming(r, b) {
		in[source] = kind
	}
	require.Len(t, in, 2)
	assert.Contains(t, in[a], "Likes")
	assert.Contains(t, in[c], "Knows")
}
