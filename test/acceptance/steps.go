package acceptance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cucumber/godog"

	"github.com/relago/relago"
	"github.com/relago/relago/ecs"
)

// The suite exercises two independent relationship kinds so that scenarios
// can assert kinds never interfere with each other.
type likes struct{ Weight int }
type knows struct{ Weight int }

// TestContext holds state between steps.
type TestContext struct {
	world    *ecs.World
	registry *relago.Registry
	entities map[string]ecs.Entity

	lastErr     error
	lastPayload int
}

func (tc *TestContext) reset(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
	if tc.registry != nil {
		_ = tc.registry.Close()
	}
	tc.world = nil
	tc.registry = nil
	tc.entities = map[string]ecs.Entity{}
	tc.lastErr = nil
	tc.lastPayload = 0
	return ctx, nil
}

func (tc *TestContext) plainRegistry() error {
	tc.world = ecs.NewWorld()
	tc.registry = relago.New(tc.world)
	return nil
}

func (tc *TestContext) cascadeRegistry() error {
	tc.world = ecs.NewWorld()
	tc.registry = relago.New(tc.world, relago.WithDestructionCascade(true))
	return nil
}

func (tc *TestContext) createEntities(names string) error {
	if tc.world == nil {
		return fmt.Errorf("no registry configured")
	}
	for _, name := range splitNames(names) {
		tc.entities[name] = tc.world.Create()
	}
	return nil
}

func (tc *TestContext) entity(name string) (ecs.Entity, error) {
	e, ok := tc.entities[name]
	if !ok {
		return ecs.Entity{}, fmt.Errorf("unknown entity %q", name)
	}
	return e, nil
}

// kind-dispatched wrappers: Gherkin names kinds by string, the API by type
// parameter.

func (tc *TestContext) add(kind string, src, dst ecs.Entity, payload int) error {
	switch kind {
	case "likes":
		return relago.AddRelationship(tc.registry, src, dst, likes{Weight: payload})
	case "knows":
		return relago.AddRelationship(tc.registry, src, dst, knows{Weight: payload})
	}
	return fmt.Errorf("unknown kind %q", kind)
}

func (tc *TestContext) has(kind string, src, dst ecs.Entity) (bool, error) {
	switch kind {
	case "likes":
		return relago.HasRelationship[likes](tc.registry, src, dst), nil
	case "knows":
		return relago.HasRelationship[knows](tc.registry, src, dst), nil
	}
	return false, fmt.Errorf("unknown kind %q", kind)
}

func (tc *TestContext) hasAny(kind string, src ecs.Entity) (bool, error) {
	switch kind {
	case "likes":
		return relago.HasRelationships[likes](tc.registry, src), nil
	case "knows":
		return relago.HasRelationships[knows](tc.registry, src), nil
	}
	return false, fmt.Errorf("unknown kind %q", kind)
}

func (tc *TestContext) get(kind string, src, dst ecs.Entity) (int, error) {
	switch kind {
	case "likes":
		p, err := relago.GetRelationship[likes](tc.registry, src, dst)
		return p.Weight, err
	case "knows":
		p, err := relago.GetRelationship[knows](tc.registry, src, dst)
		return p.Weight, err
	}
	return 0, fmt.Errorf("unknown kind %q", kind)
}

func (tc *TestContext) remove(kind string, src, dst ecs.Entity) error {
	switch kind {
	case "likes":
		return relago.RemoveRelationship[likes](tc.registry, src, dst)
	case "knows":
		return relago.RemoveRelationship[knows](tc.registry, src, dst)
	}
	return fmt.Errorf("unknown kind %q", kind)
}

// Step implementations.

func (tc *TestContext) addRelationship(kind, src, dst string) error {
	return tc.addRelationshipWithPayload(kind, src, dst, 0)
}

func (tc *TestContext) addRelationshipWithPayload(kind, src, dst string, payload int) error {
	s, err := tc.entity(src)
	if err != nil {
		return err
	}
	d, err := tc.entity(dst)
	if err != nil {
		return err
	}
	tc.lastErr = tc.add(kind, s, d, payload)
	return nil
}

func (tc *TestContext) addOrGetRelationship(kind, src, dst string, payload int) error {
	s, err := tc.entity(src)
	if err != nil {
		return err
	}
	d, err := tc.entity(dst)
	if err != nil {
		return err
	}
	switch kind {
	case "likes":
		p, err := relago.AddOrGetRelationship(tc.registry, s, d, likes{Weight: payload})
		tc.lastPayload, tc.lastErr = p.Weight, err
	case "knows":
		p, err := relago.AddOrGetRelationship(tc.registry, s, d, knows{Weight: payload})
		tc.lastPayload, tc.lastErr = p.Weight, err
	default:
		return fmt.Errorf("unknown kind %q", kind)
	}
	return nil
}

func (tc *TestContext) removeRelationship(kind, src, dst string) error {
	s, err := tc.entity(src)
	if err != nil {
		return err
	}
	d, err := tc.entity(dst)
	if err != nil {
		return err
	}
	tc.lastErr = tc.remove(kind, s, d)
	return nil
}

func (tc *TestContext) destroyEntity(name string) error {
	e, err := tc.entity(name)
	if err != nil {
		return err
	}
	tc.world.Destroy(e)
	return nil
}

func (tc *TestContext) relationshipShouldExist(kind, src, dst string) error {
	s, err := tc.entity(src)
	if err != nil {
		return err
	}
	d, err := tc.entity(dst)
	if err != nil {
		return err
	}
	ok, err := tc.has(kind, s, d)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("expected %s relationship %s -> %s to exist", kind, src, dst)
	}
	return nil
}

func (tc *TestContext) relationshipShouldNotExist(kind, src, dst string) error {
	s, err := tc.entity(src)
	if err != nil {
		return err
	}
	d, err := tc.entity(dst)
	if err != nil {
		return err
	}
	ok, err := tc.has(kind, s, d)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("expected no %s relationship %s -> %s", kind, src, dst)
	}
	return nil
}

func (tc *TestContext) shouldHaveOutgoing(src, kind string) error {
	s, err := tc.entity(src)
	if err != nil {
		return err
	}
	ok, err := tc.hasAny(kind, s)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("expected %s to have outgoing %s relationships", src, kind)
	}
	return nil
}

func (tc *TestContext) shouldHaveNoOutgoing(src, kind string) error {
	s, err := tc.entity(src)
	if err != nil {
		return err
	}
	ok, err := tc.hasAny(kind, s)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("expected %s to have no outgoing %s relationships", src, kind)
	}
	return nil
}

func (tc *TestContext) shouldHaveIncoming(dst string) error {
	d, err := tc.entity(dst)
	if err != nil {
		return err
	}
	if !relago.HasRelationships[relago.In](tc.registry, d) {
		return fmt.Errorf("expected %s to have incoming relationships", dst)
	}
	return nil
}

func (tc *TestContext) shouldHaveNoIncoming(dst string) error {
	d, err := tc.entity(dst)
	if err != nil {
		return err
	}
	if relago.HasRelationships[relago.In](tc.registry, d) {
		return fmt.Errorf("expected %s to have no incoming relationships", dst)
	}
	return nil
}

func (tc *TestContext) payloadShouldBe(kind, src, dst string, want int) error {
	s, err := tc.entity(src)
	if err != nil {
		return err
	}
	d, err := tc.entity(dst)
	if err != nil {
		return err
	}
	got, err := tc.get(kind, s, d)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("payload mismatch: got %d, want %d", got, want)
	}
	return nil
}

func (tc *TestContext) returnedPayloadShouldBe(want int) error {
	if tc.lastErr != nil {
		return fmt.Errorf("last operation failed: %w", tc.lastErr)
	}
	if tc.lastPayload != want {
		return fmt.Errorf("returned payload mismatch: got %d, want %d", tc.lastPayload, want)
	}
	return nil
}

func (tc *TestContext) shouldFailNotFound() error {
	if !errors.Is(tc.lastErr, relago.ErrNotFound) {
		return fmt.Errorf("expected a not-found error, got %v", tc.lastErr)
	}
	return nil
}

func (tc *TestContext) shouldFailDeadEntity() error {
	var dead *relago.ErrDeadEntity
	if !errors.As(tc.lastErr, &dead) {
		return fmt.Errorf("expected a dead-entity error, got %v", tc.lastErr)
	}
	return nil
}

func (tc *TestContext) shouldSucceed() error {
	if tc.lastErr != nil {
		return fmt.Errorf("last operation failed: %w", tc.lastErr)
	}
	return nil
}

func splitNames(names string) []string {
	return strings.FieldsFunc(names, func(r rune) bool {
		return r == ',' || r == ' '
	})
}
