package relago_test

import (
	"fmt"

	"github.com/relago/relago"
	"github.com/relago/relago/ecs"
)

func Example() {
	type Likes struct{ Strength float64 }

	world := ecs.NewWorld()
	reg := relago.New(world)
	defer reg.Close()

	alice := world.Create()
	bob := world.Create()

	_ = relago.AddRelationship(reg, alice, bob, Likes{Strength: 0.9})

	fmt.Println(relago.HasRelationship[Likes](reg, alice, bob))
	fmt.Println(relago.HasRelationships[relago.In](reg, bob))

	payload, _ := relago.GetRelationship[Likes](reg, alice, bob)
	fmt.Println(payload.Strength)

	_ = relago.RemoveRelationship[Likes](reg, alice, bob)
	fmt.Println(relago.HasRelationships[Likes](reg, alice))
	// Output:
	// true
	// true
	// 0.9
	// false
}

func ExampleWithDestructionCascade() {
	type Owes struct{ Amount int }

	world := ecs.NewWorld()
	reg := relago.New(world, relago.WithDestructionCascade(true))
	defer reg.Close()

	debtor := world.Create()
	bank := world.Create()

	_ = relago.AddRelationship(reg, debtor, bank, Owes{Amount: 100})

	world.Destroy(bank)

	fmt.Println(relago.HasRelationships[Owes](reg, debtor))
	// Output:
	// false
}

func ExampleAddOrGetRelationship() {
	type Rank struct{ Level int }

	world := ecs.NewWorld()
	reg := relago.New(world)
	defer reg.Close()

	a := world.Create()
	b := world.Create()

	first, _ := relago.AddOrGetRelationship(reg, a, b, Rank{Level: 1})
	second, _ := relago.AddOrGetRelationship(reg, a, b, Rank{Level: 2})

	fmt.Println(first.Level, second.Level)
	// Output:
	// 1 1
}
