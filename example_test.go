package mosaic_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/mosaic"
	"github.com/aretw0/mosaic/pkg/domain"
)

// Example demonstrates two phones swiped together into one shared canvas.
func Example() {
	engine, err := mosaic.New(mosaic.NopPolicy())
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	// Two phones join, each in its own singleton cluster.
	state, _ := engine.Apply(ctx, nil, domain.NewConnectEvent("left-phone", domain.Size{Width: 375, Height: 667}))
	state, _ = engine.Apply(ctx, state, domain.NewConnectEvent("right-phone", domain.Size{Width: 375, Height: 667}))
	fmt.Println("clusters before pairing:", len(state.Clusters))

	// Swiped together within the coincidence window: the first swipe's
	// direction decides where the second screen lands.
	state, _ = engine.Apply(ctx, state, domain.NewSwipeEvent("left-phone", domain.DirectionRight, domain.Position{X: 370, Y: 300}))
	state, _ = engine.Apply(ctx, state, domain.NewSwipeEvent("right-phone", domain.DirectionLeft, domain.Position{X: 5, Y: 300}))

	fmt.Println("clusters after pairing:", len(state.Clusters))
	fmt.Println("right-phone offset:", state.Clients["right-phone"].Transform.X)

	// Output:
	// clusters before pairing: 2
	// clusters after pairing: 1
	// right-phone offset: 375
}

// ExampleEngine_Apply_policy shows host-owned payloads managed by a Policy.
func ExampleEngine_Apply_policy() {
	type room struct {
		Color string
	}

	policy := mosaic.NopPolicy()
	policy.InitCluster = func(domain.Client) any { return room{Color: "gray"} }
	policy.MergeClusters = func(survivor, absorbed domain.Cluster, _ domain.Transform) any {
		// Keep the survivor's color for the combined canvas.
		return survivor.Data
	}

	engine, err := mosaic.New(policy)
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()

	state, _ := engine.Apply(ctx, nil, domain.NewConnectEvent("a", domain.Size{Width: 100, Height: 100}))
	state, _ = engine.Apply(ctx, state, domain.NewConnectEvent("b", domain.Size{Width: 100, Height: 100}))
	state, _ = engine.Apply(ctx, state, domain.NewSwipeEvent("a", domain.DirectionRight, domain.Position{X: 95, Y: 50}))
	state, _ = engine.Apply(ctx, state, domain.NewSwipeEvent("b", domain.DirectionLeft, domain.Position{X: 5, Y: 50}))

	cluster := state.Clusters[state.Clients["a"].ClusterID]
	fmt.Println("canvas color:", cluster.Data.(room).Color)

	// Output:
	// canvas color: gray
}
