/*
Package mosaic is an event-sourced engine for multi-device "tiling" sessions:
independent client devices (screens) swiped together to align and merge into
clusters forming a shared logical canvas.

The core is a pure transition function. Given the full previous state and one
incoming event it produces a new immutable snapshot: a graph merge with
geometric transform calculation, a time-windowed swipe-pairing protocol,
invariant-preserving cluster cleanup and adjacency-based free-edge
("opening") computation. The host supplies a Policy for the opaque
per-entity payloads; Mosaic never looks inside them.

# Concept

Mosaic separates the session model (clients, clusters, pending swipes) from
everything around it. Transport delivering events, rendering of the shared
canvas and persistence are adapters; the reducer is synchronous, single
threaded per session and free of side effects. This hexagonal layout lets
the same core run embedded in a host application, behind the bundled HTTP/
WebSocket server, or driven from an MCP client.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/mosaic"
		"github.com/aretw0/mosaic/pkg/domain"
	)

	func main() {
		eng, err := mosaic.New(mosaic.NopPolicy())
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()

		// Two phones join, each in its own singleton cluster.
		state, _ := eng.Apply(ctx, nil, domain.NewConnectEvent("left-phone", domain.Size{Width: 375, Height: 667}))
		state, _ = eng.Apply(ctx, state, domain.NewConnectEvent("right-phone", domain.Size{Width: 375, Height: 667}))

		// Swiped together within the coincidence window: one cluster.
		state, _ = eng.Apply(ctx, state, domain.NewSwipeEvent("left-phone", domain.DirectionRight, domain.Position{Y: 300}))
		state, _ = eng.Apply(ctx, state, domain.NewSwipeEvent("right-phone", domain.DirectionLeft, domain.Position{Y: 300}))

		log.Printf("clusters: %d", len(state.Clusters))
	}
*/
package mosaic
