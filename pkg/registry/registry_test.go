package registry_test

import (
	"testing"

	"github.com/aretw0/mosaic/pkg/ports"
	"github.com/aretw0/mosaic/pkg/registry"
)

func TestRegistry(t *testing.T) {
	r := registry.New()

	if _, ok := r.Resolve("SET_COLOR"); ok {
		t.Fatal("Empty registry resolved a handler")
	}

	r.Register("SET_COLOR", func(view ports.ClientView, data any) (ports.ActionResult, error) {
		return ports.ActionResult{Client: &ports.EntityUpdate{Data: "first"}}, nil
	})
	handler, ok := r.Resolve("SET_COLOR")
	if !ok {
		t.Fatal("Registered handler not found")
	}
	result, err := handler(ports.ClientView{}, nil)
	if err != nil || result.Client.Data != "first" {
		t.Errorf("Unexpected handler result: %+v, %v", result, err)
	}

	// Re-registering overwrites.
	r.Register("SET_COLOR", func(view ports.ClientView, data any) (ports.ActionResult, error) {
		return ports.ActionResult{Client: &ports.EntityUpdate{Data: "second"}}, nil
	})
	handler, _ = r.Resolve("SET_COLOR")
	result, _ = handler(ports.ClientView{}, nil)
	if result.Client.Data != "second" {
		t.Errorf("Expected overwritten handler, got %v", result.Client.Data)
	}
}
