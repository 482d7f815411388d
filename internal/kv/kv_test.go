package kv

import (
	"context"
	"testing"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, ok, err := m.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("Get(missing) = ok %v err %v", ok, err)
	}
	if err := m.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := m.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := m.Get(ctx, "k")
	if err != nil || !ok || got != "v2" {
		t.Fatalf("Get = %q %v %v, want v2", got, ok, err)
	}
}
