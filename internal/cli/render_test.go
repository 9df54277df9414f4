package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/firegrid/firegrid/pkg/cache"
	"github.com/firegrid/firegrid/pkg/catalog"
	"github.com/firegrid/firegrid/pkg/circuit"
)

// countingCache wraps a real cache and counts hits and writes.
type countingCache struct {
	cache.Cache
	hits, sets int
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if hit {
		c.hits++
	}
	return data, hit, err
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.sets++
	return c.Cache.Set(ctx, key, data, ttl)
}

func testRenderCircuit(t *testing.T) *circuit.Circuit {
	t.Helper()
	cat := catalog.Builtin()
	wire, err := cat.Wire(16)
	if err != nil {
		t.Fatalf("builtin wire: %v", err)
	}
	spec, err := cat.Device("P2R")
	if err != nil {
		t.Fatalf("builtin device: %v", err)
	}
	c := &circuit.Circuit{
		ID:           "NAC-1",
		Type:         circuit.TypeNAC,
		PanelVoltage: 24,
		Wire:         wire,
		Devices: []circuit.Device{
			{ID: "HS1", Spec: spec, WireDistance: 100},
		},
	}
	circuit.CalculateVoltageDrop(c)
	return c
}

func TestRenderCircuitCachesDiagrams(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	store := &countingCache{Cache: fc}
	keyer := cache.NewDefaultKeyer()
	ckt := testRenderCircuit(t)

	first, err := renderCircuit(ctx, store, keyer, ckt, "svg", false)
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	if store.sets != 1 || store.hits != 0 {
		t.Fatalf("after first render: sets = %d, hits = %d", store.sets, store.hits)
	}

	second, err := renderCircuit(ctx, store, keyer, ckt, "svg", false)
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if store.hits != 1 {
		t.Errorf("second render hits = %d, want 1", store.hits)
	}
	if !bytes.Equal(first, second) {
		t.Error("cached diagram differs from rendered one")
	}
}

func TestRenderCircuitDetailedKeysSeparately(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	store := &countingCache{Cache: fc}
	keyer := cache.NewDefaultKeyer()
	ckt := testRenderCircuit(t)

	if _, err := renderCircuit(ctx, store, keyer, ckt, "svg", false); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := renderCircuit(ctx, store, keyer, ckt, "svg", true); err != nil {
		t.Fatalf("detailed render: %v", err)
	}
	if store.hits != 0 {
		t.Errorf("detailed render hit the plain entry (hits = %d)", store.hits)
	}
	if store.sets != 2 {
		t.Errorf("sets = %d, want 2", store.sets)
	}
}

func TestRenderCircuitDOTBypassesCache(t *testing.T) {
	store := &countingCache{Cache: cache.NewNullCache()}
	data, err := renderCircuit(context.Background(), store, cache.NewDefaultKeyer(), testRenderCircuit(t), "dot", false)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.Contains(data, []byte("digraph")) {
		t.Errorf("DOT output missing digraph: %s", data)
	}
	if store.sets != 0 {
		t.Errorf("DOT output should not be cached (sets = %d)", store.sets)
	}
}
