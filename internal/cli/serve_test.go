package cli

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestServeCacheBadRedisURL(t *testing.T) {
	c := New(io.Discard, LogInfo)
	_, err := c.serveCache(context.Background(), "not-a-redis-url", false)
	if err == nil {
		t.Fatal("expected error for unparseable redis URL")
	}
	if !strings.Contains(err.Error(), "redis") {
		t.Errorf("error = %v, want mention of redis", err)
	}
}

func TestServeCacheDisabled(t *testing.T) {
	c := New(io.Discard, LogInfo)
	store, err := c.serveCache(context.Background(), "", true)
	if err != nil {
		t.Fatalf("serveCache: %v", err)
	}
	defer store.Close()

	if _, hit, err := store.Get(context.Background(), "k"); err != nil || hit {
		t.Errorf("disabled cache Get = hit %v, err %v; want miss", hit, err)
	}
}

func TestServeCacheDisabledWinsOverRedis(t *testing.T) {
	c := New(io.Discard, LogInfo)
	store, err := c.serveCache(context.Background(), "not-a-redis-url", true)
	if err != nil {
		t.Fatalf("serveCache: %v", err)
	}
	defer store.Close()
}
