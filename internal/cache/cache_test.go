package cache

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/config"
)

func TestDisabledStoreIsPassThrough(t *testing.T) {
	cfg := config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "cache"}
	s := NewStore(cfg, nil, zerolog.Nop())

	if s.Enabled() {
		t.Fatal("store with nil client must report disabled")
	}

	var out map[string]string
	if err := s.Get(context.Background(), "customers", "id:abc", &out); err != ErrMiss {
		t.Fatalf("Get = %v, want ErrMiss", err)
	}

	// writes and invalidations must be safe no-ops
	s.Set(context.Background(), "customers", "id:abc", map[string]string{"k": "v"})
	s.Invalidate(context.Background(), "customers")
	s.InvalidateKey(context.Background(), "customers", "id:abc")
}

func TestConfigDisableOverridesClient(t *testing.T) {
	cfg := config.CacheConfig{Enabled: false, TTL: time.Minute, Prefix: "cache"}
	// Enabled=false must win even if a client were supplied; with nil it
	// stays disabled either way.
	s := NewStore(cfg, nil, zerolog.Nop())
	if s.Enabled() {
		t.Fatal("disabled config must produce a disabled store")
	}
}

func TestKeyLayout(t *testing.T) {
	s := NewStore(config.CacheConfig{Enabled: true, TTL: time.Minute, Prefix: "cache"}, nil, zerolog.Nop())

	if got := s.key("customers", "id:abc"); got != "cache:customers:id:abc" {
		t.Errorf("key = %q", got)
	}
	if got := s.key("leads", "list:1:10:=::asc"); got != "cache:leads:list:1:10:=::asc" {
		t.Errorf("list key = %q", got)
	}
	if got := s.indexKey("customers"); got != "cache:idx:customers" {
		t.Errorf("index key = %q", got)
	}
}
