package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// newTestCache spins up an in-process Redis and returns a cache over it.
func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, time.Minute), mr
}

type payload struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func TestCache_SetGetRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	want := payload{Name: "profile", Items: []string{"a", "b"}}
	c.SetJSON(ctx, "public:profile", want)

	var got payload
	if !c.GetJSON(ctx, "public:profile", &got) {
		t.Fatal("expected a cache hit")
	}
	if got.Name != want.Name || len(got.Items) != 2 {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestCache_MissReturnsFalse(t *testing.T) {
	c, _ := newTestCache(t)

	var got payload
	if c.GetJSON(context.Background(), "public:unknown", &got) {
		t.Error("expected a miss for an unset key")
	}
}

func TestCache_CorruptEntryIsDropped(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	mr.Set("public:profile", "{not json")

	var got payload
	if c.GetJSON(ctx, "public:profile", &got) {
		t.Fatal("expected a corrupt entry to read as a miss")
	}
	if mr.Exists("public:profile") {
		t.Error("expected the corrupt entry to be deleted")
	}
}

func TestCache_DeleteInvalidates(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	c.SetJSON(ctx, "public:projects", payload{Name: "projects"})
	c.Delete(ctx, "public:projects")

	var got payload
	if c.GetJSON(ctx, "public:projects", &got) {
		t.Error("expected a miss after invalidation")
	}
}

func TestCache_EntriesExpire(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.SetJSON(ctx, "public:blog", payload{Name: "blog"})
	mr.FastForward(2 * time.Minute)

	var got payload
	if c.GetJSON(ctx, "public:blog", &got) {
		t.Error("expected the entry to expire after the TTL")
	}
}

// A nil cache (Redis not configured) must behave as a permanent miss
// without panicking.
func TestCache_NilSafety(t *testing.T) {
	ctx := context.Background()

	var c *Cache
	var got payload
	if c.GetJSON(ctx, "k", &got) {
		t.Error("expected a nil cache to miss")
	}
	c.SetJSON(ctx, "k", payload{})
	c.Delete(ctx, "k")

	noClient := New(nil, time.Minute)
	if noClient.GetJSON(ctx, "k", &got) {
		t.Error("expected a client-less cache to miss")
	}
	noClient.SetJSON(ctx, "k", payload{})
	noClient.Delete(ctx, "k")
}

func TestCache_RedisOutageReadsAsMiss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	c.SetJSON(ctx, "public:profile", payload{Name: "profile"})
	mr.Close()

	var got payload
	if c.GetJSON(ctx, "public:profile", &got) {
		t.Error("expected a miss while Redis is down")
	}
	// Writes and invalidations are swallowed, not fatal.
	c.SetJSON(ctx, "public:profile", payload{})
	c.Delete(ctx, "public:profile")
}
