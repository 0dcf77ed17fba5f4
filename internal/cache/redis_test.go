package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func newRedisCache(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedis(zerolog.Nop(), client), mr
}

func TestRedisGetSetDelete(t *testing.T) {
	c, _ := newRedisCache(t)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Fatal("expected a miss for an unknown key")
	}

	c.Set(ctx, TasksKey("alice"), []byte("payload"), time.Minute)
	value, ok := c.Get(ctx, TasksKey("alice"))
	if !ok || string(value) != "payload" {
		t.Fatalf("expected cached payload, got %q (hit=%v)", value, ok)
	}

	c.Delete(ctx, TasksKey("alice"))
	if _, ok := c.Get(ctx, TasksKey("alice")); ok {
		t.Fatal("expected a miss after delete")
	}
}

func TestRedisExpiry(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	c.Set(ctx, NotesKey("alice"), []byte("payload"), 15*time.Second)
	mr.FastForward(16 * time.Second)

	if _, ok := c.Get(ctx, NotesKey("alice")); ok {
		t.Fatal("expected the entry to expire")
	}
}

func TestRedisDegradesToMissWhenDown(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()

	c.Set(ctx, TasksKey("alice"), []byte("payload"), time.Minute)
	mr.Close()

	// A dead backend behaves like a cold cache, never an error.
	if _, ok := c.Get(ctx, TasksKey("alice")); ok {
		t.Fatal("expected a miss when the backend is unreachable")
	}
	c.Set(ctx, TasksKey("alice"), []byte("payload"), time.Minute)
	c.Delete(ctx, TasksKey("alice"))
}
