package cache

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	value      []byte
	expiration time.Time
}

// Memory is the default cache backend when no Redis address is configured.
type Memory struct {
	store sync.Map
}

var _ Cache = (*Memory)(nil)

func NewMemory() *Memory {
	c := &Memory{}
	go c.cleanup()
	return c
}

func (c *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	item, exists := c.store.Load(key)
	if !exists {
		return nil, false
	}

	cached := item.(*memoryItem)
	if time.Now().After(cached.expiration) {
		c.store.Delete(key)
		return nil, false
	}
	return cached.value, true
}

func (c *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	c.store.Store(key, &memoryItem{
		value:      value,
		expiration: time.Now().Add(ttl),
	})
}

func (c *Memory) Delete(_ context.Context, key string) {
	c.store.Delete(key)
}

func (c *Memory) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		c.store.Range(func(key, value any) bool {
			if now.After(value.(*memoryItem).expiration) {
				c.store.Delete(key)
			}
			return true
		})
	}
}
