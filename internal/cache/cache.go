// Package cache holds short-lived per-owner query results so a page render
// does not hit Postgres on every interaction. Entries expire after a fixed
// TTL and every write path deletes the affected key before returning, so
// the acting user always observes their own edits.
package cache

import (
	"context"
	"time"
)

type Cache interface {
	// Get returns the cached value and whether it was present and fresh.
	// A backend failure is treated as a miss, never surfaced.
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// Keys are owner plus query kind, so invalidating one user's tasks never
// touches another user's entries.

func TasksKey(owner string) string {
	return "tasks:" + owner
}

func NotesKey(owner string) string {
	return "notes:" + owner
}

func CaptchaKey(id string) string {
	return "captcha:" + id
}
