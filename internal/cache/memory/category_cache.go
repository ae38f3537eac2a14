// Package memory holds the in-process TTL cache for the category list.
// The cache is an explicit collaborator injected into the catalog
// usecase; nothing else depends on it.
package memory

import (
	"context"
	"sync"
	"time"

	"loja/internal/domain/model"
)

type CategoryCacheTTL struct {
	ttl time.Duration

	mu        sync.Mutex
	items     []model.Category
	expiresAt time.Time
	loaded    bool

	now func() time.Time
}

func NewCategoryCacheTTL(ttl time.Duration) *CategoryCacheTTL {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CategoryCacheTTL{ttl: ttl, now: time.Now}
}

// Get returns the cached category list, or false when the cache is cold
// or the TTL has elapsed.
func (c *CategoryCacheTTL) Get(_ context.Context) ([]model.Category, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded || c.now().After(c.expiresAt) {
		return nil, false
	}
	return cloneCategories(c.items), true
}

// Set stores the category list and restarts the TTL window.
func (c *CategoryCacheTTL) Set(_ context.Context, categories []model.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = cloneCategories(categories)
	c.expiresAt = c.now().Add(c.ttl)
	c.loaded = true
}

// Invalidate drops the cached list immediately, without waiting for the
// TTL. Called when a category changes.
func (c *CategoryCacheTTL) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.loaded = false
}

func cloneCategories(in []model.Category) []model.Category {
	out := make([]model.Category, len(in))
	copy(out, in)
	return out
}
