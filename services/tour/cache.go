package tour

import (
	"context"
	"sync"
	"time"

	"simba/models"
)

// ToursCache holds the full tour listing in a single slot for ttl.
// Tour mutations must call Invalidate before reporting success.
type ToursCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	tours   []models.Tour
	fetched time.Time
	valid   bool
}

// NewToursCache returns an empty cache. A nil clock means time.Now.
func NewToursCache(ttl time.Duration, now func() time.Time) *ToursCache {
	if now == nil {
		now = time.Now
	}
	return &ToursCache{ttl: ttl, now: now}
}

// Get returns the cached listing, calling load when the slot is empty or expired.
// Concurrent misses share one load.
func (c *ToursCache) Get(ctx context.Context, load func(ctx context.Context) ([]models.Tour, error)) ([]models.Tour, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.now().Sub(c.fetched) < c.ttl {
		return cloneTours(c.tours), nil
	}
	tours, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.tours = cloneTours(tours)
	c.fetched = c.now()
	c.valid = true
	return tours, nil
}

// cloneTours copies the slice so callers cannot edit the cached listing.
func cloneTours(tours []models.Tour) []models.Tour {
	if tours == nil {
		return nil
	}
	out := make([]models.Tour, len(tours))
	copy(out, tours)
	return out
}

// Invalidate empties the slot.
func (c *ToursCache) Invalidate() {
	c.mu.Lock()
	c.tours = nil
	c.valid = false
	c.mu.Unlock()
}
