package tour

import (
	"context"
	"errors"
	"testing"
	"time"

	"simba/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func countingLoader(calls *int, tours ...models.Tour) func(context.Context) ([]models.Tour, error) {
	return func(context.Context) ([]models.Tour, error) {
		*calls++
		return tours, nil
	}
}

func TestToursCacheServesWithinTTL(t *testing.T) {
	clk := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewToursCache(60*time.Second, clk.now)
	calls := 0
	load := countingLoader(&calls, models.Tour{ID: "a"})

	_, err := cache.Get(context.Background(), load)
	require.NoError(t, err)
	clk.advance(59 * time.Second)
	tours, err := cache.Get(context.Background(), load)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Len(t, tours, 1)

	clk.advance(time.Second)
	_, err = cache.Get(context.Background(), load)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestToursCacheInvalidate(t *testing.T) {
	clk := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	cache := NewToursCache(time.Minute, clk.now)
	calls := 0
	load := countingLoader(&calls)

	_, _ = cache.Get(context.Background(), load)
	cache.Invalidate()
	_, _ = cache.Get(context.Background(), load)
	assert.Equal(t, 2, calls)
}

func TestToursCacheDoesNotStoreErrors(t *testing.T) {
	cache := NewToursCache(time.Minute, nil)
	_, err := cache.Get(context.Background(), func(context.Context) ([]models.Tour, error) {
		return nil, errors.New("mongo down")
	})
	require.Error(t, err)

	calls := 0
	_, err = cache.Get(context.Background(), countingLoader(&calls))
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "mount-kenya-3-day-trek", Slugify("  Mount Kenya: 3-Day Trek! "))
	assert.Equal(t, "lamu", Slugify("Lamu"))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestToursCacheIsolatesCallers(t *testing.T) {
	cache := NewToursCache(time.Minute, nil)
	calls := 0
	load := countingLoader(&calls, models.Tour{ID: "a", Title: "Sunrise Hike"})

	first, err := cache.Get(context.Background(), load)
	require.NoError(t, err)
	first[0].Title = "edited"

	second, err := cache.Get(context.Background(), load)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "Sunrise Hike", second[0].Title)
}
