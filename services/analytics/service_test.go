package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"simba/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	incs  []string
	from  string
	fails bool
}

func (m *memStore) Increment(_ context.Context, date, field string) error {
	if m.fails {
		return errors.New("down")
	}
	m.incs = append(m.incs, date+"/"+field)
	return nil
}

func (m *memStore) Since(_ context.Context, from string) ([]models.DailyAnalytics, error) {
	m.from = from
	return []models.DailyAnalytics{{Date: from}}, nil
}

func TestIncrementUsesToday(t *testing.T) {
	store := &memStore{}
	svc := &DefaultAnalyticsService{Store: store, Now: func() time.Time {
		return time.Date(2026, 5, 9, 23, 59, 0, 0, time.UTC)
	}}
	svc.Increment(context.Background(), models.CounterBookings)
	assert.Equal(t, []string{"2026-05-09/bookings"}, store.incs)

	store.fails = true
	assert.NotPanics(t, func() { svc.Increment(context.Background(), models.CounterPageViews) })
}

func TestRecentWindow(t *testing.T) {
	store := &memStore{}
	svc := &DefaultAnalyticsService{Store: store, Now: func() time.Time {
		return time.Date(2026, 5, 14, 10, 0, 0, 0, time.UTC)
	}}

	_, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "2026-05-01", store.from)

	_, err = svc.Recent(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "2026-05-14", store.from)
}
