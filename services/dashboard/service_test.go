package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"simba/models"
	"simba/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookings struct {
	since    time.Time
	countErr error
}

func (s *stubBookings) Count(_ context.Context, status string) (int64, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	switch status {
	case models.BookingPending:
		return 2, nil
	case models.BookingConfirmed:
		return 3, nil
	}
	return 7, nil
}

func (s *stubBookings) PaidRevenueSince(_ context.Context, since time.Time) (float64, error) {
	s.since = since
	return 4200, nil
}

func (s *stubBookings) TopTours(_ context.Context, limit int) ([]models.TourRanking, error) {
	return []models.TourRanking{{TourTitle: "Safari", Count: 4, Revenue: 3800}}, nil
}

func (s *stubBookings) Recent(_ context.Context, limit int) ([]models.Booking, error) {
	return []models.Booking{{ID: "b1"}}, nil
}

type fixedCount int64

func (f fixedCount) Count(context.Context) (int64, error) { return int64(f), nil }

func TestStats(t *testing.T) {
	bookings := &stubBookings{}
	svc := &DefaultDashboardService{
		Bookings:  bookings,
		Tours:     fixedCount(12),
		Customers: fixedCount(30),
		Now:       func() time.Time { return time.Date(2026, 9, 17, 15, 0, 0, 0, time.UTC) },
	}

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DashboardOverview{
		TotalTours: 12, TotalBookings: 7, PendingBookings: 2, ConfirmedBookings: 3,
		TotalCustomers: 30, MonthlyRevenue: 4200,
	}, stats.Overview)
	assert.Len(t, stats.TopTours, 1)
	assert.Len(t, stats.RecentBookings, 1)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), bookings.since)
}

func TestStatsPersistenceFailure(t *testing.T) {
	svc := &DefaultDashboardService{
		Bookings:  &stubBookings{countErr: errors.New("timeout")},
		Tours:     fixedCount(1),
		Customers: fixedCount(1),
	}
	_, err := svc.Stats(context.Background())
	assert.Equal(t, 500, utils.StatusFor(err))
}
