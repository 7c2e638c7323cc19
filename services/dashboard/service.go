package dashboard

import (
	"context"
	"time"

	"simba/models"
	"simba/services/pos"
	"simba/utils"
)

const (
	topToursLimit       = 5
	recentBookingsLimit = 5
)

// BookingStats is the booking data the dashboard reads.
type BookingStats interface {
	Count(ctx context.Context, status string) (int64, error)
	PaidRevenueSince(ctx context.Context, since time.Time) (float64, error)
	TopTours(ctx context.Context, limit int) ([]models.TourRanking, error)
	Recent(ctx context.Context, limit int) ([]models.Booking, error)
}

// Counter counts documents in a collection.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}

// DashboardService builds the admin dashboard.
type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

// DefaultDashboardService is the production implementation.
type DefaultDashboardService struct {
	Bookings  BookingStats
	Tours     Counter
	Customers Counter
	Now       func() time.Time
}

// Stats assembles the overview. Monthly revenue comes from paid bookings and
// is computed separately from the POS sales summary.
func (s *DefaultDashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	monthStart := pos.SummaryWindows(now).Month

	var (
		out models.DashboardStats
		err error
	)
	o := &out.Overview
	if o.TotalTours, err = s.Tours.Count(ctx); err != nil {
		return nil, utils.NewPersistenceError("count tours", err, nil)
	}
	if o.TotalCustomers, err = s.Customers.Count(ctx); err != nil {
		return nil, utils.NewPersistenceError("count customers", err, nil)
	}
	if o.TotalBookings, err = s.Bookings.Count(ctx, ""); err != nil {
		return nil, utils.NewPersistenceError("count bookings", err, nil)
	}
	if o.PendingBookings, err = s.Bookings.Count(ctx, models.BookingPending); err != nil {
		return nil, utils.NewPersistenceError("count pending bookings", err, nil)
	}
	if o.ConfirmedBookings, err = s.Bookings.Count(ctx, models.BookingConfirmed); err != nil {
		return nil, utils.NewPersistenceError("count confirmed bookings", err, nil)
	}
	if o.MonthlyRevenue, err = s.Bookings.PaidRevenueSince(ctx, monthStart); err != nil {
		return nil, utils.NewPersistenceError("sum monthly revenue", err, nil)
	}
	if out.TopTours, err = s.Bookings.TopTours(ctx, topToursLimit); err != nil {
		return nil, utils.NewPersistenceError("rank tours", err, nil)
	}
	if out.RecentBookings, err = s.Bookings.Recent(ctx, recentBookingsLimit); err != nil {
		return nil, utils.NewPersistenceError("load recent bookings", err, nil)
	}
	return &out, nil
}
