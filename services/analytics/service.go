package analytics

import (
	"context"
	"time"

	"simba/models"
	"simba/utils"

	"go.uber.org/zap"
)

const (
	defaultDays = 14
	maxDays     = 365
)

// Store keeps one counter document per day.
type Store interface {
	Increment(ctx context.Context, date, field string) error
	Since(ctx context.Context, from string) ([]models.DailyAnalytics, error)
}

// AnalyticsService reads and bumps the storefront's daily counters.
type AnalyticsService interface {
	Increment(ctx context.Context, field string)
	Recent(ctx context.Context, days int) ([]models.DailyAnalytics, error)
}

// DefaultAnalyticsService is the production implementation.
type DefaultAnalyticsService struct {
	Store Store
	Now   func() time.Time
}

func (s *DefaultAnalyticsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Increment bumps field on today's row. Failures are logged, never returned.
func (s *DefaultAnalyticsService) Increment(ctx context.Context, field string) {
	date := s.now().Format(utils.DateLayout)
	if err := s.Store.Increment(ctx, date, field); err != nil {
		utils.GetLogger().Warn("analytics: increment failed",
			zap.String("field", field), zap.String("date", date), zap.Error(err))
	}
}

// Recent returns the rows for the last days days including today.
func (s *DefaultAnalyticsService) Recent(ctx context.Context, days int) ([]models.DailyAnalytics, error) {
	if days <= 0 {
		days = defaultDays
	}
	if days > maxDays {
		days = maxDays
	}
	from := s.now().AddDate(0, 0, -(days - 1)).Format(utils.DateLayout)
	rows, err := s.Store.Since(ctx, from)
	if err != nil {
		return nil, utils.NewPersistenceError("load analytics", err, nil)
	}
	return rows, nil
}
