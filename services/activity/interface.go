package activity

import (
	"context"
	"time"

	"simba/models"
)

// Recorder accepts audit events. It never fails the caller: delivery
// problems are logged and the event is dropped.
type Recorder interface {
	Record(ctx context.Context, entry models.ActivityLog)
}

// Store is the persistence the activity service needs.
type Store interface {
	Create(ctx context.Context, entry models.ActivityLog) (string, error)
	List(ctx context.Context, filter models.ActivityFilter) ([]models.ActivityLog, int64, error)
	Summary(ctx context.Context, since time.Time) (*models.ActivitySummary, error)
}

// ActivityService serves the admin activity pages and the storefront tracker.
type ActivityService interface {
	Track(ctx context.Context, event models.ClientActivity) error
	List(ctx context.Context, filter models.ActivityFilter) ([]models.ActivityLog, int64, error)
	Summary(ctx context.Context) (*models.ActivitySummary, error)
}

// DefaultActivityService is the production implementation.
type DefaultActivityService struct {
	Store    Store
	Recorder Recorder
	Now      func() time.Time
}
