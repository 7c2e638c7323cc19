package tour

import (
	"context"
	"time"

	"simba/models"
	"simba/services/activity"
	"simba/services/storage"
)

// TourService serves the catalog to the storefront and the admin portal.
type TourService interface {
	List(ctx context.Context) ([]models.Tour, error)
	Featured(ctx context.Context, limit int) ([]models.Tour, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tour, error)
	GetByID(ctx context.Context, id string) (*models.Tour, error)
	RecordView(ctx context.Context, id string) error
	Create(ctx context.Context, input models.TourInput, adminID string) (*models.Tour, error)
	Update(ctx context.Context, id string, input models.TourInput, adminID string) (*models.Tour, error)
	Delete(ctx context.Context, id string, adminID string) error
	UploadImage(ctx context.Context, id string, file interface{}, adminID string) (*models.Tour, error)
}

// Store is the tour persistence.
type Store interface {
	List(ctx context.Context) ([]models.Tour, error)
	GetByID(ctx context.Context, id string) (*models.Tour, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tour, error)
	Create(ctx context.Context, tour *models.Tour) error
	Replace(ctx context.Context, tour *models.Tour) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	IncrementViews(ctx context.Context, id string) (bool, error)
}

// Counter bumps a daily analytics counter.
type Counter interface {
	Increment(ctx context.Context, field string)
}

// DefaultTourService is the production implementation.
type DefaultTourService struct {
	Store     Store
	Cache     *ToursCache
	Images    storage.StorageService
	Analytics Counter
	Activity  activity.Recorder
	Now       func() time.Time
}

func (s *DefaultTourService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
