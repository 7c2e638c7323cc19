package tourRepo

import (
	"context"

	"simba/models"
)

// TourRepository defines methods for tour catalog data access.
type TourRepository interface {
	// List returns every tour, newest first.
	List(ctx context.Context) ([]models.Tour, error)
	// GetByID returns nil, nil when no tour matches.
	GetByID(ctx context.Context, id string) (*models.Tour, error)
	// GetBySlug returns nil, nil when no tour matches.
	GetBySlug(ctx context.Context, slug string) (*models.Tour, error)
	Create(ctx context.Context, tour *models.Tour) error
	// Replace overwrites the stored tour. It returns false when the id is unknown.
	Replace(ctx context.Context, tour *models.Tour) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	IncrementViews(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)
}
