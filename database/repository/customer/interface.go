package customerRepo

import (
	"context"

	"simba/models"
)

// CustomerRepository defines methods for storefront customer accounts.
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	// GetByEmail returns nil, nil when no customer matches.
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	Count(ctx context.Context) (int64, error)
}
