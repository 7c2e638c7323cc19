package bookingRepo

import (
	"context"
	"time"

	"simba/models"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID returns nil, nil when no booking matches.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, int64, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	Recent(ctx context.Context, limit int) ([]models.Booking, error)
	// UpdateFields applies a $set and returns the updated booking, or nil when the id is unknown.
	UpdateFields(ctx context.Context, id string, fields bson.M) (*models.Booking, error)
	SetStatus(ctx context.Context, id, status, paymentStatus string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	// LinkToCustomer attaches every unowned booking made under email to customerID.
	LinkToCustomer(ctx context.Context, email, customerID string) (int64, error)
	Count(ctx context.Context, status string) (int64, error)
	PaidRevenueSince(ctx context.Context, since time.Time) (float64, error)
	TopTours(ctx context.Context, limit int) ([]models.TourRanking, error)
}
