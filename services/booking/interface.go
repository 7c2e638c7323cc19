package booking

import (
	"context"
	"time"

	"simba/models"
	"simba/services/activity"
	"simba/services/auth"

	"go.mongodb.org/mongo-driver/bson"
)

// BookingService covers storefront booking and the admin booking pages.
type BookingService interface {
	Create(ctx context.Context, req models.BookingRequest, principal *auth.Principal) (*models.Booking, error)
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, *models.Pagination, error)
	ForCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	Update(ctx context.Context, id string, upd models.BookingUpdate, adminID string) (*models.Booking, error)
	Delete(ctx context.Context, id string, adminID string) error
}

// Store is the booking persistence.
type Store interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, int64, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	UpdateFields(ctx context.Context, id string, fields bson.M) (*models.Booking, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// TourFinder resolves the booked tour.
type TourFinder interface {
	GetByID(ctx context.Context, id string) (*models.Tour, error)
}

// CustomerFinder resolves a registered customer by normalized email.
type CustomerFinder interface {
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
}

// Counter bumps a daily analytics counter.
type Counter interface {
	Increment(ctx context.Context, field string)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Bookings  Store
	Tours     TourFinder
	Customers CustomerFinder
	Analytics Counter
	Activity  activity.Recorder
	Now       func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
