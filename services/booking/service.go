package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"simba/models"
	"simba/services/auth"
	"simba/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Create stores a Pending booking from the public form. An authenticated
// customer owns the booking; otherwise a registered customer with the same
// email does.
func (s *DefaultBookingService) Create(ctx context.Context, req models.BookingRequest, principal *auth.Principal) (*models.Booking, error) {
	email := strings.ToLower(strings.TrimSpace(req.CustomerEmail))
	switch {
	case strings.TrimSpace(req.CustomerName) == "":
		return nil, utils.NewValidationError("customerName", "is required")
	case email == "":
		return nil, utils.NewValidationError("customerEmail", "is required")
	case req.Participants < 1:
		return nil, utils.NewValidationError("participants", "must be at least 1")
	case req.TotalAmount < 0:
		return nil, utils.NewValidationError("totalAmount", "must not be negative")
	}
	if _, err := time.Parse(utils.DateLayout, req.TripDate); err != nil {
		return nil, utils.NewValidationError("tripDate", "must be YYYY-MM-DD")
	}

	tour, err := s.Tours.GetByID(ctx, req.TourID)
	if err != nil {
		return nil, utils.NewPersistenceError("load tour", err, map[string]string{"tourId": req.TourID})
	}
	if tour == nil {
		return nil, utils.NewNotFoundError("tour", req.TourID)
	}

	now := s.now()
	b := &models.Booking{
		ID:            uuid.New().String(),
		TourID:        tour.ID,
		TourTitle:     req.TourTitle,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: email,
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		BookingDate:   now.Format(utils.DateLayout),
		TripDate:      req.TripDate,
		Participants:  req.Participants,
		TotalAmount:   req.TotalAmount,
		Status:        models.BookingPending,
		PaymentStatus: models.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if b.TourTitle == "" {
		b.TourTitle = tour.Title
	}
	if b.TotalAmount == 0 {
		b.TotalAmount = decimal.NewFromFloat(tour.Price).Mul(decimal.NewFromInt(int64(req.Participants))).Round(2).InexactFloat64()
	}
	s.resolveOwner(ctx, b, principal)

	if err := s.Bookings.Create(ctx, b); err != nil {
		return nil, utils.NewPersistenceError("create booking", err, map[string]string{"bookingId": b.ID})
	}
	if s.Analytics != nil {
		s.Analytics.Increment(ctx, models.CounterBookings)
	}
	s.record(ctx, models.ActionCreateBooking, b.CustomerEmail, b, fmt.Sprintf("Booking for %s by %s", b.TourTitle, b.CustomerName))
	return b, nil
}

func (s *DefaultBookingService) resolveOwner(ctx context.Context, b *models.Booking, principal *auth.Principal) {
	if principal != nil && principal.IsCustomer {
		id := principal.ID
		b.UserID = &id
		return
	}
	if s.Customers == nil {
		return
	}
	c, err := s.Customers.GetByEmail(ctx, b.CustomerEmail)
	if err != nil {
		utils.GetLogger().Warn("booking: customer lookup failed, booking left unlinked",
			zap.String("email", b.CustomerEmail), zap.Error(err))
		return
	}
	if c != nil {
		id := c.ID
		b.UserID = &id
	}
}

func (s *DefaultBookingService) List(ctx context.Context, filter models.BookingFilter) ([]models.Booking, *models.Pagination, error) {
	if filter.Status != "" && !models.IsBookingStatus(filter.Status) {
		return nil, nil, utils.NewValidationError("status", fmt.Sprintf("unknown status %q", filter.Status))
	}
	if filter.PaymentStatus != "" && !models.IsPaymentStatus(filter.PaymentStatus) {
		return nil, nil, utils.NewValidationError("paymentStatus", fmt.Sprintf("unknown payment status %q", filter.PaymentStatus))
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Page < 1 {
		filter.Page = 1
	}

	bookings, total, err := s.Bookings.List(ctx, filter)
	if err != nil {
		return nil, nil, utils.NewPersistenceError("list bookings", err, nil)
	}
	pages := (total + int64(filter.Limit) - 1) / int64(filter.Limit)
	return bookings, &models.Pagination{Total: total, Page: filter.Page, Limit: filter.Limit, Pages: pages}, nil
}

func (s *DefaultBookingService) ForCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	bookings, err := s.Bookings.ListByUser(ctx, customerID)
	if err != nil {
		return nil, utils.NewPersistenceError("list customer bookings", err, map[string]string{"customerId": customerID})
	}
	return bookings, nil
}

// Update applies an admin patch. Status and payment status are validated
// independently; no combination is rejected.
func (s *DefaultBookingService) Update(ctx context.Context, id string, upd models.BookingUpdate, adminID string) (*models.Booking, error) {
	fields := bson.M{}
	if upd.Status != nil {
		if !models.IsBookingStatus(*upd.Status) {
			return nil, utils.NewValidationError("status", fmt.Sprintf("unknown status %q", *upd.Status))
		}
		fields["status"] = *upd.Status
	}
	if upd.PaymentStatus != nil {
		if !models.IsPaymentStatus(*upd.PaymentStatus) {
			return nil, utils.NewValidationError("paymentStatus", fmt.Sprintf("unknown payment status %q", *upd.PaymentStatus))
		}
		fields["paymentStatus"] = *upd.PaymentStatus
	}
	if upd.TripDate != nil {
		if _, err := time.Parse(utils.DateLayout, *upd.TripDate); err != nil {
			return nil, utils.NewValidationError("tripDate", "must be YYYY-MM-DD")
		}
		fields["tripDate"] = *upd.TripDate
	}
	if upd.Participants != nil {
		if *upd.Participants < 1 {
			return nil, utils.NewValidationError("participants", "must be at least 1")
		}
		fields["participants"] = *upd.Participants
	}
	if len(fields) == 0 {
		return nil, utils.NewValidationError("", "no updatable fields supplied")
	}
	fields["updatedAt"] = s.now()

	b, err := s.Bookings.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, utils.NewPersistenceError("update booking", err, map[string]string{"bookingId": id})
	}
	if b == nil {
		return nil, utils.NewNotFoundError("booking", id)
	}

	action := models.ActionUpdateBooking
	if upd.Status != nil {
		switch *upd.Status {
		case models.BookingConfirmed:
			action = models.ActionConfirmBooking
		case models.BookingCancelled:
			action = models.ActionCancelBooking
		}
	}
	s.record(ctx, action, adminID, b, fmt.Sprintf("Updated booking %s", b.ID))
	return b, nil
}

func (s *DefaultBookingService) Delete(ctx context.Context, id string, adminID string) error {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return utils.NewPersistenceError("load booking", err, map[string]string{"bookingId": id})
	}
	if b == nil {
		return utils.NewNotFoundError("booking", id)
	}
	found, err := s.Bookings.Delete(ctx, id)
	if err != nil {
		return utils.NewPersistenceError("delete booking", err, map[string]string{"bookingId": id})
	}
	if !found {
		return utils.NewNotFoundError("booking", id)
	}
	s.record(ctx, models.ActionDeleteBooking, adminID, b, fmt.Sprintf("Deleted booking %s for %s", b.ID, b.CustomerName))
	return nil
}

func (s *DefaultBookingService) record(ctx context.Context, action, actor string, b *models.Booking, description string) {
	if s.Activity == nil {
		return
	}
	id := b.ID
	s.Activity.Record(ctx, models.ActivityLog{
		Action:      action,
		AdminID:     actor,
		Description: description,
		EntityType:  models.EntityBooking,
		EntityID:    &id,
		Success:     true,
		Metadata: map[string]interface{}{
			"status":        b.Status,
			"paymentStatus": b.PaymentStatus,
		},
	})
}
