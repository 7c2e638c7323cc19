package booking

import (
	"context"
	"testing"
	"time"

	"simba/models"
	"simba/services/auth"
	"simba/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

type memBookings map[string]*models.Booking

func (m memBookings) Create(_ context.Context, b *models.Booking) error {
	cp := *b
	m[b.ID] = &cp
	return nil
}

func (m memBookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	if b, ok := m[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (m memBookings) List(_ context.Context, f models.BookingFilter) ([]models.Booking, int64, error) {
	out := []models.Booking{}
	for _, b := range m {
		if f.Status == "" || b.Status == f.Status {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (m memBookings) ListByUser(_ context.Context, userID string) ([]models.Booking, error) {
	out := []models.Booking{}
	for _, b := range m {
		if b.UserID != nil && *b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m memBookings) UpdateFields(_ context.Context, id string, fields bson.M) (*models.Booking, error) {
	b, ok := m[id]
	if !ok {
		return nil, nil
	}
	if v, ok := fields["status"].(string); ok {
		b.Status = v
	}
	if v, ok := fields["paymentStatus"].(string); ok {
		b.PaymentStatus = v
	}
	if v, ok := fields["participants"].(int); ok {
		b.Participants = v
	}
	cp := *b
	return &cp, nil
}

func (m memBookings) Delete(_ context.Context, id string) (bool, error) {
	_, ok := m[id]
	delete(m, id)
	return ok, nil
}

type memTours map[string]*models.Tour

func (m memTours) GetByID(_ context.Context, id string) (*models.Tour, error) { return m[id], nil }

type memCustomers map[string]*models.Customer

func (m memCustomers) GetByEmail(_ context.Context, email string) (*models.Customer, error) {
	return m[email], nil
}

type counter map[string]int

func (c counter) Increment(_ context.Context, field string) { c[field]++ }

func newService() (*DefaultBookingService, memBookings, counter) {
	bookings := memBookings{}
	counts := counter{}
	svc := &DefaultBookingService{
		Bookings:  bookings,
		Tours:     memTours{"T1": {ID: "T1", Title: "Maasai Mara Safari", Price: 450}},
		Customers: memCustomers{"jo@simba.test": {ID: "cust-jo", Email: "jo@simba.test"}},
		Analytics: counts,
		Now:       func() time.Time { return time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC) },
	}
	return svc, bookings, counts
}

func request(email string) models.BookingRequest {
	return models.BookingRequest{
		TourID:        "T1",
		CustomerName:  "Jo",
		CustomerEmail: email,
		CustomerPhone: "0700",
		TripDate:      "2026-08-15",
		Participants:  2,
	}
}

func TestCreateGuestBooking(t *testing.T) {
	svc, _, counts := newService()

	b, err := svc.Create(context.Background(), request("guest@simba.test"), nil)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, models.PaymentPending, b.PaymentStatus)
	assert.Equal(t, "Maasai Mara Safari", b.TourTitle)
	assert.Equal(t, 900.0, b.TotalAmount)
	assert.Equal(t, "2026-07-01", b.BookingDate)
	assert.Nil(t, b.UserID)
	assert.Equal(t, 1, counts[models.CounterBookings])
}

func TestCreateLinksByEmail(t *testing.T) {
	svc, _, _ := newService()

	b, err := svc.Create(context.Background(), request("Jo@Simba.test"), nil)
	require.NoError(t, err)
	require.NotNil(t, b.UserID)
	assert.Equal(t, "cust-jo", *b.UserID)
}

func TestCreateAuthenticatedCustomerWins(t *testing.T) {
	svc, _, _ := newService()
	principal := &auth.Principal{ID: "cust-session", IsCustomer: true}

	b, err := svc.Create(context.Background(), request("jo@simba.test"), principal)
	require.NoError(t, err)
	require.NotNil(t, b.UserID)
	assert.Equal(t, "cust-session", *b.UserID)
}

func TestCreateValidation(t *testing.T) {
	svc, bookings, _ := newService()

	noPeople := request("a@b.c")
	noPeople.Participants = 0
	_, err := svc.Create(context.Background(), noPeople, nil)
	assert.Equal(t, 400, utils.StatusFor(err))

	badDate := request("a@b.c")
	badDate.TripDate = "next week"
	_, err = svc.Create(context.Background(), badDate, nil)
	assert.Equal(t, 400, utils.StatusFor(err))

	unknownTour := request("a@b.c")
	unknownTour.TourID = "T404"
	_, err = svc.Create(context.Background(), unknownTour, nil)
	assert.Equal(t, 404, utils.StatusFor(err))

	assert.Empty(t, bookings)
}

func TestUpdateValidatesEachAxis(t *testing.T) {
	svc, _, _ := newService()
	b, err := svc.Create(context.Background(), request("guest@simba.test"), nil)
	require.NoError(t, err)

	confirmed, pending := models.BookingConfirmed, models.PaymentPending
	updated, err := svc.Update(context.Background(), b.ID, models.BookingUpdate{Status: &confirmed, PaymentStatus: &pending}, "adm")
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, updated.Status)
	assert.Equal(t, models.PaymentPending, updated.PaymentStatus)

	bogus := "Shipped"
	_, err = svc.Update(context.Background(), b.ID, models.BookingUpdate{Status: &bogus}, "adm")
	assert.Equal(t, 400, utils.StatusFor(err))

	_, err = svc.Update(context.Background(), b.ID, models.BookingUpdate{}, "adm")
	assert.Equal(t, 400, utils.StatusFor(err))

	_, err = svc.Update(context.Background(), "missing", models.BookingUpdate{Status: &confirmed}, "adm")
	assert.Equal(t, 404, utils.StatusFor(err))
}

func TestListPagination(t *testing.T) {
	svc, _, _ := newService()
	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), request("guest@simba.test"), nil)
		require.NoError(t, err)
	}
	_, page, err := svc.List(context.Background(), models.BookingFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, int64(2), page.Pages)
	assert.Equal(t, 1, page.Page)

	_, _, err = svc.List(context.Background(), models.BookingFilter{Status: "Nope"})
	assert.Equal(t, 400, utils.StatusFor(err))
}

func TestDeleteAndForCustomer(t *testing.T) {
	svc, _, _ := newService()
	b, err := svc.Create(context.Background(), request("jo@simba.test"), nil)
	require.NoError(t, err)

	mine, err := svc.ForCustomer(context.Background(), "cust-jo")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, svc.Delete(context.Background(), b.ID, "adm"))
	assert.Equal(t, 404, utils.StatusFor(svc.Delete(context.Background(), b.ID, "adm")))
}
