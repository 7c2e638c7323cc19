package customer

import (
	"context"
	"testing"
	"time"

	"simba/models"
	"simba/services/auth"
	"simba/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCustomers map[string]*models.Customer

func (m memCustomers) Create(_ context.Context, c *models.Customer) error {
	m[c.Email] = c
	return nil
}

func (m memCustomers) GetByEmail(_ context.Context, email string) (*models.Customer, error) {
	return m[email], nil
}

// memBookings mimics the bulk link: email match and no owner.
type memBookings struct {
	bookings []*models.Booking
}

func (m *memBookings) LinkToCustomer(_ context.Context, email, customerID string) (int64, error) {
	var n int64
	for _, b := range m.bookings {
		if b.CustomerEmail == email && b.UserID == nil {
			id := customerID
			b.UserID = &id
			n++
		}
	}
	return n, nil
}

func newService() (*DefaultCustomerService, memCustomers, *memBookings) {
	customers := memCustomers{}
	bookings := &memBookings{}
	svc := &DefaultCustomerService{
		Customers: customers,
		Bookings:  bookings,
		Authn:     &auth.JWTAuthenticator{Secret: []byte("s"), AdminTTL: time.Hour, CustomerTTL: time.Hour},
	}
	return svc, customers, bookings
}

func TestRegisterLinksGuestBookings(t *testing.T) {
	svc, _, bookings := newService()
	other := "someone-else"
	bookings.bookings = []*models.Booking{
		{ID: "b1", CustomerEmail: "jo@simba.test"},
		{ID: "b2", CustomerEmail: "jo@simba.test"},
		{ID: "b3", CustomerEmail: "jo@simba.test", UserID: &other},
		{ID: "b4", CustomerEmail: "kim@simba.test"},
	}

	resp, err := svc.Register(context.Background(), models.CustomerRegistration{
		Name: "Jo", Email: " Jo@Simba.test ", Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.User.IsCustomer)
	assert.Equal(t, "jo@simba.test", resp.User.Email)

	require.NotNil(t, bookings.bookings[0].UserID)
	assert.Equal(t, resp.User.ID, *bookings.bookings[0].UserID)
	assert.Equal(t, resp.User.ID, *bookings.bookings[1].UserID)
	assert.Equal(t, "someone-else", *bookings.bookings[2].UserID)
	assert.Nil(t, bookings.bookings[3].UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newService()
	reg := models.CustomerRegistration{Name: "Jo", Email: "jo@simba.test", Password: "secret1"}
	_, err := svc.Register(context.Background(), reg)
	require.NoError(t, err)

	reg.Email = "JO@simba.test"
	_, err = svc.Register(context.Background(), reg)
	var ve *utils.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Email already exists", ve.Error())
}

func TestLogin(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.Register(context.Background(), models.CustomerRegistration{Name: "Jo", Email: "jo@simba.test", Password: "secret1"})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), models.Credentials{Email: "JO@simba.test", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(context.Background(), models.Credentials{Email: "jo@simba.test", Password: "wrong"})
	assert.Equal(t, 401, utils.StatusFor(err))

	_, err = svc.Login(context.Background(), models.Credentials{Email: "nobody@simba.test", Password: "x"})
	assert.Equal(t, 401, utils.StatusFor(err))
}
