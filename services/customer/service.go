package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"simba/database"
	"simba/models"
	"simba/services/auth"
	"simba/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Store is the customer persistence.
type Store interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
}

// BookingLinker adopts guest bookings made under an email.
type BookingLinker interface {
	LinkToCustomer(ctx context.Context, email, customerID string) (int64, error)
}

// CustomerService handles storefront sign-up and sign-in.
type CustomerService interface {
	Register(ctx context.Context, reg models.CustomerRegistration) (*auth.LoginResponse, error)
	Login(ctx context.Context, creds models.Credentials) (*auth.LoginResponse, error)
}

// DefaultCustomerService is the production implementation.
type DefaultCustomerService struct {
	Customers Store
	Bookings  BookingLinker
	Authn     auth.Authenticator
	Now       func() time.Time
}

func (s *DefaultCustomerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates the account and links every earlier guest booking made
// under the same email that has no owner yet.
func (s *DefaultCustomerService) Register(ctx context.Context, reg models.CustomerRegistration) (*auth.LoginResponse, error) {
	email := NormalizeEmail(reg.Email)
	name := strings.TrimSpace(reg.Name)
	if name == "" {
		return nil, utils.NewValidationError("name", "is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, utils.NewValidationError("email", "must be a valid address")
	}
	if len(reg.Password) < 6 {
		return nil, utils.NewValidationError("password", "must be at least 6 characters")
	}

	existing, err := s.Customers.GetByEmail(ctx, email)
	if err != nil {
		return nil, utils.NewPersistenceError("check customer email", err, nil)
	}
	if existing != nil {
		return nil, &utils.ValidationError{Message: "Email already exists"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	c := &models.Customer{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(reg.Phone),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Customers.Create(ctx, c); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return nil, &utils.ValidationError{Message: "Email already exists"}
		}
		return nil, utils.NewPersistenceError("create customer", err, map[string]string{"customerId": c.ID})
	}

	linked, err := s.Bookings.LinkToCustomer(ctx, email, c.ID)
	if err != nil {
		// the account exists; an operator can re-run the link
		utils.GetLogger().Error("customer: failed to link guest bookings",
			zap.String("customerId", c.ID), zap.String("email", email), zap.Error(err))
	} else if linked > 0 {
		utils.GetLogger().Info("customer: linked guest bookings",
			zap.String("customerId", c.ID), zap.Int64("count", linked))
	}

	return s.issue(c)
}

func (s *DefaultCustomerService) Login(ctx context.Context, creds models.Credentials) (*auth.LoginResponse, error) {
	email := NormalizeEmail(creds.Email)
	if email == "" || creds.Password == "" {
		return nil, utils.NewValidationError("", "email and password are required")
	}
	c, err := s.Customers.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Error("customer login: failed to fetch customer", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if c == nil {
		return nil, &utils.AuthError{Message: "Invalid email or password"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, &utils.AuthError{Message: "Invalid email or password"}
	}
	return s.issue(c)
}

func (s *DefaultCustomerService) issue(c *models.Customer) (*auth.LoginResponse, error) {
	p := &auth.Principal{ID: c.ID, Email: c.Email, Name: c.Name, IsCustomer: true}
	token, err := s.Authn.IssueToken(p)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &auth.LoginResponse{Token: token, User: p}, nil
}
