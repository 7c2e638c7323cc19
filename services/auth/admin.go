package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"simba/models"
	"simba/services/activity"
	"simba/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxLoginAttempts = 5
	lockoutDuration  = 30 * time.Minute
	bootstrapAdminID = "bootstrap-admin"
)

// AdminStore is the persistence admin login needs.
type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	RecordFailedLogin(ctx context.Context, id string, attempts int, lockUntil *time.Time) error
	RecordSuccessfulLogin(ctx context.Context, id string, at time.Time) error
}

// LoginResponse is returned by both admin and customer login.
type LoginResponse struct {
	Token string     `json:"token"`
	User  *Principal `json:"user"`
}

// AdminAuthService signs operators into the back office.
type AdminAuthService struct {
	Admins            AdminStore
	Authn             Authenticator
	BootstrapEmail    string
	BootstrapPassword string
	Activity          activity.Recorder
	Now               func() time.Time
}

func (s *AdminAuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Login checks an AdminUser record first and falls back to the bootstrap password.
func (s *AdminAuthService) Login(ctx context.Context, creds models.Credentials) (*LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" {
		email = strings.ToLower(s.BootstrapEmail)
	}
	if creds.Password == "" {
		return nil, utils.NewValidationError("password", "is required")
	}

	admin, err := s.Admins.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Error("admin login: failed to fetch admin", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	var principal *Principal
	if admin != nil {
		principal, err = s.checkAdmin(ctx, admin, creds.Password)
		if err != nil {
			s.recordLogin(ctx, email, email, false)
			return nil, err
		}
	} else {
		if !s.bootstrapMatches(email, creds.Password) {
			s.recordLogin(ctx, "unknown", email, false)
			return nil, &utils.AuthError{Message: "Invalid credentials"}
		}
		principal = &Principal{ID: bootstrapAdminID, Email: email, Name: "Administrator", Role: models.RoleSuperAdmin}
	}

	token, err := s.Authn.IssueToken(principal)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	s.recordLogin(ctx, principal.ID, principal.Email, true)
	return &LoginResponse{Token: token, User: principal}, nil
}

func (s *AdminAuthService) checkAdmin(ctx context.Context, admin *models.AdminUser, password string) (*Principal, error) {
	now := s.now()
	if !admin.IsActive {
		return nil, &utils.AuthError{Message: "Account is disabled"}
	}
	if admin.IsLocked(now) {
		return nil, &utils.AuthError{Message: fmt.Sprintf("Account locked until %s", admin.LockUntil.Format(time.RFC3339))}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		attempts := admin.LoginAttempts + 1
		// an expired lock starts a fresh count
		if admin.LockUntil != nil && !admin.IsLocked(now) {
			attempts = 1
		}
		var lockUntil *time.Time
		if attempts >= maxLoginAttempts {
			until := now.Add(lockoutDuration)
			lockUntil = &until
		}
		if err := s.Admins.RecordFailedLogin(ctx, admin.ID, attempts, lockUntil); err != nil {
			utils.GetLogger().Warn("admin login: failed to record attempt", zap.String("adminId", admin.ID), zap.Error(err))
		}
		return nil, &utils.AuthError{Message: "Invalid credentials"}
	}

	if err := s.Admins.RecordSuccessfulLogin(ctx, admin.ID, now); err != nil {
		utils.GetLogger().Warn("admin login: failed to record login", zap.String("adminId", admin.ID), zap.Error(err))
	}
	return &Principal{ID: admin.ID, Email: admin.Email, Name: admin.Name, Role: admin.Role}, nil
}

func (s *AdminAuthService) bootstrapMatches(email, password string) bool {
	if s.BootstrapPassword == "" || email != strings.ToLower(s.BootstrapEmail) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.BootstrapPassword)) == 1
}

func (s *AdminAuthService) recordLogin(ctx context.Context, adminID, email string, ok bool) {
	if s.Activity == nil {
		return
	}
	entry := models.ActivityLog{
		Action:      models.ActionLogin,
		AdminID:     adminID,
		AdminEmail:  email,
		EntityType:  models.EntitySystem,
		Success:     ok,
		Severity:    models.SeverityInfo,
		Description: fmt.Sprintf("Admin login by %s", email),
	}
	if !ok {
		entry.Severity = models.SeverityWarning
		entry.Description = fmt.Sprintf("Failed admin login for %s", email)
	}
	s.Activity.Record(ctx, entry)
}
