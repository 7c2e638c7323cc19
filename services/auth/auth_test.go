package auth

import (
	"context"
	"testing"
	"time"

	"simba/models"
	"simba/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newAuthenticator() *JWTAuthenticator {
	return &JWTAuthenticator{
		Secret:      []byte("test-secret"),
		AdminTTL:    24 * time.Hour,
		CustomerTTL: 7 * 24 * time.Hour,
	}
}

func TestIssueAndVerify(t *testing.T) {
	a := newAuthenticator()
	token, err := a.IssueToken(&Principal{ID: "adm-1", Email: "ops@simba.test", Role: models.RoleManager})
	require.NoError(t, err)

	p, err := a.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "adm-1", p.ID)
	assert.Equal(t, models.RoleManager, p.Role)
	assert.False(t, p.IsCustomer)

	ctoken, err := a.IssueToken(&Principal{ID: "cust-1", Email: "c@simba.test", IsCustomer: true})
	require.NoError(t, err)
	cp, err := a.Verify(ctoken)
	require.NoError(t, err)
	assert.True(t, cp.IsCustomer)
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	a := newAuthenticator()

	_, err := a.Verify("")
	assert.Equal(t, 401, utils.StatusFor(err))

	_, err = a.Verify("not.a.token")
	assert.Equal(t, 401, utils.StatusFor(err))

	other := &JWTAuthenticator{Secret: []byte("other"), AdminTTL: time.Hour}
	forged, err := other.IssueToken(&Principal{ID: "x", Role: models.RoleAdmin})
	require.NoError(t, err)
	_, err = a.Verify(forged)
	assert.Error(t, err)

	expired := &JWTAuthenticator{Secret: a.Secret, AdminTTL: time.Hour, Now: func() time.Time { return time.Now().Add(-2 * time.Hour) }}
	old, err := expired.IssueToken(&Principal{ID: "x", Role: models.RoleAdmin})
	require.NoError(t, err)
	_, err = a.Verify(old)
	assert.Error(t, err)

	noRole, err := a.IssueToken(&Principal{ID: "x"})
	require.NoError(t, err)
	_, err = a.Verify(noRole)
	assert.Error(t, err)
}

func TestAuthorize(t *testing.T) {
	a := newAuthenticator()
	staff := &Principal{ID: "s", Role: models.RoleStaff}
	manager := &Principal{ID: "m", Role: models.RoleManager}
	admin := &Principal{ID: "a", Role: models.RoleAdmin}
	customer := &Principal{ID: "c", IsCustomer: true}

	assert.True(t, a.Authorize(staff, ActionPOSSale))
	assert.False(t, a.Authorize(staff, ActionPOSRefund))
	assert.True(t, a.Authorize(manager, ActionPOSRefund))
	assert.False(t, a.Authorize(manager, ActionToursDelete))
	assert.True(t, a.Authorize(admin, ActionToursDelete))
	assert.True(t, a.Authorize(admin, ActionActivityRead))
	assert.False(t, a.Authorize(customer, ActionPOSSale))
	assert.False(t, a.Authorize(nil, ActionPOSSale))
	assert.False(t, a.Authorize(admin, "unknown:action"))
}

type memAdmins struct {
	admin *models.AdminUser
}

func (m *memAdmins) GetByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	if m.admin != nil && m.admin.Email == email {
		cp := *m.admin
		return &cp, nil
	}
	return nil, nil
}

func (m *memAdmins) RecordFailedLogin(_ context.Context, _ string, attempts int, lockUntil *time.Time) error {
	m.admin.LoginAttempts = attempts
	m.admin.LockUntil = lockUntil
	return nil
}

func (m *memAdmins) RecordSuccessfulLogin(_ context.Context, _ string, at time.Time) error {
	m.admin.LoginAttempts = 0
	m.admin.LockUntil = nil
	m.admin.LastLogin = &at
	return nil
}

func newAdminService(t *testing.T) (*AdminAuthService, *memAdmins) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	store := &memAdmins{admin: &models.AdminUser{
		ID: "adm-1", Email: "manager@simba.test", PasswordHash: string(hash),
		Name: "Wanjiru", Role: models.RoleManager, IsActive: true,
	}}
	svc := &AdminAuthService{
		Admins:            store,
		Authn:             newAuthenticator(),
		BootstrapEmail:    "admin@simba.test",
		BootstrapPassword: "simba2026",
		Now:               func() time.Time { return testNow },
	}
	return svc, store
}

func TestAdminLogin(t *testing.T) {
	svc, store := newAdminService(t)

	resp, err := svc.Login(context.Background(), models.Credentials{Email: "Manager@Simba.test", Password: "correct horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, models.RoleManager, resp.User.Role)
	require.NotNil(t, store.admin.LastLogin)
}

func TestAdminLockout(t *testing.T) {
	svc, store := newAdminService(t)
	ctx := context.Background()
	bad := models.Credentials{Email: "manager@simba.test", Password: "wrong"}

	for i := 0; i < maxLoginAttempts; i++ {
		_, err := svc.Login(ctx, bad)
		require.Error(t, err)
	}
	require.NotNil(t, store.admin.LockUntil)
	assert.Equal(t, testNow.Add(lockoutDuration), *store.admin.LockUntil)

	_, err := svc.Login(ctx, models.Credentials{Email: "manager@simba.test", Password: "correct horse"})
	var ae *utils.AuthError
	require.ErrorAs(t, err, &ae)
	assert.Contains(t, ae.Message, "locked")

	svc.Now = func() time.Time { return testNow.Add(lockoutDuration + time.Minute) }
	_, err = svc.Login(ctx, models.Credentials{Email: "manager@simba.test", Password: "correct horse"})
	require.NoError(t, err)
	assert.Equal(t, 0, store.admin.LoginAttempts)
}

func TestBootstrapLogin(t *testing.T) {
	svc, _ := newAdminService(t)

	resp, err := svc.Login(context.Background(), models.Credentials{Password: "simba2026"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleSuperAdmin, resp.User.Role)

	_, err = svc.Login(context.Background(), models.Credentials{Email: "admin@simba.test", Password: "nope"})
	assert.Equal(t, 401, utils.StatusFor(err))
}
