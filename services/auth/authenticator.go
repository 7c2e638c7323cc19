package auth

import (
	"time"

	"simba/models"
	"simba/utils"
)

// Token kinds.
const (
	KindAdmin    = "admin"
	KindCustomer = "customer"
)

// Actions checked by Authorize.
const (
	ActionPOSSale        = "pos:sale"
	ActionPOSRefund      = "pos:refund"
	ActionPOSRead        = "pos:read"
	ActionDashboardRead  = "dashboard:read"
	ActionBookingsRead   = "bookings:read"
	ActionBookingsWrite  = "bookings:write"
	ActionBookingsDelete = "bookings:delete"
	ActionToursWrite     = "tours:write"
	ActionToursDelete    = "tours:delete"
	ActionActivityRead   = "activity:read"
	ActionAnalyticsRead  = "analytics:read"
)

var roleRank = map[string]int{
	models.RoleStaff:      1,
	models.RoleManager:    2,
	models.RoleAdmin:      3,
	models.RoleSuperAdmin: 4,
}

// minimumRole lists the lowest role allowed to perform each action.
var minimumRole = map[string]string{
	ActionPOSSale:        models.RoleStaff,
	ActionPOSRead:        models.RoleStaff,
	ActionDashboardRead:  models.RoleStaff,
	ActionBookingsRead:   models.RoleStaff,
	ActionAnalyticsRead:  models.RoleStaff,
	ActionBookingsWrite:  models.RoleStaff,
	ActionPOSRefund:      models.RoleManager,
	ActionToursWrite:     models.RoleManager,
	ActionBookingsDelete: models.RoleManager,
	ActionToursDelete:    models.RoleAdmin,
	ActionActivityRead:   models.RoleAdmin,
}

// Principal is the verified identity behind a request.
type Principal struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	Role       string `json:"role,omitempty"`
	IsCustomer bool   `json:"-"`
}

// Authenticator verifies bearer tokens and decides what a principal may do.
type Authenticator interface {
	Verify(token string) (*Principal, error)
	Authorize(p *Principal, action string) bool
	IssueToken(p *Principal) (string, error)
}

// JWTAuthenticator signs and checks HS256 tokens.
type JWTAuthenticator struct {
	Secret      []byte
	AdminTTL    time.Duration
	CustomerTTL time.Duration
	Now         func() time.Time
}

func (a *JWTAuthenticator) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *JWTAuthenticator) IssueToken(p *Principal) (string, error) {
	kind, ttl := KindAdmin, a.AdminTTL
	if p.IsCustomer {
		kind, ttl = KindCustomer, a.CustomerTTL
	}
	return utils.GenerateToken(a.Secret, utils.TokenClaims{
		Subject: p.ID,
		Email:   p.Email,
		Name:    p.Name,
		Role:    p.Role,
		Kind:    kind,
	}, a.now(), ttl)
}

func (a *JWTAuthenticator) Verify(token string) (*Principal, error) {
	if token == "" {
		return nil, &utils.AuthError{Message: "Access denied"}
	}
	claims, err := utils.ValidateToken(a.Secret, token)
	if err != nil {
		return nil, &utils.AuthError{Message: "Invalid token"}
	}
	p := &Principal{
		ID:         claims.Subject,
		Email:      claims.Email,
		Name:       claims.Name,
		Role:       claims.Role,
		IsCustomer: claims.Kind == KindCustomer,
	}
	if !p.IsCustomer && roleRank[p.Role] == 0 {
		return nil, &utils.AuthError{Message: "Invalid token"}
	}
	return p, nil
}

// Authorize reports whether p may perform action. Customers hold no back-office rights.
func (a *JWTAuthenticator) Authorize(p *Principal, action string) bool {
	if p == nil || p.IsCustomer {
		return false
	}
	need, ok := minimumRole[action]
	if !ok {
		return false
	}
	return roleRank[p.Role] >= roleRank[need]
}
