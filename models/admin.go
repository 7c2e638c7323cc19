package models

import "time"

// Back-office roles, lowest to highest privilege.
const (
	RoleStaff      = "staff"
	RoleManager    = "manager"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// AdminUser is a back-office operator account.
type AdminUser struct {
	ID            string     `bson:"_id" json:"id"`
	Email         string     `bson:"email" json:"email"`
	PasswordHash  string     `bson:"passwordHash" json:"-"`
	Name          string     `bson:"name" json:"name"`
	Role          string     `bson:"role" json:"role"`
	IsActive      bool       `bson:"isActive" json:"isActive"`
	LastLogin     *time.Time `bson:"lastLogin" json:"lastLogin"`
	LoginAttempts int        `bson:"loginAttempts" json:"loginAttempts"`
	LockUntil     *time.Time `bson:"lockUntil" json:"lockUntil"`
	CreatedAt     time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// IsLocked reports whether the account is inside a lockout window at now.
func (a *AdminUser) IsLocked(now time.Time) bool {
	return a.LockUntil != nil && a.LockUntil.After(now)
}
