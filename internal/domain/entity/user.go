package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents the role of a user in the system.
type UserRole string

const (
	UserRoleAdministrator UserRole = "administrator"
	UserRoleManager       UserRole = "manager"
	UserRoleAgent         UserRole = "agent"
	UserRoleViewer        UserRole = "viewer"
)

// CanManagePayments reports whether the role is allowed to change a
// contract's payment status.
func (r UserRole) CanManagePayments() bool {
	return r == UserRoleAdministrator || r == UserRoleManager
}

// UserProfile represents an authenticated user of the system.
// User management itself is handled externally; this service only reads
// profiles to resolve roles.
type UserProfile struct {
	ID        uuid.UUID
	Email     string
	FullName  string
	Role      UserRole
	CreatedAt time.Time
	UpdatedAt time.Time
}
