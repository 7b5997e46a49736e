package userbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/types/name"
	"github.com/jcpaschoal/smartroom/business/types/password"
	"github.com/jcpaschoal/smartroom/business/types/role"
)

// User represents an individual user. Every user belongs to exactly one
// tenant.
type User struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	Name         name.Name
	Email        mail.Address
	Role         role.Role
	PasswordHash []byte
	Enabled      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser contains information needed to create a new user.
type NewUser struct {
	TenantID uuid.UUID
	Name     name.Name
	Email    mail.Address
	Role     role.Role
	Password password.Password
}

// UpdateUser contains information needed to update a user.
type UpdateUser struct {
	Name     *name.Name
	Email    *mail.Address
	Role     *role.Role
	Password *password.Password
	Enabled  *bool
}
