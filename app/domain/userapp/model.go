package userapp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/app/sdk/errs"
	"github.com/jcpaschoal/smartroom/business/domain/userbus"
	"github.com/jcpaschoal/smartroom/business/types/name"
	"github.com/jcpaschoal/smartroom/business/types/password"
	"github.com/jcpaschoal/smartroom/business/types/role"
)

// =============================================================================
// User (Output)
// =============================================================================

// User represents information about an individual user.
type User struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenantId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Enabled     bool   `json:"enabled"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (u User) Encode() ([]byte, string, error) {
	data, err := json.Marshal(u)
	return data, "application/json", err
}

func toAppUser(bus userbus.User) User {
	return User{
		ID:          bus.ID.String(),
		TenantID:    bus.TenantID.String(),
		Name:        bus.Name.String(),
		Email:       bus.Email.Address,
		Role:        bus.Role.String(),
		Enabled:     bus.Enabled,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppUsers(users []userbus.User) []User {
	app := make([]User, len(users))
	for i, usr := range users {
		app[i] = toAppUser(usr)
	}
	return app
}

// createdUser wraps a user so the response carries 201.
type createdUser struct {
	User
}

// HTTPStatus implements the web package httpStatus interface.
func (createdUser) HTTPStatus() int {
	return http.StatusCreated
}

// =============================================================================
// NewUser (Input)
// =============================================================================

// NewUser defines the data needed to add a new user.
type NewUser struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Role            string `json:"role" validate:"required"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"passwordConfirm" validate:"eqfield=Password"`
}

// Decode implements the web.Decoder interface.
func (app *NewUser) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewUser) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

func toBusNewUser(app NewUser, tenantID uuid.UUID) (userbus.NewUser, error) {
	var fieldErrors errs.FieldErrors

	rle, err := role.Parse(app.Role)
	if err != nil {
		fieldErrors.Add("role", err)
	}

	addr, err := mail.ParseAddress(app.Email)
	if err != nil {
		fieldErrors.Add("email", err)
	}

	nme, err := name.Parse(app.Name)
	if err != nil {
		fieldErrors.Add("name", err)
	}

	pass, err := password.ParseConfirm(app.Password, app.PasswordConfirm)
	if err != nil {
		fieldErrors.Add("password", err)
	}

	if fieldErrors != nil {
		return userbus.NewUser{}, fmt.Errorf("validate: %w", fieldErrors)
	}

	bus := userbus.NewUser{
		TenantID: tenantID,
		Name:     nme,
		Email:    *addr,
		Role:     rle,
		Password: pass,
	}

	return bus, nil
}

// =============================================================================
// UpdateUser (Input)
// =============================================================================

// UpdateUser defines the data an admin may change on a user.
type UpdateUser struct {
	Name            *string `json:"name"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Role            *string `json:"role"`
	Password        *string `json:"password"`
	PasswordConfirm *string `json:"passwordConfirm" validate:"omitempty,eqfield=Password"`
	Enabled         *bool   `json:"enabled"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateUser) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateUser) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

func toBusUpdateUser(app UpdateUser) (userbus.UpdateUser, error) {
	var fieldErrors errs.FieldErrors
	var bus userbus.UpdateUser

	if app.Email != nil {
		addr, err := mail.ParseAddress(*app.Email)
		switch err {
		case nil:
			bus.Email = addr
		default:
			fieldErrors.Add("email", err)
		}
	}

	if app.Name != nil {
		nme, err := name.Parse(*app.Name)
		switch err {
		case nil:
			bus.Name = &nme
		default:
			fieldErrors.Add("name", err)
		}
	}

	if app.Role != nil {
		rle, err := role.Parse(*app.Role)
		switch err {
		case nil:
			bus.Role = &rle
		default:
			fieldErrors.Add("role", err)
		}
	}

	if app.Password != nil {
		pass, err := password.Parse(*app.Password)
		switch err {
		case nil:
			bus.Password = &pass
		default:
			fieldErrors.Add("password", err)
		}
	}

	if fieldErrors != nil {
		return userbus.UpdateUser{}, fmt.Errorf("validate: %w", fieldErrors)
	}

	bus.Enabled = app.Enabled

	return bus, nil
}
