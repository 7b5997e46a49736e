package authapp

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jcpaschoal/smartroom/app/sdk/errs"
	"github.com/jcpaschoal/smartroom/business/domain/userbus"
)

// Token is the login payload returned to the client.
type Token struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	TenantID string `json:"tenantId"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	status   int
}

// Encode implements the web.Encoder interface.
func (t Token) Encode() ([]byte, string, error) {
	data, err := json.Marshal(t)
	return data, "application/json", err
}

// HTTPStatus implements the web package httpStatus interface.
func (t Token) HTTPStatus() int {
	if t.status == 0 {
		return http.StatusOK
	}
	return t.status
}

func toAppToken(token string, usr userbus.User) Token {
	return Token{
		Token:    token,
		UserID:   usr.ID.String(),
		TenantID: usr.TenantID.String(),
		Role:     usr.Role.String(),
		Email:    usr.Email.Address,
	}
}

// =============================================================================

// Login defines the credentials needed to obtain a token.
type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *Login) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app Login) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// =============================================================================

// Register defines the data needed for self sign-up into an existing tenant.
type Register struct {
	TenantSlug      string `json:"tenantSlug" validate:"required"`
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// Decode implements the web.Decoder interface.
func (app *Register) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app Register) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}
