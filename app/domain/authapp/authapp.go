package authapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/jcpaschoal/smartroom/app/sdk/auth"
	"github.com/jcpaschoal/smartroom/app/sdk/errs"
	"github.com/jcpaschoal/smartroom/app/sdk/metrics"
	"github.com/jcpaschoal/smartroom/business/domain/tenantbus"
	"github.com/jcpaschoal/smartroom/business/domain/userbus"
	"github.com/jcpaschoal/smartroom/business/sdk/web"
	"github.com/jcpaschoal/smartroom/business/types/name"
	"github.com/jcpaschoal/smartroom/business/types/password"
	"github.com/jcpaschoal/smartroom/business/types/role"
)

type app struct {
	auth      *auth.Auth
	tenantBus *tenantbus.Core
	userBus   *userbus.Core
}

func newApp(auth *auth.Auth, tenantBus *tenantbus.Core, userBus *userbus.Core) *app {
	return &app{
		auth:      auth,
		tenantBus: tenantBus,
		userBus:   userBus,
	}
}

func (a *app) login(ctx context.Context, r *http.Request) web.Encoder {
	var req Login
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	addr, err := mail.ParseAddress(req.Email)
	if err != nil {
		return errs.NewFieldErrors("email", err)
	}

	usr, err := a.auth.Login(ctx, *addr, req.Password)
	if err != nil {
		metrics.AddLogin(ctx, false)

		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return errs.New(errs.Unauthenticated, auth.ErrInvalidCredentials)
		case errors.Is(err, auth.ErrAccountInactive):
			return errs.New(errs.PermissionDenied, auth.ErrAccountInactive)
		}
		return errs.Errorf(errs.Internal, "login: %s", err)
	}

	metrics.AddLogin(ctx, true)

	tokenStr, err := a.auth.GenerateToken(usr)
	if err != nil {
		return errs.Errorf(errs.Internal, "generatetoken: %s", err)
	}

	return toAppToken(tokenStr, usr)
}

// register creates a USER account in the tenant named by the slug and logs
// the new user in.
func (a *app) register(ctx context.Context, r *http.Request) web.Encoder {
	var req Register
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	nu, err := toBusNewUser(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tnt, err := a.tenantBus.QueryBySlug(ctx, req.TenantSlug)
	if err != nil {
		if errors.Is(err, tenantbus.ErrNotFound) {
			return errs.New(errs.NotFound, tenantbus.ErrNotFound)
		}
		return errs.Errorf(errs.Internal, "querybyslug: %s", err)
	}

	if !tnt.Enabled {
		return errs.New(errs.PermissionDenied, tenantbus.ErrDisabled)
	}

	nu.TenantID = tnt.ID

	usr, err := a.userBus.Create(ctx, nu)
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, userbus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: email[%s]: %s", nu.Email.Address, err)
	}

	tokenStr, err := a.auth.GenerateToken(usr)
	if err != nil {
		return errs.Errorf(errs.Internal, "generatetoken: %s", err)
	}

	tkn := toAppToken(tokenStr, usr)
	tkn.status = http.StatusCreated

	return tkn
}

func toBusNewUser(req Register) (userbus.NewUser, error) {
	var fieldErrors errs.FieldErrors

	addr, err := mail.ParseAddress(req.Email)
	if err != nil {
		fieldErrors.Add("email", err)
	}

	nme, err := name.Parse(req.Name)
	if err != nil {
		fieldErrors.Add("name", err)
	}

	pass, err := password.ParseConfirm(req.Password, req.PasswordConfirm)
	if err != nil {
		fieldErrors.Add("password", err)
	}

	if fieldErrors != nil {
		return userbus.NewUser{}, fmt.Errorf("validate: %w", fieldErrors)
	}

	nu := userbus.NewUser{
		Name:     nme,
		Email:    *addr,
		Role:     role.User,
		Password: pass,
	}

	return nu, nil
}
