package userapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/app/sdk/errs"
	"github.com/jcpaschoal/smartroom/app/sdk/mid"
	"github.com/jcpaschoal/smartroom/app/sdk/query"
	"github.com/jcpaschoal/smartroom/business/domain/userbus"
	"github.com/jcpaschoal/smartroom/business/sdk/order"
	"github.com/jcpaschoal/smartroom/business/sdk/page"
	"github.com/jcpaschoal/smartroom/business/sdk/web"
)

// app manages the set of app layer api functions for the user domain.
type app struct {
	userBus *userbus.Core
}

func newApp(userBus *userbus.Core) *app {
	return &app{
		userBus: userBus,
	}
}

// newWithTx returns a user core bound to the request transaction when one
// was started by the route.
func (a *app) newWithTx(ctx context.Context) (*userbus.Core, error) {
	tx, err := mid.GetTran(ctx)
	if err != nil {
		return a.userBus, nil
	}

	return a.userBus.NewWithTx(tx)
}

// create adds a new user to the caller's tenant.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewUser
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	nu, err := toBusNewUser(app, tenantID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	userBus, err := a.newWithTx(ctx)
	if err != nil {
		return errs.Errorf(errs.Internal, "newwithtx: %s", err)
	}

	usr, err := userBus.Create(ctx, nu)
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, userbus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: email[%s]: %s", nu.Email.Address, err)
	}

	return createdUser{User: toAppUser(usr)}
}

// update lets an admin change a user of the same tenant, including the role
// and the enabled flag.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateUser
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	uu, err := toBusUpdateUser(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	usr, appErr := a.queryTenantUser(ctx, r)
	if appErr != nil {
		return appErr
	}

	updUsr, err := a.userBus.Update(ctx, usr, uu)
	if err != nil {
		if errors.Is(err, userbus.ErrUniqueEmail) {
			return errs.New(errs.Aborted, userbus.ErrUniqueEmail)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: userID[%s]: %s", usr.ID, err)
	}

	return toAppUser(updUsr)
}

// query returns a list of users of the caller's tenant with paging.
func (a *app) query(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	page, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	filter, fieldErr := parseFilter(qp, tenantID)
	if fieldErr != nil {
		return fieldErr
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, userbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	usrs, err := a.userBus.Query(ctx, filter, orderBy, page)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.userBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppUsers(usrs), total, page)
}

// queryByID returns a user of the caller's tenant.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	usr, appErr := a.queryTenantUser(ctx, r)
	if appErr != nil {
		return appErr
	}

	return toAppUser(usr)
}

// queryTenantUser loads the user named in the path. A user of another tenant
// is reported as not found.
func (a *app) queryTenantUser(ctx context.Context, r *http.Request) (userbus.User, *errs.Error) {
	userID, err := uuid.Parse(web.Param(r, "user_id"))
	if err != nil {
		return userbus.User{}, errs.NewFieldErrors("user_id", err)
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return userbus.User{}, errs.New(errs.Unauthenticated, err)
	}

	usr, err := a.userBus.QueryByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userbus.ErrNotFound) {
			return userbus.User{}, errs.New(errs.NotFound, userbus.ErrNotFound)
		}
		return userbus.User{}, errs.Errorf(errs.Internal, "querybyid: userID[%s]: %s", userID, err)
	}

	if usr.TenantID != tenantID {
		return userbus.User{}, errs.New(errs.NotFound, userbus.ErrNotFound)
	}

	return usr, nil
}
