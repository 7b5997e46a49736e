// Package bookingapp maintains the app layer api for the booking domain.
package bookingapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/app/sdk/errs"
	"github.com/jcpaschoal/smartroom/app/sdk/mid"
	"github.com/jcpaschoal/smartroom/app/sdk/query"
	"github.com/jcpaschoal/smartroom/business/domain/aclbus"
	"github.com/jcpaschoal/smartroom/business/domain/bookingbus"
	"github.com/jcpaschoal/smartroom/business/sdk/order"
	"github.com/jcpaschoal/smartroom/business/sdk/page"
	"github.com/jcpaschoal/smartroom/business/sdk/web"
	"github.com/jcpaschoal/smartroom/business/types/actions"
	"github.com/jcpaschoal/smartroom/business/types/resource"
)

type app struct {
	bookingBus *bookingbus.Core
	acl        *aclbus.Core
}

func newApp(bookingBus *bookingbus.Core, acl *aclbus.Core) *app {
	return &app{
		bookingBus: bookingBus,
		acl:        acl,
	}
}

// identity is the caller as recovered from the token.
type identity struct {
	userID   uuid.UUID
	tenantID uuid.UUID
	manager  bool
}

func (a *app) identity(ctx context.Context) (identity, *errs.Error) {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return identity{}, errs.New(errs.Unauthenticated, err)
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return identity{}, errs.New(errs.Unauthenticated, err)
	}

	rle, err := mid.GetRole(ctx)
	if err != nil {
		return identity{}, errs.New(errs.Unauthenticated, err)
	}

	id := identity{
		userID:   userID,
		tenantID: tenantID,
		manager:  a.acl.Authorize(ctx, rle, resource.Booking, actions.Manage) == nil,
	}

	return id, nil
}

// admit runs the admission engine for the caller.
func (a *app) admit(ctx context.Context, r *http.Request) web.Encoder {
	var app NewBooking
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	id, appErr := a.identity(ctx)
	if appErr != nil {
		return appErr
	}

	nb, err := toBusNewBooking(app, id.tenantID, id.userID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	bkg, err := a.bookingBus.Admit(ctx, nb)
	if err != nil {
		return toAppError(err)
	}

	return admittedBooking{Booking: toAppBooking(bkg)}
}

// queryMine returns the caller's own bookings.
func (a *app) queryMine(ctx context.Context, r *http.Request) web.Encoder {
	qp := parseQueryParams(r)

	id, appErr := a.identity(ctx)
	if appErr != nil {
		return appErr
	}

	page, err := page.Parse(qp.Page, qp.Rows)
	if err != nil {
		return errs.NewFieldErrors("page", err)
	}

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, bookingbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	bkgs, err := a.bookingBus.QueryByUser(ctx, id.tenantID, id.userID, orderBy, page)
	if err != nil {
		return errs.Errorf(errs.Internal, "querybyuser: %s", err)
	}

	total, err := a.bookingBus.Count(ctx, bookingbus.QueryFilter{TenantID: &id.tenantID, UserID: &id.userID})
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppBookings(bkgs), total, page)
}

// query returns every booking in the caller's tenant. Admin only.
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

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, bookingbus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	bkgs, err := a.bookingBus.Query(ctx, filter, orderBy, page)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.bookingBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppBookings(bkgs), total, page)
}

func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	bkg, appErr := a.queryVisible(ctx, r)
	if appErr != nil {
		return appErr
	}

	return toAppBooking(bkg)
}

func (a *app) cancel(ctx context.Context, r *http.Request) web.Encoder {
	bkg, appErr := a.queryVisible(ctx, r)
	if appErr != nil {
		return appErr
	}

	bkg, err := a.bookingBus.Cancel(ctx, bkg)
	if err != nil {
		return toAppError(err)
	}

	return toAppBooking(bkg)
}

// availability reports the confirmed bookings that would block the interval.
func (a *app) availability(ctx context.Context, r *http.Request) web.Encoder {
	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	scope, rng, fieldErr := parseScope(r, tenantID)
	if fieldErr != nil {
		return fieldErr
	}

	bkgs, err := a.bookingBus.FindOverlapping(ctx, scope, rng)
	if err != nil {
		return errs.Errorf(errs.Internal, "findoverlapping: %s", err)
	}

	return toAppSlots(scope, bkgs)
}

// queryVisible loads the booking named in the path. Users only see their own
// bookings, managers see the whole tenant. Anything else is not found.
func (a *app) queryVisible(ctx context.Context, r *http.Request) (bookingbus.Booking, *errs.Error) {
	bookingID, err := uuid.Parse(web.Param(r, "booking_id"))
	if err != nil {
		return bookingbus.Booking{}, errs.NewFieldErrors("booking_id", err)
	}

	id, appErr := a.identity(ctx)
	if appErr != nil {
		return bookingbus.Booking{}, appErr
	}

	bkg, err := a.bookingBus.QueryByID(ctx, id.tenantID, bookingID)
	if err != nil {
		return bookingbus.Booking{}, toAppError(err)
	}

	if !id.manager && bkg.UserID != id.userID {
		return bookingbus.Booking{}, errs.New(errs.NotFound, bookingbus.ErrNotFound)
	}

	return bkg, nil
}

func toAppError(err error) *errs.Error {
	switch {
	case errors.Is(err, bookingbus.ErrInvalidTimeRange):
		return errs.New(errs.InvalidArgument, bookingbus.ErrInvalidTimeRange)
	case errors.Is(err, bookingbus.ErrSlotConflict):
		return errs.New(errs.Aborted, bookingbus.ErrSlotConflict)
	case errors.Is(err, bookingbus.ErrRoomNotFound):
		return errs.New(errs.NotFound, bookingbus.ErrRoomNotFound)
	case errors.Is(err, bookingbus.ErrRoomInactive):
		return errs.New(errs.FailedPrecondition, bookingbus.ErrRoomInactive)
	case errors.Is(err, bookingbus.ErrNotFound):
		return errs.New(errs.NotFound, bookingbus.ErrNotFound)
	case errors.Is(err, bookingbus.ErrAlreadyCancelled):
		return errs.New(errs.Aborted, bookingbus.ErrAlreadyCancelled)
	}

	return errs.Errorf(errs.Internal, "booking: %s", err)
}
