// Package roomapp maintains the app layer api for the room domain.
package roomapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/app/sdk/errs"
	"github.com/jcpaschoal/smartroom/app/sdk/mid"
	"github.com/jcpaschoal/smartroom/app/sdk/query"
	"github.com/jcpaschoal/smartroom/business/domain/roombus"
	"github.com/jcpaschoal/smartroom/business/sdk/order"
	"github.com/jcpaschoal/smartroom/business/sdk/page"
	"github.com/jcpaschoal/smartroom/business/sdk/web"
)

type app struct {
	roomBus *roombus.Core
}

func newApp(roomBus *roombus.Core) *app {
	return &app{
		roomBus: roomBus,
	}
}

func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var app NewRoom
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	nr, err := toBusNewRoom(app, tenantID)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	rm, err := a.roomBus.Create(ctx, nr)
	if err != nil {
		switch {
		case errors.Is(err, roombus.ErrUniqueName):
			return errs.New(errs.Aborted, roombus.ErrUniqueName)
		case errors.Is(err, roombus.ErrInvalidCapacity):
			return errs.NewFieldErrors("capacity", roombus.ErrInvalidCapacity)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: name[%s]: %s", nr.Name, err)
	}

	return createdRoom{Room: toAppRoom(rm)}
}

func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var app UpdateRoom
	if err := web.Decode(r, &app); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	ur, err := toBusUpdateRoom(app)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	rm, appErr := a.queryTenantRoom(ctx, r)
	if appErr != nil {
		return appErr
	}

	updRoom, err := a.roomBus.Update(ctx, rm, ur)
	if err != nil {
		switch {
		case errors.Is(err, roombus.ErrUniqueName):
			return errs.New(errs.Aborted, roombus.ErrUniqueName)
		case errors.Is(err, roombus.ErrInvalidCapacity):
			return errs.NewFieldErrors("capacity", roombus.ErrInvalidCapacity)
		}
		return errs.Errorf(errs.InternalOnlyLog, "update: roomID[%s]: %s", rm.ID, err)
	}

	return toAppRoom(updRoom)
}

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

	orderBy, err := order.Parse(orderByFields, qp.OrderBy, roombus.DefaultOrderBy)
	if err != nil {
		return errs.NewFieldErrors("order", err)
	}

	rooms, err := a.roomBus.Query(ctx, filter, orderBy, page)
	if err != nil {
		return errs.Errorf(errs.Internal, "query: %s", err)
	}

	total, err := a.roomBus.Count(ctx, filter)
	if err != nil {
		return errs.Errorf(errs.Internal, "count: %s", err)
	}

	return query.NewResult(toAppRooms(rooms), total, page)
}

func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	rm, appErr := a.queryTenantRoom(ctx, r)
	if appErr != nil {
		return appErr
	}

	return toAppRoom(rm)
}

func (a *app) queryTenantRoom(ctx context.Context, r *http.Request) (roombus.Room, *errs.Error) {
	roomID, err := uuid.Parse(web.Param(r, "room_id"))
	if err != nil {
		return roombus.Room{}, errs.NewFieldErrors("room_id", err)
	}

	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return roombus.Room{}, errs.New(errs.Unauthenticated, err)
	}

	rm, err := a.roomBus.QueryByID(ctx, tenantID, roomID)
	if err != nil {
		if errors.Is(err, roombus.ErrNotFound) {
			return roombus.Room{}, errs.New(errs.NotFound, roombus.ErrNotFound)
		}
		return roombus.Room{}, errs.Errorf(errs.Internal, "querybyid: roomID[%s]: %s", roomID, err)
	}

	return rm, nil
}
