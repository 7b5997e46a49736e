package bookingapp

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/app/sdk/errs"
	"github.com/jcpaschoal/smartroom/business/domain/bookingbus"
	"github.com/jcpaschoal/smartroom/business/types/clock"
	"github.com/jcpaschoal/smartroom/business/types/status"
)

type queryParams struct {
	Page      string
	Rows      string
	OrderBy   string
	ID        string
	RoomID    string
	UserID    string
	Status    string
	StartDate string
	EndDate   string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:      values.Get("page"),
		Rows:      values.Get("rows"),
		OrderBy:   values.Get("orderBy"),
		ID:        values.Get("booking_id"),
		RoomID:    values.Get("room_id"),
		UserID:    values.Get("user_id"),
		Status:    values.Get("status"),
		StartDate: values.Get("start_date"),
		EndDate:   values.Get("end_date"),
	}
}

func parseFilter(qp queryParams, tenantID uuid.UUID) (bookingbus.QueryFilter, *errs.Error) {
	var fieldErrors errs.FieldErrors
	filter := bookingbus.QueryFilter{
		TenantID: &tenantID,
	}

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("booking_id", err)
		}
	}

	if qp.RoomID != "" {
		id, err := uuid.Parse(qp.RoomID)
		switch err {
		case nil:
			filter.RoomID = &id
		default:
			fieldErrors.Add("room_id", err)
		}
	}

	if qp.UserID != "" {
		id, err := uuid.Parse(qp.UserID)
		switch err {
		case nil:
			filter.UserID = &id
		default:
			fieldErrors.Add("user_id", err)
		}
	}

	if qp.Status != "" {
		st, err := status.Parse(qp.Status)
		switch err {
		case nil:
			filter.Status = &st
		default:
			fieldErrors.Add("status", err)
		}
	}

	if qp.StartDate != "" {
		d, err := clock.ParseDate(qp.StartDate)
		switch err {
		case nil:
			filter.StartDate = &d
		default:
			fieldErrors.Add("start_date", err)
		}
	}

	if qp.EndDate != "" {
		d, err := clock.ParseDate(qp.EndDate)
		switch err {
		case nil:
			filter.EndDate = &d
		default:
			fieldErrors.Add("end_date", err)
		}
	}

	if fieldErrors != nil {
		return bookingbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}

// parseScope reads the room, date and interval of an availability check.
func parseScope(r *http.Request, tenantID uuid.UUID) (bookingbus.Scope, clock.Range, *errs.Error) {
	values := r.URL.Query()

	var fieldErrors errs.FieldErrors

	roomID, err := uuid.Parse(values.Get("room_id"))
	if err != nil {
		fieldErrors.Add("room_id", err)
	}

	date, err := clock.ParseDate(values.Get("date"))
	if err != nil {
		fieldErrors.Add("date", err)
	}

	start, err := clock.ParseTime(values.Get("start"))
	if err != nil {
		fieldErrors.Add("start", err)
	}

	end, err := clock.ParseTime(values.Get("end"))
	if err != nil {
		fieldErrors.Add("end", err)
	}

	if fieldErrors != nil {
		return bookingbus.Scope{}, clock.Range{}, fieldErrors.ToError()
	}

	rng, err := clock.NewRange(start, end)
	if err != nil {
		return bookingbus.Scope{}, clock.Range{}, errs.New(errs.InvalidArgument, bookingbus.ErrInvalidTimeRange)
	}

	scope := bookingbus.Scope{
		TenantID: tenantID,
		RoomID:   roomID,
		Date:     date,
	}

	return scope, rng, nil
}
