package roomapp

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/app/sdk/errs"
	"github.com/jcpaschoal/smartroom/business/domain/roombus"
)

type queryParams struct {
	Page        string
	Rows        string
	OrderBy     string
	ID          string
	Name        string
	MinCapacity string
	Active      string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:        values.Get("page"),
		Rows:        values.Get("rows"),
		OrderBy:     values.Get("orderBy"),
		ID:          values.Get("room_id"),
		Name:        values.Get("name"),
		MinCapacity: values.Get("min_capacity"),
		Active:      values.Get("active"),
	}
}

func parseFilter(qp queryParams, tenantID uuid.UUID) (roombus.QueryFilter, *errs.Error) {
	var fieldErrors errs.FieldErrors
	filter := roombus.QueryFilter{
		TenantID: &tenantID,
	}

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("room_id", err)
		}
	}

	if qp.Name != "" {
		filter.Name = &qp.Name
	}

	if qp.MinCapacity != "" {
		n, err := strconv.Atoi(qp.MinCapacity)
		switch err {
		case nil:
			filter.MinCapacity = &n
		default:
			fieldErrors.Add("min_capacity", err)
		}
	}

	if qp.Active != "" {
		b, err := strconv.ParseBool(qp.Active)
		switch err {
		case nil:
			filter.Active = &b
		default:
			fieldErrors.Add("active", err)
		}
	}

	if fieldErrors != nil {
		return roombus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
