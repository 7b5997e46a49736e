// Package analyticsbus provides read-only aggregation over the rooms, users
// and bookings of a tenant.
package analyticsbus

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/types/clock"
	"github.com/jcpaschoal/smartroom/foundation/otel"
)

// ErrInvalidWindow is returned when the requested number of days is out of
// bounds.
var ErrInvalidWindow = errors.New("window must be between 1 and 90 days")

// MaxWindowDays bounds the per day breakdown.
const MaxWindowDays = 90

// Storer interface declares the behavior this package needs to retrieve data.
type Storer interface {
	Totals(ctx context.Context, tenantID uuid.UUID, today clock.Date) (Totals, error)
	BookingsByRoom(ctx context.Context, tenantID uuid.UUID) ([]RoomCount, error)
	BookingsByDay(ctx context.Context, tenantID uuid.UUID, from clock.Date, to clock.Date) ([]DayCount, error)
}

// Core manages the set of APIs for analytics access.
type Core struct {
	storer Storer
}

// NewCore constructs an analytics core API for use.
func NewCore(storer Storer) *Core {
	return &Core{
		storer: storer,
	}
}

// Summary aggregates the tenant's counters. The per day breakdown covers the
// window of days ending on today and carries a zero entry for every day
// without bookings.
func (c *Core) Summary(ctx context.Context, tenantID uuid.UUID, today clock.Date, days int) (Summary, error) {
	ctx, span := otel.AddSpan(ctx, "business.analyticsbus.summary")
	defer span.End()

	if days < 1 || days > MaxWindowDays {
		return Summary{}, fmt.Errorf("summary: days[%d]: %w", days, ErrInvalidWindow)
	}

	totals, err := c.storer.Totals(ctx, tenantID, today)
	if err != nil {
		return Summary{}, fmt.Errorf("totals: %w", err)
	}

	byRoom, err := c.storer.BookingsByRoom(ctx, tenantID)
	if err != nil {
		return Summary{}, fmt.Errorf("bookingsbyroom: %w", err)
	}

	from := today.AddDays(-(days - 1))

	counted, err := c.storer.BookingsByDay(ctx, tenantID, from, today)
	if err != nil {
		return Summary{}, fmt.Errorf("bookingsbyday: %w", err)
	}

	perDay := make(map[string]int, len(counted))
	for _, dc := range counted {
		perDay[dc.Date.String()] = dc.Count
	}

	byDay := make([]DayCount, days)
	for i := range days {
		d := from.AddDays(i)
		byDay[i] = DayCount{
			Date:  d,
			Count: perDay[d.String()],
		}
	}

	sum := Summary{
		Totals:         totals,
		BookingsByRoom: byRoom,
		BookingsByDay:  byDay,
	}

	return sum, nil
}
