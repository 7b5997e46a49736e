// Package analyticsdb contains the aggregation queries for analytics.
package analyticsdb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/domain/analyticsbus"
	"github.com/jcpaschoal/smartroom/business/sdk/sqldb"
	"github.com/jcpaschoal/smartroom/business/types/clock"
	"github.com/jcpaschoal/smartroom/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for analytics database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// Totals returns the headline counters for the tenant.
func (s *Store) Totals(ctx context.Context, tenantID uuid.UUID, today clock.Date) (analyticsbus.Totals, error) {
	data := map[string]any{
		"tenant_id": tenantID,
		"today":     today.Time(),
	}

	const q = `
	SELECT
		(SELECT count(1) FROM rooms WHERE tenant_id = :tenant_id) AS total_rooms,
		(SELECT count(1) FROM users WHERE tenant_id = :tenant_id) AS total_users,
		(SELECT count(1) FROM bookings WHERE tenant_id = :tenant_id) AS total_bookings,
		(SELECT count(1) FROM bookings WHERE tenant_id = :tenant_id AND booking_date = :today AND status = 'confirmed') AS active_bookings_today`

	var dbTotals struct {
		Rooms    int `db:"total_rooms"`
		Users    int `db:"total_users"`
		Bookings int `db:"total_bookings"`
		Today    int `db:"active_bookings_today"`
	}

	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbTotals); err != nil {
		return analyticsbus.Totals{}, fmt.Errorf("namedquerystruct: %w", err)
	}

	totals := analyticsbus.Totals{
		Rooms:               dbTotals.Rooms,
		Users:               dbTotals.Users,
		Bookings:            dbTotals.Bookings,
		ActiveBookingsToday: dbTotals.Today,
	}

	return totals, nil
}

// BookingsByRoom returns the confirmed booking count of every room in the
// tenant, busiest first.
func (s *Store) BookingsByRoom(ctx context.Context, tenantID uuid.UUID) ([]analyticsbus.RoomCount, error) {
	data := map[string]any{
		"tenant_id": tenantID,
	}

	const q = `
	SELECT
		r.room_id, r.name, count(b.booking_id) AS bookings
	FROM
		rooms AS r
	LEFT JOIN
		bookings AS b ON b.room_id = r.room_id AND b.status = 'confirmed'
	WHERE
		r.tenant_id = :tenant_id
	GROUP BY
		r.room_id, r.name
	ORDER BY
		bookings DESC, r.name`

	var rows []struct {
		RoomID   uuid.UUID `db:"room_id"`
		Name     string    `db:"name"`
		Bookings int       `db:"bookings"`
	}

	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &rows); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	counts := make([]analyticsbus.RoomCount, len(rows))
	for i, r := range rows {
		counts[i] = analyticsbus.RoomCount{
			RoomID:   r.RoomID,
			RoomName: r.Name,
			Count:    r.Bookings,
		}
	}

	return counts, nil
}

// BookingsByDay returns the confirmed booking count per date within the
// inclusive window. Dates without bookings are omitted.
func (s *Store) BookingsByDay(ctx context.Context, tenantID uuid.UUID, from clock.Date, to clock.Date) ([]analyticsbus.DayCount, error) {
	data := map[string]any{
		"tenant_id": tenantID,
		"from_date": from.Time(),
		"to_date":   to.Time(),
	}

	const q = `
	SELECT
		booking_date, count(1) AS bookings
	FROM
		bookings
	WHERE
		tenant_id = :tenant_id AND
		status = 'confirmed' AND
		booking_date BETWEEN :from_date AND :to_date
	GROUP BY
		booking_date
	ORDER BY
		booking_date`

	var rows []struct {
		Date     time.Time `db:"booking_date"`
		Bookings int       `db:"bookings"`
	}

	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &rows); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	counts := make([]analyticsbus.DayCount, len(rows))
	for i, r := range rows {
		counts[i] = analyticsbus.DayCount{
			Date:  clock.DateOf(r.Date),
			Count: r.Bookings,
		}
	}

	return counts, nil
}
