// Package bookingdb contains booking related CRUD functionality.
package bookingdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/domain/bookingbus"
	"github.com/jcpaschoal/smartroom/business/sdk/order"
	"github.com/jcpaschoal/smartroom/business/sdk/page"
	"github.com/jcpaschoal/smartroom/business/sdk/sqldb"
	"github.com/jcpaschoal/smartroom/business/types/clock"
	"github.com/jcpaschoal/smartroom/foundation/logger"
	"github.com/jmoiron/sqlx"
)

const columns = `booking_id, tenant_id, room_id, user_id, title, booking_date, start_min, end_min, status, created_at, updated_at`

// Store manages the set of APIs for booking database access.
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

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (bookingbus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts a new booking into the database. The ex_booking_overlap
// exclusion constraint rejects a confirmed booking that overlaps another in
// the same scope, which covers writers in other processes.
func (s *Store) Create(ctx context.Context, bkg bookingbus.Booking) error {
	const q = `
	INSERT INTO bookings
		(booking_id, tenant_id, room_id, user_id, title, booking_date, start_min, end_min, status, created_at, updated_at)
	VALUES
		(:booking_id, :tenant_id, :room_id, :user_id, :title, :booking_date, :start_min, :end_min, :status, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBBooking(bkg)); err != nil {
		if errors.Is(err, sqldb.ErrExclusionViolated) {
			return fmt.Errorf("namedexeccontext: %w", bookingbus.ErrSlotConflict)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces the mutable fields of a booking that is still confirmed.
// When another writer already moved it out of confirmed no row matches and
// ErrAlreadyCancelled is returned.
func (s *Store) Update(ctx context.Context, bkg bookingbus.Booking) error {
	const q = `
	UPDATE
		bookings
	SET
		title = :title,
		status = :status,
		updated_at = :updated_at
	WHERE
		booking_id = :booking_id AND
		status = 'confirmed'`

	rows, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBBooking(bkg))
	if err != nil {
		if errors.Is(err, sqldb.ErrExclusionViolated) {
			return fmt.Errorf("namedexeccontext: %w", bookingbus.ErrSlotConflict)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update: bookingID[%s]: %w", bkg.ID, bookingbus.ErrAlreadyCancelled)
	}

	return nil
}

// QueryByID gets the specified booking from the database.
func (s *Store) QueryByID(ctx context.Context, bookingID uuid.UUID) (bookingbus.Booking, error) {
	data := struct {
		ID string `db:"booking_id"`
	}{
		ID: bookingID.String(),
	}

	const q = `
	SELECT
		` + columns + `
	FROM
		bookings
	WHERE
		booking_id = :booking_id`

	var dbBkg bookingDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbBkg); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return bookingbus.Booking{}, fmt.Errorf("db: %w", bookingbus.ErrNotFound)
		}
		return bookingbus.Booking{}, fmt.Errorf("db: %w", err)
	}

	return toBusBooking(dbBkg)
}

// QueryOverlapping returns the confirmed bookings in the scope whose interval
// overlaps the range. The lookup is served by idx_bookings_scope.
func (s *Store) QueryOverlapping(ctx context.Context, scope bookingbus.Scope, rng clock.Range) ([]bookingbus.Booking, error) {
	data := map[string]any{
		"tenant_id":    scope.TenantID,
		"room_id":      scope.RoomID,
		"booking_date": scope.Date.Time(),
		"start_min":    rng.Start.Minutes(),
		"end_min":      rng.End.Minutes(),
	}

	const q = `
	SELECT
		` + columns + `
	FROM
		bookings
	WHERE
		tenant_id = :tenant_id AND
		room_id = :room_id AND
		booking_date = :booking_date AND
		status = 'confirmed' AND
		start_min < :end_min AND
		:start_min < end_min
	ORDER BY
		start_min, booking_id`

	var dbBkgs []bookingDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbBkgs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusBookings(dbBkgs)
}

// Query retrieves a list of existing bookings from the database.
func (s *Store) Query(ctx context.Context, filter bookingbus.QueryFilter, orderBy order.By, page page.Page) ([]bookingbus.Booking, error) {
	data := map[string]any{
		"offset":        page.Offset(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		` + columns + `
	FROM
		bookings`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbBkgs []bookingDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbBkgs); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusBookings(dbBkgs)
}

// Count returns the total number of bookings in the DB.
func (s *Store) Count(ctx context.Context, filter bookingbus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		bookings`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	var count struct {
		Count int `db:"count"`
	}
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, buf.String(), data, &count); err != nil {
		return 0, fmt.Errorf("db: %w", err)
	}

	return count.Count, nil
}
