// Package roomdb contains room related CRUD functionality.
package roomdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/domain/roombus"
	"github.com/jcpaschoal/smartroom/business/sdk/order"
	"github.com/jcpaschoal/smartroom/business/sdk/page"
	"github.com/jcpaschoal/smartroom/business/sdk/sqldb"
	"github.com/jcpaschoal/smartroom/foundation/logger"
	"github.com/jmoiron/sqlx"
)

// Store manages the set of APIs for room database access.
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
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (roombus.Storer, error) {
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

// Create inserts a new room into the database.
func (s *Store) Create(ctx context.Context, rm roombus.Room) error {
	const q = `
	INSERT INTO rooms
		(room_id, tenant_id, name, description, capacity, floor, building, active, created_at, updated_at)
	VALUES
		(:room_id, :tenant_id, :name, :description, :capacity, :floor, :building, :active, :created_at, :updated_at)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBRoom(rm)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) && dupErr.Column == "uq_room_name" {
			return fmt.Errorf("namedexeccontext: %w", roombus.ErrUniqueName)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a room document in the database.
func (s *Store) Update(ctx context.Context, rm roombus.Room) error {
	const q = `
	UPDATE
		rooms
	SET
		name = :name,
		description = :description,
		capacity = :capacity,
		floor = :floor,
		building = :building,
		active = :active,
		updated_at = :updated_at
	WHERE
		room_id = :room_id`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBRoom(rm)); err != nil {
		var dupErr sqldb.ErrDBDuplicatedEntry
		if errors.As(err, &dupErr) && dupErr.Column == "uq_room_name" {
			return fmt.Errorf("namedexeccontext: %w", roombus.ErrUniqueName)
		}
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Query retrieves a list of existing rooms from the database.
func (s *Store) Query(ctx context.Context, filter roombus.QueryFilter, orderBy order.By, page page.Page) ([]roombus.Room, error) {
	data := map[string]any{
		"offset":        page.Offset(),
		"rows_per_page": page.RowsPerPage(),
	}

	const q = `
	SELECT
		room_id, tenant_id, name, description, capacity, floor, building, active, created_at, updated_at
	FROM
		rooms`

	buf := bytes.NewBufferString(q)
	applyFilter(filter, data, buf)

	orderByClause, err := orderByClause(orderBy)
	if err != nil {
		return nil, err
	}

	buf.WriteString(orderByClause)
	buf.WriteString(" OFFSET :offset ROWS FETCH NEXT :rows_per_page ROWS ONLY")

	var dbRooms []roomDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbRooms); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusRooms(dbRooms)
}

// Count returns the total number of rooms in the DB.
func (s *Store) Count(ctx context.Context, filter roombus.QueryFilter) (int, error) {
	data := map[string]any{}

	const q = `
	SELECT
		count(1)
	FROM
		rooms`

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

// QueryByID gets the specified room from the database.
func (s *Store) QueryByID(ctx context.Context, roomID uuid.UUID) (roombus.Room, error) {
	data := struct {
		ID string `db:"room_id"`
	}{
		ID: roomID.String(),
	}

	const q = `
	SELECT
		room_id, tenant_id, name, description, capacity, floor, building, active, created_at, updated_at
	FROM
		rooms
	WHERE
		room_id = :room_id`

	var dbRoom roomDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbRoom); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return roombus.Room{}, fmt.Errorf("db: %w", roombus.ErrNotFound)
		}
		return roombus.Room{}, fmt.Errorf("db: %w", err)
	}

	return toBusRoom(dbRoom)
}
