package roomdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/domain/roombus"
	"github.com/jcpaschoal/smartroom/business/types/name"
)

type roomDB struct {
	ID          uuid.UUID      `db:"room_id"`
	TenantID    uuid.UUID      `db:"tenant_id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Capacity    int            `db:"capacity"`
	Floor       sql.NullString `db:"floor"`
	Building    sql.NullString `db:"building"`
	Active      bool           `db:"active"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func toDBRoom(bus roombus.Room) roomDB {
	return roomDB{
		ID:       bus.ID,
		TenantID: bus.TenantID,
		Name:     bus.Name.String(),
		Description: sql.NullString{
			String: bus.Description,
			Valid:  bus.Description != "",
		},
		Capacity:  bus.Capacity,
		Floor:     name.ToSQLNullString(bus.Floor),
		Building:  name.ToSQLNullString(bus.Building),
		Active:    bus.Active,
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusRoom(db roomDB) (roombus.Room, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return roombus.Room{}, fmt.Errorf("parse name: %w", err)
	}

	floor, err := name.ParseNull(db.Floor.String)
	if err != nil {
		return roombus.Room{}, fmt.Errorf("parse floor: %w", err)
	}

	building, err := name.ParseNull(db.Building.String)
	if err != nil {
		return roombus.Room{}, fmt.Errorf("parse building: %w", err)
	}

	bus := roombus.Room{
		ID:          db.ID,
		TenantID:    db.TenantID,
		Name:        nme,
		Description: db.Description.String,
		Capacity:    db.Capacity,
		Floor:       floor,
		Building:    building,
		Active:      db.Active,
		CreatedAt:   db.CreatedAt.In(time.Local),
		UpdatedAt:   db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusRooms(dbs []roomDB) ([]roombus.Room, error) {
	bus := make([]roombus.Room, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusRoom(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
