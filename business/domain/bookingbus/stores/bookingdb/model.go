package bookingdb

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/domain/bookingbus"
	"github.com/jcpaschoal/smartroom/business/types/clock"
	"github.com/jcpaschoal/smartroom/business/types/status"
)

type bookingDB struct {
	ID        uuid.UUID `db:"booking_id"`
	TenantID  uuid.UUID `db:"tenant_id"`
	RoomID    uuid.UUID `db:"room_id"`
	UserID    uuid.UUID `db:"user_id"`
	Title     string    `db:"title"`
	Date      time.Time `db:"booking_date"`
	StartMin  int       `db:"start_min"`
	EndMin    int       `db:"end_min"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func toDBBooking(bus bookingbus.Booking) bookingDB {
	return bookingDB{
		ID:        bus.ID,
		TenantID:  bus.TenantID,
		RoomID:    bus.RoomID,
		UserID:    bus.UserID,
		Title:     bus.Title,
		Date:      bus.Date.Time(),
		StartMin:  bus.Range.Start.Minutes(),
		EndMin:    bus.Range.End.Minutes(),
		Status:    strings.ToLower(bus.Status.String()),
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusBooking(db bookingDB) (bookingbus.Booking, error) {
	start, err := clock.FromMinutes(db.StartMin)
	if err != nil {
		return bookingbus.Booking{}, fmt.Errorf("parse start: %w", err)
	}

	end, err := clock.FromMinutes(db.EndMin)
	if err != nil {
		return bookingbus.Booking{}, fmt.Errorf("parse end: %w", err)
	}

	rng, err := clock.NewRange(start, end)
	if err != nil {
		return bookingbus.Booking{}, fmt.Errorf("parse range: %w", err)
	}

	sts, err := status.Parse(db.Status)
	if err != nil {
		return bookingbus.Booking{}, fmt.Errorf("parse status: %w", err)
	}

	bus := bookingbus.Booking{
		ID:        db.ID,
		TenantID:  db.TenantID,
		RoomID:    db.RoomID,
		UserID:    db.UserID,
		Title:     db.Title,
		Date:      clock.DateOf(db.Date),
		Range:     rng,
		Status:    sts,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusBookings(dbs []bookingDB) ([]bookingbus.Booking, error) {
	bus := make([]bookingbus.Booking, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusBooking(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
