package analyticsbus

import (
	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/types/clock"
)

// Totals holds the headline counters for a tenant.
type Totals struct {
	Rooms               int
	Users               int
	Bookings            int
	ActiveBookingsToday int
}

// RoomCount is the number of confirmed bookings held by a room.
type RoomCount struct {
	RoomID   uuid.UUID
	RoomName string
	Count    int
}

// DayCount is the number of confirmed bookings on a date.
type DayCount struct {
	Date  clock.Date
	Count int
}

// Summary is the analytics view of a tenant.
type Summary struct {
	Totals
	BookingsByRoom []RoomCount
	BookingsByDay  []DayCount
}
