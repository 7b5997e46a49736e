package analyticsapp

import (
	"encoding/json"

	"github.com/jcpaschoal/smartroom/business/domain/analyticsbus"
)

// RoomCount is the number of confirmed bookings held by a room.
type RoomCount struct {
	RoomID   string `json:"roomId"`
	RoomName string `json:"roomName"`
	Count    int    `json:"count"`
}

// DayCount is the number of confirmed bookings on a date.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Analytics represents the tenant dashboard.
type Analytics struct {
	TotalRooms          int         `json:"totalRooms"`
	TotalUsers          int         `json:"totalUsers"`
	TotalBookings       int         `json:"totalBookings"`
	ActiveBookingsToday int         `json:"activeBookingsToday"`
	BookingsByRoom      []RoomCount `json:"bookingsByRoom"`
	BookingsByDay       []DayCount  `json:"bookingsByDay"`
}

// Encode implements the web.Encoder interface.
func (app Analytics) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppAnalytics(bus analyticsbus.Summary) Analytics {
	byRoom := make([]RoomCount, len(bus.BookingsByRoom))
	for i, rc := range bus.BookingsByRoom {
		byRoom[i] = RoomCount{
			RoomID:   rc.RoomID.String(),
			RoomName: rc.RoomName,
			Count:    rc.Count,
		}
	}

	byDay := make([]DayCount, len(bus.BookingsByDay))
	for i, dc := range bus.BookingsByDay {
		byDay[i] = DayCount{
			Date:  dc.Date.String(),
			Count: dc.Count,
		}
	}

	return Analytics{
		TotalRooms:          bus.Rooms,
		TotalUsers:          bus.Users,
		TotalBookings:       bus.Bookings,
		ActiveBookingsToday: bus.ActiveBookingsToday,
		BookingsByRoom:      byRoom,
		BookingsByDay:       byDay,
	}
}
