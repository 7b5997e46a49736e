package analyticsapp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/domain/analyticsbus"
	"github.com/jcpaschoal/smartroom/business/types/clock"
)

func Test_ToAppAnalytics(t *testing.T) {
	roomID := uuid.MustParse("6f0c5fa2-8c43-4b52-9c7b-6f0b1a8f3e11")

	sum := analyticsbus.Summary{
		Totals: analyticsbus.Totals{
			Rooms:               3,
			Users:               7,
			Bookings:            12,
			ActiveBookingsToday: 2,
		},
		BookingsByRoom: []analyticsbus.RoomCount{
			{RoomID: roomID, RoomName: "Sala Azul", Count: 9},
		},
		BookingsByDay: []analyticsbus.DayCount{
			{Date: clock.MustParseDate("2026-03-02"), Count: 4},
			{Date: clock.MustParseDate("2026-03-03"), Count: 0},
		},
	}

	exp := Analytics{
		TotalRooms:          3,
		TotalUsers:          7,
		TotalBookings:       12,
		ActiveBookingsToday: 2,
		BookingsByRoom: []RoomCount{
			{RoomID: roomID.String(), RoomName: "Sala Azul", Count: 9},
		},
		BookingsByDay: []DayCount{
			{Date: "2026-03-02", Count: 4},
			{Date: "2026-03-03", Count: 0},
		},
	}

	if diff := cmp.Diff(exp, toAppAnalytics(sum)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func Test_ToAppAnalyticsEmpty(t *testing.T) {
	got := toAppAnalytics(analyticsbus.Summary{})

	if got.BookingsByRoom == nil || got.BookingsByDay == nil {
		t.Fatal("expected empty slices so the JSON carries [] instead of null")
	}
}
