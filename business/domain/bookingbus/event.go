package bookingbus

import (
	"time"

	"github.com/google/uuid"
)

// Routing keys for the events published by this domain.
const (
	EventCreated   = "booking.created"
	EventCancelled = "booking.cancelled"
)

// Event is the payload published when a booking changes state.
type Event struct {
	BookingID  uuid.UUID `json:"bookingId"`
	TenantID   uuid.UUID `json:"tenantId"`
	RoomID     uuid.UUID `json:"roomId"`
	UserID     uuid.UUID `json:"userId"`
	Date       string    `json:"bookingDate"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurredAt"`
}

func toEvent(bkg Booking) Event {
	return Event{
		BookingID:  bkg.ID,
		TenantID:   bkg.TenantID,
		RoomID:     bkg.RoomID,
		UserID:     bkg.UserID,
		Date:       bkg.Date.String(),
		StartTime:  bkg.Range.Start.String(),
		EndTime:    bkg.Range.End.String(),
		Status:     bkg.Status.String(),
		OccurredAt: bkg.UpdatedAt.UTC(),
	}
}
