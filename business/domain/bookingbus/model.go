package bookingbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/types/clock"
	"github.com/jcpaschoal/smartroom/business/types/status"
)

// Booking represents a reservation of a room for a slot on a single day.
type Booking struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	RoomID    uuid.UUID
	UserID    uuid.UUID
	Title     string
	Date      clock.Date
	Range     clock.Range
	Status    status.Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Scope returns the tenant, room and date the booking competes in.
func (b Booking) Scope() Scope {
	return Scope{
		TenantID: b.TenantID,
		RoomID:   b.RoomID,
		Date:     b.Date,
	}
}

// NewBooking contains the information needed to admit a booking. TenantID
// and UserID come from the caller's authenticated identity.
type NewBooking struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	RoomID   uuid.UUID
	Title    string
	Date     clock.Date
	Start    clock.Time
	End      clock.Time
}

// Scope is the tuple over which overlap conflicts are evaluated.
type Scope struct {
	TenantID uuid.UUID
	RoomID   uuid.UUID
	Date     clock.Date
}

// Equal reports whether both scopes name the same tenant, room and date.
func (s Scope) Equal(s2 Scope) bool {
	return s.TenantID == s2.TenantID && s.RoomID == s2.RoomID && s.Date.Equal(s2.Date)
}

func (s Scope) String() string {
	return s.TenantID.String() + "/" + s.RoomID.String() + "/" + s.Date.String()
}

// scopeKey is the comparable form of a Scope used to key the admission lock.
type scopeKey struct {
	tenantID uuid.UUID
	roomID   uuid.UUID
	date     string
}

func (s Scope) key() scopeKey {
	return scopeKey{
		tenantID: s.TenantID,
		roomID:   s.RoomID,
		date:     s.Date.String(),
	}
}
