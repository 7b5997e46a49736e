package bookingbus

import (
	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/types/clock"
	"github.com/jcpaschoal/smartroom/business/types/status"
)

// QueryFilter holds the available fields a query can be filtered on.
// Date bounds are inclusive.
type QueryFilter struct {
	TenantID  *uuid.UUID
	ID        *uuid.UUID
	RoomID    *uuid.UUID
	UserID    *uuid.UUID
	Status    *status.Status
	StartDate *clock.Date
	EndDate   *clock.Date
}
