package roombus

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/types/name"
)

// Room represents a bookable meeting room owned by a tenant.
type Room struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	Name        name.Name
	Description string
	Capacity    int
	Floor       name.Null
	Building    name.Null
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewRoom contains information needed to create a new room.
type NewRoom struct {
	TenantID    uuid.UUID
	Name        name.Name
	Description string
	Capacity    int
	Floor       name.Null
	Building    name.Null
	Active      bool
}

// UpdateRoom contains information needed to update a room.
type UpdateRoom struct {
	Name        *name.Name
	Description *string
	Capacity    *int
	Floor       *name.Null
	Building    *name.Null
	Active      *bool
}
