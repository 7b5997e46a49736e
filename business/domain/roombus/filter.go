package roombus

import (
	"github.com/google/uuid"
)

// QueryFilter holds the available fields a query can be filtered on.
// TenantID is always set by the caller.
type QueryFilter struct {
	TenantID    *uuid.UUID
	ID          *uuid.UUID
	Name        *string
	MinCapacity *int
	Active      *bool
}
