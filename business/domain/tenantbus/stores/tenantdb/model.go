package tenantdb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/domain/tenantbus"
	"github.com/jcpaschoal/smartroom/business/types/name"
)

// tenantDB represents the structure of the tenants table in the database.
type tenantDB struct {
	ID        uuid.UUID `db:"tenant_id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	Enabled   bool      `db:"enabled"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func toDBTenant(bus tenantbus.Tenant) tenantDB {
	return tenantDB{
		ID:        bus.ID,
		Name:      bus.Name.String(),
		Slug:      bus.Slug,
		Enabled:   bus.Enabled,
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusTenant(db tenantDB) (tenantbus.Tenant, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("parse name: %w", err)
	}

	return tenantbus.Tenant{
		ID:        db.ID,
		Name:      nme,
		Slug:      db.Slug,
		Enabled:   db.Enabled,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}, nil
}
