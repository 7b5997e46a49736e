// Package tenantbus provides business access to the tenant domain.
package tenantbus

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/sdk/sqldb"
	"github.com/jcpaschoal/smartroom/foundation/logger"
	"github.com/jcpaschoal/smartroom/foundation/otel"
)

// Set of error variables for tenant operations.
var (
	ErrNotFound    = errors.New("tenant not found")
	ErrUniqueSlug  = errors.New("slug is not unique")
	ErrInvalidSlug = errors.New("slug must be lower case letters, digits and hyphens")
	ErrDisabled    = errors.New("tenant is disabled")
)

var slugRegEx = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,62}$`)

// Storer defines the behavior required by the tenantbus to interact with the database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, t Tenant) error
	Update(ctx context.Context, t Tenant) error
	QueryByID(ctx context.Context, tenantID uuid.UUID) (Tenant, error)
	QueryBySlug(ctx context.Context, slug string) (Tenant, error)
}

// Core manages the set of APIs for tenant access.
type Core struct {
	storer Storer
	log    *logger.Logger
}

// NewCore constructs a core for tenant api access.
func NewCore(log *logger.Logger, storer Storer) *Core {
	return &Core{
		storer: storer,
		log:    log,
	}
}

// NewWithTx constructs a new Core value replacing the Storer
// value with a Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	return NewCore(c.log, storer), nil
}

// Create adds a new tenant to the system.
func (c *Core) Create(ctx context.Context, nt NewTenant) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.create")
	defer span.End()

	if !slugRegEx.MatchString(nt.Slug) {
		return Tenant{}, fmt.Errorf("create: slug[%s]: %w", nt.Slug, ErrInvalidSlug)
	}

	now := time.Now()

	t := Tenant{
		ID:        uuid.New(),
		Name:      nt.Name,
		Slug:      nt.Slug,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, t); err != nil {
		return Tenant{}, fmt.Errorf("create: %w", err)
	}

	return t, nil
}

// Update modifies data about a tenant.
func (c *Core) Update(ctx context.Context, t Tenant, ut UpdateTenant) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.update")
	defer span.End()

	if ut.Name != nil {
		t.Name = *ut.Name
	}

	if ut.Enabled != nil {
		t.Enabled = *ut.Enabled
	}

	t.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, t); err != nil {
		return Tenant{}, fmt.Errorf("update: %w", err)
	}

	return t, nil
}

// QueryByID finds the tenant by the specified ID.
func (c *Core) QueryByID(ctx context.Context, tenantID uuid.UUID) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.queryByID")
	defer span.End()

	tenant, err := c.storer.QueryByID(ctx, tenantID)
	if err != nil {
		return Tenant{}, fmt.Errorf("query: tenantID[%s]: %w", tenantID, err)
	}

	return tenant, nil
}

// QueryBySlug finds the tenant registered under the slug.
func (c *Core) QueryBySlug(ctx context.Context, slug string) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.queryBySlug")
	defer span.End()

	tenant, err := c.storer.QueryBySlug(ctx, slug)
	if err != nil {
		return Tenant{}, fmt.Errorf("query: slug[%s]: %w", slug, err)
	}

	return tenant, nil
}

// QueryEnabled finds the tenant by ID and fails with ErrDisabled when it has
// been switched off.
func (c *Core) QueryEnabled(ctx context.Context, tenantID uuid.UUID) (Tenant, error) {
	tenant, err := c.QueryByID(ctx, tenantID)
	if err != nil {
		return Tenant{}, err
	}

	if !tenant.Enabled {
		return Tenant{}, fmt.Errorf("query: tenantID[%s]: %w", tenantID, ErrDisabled)
	}

	return tenant, nil
}
