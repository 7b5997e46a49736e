// Package roombus provides business access to the room domain.
package roombus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/sdk/order"
	"github.com/jcpaschoal/smartroom/business/sdk/page"
	"github.com/jcpaschoal/smartroom/business/sdk/sqldb"
	"github.com/jcpaschoal/smartroom/foundation/otel"
)

// Set of error variables for CRUD operations.
var (
	ErrNotFound        = errors.New("room not found")
	ErrUniqueName      = errors.New("room name is not unique in tenant")
	ErrInvalidCapacity = errors.New("capacity must be greater than zero")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, rm Room) error
	Update(ctx context.Context, rm Room) error
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Room, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	QueryByID(ctx context.Context, roomID uuid.UUID) (Room, error)
}

// Core manages the set of APIs for room access.
type Core struct {
	storer Storer
}

// NewCore constructs a room core API for use.
func NewCore(storer Storer) *Core {
	return &Core{
		storer: storer,
	}
}

// NewWithTx constructs a new core value that will use the
// specified transaction in any store related calls.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return NewCore(storer), nil
}

// Create adds a new room to the tenant.
func (c *Core) Create(ctx context.Context, nr NewRoom) (Room, error) {
	ctx, span := otel.AddSpan(ctx, "business.roombus.create")
	defer span.End()

	if nr.Capacity <= 0 {
		return Room{}, fmt.Errorf("create: %w", ErrInvalidCapacity)
	}

	now := time.Now()

	rm := Room{
		ID:          uuid.New(),
		TenantID:    nr.TenantID,
		Name:        nr.Name,
		Description: nr.Description,
		Capacity:    nr.Capacity,
		Floor:       nr.Floor,
		Building:    nr.Building,
		Active:      nr.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := c.storer.Create(ctx, rm); err != nil {
		return Room{}, fmt.Errorf("create: %w", err)
	}

	return rm, nil
}

// Update modifies information about a room.
func (c *Core) Update(ctx context.Context, rm Room, ur UpdateRoom) (Room, error) {
	ctx, span := otel.AddSpan(ctx, "business.roombus.update")
	defer span.End()

	if ur.Name != nil {
		rm.Name = *ur.Name
	}

	if ur.Description != nil {
		rm.Description = *ur.Description
	}

	if ur.Capacity != nil {
		if *ur.Capacity <= 0 {
			return Room{}, fmt.Errorf("update: %w", ErrInvalidCapacity)
		}
		rm.Capacity = *ur.Capacity
	}

	if ur.Floor != nil {
		rm.Floor = *ur.Floor
	}

	if ur.Building != nil {
		rm.Building = *ur.Building
	}

	if ur.Active != nil {
		rm.Active = *ur.Active
	}

	rm.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, rm); err != nil {
		return Room{}, fmt.Errorf("update: %w", err)
	}

	return rm, nil
}

// Query retrieves a list of existing rooms.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Room, error) {
	ctx, span := otel.AddSpan(ctx, "business.roombus.query")
	defer span.End()

	rooms, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return rooms, nil
}

// Count returns the total number of rooms.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.roombus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByID finds the room by the specified ID within the tenant. A room
// owned by another tenant is reported as not found.
func (c *Core) QueryByID(ctx context.Context, tenantID uuid.UUID, roomID uuid.UUID) (Room, error) {
	ctx, span := otel.AddSpan(ctx, "business.roombus.queryByID")
	defer span.End()

	rm, err := c.storer.QueryByID(ctx, roomID)
	if err != nil {
		return Room{}, fmt.Errorf("query: roomID[%s]: %w", roomID, err)
	}

	if rm.TenantID != tenantID {
		return Room{}, fmt.Errorf("query: roomID[%s]: %w", roomID, ErrNotFound)
	}

	return rm, nil
}
