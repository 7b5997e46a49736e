// Package bookingbus provides business access to the booking domain. It owns
// the admission of new bookings: a request is admitted only when its time
// range is well formed and no confirmed booking in the same tenant, room and
// date overlaps it.
package bookingbus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/domain/roombus"
	"github.com/jcpaschoal/smartroom/business/sdk/order"
	"github.com/jcpaschoal/smartroom/business/sdk/page"
	"github.com/jcpaschoal/smartroom/business/sdk/scopelock"
	"github.com/jcpaschoal/smartroom/business/sdk/sqldb"
	"github.com/jcpaschoal/smartroom/business/types/clock"
	"github.com/jcpaschoal/smartroom/business/types/status"
	"github.com/jcpaschoal/smartroom/foundation/logger"
	"github.com/jcpaschoal/smartroom/foundation/otel"
	"go.opentelemetry.io/otel/attribute"
)

// Set of error variables for booking operations.
var (
	ErrNotFound         = errors.New("booking not found")
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	ErrSlotConflict     = errors.New("room already booked for this time slot")
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomInactive     = errors.New("room is not active")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
)

// Storer interface declares the behavior this package needs to persist and
// retrieve data. Update only applies to a booking whose stored status is
// still confirmed and fails with ErrAlreadyCancelled otherwise.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, bkg Booking) error
	Update(ctx context.Context, bkg Booking) error
	QueryByID(ctx context.Context, bookingID uuid.UUID) (Booking, error)
	QueryOverlapping(ctx context.Context, scope Scope, rng clock.Range) ([]Booking, error)
	Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Booking, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
}

// RoomFinder looks up the room a booking targets.
type RoomFinder interface {
	QueryByID(ctx context.Context, tenantID uuid.UUID, roomID uuid.UUID) (roombus.Room, error)
}

// EventPublisher delivers booking events to interested parties.
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Core manages the set of APIs for booking access.
type Core struct {
	log      *logger.Logger
	storer   Storer
	resolver *Resolver
	rooms    RoomFinder
	events   EventPublisher
	locks    *scopelock.Locker[scopeKey]
}

// NewCore constructs a booking core API for use. A nil rooms skips the room
// check and a nil events disables publishing.
func NewCore(log *logger.Logger, storer Storer, rooms RoomFinder, events EventPublisher) *Core {
	return &Core{
		log:      log,
		storer:   storer,
		resolver: NewResolver(storer),
		rooms:    rooms,
		events:   events,
		locks:    scopelock.New[scopeKey](),
	}
}

// NewWithTx constructs a new core value that will use the specified
// transaction in any store related calls. The admission lock is shared with
// the original core.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, err
	}

	return &Core{
		log:      c.log,
		storer:   storer,
		resolver: NewResolver(storer),
		rooms:    c.rooms,
		events:   c.events,
		locks:    c.locks,
	}, nil
}

// Admit validates the request and, when the slot is free, durably records a
// confirmed booking. The conflict check and the insert run while holding the
// lock for the booking's scope so concurrent requests for the same room and
// date are serialized. Requests in different scopes never wait on each other.
func (c *Core) Admit(ctx context.Context, nb NewBooking) (Booking, error) {
	ctx, span := otel.AddSpan(ctx, "business.bookingbus.admit",
		attribute.String("room_id", nb.RoomID.String()),
		attribute.String("date", nb.Date.String()),
	)
	defer span.End()

	rng, err := clock.NewRange(nb.Start, nb.End)
	if err != nil {
		admissions.WithLabelValues(outcomeInvalidRange).Inc()
		return Booking{}, fmt.Errorf("admit: %w: %s-%s", ErrInvalidTimeRange, nb.Start, nb.End)
	}

	if err := c.checkRoom(ctx, nb.TenantID, nb.RoomID); err != nil {
		return Booking{}, fmt.Errorf("admit: %w", err)
	}

	scope := Scope{
		TenantID: nb.TenantID,
		RoomID:   nb.RoomID,
		Date:     nb.Date,
	}

	start := time.Now()
	unlock, err := c.locks.Lock(ctx, scope.key())
	if err != nil {
		admissions.WithLabelValues(outcomeError).Inc()
		return Booking{}, fmt.Errorf("admit: lock scope[%s]: %w", scope, err)
	}
	lockWait.Observe(time.Since(start).Seconds())

	bkg, err := c.commit(ctx, scope, rng, nb)
	unlock()

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotConflict):
			admissions.WithLabelValues(outcomeConflict).Inc()
		default:
			admissions.WithLabelValues(outcomeError).Inc()
		}
		return Booking{}, fmt.Errorf("admit: %w", err)
	}

	admissions.WithLabelValues(outcomeAdmitted).Inc()

	c.publish(ctx, EventCreated, bkg)

	return bkg, nil
}

// commit must be called while holding the scope lock.
func (c *Core) commit(ctx context.Context, scope Scope, rng clock.Range, nb NewBooking) (Booking, error) {
	overlapping, err := c.resolver.FindOverlapping(ctx, scope, rng)
	if err != nil {
		return Booking{}, fmt.Errorf("findoverlapping: %w", err)
	}

	if len(overlapping) > 0 {
		return Booking{}, fmt.Errorf("scope[%s] range[%s] conflicts with booking[%s]: %w", scope, rng, overlapping[0].ID, ErrSlotConflict)
	}

	now := time.Now()

	bkg := Booking{
		ID:        uuid.New(),
		TenantID:  nb.TenantID,
		RoomID:    nb.RoomID,
		UserID:    nb.UserID,
		Title:     nb.Title,
		Date:      nb.Date,
		Range:     rng,
		Status:    status.Confirmed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storer.Create(ctx, bkg); err != nil {
		return Booking{}, fmt.Errorf("create: %w", err)
	}

	return bkg, nil
}

func (c *Core) checkRoom(ctx context.Context, tenantID uuid.UUID, roomID uuid.UUID) error {
	if c.rooms == nil {
		return nil
	}

	rm, err := c.rooms.QueryByID(ctx, tenantID, roomID)
	if err != nil {
		if errors.Is(err, roombus.ErrNotFound) {
			admissions.WithLabelValues(outcomeRoomRejected).Inc()
			return fmt.Errorf("roomID[%s]: %w", roomID, ErrRoomNotFound)
		}
		admissions.WithLabelValues(outcomeError).Inc()
		return fmt.Errorf("query room: %w", err)
	}

	if !rm.Active {
		admissions.WithLabelValues(outcomeRoomRejected).Inc()
		return fmt.Errorf("roomID[%s]: %w", roomID, ErrRoomInactive)
	}

	return nil
}

// Cancel moves a confirmed booking to cancelled, releasing its slot. The bkg
// value may be stale; the store decides which of two concurrent cancels wins.
func (c *Core) Cancel(ctx context.Context, bkg Booking) (Booking, error) {
	ctx, span := otel.AddSpan(ctx, "business.bookingbus.cancel")
	defer span.End()

	if bkg.Status.Equal(status.Cancelled) {
		return Booking{}, fmt.Errorf("cancel: bookingID[%s]: %w", bkg.ID, ErrAlreadyCancelled)
	}

	bkg.Status = status.Cancelled
	bkg.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, bkg); err != nil {
		return Booking{}, fmt.Errorf("update: %w", err)
	}

	c.publish(ctx, EventCancelled, bkg)

	return bkg, nil
}

// Query retrieves a list of existing bookings.
func (c *Core) Query(ctx context.Context, filter QueryFilter, orderBy order.By, page page.Page) ([]Booking, error) {
	ctx, span := otel.AddSpan(ctx, "business.bookingbus.query")
	defer span.End()

	bkgs, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	return bkgs, nil
}

// Count returns the total number of bookings.
func (c *Core) Count(ctx context.Context, filter QueryFilter) (int, error) {
	ctx, span := otel.AddSpan(ctx, "business.bookingbus.count")
	defer span.End()

	return c.storer.Count(ctx, filter)
}

// QueryByUser retrieves the bookings made by the user in the tenant.
func (c *Core) QueryByUser(ctx context.Context, tenantID uuid.UUID, userID uuid.UUID, orderBy order.By, page page.Page) ([]Booking, error) {
	ctx, span := otel.AddSpan(ctx, "business.bookingbus.queryByUser")
	defer span.End()

	filter := QueryFilter{
		TenantID: &tenantID,
		UserID:   &userID,
	}

	bkgs, err := c.storer.Query(ctx, filter, orderBy, page)
	if err != nil {
		return nil, fmt.Errorf("query: userID[%s]: %w", userID, err)
	}

	return bkgs, nil
}

// QueryByID finds the booking by the specified ID within the tenant. A
// booking owned by another tenant is reported as not found.
func (c *Core) QueryByID(ctx context.Context, tenantID uuid.UUID, bookingID uuid.UUID) (Booking, error) {
	ctx, span := otel.AddSpan(ctx, "business.bookingbus.queryByID")
	defer span.End()

	bkg, err := c.storer.QueryByID(ctx, bookingID)
	if err != nil {
		return Booking{}, fmt.Errorf("query: bookingID[%s]: %w", bookingID, err)
	}

	if bkg.TenantID != tenantID {
		return Booking{}, fmt.Errorf("query: bookingID[%s]: %w", bookingID, ErrNotFound)
	}

	return bkg, nil
}

// FindOverlapping exposes the conflict resolver for read-only availability
// checks.
func (c *Core) FindOverlapping(ctx context.Context, scope Scope, rng clock.Range) ([]Booking, error) {
	return c.resolver.FindOverlapping(ctx, scope, rng)
}

// =============================================================================

func (c *Core) publish(ctx context.Context, key string, bkg Booking) {
	if c.events == nil {
		return
	}

	if err := c.events.PublishJSON(ctx, key, toEvent(bkg)); err != nil {
		c.log.Error(ctx, "bookingbus: publish event", "key", key, "booking_id", bkg.ID, "err", err)
	}
}
