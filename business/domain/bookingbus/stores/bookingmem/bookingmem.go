// Package bookingmem provides an in-memory booking store for embedded runs
// and tests. Like the database store it refuses to hold two overlapping
// confirmed bookings in one scope.
package bookingmem

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/domain/bookingbus"
	"github.com/jcpaschoal/smartroom/business/sdk/order"
	"github.com/jcpaschoal/smartroom/business/sdk/page"
	"github.com/jcpaschoal/smartroom/business/sdk/sqldb"
	"github.com/jcpaschoal/smartroom/business/types/clock"
	"github.com/jcpaschoal/smartroom/business/types/status"
)

// Store manages the set of APIs for booking access held in memory.
type Store struct {
	mu       sync.RWMutex
	bookings map[uuid.UUID]bookingbus.Booking
}

// NewStore constructs an empty store.
func NewStore() *Store {
	return &Store{
		bookings: make(map[uuid.UUID]bookingbus.Booking),
	}
}

// NewWithTx returns the same store. Memory writes are applied immediately.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (bookingbus.Storer, error) {
	return s, nil
}

// Create inserts a new booking.
func (s *Store) Create(ctx context.Context, bkg bookingbus.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bookings[bkg.ID]; exists {
		return fmt.Errorf("create: bookingID[%s]: duplicated id", bkg.ID)
	}

	if err := s.checkExclusion(bkg); err != nil {
		return fmt.Errorf("create: %w", err)
	}

	s.bookings[bkg.ID] = bkg

	return nil
}

// Update replaces a booking that is still confirmed in the store.
func (s *Store) Update(ctx context.Context, bkg bookingbus.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.bookings[bkg.ID]
	if !exists {
		return fmt.Errorf("update: bookingID[%s]: %w", bkg.ID, bookingbus.ErrNotFound)
	}

	if !stored.Status.Equal(status.Confirmed) {
		return fmt.Errorf("update: bookingID[%s]: %w", bkg.ID, bookingbus.ErrAlreadyCancelled)
	}

	if err := s.checkExclusion(bkg); err != nil {
		return fmt.Errorf("update: %w", err)
	}

	s.bookings[bkg.ID] = bkg

	return nil
}

// QueryByID gets the specified booking.
func (s *Store) QueryByID(ctx context.Context, bookingID uuid.UUID) (bookingbus.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bkg, exists := s.bookings[bookingID]
	if !exists {
		return bookingbus.Booking{}, fmt.Errorf("query: bookingID[%s]: %w", bookingID, bookingbus.ErrNotFound)
	}

	return bkg, nil
}

// QueryOverlapping returns the confirmed bookings in the scope that overlap
// the range.
func (s *Store) QueryOverlapping(ctx context.Context, scope bookingbus.Scope, rng clock.Range) ([]bookingbus.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var bkgs []bookingbus.Booking
	for _, bkg := range s.bookings {
		if bkg.Status.Equal(status.Confirmed) && bkg.Scope().Equal(scope) && bkg.Range.Overlaps(rng) {
			bkgs = append(bkgs, bkg)
		}
	}

	return bkgs, nil
}

// Query retrieves a list of bookings matching the filter.
func (s *Store) Query(ctx context.Context, filter bookingbus.QueryFilter, orderBy order.By, pg page.Page) ([]bookingbus.Booking, error) {
	less, err := lessFunc(orderBy)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	bkgs := s.filter(filter)
	s.mu.RUnlock()

	sort.SliceStable(bkgs, func(i, j int) bool {
		return less(bkgs[i], bkgs[j])
	})

	start := pg.Offset()
	if start >= len(bkgs) {
		return []bookingbus.Booking{}, nil
	}

	end := min(start+pg.RowsPerPage(), len(bkgs))

	return bkgs[start:end], nil
}

// Count returns the number of bookings matching the filter.
func (s *Store) Count(ctx context.Context, filter bookingbus.QueryFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.filter(filter)), nil
}

// =============================================================================

func (s *Store) checkExclusion(bkg bookingbus.Booking) error {
	if !bkg.Status.Equal(status.Confirmed) {
		return nil
	}

	for _, other := range s.bookings {
		if other.ID == bkg.ID || !other.Status.Equal(status.Confirmed) {
			continue
		}

		if other.Scope().Equal(bkg.Scope()) && other.Range.Overlaps(bkg.Range) {
			return fmt.Errorf("bookingID[%s] overlaps bookingID[%s]: %w", bkg.ID, other.ID, bookingbus.ErrSlotConflict)
		}
	}

	return nil
}

func (s *Store) filter(filter bookingbus.QueryFilter) []bookingbus.Booking {
	var bkgs []bookingbus.Booking

	for _, bkg := range s.bookings {
		if filter.TenantID != nil && bkg.TenantID != *filter.TenantID {
			continue
		}

		if filter.ID != nil && bkg.ID != *filter.ID {
			continue
		}

		if filter.RoomID != nil && bkg.RoomID != *filter.RoomID {
			continue
		}

		if filter.UserID != nil && bkg.UserID != *filter.UserID {
			continue
		}

		if filter.Status != nil && !bkg.Status.Equal(*filter.Status) {
			continue
		}

		if filter.StartDate != nil && bkg.Date.Before(*filter.StartDate) {
			continue
		}

		if filter.EndDate != nil && filter.EndDate.Before(bkg.Date) {
			continue
		}

		bkgs = append(bkgs, bkg)
	}

	return bkgs
}

func lessFunc(orderBy order.By) (func(a, b bookingbus.Booking) bool, error) {
	var less func(a, b bookingbus.Booking) bool

	switch orderBy.Field {
	case bookingbus.OrderByID:
		less = func(a, b bookingbus.Booking) bool { return a.ID.String() < b.ID.String() }

	case bookingbus.OrderByDate:
		less = func(a, b bookingbus.Booking) bool {
			if !a.Date.Equal(b.Date) {
				return a.Date.Before(b.Date)
			}
			return a.Range.Start.Before(b.Range.Start)
		}

	case bookingbus.OrderByRoomID:
		less = func(a, b bookingbus.Booking) bool { return a.RoomID.String() < b.RoomID.String() }

	case bookingbus.OrderByStatus:
		less = func(a, b bookingbus.Booking) bool { return a.Status.String() < b.Status.String() }

	case bookingbus.OrderByCreatedAt:
		less = func(a, b bookingbus.Booking) bool { return a.CreatedAt.Before(b.CreatedAt) }

	default:
		return nil, fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	if orderBy.Direction == order.DESC {
		return func(a, b bookingbus.Booking) bool { return less(b, a) }, nil
	}

	return less, nil
}
