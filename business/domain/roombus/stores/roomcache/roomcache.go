// Package roomcache contains room related CRUD functionality with caching.
package roomcache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/domain/roombus"
	"github.com/jcpaschoal/smartroom/business/sdk/order"
	"github.com/jcpaschoal/smartroom/business/sdk/page"
	"github.com/jcpaschoal/smartroom/business/sdk/sqldb"
	"github.com/jcpaschoal/smartroom/foundation/logger"
	"github.com/viccon/sturdyc"
)

// Store manages the set of APIs for room data and caching.
type Store struct {
	log    *logger.Logger
	storer roombus.Storer
	cache  *sturdyc.Client[roombus.Room]
}

// NewStore constructs the api for data and caching access.
func NewStore(log *logger.Logger, storer roombus.Storer, ttl time.Duration) *Store {
	return &Store{
		log:    log,
		storer: storer,
		cache:  sturdyc.New[roombus.Room](10000, 10, ttl, 10),
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (roombus.Storer, error) {
	return s.storer.NewWithTx(tx)
}

// Create inserts a new room into the database.
func (s *Store) Create(ctx context.Context, rm roombus.Room) error {
	if err := s.storer.Create(ctx, rm); err != nil {
		return err
	}

	s.writeCache(rm)

	return nil
}

// Update replaces a room document in the database.
func (s *Store) Update(ctx context.Context, rm roombus.Room) error {
	if err := s.storer.Update(ctx, rm); err != nil {
		return err
	}

	s.writeCache(rm)

	return nil
}

// Query retrieves a list of existing rooms from the database.
func (s *Store) Query(ctx context.Context, filter roombus.QueryFilter, orderBy order.By, page page.Page) ([]roombus.Room, error) {
	return s.storer.Query(ctx, filter, orderBy, page)
}

// Count returns the total number of rooms in the DB.
func (s *Store) Count(ctx context.Context, filter roombus.QueryFilter) (int, error) {
	return s.storer.Count(ctx, filter)
}

// QueryByID gets the specified room from the cache or database.
func (s *Store) QueryByID(ctx context.Context, roomID uuid.UUID) (roombus.Room, error) {
	cachedRoom, ok := s.readCache(roomID.String())
	if ok {
		return cachedRoom, nil
	}

	rm, err := s.storer.QueryByID(ctx, roomID)
	if err != nil {
		return roombus.Room{}, err
	}

	s.writeCache(rm)

	return rm, nil
}

// =============================================================================

func (s *Store) readCache(key string) (roombus.Room, bool) {
	return s.cache.Get(key)
}

func (s *Store) writeCache(bus roombus.Room) {
	s.cache.Set(bus.ID.String(), bus)
}
