package roombus_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/domain/roombus"
	"github.com/jcpaschoal/smartroom/business/sdk/order"
	"github.com/jcpaschoal/smartroom/business/sdk/page"
	"github.com/jcpaschoal/smartroom/business/sdk/sqldb"
	"github.com/jcpaschoal/smartroom/business/types/name"
)

type mockStore struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]roombus.Room
}

func newMockStore() *mockStore {
	return &mockStore{rooms: make(map[uuid.UUID]roombus.Room)}
}

func (m *mockStore) NewWithTx(tx sqldb.CommitRollbacker) (roombus.Storer, error) {
	return m, nil
}

func (m *mockStore) Create(ctx context.Context, rm roombus.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, other := range m.rooms {
		if other.TenantID == rm.TenantID && other.Name.Equal(rm.Name) {
			return roombus.ErrUniqueName
		}
	}

	m.rooms[rm.ID] = rm
	return nil
}

func (m *mockStore) Update(ctx context.Context, rm roombus.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rooms[rm.ID] = rm
	return nil
}

func (m *mockStore) Query(ctx context.Context, filter roombus.QueryFilter, orderBy order.By, page page.Page) ([]roombus.Room, error) {
	return nil, nil
}

func (m *mockStore) Count(ctx context.Context, filter roombus.QueryFilter) (int, error) {
	return len(m.rooms), nil
}

func (m *mockStore) QueryByID(ctx context.Context, roomID uuid.UUID) (roombus.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rm, exists := m.rooms[roomID]
	if !exists {
		return roombus.Room{}, roombus.ErrNotFound
	}

	return rm, nil
}

func Test_Room(t *testing.T) {
	ctx := context.Background()
	core := roombus.NewCore(newMockStore())
	tenantID := uuid.New()

	nr := roombus.NewRoom{
		TenantID: tenantID,
		Name:     name.MustParse("Orion"),
		Capacity: 8,
		Floor:    name.MustParseNull("2"),
		Active:   true,
	}

	rm, err := core.Create(ctx, nr)
	if err != nil {
		t.Fatalf("Should be able to create a room: %s", err)
	}

	if _, err := core.Create(ctx, nr); !errors.Is(err, roombus.ErrUniqueName) {
		t.Errorf("Got error %v, want ErrUniqueName", err)
	}

	if _, err := core.QueryByID(ctx, tenantID, rm.ID); err != nil {
		t.Errorf("Should find the room in its tenant: %s", err)
	}

	if _, err := core.QueryByID(ctx, uuid.New(), rm.ID); !errors.Is(err, roombus.ErrNotFound) {
		t.Errorf("Got error %v, want ErrNotFound from another tenant", err)
	}

	active := false
	upd, err := core.Update(ctx, rm, roombus.UpdateRoom{Active: &active})
	if err != nil {
		t.Fatalf("Should be able to deactivate: %s", err)
	}

	if upd.Active {
		t.Error("Room should be inactive")
	}

	zero := 0
	if _, err := core.Update(ctx, rm, roombus.UpdateRoom{Capacity: &zero}); !errors.Is(err, roombus.ErrInvalidCapacity) {
		t.Errorf("Got error %v, want ErrInvalidCapacity", err)
	}

	nr.Name = name.MustParse("Lyra")
	nr.Capacity = 0
	if _, err := core.Create(ctx, nr); !errors.Is(err, roombus.ErrInvalidCapacity) {
		t.Errorf("Got error %v, want ErrInvalidCapacity", err)
	}
}
