package userbus_test

import (
	"context"
	"errors"
	"net/mail"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/domain/userbus"
	"github.com/jcpaschoal/smartroom/business/sdk/order"
	"github.com/jcpaschoal/smartroom/business/sdk/page"
	"github.com/jcpaschoal/smartroom/business/sdk/sqldb"
	"github.com/jcpaschoal/smartroom/business/types/name"
	"github.com/jcpaschoal/smartroom/business/types/password"
	"github.com/jcpaschoal/smartroom/business/types/role"
)

type mockStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]userbus.User
}

func newMockStore() *mockStore {
	return &mockStore{users: make(map[uuid.UUID]userbus.User)}
}

func (m *mockStore) NewWithTx(tx sqldb.CommitRollbacker) (userbus.Storer, error) {
	return m, nil
}

func (m *mockStore) Create(ctx context.Context, usr userbus.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email.Address == usr.Email.Address {
			return userbus.ErrUniqueEmail
		}
	}

	m.users[usr.ID] = usr
	return nil
}

func (m *mockStore) Update(ctx context.Context, usr userbus.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users[usr.ID] = usr
	return nil
}

func (m *mockStore) Query(ctx context.Context, filter userbus.QueryFilter, orderBy order.By, page page.Page) ([]userbus.User, error) {
	return nil, nil
}

func (m *mockStore) Count(ctx context.Context, filter userbus.QueryFilter) (int, error) {
	return len(m.users), nil
}

func (m *mockStore) QueryByID(ctx context.Context, userID uuid.UUID) (userbus.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	usr, exists := m.users[userID]
	if !exists {
		return userbus.User{}, userbus.ErrNotFound
	}
	return usr, nil
}

func (m *mockStore) QueryByEmail(ctx context.Context, email mail.Address) (userbus.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email.Address == email.Address {
			return u, nil
		}
	}
	return userbus.User{}, userbus.ErrNotFound
}

func Test_Authenticate(t *testing.T) {
	ctx := context.Background()
	core := userbus.NewCore(newMockStore())

	email := mail.Address{Address: "ana@acme.io"}

	usr, err := core.Create(ctx, userbus.NewUser{
		TenantID: uuid.New(),
		Name:     name.MustParse("Ana Souza"),
		Email:    email,
		Role:     role.User,
		Password: password.MustParse("gophers"),
	})
	if err != nil {
		t.Fatalf("Should be able to create a user: %s", err)
	}

	if string(usr.PasswordHash) == "gophers" {
		t.Fatal("Password should be hashed")
	}

	if _, err := core.Authenticate(ctx, email, "gophers"); err != nil {
		t.Errorf("Should authenticate with the right password: %s", err)
	}

	if _, err := core.Authenticate(ctx, email, "wrong"); !errors.Is(err, userbus.ErrAuthenticationFailure) {
		t.Errorf("Got error %v, want ErrAuthenticationFailure", err)
	}

	if _, err := core.Authenticate(ctx, mail.Address{Address: "nobody@acme.io"}, "gophers"); !errors.Is(err, userbus.ErrAuthenticationFailure) {
		t.Errorf("Got error %v, want ErrAuthenticationFailure for unknown email", err)
	}

	disabled := false
	if _, err := core.Update(ctx, usr, userbus.UpdateUser{Enabled: &disabled}); err != nil {
		t.Fatalf("Should be able to disable the user: %s", err)
	}

	if _, err := core.Authenticate(ctx, email, "gophers"); !errors.Is(err, userbus.ErrDisabled) {
		t.Errorf("Got error %v, want ErrDisabled", err)
	}
}
