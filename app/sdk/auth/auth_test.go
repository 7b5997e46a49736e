package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"net/mail"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/domain/tenantbus"
	"github.com/jcpaschoal/smartroom/business/domain/userbus"
	"github.com/jcpaschoal/smartroom/business/sdk/order"
	"github.com/jcpaschoal/smartroom/business/sdk/page"
	"github.com/jcpaschoal/smartroom/business/sdk/sqldb"
	"github.com/jcpaschoal/smartroom/business/types/name"
	"github.com/jcpaschoal/smartroom/business/types/password"
	"github.com/jcpaschoal/smartroom/business/types/role"
	"github.com/jcpaschoal/smartroom/foundation/keystore"
	"github.com/jcpaschoal/smartroom/foundation/logger"
)

const (
	kid    = "s4sKIjD9kIRjxs2tulPqGLdxSfgPErRN1Mu3HxaruAB"
	issuer = "smartroom test"
)

func Test_Auth(t *testing.T) {
	a, usrs, _ := newTestAuth(t)
	ctx := context.Background()

	usr := usrs.create(t, "ana@acme.io", "gophers", role.User)

	token, err := a.GenerateToken(usr)
	if err != nil {
		t.Fatalf("generate token: %s", err)
	}

	claims, err := a.Authenticate(ctx, "Bearer "+token)
	if err != nil {
		t.Fatalf("authenticate: %s", err)
	}

	if claims.Subject != usr.ID.String() {
		t.Errorf("subject: got %s, want %s", claims.Subject, usr.ID)
	}

	if claims.TenantID != usr.TenantID.String() {
		t.Errorf("tenant: got %s, want %s", claims.TenantID, usr.TenantID)
	}

	if claims.Role != role.User.String() {
		t.Errorf("role: got %s, want %s", claims.Role, role.User)
	}

	if claims.Issuer != issuer {
		t.Errorf("issuer: got %s, want %s", claims.Issuer, issuer)
	}
}

func Test_AuthenticateFailures(t *testing.T) {
	a, usrs, tenants := newTestAuth(t)
	ctx := context.Background()

	usr := usrs.create(t, "ana@acme.io", "gophers", role.User)

	token, err := a.GenerateToken(usr)
	if err != nil {
		t.Fatalf("generate token: %s", err)
	}

	t.Run("missing-bearer", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("got %v, want %v", err, ErrInvalidToken)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "Bearer not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("got %v, want %v", err, ErrInvalidToken)
		}
	})

	t.Run("tampered", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "Bearer "+token+"x"); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("got %v, want %v", err, ErrInvalidToken)
		}
	})

	t.Run("expired", func(t *testing.T) {
		a.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
		defer func() { a.now = time.Now }()

		old, err := a.GenerateToken(usr)
		if err != nil {
			t.Fatalf("generate token: %s", err)
		}

		if _, err := a.Authenticate(ctx, "Bearer "+old); !errors.Is(err, ErrExpired) {
			t.Fatalf("got %v, want %v", err, ErrExpired)
		}
	})

	t.Run("user-disabled", func(t *testing.T) {
		usrs.setEnabled(usr.ID, false)
		defer usrs.setEnabled(usr.ID, true)

		if _, err := a.Authenticate(ctx, "Bearer "+token); !errors.Is(err, ErrUserDisabled) {
			t.Fatalf("got %v, want %v", err, ErrUserDisabled)
		}
	})

	t.Run("tenant-disabled", func(t *testing.T) {
		tenants.setEnabled(usr.TenantID, false)
		defer tenants.setEnabled(usr.TenantID, true)

		if _, err := a.Authenticate(ctx, "Bearer "+token); !errors.Is(err, ErrUserDisabled) {
			t.Fatalf("got %v, want %v", err, ErrUserDisabled)
		}
	})
}

func Test_Login(t *testing.T) {
	a, usrs, tenants := newTestAuth(t)
	ctx := context.Background()

	usr := usrs.create(t, "ana@acme.io", "gophers", role.Admin)

	got, err := a.Login(ctx, mail.Address{Address: "ana@acme.io"}, "gophers")
	if err != nil {
		t.Fatalf("login: %s", err)
	}

	if got.ID != usr.ID {
		t.Fatalf("got user %s, want %s", got.ID, usr.ID)
	}

	if _, err := a.Login(ctx, mail.Address{Address: "ana@acme.io"}, "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v, want %v", err, ErrInvalidCredentials)
	}

	if _, err := a.Login(ctx, mail.Address{Address: "nobody@acme.io"}, "gophers"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: got %v, want %v", err, ErrInvalidCredentials)
	}

	usrs.setEnabled(usr.ID, false)
	if _, err := a.Login(ctx, mail.Address{Address: "ana@acme.io"}, "gophers"); !errors.Is(err, ErrAccountInactive) {
		t.Errorf("disabled user: got %v, want %v", err, ErrAccountInactive)
	}
	usrs.setEnabled(usr.ID, true)

	tenants.setEnabled(usr.TenantID, false)
	if _, err := a.Login(ctx, mail.Address{Address: "ana@acme.io"}, "gophers"); !errors.Is(err, ErrAccountInactive) {
		t.Errorf("disabled tenant: got %v, want %v", err, ErrAccountInactive)
	}
}

// =============================================================================

func newTestAuth(t *testing.T) (*Auth, *userStore, *tenantStore) {
	t.Helper()

	pk, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generating key: %s", err)
	}

	block := pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(pk),
	}

	ks := keystore.New()
	if err := ks.Add(kid, string(pem.EncodeToMemory(&block))); err != nil {
		t.Fatalf("adding key: %s", err)
	}

	log := logger.Discard()

	tenants := &tenantStore{tenants: make(map[uuid.UUID]tenantbus.Tenant)}
	tenantID := uuid.New()
	tenants.tenants[tenantID] = tenantbus.Tenant{ID: tenantID, Slug: "acme", Enabled: true}

	usrs := &userStore{users: make(map[uuid.UUID]userbus.User), tenantID: tenantID}
	usrs.core = userbus.NewCore(usrs)

	a := New(Config{
		Log:       log,
		UserBus:   usrs.core,
		TenantBus: tenantbus.NewCore(log, tenants),
		KeyLookup: ks,
		ActiveKID: kid,
		Issuer:    issuer,
	})

	return a, usrs, tenants
}

type userStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]userbus.User
	tenantID uuid.UUID
	core     *userbus.Core
}

func (s *userStore) create(t *testing.T, email string, pass string, r role.Role) userbus.User {
	t.Helper()

	usr, err := s.core.Create(context.Background(), userbus.NewUser{
		TenantID: s.tenantID,
		Name:     name.MustParse("Ana Souza"),
		Email:    mail.Address{Address: email},
		Role:     r,
		Password: password.MustParse(pass),
	})
	if err != nil {
		t.Fatalf("creating user: %s", err)
	}

	return usr
}

func (s *userStore) setEnabled(userID uuid.UUID, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	usr := s.users[userID]
	usr.Enabled = enabled
	s.users[userID] = usr
}

func (s *userStore) NewWithTx(tx sqldb.CommitRollbacker) (userbus.Storer, error) {
	return s, nil
}

func (s *userStore) Create(ctx context.Context, usr userbus.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[usr.ID] = usr
	return nil
}

func (s *userStore) Update(ctx context.Context, usr userbus.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[usr.ID] = usr
	return nil
}

func (s *userStore) Query(ctx context.Context, filter userbus.QueryFilter, orderBy order.By, page page.Page) ([]userbus.User, error) {
	return nil, nil
}

func (s *userStore) Count(ctx context.Context, filter userbus.QueryFilter) (int, error) {
	return 0, nil
}

func (s *userStore) QueryByID(ctx context.Context, userID uuid.UUID) (userbus.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	usr, ok := s.users[userID]
	if !ok {
		return userbus.User{}, userbus.ErrNotFound
	}
	return usr, nil
}

func (s *userStore) QueryByEmail(ctx context.Context, email mail.Address) (userbus.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, usr := range s.users {
		if usr.Email.Address == email.Address {
			return usr, nil
		}
	}
	return userbus.User{}, userbus.ErrNotFound
}

type tenantStore struct {
	mu      sync.Mutex
	tenants map[uuid.UUID]tenantbus.Tenant
}

func (s *tenantStore) setEnabled(tenantID uuid.UUID, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tn := s.tenants[tenantID]
	tn.Enabled = enabled
	s.tenants[tenantID] = tn
}

func (s *tenantStore) NewWithTx(tx sqldb.CommitRollbacker) (tenantbus.Storer, error) {
	return s, nil
}

func (s *tenantStore) Create(ctx context.Context, tn tenantbus.Tenant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tenants[tn.ID] = tn
	return nil
}

func (s *tenantStore) Update(ctx context.Context, tn tenantbus.Tenant) error {
	return s.Create(ctx, tn)
}

func (s *tenantStore) QueryByID(ctx context.Context, tenantID uuid.UUID) (tenantbus.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tn, ok := s.tenants[tenantID]
	if !ok {
		return tenantbus.Tenant{}, tenantbus.ErrNotFound
	}
	return tn, nil
}

func (s *tenantStore) QueryBySlug(ctx context.Context, slug string) (tenantbus.Tenant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tn := range s.tenants {
		if tn.Slug == slug {
			return tn, nil
		}
	}
	return tenantbus.Tenant{}, tenantbus.ErrNotFound
}
