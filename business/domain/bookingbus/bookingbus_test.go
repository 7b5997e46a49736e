package bookingbus_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/domain/bookingbus"
	"github.com/jcpaschoal/smartroom/business/domain/bookingbus/stores/bookingmem"
	"github.com/jcpaschoal/smartroom/business/domain/roombus"
	"github.com/jcpaschoal/smartroom/business/sdk/page"
	"github.com/jcpaschoal/smartroom/business/types/clock"
	"github.com/jcpaschoal/smartroom/business/types/name"
	"github.com/jcpaschoal/smartroom/business/types/status"
	"github.com/jcpaschoal/smartroom/foundation/logger"
)

type roomFinder map[uuid.UUID]roombus.Room

func (f roomFinder) QueryByID(ctx context.Context, tenantID uuid.UUID, roomID uuid.UUID) (roombus.Room, error) {
	rm, exists := f[roomID]
	if !exists || rm.TenantID != tenantID {
		return roombus.Room{}, roombus.ErrNotFound
	}

	return rm, nil
}

type publisher struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (p *publisher) PublishJSON(ctx context.Context, key string, v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.keys = append(p.keys, key)

	return p.err
}

type fixture struct {
	core    *bookingbus.Core
	store   *bookingmem.Store
	rooms   roomFinder
	events  *publisher
	tenant  uuid.UUID
	user    uuid.UUID
	roomA   uuid.UUID
	roomB   uuid.UUID
	date    clock.Date
	nextDay clock.Date
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := fixture{
		store:  bookingmem.NewStore(),
		rooms:  roomFinder{},
		events: &publisher{},
		tenant: uuid.New(),
		user:   uuid.New(),
		roomA:  uuid.New(),
		roomB:  uuid.New(),
		date:   clock.MustParseDate("2026-03-10"),
	}
	f.nextDay = f.date.AddDays(1)

	f.addRoom(f.tenant, f.roomA, true)
	f.addRoom(f.tenant, f.roomB, true)

	f.core = bookingbus.NewCore(logger.Discard(), f.store, f.rooms, f.events)

	return &f
}

func (f *fixture) addRoom(tenantID uuid.UUID, roomID uuid.UUID, active bool) {
	f.rooms[roomID] = roombus.Room{
		ID:       roomID,
		TenantID: tenantID,
		Name:     name.MustParse("Room " + roomID.String()[:8]),
		Capacity: 4,
		Active:   active,
	}
}

func (f *fixture) request(roomID uuid.UUID, date clock.Date, start string, end string) bookingbus.NewBooking {
	return bookingbus.NewBooking{
		TenantID: f.tenant,
		UserID:   f.user,
		RoomID:   roomID,
		Title:    "Standup",
		Date:     date,
		Start:    clock.MustParseTime(start),
		End:      clock.MustParseTime(end),
	}
}

func (f *fixture) count(t *testing.T) int {
	t.Helper()

	n, err := f.store.Count(context.Background(), bookingbus.QueryFilter{})
	if err != nil {
		t.Fatalf("Should be able to count bookings: %s", err)
	}

	return n
}

// =============================================================================

func Test_Admit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	nb := f.request(f.roomA, f.date, "09:00", "10:00")

	bkg, err := f.core.Admit(ctx, nb)
	if err != nil {
		t.Fatalf("Should be able to admit a booking: %s", err)
	}

	if bkg.ID == uuid.Nil {
		t.Error("Should assign an id")
	}

	if !bkg.Status.Equal(status.Confirmed) {
		t.Errorf("Got status %s, want %s", bkg.Status, status.Confirmed)
	}

	got, err := f.core.QueryByID(ctx, f.tenant, bkg.ID)
	if err != nil {
		t.Fatalf("Should be able to retrieve the booking: %s", err)
	}

	if diff := cmp.Diff(bkg, got); diff != "" {
		t.Errorf("Stored booking differs (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{bookingbus.EventCreated}, f.events.keys); diff != "" {
		t.Errorf("Published events differ (-want +got):\n%s", diff)
	}
}

func Test_AdmitBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		first   [2]string
		second  [2]string
		wantErr error
	}{
		{"touching-after", [2]string{"09:00", "10:00"}, [2]string{"10:00", "11:00"}, nil},
		{"touching-before", [2]string{"10:00", "11:00"}, [2]string{"09:00", "10:00"}, nil},
		{"partial-overlap", [2]string{"09:00", "10:00"}, [2]string{"09:30", "10:30"}, bookingbus.ErrSlotConflict},
		{"contained", [2]string{"09:00", "12:00"}, [2]string{"10:00", "11:00"}, bookingbus.ErrSlotConflict},
		{"containing", [2]string{"10:00", "11:00"}, [2]string{"09:00", "12:00"}, bookingbus.ErrSlotConflict},
		{"identical", [2]string{"09:00", "10:00"}, [2]string{"09:00", "10:00"}, bookingbus.ErrSlotConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()

			if _, err := f.core.Admit(ctx, f.request(f.roomA, f.date, tt.first[0], tt.first[1])); err != nil {
				t.Fatalf("Should admit the first booking: %s", err)
			}

			_, err := f.core.Admit(ctx, f.request(f.roomA, f.date, tt.second[0], tt.second[1]))

			switch tt.wantErr {
			case nil:
				if err != nil {
					t.Fatalf("Should admit the second booking: %s", err)
				}
				if n := f.count(t); n != 2 {
					t.Errorf("Got %d bookings, want 2", n)
				}

			default:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Got error %v, want %v", err, tt.wantErr)
				}
				if n := f.count(t); n != 1 {
					t.Errorf("Got %d bookings, want 1", n)
				}
			}
		})
	}
}

func Test_AdmitEndOfDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.core.Admit(ctx, f.request(f.roomA, f.date, "23:00", "24:00")); err != nil {
		t.Fatalf("Should admit the last hour of the day: %s", err)
	}

	if _, err := f.core.Admit(ctx, f.request(f.roomA, f.date, "23:30", "24:00")); !errors.Is(err, bookingbus.ErrSlotConflict) {
		t.Errorf("Got error %v, want ErrSlotConflict", err)
	}

	if _, err := f.core.Admit(ctx, f.request(f.roomA, f.nextDay, "00:00", "01:00")); err != nil {
		t.Errorf("The next day starts free: %s", err)
	}
}

func Test_AdmitOverlapProperty(t *testing.T) {
	ctx := context.Background()

	slots := []string{"08:00", "08:30", "09:00", "09:30", "10:00", "10:30"}

	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			for k := 0; k < len(slots); k++ {
				for l := k + 1; l < len(slots); l++ {
					f := newFixture(t)

					a := f.request(f.roomA, f.date, slots[i], slots[j])
					b := f.request(f.roomA, f.date, slots[k], slots[l])

					if _, err := f.core.Admit(ctx, a); err != nil {
						t.Fatalf("Should admit %s-%s: %s", a.Start, a.End, err)
					}

					overlap := a.Start.Before(b.End) && b.Start.Before(a.End)

					_, err := f.core.Admit(ctx, b)
					if overlap != errors.Is(err, bookingbus.ErrSlotConflict) {
						t.Fatalf("A=%s-%s B=%s-%s: overlap=%v err=%v", a.Start, a.End, b.Start, b.End, overlap, err)
					}

					if !overlap && err != nil {
						t.Fatalf("A=%s-%s B=%s-%s: unexpected error %v", a.Start, a.End, b.Start, b.End, err)
					}
				}
			}
		}
	}
}

func Test_AdmitInvalidRange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := [][2]string{
		{"10:00", "09:00"},
		{"10:00", "10:00"},
	}

	for _, tt := range tests {
		_, err := f.core.Admit(ctx, f.request(f.roomA, f.date, tt[0], tt[1]))
		if !errors.Is(err, bookingbus.ErrInvalidTimeRange) {
			t.Errorf("%s-%s: got error %v, want ErrInvalidTimeRange", tt[0], tt[1], err)
		}
	}

	if n := f.count(t); n != 0 {
		t.Errorf("Got %d bookings, want none", n)
	}

	if len(f.events.keys) != 0 {
		t.Errorf("Should not publish events for rejected requests, got %v", f.events.keys)
	}
}

func Test_AdmitScopeIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	otherTenant := uuid.New()
	otherRoom := uuid.New()
	f.addRoom(otherTenant, otherRoom, true)

	reqs := []bookingbus.NewBooking{
		f.request(f.roomA, f.date, "09:00", "10:00"),
		f.request(f.roomB, f.date, "09:00", "10:00"),
		f.request(f.roomA, f.nextDay, "09:00", "10:00"),
	}

	other := f.request(otherRoom, f.date, "09:00", "10:00")
	other.TenantID = otherTenant
	reqs = append(reqs, other)

	for i, nb := range reqs {
		if _, err := f.core.Admit(ctx, nb); err != nil {
			t.Fatalf("Request %d should be admitted: %s", i, err)
		}
	}

	if n := f.count(t); n != len(reqs) {
		t.Errorf("Got %d bookings, want %d", n, len(reqs))
	}
}

func Test_AdmitRoomChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	inactive := uuid.New()
	f.addRoom(f.tenant, inactive, false)

	foreign := uuid.New()
	f.addRoom(uuid.New(), foreign, true)

	tests := []struct {
		name    string
		roomID  uuid.UUID
		wantErr error
	}{
		{"unknown", uuid.New(), bookingbus.ErrRoomNotFound},
		{"other-tenant", foreign, bookingbus.ErrRoomNotFound},
		{"inactive", inactive, bookingbus.ErrRoomInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.core.Admit(ctx, f.request(tt.roomID, f.date, "09:00", "10:00"))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Got error %v, want %v", err, tt.wantErr)
			}
		})
	}

	if n := f.count(t); n != 0 {
		t.Errorf("Got %d bookings, want none", n)
	}
}

func Test_AdmitRace(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const goroutines = 50

	var wg sync.WaitGroup
	errs := make(chan error, goroutines)

	wg.Add(goroutines)
	for range goroutines {
		go func() {
			defer wg.Done()
			_, err := f.core.Admit(ctx, f.request(f.roomA, f.date, "14:00", "15:00"))
			errs <- err
		}()
	}

	wg.Wait()
	close(errs)

	var admitted, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			admitted++
		case errors.Is(err, bookingbus.ErrSlotConflict):
			conflicts++
		default:
			t.Errorf("Unexpected error: %s", err)
		}
	}

	if admitted != 1 || conflicts != goroutines-1 {
		t.Errorf("Got %d admitted and %d conflicts, want 1 and %d", admitted, conflicts, goroutines-1)
	}

	if n := f.count(t); n != 1 {
		t.Errorf("Got %d bookings, want 1", n)
	}
}

// Two cores over one store stand in for two service instances: they do not
// share the in-process lock, so the store's exclusion check decides.
func Test_AdmitRaceAcrossInstances(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cores := []*bookingbus.Core{
		f.core,
		bookingbus.NewCore(logger.Discard(), f.store, f.rooms, nil),
	}

	const perCore = 20

	var wg sync.WaitGroup
	var mu sync.Mutex
	var admitted int

	for _, core := range cores {
		wg.Add(perCore)
		for range perCore {
			go func() {
				defer wg.Done()
				_, err := core.Admit(ctx, f.request(f.roomB, f.date, "16:00", "17:00"))
				switch {
				case err == nil:
					mu.Lock()
					admitted++
					mu.Unlock()
				case !errors.Is(err, bookingbus.ErrSlotConflict):
					t.Errorf("Unexpected error: %s", err)
				}
			}()
		}
	}

	wg.Wait()

	if admitted != 1 {
		t.Errorf("Got %d admitted, want 1", admitted)
	}

	if n := f.count(t); n != 1 {
		t.Errorf("Got %d bookings, want 1", n)
	}
}

func Test_AdmitDifferentScopesConcurrently(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const days = 30

	var wg sync.WaitGroup
	wg.Add(days)
	for i := range days {
		go func() {
			defer wg.Done()
			if _, err := f.core.Admit(ctx, f.request(f.roomA, f.date.AddDays(i), "09:00", "10:00")); err != nil {
				t.Errorf("Day %d should be admitted: %s", i, err)
			}
		}()
	}

	wg.Wait()

	if n := f.count(t); n != days {
		t.Errorf("Got %d bookings, want %d", n, days)
	}
}

func Test_Cancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bkg, err := f.core.Admit(ctx, f.request(f.roomA, f.date, "09:00", "10:00"))
	if err != nil {
		t.Fatalf("Should admit: %s", err)
	}

	if _, err := f.core.Admit(ctx, f.request(f.roomA, f.date, "09:00", "10:00")); !errors.Is(err, bookingbus.ErrSlotConflict) {
		t.Fatalf("Got error %v, want ErrSlotConflict", err)
	}

	cancelled, err := f.core.Cancel(ctx, bkg)
	if err != nil {
		t.Fatalf("Should cancel: %s", err)
	}

	if !cancelled.Status.Equal(status.Cancelled) {
		t.Errorf("Got status %s, want %s", cancelled.Status, status.Cancelled)
	}

	if _, err := f.core.Cancel(ctx, cancelled); !errors.Is(err, bookingbus.ErrAlreadyCancelled) {
		t.Errorf("Got error %v, want ErrAlreadyCancelled", err)
	}

	if _, err := f.core.Admit(ctx, f.request(f.roomA, f.date, "09:00", "10:00")); err != nil {
		t.Errorf("Cancelled slot should be free again: %s", err)
	}

	want := []string{bookingbus.EventCreated, bookingbus.EventCancelled, bookingbus.EventCreated}
	if diff := cmp.Diff(want, f.events.keys); diff != "" {
		t.Errorf("Published events differ (-want +got):\n%s", diff)
	}
}

func Test_CancelConcurrently(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bkg, err := f.core.Admit(ctx, f.request(f.roomA, f.date, "09:00", "10:00"))
	if err != nil {
		t.Fatalf("Should admit: %s", err)
	}

	const callers = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		cancelled int
		rejected  int
	)

	wg.Add(callers)
	for range callers {
		go func() {
			defer wg.Done()

			// Every caller holds the same confirmed copy, as handlers do after
			// loading the booking.
			_, err := f.core.Cancel(ctx, bkg)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				cancelled++
			case errors.Is(err, bookingbus.ErrAlreadyCancelled):
				rejected++
			default:
				t.Errorf("Unexpected error: %s", err)
			}
		}()
	}

	wg.Wait()

	if cancelled != 1 || rejected != callers-1 {
		t.Fatalf("Got %d cancelled and %d rejected, want 1 and %d", cancelled, rejected, callers-1)
	}

	want := []string{bookingbus.EventCreated, bookingbus.EventCancelled}
	if diff := cmp.Diff(want, f.events.keys); diff != "" {
		t.Errorf("Published events differ (-want +got):\n%s", diff)
	}
}

func Test_CancelStaleCopy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	bkg, err := f.core.Admit(ctx, f.request(f.roomA, f.date, "09:00", "10:00"))
	if err != nil {
		t.Fatalf("Should admit: %s", err)
	}

	if _, err := f.core.Cancel(ctx, bkg); err != nil {
		t.Fatalf("Should cancel: %s", err)
	}

	if _, err := f.core.Cancel(ctx, bkg); !errors.Is(err, bookingbus.ErrAlreadyCancelled) {
		t.Fatalf("Got error %v, want ErrAlreadyCancelled", err)
	}
}

func Test_PublishFailureDoesNotFailAdmission(t *testing.T) {
	f := newFixture(t)
	f.events.err = errors.New("broker down")

	if _, err := f.core.Admit(context.Background(), f.request(f.roomA, f.date, "09:00", "10:00")); err != nil {
		t.Fatalf("Admission should succeed when publishing fails: %s", err)
	}

	if n := f.count(t); n != 1 {
		t.Errorf("Got %d bookings, want 1", n)
	}
}

func Test_FindOverlapping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, slot := range [][2]string{{"11:00", "12:00"}, {"08:00", "09:00"}, {"09:00", "10:00"}, {"13:00", "14:00"}} {
		if _, err := f.core.Admit(ctx, f.request(f.roomA, f.date, slot[0], slot[1])); err != nil {
			t.Fatalf("Should admit %v: %s", slot, err)
		}
	}

	scope := bookingbus.Scope{TenantID: f.tenant, RoomID: f.roomA, Date: f.date}
	rng := clock.MustNewRange("08:30", "11:30")

	first, err := f.core.FindOverlapping(ctx, scope, rng)
	if err != nil {
		t.Fatalf("Should find overlapping: %s", err)
	}

	var got []string
	for _, bkg := range first {
		got = append(got, bkg.Range.String())
	}

	want := []string{"08:00-09:00", "09:00-10:00", "11:00-12:00"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Overlapping bookings differ (-want +got):\n%s", diff)
	}

	second, err := f.core.FindOverlapping(ctx, scope, rng)
	if err != nil {
		t.Fatalf("Should find overlapping: %s", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Repeated reads differ (-first +second):\n%s", diff)
	}
}

func Test_QueryByUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other := f.request(f.roomB, f.date, "09:00", "10:00")
	other.UserID = uuid.New()
	if _, err := f.core.Admit(ctx, other); err != nil {
		t.Fatalf("Should admit: %s", err)
	}

	for i := range 3 {
		start := fmt.Sprintf("%02d:00", 9+i)
		end := fmt.Sprintf("%02d:00", 10+i)
		if _, err := f.core.Admit(ctx, f.request(f.roomA, f.date, start, end)); err != nil {
			t.Fatalf("Should admit: %s", err)
		}
	}

	bkgs, err := f.core.QueryByUser(ctx, f.tenant, f.user, bookingbus.DefaultOrderBy, page.MustParse("1", "10"))
	if err != nil {
		t.Fatalf("Should query by user: %s", err)
	}

	if len(bkgs) != 3 {
		t.Fatalf("Got %d bookings, want 3", len(bkgs))
	}

	for i := 1; i < len(bkgs); i++ {
		if !bkgs[i-1].Range.Start.Before(bkgs[i].Range.Start) {
			t.Errorf("Bookings should be ordered by start time")
		}
	}

	if _, err := f.core.QueryByID(ctx, uuid.New(), bkgs[0].ID); !errors.Is(err, bookingbus.ErrNotFound) {
		t.Errorf("A booking should not be visible from another tenant, got %v", err)
	}
}
