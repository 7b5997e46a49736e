package bookingapp

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/app/sdk/errs"
	"github.com/jcpaschoal/smartroom/business/domain/bookingbus"
	"github.com/jcpaschoal/smartroom/business/types/clock"
	"github.com/jcpaschoal/smartroom/business/types/status"
)

func Test_ToAppError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("admit: %w", bookingbus.ErrInvalidTimeRange), http.StatusBadRequest},
		{fmt.Errorf("admit: %w", bookingbus.ErrSlotConflict), http.StatusConflict},
		{fmt.Errorf("admit: %w", bookingbus.ErrRoomNotFound), http.StatusNotFound},
		{fmt.Errorf("admit: %w", bookingbus.ErrRoomInactive), http.StatusPreconditionFailed},
		{fmt.Errorf("query: %w", bookingbus.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("cancel: %w", bookingbus.ErrAlreadyCancelled), http.StatusConflict},
		{errors.New("connection reset by peer"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := toAppError(tt.err).HTTPStatus(); got != tt.status {
				t.Fatalf("got %d, want %d", got, tt.status)
			}
		})
	}
}

func Test_ToBusNewBooking(t *testing.T) {
	tenantID := uuid.New()
	userID := uuid.New()
	roomID := uuid.New()

	app := NewBooking{
		RoomID:      roomID.String(),
		Title:       "Sprint planning",
		BookingDate: "2026-10-20",
		StartTime:   "09:00",
		EndTime:     "10:30:00",
	}

	got, err := toBusNewBooking(app, tenantID, userID)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	want := bookingbus.NewBooking{
		TenantID: tenantID,
		UserID:   userID,
		RoomID:   roomID,
		Title:    "Sprint planning",
		Date:     clock.MustParseDate("2026-10-20"),
		Start:    clock.MustParseTime("09:00"),
		End:      clock.MustParseTime("10:30"),
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func Test_ToBusNewBookingFieldErrors(t *testing.T) {
	app := NewBooking{
		RoomID:      "room-1",
		BookingDate: "20/10/2026",
		StartTime:   "9h",
		EndTime:     "10:00",
	}

	_, err := toBusNewBooking(app, uuid.New(), uuid.New())

	appErr := errs.New(errs.InvalidArgument, err)

	for _, field := range []string{"roomId", "bookingDate", "startTime"} {
		if _, ok := appErr.Fields[field]; !ok {
			t.Errorf("expected a field error for %s: %v", field, appErr.Fields)
		}
	}

	if _, ok := appErr.Fields["endTime"]; ok {
		t.Errorf("endTime is valid: %v", appErr.Fields)
	}
}

func Test_ParseScope(t *testing.T) {
	tenantID := uuid.New()
	roomID := uuid.New()

	r := httptest.NewRequest(http.MethodGet, "/v1/bookings/availability?room_id="+roomID.String()+"&date=2026-10-20&start=10:00&end=09:00", nil)

	_, _, err := parseScope(r, tenantID)
	if err == nil || err.Code != errs.InvalidArgument {
		t.Fatalf("reversed interval: got %v, want invalid argument", err)
	}

	r = httptest.NewRequest(http.MethodGet, "/v1/bookings/availability?room_id=nope&date=2026-10-20&start=9&end=10:00", nil)

	_, _, err = parseScope(r, tenantID)
	if err == nil || err.Code != errs.InvalidArgument {
		t.Fatalf("malformed query: got %v, want invalid argument", err)
	}

	for _, field := range []string{"room_id", "start"} {
		if _, ok := err.Fields[field]; !ok {
			t.Errorf("malformed query: missing field error for %q in %v", field, err.Fields)
		}
	}

	r = httptest.NewRequest(http.MethodGet, "/v1/bookings/availability?room_id="+roomID.String()+"&date=2026-10-20&start=09:00&end=10:00", nil)

	scope, rng, err := parseScope(r, tenantID)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if scope.TenantID != tenantID || scope.RoomID != roomID {
		t.Errorf("scope: got %s", scope)
	}

	if rng.String() != "09:00-10:00" {
		t.Errorf("range: got %s", rng)
	}
}

func Test_ParseFilter(t *testing.T) {
	tenantID := uuid.New()

	filter, err := parseFilter(queryParams{RoomID: uuid.NewString(), Status: "confirmed"}, tenantID)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if filter.TenantID == nil || *filter.TenantID != tenantID {
		t.Errorf("tenant: got %v, want %s", filter.TenantID, tenantID)
	}

	if filter.Status == nil || !filter.Status.Equal(status.Confirmed) {
		t.Errorf("status: got %v, want %s", filter.Status, status.Confirmed)
	}

	_, err = parseFilter(queryParams{UserID: "not-a-uuid", Status: "pending"}, tenantID)
	if err == nil || err.Code != errs.InvalidArgument {
		t.Fatalf("bad params: got %v, want invalid argument", err)
	}

	for _, field := range []string{"user_id", "status"} {
		if _, ok := err.Fields[field]; !ok {
			t.Errorf("bad params: missing field error for %q in %v", field, err.Fields)
		}
	}
}

func Test_ToAppBooking(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	bkg := bookingbus.Booking{
		ID:        uuid.MustParse("0f1c8c7a-8e53-4b0e-9a43-2f0b0c7d9a11"),
		TenantID:  uuid.MustParse("5cf37266-3473-4006-984f-9325122678b7"),
		RoomID:    uuid.MustParse("7a1d2c3b-4e5f-4a6b-8c9d-0e1f2a3b4c5d"),
		UserID:    uuid.MustParse("9b8a7c6d-5e4f-4a3b-9c2d-1e0f9a8b7c6d"),
		Title:     "1:1",
		Date:      clock.MustParseDate("2026-10-20"),
		Range:     clock.MustNewRange("09:00", "09:30"),
		Status:    status.Confirmed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	want := Booking{
		ID:          "0f1c8c7a-8e53-4b0e-9a43-2f0b0c7d9a11",
		TenantID:    "5cf37266-3473-4006-984f-9325122678b7",
		RoomID:      "7a1d2c3b-4e5f-4a6b-8c9d-0e1f2a3b4c5d",
		UserID:      "9b8a7c6d-5e4f-4a3b-9c2d-1e0f9a8b7c6d",
		Title:       "1:1",
		BookingDate: "2026-10-20",
		StartTime:   "09:00",
		EndTime:     "09:30",
		Status:      "confirmed",
		DateCreated: "2026-10-16T12:00:00Z",
		DateUpdated: "2026-10-16T12:00:00Z",
	}

	if diff := cmp.Diff(want, toAppBooking(bkg)); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}
