package bookingapp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/app/sdk/errs"
	"github.com/jcpaschoal/smartroom/business/domain/bookingbus"
	"github.com/jcpaschoal/smartroom/business/types/clock"
)

// Booking is the persisted booking returned to the client.
type Booking struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenantId"`
	RoomID      string `json:"roomId"`
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Status      string `json:"status"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (app Booking) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppBooking(bus bookingbus.Booking) Booking {
	return Booking{
		ID:          bus.ID.String(),
		TenantID:    bus.TenantID.String(),
		RoomID:      bus.RoomID.String(),
		UserID:      bus.UserID.String(),
		Title:       bus.Title,
		BookingDate: bus.Date.String(),
		StartTime:   bus.Range.Start.String(),
		EndTime:     bus.Range.End.String(),
		Status:      strings.ToLower(bus.Status.String()),
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppBookings(bkgs []bookingbus.Booking) []Booking {
	app := make([]Booking, len(bkgs))
	for i, bkg := range bkgs {
		app[i] = toAppBooking(bkg)
	}
	return app
}

type admittedBooking struct {
	Booking
}

// HTTPStatus implements the web package httpStatus interface.
func (admittedBooking) HTTPStatus() int {
	return http.StatusCreated
}

// =============================================================================

// Slot is a taken interval. It does not reveal who holds it.
type Slot struct {
	BookingID string `json:"bookingId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// Slots is the answer to an availability check.
type Slots struct {
	RoomID      string `json:"roomId"`
	BookingDate string `json:"bookingDate"`
	Available   bool   `json:"available"`
	Conflicts   []Slot `json:"conflicts"`
}

// Encode implements the web.Encoder interface.
func (app Slots) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppSlots(scope bookingbus.Scope, bkgs []bookingbus.Booking) Slots {
	slots := make([]Slot, len(bkgs))
	for i, bkg := range bkgs {
		slots[i] = Slot{
			BookingID: bkg.ID.String(),
			StartTime: bkg.Range.Start.String(),
			EndTime:   bkg.Range.End.String(),
		}
	}

	return Slots{
		RoomID:      scope.RoomID.String(),
		BookingDate: scope.Date.String(),
		Available:   len(slots) == 0,
		Conflicts:   slots,
	}
}

// =============================================================================

// NewBooking is the admission request. The tenant and the user come from the
// caller's token and are never read from the body.
type NewBooking struct {
	RoomID      string `json:"roomId" validate:"required"`
	Title       string `json:"title" validate:"max=200"`
	BookingDate string `json:"bookingDate" validate:"required"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *NewBooking) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewBooking) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

// toBusNewBooking parses the request fields. The ordering of start and end
// is left to admission so it is reported as an invalid time range.
func toBusNewBooking(app NewBooking, tenantID uuid.UUID, userID uuid.UUID) (bookingbus.NewBooking, error) {
	var fieldErrors errs.FieldErrors

	roomID, err := uuid.Parse(app.RoomID)
	if err != nil {
		fieldErrors.Add("roomId", err)
	}

	date, err := clock.ParseDate(app.BookingDate)
	if err != nil {
		fieldErrors.Add("bookingDate", err)
	}

	start, err := clock.ParseTime(app.StartTime)
	if err != nil {
		fieldErrors.Add("startTime", err)
	}

	end, err := clock.ParseTime(app.EndTime)
	if err != nil {
		fieldErrors.Add("endTime", err)
	}

	if fieldErrors != nil {
		return bookingbus.NewBooking{}, fmt.Errorf("validate: %w", fieldErrors)
	}

	bus := bookingbus.NewBooking{
		TenantID: tenantID,
		UserID:   userID,
		RoomID:   roomID,
		Title:    app.Title,
		Date:     date,
		Start:    start,
		End:      end,
	}

	return bus, nil
}
