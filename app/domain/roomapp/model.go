package roomapp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/app/sdk/errs"
	"github.com/jcpaschoal/smartroom/business/domain/roombus"
	"github.com/jcpaschoal/smartroom/business/types/name"
)

// Room represents a room returned to the client.
type Room struct {
	ID          string `json:"id"`
	TenantID    string `json:"tenantId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
	Floor       string `json:"floor,omitempty"`
	Building    string `json:"building,omitempty"`
	Active      bool   `json:"active"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (app Room) Encode() ([]byte, string, error) {
	data, err := json.Marshal(app)
	return data, "application/json", err
}

func toAppRoom(bus roombus.Room) Room {
	return Room{
		ID:          bus.ID.String(),
		TenantID:    bus.TenantID.String(),
		Name:        bus.Name.String(),
		Description: bus.Description,
		Capacity:    bus.Capacity,
		Floor:       bus.Floor.String(),
		Building:    bus.Building.String(),
		Active:      bus.Active,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppRooms(rooms []roombus.Room) []Room {
	app := make([]Room, len(rooms))
	for i, rm := range rooms {
		app[i] = toAppRoom(rm)
	}
	return app
}

type createdRoom struct {
	Room
}

// HTTPStatus implements the web package httpStatus interface.
func (createdRoom) HTTPStatus() int {
	return http.StatusCreated
}

// =============================================================================

// NewRoom defines the data needed to add a room.
type NewRoom struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"max=500"`
	Capacity    int    `json:"capacity" validate:"required,gt=0"`
	Floor       string `json:"floor"`
	Building    string `json:"building"`
	Active      *bool  `json:"active"`
}

// Decode implements the web.Decoder interface.
func (app *NewRoom) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewRoom) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

func toBusNewRoom(app NewRoom, tenantID uuid.UUID) (roombus.NewRoom, error) {
	var fieldErrors errs.FieldErrors

	nme, err := name.Parse(app.Name)
	if err != nil {
		fieldErrors.Add("name", err)
	}

	floor, err := name.ParseNull(app.Floor)
	if err != nil {
		fieldErrors.Add("floor", err)
	}

	building, err := name.ParseNull(app.Building)
	if err != nil {
		fieldErrors.Add("building", err)
	}

	if fieldErrors != nil {
		return roombus.NewRoom{}, fmt.Errorf("validate: %w", fieldErrors)
	}

	active := true
	if app.Active != nil {
		active = *app.Active
	}

	bus := roombus.NewRoom{
		TenantID:    tenantID,
		Name:        nme,
		Description: app.Description,
		Capacity:    app.Capacity,
		Floor:       floor,
		Building:    building,
		Active:      active,
	}

	return bus, nil
}

// =============================================================================

// UpdateRoom defines the data an admin may change on a room. Setting active
// to false takes the room out of admission.
type UpdateRoom struct {
	Name        *string `json:"name"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gt=0"`
	Floor       *string `json:"floor"`
	Building    *string `json:"building"`
	Active      *bool   `json:"active"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateRoom) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateRoom) Validate() error {
	if err := errs.Check(app); err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	return nil
}

func toBusUpdateRoom(app UpdateRoom) (roombus.UpdateRoom, error) {
	var fieldErrors errs.FieldErrors

	bus := roombus.UpdateRoom{
		Description: app.Description,
		Capacity:    app.Capacity,
		Active:      app.Active,
	}

	if app.Name != nil {
		nme, err := name.Parse(*app.Name)
		switch err {
		case nil:
			bus.Name = &nme
		default:
			fieldErrors.Add("name", err)
		}
	}

	if app.Floor != nil {
		floor, err := name.ParseNull(*app.Floor)
		switch err {
		case nil:
			bus.Floor = &floor
		default:
			fieldErrors.Add("floor", err)
		}
	}

	if app.Building != nil {
		building, err := name.ParseNull(*app.Building)
		switch err {
		case nil:
			bus.Building = &building
		default:
			fieldErrors.Add("building", err)
		}
	}

	if fieldErrors != nil {
		return roombus.UpdateRoom{}, fmt.Errorf("validate: %w", fieldErrors)
	}

	return bus, nil
}
