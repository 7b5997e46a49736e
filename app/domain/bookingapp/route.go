package bookingapp

import (
	"net/http"

	"github.com/jcpaschoal/smartroom/app/sdk/auth"
	"github.com/jcpaschoal/smartroom/app/sdk/mid"
	"github.com/jcpaschoal/smartroom/business/domain/aclbus"
	"github.com/jcpaschoal/smartroom/business/domain/bookingbus"
	"github.com/jcpaschoal/smartroom/business/sdk/web"
	"github.com/jcpaschoal/smartroom/business/types/actions"
	"github.com/jcpaschoal/smartroom/business/types/resource"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth       *auth.Auth
	ACL        *aclbus.Core
	BookingBus *bookingbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	canRead := mid.Authorize(cfg.ACL, resource.Booking, actions.Get)
	canCreate := mid.Authorize(cfg.ACL, resource.Booking, actions.Create)
	canCancel := mid.Authorize(cfg.ACL, resource.Booking, actions.Delete)
	canManage := mid.Authorize(cfg.ACL, resource.Booking, actions.Manage)

	api := newApp(cfg.BookingBus, cfg.ACL)

	app.HandlerFunc(http.MethodPost, version, "/bookings", api.admit, authen, canCreate)
	app.HandlerFunc(http.MethodGet, version, "/bookings", api.queryMine, authen, canRead)
	app.HandlerFunc(http.MethodGet, version, "/bookings/availability", api.availability, authen, canRead)
	app.HandlerFunc(http.MethodGet, version, "/bookings/{booking_id}", api.queryByID, authen, canRead)
	app.HandlerFunc(http.MethodPost, version, "/bookings/{booking_id}/cancel", api.cancel, authen, canCancel)
	app.HandlerFunc(http.MethodGet, version, "/admin/bookings", api.query, authen, canManage)
}
