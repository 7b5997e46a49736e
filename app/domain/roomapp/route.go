package roomapp

import (
	"net/http"

	"github.com/jcpaschoal/smartroom/app/sdk/auth"
	"github.com/jcpaschoal/smartroom/app/sdk/mid"
	"github.com/jcpaschoal/smartroom/business/domain/aclbus"
	"github.com/jcpaschoal/smartroom/business/domain/roombus"
	"github.com/jcpaschoal/smartroom/business/sdk/web"
	"github.com/jcpaschoal/smartroom/business/types/resource"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth    *auth.Auth
	ACL     *aclbus.Core
	RoomBus *roombus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	authorize := mid.AuthorizeMethod(cfg.ACL, resource.Room)

	api := newApp(cfg.RoomBus)

	app.HandlerFunc(http.MethodGet, version, "/rooms", api.query, authen, authorize)
	app.HandlerFunc(http.MethodGet, version, "/rooms/{room_id}", api.queryByID, authen, authorize)
	app.HandlerFunc(http.MethodPost, version, "/rooms", api.create, authen, authorize)
	app.HandlerFunc(http.MethodPut, version, "/rooms/{room_id}", api.update, authen, authorize)
}
