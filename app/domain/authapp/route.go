package authapp

import (
	"net/http"

	"github.com/jcpaschoal/smartroom/app/sdk/auth"
	"github.com/jcpaschoal/smartroom/business/domain/tenantbus"
	"github.com/jcpaschoal/smartroom/business/domain/userbus"
	"github.com/jcpaschoal/smartroom/business/sdk/web"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth      *auth.Auth
	UserBus   *userbus.Core
	TenantBus *tenantbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	api := newApp(cfg.Auth, cfg.TenantBus, cfg.UserBus)

	app.HandlerFunc(http.MethodPost, version, "/auth/login", api.login)
	app.HandlerFunc(http.MethodPost, version, "/auth/register", api.register)
}
