package analyticsapp

import (
	"net/http"

	"github.com/jcpaschoal/smartroom/app/sdk/auth"
	"github.com/jcpaschoal/smartroom/app/sdk/mid"
	"github.com/jcpaschoal/smartroom/business/domain/aclbus"
	"github.com/jcpaschoal/smartroom/business/domain/analyticsbus"
	"github.com/jcpaschoal/smartroom/business/sdk/web"
	"github.com/jcpaschoal/smartroom/business/types/actions"
	"github.com/jcpaschoal/smartroom/business/types/resource"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth         *auth.Auth
	ACL          *aclbus.Core
	AnalyticsBus *analyticsbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	api := newApp(cfg.AnalyticsBus)

	app.HandlerFunc(http.MethodGet, version, "/admin/analytics", api.summary,
		mid.Authenticate(cfg.Auth), mid.Authorize(cfg.ACL, resource.Analytics, actions.Get))
}
