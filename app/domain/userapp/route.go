package userapp

import (
	"net/http"

	"github.com/jcpaschoal/smartroom/app/sdk/auth"
	"github.com/jcpaschoal/smartroom/app/sdk/mid"
	"github.com/jcpaschoal/smartroom/business/domain/aclbus"
	"github.com/jcpaschoal/smartroom/business/domain/userbus"
	"github.com/jcpaschoal/smartroom/business/sdk/sqldb"
	"github.com/jcpaschoal/smartroom/business/sdk/web"
	"github.com/jcpaschoal/smartroom/business/types/resource"
	"github.com/jcpaschoal/smartroom/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log      *logger.Logger
	Auth     *auth.Auth
	ACL      *aclbus.Core
	UserBus  *userbus.Core
	Beginner sqldb.Beginner
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)
	authorize := mid.AuthorizeMethod(cfg.ACL, resource.User)

	api := newApp(cfg.UserBus)

	app.HandlerFunc(http.MethodGet, version, "/users", api.query, authen, authorize)
	app.HandlerFunc(http.MethodGet, version, "/users/{user_id}", api.queryByID, authen, authorize)
	app.HandlerFunc(http.MethodPut, version, "/users/{user_id}", api.update, authen, authorize)

	create := []web.MidFunc{authen, authorize}
	if cfg.Beginner != nil {
		create = append(create, mid.BeginCommitRollback(cfg.Log, cfg.Beginner))
	}
	app.HandlerFunc(http.MethodPost, version, "/users", api.create, create...)
}
