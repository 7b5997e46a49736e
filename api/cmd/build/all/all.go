// Package all binds all the routes into the specified app.
package all

import (
	"fmt"

	"github.com/jcpaschoal/smartroom/app/domain/analyticsapp"
	"github.com/jcpaschoal/smartroom/app/domain/authapp"
	"github.com/jcpaschoal/smartroom/app/domain/bookingapp"
	"github.com/jcpaschoal/smartroom/app/domain/checkapp"
	"github.com/jcpaschoal/smartroom/app/domain/roomapp"
	"github.com/jcpaschoal/smartroom/app/domain/userapp"
	"github.com/jcpaschoal/smartroom/app/sdk/auth"
	"github.com/jcpaschoal/smartroom/app/sdk/mux"
	"github.com/jcpaschoal/smartroom/business/domain/aclbus"
	"github.com/jcpaschoal/smartroom/business/domain/analyticsbus"
	"github.com/jcpaschoal/smartroom/business/domain/analyticsbus/stores/analyticsdb"
	"github.com/jcpaschoal/smartroom/business/domain/bookingbus"
	"github.com/jcpaschoal/smartroom/business/domain/bookingbus/stores/bookingdb"
	"github.com/jcpaschoal/smartroom/business/domain/roombus"
	"github.com/jcpaschoal/smartroom/business/domain/roombus/stores/roomcache"
	"github.com/jcpaschoal/smartroom/business/domain/roombus/stores/roomdb"
	"github.com/jcpaschoal/smartroom/business/domain/tenantbus"
	"github.com/jcpaschoal/smartroom/business/domain/tenantbus/stores/tenantdb"
	"github.com/jcpaschoal/smartroom/business/domain/userbus"
	"github.com/jcpaschoal/smartroom/business/domain/userbus/stores/usercache"
	"github.com/jcpaschoal/smartroom/business/domain/userbus/stores/userdb"
	"github.com/jcpaschoal/smartroom/business/sdk/sqldb"
	"github.com/jcpaschoal/smartroom/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// of RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

// Add implements the RouteAdder interface.
func (add) Add(app *web.App, cfg mux.Config) error {

	// Construct the business domain packages we need here so we are using the
	// sames instances for the different set of domain apis.
	userBus := userbus.NewCore(usercache.NewStore(cfg.Log, userdb.NewStore(cfg.Log, cfg.DB), cfg.BusConfig.UserCache))
	tenantBus := tenantbus.NewCore(cfg.Log, tenantdb.NewStore(cfg.Log, cfg.DB))
	roomBus := roombus.NewCore(roomcache.NewStore(cfg.Log, roomdb.NewStore(cfg.Log, cfg.DB), cfg.BusConfig.RoomCache))
	bookingBus := bookingbus.NewCore(cfg.Log, bookingdb.NewStore(cfg.Log, cfg.DB), roomBus, cfg.BusConfig.Events)
	analyticsBus := analyticsbus.NewCore(analyticsdb.NewStore(cfg.Log, cfg.DB))

	acl, err := aclbus.NewCore(cfg.Log, aclbus.DefaultRules)
	if err != nil {
		return fmt.Errorf("acl: %w", err)
	}

	authClient := auth.New(auth.Config{
		Log:       cfg.Log,
		UserBus:   userBus,
		TenantBus: tenantBus,
		KeyLookup: cfg.AuthConfig.KeyLookup,
		ActiveKID: cfg.AuthConfig.ActiveKID,
		Issuer:    cfg.AuthConfig.Issuer,
		TTL:       cfg.AuthConfig.TokenTTL,
	})

	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
	})

	authapp.Routes(app, authapp.Config{
		Auth:      authClient,
		UserBus:   userBus,
		TenantBus: tenantBus,
	})

	userapp.Routes(app, userapp.Config{
		Log:      cfg.Log,
		Auth:     authClient,
		ACL:      acl,
		UserBus:  userBus,
		Beginner: sqldb.NewBeginner(cfg.DB),
	})

	roomapp.Routes(app, roomapp.Config{
		Auth:    authClient,
		ACL:     acl,
		RoomBus: roomBus,
	})

	bookingapp.Routes(app, bookingapp.Config{
		Auth:       authClient,
		ACL:        acl,
		BookingBus: bookingBus,
	})

	analyticsapp.Routes(app, analyticsapp.Config{
		Auth:         authClient,
		ACL:          acl,
		AnalyticsBus: analyticsBus,
	})

	return nil
}
