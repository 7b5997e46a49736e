// Package analyticsapp maintains the app layer api for tenant analytics.
package analyticsapp

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/jcpaschoal/smartroom/app/sdk/errs"
	"github.com/jcpaschoal/smartroom/app/sdk/mid"
	"github.com/jcpaschoal/smartroom/business/domain/analyticsbus"
	"github.com/jcpaschoal/smartroom/business/sdk/web"
	"github.com/jcpaschoal/smartroom/business/types/clock"
)

const defaultDays = 30

type app struct {
	analyticsBus *analyticsbus.Core
	now          func() time.Time
}

func newApp(analyticsBus *analyticsbus.Core) *app {
	return &app{
		analyticsBus: analyticsBus,
		now:          time.Now,
	}
}

// summary returns the dashboard for the caller's tenant.
func (a *app) summary(ctx context.Context, r *http.Request) web.Encoder {
	tenantID, err := mid.GetTenantID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	days := defaultDays
	if v := r.URL.Query().Get("days"); v != "" {
		days, err = strconv.Atoi(v)
		if err != nil {
			return errs.NewFieldErrors("days", err)
		}
	}

	sum, err := a.analyticsBus.Summary(ctx, tenantID, clock.DateOf(a.now()), days)
	if err != nil {
		if errors.Is(err, analyticsbus.ErrInvalidWindow) {
			return errs.NewFieldErrors("days", analyticsbus.ErrInvalidWindow)
		}
		return errs.Errorf(errs.Internal, "summary: %s", err)
	}

	return toAppAnalytics(sum)
}
