package mid

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/jcpaschoal/smartroom/app/sdk/errs"
	"github.com/jcpaschoal/smartroom/app/sdk/metrics"
	"github.com/jcpaschoal/smartroom/business/sdk/web"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Panics recovers from panics and converts the panic to an error so it is
// reported in Metrics and handled in Errors. The error names the route and
// tenant so a crash in one tenant's traffic can be traced back to it.
func Panics() web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) (resp web.Encoder) {
			defer func() {
				if rec := recover(); rec != nil {
					route := r.Pattern
					if route == "" {
						route = r.Method + " " + r.URL.Path
					}

					tenant := "-"
					if tenantID, err := GetTenantID(ctx); err == nil {
						tenant = tenantID.String()
					}

					span := trace.SpanFromContext(ctx)
					span.RecordError(fmt.Errorf("panic: %v", rec))
					span.SetStatus(codes.Error, "panic")

					resp = errs.Errorf(errs.InternalOnlyLog, "PANIC [%v] ROUTE[%s] TENANT[%s] TRACE[%s]", rec, route, tenant, string(debug.Stack()))

					metrics.AddPanics(ctx)
				}
			}()

			return next(ctx, r)
		}

		return h
	}

	return m
}
