package mid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/smartroom/business/sdk/web"
	"github.com/jcpaschoal/smartroom/business/types/role"
	"github.com/jcpaschoal/smartroom/foundation/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Otel starts the otel tracing for the request and names the span after the
// matched route so traces of one endpoint group together.
func Otel(tracer trace.Tracer) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			ctx = otel.InjectTracing(ctx, tracer)

			if r.Pattern != "" {
				trace.SpanFromContext(ctx).SetAttributes(attribute.String("http.route", r.Pattern))
			}

			return next(ctx, r)
		}

		return h
	}

	return m
}

// tagIdentity records who made the request on the request span. Bookings are
// tenant scoped, so traces are filtered by tenant more often than by user.
func tagIdentity(ctx context.Context, userID uuid.UUID, tenantID uuid.UUID, rle role.Role) {
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("smartroom.tenant_id", tenantID.String()),
		attribute.String("smartroom.user_id", userID.String()),
		attribute.String("smartroom.role", rle.String()),
	)
}
