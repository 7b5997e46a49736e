package mid

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jcpaschoal/smartroom/app/sdk/errs"
	"github.com/jcpaschoal/smartroom/business/sdk/web"
	"github.com/jcpaschoal/smartroom/foundation/logger"
)

// Logger writes information about the request to the logs.
func Logger(log *logger.Logger) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			now := time.Now()

			path := r.URL.Path
			if r.URL.RawQuery != "" {
				path = fmt.Sprintf("%s?%s", path, r.URL.RawQuery)
			}

			log.Info(ctx, "request started", "method", r.Method, "path", path, "remoteaddr", r.RemoteAddr)

			resp := next(ctx, r)

			log.Info(ctx, "request completed", "method", r.Method, "path", path, "remoteaddr", r.RemoteAddr,
				"statuscode", statusCode(resp), "since", time.Since(now).String())

			return resp
		}

		return h
	}

	return m
}

func statusCode(resp web.Encoder) int {
	if err := checkIsError(resp); err != nil {
		if appErr := errs.GetError(err); appErr != nil {
			return appErr.HTTPStatus()
		}
		return http.StatusInternalServerError
	}

	if resp == nil {
		return http.StatusNoContent
	}

	if v, ok := resp.(interface{ HTTPStatus() int }); ok {
		return v.HTTPStatus()
	}

	return http.StatusOK
}
