package mid_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jcpaschoal/smartroom/app/sdk/errs"
	"github.com/jcpaschoal/smartroom/app/sdk/mid"
	"github.com/jcpaschoal/smartroom/business/domain/aclbus"
	"github.com/jcpaschoal/smartroom/business/sdk/web"
	"github.com/jcpaschoal/smartroom/business/types/actions"
	"github.com/jcpaschoal/smartroom/business/types/resource"
	"github.com/jcpaschoal/smartroom/foundation/logger"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func Test_Errors(t *testing.T) {
	log := logger.Discard()

	tests := []struct {
		name    string
		handler web.HandlerFunc
		code    errs.ErrCode
		message string
	}{
		{
			name: "app-error",
			handler: func(ctx context.Context, r *http.Request) web.Encoder {
				return errs.New(errs.Aborted, errors.New("time slot conflicts with an existing booking"))
			},
			code:    errs.Aborted,
			message: "time slot conflicts with an existing booking",
		},
		{
			name: "internal-only-log",
			handler: func(ctx context.Context, r *http.Request) web.Encoder {
				return errs.Errorf(errs.InternalOnlyLog, "query: db exploded")
			},
			code:    errs.Internal,
			message: "Internal Server Error",
		},
		{
			name: "plain-error",
			handler: func(ctx context.Context, r *http.Request) web.Encoder {
				return errs.Errorf(errs.Internal, "connection refused")
			},
			code:    errs.Internal,
			message: "Internal Server Error",
		},
		{
			name: "panic",
			handler: func(ctx context.Context, r *http.Request) web.Encoder {
				panic("boom")
			},
			code:    errs.Internal,
			message: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := mid.Errors(log)(mid.Panics()(tt.handler))

			resp := h(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))

			appErr := errs.GetError(resp.(error))
			if appErr == nil {
				t.Fatalf("expected an *errs.Error, got %T", resp)
			}

			if appErr.Code != tt.code {
				t.Errorf("code: got %s, want %s", appErr.Code, tt.code)
			}

			if appErr.Message != tt.message {
				t.Errorf("message: got %q, want %q", appErr.Message, tt.message)
			}
		})
	}
}

func Test_AuthorizeWithoutAuthentication(t *testing.T) {
	acl, err := aclbus.NewCore(logger.Discard(), aclbus.DefaultRules)
	if err != nil {
		t.Fatalf("acl: %s", err)
	}

	called := false
	next := func(ctx context.Context, r *http.Request) web.Encoder {
		called = true
		return nil
	}

	h := mid.Authorize(acl, resource.Room, actions.Get)(next)

	resp := h(context.Background(), httptest.NewRequest(http.MethodGet, "/v1/rooms", nil))

	appErr := errs.GetError(resp.(error))
	if appErr == nil || appErr.Code != errs.Unauthenticated {
		t.Fatalf("expected unauthenticated, got %v", resp)
	}

	if called {
		t.Fatal("handler must not run without a role in the context")
	}
}

func Test_PanicsRecordsRoute(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("mid")

	ctx, span := tracer.Start(context.Background(), "request")

	r := httptest.NewRequest(http.MethodPost, "/v1/bookings", nil)
	r.Pattern = "POST /v1/bookings"

	h := mid.Otel(tracer)(mid.Panics()(func(ctx context.Context, r *http.Request) web.Encoder {
		panic("nil room")
	}))

	resp := h(ctx, r)
	span.End()

	appErr := errs.GetError(resp.(error))
	if appErr == nil || appErr.Code != errs.InternalOnlyLog {
		t.Fatalf("expected an internal only log error, got %v", resp)
	}

	for _, want := range []string{"PANIC [nil room]", "ROUTE[POST /v1/bookings]", "TENANT[-]"} {
		if !strings.Contains(appErr.Message, want) {
			t.Errorf("message %q should contain %q", appErr.Message, want)
		}
	}

	ended := recorder.Ended()
	if len(ended) != 1 {
		t.Fatalf("got %d ended spans, want 1", len(ended))
	}

	if got := ended[0].Status().Code; got != codes.Error {
		t.Errorf("span status: got %s, want %s", got, codes.Error)
	}

	var route string
	for _, kv := range ended[0].Attributes() {
		if kv.Key == "http.route" {
			route = kv.Value.AsString()
		}
	}

	if route != "POST /v1/bookings" {
		t.Errorf("http.route: got %q, want %q", route, "POST /v1/bookings")
	}
}
