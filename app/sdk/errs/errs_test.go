package errs_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jcpaschoal/smartroom/app/sdk/errs"
)

func Test_HTTPStatus(t *testing.T) {
	tests := []struct {
		code errs.ErrCode
		want int
	}{
		{errs.InvalidArgument, http.StatusBadRequest},
		{errs.Unauthenticated, http.StatusUnauthorized},
		{errs.PermissionDenied, http.StatusForbidden},
		{errs.NotFound, http.StatusNotFound},
		{errs.Aborted, http.StatusConflict},
		{errs.FailedPrecondition, http.StatusPreconditionFailed},
		{errs.Internal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			got := errs.New(tt.code, errors.New("boom")).HTTPStatus()
			if got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func Test_Encode(t *testing.T) {
	e := errs.New(errs.Aborted, errors.New("time slot conflicts with an existing booking"))

	data, contentType, err := e.Encode()
	if err != nil {
		t.Fatalf("encode: %s", err)
	}

	if contentType != "application/json" {
		t.Fatalf("content type: %s", contentType)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %s", err)
	}

	want := map[string]any{
		"code":    "aborted",
		"message": "time slot conflicts with an existing booking",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func Test_FieldErrors(t *testing.T) {
	var fe errs.FieldErrors
	fe.Add("start", errors.New("invalid time"))
	fe.Add("date", errors.New("invalid date"))

	e := errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", fe))

	want := map[string]string{
		"start": "invalid time",
		"date":  "invalid date",
	}

	if diff := cmp.Diff(want, e.Fields); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}

	if e.Message != "data validation error" {
		t.Fatalf("message: %s", e.Message)
	}
}

func Test_Check(t *testing.T) {
	type login struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	if err := errs.Check(login{Email: "ana@acme.io", Password: "secret"}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	err := errs.Check(login{Email: "not-an-email"})

	var fe errs.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected field errors, got %v", err)
	}

	fields := fe.Fields()
	if _, ok := fields["email"]; !ok {
		t.Errorf("expected email field error: %v", fields)
	}
	if _, ok := fields["password"]; !ok {
		t.Errorf("expected password field error: %v", fields)
	}
}
