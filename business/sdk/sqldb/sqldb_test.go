package sqldb

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func Test_Translate(t *testing.T) {
	plain := errors.New("connection reset")

	tt := []struct {
		name  string
		err   error
		check func(err error) bool
	}{
		{
			name: "exclusion-violation",
			err:  &pgconn.PgError{Code: "23P01", ConstraintName: "ex_booking_overlap"},
			check: func(err error) bool {
				return errors.Is(err, ErrExclusionViolated)
			},
		},
		{
			name: "wrapped-exclusion-violation",
			err:  fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23P01", ConstraintName: "ex_booking_overlap"}),
			check: func(err error) bool {
				return errors.Is(err, ErrExclusionViolated)
			},
		},
		{
			name: "unique-violation",
			err:  &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
			check: func(err error) bool {
				var dup ErrDBDuplicatedEntry
				return errors.As(err, &dup) && dup.Column == "users_email_key"
			},
		},
		{
			name: "undefined-table",
			err:  &pgconn.PgError{Code: "42P01"},
			check: func(err error) bool {
				return errors.Is(err, ErrUndefinedTable)
			},
		},
		{
			name: "other-pg-error",
			err:  &pgconn.PgError{Code: "23503"},
			check: func(err error) bool {
				var pgErr *pgconn.PgError
				return errors.As(err, &pgErr) && pgErr.Code == "23503"
			},
		},
		{
			name: "not-a-pg-error",
			err:  plain,
			check: func(err error) bool {
				return err == plain
			},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got := translate(tc.err)
			if !tc.check(got) {
				t.Fatalf("unexpected translation of %v: %v", tc.err, got)
			}
		})
	}
}

func Test_TranslateKeepsConstraintName(t *testing.T) {
	err := translate(&pgconn.PgError{Code: "23P01", ConstraintName: "ex_booking_overlap"})

	if got, want := err.Error(), "ex_booking_overlap: "+ErrExclusionViolated.Error(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
