// Package migrate contains the database schema, migrations and seeding data.
package migrate

import (
	"bufio"
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jcpaschoal/smartroom/business/sdk/sqldb"
	"github.com/jmoiron/sqlx"
)

var (
	//go:embed sql/migrate.sql
	migrateDoc string

	//go:embed sql/seed.sql
	seedDoc string
)

// Migration is one versioned step of the schema.
type Migration struct {
	Version     float64
	Description string
	Script      string
}

// Migrate attempts to bring the database up to date with the migrations
// defined in this package. Applied versions are recorded so the call is
// idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if err := sqldb.StatusCheck(ctx, db); err != nil {
		return fmt.Errorf("status check database: %w", err)
	}

	migrations, err := Parse(migrateDoc)
	if err != nil {
		return fmt.Errorf("parse migrations: %w", err)
	}

	const q = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version      NUMERIC(10,2) NOT NULL PRIMARY KEY,
		description  TEXT          NOT NULL,
		applied_at   TIMESTAMP     NOT NULL DEFAULT now()
	)`

	if _, err := db.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("create version table: %w", err)
	}

	for _, m := range migrations {
		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("version[%.2f]: %w", m.Version, err)
		}
	}

	return nil
}

// Seed runs the seed document defined in this package against db. The data
// uses ON CONFLICT clauses so it can be applied more than once.
func Seed(ctx context.Context, db *sqlx.DB) (err error) {
	if err := sqldb.StatusCheck(ctx, db); err != nil {
		return fmt.Errorf("status check database: %w", err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if errTx := tx.Rollback(); errTx != nil {
			if errors.Is(errTx, sql.ErrTxDone) {
				return
			}
			err = fmt.Errorf("rollback: %w", errTx)
		}
	}()

	if _, err := tx.ExecContext(ctx, seedDoc); err != nil {
		return fmt.Errorf("exec: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func apply(ctx context.Context, db *sqlx.DB, m Migration) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, m.Version).Scan(&exists); err != nil {
		return fmt.Errorf("check version: %w", err)
	}

	if exists {
		return nil
	}

	if _, err := tx.ExecContext(ctx, m.Script); err != nil {
		return fmt.Errorf("exec: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version, description) VALUES ($1, $2)`, m.Version, m.Description); err != nil {
		return fmt.Errorf("record version: %w", err)
	}

	return tx.Commit()
}

// Parse splits a migration document into its versioned steps. Each step
// starts with a "-- Version: x.yy" line and an optional "-- Description:"
// line. Versions must be strictly increasing.
func Parse(doc string) ([]Migration, error) {
	var migrations []Migration
	var cur *Migration
	var script strings.Builder

	flush := func() {
		if cur == nil {
			return
		}
		cur.Script = strings.TrimSpace(script.String())
		migrations = append(migrations, *cur)
		script.Reset()
	}

	scanner := bufio.NewScanner(strings.NewReader(doc))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, "-- Version:"):
			flush()

			v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(trimmed, "-- Version:")), 64)
			if err != nil {
				return nil, fmt.Errorf("parse version %q: %w", trimmed, err)
			}

			if n := len(migrations); n > 0 && v <= migrations[n-1].Version {
				return nil, fmt.Errorf("version %.2f is not greater than %.2f", v, migrations[n-1].Version)
			}

			cur = &Migration{Version: v}

		case strings.HasPrefix(trimmed, "-- Description:"):
			if cur == nil {
				return nil, errors.New("description found before any version")
			}
			cur.Description = strings.TrimSpace(strings.TrimPrefix(trimmed, "-- Description:"))

		default:
			if cur == nil {
				if trimmed != "" {
					return nil, fmt.Errorf("statement found before any version: %q", trimmed)
				}
				continue
			}
			script.WriteString(line)
			script.WriteByte('\n')
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	flush()

	return migrations, nil
}
