package migrate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

const DefaultDir = "pkg/migrate/migrations"

// Run executes a standard goose command that requires a DB connection.
func Run(ctx context.Context, db *sql.DB, dialect, dir string, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	if err := goose.SetDialect(normalizeDialect(dialect)); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	// RunContext prints status output to stdout (goose internal)
	if err := goose.RunContext(ctx, command, db, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// Status prints the migration status table for the configured directory.
func Status(ctx context.Context, db *sql.DB, dialect, dir string) error {
	if err := goose.SetDialect(normalizeDialect(dialect)); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.StatusContext(ctx, db, dir); err != nil {
		return fmt.Errorf("goose status: %w", err)
	}
	return nil
}

func normalizeDialect(dialect string) string {
	switch dialect {
	case "sqlite", "sqlite3":
		return "sqlite3"
	default:
		return "postgres"
	}
}
