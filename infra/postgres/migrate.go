package postgres

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose"
)

// Migrate runs a goose command ("up", "down", "status", ...) against the
// migrations found in dir.
func Migrate(db *sql.DB, dir, command string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Run(command, db, dir); err != nil {
		return fmt.Errorf("goose %s failed: %w", command, err)
	}

	return nil
}
