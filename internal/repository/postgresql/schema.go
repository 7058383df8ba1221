package postgresql

import (
	"context"
	_ "embed"

	"github.com/teamclock/attendance-api/internal/pkg/database"
)

//go:embed schema.sql
var schemaSQL string

// Migrate creates the tables if they do not exist. It is safe to run on every start.
func Migrate(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return database.Classify("migrate", err)
	}
	return nil
}

// Truncate empties every table. Used by the seed command and integration tests.
func Truncate(ctx context.Context, db *database.DB) error {
	q := GetQuerier(ctx, db)
	if _, err := q.Exec(ctx, "TRUNCATE TABLE attendances, users CASCADE"); err != nil {
		return database.Classify("truncate", err)
	}
	return nil
}
