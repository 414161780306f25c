// Package migrate applies the embedded SQL migrations.
package migrate

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
	"gitlab.com/dirk.krummacker/relationship-service/migrations"
)

func setup() error {
	goose.SetBaseFS(migrations.FS)
	return goose.SetDialect("mysql")
}

// Up runs all pending migrations.
func Up(ctx context.Context, db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Down rolls back the most recent migration.
func Down(ctx context.Context, db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.DownContext(ctx, db, ".")
}

// Status prints the state of every migration.
func Status(ctx context.Context, db *sql.DB) error {
	if err := setup(); err != nil {
		return err
	}
	return goose.StatusContext(ctx, db, ".")
}
