// Package migrations embeds the goose SQL migrations so the API server, the
// tripctl admin tool, and integration tests all apply the same schema.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed *.sql
var FS embed.FS

// Up applies every pending migration and returns how many ran.
func Up(ctx context.Context, db *sql.DB) (int, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, FS)
	if err != nil {
		return 0, fmt.Errorf("migrations.Up: provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("migrations.Up: %w", err)
	}
	return len(results), nil
}

// DownTo rolls the schema back to version (0 removes everything).
func DownTo(ctx context.Context, db *sql.DB, version int64) (int, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, FS)
	if err != nil {
		return 0, fmt.Errorf("migrations.DownTo: provider: %w", err)
	}
	results, err := provider.DownTo(ctx, version)
	if err != nil {
		return 0, fmt.Errorf("migrations.DownTo: %w", err)
	}
	return len(results), nil
}
