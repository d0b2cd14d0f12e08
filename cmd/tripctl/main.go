// Command tripctl is the administrative CLI for the trip planner database.
// It applies or rolls back schema migrations and deletes users together with
// everything they own.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/internal/service"
	"github.com/pkordes/trip-planner/migrations"
)

func main() {
	// Load .env before parsing so kong's env:"" defaults can see it.
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("tripctl"),
		kong.Description("Administrative tasks for the trip planner database."),
		kong.UsageOnError(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, closeApp, err := newApp(ctx, cli.DatabaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeApp()

	if err := kctx.Run(app); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp opens the database and binds the command dependencies to it.
func newApp(ctx context.Context, databaseURL string) (*appContext, func(), error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	repos := repo.NewRepos(pool)
	app := &appContext{
		ctx: ctx,
		out: os.Stdout,
		log: slog.New(slog.NewTextHandler(os.Stderr, nil)),
		migrations: migrator{
			up:     func(ctx context.Context) (int, error) { return migrations.Up(ctx, sqlDB) },
			downTo: func(ctx context.Context, v int64) (int, error) { return migrations.DownTo(ctx, sqlDB, v) },
		},
		// Deleting users never hashes a password.
		accounts: service.NewAccountService(repos.Users, repo.NewTxRunner(pool), nil),
	}
	return app, func() {
		_ = sqlDB.Close()
		pool.Close()
	}, nil
}
