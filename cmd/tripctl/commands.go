package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// CLI is the tripctl command line.
type CLI struct {
	DatabaseURL string `name:"database-url" help:"Postgres connection string." env:"DATABASE_URL" required:""`

	Migrate    MigrateCmd    `cmd:"" help:"Apply pending migrations, or roll back with --down-to."`
	DeleteUser DeleteUserCmd `cmd:"" name:"delete-user" help:"Delete a user and all of their trips."`
}

// userDeleter is the slice of service.AccountService tripctl uses.
type userDeleter interface {
	DeleteUser(ctx context.Context, username string) (int, error)
}

type migrator struct {
	up     func(ctx context.Context) (int, error)
	downTo func(ctx context.Context, version int64) (int, error)
}

// appContext is passed to every command's Run method.
type appContext struct {
	ctx        context.Context
	out        io.Writer
	log        *slog.Logger
	migrations migrator
	accounts   userDeleter
}

// MigrateCmd applies or rolls back schema migrations.
type MigrateCmd struct {
	DownTo int64 `name:"down-to" help:"Roll back to this version (0 removes everything)." default:"-1"`
}

func (c *MigrateCmd) Run(app *appContext) error {
	if c.DownTo >= 0 {
		n, err := app.migrations.downTo(app.ctx, c.DownTo)
		if err != nil {
			return err
		}
		app.log.Info("migrations rolled back", "count", n, "version", c.DownTo)
		fmt.Fprintf(app.out, "rolled back %d migration(s) to version %d\n", n, c.DownTo)
		return nil
	}

	n, err := app.migrations.up(app.ctx)
	if err != nil {
		return err
	}
	app.log.Info("migrations applied", "count", n)
	fmt.Fprintf(app.out, "applied %d migration(s)\n", n)
	return nil
}

// DeleteUserCmd removes a user with the trip cascade.
type DeleteUserCmd struct {
	Username string `arg:"" help:"Username of the account to delete."`
}

func (c *DeleteUserCmd) Run(app *appContext) error {
	trips, err := app.accounts.DeleteUser(app.ctx, c.Username)
	if err != nil {
		return err
	}
	app.log.Info("user deleted", "username", c.Username, "trips", trips)
	fmt.Fprintf(app.out, "deleted user %q and %d trip(s)\n", c.Username, trips)
	return nil
}
