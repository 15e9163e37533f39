// Package server wires and runs the profile store: PostgreSQL storage,
// the gRPC profile service and the HTTP health endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/gophguard/internal/logging"
	"github.com/dmitrijs2005/gophguard/internal/server/config"
	"github.com/dmitrijs2005/gophguard/internal/server/health"
	"github.com/dmitrijs2005/gophguard/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/gophguard/internal/server/repositories/repomanager"

	gs "github.com/dmitrijs2005/gophguard/internal/server/grpc"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	profiles profiles.Repository
}

// NewApp opens the database, applies migrations and prepares the repositories.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	return newApp(c, logger, db, rm.Profiles(db)), nil
}

func newApp(c *config.Config, l logging.Logger, db *sql.DB, repo profiles.Repository) *App {
	return &App{config: c, logger: l, db: db, profiles: repo}
}

// Run serves gRPC and HTTP until a signal arrives, ctx is cancelled or one of
// the servers fails. The database is closed on return.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.profiles, app.config.ServiceSecret).Run(gctx)
	})

	g.Go(func() error {
		return health.NewServer(app.config.HTTPAddr, app.profiles, app.config.ShutdownTimeout, app.logger).Run(gctx)
	})

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
	}

	if app.db != nil {
		if cerr := app.db.Close(); cerr != nil {
			app.logger.Error(ctx, "db close", "error", cerr)
		}
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
