// Package bootstrap runs the start-up pipeline: logger, optional database,
// storage, seeders and services.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	coreconfig "github.com/m3rciful/photobot/core/config"
	coredatabase "github.com/m3rciful/photobot/core/database"
	"github.com/m3rciful/photobot/core/logger"
)

// Options control Run. Nil hooks use the core defaults.
type Options struct {
	Config *coreconfig.Config
	// AppConfig is passed to the service provider untouched.
	AppConfig any
	// Database, when set, is connected and migrated before storage opens.
	Database *coredatabase.Config

	LoggerInit func(*coreconfig.Config) error
	Connect    func(context.Context, coredatabase.Config) (*sqlx.DB, error)
	Migrate    func(context.Context, coredatabase.Config) error

	// OpenStorage opens the application backend; db is nil without Database.
	OpenStorage func(ctx context.Context, db *sqlx.DB) (Storage, error)
	Modules     Modules
}

// Result exposes what Run initialized.
type Result struct {
	DB       *sqlx.DB
	Storage  Storage
	Services any
}

// Close releases the database pool, if any.
func (r *Result) Close() error {
	if r == nil || r.DB == nil {
		return nil
	}
	return r.DB.Close()
}

// Run executes the pipeline and stops at the first failing step.
func Run(ctx context.Context, opts Options) (_ *Result, err error) {
	if opts.Config == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}
	initLogger := opts.LoggerInit
	if initLogger == nil {
		initLogger = logger.Init
	}
	if err := initLogger(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	res := &Result{}
	defer func() {
		if err != nil {
			_ = res.Close()
		}
	}()

	if opts.Database != nil {
		connect := opts.Connect
		if connect == nil {
			connect = coredatabase.Connect
		}
		migrate := opts.Migrate
		if migrate == nil {
			migrate = coredatabase.RunMigrations
		}
		if res.DB, err = connect(ctx, *opts.Database); err != nil {
			return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
		}
		if err = migrate(ctx, *opts.Database); err != nil {
			return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
		}
	}

	if opts.OpenStorage != nil {
		if res.Storage, err = opts.OpenStorage(ctx, res.DB); err != nil {
			return nil, fmt.Errorf("bootstrap: storage open failed: %w", err)
		}
	}

	for i, s := range opts.Modules.Seeders {
		if err = s.Seed(ctx, res.Storage); err != nil {
			return nil, fmt.Errorf("bootstrap: seeder %d failed: %w", i, err)
		}
	}

	if opts.Modules.Services != nil {
		if res.Services, err = opts.Modules.Services.Provide(ctx, opts.AppConfig, res.Storage); err != nil {
			return nil, fmt.Errorf("bootstrap: services failed: %w", err)
		}
	}

	logger.Info(ctx, "app", "bootstrap",
		slog.String("status", "ok"),
		slog.Bool("db", res.DB != nil),
		slog.Int("count", len(opts.Modules.Seeders)),
	)
	return res, nil
}
