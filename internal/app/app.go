// Package app assembles the bot from configuration: it opens the records
// backend, seeds it and builds the dialogue engine on top.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/photobot/core/bootstrap"
	corecmd "github.com/m3rciful/photobot/core/cmd"
	"github.com/m3rciful/photobot/core/logger"
	"github.com/m3rciful/photobot/internal/bot"
	"github.com/m3rciful/photobot/internal/config"
	"github.com/m3rciful/photobot/internal/conversation"
	"github.com/m3rciful/photobot/internal/dialogue"
	"github.com/m3rciful/photobot/internal/records"
)

// Bootstrap is the cmd.Options hook for the photobot binary.
func Bootstrap(ctx context.Context, carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
	cfg, ok := carrier.(*config.Config)
	if !ok || cfg == nil {
		return nil, fmt.Errorf("app: unexpected config type %T", carrier)
	}
	res, engine, err := run(ctx, cfg, bootstrap.Options{})
	if err != nil {
		return nil, err
	}
	return bot.New(cfg, engine, res.Close), nil
}

// run fills base with the backend wiring and runs the pipeline. Hooks already
// set on base are kept so tests can skip the logger and database.
func run(ctx context.Context, cfg *config.Config, base bootstrap.Options) (*bootstrap.Result, *dialogue.Engine, error) {
	opts := base
	opts.Config = cfg.CoreConfig()
	opts.AppConfig = cfg
	if cfg.Store.Backend == config.BackendPostgres {
		db := cfg.Database
		opts.Database = &db
	}
	opts.OpenStorage = openStorage(cfg)

	provider := bootstrap.TypedServiceProviderFunc[*dialogue.Engine](provideEngine)
	opts.Modules = bootstrap.Modules{Services: provider}
	if cfg.Store.Backend == config.BackendSheets && cfg.Sheets.EnsureHeader {
		opts.Modules.Seeders = append(opts.Modules.Seeders, bootstrap.SeederFunc(seedHeader))
	}

	res, err := bootstrap.Run(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	engine, ok := res.Services.(*dialogue.Engine)
	if !ok {
		_ = res.Close()
		return nil, nil, fmt.Errorf("app: unexpected services type %T", res.Services)
	}

	logger.Info(ctx, "app", "store.ready",
		slog.String("status", "ok"),
		slog.String("backend", cfg.Store.Backend),
	)
	return res, engine, nil
}

func openStorage(cfg *config.Config) func(context.Context, *sqlx.DB) (bootstrap.Storage, error) {
	return func(ctx context.Context, db *sqlx.DB) (bootstrap.Storage, error) {
		switch cfg.Store.Backend {
		case config.BackendSheets:
			return openSheets(ctx, cfg.Sheets)
		case config.BackendPostgres:
			if db == nil {
				return nil, fmt.Errorf("postgres backend without database connection")
			}
			return records.NewPostgres(db, nil), nil
		case config.BackendMemory:
			return records.NewMemory(nil), nil
		}
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

func openSheets(ctx context.Context, sc config.SheetsConfig) (*records.Sheets, error) {
	creds, err := sheetsCredentials(sc)
	if err != nil {
		return nil, err
	}
	grid, err := records.OpenGrid(ctx, records.GridOptions{
		CredentialsJSON: creds,
		SpreadsheetID:   sc.SpreadsheetID,
		SpreadsheetName: sc.SpreadsheetName,
		Worksheet:       sc.Worksheet,
		RequestTimeout:  sc.RequestTimeout(),
	})
	if err != nil {
		return nil, err
	}
	return records.NewSheets(grid, nil), nil
}

// sheetsCredentials prefers the inline JSON over the key file.
func sheetsCredentials(sc config.SheetsConfig) ([]byte, error) {
	if s := strings.TrimSpace(sc.CredentialsJSON); s != "" {
		return []byte(s), nil
	}
	path := strings.TrimSpace(sc.CredentialsFile)
	if path == "" {
		return nil, fmt.Errorf("sheets credentials are not configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sheets credentials: %w", err)
	}
	return data, nil
}

func seedHeader(ctx context.Context, storage bootstrap.Storage) error {
	s, ok := storage.(*records.Sheets)
	if !ok {
		return fmt.Errorf("header seeder: storage is %T, not sheets", storage)
	}
	return s.EnsureHeader(ctx)
}

func provideEngine(_ context.Context, cfg any, storage bootstrap.Storage) (*dialogue.Engine, error) {
	appCfg, ok := cfg.(*config.Config)
	if !ok {
		return nil, fmt.Errorf("engine: config is %T", cfg)
	}
	store, ok := storage.(records.Store)
	if !ok {
		return nil, fmt.Errorf("engine: storage %T is not a records store", storage)
	}
	msgs := dialogue.DefaultMessages(appCfg.Support.Phone, appCfg.Support.Link)
	return dialogue.New(store, conversation.NewMemory(nil), msgs), nil
}
