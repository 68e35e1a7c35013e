package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/m3rciful/photobot/core/logger"
)

const readyTimeout = 30 * time.Second

// RunMigrations applies every pending up migration from cfg.MigrationsDir.
func RunMigrations(ctx context.Context, cfg Config) error {
	if err := WaitForPostgres(ctx, cfg.URL(), readyTimeout); err != nil {
		migLog(ctx, slog.LevelError, "db.migrate", slog.String("status", "fail"), slog.String("err", err.Error()))
		return fmt.Errorf("database not ready: %w", err)
	}

	dir, err := filepath.Abs(cfg.MigrationsDir)
	if err != nil {
		return fmt.Errorf("resolve migrations dir: %w", err)
	}
	files := listMigrationFiles(dir)
	migLog(ctx, slog.LevelDebug, "resolve", withPreview([]slog.Attr{slog.String("path", dir)}, files)...)

	m, err := migrate.New("file://"+dir, cfg.URL())
	if err != nil {
		migLog(ctx, slog.LevelError, "db.migrate", slog.String("status", "fail"), slog.String("err", err.Error()))
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}
	defer m.Close()

	from, _, _ := m.Version()
	start := time.Now()
	upErr := m.Up()
	took := logger.Took(start)

	switch {
	case errors.Is(upErr, migrate.ErrNoChange):
		migLog(ctx, slog.LevelInfo, "summary",
			slog.String("status", "skip"),
			slog.Uint64("from_ver", uint64(from)),
			slog.Uint64("to_ver", uint64(from)),
			slog.Int("files", 0),
			slog.Duration("duration", took),
		)
		return nil
	case upErr != nil:
		migLog(ctx, slog.LevelError, "apply",
			slog.String("status", "fail"),
			slog.String("err", upErr.Error()),
			slog.Duration("duration", took),
		)
		return fmt.Errorf("migration execution failed: %w", upErr)
	}

	to, _, _ := m.Version()
	applied := appliedBetween(files, uint64(from), uint64(to))
	if len(applied) > 0 {
		migLog(ctx, slog.LevelDebug, "apply", withPreview(nil, applied)...)
	}
	migLog(ctx, slog.LevelInfo, "summary",
		slog.String("status", "ok"),
		slog.Uint64("from_ver", uint64(from)),
		slog.Uint64("to_ver", uint64(to)),
		slog.Int("files", len(applied)),
		slog.Duration("duration", took),
	)
	return nil
}

func migLog(ctx context.Context, level slog.Level, event string, attrs ...slog.Attr) {
	logger.LogEvent(ctx, logger.MIG, level, event, attrs...)
}

func withPreview(attrs []slog.Attr, files []string) []slog.Attr {
	attrs = append(attrs, slog.Int("files_total", len(files)))
	preview, truncated := logger.SummarizeStrings(files, 6)
	if preview != "" {
		attrs = append(attrs, slog.String("files_preview", preview))
	}
	if truncated {
		attrs = append(attrs, slog.Bool("files_truncated", true))
	}
	return attrs
}

// listMigrationFiles returns the sorted *.up.sql names in dir.
func listMigrationFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names
}

func parseVersion(name string) uint64 {
	head, _, _ := strings.Cut(name, "_")
	v, _ := strconv.ParseUint(head, 10, 64)
	return v
}

// appliedBetween picks files with from < version <= to.
func appliedBetween(files []string, from, to uint64) []string {
	var out []string
	for _, f := range files {
		if v := parseVersion(f); v > from && v <= to {
			out = append(out, f)
		}
	}
	return out
}
