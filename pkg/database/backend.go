// Package database opens the ledger store selected by configuration.
package database

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/budget_tracker/internal/platform/config"
	"github.com/SscSPs/budget_tracker/internal/platform/migrations"
	"github.com/SscSPs/budget_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/budget_tracker/internal/repositories/database/sqlitedb"
	"github.com/SscSPs/budget_tracker/internal/repositories/memory"
)

// Backend is an open store together with its repositories.
type Backend struct {
	Name  string
	Repos portsrepo.RepositoryProvider
	close func()
}

// Close releases the connections held by the backend.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Migrate applies pending schema migrations for the configured backend.
// The memory backend has no schema and reports no change.
func Migrate(ctx context.Context, cfg *config.Config) (bool, error) {
	switch cfg.DataBackend {
	case config.BackendPostgres:
		return migrations.RunPostgres(cfg.DatabaseURL)
	case config.BackendSQLite:
		// Open creates the parent directory of the database file.
		db, err := sqlitedb.Open(ctx, cfg.SQLiteDBPath)
		if err != nil {
			return false, err
		}
		db.Close()
		return migrations.RunSQLite(sqlitedb.DSN(cfg.SQLiteDBPath))
	case config.BackendMemory:
		return false, nil
	}
	return false, fmt.Errorf("unsupported data backend %q", cfg.DataBackend)
}

// Open migrates and opens the configured backend.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	changed, err := Migrate(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("migrate %s: %w", cfg.DataBackend, err)
	}
	if changed {
		slog.InfoContext(ctx, "Database migrations applied", slog.String("backend", cfg.DataBackend))
	}

	switch cfg.DataBackend {
	case config.BackendPostgres:
		pool, err := NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Name:  cfg.DataBackend,
			Repos: pgsql.NewRepositoryProvider(pool),
			close: pool.Close,
		}, nil

	case config.BackendSQLite:
		db, err := sqlitedb.Open(ctx, cfg.SQLiteDBPath)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Name:  cfg.DataBackend,
			Repos: sqlitedb.NewRepositoryProvider(db),
			close: func() {
				if err := db.Close(); err != nil {
					slog.Error("Error closing sqlite database", slog.String("error", err.Error()))
				}
			},
		}, nil

	case config.BackendMemory:
		slog.WarnContext(ctx, "Using the in-memory backend, data is lost on exit")
		return &Backend{
			Name:  cfg.DataBackend,
			Repos: memory.NewRepositoryProvider(memory.NewStore()),
		}, nil
	}
	return nil, fmt.Errorf("unsupported data backend %q", cfg.DataBackend)
}
