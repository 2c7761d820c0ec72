package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/SscSPs/budget_tracker/internal/platform/config"
	"github.com/SscSPs/budget_tracker/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_SQLiteMigratesOnce(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		DataBackend:  config.BackendSQLite,
		SQLiteDBPath: filepath.Join(t.TempDir(), "nested", "ledger.db"),
	}

	backend, err := database.Open(ctx, cfg)
	require.NoError(t, err)
	defer backend.Close()

	n, err := backend.Repos.AccountRepo.CountAccounts(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	changed, err := database.Migrate(ctx, cfg)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestOpen_Memory(t *testing.T) {
	backend, err := database.Open(context.Background(), &config.Config{DataBackend: config.BackendMemory})
	require.NoError(t, err)
	backend.Close()
	assert.NotNil(t, backend.Repos.TransactionRepo)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := database.Open(context.Background(), &config.Config{DataBackend: "oracle"})
	assert.Error(t, err)
}
