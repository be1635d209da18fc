//go:build integration

package postgres

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/IlyasAtabaev731/vending-machine/internal/domain/models"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgres(t *testing.T) string {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("vending"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(ctx))
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	return dsn
}

func migrateUp(t *testing.T, dsn string, steps int) {
	t.Helper()

	dir, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)

	m, err := migrate.New("file://"+dir, dsn)
	require.NoError(t, err)
	defer m.Close()

	err = m.Steps(steps)
	if !errors.Is(err, migrate.ErrNoChange) {
		require.NoError(t, err)
	}
}

func TestIntegration_LoadSeed(t *testing.T) {
	dsn := setupPostgres(t)
	migrateUp(t, dsn, 2)

	storage, err := New(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, storage.Stop()) })

	ctx := context.Background()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	inventory, err := storage.LoadInventory(ctx, log)
	require.NoError(t, err)
	require.Len(t, inventory, 4)
	assert.True(t, inventory["chips"].Cost.Equal(decimal.RequireFromString("0.50")))
	assert.Equal(t, 10, inventory["chips"].Stock)
	assert.Equal(t, "trail mix", inventory["trail mix"].Name)

	bank, err := storage.LoadBank(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Bank{Quarters: 100, Dimes: 200, Nickles: 300, Pennies: 500}, bank)
}

func TestIntegration_LoadEmptySeed(t *testing.T) {
	dsn := setupPostgres(t)
	migrateUp(t, dsn, 1)

	storage, err := New(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, storage.Stop()) })

	ctx := context.Background()

	inventory, err := storage.LoadInventory(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	assert.Empty(t, inventory)

	bank, err := storage.LoadBank(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Bank{}, bank)
}
