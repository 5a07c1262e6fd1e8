package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/cakeinvoice/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	require.NoError(t, err)
	return n > 0
}

func TestInitDatabase_CreatesTables(t *testing.T) {
	ctx := context.Background()
	repos, err := InitDatabase(ctx, filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer repos.Close()

	for _, name := range []string{"goose_db_version", "metadata", "exports"} {
		assert.True(t, tableExists(t, repos.DB, name), name)
	}
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, RunMigrations(ctx, db))
	require.NoError(t, RunMigrations(ctx, db))
	assert.True(t, tableExists(t, db, "metadata"))
}

func TestInitDatabase_MemoryRepositoriesWork(t *testing.T) {
	ctx := context.Background()
	repos, err := InitDatabase(ctx, ":memory:")
	require.NoError(t, err)
	defer repos.Close()

	require.NoError(t, repos.Metadata.Set(ctx, "k", []byte("v")))
	v, err := repos.Metadata.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)

	require.NoError(t, repos.Exports.Insert(ctx, models.ExportRecord{
		InvoiceNumber: "INV-1", Channel: models.ChannelLocal, Status: "SUCCESS", CreatedAt: time.Now(),
	}))
	list, err := repos.Exports.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
