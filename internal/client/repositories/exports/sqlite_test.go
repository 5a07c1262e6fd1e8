package exports

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/cakeinvoice/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE exports (
  id TEXT PRIMARY KEY, invoice_number TEXT NOT NULL, file_name TEXT NOT NULL DEFAULT '',
  channel TEXT NOT NULL, tier INTEGER NOT NULL DEFAULT 0, status TEXT NOT NULL,
  location TEXT NOT NULL DEFAULT '', detail TEXT NOT NULL DEFAULT '', created_at INTEGER NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestInsertAndList_NewestFirst(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, r.Insert(ctx, models.ExportRecord{
		InvoiceNumber: "INV-2026-001", FileName: "Invoice_INV-2026-001.pdf",
		Channel: models.ChannelLocal, Tier: 3, Status: "SUCCESS", Location: "/tmp/a.pdf", CreatedAt: base,
	}))
	require.NoError(t, r.Insert(ctx, models.ExportRecord{
		ID: "fixed", InvoiceNumber: "INV-2026-001", Channel: models.ChannelLedger,
		Status: "SUCCESS", Detail: "row appended", CreatedAt: base.Add(time.Minute),
	}))

	list, err := r.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "fixed", list[0].ID)
	assert.Equal(t, models.ChannelLedger, list[0].Channel)
	assert.True(t, list[0].CreatedAt.Equal(base.Add(time.Minute)))

	assert.NotEmpty(t, list[1].ID)
	assert.Equal(t, 3, list[1].Tier)
	assert.Equal(t, "/tmp/a.pdf", list[1].Location)

	limited, err := r.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "fixed", limited[0].ID)
}

func TestInsert_DefaultsCreatedAt(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	before := time.Now().Add(-time.Second)
	require.NoError(t, r.Insert(ctx, models.ExportRecord{InvoiceNumber: "X", Channel: models.ChannelS3, Status: "SUCCESS"}))

	list, err := r.List(ctx, 5)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].CreatedAt.After(before))
}

func TestList_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("locked")
	mock.ExpectQuery(`SELECT id, invoice_number`).WithArgs(-1).WillReturnError(boom)

	_, err = NewSQLiteRepository(db).List(context.Background(), 0)
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}
