package metadata

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
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

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)
	return db
}

func TestSetGet_Upsert(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "invoice-settings", []byte(`{"a":1}`)))
	require.NoError(t, r.Set(ctx, "invoice-settings", []byte(`{"a":2}`)))

	v, err := r.Get(ctx, "invoice-settings")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"a":2}`), v)
}

func TestGet_Missing_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestSet_NilValueStoredAsEmpty(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", nil))
	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestDelete(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", []byte{0xAA}))
	require.NoError(t, r.Set(ctx, "b", []byte{0xBB}))
	require.NoError(t, r.Delete(ctx, "a"))
	require.NoError(t, r.Delete(ctx, "a"))

	v, err := r.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = r.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xBB}, v)
}

func TestGet_DatabaseErrorIsWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("disk I/O error")
	mock.ExpectQuery(`SELECT value FROM metadata WHERE key = \?`).
		WithArgs("k").
		WillReturnError(boom)

	_, err = NewSQLiteRepository(db).Get(context.Background(), "k")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "metadata[k]")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_DatabaseErrorIsWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("readonly")
	mock.ExpectExec(`INSERT INTO metadata`).
		WithArgs("k", []byte("v")).
		WillReturnError(boom)

	err = NewSQLiteRepository(db).Set(context.Background(), "k", []byte("v"))
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}
