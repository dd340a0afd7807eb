package localstorage

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

const (
	originA = "http://localhost:5000"
	originB = "https://vibecart-backend.onrender.com"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE local_storage (
  origin     TEXT NOT NULL,
  key        TEXT NOT NULL,
  value      TEXT NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  PRIMARY KEY (origin, key)
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, originA, "token", "abc"))

	v, ok, err := r.Get(ctx, originA, "token")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", v)
}

func TestGet_Absent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, ok, err := r.Get(context.Background(), originA, "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, originA, "k", "old"))
	require.NoError(t, r.Set(ctx, originA, "k", "new"))

	v, _, err := r.Get(ctx, originA, "k")
	require.NoError(t, err)
	require.Equal(t, "new", v)
}

func TestOriginsAreIsolated(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, originA, "token", "a"))
	require.NoError(t, r.Set(ctx, originB, "token", "b"))
	require.NoError(t, r.Clear(ctx, originA))

	_, ok, err := r.Get(ctx, originA, "token")
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err := r.Get(ctx, originB, "token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", v)
}

func TestDelete_IsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, originA, "x", "1"))
	require.NoError(t, r.Delete(ctx, originA, "x"))
	require.NoError(t, r.Delete(ctx, originA, "x"))

	_, ok, err := r.Get(ctx, originA, "x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKeys_Sorted(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, originA, "b", "2"))
	require.NoError(t, r.Set(ctx, originA, "a", "1"))
	require.NoError(t, r.Set(ctx, originB, "z", "9"))

	keys, err := r.Keys(ctx, originA)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	empty, err := r.Keys(ctx, "http://nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestWorksInsideTransaction(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, NewSQLiteRepository(tx).Set(ctx, originA, "k", "v"))
	require.NoError(t, tx.Rollback())

	_, ok, err := NewSQLiteRepository(db).Get(ctx, originA, "k")
	require.NoError(t, err)
	assert.False(t, ok, "rolled back write must not be visible")
}
