package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-order-desk/internal/config"
	"github.com/MKhiriev/go-order-desk/internal/logger"
)

func TestNewDB_EmptyDSN(t *testing.T) {
	_, err := NewDB(context.Background(), config.ClientDB{DSN: "  "}, logger.Nop())
	require.ErrorIs(t, err, ErrUnsupportedDSN)
}

func TestNewDB_PlaceholderByDialect(t *testing.T) {
	tests := []struct {
		dialect Dialect
		want    string
	}{
		{dialect: DialectSQLite, want: "SELECT id FROM orders WHERE user_id = ?"},
		{dialect: DialectPostgres, want: "SELECT id FROM orders WHERE user_id = $1"},
	}

	for _, tt := range tests {
		t.Run(string(tt.dialect), func(t *testing.T) {
			db := newDB(nil, tt.dialect, NewSQLiteErrorClassifier(), logger.Nop())

			query, args, err := db.builder.Select("id").From("orders").Where("user_id = ?", 7).ToSql()
			require.NoError(t, err)
			assert.Equal(t, tt.want, query)
			assert.Equal(t, []any{7}, args)
		})
	}
}

func TestCreateLocalDBFileIfNotExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "orders.db")

	require.NoError(t, createLocalDBFileIfNotExists(path))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())

	require.NoError(t, os.WriteFile(path, []byte("keep"), 0o600))
	require.NoError(t, createLocalDBFileIfNotExists(path))
	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(body))

	require.NoError(t, createLocalDBFileIfNotExists(":memory:"))
}

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	tests := []struct {
		name string
		err  error
		want ErrorClassification
	}{
		{name: "nil", err: nil, want: NonRetryable},
		{name: "plain", err: errors.New("x"), want: NonRetryable},
		{name: "serialization", err: &pgconn.PgError{Code: pgerrcode.SerializationFailure}, want: Retryable},
		{name: "deadlock", err: &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, want: Retryable},
		{name: "connection", err: &pgconn.PgError{Code: pgerrcode.ConnectionFailure}, want: Retryable},
		{name: "unique", err: &pgconn.PgError{Code: pgerrcode.UniqueViolation}, want: NonRetryable},
		{name: "wrapped", err: errors.Join(ErrExecutingStatement, &pgconn.PgError{Code: pgerrcode.CannotConnectNow}), want: Retryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.err))
		})
	}
}

func TestSQLiteErrorClassifier(t *testing.T) {
	c := NewSQLiteErrorClassifier()

	assert.Equal(t, Retryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrBusy}))
	assert.Equal(t, Retryable, c.Classify(errors.Join(ErrExecutingStatement, sqlite3.Error{Code: sqlite3.ErrLocked})))
	assert.Equal(t, NonRetryable, c.Classify(sqlite3.Error{Code: sqlite3.ErrConstraint}))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("x")))
}
