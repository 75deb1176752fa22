package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-order-desk/internal/logger"
	"github.com/MKhiriev/go-order-desk/models"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T, dialect Dialect) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	var classifier ErrorClassificator = NewSQLiteErrorClassifier()
	if dialect == DialectPostgres {
		classifier = NewPostgresErrorClassifier()
	}

	return newDB(conn, dialect, classifier, logger.Nop()), mock
}

func newTestSessionRepo(t *testing.T, dialect Dialect) (*localSessionRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t, dialect)
	repo := NewLocalSessionRepository(db, logger.Nop()).(*localSessionRepository)
	repo.now = func() time.Time { return fixedNow }
	return repo, mock
}

func newTestOrderCacheRepo(t *testing.T, dialect Dialect) (*localOrderCacheRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t, dialect)
	repo := NewLocalOrderCacheRepository(db, logger.Nop()).(*localOrderCacheRepository)
	repo.now = func() time.Time { return fixedNow }
	return repo, mock
}

func testSession() models.Session {
	return models.Session{
		User:        models.User{ID: 7, Name: "Ada", Email: "ada@example.com"},
		AccessToken: "token",
		ExpiresAt:   fixedNow.Add(time.Hour),
	}
}

func TestDialectFromDSN(t *testing.T) {
	tests := []struct {
		dsn  string
		want Dialect
	}{
		{dsn: "orders.db", want: DialectSQLite},
		{dsn: "/tmp/cache/orders.db", want: DialectSQLite},
		{dsn: ":memory:", want: DialectSQLite},
		{dsn: "postgres://u:p@localhost:5432/orders", want: DialectPostgres},
		{dsn: "PostgreSQL://localhost/orders", want: DialectPostgres},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, DialectFromDSN(tt.dsn))
		})
	}
}

func TestSessionRepository_SaveSession(t *testing.T) {
	repo, mock := newTestSessionRepo(t, DialectSQLite)
	session := testSession()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO session (slot,user_id,payload,updated_at) VALUES (?,?,?,?) ON CONFLICT (slot) DO UPDATE")).
		WithArgs(sessionSlot, session.User.ID, sqlmock.AnyArg(), fixedNow.Unix()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.SaveSession(context.Background(), session))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_SaveSession_Postgres(t *testing.T) {
	repo, mock := newTestSessionRepo(t, DialectPostgres)

	mock.ExpectExec(regexp.QuoteMeta("VALUES ($1,$2,$3,$4)")).
		WithArgs(sessionSlot, int64(7), sqlmock.AnyArg(), fixedNow.Unix()).
		WillReturnError(errors.New("connection reset"))

	err := repo.SaveSession(context.Background(), testSession())
	require.ErrorIs(t, err, ErrExecutingStatement)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_LoadSession(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newTestSessionRepo(t, DialectSQLite)
		payload := `{"user":{"id":7,"name":"Ada","surname":"","email":"ada@example.com","birthDate":""},"access_token":"token","refresh_token":"","expires_at":"2026-03-01T13:00:00Z"}`

		mock.ExpectQuery(regexp.QuoteMeta("SELECT payload FROM session WHERE slot = ?")).
			WithArgs(sessionSlot).
			WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))

		got, err := repo.LoadSession(context.Background())
		require.NoError(t, err)
		assert.Equal(t, testSession(), got)
	})

	t.Run("absent", func(t *testing.T) {
		repo, mock := newTestSessionRepo(t, DialectSQLite)

		mock.ExpectQuery("SELECT payload FROM session").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.LoadSession(context.Background())
		require.ErrorIs(t, err, ErrLocalSessionNotFound)
	})

	t.Run("corrupted", func(t *testing.T) {
		repo, mock := newTestSessionRepo(t, DialectSQLite)

		mock.ExpectQuery("SELECT payload FROM session").
			WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow("{not json"))

		_, err := repo.LoadSession(context.Background())
		require.ErrorIs(t, err, ErrCorruptedPayload)
	})
}

func TestSessionRepository_ClearSession(t *testing.T) {
	repo, mock := newTestSessionRepo(t, DialectSQLite)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM session WHERE slot = ?")).
		WithArgs(sessionSlot).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ClearSession(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderCacheRepository_SaveOrders(t *testing.T) {
	repo, mock := newTestOrderCacheRepo(t, DialectSQLite)
	orders := []models.Order{
		{ID: 1, UserID: 7, Status: models.OrderStatusPaid},
		{ID: 2, UserID: 7, Status: models.OrderStatusUnpaid},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM order_cache WHERE user_id = ?")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO order_cache (user_id,order_id,payload,fetched_at) VALUES (?,?,?,?),(?,?,?,?)")).
		WithArgs(int64(7), int64(1), sqlmock.AnyArg(), fixedNow.Unix(), int64(7), int64(2), sqlmock.AnyArg(), fixedNow.Unix()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, repo.SaveOrders(context.Background(), 7, orders))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderCacheRepository_SaveOrders_Empty(t *testing.T) {
	repo, mock := newTestOrderCacheRepo(t, DialectSQLite)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM order_cache").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, repo.SaveOrders(context.Background(), 7, nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderCacheRepository_SaveOrders_RollsBack(t *testing.T) {
	repo, mock := newTestOrderCacheRepo(t, DialectSQLite)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM order_cache").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO order_cache").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.SaveOrders(context.Background(), 7, []models.Order{{ID: 1}})
	require.ErrorIs(t, err, ErrExecutingStatement)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderCacheRepository_SaveOrders_RetriesSerializationFailure(t *testing.T) {
	repo, mock := newTestOrderCacheRepo(t, DialectPostgres)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM order_cache WHERE user_id = $1")).
		WithArgs(int64(7)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
	mock.ExpectRollback()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM order_cache WHERE user_id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("VALUES ($1,$2,$3,$4)")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SaveOrders(context.Background(), 7, []models.Order{{ID: 1}}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderCacheRepository_SaveOrders_UniqueViolationNotRetried(t *testing.T) {
	repo, mock := newTestOrderCacheRepo(t, DialectPostgres)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM order_cache").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO order_cache").
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
	mock.ExpectRollback()

	err := repo.SaveOrders(context.Background(), 7, []models.Order{{ID: 1}, {ID: 1}})
	require.Error(t, err)
	assert.Equal(t, pgerrcode.UniqueViolation, postgresError(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderCacheRepository_GetOrders(t *testing.T) {
	repo, mock := newTestOrderCacheRepo(t, DialectSQLite)

	rows := sqlmock.NewRows([]string{"payload"}).
		AddRow(`{"id":1,"userId":7,"status":"PAID","orderDate":"2026-02-01","orderItems":[{"id":10,"itemDto":{"id":3,"name":"Tea","price":2.5},"quantity":2}]}`).
		AddRow(`{"id":2,"userId":7,"status":"UNPAID","orderDate":"","orderItems":[]}`)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT payload FROM order_cache WHERE user_id = ? ORDER BY order_id")).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	got, err := repo.GetOrders(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, models.OrderStatusPaid, got[0].Status)
	require.Len(t, got[0].Items, 1)
	assert.Equal(t, "Tea", got[0].Items[0].Item.Name)
	assert.Equal(t, int64(2), got[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderCacheRepository_GetOrders_Errors(t *testing.T) {
	t.Run("query", func(t *testing.T) {
		repo, mock := newTestOrderCacheRepo(t, DialectSQLite)
		mock.ExpectQuery("SELECT payload FROM order_cache").WillReturnError(errors.New("no such table"))

		_, err := repo.GetOrders(context.Background(), 7)
		require.ErrorIs(t, err, ErrExecutingQuery)
	})

	t.Run("corrupted payload", func(t *testing.T) {
		repo, mock := newTestOrderCacheRepo(t, DialectSQLite)
		mock.ExpectQuery("SELECT payload FROM order_cache").
			WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow("[]"))

		_, err := repo.GetOrders(context.Background(), 7)
		require.ErrorIs(t, err, ErrCorruptedPayload)
	})

	t.Run("invalid user", func(t *testing.T) {
		repo, _ := newTestOrderCacheRepo(t, DialectSQLite)

		_, err := repo.GetOrders(context.Background(), 0)
		require.ErrorIs(t, err, ErrInvalidUserID)
		require.ErrorIs(t, repo.SaveOrders(context.Background(), -1, nil), ErrInvalidUserID)
		require.ErrorIs(t, repo.DeleteOrders(context.Background(), 0), ErrInvalidUserID)
	})
}

func TestOrderCacheRepository_DeleteOrders(t *testing.T) {
	repo, mock := newTestOrderCacheRepo(t, DialectPostgres)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM order_cache WHERE user_id = $1")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	require.NoError(t, repo.DeleteOrders(context.Background(), 7))
	require.NoError(t, mock.ExpectationsWereMet())
}
