package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-order-desk/internal/config"
	"github.com/MKhiriev/go-order-desk/internal/logger"
)

// ClientStorages groups all client-side storage repositories into a single
// value that can be passed around the service layer.
type ClientStorages struct {
	// Session holds the persisted authenticated session.
	Session SessionRepository

	// Orders is the offline cache of the user's order list.
	Orders OrderCacheRepository

	db *DB
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens the database named by cfg.DB.DSN (SQLite file or PostgreSQL URL).
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Wires the session and order cache repositories to the connection.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewDB(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("local database connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewClientStoragesFromDB(db, logger), nil
}

// NewClientStoragesFromDB wires the repositories to an already migrated db.
func NewClientStoragesFromDB(db *DB, logger *logger.Logger) *ClientStorages {
	return &ClientStorages{
		Session: NewLocalSessionRepository(db, logger),
		Orders:  NewLocalOrderCacheRepository(db, logger),
		db:      db,
	}
}

// Close releases the underlying connection.
func (s *ClientStorages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
