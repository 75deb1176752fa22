package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-order-desk/internal/logger"
	"github.com/MKhiriev/go-order-desk/models"
)

const (
	sessionTable = "session"

	// sessionSlot is the primary key of the only session row.
	sessionSlot = 1
)

type localSessionRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

func NewLocalSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	return &localSessionRepository{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (r *localSessionRepository) SaveSession(ctx context.Context, session models.Session) error {
	log := logger.FromContext(ctx)

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	query, args, err := r.builder.
		Insert(sessionTable).
		Columns("slot", "user_id", "payload", "updated_at").
		Values(sessionSlot, session.User.ID, string(payload), r.now().UTC().Unix()).
		Suffix("ON CONFLICT (slot) DO UPDATE SET user_id = excluded.user_id, payload = excluded.payload, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "localSessionRepository.SaveSession").
			Int64("user_id", session.User.ID).
			Msg("failed to upsert session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *localSessionRepository) LoadSession(ctx context.Context) (models.Session, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("payload").
		From(sessionTable).
		Where("slot = ?", sessionSlot).
		ToSql()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var payload string
	if err = r.QueryRowContext(ctx, query, args...).Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrLocalSessionNotFound
		}
		log.Err(err).Str("func", "localSessionRepository.LoadSession").Msg("failed to read session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	var session models.Session
	if err = json.Unmarshal([]byte(payload), &session); err != nil {
		log.Err(err).Str("func", "localSessionRepository.LoadSession").Msg("failed to decode session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrCorruptedPayload, err)
	}

	return session, nil
}

func (r *localSessionRepository) ClearSession(ctx context.Context) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Delete(sessionTable).
		Where("slot = ?", sessionSlot).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "localSessionRepository.ClearSession").Msg("failed to delete session")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
