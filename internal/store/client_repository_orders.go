package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MKhiriev/go-order-desk/internal/logger"
	"github.com/MKhiriev/go-order-desk/models"
)

const orderCacheTable = "order_cache"

type localOrderCacheRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

func NewLocalOrderCacheRepository(db *DB, logger *logger.Logger) OrderCacheRepository {
	return &localOrderCacheRepository{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
}

// SaveOrders replaces the cached order list of userID with orders.
func (r *localOrderCacheRepository) SaveOrders(ctx context.Context, userID int64, orders []models.Order) error {
	if userID <= 0 {
		return ErrInvalidUserID
	}
	log := logger.FromContext(ctx)

	deleteQuery, deleteArgs, err := r.builder.
		Delete(orderCacheTable).
		Where("user_id = ?", userID).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		insertQuery string
		insertArgs  []any
	)
	if len(orders) > 0 {
		fetchedAt := r.now().UTC().Unix()
		insert := r.builder.
			Insert(orderCacheTable).
			Columns("user_id", "order_id", "payload", "fetched_at")
		for _, order := range orders {
			payload, marshalErr := json.Marshal(order)
			if marshalErr != nil {
				return fmt.Errorf("failed to encode order %d: %w", order.ID, marshalErr)
			}
			insert = insert.Values(userID, order.ID, string(payload), fetchedAt)
		}

		insertQuery, insertArgs, err = insert.ToSql()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
	}

	err = r.withTx(ctx, func(tx *sql.Tx) error {
		if _, execErr := tx.ExecContext(ctx, deleteQuery, deleteArgs...); execErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
		if insertQuery == "" {
			return nil
		}
		if _, execErr := tx.ExecContext(ctx, insertQuery, insertArgs...); execErr != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "localOrderCacheRepository.SaveOrders").
			Int64("user_id", userID).
			Int("orders", len(orders)).
			Str("sqlstate", postgresError(err)).
			Msg("failed to replace cached orders")
		return err
	}

	return nil
}

// GetOrders returns the cached orders of userID ordered by order id.
func (r *localOrderCacheRepository) GetOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	log := logger.FromContext(ctx)

	query, args, err := r.builder.
		Select("payload").
		From(orderCacheTable).
		Where("user_id = ?", userID).
		OrderBy("order_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "localOrderCacheRepository.GetOrders").
			Int64("user_id", userID).
			Msg("failed to query cached orders")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		var payload string
		if err = rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		var order models.Order
		if err = json.Unmarshal([]byte(payload), &order); err != nil {
			log.Err(err).
				Str("func", "localOrderCacheRepository.GetOrders").
				Int64("user_id", userID).
				Msg("failed to decode cached order")
			return nil, fmt.Errorf("%w: %w", ErrCorruptedPayload, err)
		}
		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return orders, nil
}

// DeleteOrders drops the cached orders of userID.
func (r *localOrderCacheRepository) DeleteOrders(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return ErrInvalidUserID
	}

	query, args, err := r.builder.
		Delete(orderCacheTable).
		Where("user_id = ?", userID).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "localOrderCacheRepository.DeleteOrders").
			Int64("user_id", userID).
			Msg("failed to delete cached orders")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
