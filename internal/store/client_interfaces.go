package store

import (
	"context"

	"github.com/MKhiriev/go-order-desk/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// SessionRepository persists the single authenticated session of the client.
type SessionRepository interface {
	SaveSession(ctx context.Context, session models.Session) error
	LoadSession(ctx context.Context) (models.Session, error)
	ClearSession(ctx context.Context) error
}

// OrderCacheRepository keeps the last order list fetched for a user so it
// can be shown while the gateway is unreachable.
type OrderCacheRepository interface {
	SaveOrders(ctx context.Context, userID int64, orders []models.Order) error
	GetOrders(ctx context.Context, userID int64) ([]models.Order, error)
	DeleteOrders(ctx context.Context, userID int64) error
}
