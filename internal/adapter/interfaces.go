// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the client and the
// order API gateway.
//
// The primary abstraction is [GatewayAdapter], which decouples the service
// layer from HTTP. Error values defined in errors.go are mapped from HTTP
// status codes by mapHTTPError so that callers can use [errors.Is] for
// transport-agnostic error handling (e.g. [ErrUnauthorized] for 401,
// [ErrNotFound] for 404).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-order-desk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/gateway_adapter_mock.go -package=mock

// GatewayAdapter talks to the API gateway. Implementations handle
// serialisation, the bearer token and the mapping of transport failures to
// the sentinel errors of this package. Implementations must be safe for
// concurrent use.
type GatewayAdapter interface {
	// SetToken stores the bearer token attached to every order call. An
	// empty token signs the adapter out.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if none has been set.
	Token() string

	// Login exchanges credentials for tokens. The access token is taken from
	// the response body or, failing that, from the Authorization header.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	// Register creates a new account. The gateway may answer with an empty
	// body, which yields an empty AuthResponse.
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)

	// GetUserOrders lists every order of userID.
	GetUserOrders(ctx context.Context, userID int64) ([]models.Order, error)

	// GetOrder fetches a single order.
	GetOrder(ctx context.Context, orderID int64) (models.Order, error)

	// CreateOrder creates an order and returns it as stored by the gateway.
	CreateOrder(ctx context.Context, req models.CreateOrderRequest) (models.Order, error)

	// UpdateOrder applies the line operations of req and returns the
	// updated order.
	UpdateOrder(ctx context.Context, req models.UpdateOrderRequest) (models.Order, error)

	// DeleteOrder removes an order.
	DeleteOrder(ctx context.Context, orderID int64) error
}
