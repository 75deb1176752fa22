package service

import (
	"github.com/MKhiriev/go-order-desk/internal/adapter"
	"github.com/MKhiriev/go-order-desk/internal/crypto"
	"github.com/MKhiriev/go-order-desk/internal/logger"
	"github.com/MKhiriev/go-order-desk/internal/store"
	"github.com/MKhiriev/go-order-desk/internal/validators"
)

type ClientServices struct {
	SessionService ClientSessionService
	AuthService    ClientAuthService
	OrderService   ClientOrderService
	RefreshJob     ClientRefreshJob
}

func NewClientServices(
	storages *store.ClientStorages,
	gateway adapter.GatewayAdapter,
	hasher crypto.PasswordHasher,
	logger *logger.Logger,
) *ClientServices {
	sessionSvc := NewClientSessionService(storages, gateway, logger)
	authSvc := NewClientAuthService(gateway, sessionSvc, hasher, validators.NewCredentialsValidator(), logger)
	orderSvc := NewClientOrderService(gateway, storages.Orders, sessionSvc, validators.NewOrderValidator(), logger)

	return &ClientServices{
		SessionService: sessionSvc,
		AuthService:    authSvc,
		OrderService:   orderSvc,
		RefreshJob:     NewClientRefreshJob(orderSvc, logger),
	}
}
