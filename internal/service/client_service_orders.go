package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/MKhiriev/go-order-desk/internal/adapter"
	"github.com/MKhiriev/go-order-desk/internal/logger"
	"github.com/MKhiriev/go-order-desk/internal/orders"
	"github.com/MKhiriev/go-order-desk/internal/store"
	"github.com/MKhiriev/go-order-desk/internal/utils"
	"github.com/MKhiriev/go-order-desk/internal/validators"
	"github.com/MKhiriev/go-order-desk/models"
)

type clientOrderService struct {
	adapter   adapter.GatewayAdapter
	cache     store.OrderCacheRepository
	sessions  ClientSessionService
	validator validators.Validator
	logger    *logger.Logger
	now       func() time.Time
}

func NewClientOrderService(
	gateway adapter.GatewayAdapter,
	cache store.OrderCacheRepository,
	sessions ClientSessionService,
	validator validators.Validator,
	logger *logger.Logger,
) ClientOrderService {
	return &clientOrderService{
		adapter:   gateway,
		cache:     cache,
		sessions:  sessions,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

func (o *clientOrderService) List(ctx context.Context) (models.OrderList, error) {
	session, ok := o.sessions.Current()
	if !ok {
		return models.OrderList{}, ErrNotAuthenticated
	}
	userID := session.User.ID
	ctx = utils.WithUserID(ctx, userID)

	list, err := o.adapter.GetUserOrders(ctx, userID)
	if err != nil {
		if !adapter.IsNetworkError(err) {
			return models.OrderList{}, o.gatewayError(ctx, "clientOrderService.List", err)
		}

		cached, cacheErr := o.cache.GetOrders(ctx, userID)
		if cacheErr != nil {
			o.logger.Err(cacheErr).
				Str("func", "clientOrderService.List").
				Int64("user_id", userID).
				Msg("gateway unreachable and order cache unreadable")
			return models.OrderList{}, mapAdapterError(err)
		}

		o.logger.Warn().Err(err).
			Str("func", "clientOrderService.List").
			Int64("user_id", userID).
			Int("orders", len(cached)).
			Msg("gateway unreachable, serving cached orders")
		return models.OrderList{Orders: cached, Stale: true}, nil
	}

	sorted := slices.Clone(list)
	slices.SortFunc(sorted, func(a, b models.Order) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})

	if cacheErr := o.cache.SaveOrders(ctx, userID, sorted); cacheErr != nil {
		o.logger.Err(cacheErr).
			Str("func", "clientOrderService.List").
			Int64("user_id", userID).
			Msg("failed to refresh order cache")
	}

	return models.OrderList{Orders: sorted, FetchedAt: o.now()}, nil
}

func (o *clientOrderService) Get(ctx context.Context, orderID int64) (models.Order, error) {
	if orderID <= 0 {
		return models.Order{}, validators.ErrInvalidOrderID
	}

	order, err := o.adapter.GetOrder(ctx, orderID)
	if err != nil {
		return models.Order{}, o.gatewayError(ctx, "clientOrderService.Get", err)
	}

	return order, nil
}

func (o *clientOrderService) Create(ctx context.Context, userID int64, entries []models.LineEntry) (models.Order, error) {
	draft := models.OrderDraft{UserID: userID, Entries: entries, ForCreate: true}
	if err := o.validator.Validate(ctx, draft); err != nil {
		return models.Order{}, err
	}

	req := models.CreateOrderRequest{
		UserID:     userID,
		OrderItems: orders.CreateItems(orders.Normalize(entries)),
	}
	if err := o.validator.Validate(ctx, req); err != nil {
		return models.Order{}, err
	}

	created, err := o.adapter.CreateOrder(ctx, req)
	if err != nil {
		return models.Order{}, o.gatewayError(ctx, "clientOrderService.Create", err)
	}

	o.logger.Info().
		Str("func", "clientOrderService.Create").
		Int64("user_id", userID).
		Int64("order_id", created.ID).
		Int("items", len(req.OrderItems)).
		Msg("order created")

	return created, nil
}

func (o *clientOrderService) Update(ctx context.Context, snapshot models.Order, userID int64, entries []models.LineEntry) (models.UpdateResult, error) {
	if snapshot.ID <= 0 {
		return models.UpdateResult{}, ErrInvalidSnapshot
	}

	draft := models.OrderDraft{UserID: userID, Entries: entries}
	if err := o.validator.Validate(ctx, draft); err != nil {
		return models.UpdateResult{}, err
	}

	ops := orders.BuildDiff(snapshot, orders.Normalize(entries))
	if ops.IsEmpty() {
		return models.UpdateResult{Order: snapshot, Operations: ops}, nil
	}

	req := models.NewUpdateOrderRequest(snapshot.ID, userID, ops)
	if err := o.validator.Validate(ctx, req,
		validators.FieldOrderID, validators.FieldUserID, validators.FieldOrderItems, validators.FieldOperations,
	); err != nil {
		return models.UpdateResult{}, err
	}

	updated, err := o.adapter.UpdateOrder(ctx, req)
	if err != nil {
		return models.UpdateResult{}, o.gatewayError(ctx, "clientOrderService.Update", err)
	}

	o.logger.Info().
		Str("func", "clientOrderService.Update").
		Int64("order_id", snapshot.ID).
		Int("removed", len(ops.IDsToRemove)).
		Int("added", len(ops.ItemsToAdd)).
		Int("updated", len(ops.ItemsToUpdate)).
		Msg("order updated")

	// the gateway may answer without a body
	if updated.ID == 0 {
		updated, err = o.Get(ctx, snapshot.ID)
		if err != nil {
			return models.UpdateResult{}, err
		}
	}

	return models.UpdateResult{Order: updated, Operations: ops, Changed: true}, nil
}

func (o *clientOrderService) Delete(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return validators.ErrInvalidOrderID
	}

	if err := o.adapter.DeleteOrder(ctx, orderID); err != nil {
		return o.gatewayError(ctx, "clientOrderService.Delete", err)
	}

	o.logger.Info().Str("func", "clientOrderService.Delete").Int64("order_id", orderID).Msg("order deleted")
	return nil
}

// gatewayError ends the session on 401 and maps every other adapter error.
func (o *clientOrderService) gatewayError(ctx context.Context, funcName string, err error) error {
	switch {
	case errors.Is(err, adapter.ErrNoToken):
		return ErrNotAuthenticated

	case errors.Is(err, adapter.ErrUnauthorized):
		o.logger.Warn().Err(err).Str("func", funcName).Msg("access token rejected, ending session")
		if endErr := o.sessions.End(ctx); endErr != nil {
			return fmt.Errorf("%w (%w)", ErrSessionExpired, endErr)
		}
		return ErrSessionExpired
	}

	o.logger.Err(err).Str("func", funcName).Msg("gateway call failed")
	return mapAdapterError(err)
}
