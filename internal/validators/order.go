package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-order-desk/internal/orders"
	"github.com/MKhiriev/go-order-desk/models"
)

const (
	FieldUserID     = "user_id"
	FieldOrderID    = "order_id"
	FieldOrderItems = "order_items"
	FieldStatus     = "status"
	FieldOperations = "operations"
)

var allowedStatuses = []models.OrderStatus{
	models.OrderStatusPaid,
	models.OrderStatusUnpaid,
	models.OrderStatusCreated,
	models.OrderStatusProcessing,
	models.OrderStatusCompleted,
	models.OrderStatusCanceled,
}

// OrderValidator checks order drafts and gateway order requests before they
// leave the client.
type OrderValidator struct {
}

// NewOrderValidator constructs a new OrderValidator and returns it as the
// Validator interface.
func NewOrderValidator() Validator {
	return &OrderValidator{}
}

func (v *OrderValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.OrderDraft:
		return v.validateDraft(ctx, value, fields...)
	case *models.OrderDraft:
		return v.validateDraft(ctx, *value, fields...)

	case models.CreateOrderRequest:
		return v.validateCreateRequest(ctx, value, fields...)
	case *models.CreateOrderRequest:
		return v.validateCreateRequest(ctx, *value, fields...)

	case models.UpdateOrderRequest:
		return v.validateUpdateRequest(ctx, value, fields...)
	case *models.UpdateOrderRequest:
		return v.validateUpdateRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func isValidStatus(status models.OrderStatus) bool {
	for _, s := range allowedStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// validateDraft runs the form-level rules on the normalized rows: rows with
// no item chosen are dropped by normalization and never fail validation.
func (v *OrderValidator) validateDraft(_ context.Context, draft models.OrderDraft, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldOrderItems}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if draft.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldOrderItems:
			canonical := orders.Normalize(draft.Entries)
			if draft.ForCreate && len(canonical) == 0 {
				return ErrNoOrderItems
			}
			for _, entry := range canonical {
				if entry.CatalogItemID <= 0 {
					return ErrInvalidItemID
				}
				if entry.Quantity <= 0 {
					return ErrInvalidQuantity
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *OrderValidator) validateCreateRequest(_ context.Context, request models.CreateOrderRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID, FieldOrderItems}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if request.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldOrderItems:
			if len(request.OrderItems) == 0 {
				return ErrNoOrderItems
			}
			for i, item := range request.OrderItems {
				if err := validateLine(item.ItemID, item.Quantity); err != nil {
					return fmt.Errorf("validation error at index %d: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *OrderValidator) validateUpdateRequest(_ context.Context, request models.UpdateOrderRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOrderID, FieldUserID, FieldStatus, FieldOrderItems}
	}

	for _, f := range fields {
		switch f {
		case FieldOrderID:
			if request.ID <= 0 {
				return ErrInvalidOrderID
			}
		case FieldUserID:
			if request.UserID <= 0 {
				return ErrInvalidUserID
			}
		case FieldStatus:
			if request.Status != nil && !isValidStatus(*request.Status) {
				return ErrInvalidStatus
			}
		case FieldOrderItems:
			for i, lineID := range request.IDsToRemove {
				if lineID <= 0 {
					return fmt.Errorf("idsToRemove at index %d: %w", i, ErrInvalidOrderID)
				}
			}
			for i, item := range request.ItemsToAdd {
				if err := validateLine(item.ItemID, item.Quantity); err != nil {
					return fmt.Errorf("itemsToAdd at index %d: %w", i, err)
				}
			}
			for i, item := range request.ItemsToUpdate {
				if err := validateLine(item.ItemID, item.Quantity); err != nil {
					return fmt.Errorf("itemsToUpdate at index %d: %w", i, err)
				}
			}
		case FieldOperations:
			if request.Status == nil && request.OrderDate == nil &&
				len(request.IDsToRemove) == 0 && len(request.ItemsToAdd) == 0 && len(request.ItemsToUpdate) == 0 {
				return ErrNoChanges
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func validateLine(itemID, quantity int64) error {
	if itemID <= 0 {
		return ErrInvalidItemID
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}
