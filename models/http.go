// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// CreateOrderRequest is the body of POST /order/create.
type CreateOrderRequest struct {
	// UserID is the customer the order is created for.
	UserID int64 `json:"userId"`

	// OrderItems are the canonical lines of the new order.
	OrderItems []OrderItemCreate `json:"orderItems"`
}

// UpdateOrderRequest is the body of PUT /order/update.
//
// Only non-empty operation sets are serialized: an empty slice is omitted
// rather than sent as [].
type UpdateOrderRequest struct {
	// ID is the order being updated. Required.
	ID int64 `json:"id"`

	// UserID is the owner of the order.
	UserID int64 `json:"userId,omitempty"`

	// Status, if set, changes the order status.
	Status *OrderStatus `json:"status,omitempty"`

	// OrderDate, if set, changes the order date (RFC 3339).
	OrderDate *string `json:"orderDate,omitempty"`

	// IDsToRemove are server line ids to delete.
	IDsToRemove []int64 `json:"idsToRemove,omitempty"`

	// ItemsToAdd are lines to create.
	ItemsToAdd []OrderItemCreate `json:"itemsToAdd,omitempty"`

	// ItemsToUpdate are existing lines with a new quantity.
	ItemsToUpdate []OrderItemUpdate `json:"itemsToUpdate,omitempty"`
}

// NewUpdateOrderRequest builds the gateway update body for order orderID
// from ops. Empty operation sets stay nil so they are omitted on the wire.
func NewUpdateOrderRequest(orderID, userID int64, ops UpdateOperationSet) UpdateOrderRequest {
	req := UpdateOrderRequest{ID: orderID, UserID: userID}
	if len(ops.IDsToRemove) > 0 {
		req.IDsToRemove = ops.IDsToRemove
	}
	if len(ops.ItemsToAdd) > 0 {
		req.ItemsToAdd = ops.ItemsToAdd
	}
	if len(ops.ItemsToUpdate) > 0 {
		req.ItemsToUpdate = ops.ItemsToUpdate
	}
	return req
}

// APIError is the JSON error body returned by the gateway.
type APIError struct {
	// Status is the HTTP status code echoed by the gateway.
	Status int `json:"status,omitempty"`

	// Message is a human-readable description of the failure.
	Message string `json:"message"`

	// Errors holds per-field validation messages keyed by field name.
	Errors map[string]string `json:"errors,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}
