// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// OrderStatus is the lifecycle state of an order as reported by the gateway.
type OrderStatus string

const (
	OrderStatusPaid       OrderStatus = "PAID"
	OrderStatusUnpaid     OrderStatus = "UNPAID"
	OrderStatusCreated    OrderStatus = "CREATED"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCanceled   OrderStatus = "CANCELED"
)

// Item is a purchasable catalog item. Name and Price are display metadata
// and never take part in reconciliation.
type Item struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// OrderLine is one server-side row of an order.
type OrderLine struct {
	// ID is the server-assigned line identifier.
	ID int64 `json:"id"`

	// Item is the referenced catalog item, denormalized for display.
	Item Item `json:"itemDto"`

	// Quantity is the ordered amount of Item.
	Quantity int64 `json:"quantity"`
}

// Order is the last-fetched, read-only server state of an order. It is held
// unchanged for the whole edit session and used as the diff baseline.
type Order struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"userId"`
	Status    OrderStatus `json:"status"`
	OrderDate string      `json:"orderDate"`
	Items     []OrderLine `json:"orderItems"`
}

var orderDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// Date parses OrderDate. The gateway sends ISO-8601 timestamps with or
// without a zone offset.
func (o Order) Date() (time.Time, bool) {
	for _, layout := range orderDateLayouts {
		if t, err := time.Parse(layout, o.OrderDate); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LineEntry is a user-editable order row.
type LineEntry struct {
	// ServerLineID is set only when the row mirrors an existing server line.
	ServerLineID *int64 `json:"orderItemId,omitempty"`

	// CatalogItemID references the catalog item. Zero means "not chosen yet".
	CatalogItemID int64 `json:"itemId"`

	// Quantity must be positive to be submitted.
	Quantity int64 `json:"quantity"`
}

// LinePatch carries the fields of a [LineEntry] to replace. Nil fields are
// left untouched.
type LinePatch struct {
	CatalogItemID *int64
	Quantity      *int64
}

// OrderItemCreate is a new line sent to the gateway.
type OrderItemCreate struct {
	ItemID   int64 `json:"itemId"`
	Quantity int64 `json:"quantity"`
}

// OrderItemUpdate is a quantity change of an existing server line.
type OrderItemUpdate struct {
	ID       int64 `json:"id"`
	ItemID   int64 `json:"itemId"`
	Quantity int64 `json:"quantity"`
}

// UpdateOperationSet is the minimal set of line operations that brings the
// server state of an order in line with the local edits. The three sets are
// disjoint by catalog item.
type UpdateOperationSet struct {
	IDsToRemove   []int64
	ItemsToAdd    []OrderItemCreate
	ItemsToUpdate []OrderItemUpdate
}

// IsEmpty reports whether no line operation is needed.
func (s UpdateOperationSet) IsEmpty() bool {
	return len(s.IDsToRemove) == 0 && len(s.ItemsToAdd) == 0 && len(s.ItemsToUpdate) == 0
}

// OrderDraft is an order as typed by the user before submission.
type OrderDraft struct {
	// UserID is the customer the order belongs to.
	UserID int64

	// Entries are the raw, possibly duplicated, rows.
	Entries []LineEntry

	// ForCreate enables the creation-only rules (at least one item).
	ForCreate bool
}
