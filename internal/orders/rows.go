// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package orders

import "github.com/MKhiriev/go-order-desk/models"

// DefaultQuantity is the quantity of a freshly added row.
const DefaultQuantity int64 = 1

// Rows is the editable list of order rows behind an order form. Every method
// returns a new slice; the receiver is never mutated in place, so a form can
// keep the previous value for comparison.
type Rows []models.LineEntry

// FromOrder seeds editable rows from a server snapshot.
func FromOrder(order models.Order) Rows {
	rows := make(Rows, 0, len(order.Items))
	for _, line := range order.Items {
		lineID := line.ID
		rows = append(rows, models.LineEntry{
			ServerLineID:  &lineID,
			CatalogItemID: line.Item.ID,
			Quantity:      line.Quantity,
		})
	}
	return rows
}

// NewRows returns the initial rows of a new order: a single empty row.
func NewRows() Rows {
	return Rows{}.AddRow()
}

// AddRow appends a row with no catalog item chosen and the default quantity.
func (r Rows) AddRow() Rows {
	out := r.clone(len(r) + 1)
	return append(out, models.LineEntry{Quantity: DefaultQuantity})
}

// RemoveRow drops the row at index. Out-of-range indexes are ignored.
func (r Rows) RemoveRow(index int) Rows {
	if index < 0 || index >= len(r) {
		return r.clone(len(r))
	}
	out := make(Rows, 0, len(r)-1)
	out = append(out, r[:index]...)
	return append(out, r[index+1:]...)
}

// PatchRow replaces the fields set in patch on the row at index. The catalog
// item id is clamped to >= 0 and the quantity to >= 1. Out-of-range indexes
// are ignored.
func (r Rows) PatchRow(index int, patch models.LinePatch) Rows {
	out := r.clone(len(r))
	if index < 0 || index >= len(out) {
		return out
	}

	if patch.CatalogItemID != nil {
		out[index].CatalogItemID = max(0, *patch.CatalogItemID)
	}
	if patch.Quantity != nil {
		out[index].Quantity = max(DefaultQuantity, *patch.Quantity)
	}
	return out
}

// Entries returns the rows as plain line entries.
func (r Rows) Entries() []models.LineEntry {
	return r.clone(len(r))
}

func (r Rows) clone(capacity int) Rows {
	out := make(Rows, len(r), capacity)
	copy(out, r)
	return out
}
