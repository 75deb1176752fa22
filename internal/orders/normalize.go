// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package orders

import "github.com/MKhiriev/go-order-desk/models"

// Normalize collapses entries into a canonical list with one row per catalog
// item.
//
// Rows referencing the same catalog item are merged: quantities are summed
// and the first server line id seen is kept (a later row may still supply a
// missing one). Rows without a chosen catalog item (id <= 0) are dropped
// entirely and contribute nothing. Output order is the order in which each
// catalog item first appears. The input slice is not modified.
func Normalize(entries []models.LineEntry) []models.LineEntry {
	out := make([]models.LineEntry, 0, len(entries))
	index := make(map[int64]int, len(entries))

	for _, entry := range entries {
		if entry.CatalogItemID <= 0 {
			continue
		}

		pos, seen := index[entry.CatalogItemID]
		if !seen {
			index[entry.CatalogItemID] = len(out)
			out = append(out, models.LineEntry{
				ServerLineID:  copyID(entry.ServerLineID),
				CatalogItemID: entry.CatalogItemID,
				Quantity:      entry.Quantity,
			})
			continue
		}

		acc := &out[pos]
		acc.Quantity += entry.Quantity
		if acc.ServerLineID == nil && entry.ServerLineID != nil {
			acc.ServerLineID = copyID(entry.ServerLineID)
		}
	}

	return out
}

// CreateItems maps canonical entries to the creation payload of a new order.
// No diffing happens: a new order has no baseline.
func CreateItems(canonical []models.LineEntry) []models.OrderItemCreate {
	items := make([]models.OrderItemCreate, 0, len(canonical))
	for _, entry := range canonical {
		items = append(items, models.OrderItemCreate{
			ItemID:   entry.CatalogItemID,
			Quantity: entry.Quantity,
		})
	}
	return items
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
