// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package orders

import "github.com/MKhiriev/go-order-desk/models"

type snapshotLine struct {
	lineID   int64
	quantity int64
}

// BuildDiff computes the line operations that turn snapshot into canonical.
//
// canonical is expected to be normalized; BuildDiff does not sum quantities
// again. If an item id still repeats, the last entry for it wins and it
// yields at most one operation. Matching is by catalog item id:
//   - in snapshot only: its server line id goes to IDsToRemove;
//   - in canonical only: (item, quantity) goes to ItemsToAdd;
//   - in both with a different quantity: (line, item, quantity) goes to
//     ItemsToUpdate;
//   - in both with the same quantity: nothing.
//
// Removals keep snapshot order, additions and updates keep the order in which
// item ids first appear in canonical.
// If the snapshot lists a catalog item twice the later line wins; callers
// must not rely on that.
func BuildDiff(snapshot models.Order, canonical []models.LineEntry) models.UpdateOperationSet {
	var ops models.UpdateOperationSet

	current := make(map[int64]snapshotLine, len(snapshot.Items))
	currentOrder := make([]int64, 0, len(snapshot.Items))
	for _, line := range snapshot.Items {
		if _, seen := current[line.Item.ID]; !seen {
			currentOrder = append(currentOrder, line.Item.ID)
		}
		current[line.Item.ID] = snapshotLine{lineID: line.ID, quantity: line.Quantity}
	}

	desired := make(map[int64]models.LineEntry, len(canonical))
	desiredOrder := make([]int64, 0, len(canonical))
	for _, entry := range canonical {
		if _, seen := desired[entry.CatalogItemID]; !seen {
			desiredOrder = append(desiredOrder, entry.CatalogItemID)
		}
		desired[entry.CatalogItemID] = entry
	}

	for _, itemID := range currentOrder {
		if _, keep := desired[itemID]; !keep {
			ops.IDsToRemove = append(ops.IDsToRemove, current[itemID].lineID)
		}
	}

	for _, itemID := range desiredOrder {
		entry := desired[itemID]
		orig, exists := current[itemID]
		if !exists {
			ops.ItemsToAdd = append(ops.ItemsToAdd, models.OrderItemCreate{
				ItemID:   entry.CatalogItemID,
				Quantity: entry.Quantity,
			})
			continue
		}
		if orig.quantity != entry.Quantity {
			ops.ItemsToUpdate = append(ops.ItemsToUpdate, models.OrderItemUpdate{
				ID:       orig.lineID,
				ItemID:   entry.CatalogItemID,
				Quantity: entry.Quantity,
			})
		}
	}

	return ops
}
