// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package orders

import (
	"fmt"
	"sort"

	"github.com/MKhiriev/go-order-desk/models"
	difflib "github.com/pmezard/go-difflib/difflib"
)

// Preview renders a unified diff of the order lines before (snapshot) and
// after (canonical) an edit. Lines are sorted by catalog item id so the
// diff only shows real changes. Returns "" when nothing changed.
func Preview(snapshot models.Order, canonical []models.LineEntry) (string, error) {
	names := make(map[int64]string, len(snapshot.Items))
	before := make([]string, 0, len(snapshot.Items))
	for _, line := range sortedSnapshot(snapshot.Items) {
		names[line.Item.ID] = line.Item.Name
		before = append(before, formatLine(line.Item.ID, line.Item.Name, line.Quantity))
	}

	after := make([]string, 0, len(canonical))
	for _, entry := range sortedEntries(canonical) {
		after = append(after, formatLine(entry.CatalogItemID, names[entry.CatalogItemID], entry.Quantity))
	}

	ud := difflib.UnifiedDiff{
		A:        before,
		B:        after,
		FromFile: fmt.Sprintf("order #%d", snapshot.ID),
		ToFile:   "edited",
		Context:  1,
	}
	out, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", fmt.Errorf("render order preview: %w", err)
	}
	return out, nil
}

func formatLine(itemID int64, name string, quantity int64) string {
	if name == "" {
		name = "-"
	}
	return fmt.Sprintf("item %d (%s) x %d\n", itemID, name, quantity)
}

func sortedSnapshot(lines []models.OrderLine) []models.OrderLine {
	out := make([]models.OrderLine, len(lines))
	copy(out, lines)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Item.ID < out[j].Item.ID })
	return out
}

func sortedEntries(entries []models.LineEntry) []models.LineEntry {
	out := make([]models.LineEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CatalogItemID < out[j].CatalogItemID })
	return out
}
