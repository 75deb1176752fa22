// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package orders

import (
	"testing"

	"github.com/MKhiriev/go-order-desk/models"
	"github.com/stretchr/testify/assert"
)

func TestNewRows(t *testing.T) {
	assert.Equal(t, Rows{{CatalogItemID: 0, Quantity: 1}}, NewRows())
}

func TestFromOrder(t *testing.T) {
	rows := FromOrder(snapshotOf(line(1, 10, 2), line(2, 11, 1)))

	assert.Equal(t, Rows{lineEntry(1, 10, 2), lineEntry(2, 11, 1)}, rows)
	assert.Empty(t, FromOrder(models.Order{}))
}

func TestRows_AddRow(t *testing.T) {
	rows := Rows{entry(5, 2)}

	got := rows.AddRow()

	assert.Equal(t, Rows{entry(5, 2), entry(0, 1)}, got)
	assert.Len(t, rows, 1)
}

func TestRows_RemoveRow(t *testing.T) {
	rows := Rows{entry(1, 1), entry(2, 1), entry(3, 1)}

	tests := []struct {
		name  string
		index int
		want  Rows
	}{
		{name: "first", index: 0, want: Rows{entry(2, 1), entry(3, 1)}},
		{name: "middle", index: 1, want: Rows{entry(1, 1), entry(3, 1)}},
		{name: "last", index: 2, want: Rows{entry(1, 1), entry(2, 1)}},
		{name: "negative index ignored", index: -1, want: rows},
		{name: "index past end ignored", index: 3, want: rows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rows.RemoveRow(tt.index))
			assert.Equal(t, Rows{entry(1, 1), entry(2, 1), entry(3, 1)}, rows)
		})
	}
}

func TestRows_PatchRow(t *testing.T) {
	rows := Rows{lineEntry(7, 5, 2), entry(0, 1)}

	tests := []struct {
		name  string
		index int
		patch models.LinePatch
		want  Rows
	}{
		{
			name:  "set item",
			index: 1,
			patch: models.LinePatch{CatalogItemID: id(9)},
			want:  Rows{lineEntry(7, 5, 2), entry(9, 1)},
		},
		{
			name:  "set quantity keeps server line id",
			index: 0,
			patch: models.LinePatch{Quantity: id(4)},
			want:  Rows{lineEntry(7, 5, 4), entry(0, 1)},
		},
		{
			name:  "negative item clamped to zero",
			index: 0,
			patch: models.LinePatch{CatalogItemID: id(-3)},
			want:  Rows{lineEntry(7, 0, 2), entry(0, 1)},
		},
		{
			name:  "zero quantity clamped to one",
			index: 0,
			patch: models.LinePatch{Quantity: id(0)},
			want:  Rows{lineEntry(7, 5, 1), entry(0, 1)},
		},
		{
			name:  "both fields",
			index: 1,
			patch: models.LinePatch{CatalogItemID: id(3), Quantity: id(6)},
			want:  Rows{lineEntry(7, 5, 2), entry(3, 6)},
		},
		{
			name:  "out of range ignored",
			index: 5,
			patch: models.LinePatch{Quantity: id(6)},
			want:  rows,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rows.PatchRow(tt.index, tt.patch))
			assert.Equal(t, Rows{lineEntry(7, 5, 2), entry(0, 1)}, rows)
		})
	}
}

func TestRows_EditThenDiff(t *testing.T) {
	snapshot := snapshotOf(line(1, 10, 2), line(2, 11, 1))

	rows := FromOrder(snapshot).
		PatchRow(0, models.LinePatch{Quantity: id(9)}).
		AddRow().
		PatchRow(2, models.LinePatch{CatalogItemID: id(11), Quantity: id(2)}).
		AddRow()

	ops := BuildDiff(snapshot, Normalize(rows.Entries()))

	assert.Empty(t, ops.IDsToRemove)
	assert.Empty(t, ops.ItemsToAdd)
	assert.Equal(t, []models.OrderItemUpdate{
		{ID: 1, ItemID: 10, Quantity: 9},
		{ID: 2, ItemID: 11, Quantity: 3},
	}, ops.ItemsToUpdate)
}
