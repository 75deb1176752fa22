// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// OrderList is the result of the order list call.
type OrderList struct {
	// Orders are sorted by id.
	Orders []Order

	// Stale is true when the gateway was unreachable and Orders come from
	// the local cache.
	Stale bool

	// FetchedAt is when Orders were received from the gateway. Zero for a
	// stale list.
	FetchedAt time.Time
}

// UpdateResult is the result of an order update.
type UpdateResult struct {
	// Order is the updated order as returned by the gateway, or the
	// unchanged snapshot when Changed is false.
	Order Order

	// Operations is the operation set that was sent.
	Operations UpdateOperationSet

	// Changed is false when the edits matched the snapshot and no request
	// was made.
	Changed bool
}
