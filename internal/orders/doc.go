// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package orders holds the order reconciliation logic of the client.
//
// A user edits a list of [models.LineEntry] rows that may reference the same
// catalog item several times. On submit the rows are first collapsed by
// [Normalize] into a canonical list (one row per catalog item), and then
// compared with the server snapshot by [BuildDiff], which yields the minimal
// [models.UpdateOperationSet] sent to the gateway.
//
// Everything in this package is pure and synchronous: no I/O, no shared
// state, safe to call from any goroutine.
package orders
