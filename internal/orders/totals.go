// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package orders

import (
	"math"

	"github.com/MKhiriev/go-order-desk/models"
)

// LineTotal is the display price of a line: unit price times quantity,
// rounded to cents.
func LineTotal(line models.OrderLine) float64 {
	return roundCents(line.Item.Price * float64(line.Quantity))
}

// OrderTotal sums LineTotal over all lines of order.
func OrderTotal(order models.Order) float64 {
	var total float64
	for _, line := range order.Items {
		total += line.Item.Price * float64(line.Quantity)
	}
	return roundCents(total)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
