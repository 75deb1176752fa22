package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-order-desk/internal/orders"
	"github.com/MKhiriev/go-order-desk/models"
)

type detailModel struct {
	order   models.Order
	loading bool
}

func (m detailModel) View() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Order:    #%d\n", m.order.ID)
	fmt.Fprintf(&b, "Customer: %d\n", m.order.UserID)
	fmt.Fprintf(&b, "Status:   %s\n", statusLabel(m.order.Status))
	fmt.Fprintf(&b, "Date:     %s\n", formatOrderDate(m.order))
	if m.loading {
		b.WriteString("Refreshing...\n")
	}
	b.WriteString("\n")

	if len(m.order.Items) == 0 {
		b.WriteString("No items\n")
		return b.String()
	}

	b.WriteString("Item   │ Name                     │ Price      │ Qty   │ Total\n")
	b.WriteString("───────┼──────────────────────────┼────────────┼───────┼────────────\n")
	for _, line := range m.order.Items {
		fmt.Fprintf(&b, "%-6d │ %-24s │ %10s │ %5d │ %10s\n",
			line.Item.ID,
			fitText(valueOrDash(line.Item.Name), 24),
			formatMoney(line.Item.Price),
			line.Quantity,
			formatMoney(orders.LineTotal(line)),
		)
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", formatMoney(orders.OrderTotal(m.order)))

	return b.String()
}
