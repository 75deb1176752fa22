package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-order-desk/internal/app"
	"github.com/MKhiriev/go-order-desk/internal/orders"
	"github.com/MKhiriev/go-order-desk/models"
	"github.com/charmbracelet/bubbles/spinner"
)

type listModel struct {
	list    models.OrderList
	idx     int
	loading bool
	spinner spinner.Model
}

func newListModel() listModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return listModel{spinner: s, loading: true}
}

func (m listModel) current() (models.Order, bool) {
	if len(m.list.Orders) == 0 || m.idx < 0 || m.idx >= len(m.list.Orders) {
		return models.Order{}, false
	}
	return m.list.Orders[m.idx], true
}

func (m *listModel) setList(list models.OrderList) {
	// keep the cursor on the same order across reloads
	selected, hadSelection := m.current()

	m.list = list
	m.idx = 0
	if hadSelection {
		for i, order := range list.Orders {
			if order.ID == selected.ID {
				m.idx = i
				break
			}
		}
	}
}

func (m *listModel) move(delta int) {
	m.idx += delta
	if m.idx >= len(m.list.Orders) {
		m.idx = len(m.list.Orders) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m listModel) View() string {
	var b strings.Builder

	if m.loading {
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading orders...\n")
		if len(m.list.Orders) == 0 {
			return b.String()
		}
		b.WriteString("\n")
	}

	if m.list.Stale {
		b.WriteString(staleStyle.Render(app.MsgStaleOrders))
		b.WriteString("\n\n")
	}

	if len(m.list.Orders) == 0 {
		b.WriteString("No orders yet, press n to create one\n")
		return b.String()
	}

	b.WriteString("  ID     │ Status      │ Date             │ Lines │ Total\n")
	b.WriteString("─────────┼─────────────┼──────────────────┼───────┼────────────\n")
	for i, order := range m.list.Orders {
		cursor := " "
		if i == m.idx {
			cursor = ">"
		}
		fmt.Fprintf(&b, "%s %-6d │ %-11s │ %-16s │ %5d │ %10s\n",
			cursor,
			order.ID,
			fitText(statusLabel(order.Status), 11),
			fitText(formatOrderDate(order), 16),
			len(order.Items),
			formatMoney(orders.OrderTotal(order)),
		)
	}

	if !m.list.FetchedAt.IsZero() {
		fmt.Fprintf(&b, "\nUpdated at %s\n", m.list.FetchedAt.Format("15:04:05"))
	}

	return b.String()
}
