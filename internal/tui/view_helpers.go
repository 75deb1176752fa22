package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-order-desk/models"
	"github.com/charmbracelet/bubbles/textinput"
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		lines := strings.Split(data, "\n")
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n")
	b.WriteString("  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString("  ")
	b.WriteString(helpStyle.Render("ctrl+c: quit"))

	return b.String()
}

// renderFormRow writes "label │ [input]" and the field error, if any.
func renderFormRow(b *strings.Builder, label string, width int, input textinput.Model, fieldErr string) {
	fmt.Fprintf(b, "%-*s │ [%s]", width, label, input.View())
	if fieldErr != "" {
		b.WriteString(" ")
		b.WriteString(errorStyle.Render(fieldErr))
	}
	b.WriteString("\n")
}

func renderError(b *strings.Builder, msg string) {
	if msg == "" {
		return
	}
	b.WriteString("\n")
	b.WriteString(errorStyle.Render("Error: " + msg))
	b.WriteString("\n")
}

func valueOrDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

func fitText(v string, max int) string {
	if max <= 0 || utf8.RuneCountInString(v) <= max {
		return v
	}
	runes := []rune(v)
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func formatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatOrderDate(order models.Order) string {
	t, ok := order.Date()
	if !ok {
		return valueOrDash(order.OrderDate)
	}
	return t.Format("2006-01-02 15:04")
}

func statusLabel(status models.OrderStatus) string {
	switch status {
	case models.OrderStatusPaid:
		return "Paid"
	case models.OrderStatusUnpaid:
		return "Unpaid"
	case models.OrderStatusCreated:
		return "Created"
	case models.OrderStatusProcessing:
		return "Processing"
	case models.OrderStatusCompleted:
		return "Completed"
	case models.OrderStatusCanceled:
		return "Canceled"
	default:
		return valueOrDash(string(status))
	}
}
