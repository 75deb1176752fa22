package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-order-desk/internal/orders"
	"github.com/MKhiriev/go-order-desk/internal/service"
	"github.com/MKhiriev/go-order-desk/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	cellItem = iota
	cellQuantity
	cellsPerRow
)

// orderFormModel edits the rows of a new order or of an existing one. In edit
// mode the snapshot is the baseline of the diff and is never modified.
type orderFormModel struct {
	ctx    context.Context
	orders service.ClientOrderService

	editing  bool
	snapshot models.Order
	userID   int64

	rows     orders.Rows
	cells    [][cellsPerRow]textinput.Model
	cellErrs map[int]string
	focus    int

	saving bool
	errMsg string
}

func newCreateForm(ctx context.Context, svc service.ClientOrderService, userID int64) orderFormModel {
	m := orderFormModel{
		ctx:    ctx,
		orders: svc,
		userID: userID,
	}
	m.setRows(orders.NewRows())
	return m
}

func newEditForm(ctx context.Context, svc service.ClientOrderService, snapshot models.Order, userID int64) orderFormModel {
	if snapshot.UserID > 0 {
		userID = snapshot.UserID
	}
	m := orderFormModel{
		ctx:      ctx,
		orders:   svc,
		editing:  true,
		snapshot: snapshot,
		userID:   userID,
	}
	m.setRows(orders.FromOrder(snapshot))
	return m
}

func (m *orderFormModel) setRows(rows orders.Rows) {
	m.rows = rows
	m.cells = make([][cellsPerRow]textinput.Model, 0, len(rows))
	for _, row := range rows {
		m.cells = append(m.cells, newRowCells(row))
	}
	m.cellErrs = make(map[int]string)
	m.focus = 0
	m.applyFocus()
}

func newRowCells(row models.LineEntry) [cellsPerRow]textinput.Model {
	item := textinput.New()
	item.Placeholder = "item id"
	item.CharLimit = 18
	item.Width = 12
	if row.CatalogItemID > 0 {
		item.SetValue(strconv.FormatInt(row.CatalogItemID, 10))
	}

	quantity := textinput.New()
	quantity.Placeholder = "qty"
	quantity.CharLimit = 9
	quantity.Width = 6
	quantity.SetValue(strconv.FormatInt(row.Quantity, 10))

	return [cellsPerRow]textinput.Model{item, quantity}
}

func (m orderFormModel) update(msg tea.Msg) (orderFormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.save):
			if m.saving {
				return m, nil
			}
			if len(m.cellErrs) > 0 {
				m.errMsg = "fix the highlighted cells first"
				return m, nil
			}
			m.errMsg = ""
			m.saving = true
			return m, m.cmdSave()
		case m.saving:
			// the rows are frozen until the gateway answers
			return m, nil
		case key.Matches(keyMsg, keys.addRow):
			m.addRow()
			return m, nil
		case key.Matches(keyMsg, keys.removeRow):
			m.removeRow()
			return m, nil
		case key.Matches(keyMsg, keys.tab):
			m.moveFocus(1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.moveFocus(-1)
			return m, nil
		}
	}

	if m.saving || len(m.cells) == 0 {
		return m, nil
	}

	row, col := m.focus/cellsPerRow, m.focus%cellsPerRow
	var cmd tea.Cmd
	m.cells[row][col], cmd = m.cells[row][col].Update(msg)
	m.patchFromCell(row, col)
	return m, cmd
}

func (m *orderFormModel) addRow() {
	m.rows = m.rows.AddRow()
	m.cells = append(m.cells, newRowCells(m.rows[len(m.rows)-1]))
	m.focus = (len(m.cells) - 1) * cellsPerRow
	m.applyFocus()
}

func (m *orderFormModel) removeRow() {
	if len(m.rows) == 0 {
		return
	}
	row := m.focus / cellsPerRow
	m.rows = m.rows.RemoveRow(row)
	m.cells = append(m.cells[:row:row], m.cells[row+1:]...)

	// cell errors are keyed by cell index, shift the ones below the removed row
	shifted := make(map[int]string, len(m.cellErrs))
	for idx, msg := range m.cellErrs {
		switch r := idx / cellsPerRow; {
		case r < row:
			shifted[idx] = msg
		case r > row:
			shifted[idx-cellsPerRow] = msg
		}
	}
	m.cellErrs = shifted

	if m.focus >= len(m.cells)*cellsPerRow {
		m.focus = max(0, len(m.cells)*cellsPerRow-cellsPerRow)
	}
	m.applyFocus()
}

func (m *orderFormModel) moveFocus(delta int) {
	total := len(m.cells) * cellsPerRow
	if total == 0 {
		return
	}
	m.focus = (m.focus + delta + total) % total
	m.applyFocus()
}

func (m *orderFormModel) applyFocus() {
	for r := range m.cells {
		for c := range m.cells[r] {
			if r*cellsPerRow+c == m.focus {
				m.cells[r][c].Focus()
			} else {
				m.cells[r][c].Blur()
			}
		}
	}
}

// patchFromCell copies the text of a cell into the rows. Text that is not a
// number marks the cell and leaves the row as it was.
func (m *orderFormModel) patchFromCell(row, col int) {
	idx := row*cellsPerRow + col
	raw := strings.TrimSpace(m.cells[row][col].Value())

	var value int64
	if raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || v < 0 {
			m.cellErrs[idx] = "not a number"
			return
		}
		value = v
	}
	delete(m.cellErrs, idx)

	switch col {
	case cellItem:
		m.rows = m.rows.PatchRow(row, models.LinePatch{CatalogItemID: &value})
	case cellQuantity:
		if raw == "" {
			m.cellErrs[idx] = "required"
			return
		}
		m.rows = m.rows.PatchRow(row, models.LinePatch{Quantity: &value})
		if got := m.rows[row].Quantity; got != value {
			m.cells[row][col].SetValue(strconv.FormatInt(got, 10))
		}
	}
}

func (m orderFormModel) cmdSave() tea.Cmd {
	ctx := m.ctx
	svc := m.orders
	entries := m.rows.Entries()
	userID := m.userID

	if m.editing {
		snapshot := m.snapshot
		return func() tea.Msg {
			result, err := svc.Update(ctx, snapshot, userID, entries)
			return orderUpdatedMsg{result: result, err: err}
		}
	}

	return func() tea.Msg {
		order, err := svc.Create(ctx, userID, entries)
		return orderCreatedMsg{order: order, err: err}
	}
}

func (m orderFormModel) title() string {
	if m.editing {
		return fmt.Sprintf("EDIT ORDER #%d", m.snapshot.ID)
	}
	return "NEW ORDER"
}

func (m orderFormModel) View() string {
	var b strings.Builder

	b.WriteString("#   │ Item id        │ Quantity │ Name\n")
	b.WriteString("────┼────────────────┼──────────┼──────────────────────\n")
	if len(m.cells) == 0 {
		b.WriteString("no rows, ctrl+a adds one\n")
	}
	names := m.itemNames()
	for r, row := range m.cells {
		cursor := " "
		if m.focus/cellsPerRow == r {
			cursor = ">"
		}
		fmt.Fprintf(&b, "%s %-2d│ %s │ %s │ %s",
			cursor, r+1, row[cellItem].View(), row[cellQuantity].View(), valueOrDash(names[m.rows[r].CatalogItemID]))
		for c := range row {
			if msg, ok := m.cellErrs[r*cellsPerRow+c]; ok {
				b.WriteString(" ")
				b.WriteString(errorStyle.Render(msg))
			}
		}
		b.WriteString("\n")
	}

	if m.editing {
		m.writeChanges(&b)
	}

	if m.saving {
		b.WriteString("\n[Saving...]\n")
	} else {
		b.WriteString("\n[Save]\n")
	}
	renderError(&b, m.errMsg)

	return renderPage(
		m.title(),
		strings.TrimRight(b.String(), "\n"),
		"tab/shift+tab: cell │ ctrl+a: add row │ ctrl+x: remove row │ ctrl+s: save │ esc: cancel",
	)
}

// writeChanges renders the pending operations against the snapshot.
func (m orderFormModel) writeChanges(b *strings.Builder) {
	canonical := orders.Normalize(m.rows.Entries())
	ops := orders.BuildDiff(m.snapshot, canonical)

	b.WriteString("\n")
	if ops.IsEmpty() {
		b.WriteString("Changes: none\n")
		return
	}
	fmt.Fprintf(b, "Changes: %d removed │ %d added │ %d updated\n",
		len(ops.IDsToRemove), len(ops.ItemsToAdd), len(ops.ItemsToUpdate))

	preview, err := orders.Preview(m.snapshot, canonical)
	if err != nil || preview == "" {
		return
	}
	b.WriteString("\n")
	b.WriteString(strings.TrimRight(preview, "\n"))
	b.WriteString("\n")
}

func (m orderFormModel) itemNames() map[int64]string {
	names := make(map[int64]string, len(m.snapshot.Items))
	for _, line := range m.snapshot.Items {
		names[line.Item.ID] = line.Item.Name
	}
	return names
}
