package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-order-desk/internal/app"
	"github.com/MKhiriev/go-order-desk/internal/service"
	"github.com/MKhiriev/go-order-desk/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const statusTTL = 3 * time.Second

type mainTab int

const (
	tabOrders mainTab = iota
	tabProfile
)

type ordersView int

const (
	viewList ordersView = iota
	viewDetail
	viewForm
)

type mainLoopModel struct {
	ctx     context.Context
	orders  service.ClientOrderService
	session models.Session

	copyToClipboard func(string) error

	tab    mainTab
	view   ordersView
	list   listModel
	detail detailModel
	form   orderFormModel

	// set while the fresh snapshot for the edit form is being fetched
	editAfterLoad bool
	// the view the form returns to on esc
	formReturn ordersView

	status string
	errMsg string

	showConfirm   bool
	confirm       confirmModel
	pendingDelete int64
	deleting      bool

	showError    bool
	errorOverlay errorOverlayModel

	exit Exit
}

func newMainLoopModel(ctx context.Context, orders service.ClientOrderService, session models.Session) mainLoopModel {
	return mainLoopModel{
		ctx:             ctx,
		orders:          orders,
		session:         session,
		copyToClipboard: clipboard.WriteAll,
		list:            newListModel(),
	}
}

func (m mainLoopModel) Init() tea.Cmd {
	return tea.Batch(m.list.spinner.Tick, m.cmdLoadOrders())
}

func (m mainLoopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.list.loading && !m.detail.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.list.spinner, cmd = m.list.spinner.Update(msg)
		return m, cmd

	case ordersLoadedMsg:
		m.list.loading = false
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.errMsg = ""
		m.list.setList(msg.list)
		return m, nil

	case orderLoadedMsg:
		m.detail.loading = false
		editAfterLoad := m.editAfterLoad
		m.editAfterLoad = false
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.errMsg = ""
		m.detail.order = msg.order
		m.replaceInList(msg.order)
		if editAfterLoad {
			m.openEditForm(msg.order)
		}
		return m, nil

	case orderCreatedMsg:
		m.form.saving = false
		if msg.err != nil {
			if isSessionEnd(msg.err) {
				return m.expire()
			}
			m.form.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.view = viewList
		m.list.loading = true
		return m.withStatus(fmt.Sprintf("Order #%d created", msg.order.ID), m.list.spinner.Tick, m.cmdLoadOrders())

	case orderUpdatedMsg:
		m.form.saving = false
		if msg.err != nil {
			if isSessionEnd(msg.err) {
				return m.expire()
			}
			m.form.errMsg = humanizeError(msg.err)
			return m, nil
		}
		m.view = viewDetail
		m.detail.order = msg.result.Order
		if !msg.result.Changed {
			return m.withStatus(app.MsgNoChanges)
		}
		m.replaceInList(msg.result.Order)
		m.list.loading = true
		return m.withStatus(fmt.Sprintf("Order #%d updated", msg.result.Order.ID), m.list.spinner.Tick, m.cmdLoadOrders())

	case orderDeletedMsg:
		m.deleting = false
		if msg.err != nil {
			return m.fail(msg.err)
		}
		m.errMsg = ""
		m.view = viewList
		m.list.loading = true
		return m.withStatus(fmt.Sprintf("Order #%d deleted", msg.orderID), m.list.spinner.Tick, m.cmdLoadOrders())

	case clearStatusMsg:
		m.status = ""
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.view == viewForm {
			var cmd tea.Cmd
			m.form, cmd = m.form.update(msg)
			return m, cmd
		}
		return m, nil
	}

	if keyMsg.String() == "ctrl+c" {
		m.exit = ExitQuit
		return m, tea.Quit
	}

	if m.showError {
		if key.Matches(keyMsg, keys.enter) || key.Matches(keyMsg, keys.esc) {
			m.showError = false
			m.errorOverlay.message = ""
			if m.exit == ExitSessionExpired {
				return m, tea.Quit
			}
		}
		return m, nil
	}

	if m.showConfirm {
		return m.updateConfirm(keyMsg)
	}

	if m.tab == tabOrders && m.view == viewForm {
		if key.Matches(keyMsg, keys.esc) && !m.form.saving {
			m.view = m.formReturn
			return m, nil
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(keyMsg, keys.tab):
		if m.tab == tabOrders {
			m.tab = tabProfile
		} else {
			m.tab = tabOrders
		}
		return m, nil
	case key.Matches(keyMsg, keys.logout):
		m.exit = ExitLogout
		return m, tea.Quit
	case key.Matches(keyMsg, keys.quit):
		m.exit = ExitQuit
		return m, tea.Quit
	}

	if m.tab != tabOrders {
		return m, nil
	}

	if m.view == viewDetail {
		return m.updateDetail(keyMsg)
	}
	return m.updateList(keyMsg)
}

func (m mainLoopModel) updateList(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.up):
		m.list.move(-1)
	case key.Matches(keyMsg, keys.down):
		m.list.move(1)
	case key.Matches(keyMsg, keys.reload):
		if m.list.loading {
			return m, nil
		}
		m.list.loading = true
		m.errMsg = ""
		return m, tea.Batch(m.list.spinner.Tick, m.cmdLoadOrders())
	case key.Matches(keyMsg, keys.newItem):
		m.form = newCreateForm(m.ctx, m.orders, m.session.User.ID)
		m.formReturn = viewList
		m.view = viewForm
		m.errMsg = ""
	case key.Matches(keyMsg, keys.enter):
		order, ok := m.list.current()
		if !ok {
			m.status = "No orders"
			return m, nil
		}
		m.view = viewDetail
		m.detail = detailModel{order: order, loading: true}
		return m, tea.Batch(m.list.spinner.Tick, m.cmdGetOrder(order.ID))
	case key.Matches(keyMsg, keys.edit):
		order, ok := m.list.current()
		if !ok {
			m.status = "No orders"
			return m, nil
		}
		m.formReturn = viewList
		m.editAfterLoad = true
		m.detail = detailModel{order: order, loading: true}
		return m, m.cmdGetOrder(order.ID)
	case key.Matches(keyMsg, keys.delete):
		order, ok := m.list.current()
		if !ok {
			m.status = "No orders"
			return m, nil
		}
		m.askDelete(order)
	case key.Matches(keyMsg, keys.copy):
		order, ok := m.list.current()
		if !ok {
			m.status = "Nothing to copy"
			return m, nil
		}
		return m.copyOrderID(order.ID)
	}

	return m, nil
}

func (m mainLoopModel) updateDetail(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	order := m.detail.order

	switch {
	case key.Matches(keyMsg, keys.esc):
		m.view = viewList
	case key.Matches(keyMsg, keys.reload):
		if m.detail.loading {
			return m, nil
		}
		m.detail.loading = true
		return m, tea.Batch(m.list.spinner.Tick, m.cmdGetOrder(order.ID))
	case key.Matches(keyMsg, keys.edit):
		if m.detail.loading {
			m.status = "Wait for the order to load"
			return m, nil
		}
		m.formReturn = viewDetail
		m.openEditForm(order)
	case key.Matches(keyMsg, keys.delete):
		m.askDelete(order)
	case key.Matches(keyMsg, keys.copy):
		return m.copyOrderID(order.ID)
	}

	return m, nil
}

func (m mainLoopModel) updateConfirm(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, keys.yes):
		m.showConfirm = false
		if m.pendingDelete <= 0 || m.deleting {
			return m, nil
		}
		orderID := m.pendingDelete
		m.pendingDelete = 0
		m.deleting = true
		return m, m.cmdDelete(orderID)
	case key.Matches(keyMsg, keys.no):
		m.showConfirm = false
		m.pendingDelete = 0
	}
	return m, nil
}

func (m *mainLoopModel) askDelete(order models.Order) {
	m.pendingDelete = order.ID
	m.confirm = confirmModel{message: fmt.Sprintf("order #%d", order.ID)}
	m.showConfirm = true
}

func (m *mainLoopModel) openEditForm(order models.Order) {
	m.form = newEditForm(m.ctx, m.orders, order, m.session.User.ID)
	m.view = viewForm
	m.errMsg = ""
}

func (m mainLoopModel) copyOrderID(orderID int64) (tea.Model, tea.Cmd) {
	if err := m.copyToClipboard(strconv.FormatInt(orderID, 10)); err != nil {
		m.errMsg = fmt.Sprintf("copy failed: %v", err)
		return m, nil
	}
	return m.withStatus(fmt.Sprintf("Order id %d copied", orderID))
}

func (m *mainLoopModel) replaceInList(order models.Order) {
	for i := range m.list.list.Orders {
		if m.list.list.Orders[i].ID == order.ID {
			m.list.list.Orders[i] = order
			return
		}
	}
}

// withStatus shows a transient status line next to cmds.
func (m mainLoopModel) withStatus(status string, cmds ...tea.Cmd) (tea.Model, tea.Cmd) {
	m.status = status
	cmds = append(cmds, tea.Tick(statusTTL, func(time.Time) tea.Msg { return clearStatusMsg{} }))
	return m, tea.Batch(cmds...)
}

func (m mainLoopModel) fail(err error) (tea.Model, tea.Cmd) {
	if isSessionEnd(err) {
		return m.expire()
	}
	m.errMsg = humanizeError(err)
	return m, nil
}

// expire shows the authentication message; closing it leaves the loop.
func (m mainLoopModel) expire() (tea.Model, tea.Cmd) {
	m.exit = ExitSessionExpired
	m.showConfirm = false
	m.showError = true
	m.errorOverlay = errorOverlayModel{message: app.MsgAuthenticationFailed}
	return m, nil
}

func isSessionEnd(err error) bool {
	return errors.Is(err, service.ErrSessionExpired) || errors.Is(err, service.ErrNotAuthenticated)
}

func (m mainLoopModel) cmdLoadOrders() tea.Cmd {
	ctx := m.ctx
	svc := m.orders

	return func() tea.Msg {
		list, err := svc.List(ctx)
		return ordersLoadedMsg{list: list, err: err}
	}
}

func (m mainLoopModel) cmdGetOrder(orderID int64) tea.Cmd {
	ctx := m.ctx
	svc := m.orders

	return func() tea.Msg {
		order, err := svc.Get(ctx, orderID)
		return orderLoadedMsg{order: order, err: err}
	}
}

func (m mainLoopModel) cmdDelete(orderID int64) tea.Cmd {
	ctx := m.ctx
	svc := m.orders

	return func() tea.Msg {
		err := svc.Delete(ctx, orderID)
		return orderDeletedMsg{orderID: orderID, err: err}
	}
}

func (m mainLoopModel) View() string {
	if m.showError {
		return m.errorOverlay.View()
	}

	var title, body, hotKeys string
	switch {
	case m.tab == tabProfile:
		title, body = "PROFILE", m.viewProfile()
		hotKeys = "tab: orders │ l: log out │ q: quit"
	case m.view == viewForm:
		return m.form.View()
	case m.view == viewDetail:
		title = fmt.Sprintf("ORDER #%d", m.detail.order.ID)
		body = m.detail.View()
		hotKeys = "esc: back │ e: edit │ ctrl+d: delete │ r: reload │ c: copy id"
	default:
		title, body = "ORDERS", m.list.View()
		hotKeys = "enter: open │ n: new │ e: edit │ ctrl+d: delete │ r: reload │ c: copy id │ tab: profile │ l: log out"
	}

	var b strings.Builder
	b.WriteString(m.viewTabs())
	b.WriteString("\n\n")
	b.WriteString(body)
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(okStyle.Render(m.status))
		b.WriteString("\n")
	}
	renderError(&b, m.errMsg)

	page := renderPage(title, strings.TrimRight(b.String(), "\n"), hotKeys)
	if m.showConfirm {
		page += "\n\n" + m.confirm.View()
	}
	return page
}

func (m mainLoopModel) viewTabs() string {
	ordersTab, profileTab := activeTabStyle, tabStyle
	if m.tab == tabProfile {
		ordersTab, profileTab = tabStyle, activeTabStyle
	}
	return ordersTab.Render("Orders") + "   " + profileTab.Render("Profile")
}

func (m mainLoopModel) viewProfile() string {
	user := m.session.User

	var b strings.Builder
	fmt.Fprintf(&b, "Customer id │ %d\n", user.ID)
	fmt.Fprintf(&b, "Name        │ %s\n", valueOrDash(strings.TrimSpace(user.Name+" "+user.Surname)))
	fmt.Fprintf(&b, "Email       │ %s\n", valueOrDash(user.Email))
	fmt.Fprintf(&b, "Birth date  │ %s\n", valueOrDash(user.BirthDate))
	if !m.session.ExpiresAt.IsZero() {
		fmt.Fprintf(&b, "Session     │ until %s\n", m.session.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return b.String()
}
