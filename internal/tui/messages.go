package tui

import (
	"github.com/MKhiriev/go-order-desk/models"
	tea "github.com/charmbracelet/bubbletea"
)

// Page names registered in the login flow router.
const (
	pageMenu     = "menu"
	pageLogin    = "login"
	pageRegister = "register"
)

// NavigateTo asks [RootModel] to switch the active page. A non-nil Payload is
// delivered to the new page instead of calling its Init.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// LoginResult is produced by the login page once the gateway answered.
type LoginResult struct {
	Session models.Session
	Err     error
}

// RegisterResult is produced by the register page once the gateway answered.
// LoggedIn is set when the registration also started a session.
type RegisterResult struct {
	Session  models.Session
	LoggedIn bool
	Email    string
	Err      error
}

// StatusNotice is shown on the menu page after a navigation.
type StatusNotice struct {
	Text  string
	Error bool
}

type ordersLoadedMsg struct {
	list models.OrderList
	err  error
}

type orderLoadedMsg struct {
	order models.Order
	err   error
}

type orderCreatedMsg struct {
	order models.Order
	err   error
}

type orderUpdatedMsg struct {
	result models.UpdateResult
	err    error
}

type orderDeletedMsg struct {
	orderID int64
	err     error
}

type clearStatusMsg struct{}
