package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-order-desk/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientSessionService owns the authenticated session of the client: the
// user, the tokens and their persisted copy. It is the only component that
// installs or removes the bearer token of the gateway adapter.
type ClientSessionService interface {
	// Init loads the persisted session, if any. An expired session is
	// cleared and reported as ErrSessionExpired; a missing one as
	// ErrNotAuthenticated.
	Init(ctx context.Context) (models.Session, error)

	// Current returns the in-memory session and whether it is
	// authenticated.
	Current() (models.Session, bool)

	// Start builds a session from a login response, persists it and
	// installs the access token. email is used when the response carries
	// no user profile.
	Start(ctx context.Context, resp models.AuthResponse, email string) (models.Session, error)

	// End clears the persisted session, the user's cached orders and the
	// in-memory fields. Safe to call without a session.
	End(ctx context.Context) error
}

// ClientAuthService implements the login, registration and logout flows.
// Passwords never leave the client in plaintext: they are replaced by the
// hash produced by crypto.PasswordHasher.
type ClientAuthService interface {
	// Login validates form, authenticates against the gateway and starts
	// the session. Field problems are returned as validators.FieldErrors.
	Login(ctx context.Context, form models.LoginForm) (models.Session, error)

	// Register validates form and creates the account. When the gateway
	// answers with an access token the session is started and loggedIn is
	// true; otherwise the user has to log in.
	Register(ctx context.Context, form models.RegisterForm) (session models.Session, loggedIn bool, err error)

	// Logout ends the session.
	Logout(ctx context.Context) error
}

// ClientOrderService implements the order use cases. Any call rejected by
// the gateway as unauthorized ends the session and returns
// ErrSessionExpired.
type ClientOrderService interface {
	// List returns the orders of the session user, falling back to the
	// local cache when the gateway is unreachable.
	List(ctx context.Context) (models.OrderList, error)

	// Get fetches a fresh snapshot of an order.
	Get(ctx context.Context, orderID int64) (models.Order, error)

	// Create validates and normalizes entries and creates a new order for
	// userID.
	Create(ctx context.Context, userID int64, entries []models.LineEntry) (models.Order, error)

	// Update reconciles entries against snapshot and sends the minimal
	// operation set. Nothing is sent when there is nothing to change.
	Update(ctx context.Context, snapshot models.Order, userID int64, entries []models.LineEntry) (models.UpdateResult, error)

	// Delete removes an order.
	Delete(ctx context.Context, orderID int64) error
}

// ClientRefreshJob defines the contract for a background worker that
// periodically re-lists the orders of the session user so the offline cache
// stays warm.
type ClientRefreshJob interface {
	// Start launches the background goroutine. It refreshes every interval,
	// defaulting to 5 minutes if interval is zero or negative. Any
	// previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
