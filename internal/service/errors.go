package service

import (
	"errors"

	"github.com/MKhiriev/go-order-desk/internal/app"
)

var (
	// ErrSessionExpired is returned when the gateway rejected the access
	// token. The session has already been ended when it is returned.
	ErrSessionExpired = errors.New(app.MsgAuthenticationFailed)

	// ErrNotAuthenticated is returned by calls that need a session when
	// nobody is logged in.
	ErrNotAuthenticated = errors.New("not authenticated")

	ErrWrongCredentials   = errors.New("wrong email or password")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrLoginOnServer      = errors.New("login on server failed")
	ErrRegisterOnServer   = errors.New("registration on server failed")

	// ErrMissingUser is returned when neither the login response nor the
	// access token identify the user.
	ErrMissingUser = errors.New("gateway response does not identify the user")

	ErrOrderNotFound       = errors.New("order not found")
	ErrForbidden           = errors.New("access to order is forbidden")
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrGatewayUnavailable  = errors.New("gateway unavailable")
	ErrGatewayFailure      = errors.New("gateway failed to process the request")

	// ErrInvalidSnapshot is returned by Update when the snapshot has no id.
	ErrInvalidSnapshot = errors.New("order snapshot has no id")
)
