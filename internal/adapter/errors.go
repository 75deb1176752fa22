package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnexpectedStatus    = errors.New("unexpected http status")

	// ErrUnavailable wraps transport failures where no HTTP response was
	// received (connection refused, timeout, DNS).
	ErrUnavailable = errors.New("gateway unavailable")

	// ErrNoToken is returned by order calls made before a token was set.
	ErrNoToken = errors.New("no authentication token found")

	// ErrMissingToken is returned when a successful login carries no access
	// token in either the body or the Authorization header.
	ErrMissingToken = errors.New("gateway returned no access token")

	ErrDecodeResponse = errors.New("cannot decode gateway response")
)
