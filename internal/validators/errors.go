package validators

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidUserID   = errors.New("user id must be set")
	ErrInvalidOrderID  = errors.New("invalid order id")
	ErrNoOrderItems    = errors.New("at least one item is required")
	ErrInvalidItemID   = errors.New("all items must have a valid item id")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidStatus   = errors.New("invalid order status")
	ErrNoChanges       = errors.New("update request carries no changes")

	ErrInvalidCredentials = errors.New("invalid credentials")
)

// FieldErrors maps a form field name to a human-readable problem with it.
// It is returned by form validators so each message can be shown next to
// its input.
type FieldErrors map[string]string

// Error implements the error interface.
func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return ErrInvalidCredentials.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap lets callers match FieldErrors with errors.Is(err, ErrInvalidCredentials).
func (fe FieldErrors) Unwrap() error {
	return ErrInvalidCredentials
}
