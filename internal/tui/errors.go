// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/go-order-desk/internal/adapter"
	"github.com/MKhiriev/go-order-desk/internal/app"
	"github.com/MKhiriev/go-order-desk/internal/service"
	"github.com/MKhiriev/go-order-desk/internal/validators"
)

// humanizeError turns a service error into the line shown to the user. The
// gateway's own message wins over the generic text when it sent one.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, service.ErrSessionExpired), errors.Is(err, service.ErrNotAuthenticated):
		return app.MsgAuthenticationFailed
	case errors.Is(err, service.ErrWrongCredentials):
		return app.MsgInvalidLoginPassword
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return gatewayMessageOr(err, app.MsgEmailAlreadyExists)
	case errors.Is(err, service.ErrGatewayUnavailable), adapter.IsNetworkError(err):
		return app.MsgGatewayUnavailable
	case errors.Is(err, service.ErrInvalidDataProvided):
		return gatewayMessageOr(err, app.MsgInvalidDataProvided)
	case errors.Is(err, service.ErrOrderNotFound):
		return app.MsgOrderNotFound
	case errors.Is(err, service.ErrForbidden):
		return app.MsgForbidden
	case errors.Is(err, service.ErrGatewayFailure):
		return gatewayMessageOr(err, app.MsgGatewayFailure)

	case errors.Is(err, validators.ErrInvalidUserID):
		return app.MsgUserIDRequired
	case errors.Is(err, validators.ErrNoOrderItems):
		return app.MsgItemsRequired
	case errors.Is(err, validators.ErrInvalidItemID):
		return app.MsgInvalidItemID
	case errors.Is(err, validators.ErrInvalidQuantity):
		return app.MsgInvalidQuantity
	}

	var fieldErrs validators.FieldErrors
	if errors.As(err, &fieldErrs) {
		return app.MsgInvalidDataProvided
	}

	return app.MsgUnexpectedError
}

func gatewayMessageOr(err error, fallback string) string {
	if msg, ok := service.GatewayMessage(err); ok {
		return msg
	}
	return fallback
}

// fieldErrors extracts per-field problems so a form can show them next to
// its inputs. The second result is false for any other error.
func fieldErrors(err error) (validators.FieldErrors, bool) {
	var fieldErrs validators.FieldErrors
	if errors.As(err, &fieldErrs) {
		return fieldErrs, true
	}
	return nil, false
}
