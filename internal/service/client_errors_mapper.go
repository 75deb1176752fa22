// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-order-desk/internal/adapter"
	"github.com/MKhiriev/go-order-desk/models"
)

// mapAdapterError translates the adapter's transport error into a service
// business error. The original error stays in the chain so the gateway
// message can still be shown.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrUnavailable), errors.Is(err, adapter.ErrBadGateway):
		return fmt.Errorf("%w: %w", ErrGatewayUnavailable, err)

	case errors.Is(err, adapter.ErrBadRequest):
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)

	case errors.Is(err, adapter.ErrForbidden):
		return fmt.Errorf("%w: %w", ErrForbidden, err)

	case errors.Is(err, adapter.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrOrderNotFound, err)

	case errors.Is(err, adapter.ErrInternalServerError), errors.Is(err, adapter.ErrUnexpectedStatus):
		return fmt.Errorf("%w: %w", ErrGatewayFailure, err)
	}

	return err
}

// mapAuthError is mapAdapterError for the login and register calls, where
// 401 means bad credentials rather than an expired session.
func mapAuthError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, adapter.ErrForbidden):
		return fmt.Errorf("%w: %w", ErrWrongCredentials, err)
	case errors.Is(err, adapter.ErrConflict):
		return fmt.Errorf("%w: %w", ErrEmailAlreadyExists, err)
	}
	return mapAdapterError(err)
}

// GatewayMessage returns the message of the gateway error body wrapped in
// err, if any.
func GatewayMessage(err error) (string, bool) {
	var apiErr *models.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message, true
	}
	return "", false
}
