// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// order desk services and the terminal UI.
//
// All Msg* constants are human-readable message strings shown to the user or
// matched against gateway error bodies. Keeping them in one place ensures
// consistent wording throughout the client.
package app

const (
	// MsgAuthenticationFailed is shown when the gateway rejects the access
	// token and the session is ended.
	MsgAuthenticationFailed = "Authentication failed. Please log in again."

	// MsgInvalidLoginPassword is shown when the gateway rejects the supplied
	// email/password pair.
	MsgInvalidLoginPassword = "Invalid email or password."

	// MsgEmailAlreadyExists is shown when registration fails because the
	// email is taken.
	MsgEmailAlreadyExists = "A user with this email already exists."

	// MsgRegistrationSucceeded is shown after a registration that did not
	// log the user in.
	MsgRegistrationSucceeded = "Registration successful. Please log in."

	// MsgGatewayUnavailable is shown when no response was received from the
	// API gateway.
	MsgGatewayUnavailable = "Cannot reach the order service. Check your connection and try again."

	// MsgGatewayFailure is shown when the gateway answers with a 5xx status.
	MsgGatewayFailure = "The order service failed to process the request."

	// MsgOrderNotFound is shown when the requested order no longer exists.
	MsgOrderNotFound = "Order not found."

	// MsgForbidden is shown when the gateway refuses access to an order of
	// another user.
	MsgForbidden = "You are not allowed to access this order."

	// MsgInvalidDataProvided is shown when the gateway answers 400/422
	// without a message of its own.
	MsgInvalidDataProvided = "Invalid data provided."

	// MsgNoChanges is shown when an edited order matches the server state.
	MsgNoChanges = "No changes to save."

	// MsgStaleOrders flags an order list served from the local cache.
	MsgStaleOrders = "Offline: showing cached orders."

	// MsgUserIDRequired is shown when an order is submitted without a
	// customer id.
	MsgUserIDRequired = "Customer id is required."

	// MsgItemsRequired is shown when a new order has no valid rows.
	MsgItemsRequired = "Add at least one item."

	// MsgInvalidItemID is shown when a row references a non-positive item id.
	MsgInvalidItemID = "Item id must be a positive number."

	// MsgInvalidQuantity is shown when a row has a non-positive quantity.
	MsgInvalidQuantity = "Quantity must be at least 1."

	// MsgUnexpectedError is the fallback for errors with no dedicated
	// message.
	MsgUnexpectedError = "Something went wrong."
)
