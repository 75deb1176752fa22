// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-order-desk/internal/tui"
	"github.com/MKhiriev/go-order-desk/models"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit or until ctx
	// is cancelled.
	Run(ctx context.Context) error
}

// UI is the interactive part of the client, implemented by [tui.TUI].
type UI interface {
	// LoginFlow blocks until a session is started or the user quits
	// (tui.ErrUserQuit).
	LoginFlow(ctx context.Context, notice tui.StatusNotice) (models.Session, error)

	// MainLoop blocks while the user works with the orders of session.
	MainLoop(ctx context.Context, session models.Session) (tui.Exit, error)
}
