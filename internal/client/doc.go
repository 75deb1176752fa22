// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It wires the terminal UI flows, the client services and the background
// order refresh into a single process lifecycle: restore or start a session,
// run the main loop, and go back to the login flow on logout or when the
// gateway rejects the session.
package client
