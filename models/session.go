// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Session is the authenticated state of the client. It is loaded from local
// storage on startup and cleared on logout or when the gateway rejects the
// access token.
type Session struct {
	User         User      `json:"user"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// IsAuthenticated reports whether the session has both a user and an access
// token.
func (s Session) IsAuthenticated() bool {
	return s.User.ID > 0 && s.AccessToken != ""
}

// IsExpired reports whether the access token expiry has passed at now.
// A session without a known expiry never expires locally.
func (s Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
