// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// User is the customer profile returned by the gateway after login.
type User struct {
	// ID is the gateway-assigned customer identifier.
	ID int64 `json:"id"`

	// Name is the given name of the user.
	Name string `json:"name"`

	// Surname is the family name of the user.
	Surname string `json:"surname"`

	// Email is the login identifier.
	Email string `json:"email"`

	// BirthDate is an ISO date (YYYY-MM-DD).
	BirthDate string `json:"birthDate"`
}

// Credentials is the login pair sent to the gateway. PasswordHash is always
// a derived value, never the plaintext password.
type Credentials struct {
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
}

// LoginRequest is the body of the gateway login call.
type LoginRequest = Credentials

// UserData is the profile part of a registration request.
type UserData struct {
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Email     string `json:"email"`
	BirthDate string `json:"birthDate"`
}

// RegisterRequest is the body of the gateway register call.
type RegisterRequest struct {
	UserData    UserData    `json:"userData"`
	Credentials Credentials `json:"credentials"`
}

// RegisterForm is what the user types on the registration screen.
type RegisterForm struct {
	Name           string
	Surname        string
	Email          string
	BirthDate      string
	Password       string
	RepeatPassword string
}

// LoginForm is what the user types on the login screen.
type LoginForm struct {
	Email    string
	Password string
}

// AuthResponse is returned by the gateway on successful login or
// registration. Any field may be empty; the adapter falls back to the
// Authorization header for the access token.
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user,omitempty"`
}
