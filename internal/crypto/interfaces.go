// Package crypto derives the password hash the client sends to the gateway
// in place of the plaintext password.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher turns a user's password into the value sent as
// "passwordHash". The result must be deterministic for a given email and
// password so that login reproduces the hash stored at registration.
type PasswordHasher interface {
	// HashPassword returns the hex-encoded password hash for email.
	HashPassword(email, password string) string
}
