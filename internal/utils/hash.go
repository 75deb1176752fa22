package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"strings"
)

// Hash computes an HMAC-SHA256 digest of data keyed with hashKey.
func Hash(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}

// EmailSalt derives a stable per-user salt from an email address. The email
// is trimmed and lower-cased first so that login and registration agree on
// the salt regardless of how the address was typed.
func EmailSalt(email, appSalt string) []byte {
	return Hash([]byte(strings.ToLower(strings.TrimSpace(email))), appSalt)
}
