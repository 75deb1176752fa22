// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/MKhiriev/go-order-desk/internal/utils"
	"golang.org/x/crypto/argon2"
)

// authDomain separates the transmitted hash from the derived key.
const authDomain = "go-order-desk/auth"

// argonPasswordHasher is the private implementation of [PasswordHasher].
type argonPasswordHasher struct {
	appSalt string

	// Argon2id tuning parameters.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32
}

// NewPasswordHasher constructs a [PasswordHasher] with the Argon2id
// parameters recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
//
// The salt of each user is HMAC-SHA256(email, appSalt), so two users with the
// same password send different hashes.
func NewPasswordHasher(appSalt string) PasswordHasher {
	return &argonPasswordHasher{
		appSalt:      appSalt,
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
	}
}

// HashPassword implements [PasswordHasher]: hex(SHA-256(Argon2id(password,
// salt) ‖ authDomain)).
func (h *argonPasswordHasher) HashPassword(email, password string) string {
	key := argon2.IDKey(
		[]byte(password),
		utils.EmailSalt(email, h.appSalt),
		h.argonTime,
		h.argonMemory,
		h.argonThreads,
		h.argonKeyLen,
	)

	digest := sha256.New()
	digest.Write(key)
	digest.Write([]byte(authDomain))
	return hex.EncodeToString(digest.Sum(nil))
}
