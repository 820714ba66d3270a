// Package cryptox wraps the one-way password hashing used for stored
// credentials. The hash is opaque to the rest of the code: it is produced
// once on write and only ever checked through Compare.
package cryptox

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when the configuration does
// not override it.
const DefaultCost = 12

// HashPassword derives an opaque hash from a plaintext password.
// The plaintext must not be persisted anywhere after this call.
func HashPassword(plain string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// ComparePassword reports whether plain matches the stored hash.
func ComparePassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// EqualTokens compares two shared-secret tokens in constant time.
func EqualTokens(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
