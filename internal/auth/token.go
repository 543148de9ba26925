package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const bearerPrefix = "Bearer "

// TokenValidator checks a presented bearer credential against the
// configured admin secret. The secret is either held in plaintext and
// compared in constant time, or held as a bcrypt hash.
type TokenValidator struct {
	secret     []byte
	secretHash []byte
}

// NewTokenValidator builds a validator from the configured secret.
// hash, when non-empty, takes precedence over the plaintext secret.
// A validator with neither configured rejects everything.
func NewTokenValidator(secret, hash string) *TokenValidator {
	v := &TokenValidator{}
	if hash != "" {
		v.secretHash = []byte(hash)
	} else if secret != "" {
		v.secret = []byte(secret)
	}
	return v
}

// Configured reports whether any secret is loaded.
func (v *TokenValidator) Configured() bool {
	return len(v.secret) > 0 || len(v.secretHash) > 0
}

// ValidateHeader extracts the bearer token from an Authorization header
// value and validates it. Malformed headers (wrong scheme, missing value,
// empty token) are never an error, just not authenticated.
func (v *TokenValidator) ValidateHeader(header string) bool {
	if !strings.HasPrefix(header, bearerPrefix) {
		return false
	}
	return v.ValidateToken(strings.TrimPrefix(header, bearerPrefix))
}

// ValidateToken compares a raw token against the configured secret.
// The plaintext path uses subtle.ConstantTimeCompare so timing does not
// reveal where the first mismatching byte sits.
func (v *TokenValidator) ValidateToken(token string) bool {
	if token == "" {
		return false
	}

	if len(v.secretHash) > 0 {
		return bcrypt.CompareHashAndPassword(v.secretHash, []byte(token)) == nil
	}

	if len(v.secret) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), v.secret) == 1
}
