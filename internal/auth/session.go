package auth

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long an issued admin session token stays valid.
const DefaultSessionTTL = 15 * time.Minute

// SessionIssuer mints short-lived admin session JWTs so the admin UI
// never has to hold the long-term secret in browser memory. The signing
// key is random per process; sessions do not survive a restart.
type SessionIssuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewSessionIssuer creates an issuer with a fresh random signing key.
func NewSessionIssuer(ttl time.Duration) (*SessionIssuer, error) {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate session key: %w", err)
	}
	return &SessionIssuer{key: key, ttl: ttl, now: time.Now}, nil
}

// Issue returns a signed session token and its expiry.
func (s *SessionIssuer) Issue() (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	})

	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, expires, nil
}

// Verify reports whether the token is a currently valid session token.
func (s *SessionIssuer) Verify(tokenString string) bool {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.key, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(func() time.Time { return s.now() }))
	return err == nil && token.Valid
}
