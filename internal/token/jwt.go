// Package token issues and verifies the short-lived session tokens handed to
// ATM clients after login.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims identify the card session. Nothing else is embedded.
type Claims struct {
	CardNumber string `json:"cardNumber"`
	CustomerID string `json:"customerId"`
	jwt.RegisteredClaims
}

// Signer mints and verifies session tokens.
type Signer interface {
	Issue(claims Claims) (string, time.Time, error)
	Parse(token string) (*Claims, error)
}

// JWTSigner signs HS256 tokens with a fixed lifetime.
type JWTSigner struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewJWTSigner(secret string, ttl time.Duration, issuer string) *JWTSigner {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &JWTSigner{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *JWTSigner) WithClock(now func() time.Time) *JWTSigner {
	s.now = now
	return s
}

// TTL reports the lifetime of issued tokens.
func (s *JWTSigner) TTL() time.Duration {
	return s.ttl
}

// Issue returns a signed token and its expiry. Registered claims on the input
// are overwritten.
func (s *JWTSigner) Issue(claims Claims) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    s.issuer,
		Subject:   claims.CustomerID,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse verifies signature, algorithm and expiry. Expiry is reported as
// ErrTokenExpired regardless of whether the subject still exists.
func (s *JWTSigner) Parse(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)

	claims := &Claims{}
	parsed, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.CardNumber == "" || claims.CustomerID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
