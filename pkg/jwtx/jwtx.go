// Package jwtx issues and verifies the HS256 session tokens used by the
// API. Claims are deliberately minimal: subject, issued-at, and expiry.
package jwtx

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long an issued session token stays valid.
const DefaultTTL = 7 * 24 * time.Hour

var (
	// ErrInvalidToken reports a token that failed signature or claim
	// validation, including expiry.
	ErrInvalidToken = errors.New("jwtx: invalid token")
)

// Claims is the verified content of a session token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Codec signs and verifies HS256 tokens with a shared secret.
type Codec struct {
	key []byte
	ttl time.Duration
}

// NewCodec builds a Codec from a base64-encoded HMAC secret.
func NewCodec(encodedSecret string, ttl time.Duration) (*Codec, error) {
	key, err := base64.StdEncoding.DecodeString(encodedSecret)
	if err != nil {
		return nil, fmt.Errorf("jwtx: decode secret: %w", err)
	}
	if len(key) == 0 {
		return nil, errors.New("jwtx: empty secret")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{key: key, ttl: ttl}, nil
}

// Issue signs a token for the given subject, valid for the codec TTL.
func (c *Codec) Issue(subject string) (string, error) {
	return c.IssueAt(subject, time.Now())
}

// IssueAt signs a token as if issued at the given time. Exposed for tests.
func (c *Codec) IssueAt(subject string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign token: %w", err)
	}
	return token, nil
}

// Verify checks the signature and expiry of a token and returns its claims.
func (c *Codec) Verify(raw string) (Claims, error) {
	var claims jwt.RegisteredClaims

	_, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) { return c.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	out := Claims{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
