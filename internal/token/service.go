// Package token issues and validates the signed identity tokens that gate
// every protected request.
//
// Tokens are stateless HS256 JWTs carrying the subject email plus issued-at
// and expiry claims. Validate collapses every failure mode (malformed token,
// bad signature, wrong algorithm, expiry) into ErrInvalidToken so callers
// cannot tell — and cannot leak — which check failed.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Validate for any token that does not
// verify, regardless of the reason.
var ErrInvalidToken = errors.New("token: invalid token")

// Claims is the claim set embedded in every issued token.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// Config configures the token service.
type Config struct {
	// Secret is the HMAC signing key. Required.
	Secret string

	// TTL is the validity window of issued tokens (default: 7 days).
	TTL time.Duration
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.TTL == 0 {
		c.TTL = 7 * 24 * time.Hour
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("token: secret is required")
	}
	return nil
}

// Service signs and verifies identity tokens with a single process-wide
// secret loaded once at startup.
type Service struct {
	cfg Config
	now func() time.Time
}

// NewService creates a token service. A missing secret is a configuration
// fault and fails here rather than on a per-request path.
func NewService(cfg Config) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{cfg: cfg, now: time.Now}, nil
}

// Issue creates a signed token for the given subject email with
// iat = now and exp = iat + TTL.
func (s *Service) Issue(email string) (string, error) {
	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
		Email: email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("token: sign token: %w", err)
	}
	return signed, nil
}

// Validate verifies the signature and expiry of a raw token string and
// returns its claims. Any failure returns ErrInvalidToken.
func (s *Service) Validate(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// keyFunc is the jwt.Keyfunc used during token parsing.
func (s *Service) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("token: unexpected signing method: %s", t.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}
