// Package auth issues and verifies the bearer tokens operators use on the
// admin API.
package auth

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"printpay/config"
)

// ScopeAll grants every admin scope.
const ScopeAll = "*"

var ErrInvalidToken = errors.New("invalid token")

// Claims carry the operator id in the standard subject claim.
type Claims struct {
	Role   string   `json:"role"`
	Scopes []string `json:"scp,omitempty"`
	jwt.RegisteredClaims
}

// Allows reports whether the token grants scope.
func (c *Claims) Allows(scope string) bool {
	return slices.Contains(c.Scopes, ScopeAll) || slices.Contains(c.Scopes, scope)
}

// Signer issues and verifies HS256 tokens for a single issuer.
type Signer struct {
	key    []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(cfg *config.JWTConfig) *Signer {
	return &Signer{
		key:    []byte(cfg.AccessSecret),
		issuer: cfg.Issuer,
		ttl:    cfg.AccessExpiry,
		now:    time.Now,
	}
}

// Issue signs a token for subject. A token without scopes authenticates but
// opens no admin route.
func (s *Signer) Issue(subject, role string, scopes ...string) (string, error) {
	if subject == "" {
		return "", errors.New("auth: empty subject")
	}
	now := s.now()
	claims := Claims{
		Role:   role,
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Verify checks signature, algorithm, issuer and expiry.
func (s *Signer) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (interface{}, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}
