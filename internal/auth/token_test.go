package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printpay/config"
)

func testSigner(issuer string) *Signer {
	return NewSigner(&config.JWTConfig{AccessSecret: "s3cret", AccessExpiry: time.Minute, Issuer: issuer})
}

func TestSigner_RoundTrip(t *testing.T) {
	s := testSigner("printpay")
	raw, err := s.Issue("staff-1", "ADMIN", "payments:read")
	require.NoError(t, err)

	claims, err := s.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", claims.Subject)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.True(t, claims.Allows("payments:read"))
	assert.False(t, claims.Allows("unmatched:read"))
}

func TestClaims_AllowsWildcard(t *testing.T) {
	c := &Claims{Scopes: []string{ScopeAll}}
	assert.True(t, c.Allows("anything"))
	assert.False(t, (&Claims{}).Allows("anything"))
}

func TestSigner_Rejects(t *testing.T) {
	s := testSigner("printpay")

	other, err := testSigner("someone-else").Issue("staff-1", "ADMIN")
	require.NoError(t, err)
	_, err = s.Verify(other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := testSigner("printpay")
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	old, err := expired.Issue("staff-1", "ADMIN")
	require.NoError(t, err)
	_, err = s.Verify(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.Issue("", "ADMIN")
	assert.Error(t, err)
}
