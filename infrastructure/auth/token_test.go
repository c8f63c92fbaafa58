package auth

import (
	"testing"
	"time"

	"storefront/config"
	"storefront/domain/shared"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *TokenService {
	t.Helper()
	s, err := NewTokenService(config.AuthConfig{JWTSecret: "test-secret", Issuer: "storefront", TokenTTL: time.Hour})
	require.NoError(t, err)
	return s
}

func TestIssueAndParse(t *testing.T) {
	s := newService(t)

	token, err := s.Issue("alice", shared.RoleAdmin)
	require.NoError(t, err)

	p, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, shared.Principal{UserID: "alice", Role: shared.RoleAdmin}, p)
}

func TestParseRejects(t *testing.T) {
	s := newService(t)
	valid, err := s.Issue("alice", shared.RoleUser)
	require.NoError(t, err)

	other, err := NewTokenService(config.AuthConfig{JWTSecret: "other-secret", Issuer: "storefront"})
	require.NoError(t, err)
	forged, err := other.Issue("alice", shared.RoleAdmin)
	require.NoError(t, err)

	foreign, err := NewTokenService(config.AuthConfig{JWTSecret: "test-secret", Issuer: "someone-else"})
	require.NoError(t, err)
	wrongIssuer, err := foreign.Issue("alice", shared.RoleUser)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Role: "admin", RegisteredClaims: jwt.RegisteredClaims{
		Subject: "alice", Issuer: "storefront", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"tampered":     valid + "x",
		"other secret": forged,
		"wrong issuer": wrongIssuer,
		"alg none":     none,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.Parse(token)
			assert.ErrorIs(t, err, shared.ErrUnauthorized)
		})
	}
}

func TestParseExpired(t *testing.T) {
	s := newService(t)
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := s.Issue("alice", shared.RoleUser)
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Parse(token)
	assert.ErrorIs(t, err, shared.ErrUnauthorized)
}

func TestIssueValidation(t *testing.T) {
	s := newService(t)
	_, err := s.Issue("", shared.RoleUser)
	assert.Error(t, err)
	_, err = s.Issue("alice", shared.Role("root"))
	assert.Error(t, err)

	_, err = NewTokenService(config.AuthConfig{})
	assert.Error(t, err)
}
