// Package auth turns bearer tokens into principals. Login and credential
// storage belong to another service; this package only mints and verifies
// HS256 tokens carrying a user id and a role.
package auth

import (
	"errors"
	"fmt"
	"time"

	"storefront/config"
	"storefront/domain/shared"

	"github.com/golang-jwt/jwt/v5"
)

var errEmptySecret = errors.New("jwt secret is empty")

// Claims registered claims plus the storefront role
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(cfg config.AuthConfig) (*TokenService, error) {
	if cfg.JWTSecret == "" {
		return nil, errEmptySecret
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		issuer: cfg.Issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a token for userID valid for the configured TTL
func (s *TokenService) Issue(userID string, role shared.Role) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role %q", role)
	}
	now := s.now()
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse verifies signature, issuer and expiry. Every failure is ErrUnauthorized.
func (s *TokenService) Parse(token string) (shared.Principal, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return shared.Principal{}, shared.NewUnauthorizedError("token has expired")
		}
		return shared.Principal{}, shared.NewUnauthorizedError("invalid token")
	}

	role := shared.Role(claims.Role)
	if claims.Subject == "" || !role.IsValid() {
		return shared.Principal{}, shared.NewUnauthorizedError("invalid token claims")
	}
	return shared.Principal{UserID: claims.Subject, Role: role}, nil
}
