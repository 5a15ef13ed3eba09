package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the lifetime of an access token when none is configured.
const DefaultTokenTTL = 24 * time.Hour

var (
	ErrMissingSecret  = errors.New("jwt secret is required")
	ErrMissingSubject = errors.New("token subject is required")
	ErrInvalidToken   = errors.New("invalid token")
)

// JWTAuthenticator issues and validates HS256 access tokens whose subject is a customer id.
type JWTAuthenticator struct {
	secret   []byte
	audience string
	issuer   string
	ttl      time.Duration
	now      func() time.Time
}

// Option configures a JWTAuthenticator.
type Option func(*JWTAuthenticator)

// WithClock replaces the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(a *JWTAuthenticator) {
		a.now = now
	}
}

// WithTTL overrides DefaultTokenTTL.
func WithTTL(ttl time.Duration) Option {
	return func(a *JWTAuthenticator) {
		if ttl > 0 {
			a.ttl = ttl
		}
	}
}

// NewJWTAuthenticator creates a new JWTAuthenticator instance.
func NewJWTAuthenticator(secret, audience, issuer string, opts ...Option) (*JWTAuthenticator, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	a := &JWTAuthenticator{
		secret:   []byte(secret),
		audience: audience,
		issuer:   issuer,
		ttl:      DefaultTokenTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// IssueToken generates a signed token for the given subject that expires after the configured TTL.
func (a *JWTAuthenticator) IssueToken(subject string) (string, error) {
	if subject == "" {
		return "", ErrMissingSubject
	}

	now := a.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    a.issuer,
		Audience:  jwt.ClaimStrings{a.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenStr, err := token.SignedString(a.secret)
	if err != nil {
		return "", err
	}

	return tokenStr, nil
}

// VerifyToken validates signature, expiry, issuer and audience and returns the parsed claims.
func (a *JWTAuthenticator) VerifyToken(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return a.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithAudience(a.audience),
		jwt.WithIssuer(a.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, err
	}

	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
