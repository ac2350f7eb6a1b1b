// Package jwt emite y verifica los tokens de acceso locales (HS256).
package jwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"adote-facil/internal/ports/auth"

	gojwt "github.com/golang-jwt/jwt/v5"
)

type claims struct {
	Email string `json:"email,omitempty"`
	gojwt.RegisteredClaims
}

// Manager implementa auth.TokenIssuer y auth.AuthVerifier con el mismo secreto.
type Manager struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewManager(secret string, ttl time.Duration, issuer string) (*Manager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt: empty secret")
	}
	if ttl <= 0 {
		return nil, errors.New("jwt: ttl must be positive")
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}, nil
}

func (m *Manager) Issue(userID, email string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("jwt: empty user id")
	}
	now := m.now()
	c := claims{
		Email: email,
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    m.issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, c)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: sign: %w", err)
	}
	return signed, nil
}

func (m *Manager) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	var c claims
	parsed, err := gojwt.ParseWithClaims(token, &c, func(t *gojwt.Token) (any, error) {
		return m.secret, nil
	},
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithTimeFunc(m.now),
		gojwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}
	if strings.TrimSpace(c.Subject) == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	return auth.Claims{UserID: c.Subject, Email: c.Email}, nil
}
