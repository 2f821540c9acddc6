// Package jwtauth verifica session tokens HS256 emitidos por el proveedor de identidad.
package jwtauth

import (
	"context"
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/ccis-arch/avacc/internal/ports/auth"
)

const defaultLeeway = 30 * time.Second

var (
	ErrSecretRequired = errors.New("jwt secret is required")
	ErrTokenEmpty     = errors.New("token is empty")
	ErrSubjectMissing = errors.New("token subject missing")
)

type Config struct {
	Secret   string
	Issuer   string // opcional
	Audience string // opcional
	Leeway   time.Duration
}

// SessionClaims: registered claims + perfil mínimo del usuario.
type SessionClaims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Verifier implementa auth.AuthVerifier.
type Verifier struct {
	secret   []byte
	issuer   string
	audience string
	leeway   time.Duration
}

func NewVerifier(cfg Config) (*Verifier, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, ErrSecretRequired
	}
	leeway := cfg.Leeway
	if leeway <= 0 {
		leeway = defaultLeeway
	}
	return &Verifier{
		secret:   []byte(secret),
		issuer:   strings.TrimSpace(cfg.Issuer),
		audience: strings.TrimSpace(cfg.Audience),
		leeway:   leeway,
	}, nil
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(v.leeway),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		if err == nil {
			err = errors.New("invalid token")
		}
		return auth.Claims{}, err
	}

	sub := strings.TrimSpace(claims.Subject)
	if sub == "" {
		return auth.Claims{}, ErrSubjectMissing
	}
	return auth.Claims{
		Subject: sub,
		Name:    strings.TrimSpace(claims.Name),
		Email:   strings.TrimSpace(claims.Email),
	}, nil
}

// Sign emite un token con el mismo formato que acepta Verify (tooling y tests).
func (v *Verifier) Sign(c auth.Claims, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	rc := jwt.RegisteredClaims{
		Subject:   c.Subject,
		Issuer:    v.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	if v.audience != "" {
		rc.Audience = jwt.ClaimStrings{v.audience}
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		Name:             c.Name,
		Email:            c.Email,
		RegisteredClaims: rc,
	})
	return t.SignedString(v.secret)
}
