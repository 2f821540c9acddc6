package jwtauth

import (
	"context"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/ccis-arch/avacc/internal/ports/auth"
)

func TestNewVerifierRequiresSecret(t *testing.T) {
	if _, err := NewVerifier(Config{}); err == nil {
		t.Fatalf("expected missing secret to fail")
	}
}

func TestVerify_RoundTrip(t *testing.T) {
	v, err := NewVerifier(Config{Secret: "s3cret", Issuer: "idp", Audience: "avacc"})
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}

	tok, err := v.Sign(auth.Claims{Subject: "user-a", Name: "Ana Pérez", Email: "ana@example.com"}, time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	c, err := v.Verify(context.Background(), tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if c.Subject != "user-a" || c.Name != "Ana Pérez" || c.Email != "ana@example.com" {
		t.Fatalf("unexpected claims %#v", c)
	}
}

func TestVerify_RejectsWrongSecretAndAudience(t *testing.T) {
	signer, _ := NewVerifier(Config{Secret: "other", Audience: "avacc"})
	v, _ := NewVerifier(Config{Secret: "s3cret", Audience: "avacc"})

	tok, _ := signer.Sign(auth.Claims{Subject: "user-a"}, time.Minute)
	if _, err := v.Verify(context.Background(), tok); err == nil {
		t.Fatalf("expected signature mismatch to fail")
	}

	otherAud, _ := NewVerifier(Config{Secret: "s3cret", Audience: "billing"})
	tok, _ = otherAud.Sign(auth.Claims{Subject: "user-a"}, time.Minute)
	if _, err := v.Verify(context.Background(), tok); err == nil {
		t.Fatalf("expected audience mismatch to fail")
	}
}

func TestVerify_RejectsExpiredAndNoneAlg(t *testing.T) {
	v, _ := NewVerifier(Config{Secret: "s3cret", Leeway: time.Second})

	tok, _ := v.Sign(auth.Claims{Subject: "user-a"}, -time.Hour)
	if _, err := v.Verify(context.Background(), tok); err == nil {
		t.Fatalf("expected expired token to fail")
	}

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-a",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := v.Verify(context.Background(), raw); err == nil {
		t.Fatalf("expected alg none to fail")
	}
}

func TestVerify_RequiresSubject(t *testing.T) {
	v, _ := NewVerifier(Config{Secret: "s3cret"})
	tok, _ := v.Sign(auth.Claims{}, time.Minute)
	if _, err := v.Verify(context.Background(), tok); err != ErrSubjectMissing {
		t.Fatalf("expected ErrSubjectMissing, got %v", err)
	}
	if _, err := v.Verify(context.Background(), "  "); err != ErrTokenEmpty {
		t.Fatalf("expected ErrTokenEmpty, got %v", err)
	}
}
