package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/riskibarqy/kickstats/internal/usecase"
)

func TestJWTVerifier_AcceptsValidToken(t *testing.T) {
	t.Parallel()

	verifier := NewJWTVerifier("secret-1")
	token, err := verifier.Sign(Claims{
		ID:    "player-maya",
		Email: "maya@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	principal, err := verifier.VerifyAccessToken(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if principal.UserID != "player-maya" || principal.Email != "maya@example.com" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestJWTVerifier_FallsBackToSubject(t *testing.T) {
	t.Parallel()

	verifier := NewJWTVerifier("secret-1")
	token, err := verifier.Sign(Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "player-leo"}})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	principal, err := verifier.VerifyAccessToken(context.Background(), token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if principal.UserID != "player-leo" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestJWTVerifier_Rejects(t *testing.T) {
	t.Parallel()

	verifier := NewJWTVerifier("secret-1")

	wrongSecret, err := NewJWTVerifier("secret-2").Sign(Claims{ID: "player-maya"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	expired, err := verifier.Sign(Claims{
		ID: "player-maya",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	noSubject, err := verifier.Sign(Claims{Email: "anon@example.com"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{ID: "player-maya"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	cases := map[string]string{
		"empty":        "  ",
		"garbage":      "not-a-jwt",
		"wrong secret": wrongSecret,
		"expired":      expired,
		"no subject":   noSubject,
		"alg none":     unsigned,
	}
	for name, token := range cases {
		name, token := name, token
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := verifier.VerifyAccessToken(context.Background(), token)
			if !errors.Is(err, usecase.ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestJWTVerifier_MissingSecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTVerifier("").VerifyAccessToken(context.Background(), "a.b.c")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
