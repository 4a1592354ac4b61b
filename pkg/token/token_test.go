package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func sign(t *testing.T, claims AccessTokenClaims, secret string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestVerifyAccessToken_EmailClaim(t *testing.T) {
	secret := "test_secret"
	now := time.Unix(1700000000, 0)

	s := sign(t, AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  []string{"styledecor"},
			ExpiresAt: jwt.NewNumericDate(now.Add(10 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now.Add(-1 * time.Minute)),
		},
		Email: "Customer@Example.com",
	}, secret)

	got, err := VerifyAccessToken(s, secret, "styledecor", now)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.Email != "customer@example.com" {
		t.Fatalf("email mismatch: %q", got.Email)
	}
}

func TestVerifyAccessToken_SubjectFallback(t *testing.T) {
	secret := "test_secret"
	now := time.Unix(1700000000, 0)

	s := sign(t, AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "decorator@example.com",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
	}, secret)

	got, err := VerifyAccessToken(s, secret, "", now)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.Email != "decorator@example.com" {
		t.Fatalf("email mismatch: %q", got.Email)
	}
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	secret := "test_secret"
	now := time.Unix(1700000000, 0)

	s := sign(t, AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		},
		Email: "customer@example.com",
	}, secret)

	if _, err := VerifyAccessToken(s, secret, "", now); err == nil {
		t.Fatalf("expected expired token error")
	}
}

func TestVerifyAccessToken_AudienceMismatch(t *testing.T) {
	secret := "test_secret"
	now := time.Unix(1700000000, 0)

	s := sign(t, AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  []string{"other-app"},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
		Email: "customer@example.com",
	}, secret)

	if _, err := VerifyAccessToken(s, secret, "styledecor", now); err == nil {
		t.Fatalf("expected audience mismatch error")
	}
}

func TestVerifyAccessToken_WrongSecret(t *testing.T) {
	now := time.Unix(1700000000, 0)

	s := sign(t, AccessTokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
		},
		Email: "customer@example.com",
	}, "secret_a")

	if _, err := VerifyAccessToken(s, "secret_b", "", now); err == nil {
		t.Fatalf("expected signature error")
	}
}
