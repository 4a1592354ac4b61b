package token

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type AccessTokenClaims struct {
	jwt.RegisteredClaims

	// The auth frontend puts the account email in a custom claim; fall back to
	// the subject when it is absent.
	Email string `json:"email,omitempty"`
}

type VerifiedCaller struct {
	Email     string
	ExpiresAt time.Time
}

// VerifyAccessToken verifies an HS256 access token using the shared auth secret.
// It returns the caller email after validation; capability (role) is resolved from
// the users store by the middleware, never from the token.
func VerifyAccessToken(tokenString string, secret string, audience string, now time.Time) (*VerifiedCaller, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("missing token")
	}
	if secret == "" {
		return nil, fmt.Errorf("missing auth secret")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	claims := &AccessTokenClaims{}
	tok, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	// Time validation
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(now) {
		return nil, fmt.Errorf("token expired")
	}
	if claims.NotBefore != nil && claims.NotBefore.Time.After(now) {
		return nil, fmt.Errorf("token not active yet")
	}

	// Audience validation (optional)
	if audience != "" {
		if !audContains([]string(claims.RegisteredClaims.Audience), audience) {
			return nil, fmt.Errorf("audience mismatch")
		}
	}

	email := strings.TrimSpace(claims.Email)
	if email == "" {
		email = strings.TrimSpace(claims.Subject)
	}
	if email == "" {
		return nil, fmt.Errorf("missing email in token")
	}

	return &VerifiedCaller{
		Email:     strings.ToLower(email),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func audContains(aud []string, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}
