package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"styledecor/pkg/config"
	"styledecor/pkg/token"
)

// CallerSource resolves a verified email to an authenticated caller.
// The users repository implements it.
type CallerSource interface {
	FindCaller(ctx context.Context, email string) (*Caller, error)
}

// AuthRequired validates the caller's access token and loads the matching user record.
//
// Expected header:
// - Authorization: Bearer <JWT>
//
// The token only proves the email; the capability (role) always comes from the users
// store so a revoked admin loses access without re-issuing tokens.
//
// In dev, if Authorization is missing, it can fall back to X-User-Email to keep local
// testing simple.
func AuthRequired(cfg config.Config, users CallerSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := strings.TrimSpace(r.Header.Get("Authorization"))
			if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
				vc, err := token.VerifyAccessToken(strings.TrimSpace(authz[7:]), cfg.Auth.JWTSecret, cfg.Auth.Audience, time.Now())
				if err != nil {
					WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid access token")
					return
				}

				c, err := users.FindCaller(r.Context(), vc.Email)
				if err != nil {
					WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unknown user")
					return
				}

				next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), c)))
				return
			}

			// Dev fallback
			if cfg.AppEnv != "prod" {
				if email := strings.TrimSpace(r.Header.Get("X-User-Email")); email != "" {
					c, err := users.FindCaller(r.Context(), strings.ToLower(email))
					if err != nil {
						WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unknown user")
						return
					}
					next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), c)))
					return
				}
			}

			WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing access token")
		})
	}
}

// RequireRole gates a route group on the caller's capability. It must run after
// AuthRequired.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := CallerFromContext(r.Context())
			if c == nil {
				WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing caller identity")
				return
			}
			if c.Role != role {
				WriteError(w, http.StatusForbidden, "FORBIDDEN", "insufficient capability")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
