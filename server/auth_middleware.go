package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/lms-mobile-gateway/auth"
	"github.com/jrsteele09/lms-mobile-gateway/token"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyClaims stores the validated access token claims
	ContextKeyClaims ContextKey = "claims"
)

const bearerChallenge = "Bearer"

// RequireAuth is middleware that validates a Bearer access token
// Every failure is answered with the same 401 and a Bearer challenge.
func (s *Server) RequireAuth() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, _ := auth.BearerToken(r.Header.Get("Authorization"))

			claims, err := s.services.Authenticator.Authenticate(raw)
			if err != nil {
				hlog.FromRequest(r).Debug().Err(err).Msg("request not authenticated")
				w.Header().Set("WWW-Authenticate", bearerChallenge)
				writeJSONError(w, codeUnauthorized, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Int64("user_id", claims.ID)
			})
			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the claims stored by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(ContextKeyClaims).(*token.Claims)
	return claims, ok && claims != nil
}
