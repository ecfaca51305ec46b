// Package middleware provides HTTP middleware for the Cubby API.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cubbyhole/cubby/internal/logger"
	"github.com/cubbyhole/cubby/pkg/api/auth"
)

// Context key type for storing claims
type contextKey string

const claimsContextKey contextKey = "claims"

// GetClaimsFromContext retrieves JWT claims from the request context.
// Returns nil if no claims are present.
//
// This function should only be called within handler code that runs after
// the JWTAuth middleware has processed the request.
func GetClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// WithClaims returns a context carrying the given claims. Exported for
// handler tests that bypass the middleware.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// extractBearerToken extracts the token from a Bearer Authorization header.
// Returns the token string and true if successful, or empty string and false if not.
func extractBearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	return parts[1], true
}

// JWTAuth is a middleware that validates Bearer tokens in the Authorization header.
// If valid, the claims are stored in the request context.
// If invalid or missing, returns 401 Unauthorized.
func JWTAuth(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := extractBearerToken(r)
			if !ok {
				unauthorizedProblem(w, "Authorization header required")
				return
			}

			claims, err := jwtService.ValidateAccessToken(tokenString)
			if err != nil {
				unauthorizedProblem(w, "Invalid or expired token")
				return
			}

			ctx := WithClaims(r.Context(), claims)

			// Stamp the authenticated owner on the request's log context.
			if lc := logger.FromContext(ctx); lc != nil {
				lc.Owner = claims.Username
			} else {
				ctx = logger.WithContext(ctx, &logger.LogContext{Owner: claims.Username})
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// unauthorizedProblem writes a 401 RFC 7807 response. Duplicated from the
// handlers package to avoid an import cycle.
func unauthorizedProblem(w http.ResponseWriter, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"type":"about:blank","title":"Unauthorized","status":401,"detail":"` + detail + `"}`))
}
