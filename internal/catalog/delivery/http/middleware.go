package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kantodex/pokedex-backend/pkg/auth"
)

type contextKey string

const (
	// UserIDKey holds the authenticated user's stable string identity.
	UserIDKey   contextKey = "user_id"
	UsernameKey contextKey = "username"
)

// AuthMiddleware validates the JWT and requires a user identity.
// Mutating catalog routes use this; the gateway also rejects
// unauthenticated mutations, but the service does not rely on that.
func AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFromRequest(r)
		if !ok {
			respondError(w, http.StatusUnauthorized, "Authorization required")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UsernameKey, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// OptionalAuthMiddleware attaches the identity when a valid token is
// present and lets anonymous requests through untouched. Read routes
// use this so they can degrade to neutral views.
func OptionalAuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := claimsFromRequest(r); ok {
			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, UsernameKey, claims.Username)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	}
}

// UserIDFromContext returns the caller identity, empty when anonymous.
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

func claimsFromRequest(r *http.Request) (*auth.Claims, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}
	claims, err := auth.ValidateToken(parts[1])
	if err != nil || claims.UserID == "" {
		return nil, false
	}
	return claims, true
}

// respondError writes a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
