package middleware

import (
	"context"
	"net/http"
	"strings"

	"food-delivery/models"
	"food-delivery/services"
	"food-delivery/utils"
)

// Key type for context
type contextKey string

const UserContextKey = contextKey("user")

// AuthMiddleware verifies JWT tokens and attaches the claims to the context
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, "authorization header missing")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorized(w, "invalid authorization header format")
			return
		}

		claims, err := utils.ParseJWT(strings.TrimSpace(parts[1]))
		if err != nil {
			unauthorized(w, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects authenticated callers whose token was issued for another role.
// It must run after AuthMiddleware.
func RequireRole(role models.Actor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFrom(r)
			if !ok {
				unauthorized(w, "not logged in")
				return
			}
			if claims.Role != role {
				utils.WriteJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden: " + string(role) + "s only"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func ClaimsFrom(r *http.Request) (*utils.Claims, bool) {
	claims, ok := r.Context().Value(UserContextKey).(*utils.Claims)
	return claims, ok && claims != nil
}

// Identity resolves the caller. A missing or malformed token yields the zero Identity,
// which every service rejects as unauthenticated.
func Identity(r *http.Request) services.Identity {
	claims, ok := ClaimsFrom(r)
	if !ok {
		return services.Identity{}
	}
	id, err := claims.AccountID()
	if err != nil {
		return services.Identity{}
	}
	return services.Identity{ID: id, Role: claims.Role}
}

func unauthorized(w http.ResponseWriter, message string) {
	utils.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": message})
}
