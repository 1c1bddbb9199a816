package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/httputil"
)

type contextKey string

const (
	ownerIDKey contextKey = "ownerId"
	emailKey   contextKey = "email"
)

// JWT creates a chi middleware that validates bearer tokens signed with the
// shared HMAC secret and puts the owner id on the request context.
func JWT(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httputil.Unauthorized(w, "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				httputil.Unauthorized(w, "invalid authorization header format")
				return
			}

			token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				httputil.Unauthorized(w, "invalid token")
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				httputil.Unauthorized(w, "invalid token claims")
				return
			}
			ownerID, ok := claims["userId"].(string)
			if !ok || ownerID == "" {
				httputil.Unauthorized(w, "invalid token claims")
				return
			}

			ctx := context.WithValue(r.Context(), ownerIDKey, ownerID)
			if email, ok := claims["email"].(string); ok {
				ctx = context.WithValue(ctx, emailKey, email)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OwnerID returns the authenticated owner id, or "" outside the JWT
// middleware.
func OwnerID(ctx context.Context) string {
	id, _ := ctx.Value(ownerIDKey).(string)
	return id
}

// Email returns the authenticated email claim, if present.
func Email(ctx context.Context) string {
	email, _ := ctx.Value(emailKey).(string)
	return email
}
