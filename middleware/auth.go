package middleware

import (
	"context"
	"net/http"

	"quickdel/utils"
)

// Key type for context
type contextKey string

const userContextKey = contextKey("user")

// CookieName is the session cookie carrying the JWT.
const CookieName = "token"

// Auth holds the secret used to verify session cookies
type Auth struct {
	Secret []byte
}

// NewAuth creates the authorization guard with the server's signing secret
func NewAuth(secret []byte) *Auth {
	return &Auth{Secret: secret}
}

// Guard verifies the session cookie and attaches the claims to the request
// context. Missing, malformed, tampered, and expired tokens are all rejected
// the same way. Resource ownership is checked by the handlers, not here.
func (a *Auth) Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		claims, err := utils.ParseJWT(a.Secret, cookie.Value)
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, "unauthorized access")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClaimsFrom returns the verified claims attached by Guard
func ClaimsFrom(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(userContextKey).(*utils.Claims)
	return claims, ok
}

// WithClaims attaches claims to a context. Used by handler tests to stand in
// for Guard.
func WithClaims(ctx context.Context, claims *utils.Claims) context.Context {
	return context.WithValue(ctx, userContextKey, claims)
}
