package middleware

import (
	"errors"
	"net/http"

	"github.com/pkordes/trip-planner/internal/auth"
)

// TokenVerifier turns a raw session token into an identity.
// auth.SessionManager satisfies it.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// RequireSession returns a middleware that admits only requests carrying a
// valid session token, from the cookie or a bearer header. The verified
// identity is stored in the request context for auth.IdentityFromContext.
// Anything else is answered with 401 and never reaches next.
func RequireSession(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := v.Verify(auth.TokenFromRequest(r))
			if err != nil {
				msg := "invalid or expired authentication token"
				if errors.Is(err, auth.ErrTokenMissing) {
					msg = "authentication token missing"
				}
				writeError(w, http.StatusUnauthorized, "unauthorized", msg)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}
