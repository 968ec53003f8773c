package middlewares

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"

	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/auth"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/contextkeys"
	"github.com/JoelWilliams95/Track-in-Train-hr-sub001/internal/identity"
)

// RequireUserAuth validates the bearer token and injects UserClaims into
// the request context.
func RequireUserAuth(pubKey *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := extractBearerToken(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}
			claims, err := auth.ParseUserToken(tokenStr, pubKey)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			if claims.UserID == "" {
				http.Error(w, "missing essential claims", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), contextkeys.UserClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles rejects requests unless the authenticated user's role is in
// allowedRoles. Role names are compared in canonical form, so the legacy
// "Super Admin" spelling satisfies a "SuperAdmin" requirement.
func RequireRoles(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaimsFromContext(r.Context())
			if claims == nil {
				http.Error(w, "unauthorized: no claims", http.StatusUnauthorized)
				return
			}
			role := identity.Canonical(claims.Role)
			for _, allowed := range allowedRoles {
				if role == identity.Canonical(allowed) {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "forbidden: insufficient role", http.StatusForbidden)
		})
	}
}

// GetClaimsFromContext retrieves the UserClaims from the request context.
func GetClaimsFromContext(ctx context.Context) *auth.UserClaims {
	if v := ctx.Value(contextkeys.UserClaimsKey); v != nil {
		if ac, ok := v.(*auth.UserClaims); ok {
			return ac
		}
	}
	return nil
}

func extractBearerToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if h == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("malformed authorization header")
	}
	return parts[1], nil
}
