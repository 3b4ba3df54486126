package middleware

import (
	"context"
	"net/http"
	"os"
	"strings"

	"go-greencart/utils"
)

// Key type for context
type contextKey string

const UserContextKey = contextKey("user")

// tokenFromRequest reads the session token from the named cookie, falling
// back to an Authorization bearer header for non-browser clients.
func tokenFromRequest(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// AuthUser verifies the user's JWT and attaches its claims to the request
// context.
func AuthUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := tokenFromRequest(r, "token")
		if tokenStr == "" {
			utils.Fail(w, http.StatusUnauthorized, "Not Authorized: No token")
			return
		}

		claims, err := utils.ParseToken(tokenStr)
		if err != nil || claims.UserID == "" {
			utils.Fail(w, http.StatusUnauthorized, "Not Authorized")
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AuthSeller verifies the seller's JWT against the configured seller
// account.
func AuthSeller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := tokenFromRequest(r, "sellerToken")
		if tokenStr == "" {
			utils.Fail(w, http.StatusUnauthorized, "Not Authorized: No token")
			return
		}

		claims, err := utils.ParseToken(tokenStr)
		if err != nil || claims.Role != utils.RoleSeller || claims.Email != os.Getenv("SELLER_EMAIL") {
			utils.Fail(w, http.StatusUnauthorized, "Not Authorized")
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
