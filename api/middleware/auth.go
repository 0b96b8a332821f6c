package middleware

import (
	"context"
	"net/http"

	"caviste_server/lib"
	"caviste_server/structs"

	"github.com/MonkyMars/gecho"
)

type contextKey string

const ClaimsContextKey contextKey = "claims"

// AdminAuthMiddleware protects routes to the logged-in admin
func (mw *Middleware) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := lib.GetCookieValue(lib.AccessCookieName, r)
		if err != nil {
			gecho.Unauthorized(w, gecho.WithMessage("Connexion requise"), gecho.Send())
			return
		}

		claims, err := mw.authService.ValidateToken(r.Context(), token)
		if err != nil {
			mw.logger.Warn("Rejected admin token", gecho.Field("error", err), gecho.Field("path", r.URL.Path))
			gecho.Unauthorized(w, gecho.WithMessage("Session invalide ou expirée"), gecho.Send())
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetClaimsFromContext is a helper function to extract the claims from request context
func GetClaimsFromContext(ctx context.Context) (*structs.AuthClaims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*structs.AuthClaims)
	return claims, ok
}
