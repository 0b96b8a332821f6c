package auth

import (
	"net/http"

	"caviste_server/lib"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	token, err := lib.GetCookieValue(lib.AccessCookieName, r)
	// The cookie goes regardless of what follows
	lib.ClearCookie(lib.AccessCookieName, w)
	if err != nil {
		gecho.Success(w, gecho.WithMessage("Déjà déconnecté"), gecho.Send())
		return
	}

	claims, err := arm.authService.ValidateToken(r.Context(), token)
	if err != nil {
		gecho.Success(w, gecho.WithMessage("Déjà déconnecté"), gecho.Send())
		return
	}

	if err := arm.authService.Logout(r.Context(), claims); err != nil {
		arm.logger.Error("Failed to revoke access token during logout", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Déconnexion impossible"), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithMessage("Déconnecté"), gecho.Send())
}
