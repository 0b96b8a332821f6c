package auth

import (
	"net/http"

	"caviste_server/api/middleware"
	"caviste_server/handling"
	"caviste_server/lib"
	"caviste_server/structs"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.LoginRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Identifiant et mot de passe requis"), gecho.Send())
		return
	}

	token, claims, err := arm.authService.Login(r.Context(), body, middleware.ClientIP(r))
	if err != nil {
		handling.RespondError(err, "Connexion impossible", arm.logger, w)
		return
	}

	lib.SetCookie(lib.AccessCookieName, token, claims.Exp, w)

	gecho.Success(w,
		gecho.WithMessage("Connecté"),
		gecho.WithData(map[string]any{
			"username":   claims.Sub,
			"expires_at": claims.Exp,
		}),
		gecho.Send(),
	)
}
