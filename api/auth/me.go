package auth

import (
	"net/http"

	"caviste_server/api/middleware"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaimsFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"username":   claims.Sub,
			"role":       claims.Role,
			"expires_at": claims.Exp,
		}),
		gecho.Send(),
	)
}
