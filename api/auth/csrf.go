package auth

import (
	"net/http"
	"time"

	"caviste_server/lib"

	"github.com/MonkyMars/gecho"
)

// HandleCSRF generates and sets a CSRF token
func (arm *AuthRoutesManager) HandleCSRF(w http.ResponseWriter, r *http.Request) {
	token, err := lib.GenerateCSRFToken()
	if err != nil {
		arm.logger.Error("Failed to generate CSRF token", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("Jeton CSRF indisponible"),
			gecho.Send(),
		)
		return
	}

	// Set CSRF cookie with 24 hour expiration
	lib.SetCSRFCookie(token, time.Now().Add(24*time.Hour), w)

	// Return the token in the response as well
	gecho.Success(w,
		gecho.WithData(map[string]string{
			"csrf_token": token,
		}),
		gecho.Send(),
	)
}
