package handling

import (
	"errors"
	"net/http"

	"caviste_server/lib"
	"caviste_server/services"

	"github.com/MonkyMars/gecho"
)

func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))

	return gecho.InternalServerError(w, gecho.WithMessage(msg), gecho.Send())
}

// RespondError replies with the status matching the kind of err. Anything
// unrecognised is logged and answered with a 500 carrying msg.
func RespondError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) error {
	var verr *lib.ValidationError
	switch {
	case errors.As(err, &verr):
		return gecho.BadRequest(w,
			gecho.WithMessage(verr.Error()),
			gecho.WithData(map[string]any{"errors": verr.Errors}),
			gecho.Send(),
		)
	case errors.Is(err, lib.ErrNotFound):
		return gecho.NotFound(w, gecho.WithMessage("Ressource introuvable"), gecho.Send())
	case errors.Is(err, services.ErrInvalidStatusTransition),
		errors.Is(err, services.ErrNotGiftCardLine),
		errors.Is(err, services.ErrUnknownProduct):
		return gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
	case errors.Is(err, lib.ErrConflict):
		return gecho.Conflict(w, gecho.WithMessage("Conflit avec une ressource existante"), gecho.Send())
	case errors.Is(err, lib.ErrTooManyAttempts):
		return gecho.TooManyRequests(w, gecho.WithMessage("Trop de tentatives, réessayez plus tard"), gecho.Send())
	case errors.Is(err, lib.ErrInvalidCredentials):
		return gecho.Unauthorized(w, gecho.WithMessage("Identifiants invalides"), gecho.Send())
	}

	return HandleError(err, msg, logger, w)
}
