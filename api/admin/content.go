package admin

import (
	"encoding/json"
	"io"
	"net/http"

	"caviste_server/handling"
	"caviste_server/lib"
	"caviste_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

func (ar *AdminRoutesManager) UpdateContent(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		handling.RespondError(lib.NewValidationError("body", "Corps de requête illisible"), "Invalid content", ar.logger, w)
		return
	}

	key := chi.URLParam(r, "key")
	if err := ar.contentService.Set(r.Context(), key, json.RawMessage(raw)); err != nil {
		handling.RespondError(err, "Le contenu n'a pas pu être enregistré", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Contenu enregistré"),
		gecho.WithData(map[string]string{"key": key}),
		gecho.Send(),
	)
}

func (ar *AdminRoutesManager) ReplaceShippingTiers(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.ShippingTiersRequest](r)
	if err != nil {
		handling.RespondError(err, "Invalid shipping tiers", ar.logger, w)
		return
	}

	tiers, err := ar.shippingService.Replace(r.Context(), body.Tiers)
	if err != nil {
		handling.RespondError(err, "Les frais de port n'ont pas pu être enregistrés", ar.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Frais de port enregistrés"),
		gecho.WithData(tiers),
		gecho.Send(),
	)
}
