package admin

import (
	"net/http"

	"caviste_server/handling"
	"caviste_server/lib"
	"caviste_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

func lineParams(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	orderId, err := handling.ParseUUIDParam(r, "id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	lineId, err := handling.ParseUUIDParam(r, "lineId")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return orderId, lineId, nil
}

// SendGiftCard emails a stored gift card line again, to any address.
func (ar *AdminRoutesManager) SendGiftCard(w http.ResponseWriter, r *http.Request) {
	orderId, lineId, err := lineParams(r)
	if err != nil {
		handling.RespondError(err, "Invalid order line", ar.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.SendGiftCardRequest](r)
	if err != nil {
		handling.RespondError(err, "Invalid recipient", ar.logger, w)
		return
	}

	if err := ar.orderService.SendGiftCardLine(r.Context(), orderId, lineId, body.Email); err != nil {
		handling.RespondError(err, "La carte cadeau n'a pas pu être envoyée", ar.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Carte cadeau envoyée"), gecho.Send())
}

func (ar *AdminRoutesManager) DownloadGiftCard(w http.ResponseWriter, r *http.Request) {
	orderId, lineId, err := lineParams(r)
	if err != nil {
		handling.RespondError(err, "Invalid order line", ar.logger, w)
		return
	}

	doc, err := ar.orderService.RenderGiftCardLine(r.Context(), orderId, lineId)
	if err != nil {
		handling.RespondError(err, "La carte cadeau n'a pas pu être générée", ar.logger, w)
		return
	}

	if err := handling.WriteDocument(w, doc); err != nil {
		ar.logger.Warn("Gift card download interrupted", gecho.Field("error", err))
	}
}
