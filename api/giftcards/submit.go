package giftcards

import (
	"errors"
	"net/http"

	"caviste_server/lib"
	"caviste_server/services"
	"caviste_server/structs"
	"caviste_server/structs/tables"

	"github.com/MonkyMars/gecho"
)

// SubmitHandler accepts a gift card order and records it with the given
// initial status. The storefront and the admin direct sale share it.
func SubmitHandler(logger *gecho.Logger, fulfillment *services.FulfillmentService, status tables.OrderStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := lib.ExtractAndValidateBody[structs.GiftCardOrderRequest](r)
		if err != nil {
			respondRejected(w, err)
			return
		}

		order, err := fulfillment.SubmitGiftCardOrder(r.Context(), body.Cards, body.Buyer(), status)
		if err != nil {
			var verr *lib.ValidationError
			if errors.As(err, &verr) {
				respondRejected(w, verr)
				return
			}

			logger.Error("Gift card order failed",
				gecho.Field("error", err),
				gecho.Field("status", status),
				gecho.Field("cards", len(body.Cards)),
			)
			message := "Une erreur est survenue, merci de réessayer"
			if errors.Is(err, services.ErrPersistence) {
				message = "La commande n'a pas pu être enregistrée, merci de réessayer"
			}
			gecho.InternalServerError(w,
				gecho.WithMessage(message),
				gecho.WithData(structs.OrderResult{Success: false, Message: message}),
				gecho.Send(),
			)
			return
		}

		gecho.Success(w,
			gecho.WithMessage("Commande enregistrée"),
			gecho.WithData(structs.OrderResult{
				Success:     true,
				OrderId:     order.Id.String(),
				OrderNumber: order.OrderNumber,
			}),
			gecho.Send(),
		)
	}
}

type rejectedResult struct {
	structs.OrderResult
	Errors []lib.FieldError `json:"errors,omitempty"`
}

func respondRejected(w http.ResponseWriter, err error) {
	result := rejectedResult{OrderResult: structs.OrderResult{Success: false, Message: err.Error()}}

	var verr *lib.ValidationError
	if errors.As(err, &verr) {
		result.Errors = verr.Errors
	}

	gecho.BadRequest(w,
		gecho.WithMessage(result.Message),
		gecho.WithData(result),
		gecho.Send(),
	)
}
