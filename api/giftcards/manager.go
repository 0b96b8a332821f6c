package giftcards

import (
	"caviste_server/services"
	"caviste_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type GiftCardRoutesManager struct {
	logger             *gecho.Logger
	fulfillmentService *services.FulfillmentService
}

func NewGiftCardRoutesManager(logger *gecho.Logger, fulfillmentService *services.FulfillmentService) *GiftCardRoutesManager {
	return &GiftCardRoutesManager{
		logger:             logger,
		fulfillmentService: fulfillmentService,
	}
}

func (grm *GiftCardRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/gift-cards", func(r chi.Router) {
		// storefront orders wait for payment in store or by transfer
		r.Post("/orders", SubmitHandler(grm.logger, grm.fulfillmentService, tables.OrderStatusPending))
	})
}
