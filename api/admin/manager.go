package admin

import (
	"caviste_server/api/giftcards"
	"caviste_server/api/middleware"
	"caviste_server/services"
	"caviste_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AdminRoutesManager struct {
	logger             *gecho.Logger
	orderService       *services.OrderService
	fulfillmentService *services.FulfillmentService
	contentService     *services.ContentService
	shippingService    *services.ShippingService
	mw                 *middleware.Middleware
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	orderService *services.OrderService,
	fulfillmentService *services.FulfillmentService,
	contentService *services.ContentService,
	shippingService *services.ShippingService,
	mw *middleware.Middleware,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger:             logger,
		orderService:       orderService,
		fulfillmentService: fulfillmentService,
		contentService:     contentService,
		shippingService:    shippingService,
		mw:                 mw,
	}
}

func (ar *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(ar.mw.AdminAuthMiddleware)

		r.Get("/orders", ar.ListOrders)
		r.Get("/orders/{id}", ar.GetOrderDetails)
		r.Get("/orders/{id}/lines/{lineId}/pdf", ar.DownloadGiftCard)

		// Protected routes behind CSRF
		r.Group(func(r chi.Router) {
			r.Use(ar.mw.CSRFMiddleware())

			// direct sale at the counter, already paid
			r.Post("/gift-cards", giftcards.SubmitHandler(ar.logger, ar.fulfillmentService, tables.OrderStatusPaid))

			r.Put("/orders/{id}/status", ar.UpdateOrderStatus)
			r.Post("/orders/{id}/lines/{lineId}/send", ar.SendGiftCard)

			r.Put("/content/{key}", ar.UpdateContent)
			r.Put("/shipping/tiers", ar.ReplaceShippingTiers)
		})
	})
}
