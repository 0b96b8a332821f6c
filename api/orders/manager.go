package orders

import (
	"caviste_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type OrderRoutesManager struct {
	logger          *gecho.Logger
	cartService     *services.CartService
	checkoutService *services.CheckoutService
}

func NewOrderRoutesManager(logger *gecho.Logger, cartService *services.CartService, checkoutService *services.CheckoutService) *OrderRoutesManager {
	return &OrderRoutesManager{
		logger:          logger,
		cartService:     cartService,
		checkoutService: checkoutService,
	}
}

func (orm *OrderRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/checkout", orm.Checkout)
	})
}
