package cart

import (
	"caviste_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CartRoutesManager struct {
	logger      *gecho.Logger
	cartService *services.CartService
}

func NewCartRoutesManager(logger *gecho.Logger, cartService *services.CartService) *CartRoutesManager {
	return &CartRoutesManager{
		logger:      logger,
		cartService: cartService,
	}
}

func (crm *CartRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/cart", func(r chi.Router) {
		r.Get("/", crm.GetCart)
		r.Delete("/", crm.ClearCart)
		r.Post("/items", crm.AddItem)
		r.Delete("/items/{productId}", crm.RemoveItem)
	})
}
