package api

import (
	"caviste_server/api/admin"
	"caviste_server/api/auth"
	"caviste_server/api/cart"
	"caviste_server/api/content"
	"caviste_server/api/debug"
	"caviste_server/api/giftcards"
	"caviste_server/api/health"
	"caviste_server/api/middleware"
	"caviste_server/api/orders"
	"caviste_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	healthRoutes   *health.HealthRoutesManager
	giftCardRoutes *giftcards.GiftCardRoutesManager
	orderRoutes    *orders.OrderRoutesManager
	cartRoutes     *cart.CartRoutesManager
	contentRoutes  *content.ContentRoutesManager
	authRoutes     *auth.AuthRoutesManager
	adminRoutes    *admin.AdminRoutesManager
	debugRoutes    *debug.DebugRoutesManager
}

func NewRouterManager(logger *gecho.Logger, sm *services.ServiceManager, mw *middleware.Middleware) *routerManager {
	return &routerManager{
		healthRoutes:   health.NewHealthRoutesManager(sm.HealthService),
		giftCardRoutes: giftcards.NewGiftCardRoutesManager(logger, sm.FulfillmentService),
		orderRoutes:    orders.NewOrderRoutesManager(logger, sm.CartService, sm.CheckoutService),
		cartRoutes:     cart.NewCartRoutesManager(logger, sm.CartService),
		contentRoutes:  content.NewContentRoutesManager(logger, sm.ContentService, sm.ShippingService, sm.Renderer),
		authRoutes:     auth.NewAuthRoutesManager(logger, sm.AuthService, mw),
		adminRoutes: admin.NewAdminRoutesManager(
			logger,
			sm.OrderService,
			sm.FulfillmentService,
			sm.ContentService,
			sm.ShippingService,
			mw,
		),
		debugRoutes: debug.NewDebugRoutesManager(logger, sm.CacheService, sm.Renderer),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.healthRoutes.RegisterRoutes(r)
	rm.giftCardRoutes.RegisterRoutes(r)
	rm.orderRoutes.RegisterRoutes(r)
	rm.cartRoutes.RegisterRoutes(r)
	rm.contentRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
	rm.debugRoutes.RegisterRoutes(r)
}
