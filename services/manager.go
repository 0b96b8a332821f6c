package services

import (
	"caviste_server/database"
	"caviste_server/documents"
	"caviste_server/repository"
	"caviste_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

type ServiceManager struct {
	AuthService        *AuthService
	EmailService       *EmailService
	CacheService       *CacheService
	HealthService      *HealthService
	ContentService     *ContentService
	ShippingService    *ShippingService
	CartService        *CartService
	CheckoutService    *CheckoutService
	OrderService       *OrderService
	FulfillmentService *FulfillmentService
	RateLimitStore     RateLimitStore
	Renderer           *documents.Renderer
}

// NewServiceManager wires every service. redisClient may be nil, in which case
// caching is off and rate limits are counted in process.
func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB, redisClient *redis.Client, sessionStore sessions.Store) *ServiceManager {
	orderRepo := repository.NewOrderRepository(db.DB)
	contentRepo := repository.NewContentRepository(db.DB)
	shippingRepo := repository.NewShippingRepository(db.DB)

	cacheService := NewCacheService(logger, redisClient)

	var rateLimitStore RateLimitStore = NewMemoryRateLimitStore()
	if redisClient != nil {
		rateLimitStore = NewRedisRateLimitStore(redisClient)
	}

	renderer := documents.NewRenderer(cfg.Shop, documents.NewAssetLoader(cfg.Shop.AssetsDir, nil), logger)

	emailService := NewEmailService(logger, cfg, NewResendMailer(cfg.Email.ApiKey))
	contentService := NewContentService(logger, contentRepo, cacheService)
	shippingService := NewShippingService(logger, shippingRepo, cacheService)

	return &ServiceManager{
		AuthService:        NewAuthService(logger, cfg, rateLimitStore, cacheService),
		EmailService:       emailService,
		CacheService:       cacheService,
		HealthService:      NewHealthService(logger, db, cacheService),
		ContentService:     contentService,
		ShippingService:    shippingService,
		CartService:        NewCartService(logger, sessionStore, contentService),
		CheckoutService:    NewCheckoutService(logger, orderRepo, shippingService, emailService),
		OrderService:       NewOrderService(logger, orderRepo, renderer, emailService),
		FulfillmentService: NewFulfillmentService(logger, cfg, orderRepo, renderer, emailService),
		RateLimitStore:     rateLimitStore,
		Renderer:           renderer,
	}
}
