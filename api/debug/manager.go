package debug

import (
	"caviste_server/config"
	"caviste_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type DebugRoutesManager struct {
	logger       *gecho.Logger
	cacheService *services.CacheService
	renderer     services.GiftCardRenderer
}

func NewDebugRoutesManager(logger *gecho.Logger, cacheService *services.CacheService, renderer services.GiftCardRenderer) *DebugRoutesManager {
	return &DebugRoutesManager{
		logger:       logger,
		cacheService: cacheService,
		renderer:     renderer,
	}
}

func (drm *DebugRoutesManager) RegisterRoutes(r chi.Router) {
	// Debug routes - only in non-production environments
	if !config.IsProduction() {
		drm.register(r)
	}
}

func (drm *DebugRoutesManager) register(r chi.Router) {
	r.Route("/debug", func(r chi.Router) {
		r.Get("/gift-card-preview", drm.PreviewGiftCard)
		r.Post("/cache/clear", drm.ClearCache)
	})
}
