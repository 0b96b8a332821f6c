package middleware

import (
	"caviste_server/services"
	"caviste_server/structs"

	"github.com/MonkyMars/gecho"
)

type Middleware struct {
	logger      *gecho.Logger
	cfg         *structs.Config
	authService *services.AuthService
	rateLimits  services.RateLimitStore
}

func NewMiddleware(cfg *structs.Config, logger *gecho.Logger, authService *services.AuthService, rateLimits services.RateLimitStore) *Middleware {
	return &Middleware{
		logger:      logger,
		cfg:         cfg,
		authService: authService,
		rateLimits:  rateLimits,
	}
}
