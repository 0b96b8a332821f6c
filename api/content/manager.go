package content

import (
	"context"
	"time"

	"caviste_server/documents"
	"caviste_server/services"
	"caviste_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type FlyerRenderer interface {
	RenderVintnerFlyer(ctx context.Context, content structs.VintnerMeetingsContent, today time.Time) (*documents.RenderedDocument, error)
}

type ContentRoutesManager struct {
	logger          *gecho.Logger
	contentService  *services.ContentService
	shippingService *services.ShippingService
	flyers          FlyerRenderer
}

func NewContentRoutesManager(logger *gecho.Logger, contentService *services.ContentService, shippingService *services.ShippingService, flyers FlyerRenderer) *ContentRoutesManager {
	return &ContentRoutesManager{
		logger:          logger,
		contentService:  contentService,
		shippingService: shippingService,
		flyers:          flyers,
	}
}

func (crm *ContentRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/content/"+structs.ContentKeyVintnerMeetings+"/pdf", crm.GetVintnerFlyer)
	r.Get("/content/{key}", crm.GetContent)
	r.Get("/shipping/tiers", crm.GetShippingTiers)
}
