package content

import (
	"net/http"
	"time"

	"caviste_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

func (crm *ContentRoutesManager) GetContent(w http.ResponseWriter, r *http.Request) {
	doc, err := crm.contentService.Get(r.Context(), chi.URLParam(r, "key"))
	if err != nil {
		handling.RespondError(err, "Le contenu n'a pas pu être chargé", crm.logger, w)
		return
	}
	gecho.Success(w, gecho.WithData(doc), gecho.Send())
}

// GetVintnerFlyer renders the printable list of upcoming vintner meetings.
func (crm *ContentRoutesManager) GetVintnerFlyer(w http.ResponseWriter, r *http.Request) {
	meetings, err := crm.contentService.VintnerMeetings(r.Context())
	if err != nil {
		handling.RespondError(err, "Le contenu n'a pas pu être chargé", crm.logger, w)
		return
	}

	doc, err := crm.flyers.RenderVintnerFlyer(r.Context(), *meetings, time.Now())
	if err != nil {
		handling.HandleError(err, "Le document n'a pas pu être généré", crm.logger, w)
		return
	}

	if err := handling.WriteDocument(w, doc); err != nil {
		crm.logger.Warn("Flyer download interrupted", gecho.Field("error", err))
	}
}

func (crm *ContentRoutesManager) GetShippingTiers(w http.ResponseWriter, r *http.Request) {
	tiers, err := crm.shippingService.Tiers(r.Context())
	if err != nil {
		handling.HandleError(err, "Les frais de port n'ont pas pu être chargés", crm.logger, w)
		return
	}
	gecho.Success(w, gecho.WithData(tiers), gecho.Send())
}
