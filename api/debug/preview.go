package debug

import (
	"net/http"
	"strconv"
	"time"

	"caviste_server/documents"
	"caviste_server/handling"
	"caviste_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/shopspring/decimal"
)

const maxPreviewCards = 10

// PreviewGiftCard renders sample cards without touching the database.
func (drm *DebugRoutesManager) PreviewGiftCard(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	recipient := query.Get("recipient")
	if recipient == "" {
		recipient = "Jean Dupont"
	}

	amount := decimal.NewFromInt(50)
	if raw := query.Get("amount"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil || !parsed.IsPositive() {
			gecho.BadRequest(w, gecho.WithMessage("amount must be a positive number"), gecho.Send())
			return
		}
		amount = parsed.Round(2)
	}

	quantity := 1
	if raw := query.Get("quantity"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPreviewCards {
			gecho.BadRequest(w, gecho.WithMessage("quantity must be between 1 and 10"), gecho.Send())
			return
		}
		quantity = n
	}

	now := time.Now()
	codes := make([]string, quantity)
	for i := range codes {
		codes[i] = lib.GenerateCardIdAt(recipient, amount, now)
	}

	doc, err := drm.renderer.RenderGiftCard(r.Context(), documents.GiftCardDocument{
		Recipient: recipient,
		Amount:    amount,
		Codes:     codes,
		IssuedAt:  now,
	})
	if err != nil {
		handling.HandleError(err, "Preview rendering failed", drm.logger, w)
		return
	}

	if err := handling.WriteDocument(w, doc); err != nil {
		drm.logger.Warn("Preview download interrupted", gecho.Field("error", err))
	}
}
