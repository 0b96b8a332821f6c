package documents

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// GiftCardDocument describes the cards to print for one recipient and amount.
// One page is drawn per code.
type GiftCardDocument struct {
	Recipient string
	Amount    decimal.Decimal
	Codes     []string
	IssuedAt  time.Time
}

const (
	giftCardMargin        = 40.0
	giftCardDisclaimerPt  = 6.5
	giftCardDisclaimerGap = 8.0
)

var filenameUnsafe = regexp.MustCompile(`[^\pL\pN_-]+`)

// GiftCardFilename is CarteCadeau_{amount}EUR_{recipient}.pdf with spaces turned into underscores.
func GiftCardFilename(recipient string, amount decimal.Decimal) string {
	name := filenameUnsafe.ReplaceAllString(strings.Join(strings.Fields(recipient), "_"), "")
	return fmt.Sprintf("CarteCadeau_%sEUR_%s.pdf", amount.String(), name)
}

// FormatAmount renders an amount with two decimals followed by the currency symbol.
func FormatAmount(amount decimal.Decimal, currency string) string {
	return amount.StringFixed(2) + " " + currency
}

// RenderGiftCard draws an A5 landscape document with one page per code.
// A missing logo falls back to the shop name as title.
func (r *Renderer) RenderGiftCard(ctx context.Context, doc GiftCardDocument) (*RenderedDocument, error) {
	if len(doc.Codes) == 0 {
		return nil, errors.New("gift card document needs at least one code")
	}
	if doc.IssuedAt.IsZero() {
		doc.IssuedAt = time.Now()
	}

	c := newCanvas("L", "A5", r.compress)
	c.setMeta("Carte cadeau "+r.shop.Name, doc.IssuedAt)

	logo := r.loadOptional(ctx, r.shop.LogoPath, "gift card logo")

	for i, code := range doc.Codes {
		c.addPage()
		r.drawGiftCardPage(c, doc, code, i+1, len(doc.Codes), logo)
	}

	content, err := c.output()
	if err != nil {
		return nil, err
	}

	return &RenderedDocument{
		Filename:    GiftCardFilename(doc.Recipient, doc.Amount),
		ContentType: ContentTypePDF,
		Content:     content,
		Pages:       c.pageCount(),
	}, nil
}

func (r *Renderer) drawGiftCardPage(c *canvas, doc GiftCardDocument, code string, index, total int, logo *Asset) {
	w, h := c.width, c.height

	c.fillRect(0, 0, w, h, colorCream)
	c.strokeRect(15, 15, w-30, h-30, 2, colorWine)
	c.strokeRect(22, 22, w-44, h-44, 0.75, colorGold)

	y := h - 45.0
	if logo != nil {
		lw, lh := fitHeight(logo, 55)
		if lw > w-2*giftCardMargin {
			lw, lh = fitWidth(logo, w-2*giftCardMargin)
		}
		c.image(logo, (w-lw)/2, y-lh, lw, lh)
		y -= lh + 22
	} else {
		y -= 22
		c.centered(r.shop.Name, y, "B", 24, colorWine)
		y -= 26
	}

	c.centered("CARTE CADEAU", y, "", 13, colorGold)
	y -= 48

	c.centered(FormatAmount(doc.Amount, r.shop.Currency), y, "B", 40, colorWine)
	y -= 34

	c.centered("Offert à : "+doc.Recipient, y, "", 16, colorInk)
	y -= 20

	c.centered(code, y, "", 8, colorMuted)
	y -= 13

	c.centered(fmt.Sprintf("Émise le %s à %s", doc.IssuedAt.Format("02/01/2006"), doc.IssuedAt.Format("15h04")), y, "", 9, colorMuted)
	y -= 13

	if total > 1 {
		c.centered(fmt.Sprintf("Carte %d / %d", index, total), y, "B", 9, colorInk)
	}

	// footer: contact block above the disclaimer
	contactY := 102.0
	for i, line := range r.shop.ContactLines {
		if i == 4 {
			break
		}
		c.centered(line, contactY, "", 8, colorInk)
		contactY -= 10
	}

	lines := WrapText(r.shop.Disclaimer, w-2*giftCardMargin, giftCardDisclaimerPt, c.metrics(false))
	disclaimerY := 56.0
	for _, line := range lines {
		c.centered(line, disclaimerY, "", giftCardDisclaimerPt, colorMuted)
		disclaimerY -= giftCardDisclaimerGap
	}
}
