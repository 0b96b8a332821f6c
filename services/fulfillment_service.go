package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"caviste_server/documents"
	"caviste_server/lib"
	"caviste_server/structs"
	"caviste_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrPersistence wraps every storage failure of an order submission.
var ErrPersistence = errors.New("order could not be saved")

// cardIdAttempts bounds regeneration when a generated identifier already exists.
const cardIdAttempts = 3

const maxRecipientNameLength = 50

type GiftCardOrderStore interface {
	CreateOrderWithLines(ctx context.Context, order *tables.Order, lines []*tables.OrderLine) (*tables.Order, error)
	GiftCardIdExists(ctx context.Context, cardId string) (bool, error)
}

type GiftCardRenderer interface {
	RenderGiftCard(ctx context.Context, doc documents.GiftCardDocument) (*documents.RenderedDocument, error)
}

// FulfillmentService turns a gift card order into stored records, printable cards and emails.
type FulfillmentService struct {
	logger   *gecho.Logger
	cfg      *structs.Config
	store    GiftCardOrderStore
	renderer GiftCardRenderer
	emails   *EmailService
	now      func() time.Time
}

func NewFulfillmentService(
	logger *gecho.Logger,
	cfg *structs.Config,
	store GiftCardOrderStore,
	renderer GiftCardRenderer,
	emails *EmailService,
) *FulfillmentService {
	return &FulfillmentService{
		logger:   logger,
		cfg:      cfg,
		store:    store,
		renderer: renderer,
		emails:   emails,
		now:      time.Now,
	}
}

// ValidateGiftCards rejects the whole batch on the first invalid card.
func (fs *FulfillmentService) ValidateGiftCards(cards []structs.GiftCardRequest, buyer structs.BuyerInfo) error {
	if len(cards) == 0 {
		return lib.NewValidationError("cartes", "Au moins une carte cadeau est requise")
	}

	minimum := fs.cfg.Shop.MinGiftCardAmount
	for i, card := range cards {
		name := strings.TrimSpace(card.RecipientName)
		if name == "" {
			return lib.NewValidationError(
				fmt.Sprintf("cartes[%d].destinataire", i),
				fmt.Sprintf("Le nom du destinataire est obligatoire (carte %d)", i+1),
			)
		}
		if utf8.RuneCountInString(name) > maxRecipientNameLength {
			return lib.NewValidationError(
				fmt.Sprintf("cartes[%d].destinataire", i),
				fmt.Sprintf("Le nom du destinataire ne peut dépasser %d caractères (carte %d)", maxRecipientNameLength, i+1),
			)
		}
		if !card.Amount.IsPositive() || card.Amount.LessThan(minimum) {
			return lib.NewValidationError(
				fmt.Sprintf("cartes[%d].montant", i),
				fmt.Sprintf("Le montant minimum d'une carte cadeau est de %s (carte %d pour %s)",
					documents.FormatAmount(minimum, fs.cfg.Shop.Currency), i+1, name),
			)
		}
		if email := strings.TrimSpace(card.RecipientEmail); email != "" && !lib.IsValidEmail(email) {
			return lib.NewValidationError(
				fmt.Sprintf("cartes[%d].emailDestinataire", i),
				fmt.Sprintf("L'adresse email de %s est invalide", name),
			)
		}
	}

	if email := strings.TrimSpace(buyer.Email); email != "" && !lib.IsValidEmail(email) {
		return lib.NewValidationError("emailAcheteur", "L'adresse email de l'acheteur est invalide")
	}

	return nil
}

// SubmitGiftCardOrder validates, persists, renders and notifies, in that order.
// Only validation and persistence failures are returned; rendering and email
// failures are logged and leave the order successful.
func (fs *FulfillmentService) SubmitGiftCardOrder(ctx context.Context, cards []structs.GiftCardRequest, buyer structs.BuyerInfo, status tables.OrderStatus) (*tables.Order, error) {
	if err := fs.ValidateGiftCards(cards, buyer); err != nil {
		return nil, err
	}

	issuedAt := fs.now()
	order, lines := fs.buildGiftCardOrder(ctx, cards, buyer, status, issuedAt)

	created, err := fs.store.CreateOrderWithLines(ctx, order, lines)
	if err != nil {
		fs.logger.Error("Failed to persist gift card order",
			gecho.Field("order_number", order.OrderNumber),
			gecho.Field("cards", len(lines)),
			gecho.Field("error", err),
		)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	OrdersCreated.WithLabelValues(originOf(status)).Inc()

	fs.logger.Info("Gift card order persisted",
		gecho.Field("order_id", created.Id),
		gecho.Field("order_number", created.OrderNumber),
		gecho.Field("cards", len(lines)),
		gecho.Field("status", created.Status),
	)

	issued := fs.renderGiftCards(ctx, created, lines, issuedAt)
	fs.notify(ctx, created, issued, buyer)

	return created, nil
}

func originOf(status tables.OrderStatus) string {
	if status == tables.OrderStatusPaid {
		return "admin"
	}
	return "storefront"
}

func (fs *FulfillmentService) buildGiftCardOrder(ctx context.Context, cards []structs.GiftCardRequest, buyer structs.BuyerInfo, status tables.OrderStatus, issuedAt time.Time) (*tables.Order, []*tables.OrderLine) {
	delivery := buyer.DeliveryMode
	if delivery == "" {
		delivery = tables.DeliveryModePickup
	}
	payment := buyer.PaymentMode
	if payment == "" {
		payment = tables.PaymentModeInStore
	}

	order := &tables.Order{
		Id:           uuid.New(),
		OrderNumber:  lib.GenerateOrderNumber(),
		BuyerName:    strings.TrimSpace(buyer.Name),
		BuyerEmail:   strings.TrimSpace(buyer.Email),
		Comments:     strings.TrimSpace(buyer.Comments),
		DeliveryMode: delivery,
		PaymentMode:  payment,
		Status:       status,
		ShippingFee:  decimal.Zero,
		CreatedAt:    issuedAt,
	}

	total := decimal.Zero
	used := make(map[string]bool, len(cards))
	lines := make([]*tables.OrderLine, 0, len(cards))
	for _, card := range cards {
		name := strings.TrimSpace(card.RecipientName)
		amount := card.Amount.Round(2)
		cardId := fs.uniqueCardId(ctx, name, amount, issuedAt, used)
		used[cardId] = true

		lines = append(lines, &tables.OrderLine{
			Id:             uuid.New(),
			OrderId:        order.Id,
			ProductId:      tables.GiftCardProductPrefix,
			ProductName:    "Carte cadeau " + documents.FormatAmount(amount, fs.cfg.Shop.Currency),
			Quantity:       1,
			UnitPrice:      amount,
			RecipientName:  name,
			RecipientEmail: strings.TrimSpace(card.RecipientEmail),
			GiftCardId:     cardId,
		})
		total = total.Add(amount)
	}
	order.Total = total

	return order, lines
}

// uniqueCardId regenerates on a collision with the batch or with stored lines.
// Every returned candidate has been checked; a failed lookup keeps the current one.
func (fs *FulfillmentService) uniqueCardId(ctx context.Context, name string, amount decimal.Decimal, issuedAt time.Time, used map[string]bool) string {
	var cardId string
	for attempt := 0; attempt <= cardIdAttempts; attempt++ {
		cardId = lib.GenerateCardIdAt(name, amount, issuedAt)
		if used[cardId] {
			continue
		}

		exists, err := fs.store.GiftCardIdExists(ctx, cardId)
		if err != nil {
			fs.logger.Warn("Could not check gift card id uniqueness",
				gecho.Field("card_id", cardId),
				gecho.Field("error", err),
			)
			return cardId
		}
		if !exists {
			return cardId
		}

		fs.logger.Warn("Gift card id collision, regenerating", gecho.Field("card_id", cardId))
	}

	fs.logger.Error("Gift card id still collides after regeneration",
		gecho.Field("card_id", cardId),
		gecho.Field("attempts", cardIdAttempts+1),
	)
	return cardId
}

func (fs *FulfillmentService) renderGiftCards(ctx context.Context, order *tables.Order, lines []*tables.OrderLine, issuedAt time.Time) []IssuedGiftCard {
	issued := make([]IssuedGiftCard, 0, len(lines))
	for _, line := range lines {
		doc, err := fs.renderer.RenderGiftCard(ctx, documents.GiftCardDocument{
			Recipient: line.RecipientName,
			Amount:    line.UnitPrice,
			Codes:     []string{line.GiftCardId},
			IssuedAt:  issuedAt,
		})
		if err != nil {
			GiftCardRenderFailures.Inc()
			fs.logger.Error("Failed to render gift card, it will not be attached",
				gecho.Field("order_id", order.Id),
				gecho.Field("card_id", line.GiftCardId),
				gecho.Field("recipient", line.RecipientName),
				gecho.Field("error", err),
			)
			doc = nil
		} else {
			GiftCardsRendered.Inc()
		}
		issued = append(issued, IssuedGiftCard{Line: line, Document: doc})
	}
	return issued
}

// notify sends each email independently; a failure is logged and the rest go out.
func (fs *FulfillmentService) notify(ctx context.Context, order *tables.Order, issued []IssuedGiftCard, buyer structs.BuyerInfo) {
	// send logs and meters each failure
	_ = fs.emails.SendGiftCardSellerNotification(ctx, order, issued)

	if buyer.NotifyBuyer && order.BuyerEmail != "" {
		_ = fs.emails.SendGiftCardBuyerConfirmation(ctx, order, issued)
	}

	for _, card := range issued {
		if card.Line.RecipientEmail == "" {
			continue
		}
		if card.Document == nil {
			fs.logger.Warn("Skipping recipient email, card document missing",
				gecho.Field("order_id", order.Id),
				gecho.Field("card_id", card.Line.GiftCardId),
			)
			continue
		}
		_ = fs.emails.SendGiftCardToRecipient(ctx, order, card)
	}
}
