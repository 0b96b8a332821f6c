package structs

import (
	"caviste_server/structs/tables"

	"github.com/shopspring/decimal"
)

// GiftCardRequest is one card of a gift card order as typed in the storefront or admin form.
type GiftCardRequest struct {
	RecipientName  string          `json:"destinataire"`
	Amount         decimal.Decimal `json:"montant"`
	RecipientEmail string          `json:"emailDestinataire,omitempty"`
}

type GiftCardOrderRequest struct {
	Cards        []GiftCardRequest `json:"cartes" validate:"required,min=1,max=50"`
	BuyerName    string            `json:"nomAcheteur" validate:"max=100"`
	BuyerEmail   string            `json:"emailAcheteur" validate:"max=254"`
	NotifyBuyer  bool              `json:"envoyerEmailAcheteur"`
	Comments     string            `json:"commentaires,omitempty" validate:"max=1000"`
	DeliveryMode string            `json:"modeLivraison" validate:"omitempty,oneof=pickup delivery"`
	PaymentMode  string            `json:"modePaiement" validate:"omitempty,oneof=bank-transfer in-store"`
}

// Buyer extracts the buyer part of the request.
func (r *GiftCardOrderRequest) Buyer() BuyerInfo {
	return BuyerInfo{
		Name:         r.BuyerName,
		Email:        r.BuyerEmail,
		NotifyBuyer:  r.NotifyBuyer,
		Comments:     r.Comments,
		DeliveryMode: tables.DeliveryMode(r.DeliveryMode),
		PaymentMode:  tables.PaymentMode(r.PaymentMode),
	}
}

type BuyerInfo struct {
	Name         string
	Email        string
	NotifyBuyer  bool
	Comments     string
	DeliveryMode tables.DeliveryMode
	PaymentMode  tables.PaymentMode
}

// OrderResult is returned to the caller once an order is persisted.
type OrderResult struct {
	Success     bool   `json:"success"`
	OrderId     string `json:"orderId,omitempty"`
	OrderNumber string `json:"orderNumber,omitempty"`
	Message     string `json:"message,omitempty"`
}

type CheckoutRequest struct {
	BuyerName    string `json:"nomAcheteur" validate:"required,max=100"`
	BuyerEmail   string `json:"emailAcheteur" validate:"required,email"`
	DeliveryMode string `json:"modeLivraison" validate:"required,oneof=pickup delivery"`
	PaymentMode  string `json:"modePaiement" validate:"required,oneof=bank-transfer in-store"`
	Comments     string `json:"commentaires,omitempty" validate:"max=1000"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid preparing ready delivered cancelled"`
}

type SendGiftCardRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// OrderFilter narrows the admin order listing.
type OrderFilter struct {
	Status   *tables.OrderStatus
	Page     int
	PageSize int
}

type ShippingTierInput struct {
	MinBottles int             `json:"minBottles" validate:"gte=0"`
	Fee        decimal.Decimal `json:"fee"`
}

type ShippingTiersRequest struct {
	Tiers []ShippingTierInput `json:"tiers" validate:"dive"`
}
