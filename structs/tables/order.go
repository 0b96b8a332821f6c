package tables

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// GiftCardProductPrefix marks order lines that stand for one printed gift card.
const GiftCardProductPrefix = "carte-cadeau"

type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`

	Id          uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	OrderNumber string    `bun:"order_number,notnull,unique" json:"order_number"`

	// Buyer
	BuyerName  string `bun:"buyer_name,notnull" json:"buyer_name"`
	BuyerEmail string `bun:"buyer_email" json:"buyer_email,omitempty"`
	Comments   string `bun:"comments" json:"comments,omitempty"`

	DeliveryMode DeliveryMode `bun:"delivery_mode,notnull,default:'pickup'" json:"delivery_mode"`
	PaymentMode  PaymentMode  `bun:"payment_mode,notnull,default:'in-store'" json:"payment_mode"`

	Status      OrderStatus     `bun:"status,notnull,default:'pending'" json:"status"`
	Total       decimal.Decimal `bun:"total,type:numeric(10,2),notnull" json:"total"`
	ShippingFee decimal.Decimal `bun:"shipping_fee,type:numeric(10,2),notnull" json:"shipping_fee"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`

	Lines []*OrderLine `bun:"rel:has-many,join:id=order_id" json:"lines,omitempty"`
}

type OrderLine struct {
	bun.BaseModel `bun:"table:order_lines,alias:ol"`

	Id          uuid.UUID       `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	OrderId     uuid.UUID       `bun:"order_id,notnull,type:uuid" json:"order_id"`
	ProductId   string          `bun:"product_id,notnull" json:"product_id"`
	ProductName string          `bun:"product_name,notnull" json:"product_name"`
	Quantity    int             `bun:"quantity,notnull" json:"quantity"`
	UnitPrice   decimal.Decimal `bun:"unit_price,type:numeric(10,2),notnull" json:"unit_price"`

	// Gift card lines only
	RecipientName  string     `bun:"recipient_name" json:"recipient_name,omitempty"`
	RecipientEmail string     `bun:"recipient_email" json:"recipient_email,omitempty"`
	GiftCardId     string     `bun:"gift_card_id" json:"gift_card_id,omitempty"`
	Sent           bool       `bun:"sent,notnull,default:false" json:"sent"`
	SentAt         *time.Time `bun:"sent_at,nullzero" json:"sent_at,omitempty"`
}

// IsGiftCard reports whether the line was created by the gift card flow.
func (l *OrderLine) IsGiftCard() bool {
	return strings.HasPrefix(l.ProductId, GiftCardProductPrefix)
}

// LineTotal is quantity * unit price.
func (l *OrderLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsTerminal reports whether no further transition can leave this status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusPreparing, OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type DeliveryMode string

const (
	DeliveryModePickup   DeliveryMode = "pickup"
	DeliveryModeDelivery DeliveryMode = "delivery"
)

type PaymentMode string

const (
	PaymentModeBankTransfer PaymentMode = "bank-transfer"
	PaymentModeInStore      PaymentMode = "in-store"
)
