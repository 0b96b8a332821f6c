package services

import (
	"context"
	"fmt"
	"strings"

	"caviste_server/lib"
	"caviste_server/structs"
	"caviste_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

type CheckoutOrderStore interface {
	CreateOrderWithLines(ctx context.Context, order *tables.Order, lines []*tables.OrderLine) (*tables.Order, error)
}

// CheckoutService turns a priced cart into a pending order.
type CheckoutService struct {
	logger   *gecho.Logger
	store    CheckoutOrderStore
	shipping *ShippingService
	emails   *EmailService
}

func NewCheckoutService(logger *gecho.Logger, store CheckoutOrderStore, shipping *ShippingService, emails *EmailService) *CheckoutService {
	return &CheckoutService{
		logger:   logger,
		store:    store,
		shipping: shipping,
		emails:   emails,
	}
}

// Checkout persists the order and then sends both confirmations best effort.
func (cs *CheckoutService) Checkout(ctx context.Context, req *structs.CheckoutRequest, cart *structs.CartView) (*tables.Order, error) {
	if cart == nil || len(cart.Lines) == 0 {
		return nil, lib.NewValidationError("cart", "Le panier est vide")
	}

	mode := tables.DeliveryMode(req.DeliveryMode)
	fee, err := cs.shipping.FeeFor(ctx, cart.Bottles, mode)
	if err != nil {
		return nil, fmt.Errorf("%w: shipping fee: %v", ErrPersistence, err)
	}

	order := &tables.Order{
		Id:           uuid.New(),
		OrderNumber:  lib.GenerateOrderNumber(),
		BuyerName:    strings.TrimSpace(req.BuyerName),
		BuyerEmail:   strings.TrimSpace(req.BuyerEmail),
		Comments:     strings.TrimSpace(req.Comments),
		DeliveryMode: mode,
		PaymentMode:  tables.PaymentMode(req.PaymentMode),
		Status:       tables.OrderStatusPending,
		ShippingFee:  fee,
		Total:        cart.Subtotal.Add(fee),
	}

	lines := make([]*tables.OrderLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, &tables.OrderLine{
			Id:          uuid.New(),
			OrderId:     order.Id,
			ProductId:   l.ProductId,
			ProductName: l.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}

	created, err := cs.store.CreateOrderWithLines(ctx, order, lines)
	if err != nil {
		cs.logger.Error("Failed to persist checkout order",
			gecho.Field("order_number", order.OrderNumber),
			gecho.Field("error", err),
		)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	OrdersCreated.WithLabelValues("cart").Inc()

	cs.logger.Info("Checkout order created",
		gecho.Field("order_id", created.Id),
		gecho.Field("order_number", created.OrderNumber),
		gecho.Field("total", created.Total.StringFixed(2)),
	)

	// send logs and meters each failure; mail never fails a stored order
	_ = cs.emails.SendCheckoutSellerNotification(ctx, created)
	_ = cs.emails.SendCheckoutConfirmation(ctx, created)

	return created, nil
}
