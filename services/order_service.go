package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"caviste_server/database"
	"caviste_server/documents"
	"caviste_server/structs"
	"caviste_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

var (
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrNotGiftCardLine         = errors.New("order line is not a gift card")
)

type OrderStore interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*tables.Order, error)
	ListOrders(ctx context.Context, filter structs.OrderFilter) (*database.PaginationResult[tables.Order], error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to tables.OrderStatus) (*tables.Order, error)
	GetOrderLine(ctx context.Context, orderId, lineId uuid.UUID) (*tables.OrderLine, error)
	MarkLineSent(ctx context.Context, lineId uuid.UUID, sentAt time.Time) error
}

// statusTransitions lists the admin moves allowed from each status.
var statusTransitions = map[tables.OrderStatus][]tables.OrderStatus{
	tables.OrderStatusPending:   {tables.OrderStatusPaid, tables.OrderStatusCancelled},
	tables.OrderStatusPaid:      {tables.OrderStatusPreparing, tables.OrderStatusCancelled},
	tables.OrderStatusPreparing: {tables.OrderStatusReady, tables.OrderStatusCancelled},
	tables.OrderStatusReady:     {tables.OrderStatusDelivered, tables.OrderStatusCancelled},
	tables.OrderStatusDelivered: {},
	tables.OrderStatusCancelled: {},
}

// IsValidStatusTransition reports whether an order may move from current to next.
func IsValidStatusTransition(current, next tables.OrderStatus) bool {
	allowed, ok := statusTransitions[current]
	return ok && slices.Contains(allowed, next)
}

type OrderService struct {
	logger   *gecho.Logger
	store    OrderStore
	renderer GiftCardRenderer
	emails   *EmailService
}

func NewOrderService(logger *gecho.Logger, store OrderStore, renderer GiftCardRenderer, emails *EmailService) *OrderService {
	return &OrderService{
		logger:   logger,
		store:    store,
		renderer: renderer,
		emails:   emails,
	}
}

func (os *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*tables.Order, error) {
	return os.store.GetOrder(ctx, id)
}

func (os *OrderService) ListOrders(ctx context.Context, filter structs.OrderFilter) (*database.PaginationResult[tables.Order], error) {
	return os.store.ListOrders(ctx, filter)
}

// UpdateOrderStatus applies one admin transition of the order state machine.
func (os *OrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, next tables.OrderStatus) (*tables.Order, error) {
	order, err := os.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	current := order.Status
	if !IsValidStatusTransition(current, next) {
		return nil, fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, current, next)
	}

	// the store only applies the move while the order is still in current
	updated, err := os.store.UpdateOrderStatus(ctx, id, current, next)
	if err != nil {
		return nil, err
	}

	os.logger.Info("Order status updated",
		gecho.Field("order_id", id),
		gecho.Field("old_status", current),
		gecho.Field("new_status", next),
	)
	return updated, nil
}

func (os *OrderService) giftCardLine(ctx context.Context, orderId, lineId uuid.UUID) (*tables.Order, *tables.OrderLine, error) {
	order, err := os.store.GetOrder(ctx, orderId)
	if err != nil {
		return nil, nil, err
	}
	line, err := os.store.GetOrderLine(ctx, orderId, lineId)
	if err != nil {
		return nil, nil, err
	}
	if !line.IsGiftCard() || line.GiftCardId == "" {
		return nil, nil, ErrNotGiftCardLine
	}
	return order, line, nil
}

// RenderGiftCardLine prints a stored card again with its original identifier and issue date.
func (os *OrderService) RenderGiftCardLine(ctx context.Context, orderId, lineId uuid.UUID) (*documents.RenderedDocument, error) {
	order, line, err := os.giftCardLine(ctx, orderId, lineId)
	if err != nil {
		return nil, err
	}
	return os.renderLine(ctx, order, line)
}

func (os *OrderService) renderLine(ctx context.Context, order *tables.Order, line *tables.OrderLine) (*documents.RenderedDocument, error) {
	doc, err := os.renderer.RenderGiftCard(ctx, documents.GiftCardDocument{
		Recipient: line.RecipientName,
		Amount:    line.UnitPrice,
		Codes:     []string{line.GiftCardId},
		IssuedAt:  order.CreatedAt,
	})
	if err != nil {
		GiftCardRenderFailures.Inc()
		return nil, fmt.Errorf("render gift card %s: %w", line.GiftCardId, err)
	}
	GiftCardsRendered.Inc()
	return doc, nil
}

// SendGiftCardLine emails a stored card and flags the line as sent.
func (os *OrderService) SendGiftCardLine(ctx context.Context, orderId, lineId uuid.UUID, email string) error {
	order, line, err := os.giftCardLine(ctx, orderId, lineId)
	if err != nil {
		return err
	}

	doc, err := os.renderLine(ctx, order, line)
	if err != nil {
		return err
	}

	if err := os.emails.SendGiftCard(ctx, email, IssuedGiftCard{Line: line, Document: doc}); err != nil {
		return err
	}

	if err := os.store.MarkLineSent(ctx, line.Id, time.Now()); err != nil {
		os.logger.Error("Gift card sent but line could not be flagged",
			gecho.Field("line_id", line.Id),
			gecho.Field("error", err),
		)
		return err
	}

	os.logger.Info("Gift card sent",
		gecho.Field("order_id", orderId),
		gecho.Field("card_id", line.GiftCardId),
	)
	return nil
}
