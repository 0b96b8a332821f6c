package repository

import (
	"context"
	"time"

	"caviste_server/database"
	"caviste_server/lib"
	"caviste_server/structs"
	"caviste_server/structs/tables"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// OrderRepository stores orders and their lines.
type OrderRepository struct {
	db bun.IDB
}

func NewOrderRepository(db bun.IDB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrder inserts the order row; id, timestamps and defaults are scanned back.
// A preset CreatedAt is kept so printed card dates match the stored order.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *tables.Order) (*tables.Order, error) {
	if order.Id == uuid.Nil {
		order.Id = uuid.New()
	}
	now := time.Now()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	created, err := database.Query[tables.Order](r.db).Insert(ctx, order)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return created, nil
}

func (r *OrderRepository) CreateOrderLines(ctx context.Context, lines []*tables.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	for _, line := range lines {
		if line.Id == uuid.Nil {
			line.Id = uuid.New()
		}
	}

	err := database.WithRetry(ctx, func() error {
		_, err := r.db.NewInsert().Model(&lines).Returning("*").Exec(ctx)
		return err
	})
	return lib.MapPgError(err)
}

// CreateOrderWithLines writes the order and then its lines in one transaction.
func (r *OrderRepository) CreateOrderWithLines(ctx context.Context, order *tables.Order, lines []*tables.OrderLine) (*tables.Order, error) {
	var created *tables.Order
	err := database.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		txRepo := NewOrderRepository(tx)

		var err error
		created, err = txRepo.CreateOrder(ctx, order)
		if err != nil {
			return err
		}

		for _, line := range lines {
			line.OrderId = created.Id
		}
		return txRepo.CreateOrderLines(ctx, lines)
	})
	if err != nil {
		return nil, err
	}

	created.Lines = lines
	return created, nil
}

// GetOrder returns the order with its lines, or lib.ErrNotFound.
func (r *OrderRepository) GetOrder(ctx context.Context, id uuid.UUID) (*tables.Order, error) {
	order, err := database.Query[tables.Order](r.db).
		Where("id", id).
		With("Lines").
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if order == nil {
		return nil, lib.ErrNotFound
	}
	return order, nil
}

// ListOrders returns one page of orders, newest first, without their lines.
func (r *OrderRepository) ListOrders(ctx context.Context, filter structs.OrderFilter) (*database.PaginationResult[tables.Order], error) {
	query := database.Query[tables.Order](r.db)
	if filter.Status != nil {
		query = query.Where("status", *filter.Status)
	}
	query = query.OrderBy("created_at", database.DESC)

	result, err := database.Paginate(ctx, query, filter.Page, filter.PageSize)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	return result, nil
}

// UpdateOrderStatus moves the order from one status to another. It returns
// lib.ErrConflict when the order is no longer in the from status.
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, from, to tables.OrderStatus) (*tables.Order, error) {
	affected, err := database.Query[tables.Order](r.db).
		Where("id", id).
		Where("status", from).
		Update(ctx, map[string]any{
			"status":     to,
			"updated_at": time.Now(),
		})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if affected == 0 {
		exists, err := database.Query[tables.Order](r.db).Where("id", id).Exists(ctx)
		if err != nil {
			return nil, lib.MapPgError(err)
		}
		if !exists {
			return nil, lib.ErrNotFound
		}
		return nil, lib.ErrConflict
	}
	return r.GetOrder(ctx, id)
}

// GetOrderLine returns a line only if it belongs to the given order.
func (r *OrderRepository) GetOrderLine(ctx context.Context, orderId, lineId uuid.UUID) (*tables.OrderLine, error) {
	line, err := database.Query[tables.OrderLine](r.db).
		Where("id", lineId).
		Where("order_id", orderId).
		First(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if line == nil {
		return nil, lib.ErrNotFound
	}
	return line, nil
}

func (r *OrderRepository) MarkLineSent(ctx context.Context, lineId uuid.UUID, sentAt time.Time) error {
	affected, err := database.Query[tables.OrderLine](r.db).
		Where("id", lineId).
		Update(ctx, map[string]any{
			"sent":    true,
			"sent_at": sentAt,
		})
	if err != nil {
		return lib.MapPgError(err)
	}
	if affected == 0 {
		return lib.ErrNotFound
	}
	return nil
}

// GiftCardIdExists reports whether a card identifier is already printed on a line.
func (r *OrderRepository) GiftCardIdExists(ctx context.Context, cardId string) (bool, error) {
	exists, err := database.Query[tables.OrderLine](r.db).
		Where("gift_card_id", cardId).
		Timeout(2 * time.Second).
		Exists(ctx)
	if err != nil {
		return false, lib.MapPgError(err)
	}
	return exists, nil
}
