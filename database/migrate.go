package database

import (
	"context"
	"fmt"

	"caviste_server/structs/tables"

	"github.com/uptrace/bun"
)

// CreateSchema creates the tables and indexes the application needs when they are missing
func CreateSchema(ctx context.Context, db bun.IDB) error {
	models := []any{
		(*tables.Order)(nil),
		(*tables.OrderLine)(nil),
		(*tables.PageContent)(nil),
		(*tables.ShippingTier)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", model, err)
		}
	}

	indexes := []struct {
		model  any
		name   string
		column string
	}{
		{(*tables.OrderLine)(nil), "order_lines_order_id_idx", "order_id"},
		{(*tables.OrderLine)(nil), "order_lines_gift_card_id_idx", "gift_card_id"},
		{(*tables.Order)(nil), "orders_status_idx", "status"},
	}

	for _, idx := range indexes {
		_, err := db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			Column(idx.column).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
