package repository

import (
	"context"

	"caviste_server/database"
	"caviste_server/lib"
	"caviste_server/structs/tables"

	"github.com/uptrace/bun"
)

type ShippingRepository struct {
	db bun.IDB
}

func NewShippingRepository(db bun.IDB) *ShippingRepository {
	return &ShippingRepository{db: db}
}

// GetShippingTiers returns every tier ordered by threshold.
func (r *ShippingRepository) GetShippingTiers(ctx context.Context) ([]tables.ShippingTier, error) {
	tiers, err := database.Query[tables.ShippingTier](r.db).
		OrderBy("min_bottles", database.ASC).
		All(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if tiers == nil {
		tiers = []tables.ShippingTier{}
	}
	return tiers, nil
}

// ReplaceShippingTiers swaps the whole tier table in one transaction.
func (r *ShippingRepository) ReplaceShippingTiers(ctx context.Context, tiers []tables.ShippingTier) ([]tables.ShippingTier, error) {
	var saved []tables.ShippingTier
	err := database.Transaction(ctx, r.db, func(ctx context.Context, tx bun.Tx) error {
		if _, err := database.Query[tables.ShippingTier](tx).Delete(ctx); err != nil {
			return err
		}

		for i := range tiers {
			tiers[i].Id = 0
		}

		var err error
		saved, err = database.Query[tables.ShippingTier](tx).InsertMany(ctx, tiers)
		return err
	})
	if err != nil {
		return nil, lib.MapPgError(err)
	}
	if saved == nil {
		saved = []tables.ShippingTier{}
	}
	return saved, nil
}
