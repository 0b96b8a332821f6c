package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"caviste_server/lib"
	"caviste_server/structs"
	"caviste_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/shopspring/decimal"
)

const (
	shippingCacheKey = "shipping:tiers"
	shippingCacheTTL = 30 * time.Minute
)

type ShippingStore interface {
	GetShippingTiers(ctx context.Context) ([]tables.ShippingTier, error)
	ReplaceShippingTiers(ctx context.Context, tiers []tables.ShippingTier) ([]tables.ShippingTier, error)
}

type ShippingService struct {
	logger *gecho.Logger
	store  ShippingStore
	cache  *CacheService
}

func NewShippingService(logger *gecho.Logger, store ShippingStore, cache *CacheService) *ShippingService {
	return &ShippingService{
		logger: logger,
		store:  store,
		cache:  cache,
	}
}

func (ss *ShippingService) Tiers(ctx context.Context) ([]tables.ShippingTier, error) {
	cached, err := getJSON[[]tables.ShippingTier](ctx, ss.cache, shippingCacheKey)
	if err != nil {
		ss.logger.Warn("Shipping cache read failed", gecho.Field("error", err))
	} else if cached != nil {
		return *cached, nil
	}

	tiers, err := ss.store.GetShippingTiers(ctx)
	if err != nil {
		return nil, err
	}

	if err := setJSON(ctx, ss.cache, shippingCacheKey, tiers, shippingCacheTTL); err != nil {
		ss.logger.Warn("Shipping cache write failed", gecho.Field("error", err))
	}
	return tiers, nil
}

// Replace swaps every tier. Thresholds must be unique and fees non-negative.
func (ss *ShippingService) Replace(ctx context.Context, inputs []structs.ShippingTierInput) ([]tables.ShippingTier, error) {
	seen := make(map[int]bool, len(inputs))
	tiers := make([]tables.ShippingTier, 0, len(inputs))
	for i, in := range inputs {
		if in.MinBottles < 0 {
			return nil, lib.NewValidationError(fmt.Sprintf("tiers[%d].minBottles", i), "Le seuil doit être positif")
		}
		if in.Fee.IsNegative() {
			return nil, lib.NewValidationError(fmt.Sprintf("tiers[%d].fee", i), "Les frais ne peuvent pas être négatifs")
		}
		if seen[in.MinBottles] {
			return nil, lib.NewValidationError(fmt.Sprintf("tiers[%d].minBottles", i), "Seuil en double")
		}
		seen[in.MinBottles] = true
		tiers = append(tiers, tables.ShippingTier{MinBottles: in.MinBottles, Fee: in.Fee.Round(2)})
	}

	saved, err := ss.store.ReplaceShippingTiers(ctx, tiers)
	if err != nil {
		return nil, err
	}

	if err := ss.cache.Delete(ctx, shippingCacheKey); err != nil {
		ss.logger.Warn("Shipping cache invalidation failed", gecho.Field("error", err))
	}

	ss.logger.Info("Shipping tiers replaced", gecho.Field("tiers", len(saved)))
	return saved, nil
}

// FeeFor prices shipping for a number of bottles.
func (ss *ShippingService) FeeFor(ctx context.Context, bottles int, mode tables.DeliveryMode) (decimal.Decimal, error) {
	if mode != tables.DeliveryModeDelivery {
		return decimal.Zero, nil
	}
	tiers, err := ss.Tiers(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return ComputeShippingFee(tiers, bottles), nil
}

// ComputeShippingFee picks the tier with the greatest threshold not above bottles.
// No matching tier means free shipping.
func ComputeShippingFee(tiers []tables.ShippingTier, bottles int) decimal.Decimal {
	sorted := make([]tables.ShippingTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinBottles < sorted[j].MinBottles })

	fee := decimal.Zero
	for _, tier := range sorted {
		if tier.MinBottles > bottles {
			break
		}
		fee = tier.Fee
	}
	return fee
}
