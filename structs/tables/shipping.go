package tables

import (
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type ShippingTier struct {
	bun.BaseModel `bun:"table:shipping_tiers,alias:st"`

	Id         int64           `bun:"id,pk,autoincrement" json:"id"`
	MinBottles int             `bun:"min_bottles,notnull,unique" json:"minBottles"`
	Fee        decimal.Decimal `bun:"fee,type:numeric(10,2),notnull" json:"fee"`
}
