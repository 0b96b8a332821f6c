package structs

import (
	"github.com/shopspring/decimal"
)

const (
	ContentKeyVintnerMeetings = "rencontres-vignerons"
	ContentKeyCatalogue       = "catalogue"
)

// VintnerMeetingsContent drives the vintner meetings page and its printable flyer.
type VintnerMeetingsContent struct {
	Title         string                `json:"titre"`
	Schedule      string                `json:"horaires"`
	Address       string                `json:"adresse"`
	AddressDetail string                `json:"complementAdresse"`
	Entries       []VintnerMeetingEntry `json:"rencontres"`
}

type VintnerMeetingEntry struct {
	Date    string   `json:"date"`  // YYYY-MM-DD
	Title   string   `json:"titre"` // may contain <strong> markup
	Bullets []string `json:"points"`
	Image   string   `json:"image,omitempty"` // http(s) URL or path under the assets dir
}

type CatalogueContent struct {
	Products []CatalogueProduct `json:"products"`
}

type CatalogueProduct struct {
	Id      string          `json:"id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Bottles int             `json:"bottles"` // bottles per unit, used for shipping tiers
}

// Find returns the product with the given id, or nil.
func (c *CatalogueContent) Find(id string) *CatalogueProduct {
	for i := range c.Products {
		if c.Products[i].Id == id {
			return &c.Products[i]
		}
	}
	return nil
}

type CartItemRequest struct {
	ProductId string `json:"productId" validate:"required,max=100"`
	Quantity  int    `json:"quantity" validate:"required,min=1,max=99"`
}

type CartLine struct {
	ProductId string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
	Bottles   int             `json:"bottles"`
}

type CartView struct {
	Lines    []CartLine      `json:"lines"`
	Bottles  int             `json:"bottles"`
	Subtotal decimal.Decimal `json:"subtotal"`
}
