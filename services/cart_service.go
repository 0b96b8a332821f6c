package services

import (
	"context"
	"encoding/gob"
	"errors"
	"net/http"
	"sort"

	"caviste_server/lib"
	"caviste_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"
)

const (
	cartSessionName = "caviste_cart"
	cartItemsKey    = "items"
	maxCartQuantity = 99
	maxCartProducts = 50
)

var ErrUnknownProduct = errors.New("unknown product")

func init() {
	gob.Register(map[string]int{})
}

// NewSessionStore builds the signed cookie store holding carts.
func NewSessionStore(cfg *structs.Config, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(cfg.Session.Key))
	store.Options.Path = "/"
	store.Options.MaxAge = cfg.Session.MaxAge
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	return store
}

// CartService keeps product quantities in the session cookie and prices them
// from the catalogue on every read.
type CartService struct {
	logger  *gecho.Logger
	store   sessions.Store
	content *ContentService
}

func NewCartService(logger *gecho.Logger, store sessions.Store, content *ContentService) *CartService {
	return &CartService{
		logger:  logger,
		store:   store,
		content: content,
	}
}

func (cs *CartService) session(r *http.Request) *sessions.Session {
	// A tampered or stale cookie yields a fresh session alongside the error.
	session, err := cs.store.Get(r, cartSessionName)
	if err != nil {
		cs.logger.Debug("Discarding unreadable cart session", gecho.Field("error", err))
	}
	return session
}

func itemsOf(session *sessions.Session) map[string]int {
	items, ok := session.Values[cartItemsKey].(map[string]int)
	if !ok || items == nil {
		return map[string]int{}
	}
	return items
}

// Items returns the raw product quantities of the current cart.
func (cs *CartService) Items(r *http.Request) map[string]int {
	return itemsOf(cs.session(r))
}

func (cs *CartService) save(w http.ResponseWriter, r *http.Request, session *sessions.Session, items map[string]int) error {
	session.Values[cartItemsKey] = items
	return session.Save(r, w)
}

// AddItem adds quantity units of a catalogue product, capped per product.
func (cs *CartService) AddItem(w http.ResponseWriter, r *http.Request, productId string, quantity int) (*structs.CartView, error) {
	ctx := r.Context()
	catalogue, err := cs.content.Catalogue(ctx)
	if err != nil {
		return nil, err
	}
	if catalogue.Find(productId) == nil {
		return nil, ErrUnknownProduct
	}

	session := cs.session(r)
	items := itemsOf(session)
	if _, exists := items[productId]; !exists && len(items) >= maxCartProducts {
		return nil, lib.NewValidationError("productId", "Le panier est plein")
	}
	items[productId] = min(items[productId]+quantity, maxCartQuantity)

	if err := cs.save(w, r, session, items); err != nil {
		return nil, err
	}
	return cs.price(catalogue, items), nil
}

func (cs *CartService) RemoveItem(w http.ResponseWriter, r *http.Request, productId string) (*structs.CartView, error) {
	session := cs.session(r)
	items := itemsOf(session)
	delete(items, productId)

	if err := cs.save(w, r, session, items); err != nil {
		return nil, err
	}
	return cs.View(r.Context(), items)
}

func (cs *CartService) Clear(w http.ResponseWriter, r *http.Request) error {
	session := cs.session(r)
	return cs.save(w, r, session, map[string]int{})
}

// View prices the items; products no longer in the catalogue are dropped.
func (cs *CartService) View(ctx context.Context, items map[string]int) (*structs.CartView, error) {
	catalogue, err := cs.content.Catalogue(ctx)
	if err != nil {
		return nil, err
	}
	return cs.price(catalogue, items), nil
}

func (cs *CartService) price(catalogue *structs.CatalogueContent, items map[string]int) *structs.CartView {
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	view := &structs.CartView{Lines: []structs.CartLine{}, Subtotal: decimal.Zero}
	for _, id := range ids {
		product := catalogue.Find(id)
		quantity := items[id]
		if product == nil || quantity <= 0 {
			continue
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(quantity)))
		view.Lines = append(view.Lines, structs.CartLine{
			ProductId: product.Id,
			Name:      product.Name,
			Quantity:  quantity,
			UnitPrice: product.Price,
			LineTotal: lineTotal,
			Bottles:   product.Bottles * quantity,
		})
		view.Bottles += product.Bottles * quantity
		view.Subtotal = view.Subtotal.Add(lineTotal)
	}
	return view
}
