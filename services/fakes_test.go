package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"caviste_server/database"
	"caviste_server/documents"
	"caviste_server/lib"
	"caviste_server/structs"
	"caviste_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func testLogger() *gecho.Logger {
	return gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(false)))
}

func testConfig() *structs.Config {
	return &structs.Config{
		Email: &structs.EmailConfig{
			From:         "La Cave du Vigneron <boutique@example.com>",
			SellerEmail:  "seller@example.com",
			SupportEmail: "support@example.com",
		},
		Auth: &structs.AuthConfig{
			AccessTokenSecret: "test-secret",
			AccessTokenExpiry: 15 * time.Minute,
			AdminUsername:     "caviste",
			LoginMaxAttempts:  3,
			LoginWindow:       time.Minute,
		},
		Session: &structs.SessionConfig{Key: "0123456789abcdef0123456789abcdef", MaxAge: 3600},
		Shop: &structs.ShopConfig{
			Name:              "La Cave du Vigneron",
			Currency:          "€",
			MinGiftCardAmount: decimal.NewFromInt(10),
		},
	}
}

// fakeOrderStore records what the services persist.
type fakeOrderStore struct {
	mu sync.Mutex

	createFn func(order *tables.Order, lines []*tables.OrderLine) error
	existsFn func(cardId string) (bool, error)

	// beforeStatusUpdate stands in for a concurrent writer between read and write.
	beforeStatusUpdate func(order *tables.Order)

	created []*tables.Order
	orders  map[uuid.UUID]*tables.Order
	sent    map[uuid.UUID]time.Time
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		orders: make(map[uuid.UUID]*tables.Order),
		sent:   make(map[uuid.UUID]time.Time),
	}
}

func (f *fakeOrderStore) CreateOrderWithLines(_ context.Context, order *tables.Order, lines []*tables.OrderLine) (*tables.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createFn != nil {
		if err := f.createFn(order, lines); err != nil {
			return nil, err
		}
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Date(2026, 3, 7, 9, 5, 0, 0, time.UTC)
	}
	order.Lines = lines
	f.created = append(f.created, order)
	f.orders[order.Id] = order
	return order, nil
}

func (f *fakeOrderStore) GiftCardIdExists(_ context.Context, cardId string) (bool, error) {
	if f.existsFn != nil {
		return f.existsFn(cardId)
	}
	return false, nil
}

func (f *fakeOrderStore) GetOrder(_ context.Context, id uuid.UUID) (*tables.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return nil, errNotFoundFake
	}
	return order, nil
}

func (f *fakeOrderStore) ListOrders(_ context.Context, filter structs.OrderFilter) (*database.PaginationResult[tables.Order], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := &database.PaginationResult[tables.Order]{}
	for _, o := range f.orders {
		if filter.Status == nil || o.Status == *filter.Status {
			result.Data = append(result.Data, *o)
		}
	}
	result.Pagination.Total = len(result.Data)
	return result, nil
}

func (f *fakeOrderStore) UpdateOrderStatus(_ context.Context, id uuid.UUID, from, to tables.OrderStatus) (*tables.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return nil, errNotFoundFake
	}
	if f.beforeStatusUpdate != nil {
		f.beforeStatusUpdate(order)
	}
	if order.Status != from {
		return nil, lib.ErrConflict
	}
	order.Status = to
	return order, nil
}

func (f *fakeOrderStore) GetOrderLine(_ context.Context, orderId, lineId uuid.UUID) (*tables.OrderLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderId]
	if !ok {
		return nil, errNotFoundFake
	}
	for _, l := range order.Lines {
		if l.Id == lineId {
			return l, nil
		}
	}
	return nil, errNotFoundFake
}

func (f *fakeOrderStore) MarkLineSent(_ context.Context, lineId uuid.UUID, sentAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent[lineId] = sentAt
	return nil
}

var errNotFoundFake = errors.New("not found")

// fakeRenderer returns a tiny fake document per card unless failFn says otherwise.
type fakeRenderer struct {
	failFn func(doc documents.GiftCardDocument) bool
	calls  []documents.GiftCardDocument
}

func (f *fakeRenderer) RenderGiftCard(_ context.Context, doc documents.GiftCardDocument) (*documents.RenderedDocument, error) {
	f.calls = append(f.calls, doc)
	if f.failFn != nil && f.failFn(doc) {
		return nil, errors.New("render failed")
	}
	return &documents.RenderedDocument{
		Filename:    documents.GiftCardFilename(doc.Recipient, doc.Amount),
		ContentType: documents.ContentTypePDF,
		Content:     []byte("%PDF-" + doc.Codes[0]),
		Pages:       len(doc.Codes),
	}, nil
}

// fakeMailer captures sent emails; failFn can reject some of them.
type fakeMailer struct {
	mu     sync.Mutex
	failFn func(email *Email) bool
	sent   []*Email
	failed []*Email
}

func (f *fakeMailer) Send(_ context.Context, email *Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFn != nil && f.failFn(email) {
		f.failed = append(f.failed, email)
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, email)
	return nil
}

func (f *fakeMailer) to(address string) []*Email {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*Email
	for _, e := range f.sent {
		for _, to := range e.To {
			if to == address {
				out = append(out, e)
			}
		}
	}
	return out
}
