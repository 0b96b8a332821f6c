package giftcards

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"caviste_server/documents"
	"caviste_server/services"
	"caviste_server/structs"
	"caviste_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubStore struct {
	fail    bool
	created []*tables.Order
}

func (s *stubStore) CreateOrderWithLines(_ context.Context, order *tables.Order, lines []*tables.OrderLine) (*tables.Order, error) {
	if s.fail {
		return nil, errors.New("connection refused")
	}
	order.Lines = lines
	s.created = append(s.created, order)
	return order, nil
}

func (s *stubStore) GiftCardIdExists(context.Context, string) (bool, error) { return false, nil }

type stubRenderer struct{}

func (stubRenderer) RenderGiftCard(_ context.Context, doc documents.GiftCardDocument) (*documents.RenderedDocument, error) {
	return &documents.RenderedDocument{Filename: "card.pdf", ContentType: documents.ContentTypePDF, Content: []byte("%PDF")}, nil
}

type stubMailer struct{ sent int }

func (m *stubMailer) Send(context.Context, *services.Email) error {
	m.sent++
	return nil
}

type envelope struct {
	Data json.RawMessage `json:"data"`
}

func newRouter(store *stubStore, mailer *stubMailer, status tables.OrderStatus) http.Handler {
	logger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(false)))
	cfg := &structs.Config{
		Email: &structs.EmailConfig{From: "boutique@example.com", SellerEmail: "seller@example.com"},
		Shop:  &structs.ShopConfig{Name: "La Cave", Currency: "€", MinGiftCardAmount: decimal.NewFromInt(10)},
	}
	fulfillment := services.NewFulfillmentService(logger, cfg, store, stubRenderer{}, services.NewEmailService(logger, cfg, mailer))

	r := chi.NewRouter()
	r.Post("/gift-cards/orders", SubmitHandler(logger, fulfillment, status))
	return r
}

func post(h http.Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/gift-cards/orders", bytes.NewBufferString(body)))
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) structs.OrderResult {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	var result structs.OrderResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	return result
}

const validOrder = `{
	"cartes": [{"destinataire": "Jean Dupont", "montant": "50"}],
	"nomAcheteur": "Marie Curie",
	"emailAcheteur": "marie@example.com",
	"envoyerEmailAcheteur": true
}`

func TestSubmit_Success(t *testing.T) {
	store := &stubStore{}
	mailer := &stubMailer{}

	rec := post(newRouter(store, mailer, tables.OrderStatusPending), validOrder)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decodeResult(t, rec)
	assert.True(t, result.Success)
	require.Len(t, store.created, 1)
	assert.Equal(t, store.created[0].Id.String(), result.OrderId)
	assert.Equal(t, store.created[0].OrderNumber, result.OrderNumber)
	assert.Equal(t, tables.OrderStatusPending, store.created[0].Status)
	assert.Equal(t, 2, mailer.sent, "seller and buyer")
}

func TestSubmit_AdminSaleIsPaid(t *testing.T) {
	store := &stubStore{}
	rec := post(newRouter(store, &stubMailer{}, tables.OrderStatusPaid), validOrder)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, tables.OrderStatusPaid, store.created[0].Status)
}

func TestSubmit_Rejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"cartes": [`},
		{"unknown field", `{"cartes": [{"destinataire": "A", "montant": "20"}], "coupon": "X"}`},
		{"no cards", `{"cartes": []}`},
		{"below minimum", `{"cartes": [{"destinataire": "Jean", "montant": "5"}]}`},
		{"blank recipient", `{"cartes": [{"destinataire": "  ", "montant": "20"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubStore{}
			mailer := &stubMailer{}
			rec := post(newRouter(store, mailer, tables.OrderStatusPending), tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			result := decodeResult(t, rec)
			assert.False(t, result.Success)
			assert.NotEmpty(t, result.Message)
			assert.Empty(t, store.created)
			assert.Zero(t, mailer.sent)
		})
	}
}

func TestSubmit_PersistenceFailure(t *testing.T) {
	mailer := &stubMailer{}
	rec := post(newRouter(&stubStore{fail: true}, mailer, tables.OrderStatusPending), validOrder)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	result := decodeResult(t, rec)
	assert.False(t, result.Success)
	assert.Zero(t, mailer.sent)
}
