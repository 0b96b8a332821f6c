package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"caviste_server/documents"
	"caviste_server/lib"
	"caviste_server/structs"
	"caviste_server/structs/tables"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cardIdPattern = regexp.MustCompile(`^CarteCadeau-[A-Za-z0-9]*-\d+-\d{8}-\d{2}-\d{2}-[A-Z0-9]{4}$`)

type fulfillmentFixture struct {
	service  *FulfillmentService
	store    *fakeOrderStore
	renderer *fakeRenderer
	mailer   *fakeMailer
}

func newFulfillmentFixture() *fulfillmentFixture {
	cfg := testConfig()
	store := newFakeOrderStore()
	renderer := &fakeRenderer{}
	mailer := &fakeMailer{}
	logger := testLogger()

	svc := NewFulfillmentService(logger, cfg, store, renderer, NewEmailService(logger, cfg, mailer))
	svc.now = func() time.Time { return time.Date(2026, 3, 7, 9, 5, 0, 0, time.UTC) }

	return &fulfillmentFixture{service: svc, store: store, renderer: renderer, mailer: mailer}
}

func card(name string, amount string, email string) structs.GiftCardRequest {
	return structs.GiftCardRequest{
		RecipientName:  name,
		Amount:         decimal.RequireFromString(amount),
		RecipientEmail: email,
	}
}

func TestSubmitGiftCardOrder_SingleCardScenario(t *testing.T) {
	f := newFulfillmentFixture()

	order, err := f.service.SubmitGiftCardOrder(context.Background(),
		[]structs.GiftCardRequest{card("Jean Dupont", "50", "")},
		structs.BuyerInfo{Name: "Claire", Email: "buyer@example.com", NotifyBuyer: true},
		tables.OrderStatusPending,
	)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.NotEmpty(t, order.Id)
	assert.Equal(t, tables.OrderStatusPending, order.Status)

	require.Len(t, f.store.created, 1)
	lines := f.store.created[0].Lines
	require.Len(t, lines, 1)
	assert.Regexp(t, cardIdPattern, lines[0].GiftCardId)
	assert.Contains(t, lines[0].GiftCardId, "-JeanDupont-50-20260307-09-05-")
	assert.True(t, order.Total.Equal(decimal.NewFromInt(50)))

	seller := f.mailer.to("seller@example.com")
	require.Len(t, seller, 1)
	require.Len(t, seller[0].Attachments, 1)
	assert.Equal(t, "CarteCadeau_50EUR_Jean_Dupont.pdf", seller[0].Attachments[0].Filename)
	assert.Equal(t, documents.ContentTypePDF, seller[0].Attachments[0].ContentType)

	buyer := f.mailer.to("buyer@example.com")
	require.Len(t, buyer, 1)
	assert.Equal(t, seller[0].Attachments, buyer[0].Attachments)

	assert.Len(t, f.mailer.sent, 2)
}

func TestSubmitGiftCardOrder_BuyerNotNotifiedWithoutFlag(t *testing.T) {
	f := newFulfillmentFixture()

	_, err := f.service.SubmitGiftCardOrder(context.Background(),
		[]structs.GiftCardRequest{card("Jean", "20", "")},
		structs.BuyerInfo{Name: "Claire", Email: "buyer@example.com"},
		tables.OrderStatusPending,
	)
	require.NoError(t, err)

	assert.Empty(t, f.mailer.to("buyer@example.com"))
	assert.Len(t, f.mailer.to("seller@example.com"), 1)
}

func TestSubmitGiftCardOrder_ValidationRejectsWholeBatch(t *testing.T) {
	tests := []struct {
		name    string
		cards   []structs.GiftCardRequest
		buyer   structs.BuyerInfo
		field   string
		message string
	}{
		{
			name:    "empty recipient",
			cards:   []structs.GiftCardRequest{card("Jean", "50", ""), card("", "30", "")},
			field:   "cartes[1].destinataire",
			message: "destinataire",
		},
		{
			name:    "blank recipient",
			cards:   []structs.GiftCardRequest{card("   ", "50", "")},
			field:   "cartes[0].destinataire",
			message: "destinataire",
		},
		{
			name:    "recipient name too long",
			cards:   []structs.GiftCardRequest{card("Jean", "50", ""), card(strings.Repeat("A", 200), "50", "")},
			field:   "cartes[1].destinataire",
			message: "50 caractères",
		},
		{
			name:    "recipient name one rune over",
			cards:   []structs.GiftCardRequest{card(strings.Repeat("é", 51), "50", "")},
			field:   "cartes[0].destinataire",
			message: "carte 1",
		},
		{
			name:    "below minimum",
			cards:   []structs.GiftCardRequest{card("Jean", "9.99", "")},
			field:   "cartes[0].montant",
			message: "10.00 €",
		},
		{
			name:    "below minimum after valid cards",
			cards:   []structs.GiftCardRequest{card("Jean", "50", ""), card("Marie", "25", ""), card("Paul", "5", "")},
			field:   "cartes[2].montant",
			message: "Paul",
		},
		{
			name:    "malformed recipient email",
			cards:   []structs.GiftCardRequest{card("Jean", "50", "not-an-email")},
			field:   "cartes[0].emailDestinataire",
			message: "Jean",
		},
		{
			name:  "malformed buyer email",
			cards: []structs.GiftCardRequest{card("Jean", "50", "")},
			buyer: structs.BuyerInfo{Email: "nope"},
			field: "emailAcheteur",
		},
		{
			name:  "no cards",
			cards: nil,
			field: "cartes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFulfillmentFixture()

			order, err := f.service.SubmitGiftCardOrder(context.Background(), tt.cards, tt.buyer, tables.OrderStatusPending)
			assert.Nil(t, order)

			var ve *lib.ValidationError
			require.ErrorAs(t, err, &ve)
			require.Len(t, ve.Errors, 1)
			assert.Equal(t, tt.field, ve.Errors[0].Field)
			assert.Contains(t, ve.Error(), tt.message)

			assert.Empty(t, f.store.created)
			assert.Empty(t, f.renderer.calls)
			assert.Empty(t, f.mailer.sent)
		})
	}
}

func TestSubmitGiftCardOrder_AcceptsNameAtLengthLimit(t *testing.T) {
	f := newFulfillmentFixture()

	name := strings.Repeat("é", 50)
	order, err := f.service.SubmitGiftCardOrder(context.Background(),
		[]structs.GiftCardRequest{card("  "+name+"  ", "50", "")}, structs.BuyerInfo{}, tables.OrderStatusPending)
	require.NoError(t, err)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, name, order.Lines[0].RecipientName)
}

func TestSubmitGiftCardOrder_OrderDateMatchesPrintedDate(t *testing.T) {
	f := newFulfillmentFixture()
	issuedAt := time.Date(2026, 3, 7, 9, 5, 59, 900, time.Local)
	f.service.now = func() time.Time { return issuedAt }

	order, err := f.service.SubmitGiftCardOrder(context.Background(),
		[]structs.GiftCardRequest{card("Jean Dupont", "50", "")}, structs.BuyerInfo{}, tables.OrderStatusPending)
	require.NoError(t, err)

	assert.True(t, order.CreatedAt.Equal(issuedAt))
	require.Len(t, f.renderer.calls, 1)
	assert.True(t, f.renderer.calls[0].IssuedAt.Equal(order.CreatedAt))
	assert.Contains(t, order.Lines[0].GiftCardId, "-20260307-09-05-")
}

func TestSubmitGiftCardOrder_ToleratesOneRenderFailure(t *testing.T) {
	f := newFulfillmentFixture()
	f.renderer.failFn = func(doc documents.GiftCardDocument) bool { return doc.Recipient == "Marie" }

	order, err := f.service.SubmitGiftCardOrder(context.Background(),
		[]structs.GiftCardRequest{
			card("Jean", "50", "jean@example.com"),
			card("Marie", "30", "marie@example.com"),
			card("Paul", "20", ""),
		},
		structs.BuyerInfo{Name: "Claire", Email: "buyer@example.com", NotifyBuyer: true},
		tables.OrderStatusPending,
	)
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Len(t, f.renderer.calls, 3)

	seller := f.mailer.to("seller@example.com")
	require.Len(t, seller, 1)
	assert.Len(t, seller[0].Attachments, 2)

	assert.Len(t, f.mailer.to("jean@example.com"), 1)
	assert.Empty(t, f.mailer.to("marie@example.com"))
}

func TestSubmitGiftCardOrder_RecipientsGetOnlyTheirCard(t *testing.T) {
	f := newFulfillmentFixture()

	_, err := f.service.SubmitGiftCardOrder(context.Background(),
		[]structs.GiftCardRequest{
			card("Jean", "50", "jean@example.com"),
			card("Marie", "30", "marie@example.com"),
		},
		structs.BuyerInfo{Name: "Claire"},
		tables.OrderStatusPaid,
	)
	require.NoError(t, err)

	jean := f.mailer.to("jean@example.com")
	require.Len(t, jean, 1)
	require.Len(t, jean[0].Attachments, 1)
	assert.Equal(t, "CarteCadeau_50EUR_Jean.pdf", jean[0].Attachments[0].Filename)

	marie := f.mailer.to("marie@example.com")
	require.Len(t, marie, 1)
	require.Len(t, marie[0].Attachments, 1)
	assert.Equal(t, "CarteCadeau_30EUR_Marie.pdf", marie[0].Attachments[0].Filename)

	assert.Equal(t, tables.OrderStatusPaid, f.store.created[0].Status)
}

func TestSubmitGiftCardOrder_EmailFailuresDoNotFailTheOrder(t *testing.T) {
	f := newFulfillmentFixture()
	f.mailer.failFn = func(email *Email) bool { return email.To[0] == "seller@example.com" }

	order, err := f.service.SubmitGiftCardOrder(context.Background(),
		[]structs.GiftCardRequest{card("Jean", "50", "jean@example.com")},
		structs.BuyerInfo{Email: "buyer@example.com", NotifyBuyer: true},
		tables.OrderStatusPending,
	)
	require.NoError(t, err)
	assert.NotNil(t, order)

	assert.Len(t, f.mailer.failed, 1)
	assert.Len(t, f.mailer.to("buyer@example.com"), 1)
	assert.Len(t, f.mailer.to("jean@example.com"), 1)
}

func TestSubmitGiftCardOrder_PersistenceFailure(t *testing.T) {
	f := newFulfillmentFixture()
	f.store.createFn = func(*tables.Order, []*tables.OrderLine) error { return errors.New("connection reset") }

	order, err := f.service.SubmitGiftCardOrder(context.Background(),
		[]structs.GiftCardRequest{card("Jean", "50", "")},
		structs.BuyerInfo{},
		tables.OrderStatusPending,
	)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Empty(t, f.renderer.calls)
	assert.Empty(t, f.mailer.sent)
}

func TestSubmitGiftCardOrder_RegeneratesCollidingIds(t *testing.T) {
	f := newFulfillmentFixture()
	seen := 0
	f.store.existsFn = func(string) (bool, error) {
		seen++
		return seen == 1, nil
	}

	_, err := f.service.SubmitGiftCardOrder(context.Background(),
		[]structs.GiftCardRequest{card("Jean", "50", "")},
		structs.BuyerInfo{},
		tables.OrderStatusPending,
	)
	require.NoError(t, err)
	assert.Equal(t, 2, seen)
	assert.Regexp(t, cardIdPattern, f.store.created[0].Lines[0].GiftCardId)
}

func TestSubmitGiftCardOrder_LastRegeneratedIdIsChecked(t *testing.T) {
	f := newFulfillmentFixture()
	var checked []string
	f.store.existsFn = func(cardId string) (bool, error) {
		checked = append(checked, cardId)
		return len(checked) <= cardIdAttempts, nil
	}

	_, err := f.service.SubmitGiftCardOrder(context.Background(),
		[]structs.GiftCardRequest{card("Jean", "50", "")},
		structs.BuyerInfo{},
		tables.OrderStatusPending,
	)
	require.NoError(t, err)
	require.Len(t, checked, cardIdAttempts+1)
	assert.Equal(t, checked[len(checked)-1], f.store.created[0].Lines[0].GiftCardId)
}

func TestSubmitGiftCardOrder_NotIdempotent(t *testing.T) {
	f := newFulfillmentFixture()
	cards := []structs.GiftCardRequest{card("Jean", "50", "")}

	first, err := f.service.SubmitGiftCardOrder(context.Background(), cards, structs.BuyerInfo{}, tables.OrderStatusPending)
	require.NoError(t, err)
	second, err := f.service.SubmitGiftCardOrder(context.Background(), cards, structs.BuyerInfo{}, tables.OrderStatusPending)
	require.NoError(t, err)

	assert.NotEqual(t, first.Id, second.Id)
	require.Len(t, f.store.created, 2)
}

func TestSubmitGiftCardOrder_DefaultsModes(t *testing.T) {
	f := newFulfillmentFixture()

	order, err := f.service.SubmitGiftCardOrder(context.Background(),
		[]structs.GiftCardRequest{card("Jean", "12.345", "")},
		structs.BuyerInfo{},
		tables.OrderStatusPaid,
	)
	require.NoError(t, err)

	assert.Equal(t, tables.DeliveryModePickup, order.DeliveryMode)
	assert.Equal(t, tables.PaymentModeInStore, order.PaymentMode)
	assert.True(t, order.ShippingFee.IsZero())
	assert.Equal(t, "12.35", order.Lines[0].UnitPrice.StringFixed(2))
	assert.True(t, order.Lines[0].IsGiftCard())
}
