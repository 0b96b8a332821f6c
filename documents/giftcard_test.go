package documents

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGiftCardFilename(t *testing.T) {
	tests := []struct {
		name      string
		recipient string
		amount    decimal.Decimal
		want      string
	}{
		{"simple", "Jean Dupont", decimal.NewFromInt(50), "CarteCadeau_50EUR_Jean_Dupont.pdf"},
		{"decimal amount", "Marie", decimal.RequireFromString("25.50"), "CarteCadeau_25.5EUR_Marie.pdf"},
		{"extra spaces", "  Anne   Marie  ", decimal.NewFromInt(30), "CarteCadeau_30EUR_Anne_Marie.pdf"},
		{"unsafe characters", "Paul / \"Pierre\"", decimal.NewFromInt(40), "CarteCadeau_40EUR_Paul__Pierre.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GiftCardFilename(tt.recipient, tt.amount))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "50.00 €", FormatAmount(decimal.NewFromInt(50), "€"))
	assert.Equal(t, "9.99 €", FormatAmount(decimal.RequireFromString("9.99"), "€"))
}

func TestRenderGiftCard_OnePagePerCode(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, dir, "logo.png", pngBytes(t, 40, 20))
	r := testRenderer(t, dir)

	doc := GiftCardDocument{
		Recipient: "Jean Dupont",
		Amount:    decimal.NewFromInt(50),
		Codes:     []string{"CarteCadeau-JeanDupont-50-20260307-09-05-AB12", "CarteCadeau-JeanDupont-50-20260307-09-05-CD34", "CarteCadeau-JeanDupont-50-20260307-09-05-EF56"},
		IssuedAt:  time.Date(2026, 3, 7, 9, 5, 0, 0, time.UTC),
	}

	out, err := r.RenderGiftCard(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, 3, out.Pages)
	assert.Equal(t, ContentTypePDF, out.ContentType)
	assert.Equal(t, "CarteCadeau_50EUR_Jean_Dupont.pdf", out.Filename)
	assert.True(t, bytes.HasPrefix(out.Content, []byte("%PDF")))

	for _, code := range doc.Codes {
		assert.Contains(t, string(out.Content), code)
	}
	assert.Contains(t, string(out.Content), "CARTE CADEAU")
	assert.Contains(t, string(out.Content), "50.00")
	assert.Contains(t, string(out.Content), "Carte 2 / 3")
	assert.Contains(t, string(out.Content), "/Image")
}

func TestRenderGiftCard_SingleCardHasNoCounter(t *testing.T) {
	r := testRenderer(t, t.TempDir())

	out, err := r.RenderGiftCard(context.Background(), GiftCardDocument{
		Recipient: "Marie",
		Amount:    decimal.NewFromInt(20),
		Codes:     []string{"CarteCadeau-Marie-20-20260307-09-05-ZZ99"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, out.Pages)
	assert.NotContains(t, string(out.Content), "Carte 1 / 1")
}

func TestRenderGiftCard_MissingLogoFallsBackToName(t *testing.T) {
	r := testRenderer(t, t.TempDir())

	out, err := r.RenderGiftCard(context.Background(), GiftCardDocument{
		Recipient: "Marie",
		Amount:    decimal.NewFromInt(20),
		Codes:     []string{"CarteCadeau-Marie-20-20260307-09-05-ZZ99"},
	})
	require.NoError(t, err)

	assert.Contains(t, string(out.Content), "La Cave du Vigneron")
	assert.NotContains(t, string(out.Content), "/Subtype /Image")
}

func TestRenderGiftCard_RequiresCodes(t *testing.T) {
	r := testRenderer(t, t.TempDir())

	_, err := r.RenderGiftCard(context.Background(), GiftCardDocument{Recipient: "Marie", Amount: decimal.NewFromInt(20)})
	assert.Error(t, err)
}
