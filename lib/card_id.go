package lib

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const cardIdSuffixLength = 4

// GenerateCardId builds the printed identifier of one gift card:
// CarteCadeau-{name}-{amount}-{YYYYMMDD}-{HH}-{MM}-{suffix}.
// The name keeps only ASCII letters and digits and the amount is floored.
func GenerateCardId(recipientName string, amount decimal.Decimal) string {
	return GenerateCardIdAt(recipientName, amount, time.Now())
}

// GenerateCardIdAt is GenerateCardId with an explicit issue time.
func GenerateCardIdAt(recipientName string, amount decimal.Decimal, now time.Time) string {
	return fmt.Sprintf("CarteCadeau-%s-%d-%s-%s-%s-%s",
		SanitizeCardName(recipientName),
		amount.Floor().IntPart(),
		now.Format("20060102"),
		now.Format("15"),
		now.Format("04"),
		RandomAlnum(cardIdSuffixLength),
	)
}

// SanitizeCardName strips everything but ASCII letters and digits.
func SanitizeCardName(name string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, name)
}
