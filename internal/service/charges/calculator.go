// Package charges derives the financial payload of a storage invoice
// from its raw rate/quantity inputs. All arithmetic is exact decimal;
// float drift is not acceptable for currency fields that end up on a
// printed invoice.
package charges

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bmscold/slipdesk/internal/domain/models"
)

// Compute re-derives every output field of the breakdown from its eight
// leaf inputs. It is total: any unparseable input counts as zero, so a
// half-filled form still produces sensible zeros instead of an error.
// The returned value is the only legitimate source of both the live
// preview and the submitted payload.
func Compute(b models.ChargeBreakdown) models.ChargeBreakdown {
	storage := parseAmount(b.Storage.MonthlyRate).Mul(parseAmount(b.Storage.Quantity))
	hamali := parseAmount(b.Hamali.MonthlyRate).Mul(parseAmount(b.Hamali.Quantity))
	other := parseAmount(b.Other.MonthlyRate).Mul(parseAmount(b.Other.Quantity))

	// The off-season monthly rate is never direct input; it is always
	// the sum of the two named months' rates.
	offSeasonRate := parseAmount(b.OffSeason.JanuaryRate).Add(parseAmount(b.OffSeason.FebruaryRate))
	offSeason := offSeasonRate.Mul(parseAmount(b.OffSeason.Quantity))

	grandTotal := storage.Add(hamali).Add(offSeason).Add(other)

	b.OffSeasonMonthlyRate = offSeasonRate.String()
	b.StorageAmount = storage.String()
	b.HamaliAmount = hamali.String()
	b.OffSeasonAmount = offSeason.String()
	b.OtherAmount = other.String()
	b.GrandTotal = grandTotal.String()
	b.AmountInWords = grandTotalInWords(grandTotal)

	return b
}

func grandTotalInWords(total decimal.Decimal) string {
	if total.IsZero() {
		return "Zero Only"
	}
	// Amounts are whole rupees in this domain; paise are out of scope.
	return AmountInWords(total.IntPart()) + " Only"
}

// parseAmount reads a form value as a decimal. Blank and malformed
// values become zero so the calculator stays total over partial forms.
func parseAmount(v string) decimal.Decimal {
	v = strings.TrimSpace(v)
	if v == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}
