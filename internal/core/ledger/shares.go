package ledger

import (
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// EvenShares divides total evenly across n participants, returning amounts
// aligned with the caller's participant order. Each share is rounded down to
// 2 decimal places and the rounding remainder is assigned to the first
// participant, so the shares always sum to the total exactly.
func EvenShares(total decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	count := decimal.NewFromInt(int64(n))
	base := total.Div(count).RoundDown(2)

	shares := make([]decimal.Decimal, n)
	for i := range shares {
		shares[i] = base
	}
	remainder := total.Sub(base.Mul(count))
	shares[0] = shares[0].Add(remainder)
	return shares
}

// CustomShares computes percentage-based shares of total, aligned with the
// order of percentages. Every share but the last is rounded to 2 decimal
// places; the last participant absorbs the residue so the shares sum to the
// total to the cent even when percentages like 33.33/33.33/33.34 produce
// fractional cents.
//
// Percentages are assumed to be pre-validated (summing to 100 within
// tolerance) by the split-entry layer.
func CustomShares(total decimal.Decimal, percentages []decimal.Decimal) []decimal.Decimal {
	if len(percentages) == 0 {
		return nil
	}
	shares := make([]decimal.Decimal, len(percentages))
	allocated := decimal.Zero
	for i, pct := range percentages[:len(percentages)-1] {
		shares[i] = total.Mul(pct).Div(oneHundred).Round(2)
		allocated = allocated.Add(shares[i])
	}
	shares[len(shares)-1] = total.Sub(allocated)
	return shares
}
