package statement

import "github.com/shopspring/decimal"

// DefaultTolerance is the epsilon used for balance validation and
// reconciliation when none is configured: one cent, enough to absorb
// rounding in upstream data without hiding real discrepancies.
var DefaultTolerance = decimal.New(1, -2) // 0.01

// AmountEqual checks whether two amounts are equal within tolerance.
func AmountEqual(a, b, tolerance decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(tolerance)
}

// sum adds amounts without rounding; aggregation stays exact and any
// rounding happens only at presentation.
func sum(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
