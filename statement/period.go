package statement

import "github.com/shopspring/decimal"

// MappedLineItem is one already-mapped account row: a canonical
// category and its amount. The upstream mapping step translated raw
// chart-of-accounts rows into categories before the engine sees them.
type MappedLineItem struct {
	Category AccountCategory
	Amount   decimal.Decimal
}

// PeriodFinancials is the full input for one reporting period: the
// profit-and-loss lines and the balance sheets at period start and
// period end. It is treated as immutable once submitted; Derive never
// modifies it.
type PeriodFinancials struct {
	ProfitAndLoss     []MappedLineItem
	StartBalanceSheet []MappedLineItem
	EndBalanceSheet   []MappedLineItem
}

// amountOf sums every line carrying the category. Categories may
// legitimately appear more than once (e.g. two mapped accounts landing
// on expense_other), so totals are accumulated rather than first-match.
func amountOf(items []MappedLineItem, category AccountCategory) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.Category == category {
			total = total.Add(item.Amount)
		}
	}
	return total
}

// hasCategory reports whether any line carries the category.
func hasCategory(items []MappedLineItem, category AccountCategory) bool {
	for _, item := range items {
		if item.Category == category {
			return true
		}
	}
	return false
}
