package statement

import "github.com/shopspring/decimal"

// CashFlowLineResult is one line of a derived statement. Amount is a
// presentation-ready signed value: positive means cash inflow.
type CashFlowLineResult struct {
	// Category is the mapped category the line came from, or
	// CategoryNone for derived lines (net income, dividends).
	Category AccountCategory

	Label            string
	Amount           decimal.Decimal
	IsNonCashAddBack bool
}

// CashFlowSection is one activity section of the statement.
type CashFlowSection struct {
	Kind     Bucket
	Items    []CashFlowLineResult
	Subtotal decimal.Decimal
}

// ReconciliationResult compares computed against reported ending cash.
// The discrepancy is always reported, never hidden: a non-zero value
// signals incomplete or miscategorized input data, not a failure of
// the derivation itself.
type ReconciliationResult struct {
	Discrepancy     decimal.Decimal
	WithinTolerance bool
}

// CashFlowStatement is the derived indirect-method statement for one
// period. All entities are built in one pass per request and never
// mutated afterwards.
type CashFlowStatement struct {
	BeginningCash decimal.Decimal

	Operating CashFlowSection
	Investing CashFlowSection
	Financing CashFlowSection

	NetChange          decimal.Decimal
	EndingCashComputed decimal.Decimal
	EndingCashReported decimal.Decimal

	// DerivedDividendsPaid is the retained-earnings plug: the part of
	// the retained-earnings movement not explained by net income. It is
	// an estimate, not an observation; prior-period restatements or
	// other equity transactions land here too.
	DerivedDividendsPaid decimal.Decimal

	Reconciliation ReconciliationResult
}
