package statement

import "github.com/shopspring/decimal"

// Reconcile compares the computed ending cash against the reported
// balance-sheet figure. A discrepancy outside tolerance does not abort
// anything; the statement is still returned with the discrepancy
// surfaced so the caller can flag the period's inputs as suspect.
func Reconcile(computed, reported, tolerance decimal.Decimal) ReconciliationResult {
	discrepancy := reported.Sub(computed)
	return ReconciliationResult{
		Discrepancy:     discrepancy,
		WithinTolerance: discrepancy.Abs().LessThanOrEqual(tolerance),
	}
}
