package statement

import "github.com/shopspring/decimal"

// Validator checks that balance-sheet snapshots are internally
// consistent before any derivation runs. Validation is a hard
// precondition: the engine never derives a statement from an
// unbalanced snapshot.
type Validator struct {
	registry  *Registry
	tolerance decimal.Decimal
}

// NewValidator creates a validator over the given registry with the
// given balance epsilon. Use DefaultTolerance unless the caller has a
// reason to widen or tighten it.
func NewValidator(registry *Registry, tolerance decimal.Decimal) *Validator {
	return &Validator{
		registry:  registry,
		tolerance: tolerance,
	}
}

// Tolerance returns the epsilon used for balance checks. Reconciliation
// uses the same value so "balanced" and "reconciled" mean the same
// thing numerically.
func (v *Validator) Tolerance() decimal.Decimal {
	return v.tolerance
}

// Validate checks a single snapshot: every position amount is summed
// into its side of the balance-sheet identity and the two sides must
// agree within tolerance. Contra-asset amounts (accumulated
// depreciation and amortization) are carried as negative asset values,
// so plain summation handles them.
func (v *Validator) Validate(snapshot Snapshot, balanceSheet []MappedLineItem) error {
	assets := decimal.Zero
	liabilitiesAndEquity := decimal.Zero

	for _, item := range balanceSheet {
		switch v.registry.SideOf(item.Category) {
		case SideAssets:
			assets = assets.Add(item.Amount)
		case SideLiabilitiesAndEquity:
			liabilitiesAndEquity = liabilitiesAndEquity.Add(item.Amount)
		}
	}

	if !AmountEqual(assets, liabilitiesAndEquity, v.tolerance) {
		return NewUnbalancedSheetError(snapshot, assets, liabilitiesAndEquity, v.tolerance)
	}

	return nil
}

// ValidatePeriod runs the precondition checks for a full period: both
// snapshots must balance and both must carry a cash line item. Errors
// identify which snapshot and which check failed.
func (v *Validator) ValidatePeriod(period *PeriodFinancials) error {
	if !hasCategory(period.StartBalanceSheet, CashEquivalents) {
		return NewMissingCashError(SnapshotStart)
	}
	if !hasCategory(period.EndBalanceSheet, CashEquivalents) {
		return NewMissingCashError(SnapshotEnd)
	}

	if err := v.Validate(SnapshotStart, period.StartBalanceSheet); err != nil {
		return err
	}
	if err := v.Validate(SnapshotEnd, period.EndBalanceSheet); err != nil {
		return err
	}

	return nil
}
