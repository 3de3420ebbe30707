package statement

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Snapshot identifies which balance-sheet snapshot a precondition
// failure refers to.
type Snapshot string

const (
	SnapshotStart Snapshot = "start"
	SnapshotEnd   Snapshot = "end"
)

// UnbalancedSheetError is returned when a balance-sheet snapshot does
// not satisfy assets == liabilities + equity within tolerance.
//
// Derivation never proceeds on an unbalanced sheet; the error carries
// both sums and their delta so callers can report exactly how far off
// the snapshot is.
type UnbalancedSheetError struct {
	Snapshot             Snapshot
	Assets               decimal.Decimal
	LiabilitiesAndEquity decimal.Decimal
	Delta                decimal.Decimal
	Tolerance            decimal.Decimal
}

func (e *UnbalancedSheetError) Error() string {
	return fmt.Sprintf("%s balance sheet does not balance: assets %s, liabilities and equity %s (delta %s, tolerance %s)",
		e.Snapshot, e.Assets, e.LiabilitiesAndEquity, e.Delta, e.Tolerance)
}

// NewUnbalancedSheetError creates an error for a snapshot whose sides
// differ by more than the tolerance.
func NewUnbalancedSheetError(snapshot Snapshot, assets, liabilitiesAndEquity, tolerance decimal.Decimal) *UnbalancedSheetError {
	return &UnbalancedSheetError{
		Snapshot:             snapshot,
		Assets:               assets,
		LiabilitiesAndEquity: liabilitiesAndEquity,
		Delta:                assets.Sub(liabilitiesAndEquity),
		Tolerance:            tolerance,
	}
}

// MissingCashError is returned when a snapshot has no cash_equivalents
// line item. Beginning and ending cash come straight from the
// snapshots, so a missing cash line makes reconciliation impossible.
type MissingCashError struct {
	Snapshot Snapshot
}

func (e *MissingCashError) Error() string {
	return fmt.Sprintf("%s balance sheet has no %s line item", e.Snapshot, CashEquivalents)
}

// NewMissingCashError creates an error for a snapshot without a cash
// line item.
func NewMissingCashError(snapshot Snapshot) *MissingCashError {
	return &MissingCashError{Snapshot: snapshot}
}

// UnknownCategoryError is returned when an upstream system_category
// string does not name any category in the taxonomy. It only occurs at
// the ingestion boundary; once parsed, category values are closed and
// total.
type UnknownCategoryError struct {
	Name string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown account category %q", e.Name)
}
