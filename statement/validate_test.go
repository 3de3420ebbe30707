package statement

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"
)

// dec parses a decimal literal for test fixtures.
func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// li builds one mapped line item.
func li(category AccountCategory, amount string) MappedLineItem {
	return MappedLineItem{Category: category, Amount: dec(amount)}
}

// balancedSheet is a minimal snapshot whose sides agree exactly.
func balancedSheet(cash string) []MappedLineItem {
	return []MappedLineItem{
		li(CashEquivalents, cash),
		li(AccountsReceivable, "500"),
		li(CommonStock, cash),
		li(RetainedEarnings, "500"),
	}
}

// TestValidator_BalancedSheetPasses verifies a snapshot whose assets
// equal liabilities plus equity validates cleanly.
func TestValidator_BalancedSheetPasses(t *testing.T) {
	v := NewValidator(NewRegistry(), DefaultTolerance)

	assert.NoError(t, v.Validate(SnapshotStart, balancedSheet("1000")))
}

// TestValidator_UnbalancedSheetFails verifies the error carries both
// sums and the delta.
func TestValidator_UnbalancedSheetFails(t *testing.T) {
	v := NewValidator(NewRegistry(), DefaultTolerance)

	sheet := []MappedLineItem{
		li(CashEquivalents, "1000"),
		li(CommonStock, "900"),
	}
	err := v.Validate(SnapshotEnd, sheet)

	var unbalancedErr *UnbalancedSheetError
	assert.True(t, errors.As(err, &unbalancedErr))
	assert.Equal(t, unbalancedErr.Snapshot, SnapshotEnd)
	assert.True(t, unbalancedErr.Assets.Equal(dec("1000")))
	assert.True(t, unbalancedErr.LiabilitiesAndEquity.Equal(dec("900")))
	assert.True(t, unbalancedErr.Delta.Equal(dec("100")))
}

// TestValidator_ToleranceBoundary verifies a difference of exactly the
// epsilon passes and anything beyond it fails.
func TestValidator_ToleranceBoundary(t *testing.T) {
	v := NewValidator(NewRegistry(), DefaultTolerance)

	within := []MappedLineItem{
		li(CashEquivalents, "1000.01"),
		li(CommonStock, "1000"),
	}
	assert.NoError(t, v.Validate(SnapshotStart, within))

	beyond := []MappedLineItem{
		li(CashEquivalents, "1000.02"),
		li(CommonStock, "1000"),
	}
	assert.Error(t, v.Validate(SnapshotStart, beyond))
}

// TestValidator_ContraAssetsReduceAssets verifies accumulated
// depreciation carried as a negative asset value balances against a
// correspondingly smaller equity side.
func TestValidator_ContraAssetsReduceAssets(t *testing.T) {
	v := NewValidator(NewRegistry(), DefaultTolerance)

	sheet := []MappedLineItem{
		li(CashEquivalents, "1000"),
		li(PPEGross, "5000"),
		li(AccumulatedDepreciation, "-1500"),
		li(CommonStock, "4500"),
	}
	assert.NoError(t, v.Validate(SnapshotStart, sheet))
}

// TestValidator_MissingCashFailsBeforeBalanceCheck verifies a snapshot
// without a cash line is rejected with the snapshot identified, even
// when both sheets balance.
func TestValidator_MissingCashFailsBeforeBalanceCheck(t *testing.T) {
	v := NewValidator(NewRegistry(), DefaultTolerance)

	noCash := []MappedLineItem{
		li(AccountsReceivable, "1000"),
		li(CommonStock, "1000"),
	}

	period := &PeriodFinancials{
		StartBalanceSheet: noCash,
		EndBalanceSheet:   balancedSheet("1000"),
	}
	var missingErr *MissingCashError
	assert.True(t, errors.As(v.ValidatePeriod(period), &missingErr))
	assert.Equal(t, missingErr.Snapshot, SnapshotStart)

	period = &PeriodFinancials{
		StartBalanceSheet: balancedSheet("1000"),
		EndBalanceSheet:   noCash,
	}
	assert.True(t, errors.As(v.ValidatePeriod(period), &missingErr))
	assert.Equal(t, missingErr.Snapshot, SnapshotEnd)
}

// TestValidator_DuplicateCategoriesAreSummed verifies repeated
// categories accumulate instead of shadowing each other.
func TestValidator_DuplicateCategoriesAreSummed(t *testing.T) {
	v := NewValidator(NewRegistry(), DefaultTolerance)

	sheet := []MappedLineItem{
		li(CashEquivalents, "400"),
		li(CashEquivalents, "600"),
		li(CommonStock, "1000"),
	}
	assert.NoError(t, v.Validate(SnapshotStart, sheet))
}
