package loader

import (
	"context"
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/cashflow/statement"
)

// TestLoader_Load verifies a period file decodes into typed line items
// with row order preserved.
func TestLoader_Load(t *testing.T) {
	period, err := New().Load(context.Background(), "testdata/period.json")
	assert.NoError(t, err)

	assert.Equal(t, len(period.ProfitAndLoss), 8)
	assert.Equal(t, len(period.StartBalanceSheet), 14)
	assert.Equal(t, len(period.EndBalanceSheet), 16)

	assert.Equal(t, period.ProfitAndLoss[0].Category, statement.RevenueSales)
	assert.True(t, period.ProfitAndLoss[0].Amount.Equal(decimal.NewFromInt(130000)))

	assert.Equal(t, period.StartBalanceSheet[0].Category, statement.CashEquivalents)
	assert.True(t, period.StartBalanceSheet[0].Amount.Equal(decimal.NewFromInt(10000)))

	// Contra-assets decode as negative amounts.
	assert.Equal(t, period.EndBalanceSheet[5].Category, statement.AccumulatedDepreciation)
	assert.True(t, period.EndBalanceSheet[5].Amount.Equal(decimal.NewFromInt(-2000)))
}

// TestLoader_LoadedPeriodDerives verifies the fixture period survives
// the full pipeline: validation, classification, and a clean
// reconciliation.
func TestLoader_LoadedPeriodDerives(t *testing.T) {
	period, err := New().Load(context.Background(), "testdata/period.json")
	assert.NoError(t, err)

	engine := statement.NewEngine(statement.NewRegistry())
	derived, err := engine.Derive(context.Background(), period)
	assert.NoError(t, err)

	assert.True(t, derived.NetChange.Equal(decimal.NewFromInt(15650)))
	assert.True(t, derived.Reconciliation.WithinTolerance)
}

// TestLoader_LoadMissingFile verifies a missing file reports the
// filename.
func TestLoader_LoadMissingFile(t *testing.T) {
	_, err := New().Load(context.Background(), "testdata/nope.json")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "testdata/nope.json")
}

// TestLoader_ParseDecimalPrecision verifies fractional values decode
// exactly instead of through a float.
func TestLoader_ParseDecimalPrecision(t *testing.T) {
	period, err := New().Parse([]byte(`{
		"profit_loss": [{"system_category": "revenue_sales", "value": 0.1}]
	}`))
	assert.NoError(t, err)
	assert.Equal(t, period.ProfitAndLoss[0].Amount.String(), "0.1")
}

// TestLoader_ParseUnknownCategory verifies unknown categories fail
// with the section, row index, and offending name.
func TestLoader_ParseUnknownCategory(t *testing.T) {
	_, err := New().Parse([]byte(`{
		"start_balance_sheet": [
			{"system_category": "cash_equivalents", "value": 100},
			{"system_category": "petty_cash", "value": 5}
		]
	}`))

	var unknownErr *statement.UnknownCategoryError
	assert.True(t, errors.As(err, &unknownErr))
	assert.Equal(t, unknownErr.Name, "petty_cash")
	assert.Contains(t, err.Error(), "start_balance_sheet[1]")
}

// TestLoader_IgnoreUnknownDropsRows verifies the opt-in lenient mode
// keeps known rows and drops the rest.
func TestLoader_IgnoreUnknownDropsRows(t *testing.T) {
	period, err := New(WithIgnoreUnknown()).Parse([]byte(`{
		"start_balance_sheet": [
			{"system_category": "cash_equivalents", "value": 100},
			{"system_category": "petty_cash", "value": 5}
		]
	}`))
	assert.NoError(t, err)
	assert.Equal(t, len(period.StartBalanceSheet), 1)
	assert.Equal(t, period.StartBalanceSheet[0].Category, statement.CashEquivalents)
}

// TestLoader_ParseInvalidJSON verifies malformed documents fail
// decoding with context.
func TestLoader_ParseInvalidJSON(t *testing.T) {
	_, err := New().Parse([]byte(`{"profit_loss": [`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid period document")
}

// TestLoader_LoadFactors verifies the factor table decodes and keys by
// category and season.
func TestLoader_LoadFactors(t *testing.T) {
	factors, err := New().LoadFactors("testdata/factors.json")
	assert.NoError(t, err)

	assert.Equal(t, factors.Seasons(), []string{"Q1", "Q4"})

	line := statement.CashFlowLineResult{
		Category: statement.RevenueSales,
		Amount:   decimal.NewFromInt(1000),
	}
	adjusted := factors.Adjust(line, "Q4")
	assert.True(t, adjusted.Applied)
	assert.True(t, adjusted.AdjustedAmount.Equal(decimal.NewFromInt(1250)))
}

// TestLoader_ParseFactorsUnknownCategory verifies factor rows go
// through the same taxonomy boundary as period rows.
func TestLoader_ParseFactorsUnknownCategory(t *testing.T) {
	_, err := New().ParseFactors([]byte(`{
		"factors": [{"system_category": "petty_cash", "season": "Q1", "factor": 1.2}]
	}`))

	var unknownErr *statement.UnknownCategoryError
	assert.True(t, errors.As(err, &unknownErr))
	assert.Contains(t, err.Error(), "factors[0]")
}
