package statement

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

// classifyPeriod runs the classifier over a period built from the
// given lines.
func classifyPeriod(t *testing.T, period *PeriodFinancials) *ClassifiedLines {
	t.Helper()
	return NewClassifier(NewRegistry()).Classify(period)
}

// TestClassifier_NetIncomeNetsFlows verifies revenues and expenses net
// into a single net-income figure, including the non-cash expenses.
func TestClassifier_NetIncomeNetsFlows(t *testing.T) {
	lines := classifyPeriod(t, &PeriodFinancials{
		ProfitAndLoss: []MappedLineItem{
			li(RevenueSales, "10000"),
			li(CogsMaterial, "4000"),
			li(ExpenseSalaries, "2000"),
			li(DepreciationExpense, "500"),
		},
	})

	assert.True(t, lines.NetIncome.Equal(dec("3500")))
}

// TestClassifier_NonCashExpensesBecomeAddBacks verifies depreciation
// and amortization are recorded as positive add-backs while still
// reducing net income.
func TestClassifier_NonCashExpensesBecomeAddBacks(t *testing.T) {
	lines := classifyPeriod(t, &PeriodFinancials{
		ProfitAndLoss: []MappedLineItem{
			li(RevenueSales, "10000"),
			li(DepreciationExpense, "800"),
			li(AmortizationExpense, "200"),
		},
	})

	assert.True(t, lines.NetIncome.Equal(dec("9000")))
	assert.Equal(t, len(lines.AddBacks), 2)
	assert.Equal(t, lines.AddBacks[0].Category, DepreciationExpense)
	assert.True(t, lines.AddBacks[0].Amount.Equal(dec("800")))
	assert.True(t, lines.AddBacks[0].AddBack)
	assert.Equal(t, lines.AddBacks[1].Category, AmortizationExpense)
	assert.True(t, lines.AddBacks[1].Amount.Equal(dec("200")))
}

// TestClassifier_WorkingCapitalSigns verifies the sign conventions on
// operating position deltas: asset growth uses cash, liability growth
// sources it.
func TestClassifier_WorkingCapitalSigns(t *testing.T) {
	lines := classifyPeriod(t, &PeriodFinancials{
		StartBalanceSheet: []MappedLineItem{
			li(AccountsReceivable, "5000"),
			li(Inventory, "4000"),
			li(AccountsPayable, "3000"),
		},
		EndBalanceSheet: []MappedLineItem{
			li(AccountsReceivable, "8000"), // grew 3000, uses cash
			li(Inventory, "3000"),          // shrank 1000, frees cash
			li(AccountsPayable, "5000"),    // grew 2000, sources cash
		},
	})

	assert.Equal(t, len(lines.WorkingCapital), 3)
	assert.Equal(t, lines.WorkingCapital[0].Category, AccountsReceivable)
	assert.True(t, lines.WorkingCapital[0].Amount.Equal(dec("-3000")))
	assert.Equal(t, lines.WorkingCapital[1].Category, Inventory)
	assert.True(t, lines.WorkingCapital[1].Amount.Equal(dec("1000")))
	assert.Equal(t, lines.WorkingCapital[2].Category, AccountsPayable)
	assert.True(t, lines.WorkingCapital[2].Amount.Equal(dec("2000")))
}

// TestClassifier_InvestingAndFinancingRouting verifies position deltas
// land in their activity buckets with investing signs inverted.
func TestClassifier_InvestingAndFinancingRouting(t *testing.T) {
	lines := classifyPeriod(t, &PeriodFinancials{
		StartBalanceSheet: []MappedLineItem{
			li(PPEGross, "30000"),
			li(LongTermDebt, "10000"),
		},
		EndBalanceSheet: []MappedLineItem{
			li(PPEGross, "38000"),     // purchases, cash out
			li(LongTermDebt, "15000"), // new borrowing, cash in
		},
	})

	assert.Equal(t, len(lines.Investing), 1)
	assert.True(t, lines.Investing[0].Amount.Equal(dec("-8000")))
	assert.Equal(t, len(lines.Financing), 1)
	assert.True(t, lines.Financing[0].Amount.Equal(dec("5000")))
}

// TestClassifier_ZeroDeltasAreOmitted verifies unchanged positions
// produce no statement lines.
func TestClassifier_ZeroDeltasAreOmitted(t *testing.T) {
	sheet := []MappedLineItem{
		li(CashEquivalents, "1000"),
		li(AccountsReceivable, "5000"),
		li(PPEGross, "30000"),
	}
	lines := classifyPeriod(t, &PeriodFinancials{
		StartBalanceSheet: sheet,
		EndBalanceSheet:   sheet,
	})

	assert.Equal(t, len(lines.WorkingCapital), 0)
	assert.Equal(t, len(lines.Investing), 0)
	assert.Equal(t, len(lines.Financing), 0)
}

// TestClassifier_CashAndContraAssetsExcluded verifies cash itself and
// the accumulated contra-assets never appear as classified lines; cash
// feeds reconciliation and the contra movements are already carried by
// the P&L add-backs.
func TestClassifier_CashAndContraAssetsExcluded(t *testing.T) {
	lines := classifyPeriod(t, &PeriodFinancials{
		StartBalanceSheet: []MappedLineItem{
			li(CashEquivalents, "10000"),
		},
		EndBalanceSheet: []MappedLineItem{
			li(CashEquivalents, "12000"),
			li(AccumulatedDepreciation, "-2000"),
			li(AccumulatedAmortization, "-500"),
		},
	})

	assert.Equal(t, len(lines.WorkingCapital), 0)
	assert.Equal(t, len(lines.Investing), 0)
	assert.Equal(t, len(lines.Financing), 0)
	assert.True(t, lines.BeginningCash.Equal(dec("10000")))
	assert.True(t, lines.EndingCashReported.Equal(dec("12000")))
}

// TestClassifier_RetainedEarningsFeedsPlugOnly verifies the retained
// earnings delta is captured for the dividends plug instead of being
// routed into the financing section.
func TestClassifier_RetainedEarningsFeedsPlugOnly(t *testing.T) {
	lines := classifyPeriod(t, &PeriodFinancials{
		StartBalanceSheet: []MappedLineItem{
			li(RetainedEarnings, "21000"),
		},
		EndBalanceSheet: []MappedLineItem{
			li(RetainedEarnings, "38050"),
		},
	})

	assert.True(t, lines.RetainedEarningsDelta.Equal(dec("17050")))
	assert.Equal(t, len(lines.Financing), 0)
}
