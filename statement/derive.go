package statement

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/cashflow/telemetry"
)

// Engine derives cash-flow statements. It holds no per-request state:
// every Derive call works on its own inputs and allocates its own
// outputs, so one engine can serve concurrent requests without
// locking.
type Engine struct {
	registry   *Registry
	validator  *Validator
	classifier *Classifier
	tolerance  decimal.Decimal
}

// Option configures an Engine.
type Option func(*Engine)

// WithTolerance overrides the epsilon used for both balance validation
// and reconciliation (default 0.01 currency units).
func WithTolerance(tolerance decimal.Decimal) Option {
	return func(e *Engine) {
		e.tolerance = tolerance
	}
}

// NewEngine creates an engine over the given registry.
func NewEngine(registry *Registry, opts ...Option) *Engine {
	e := &Engine{
		registry:  registry,
		tolerance: DefaultTolerance,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.validator = NewValidator(registry, e.tolerance)
	e.classifier = NewClassifier(registry)
	return e
}

// Validator returns the engine's snapshot validator.
func (e *Engine) Validator() *Validator {
	return e.validator
}

// Derive computes the indirect-method statement for one period:
// net income plus non-cash add-backs and working-capital deltas form
// operating cash, position deltas form the investing and financing
// sections (with dividends derived as the retained-earnings plug), and
// the computed ending cash is reconciled against the reported figure.
//
// Both snapshots must pass validation first; an unbalanced sheet or a
// missing cash line aborts before any classification happens.
func (e *Engine) Derive(ctx context.Context, period *PeriodFinancials) (*CashFlowStatement, error) {
	timer := telemetry.StartTimer(ctx, "statement.derive")
	defer timer.End()

	validateTimer := timer.Child("statement.validate")
	err := e.validator.ValidatePeriod(period)
	validateTimer.End()
	if err != nil {
		return nil, err
	}

	classifyTimer := timer.Child("statement.classify")
	lines := e.classifier.Classify(period)
	classifyTimer.End()

	return e.assemble(lines), nil
}

// assemble builds the statement from classified lines.
func (e *Engine) assemble(lines *ClassifiedLines) *CashFlowStatement {
	operating := CashFlowSection{Kind: BucketOperating}
	operating.Items = append(operating.Items, CashFlowLineResult{
		Category: CategoryNone,
		Label:    "Net income",
		Amount:   lines.NetIncome,
	})
	for _, line := range lines.AddBacks {
		operating.Items = append(operating.Items, CashFlowLineResult{
			Category:         line.Category,
			Label:            line.Label,
			Amount:           line.Amount,
			IsNonCashAddBack: true,
		})
	}
	for _, line := range lines.WorkingCapital {
		operating.Items = append(operating.Items, lineResult(line))
	}
	operating.Subtotal = sectionSubtotal(operating.Items)

	investing := CashFlowSection{Kind: BucketInvesting}
	for _, line := range lines.Investing {
		investing.Items = append(investing.Items, lineResult(line))
	}
	investing.Subtotal = sectionSubtotal(investing.Items)

	// Dividends are back-solved rather than classified: retained
	// earnings is the one account whose delta is a function of two
	// already-known quantities, so any movement not explained by net
	// income is treated as a distribution.
	dividendsPaid := lines.NetIncome.Sub(lines.RetainedEarningsDelta)

	financing := CashFlowSection{Kind: BucketFinancing}
	for _, line := range lines.Financing {
		financing.Items = append(financing.Items, lineResult(line))
	}
	if !dividendsPaid.IsZero() {
		financing.Items = append(financing.Items, CashFlowLineResult{
			Category: CategoryNone,
			Label:    "Dividends paid (derived)",
			Amount:   dividendsPaid.Neg(),
		})
	}
	financing.Subtotal = sectionSubtotal(financing.Items)

	netChange := operating.Subtotal.Add(investing.Subtotal).Add(financing.Subtotal)
	endingComputed := lines.BeginningCash.Add(netChange)

	return &CashFlowStatement{
		BeginningCash:        lines.BeginningCash,
		Operating:            operating,
		Investing:            investing,
		Financing:            financing,
		NetChange:            netChange,
		EndingCashComputed:   endingComputed,
		EndingCashReported:   lines.EndingCashReported,
		DerivedDividendsPaid: dividendsPaid,
		Reconciliation:       Reconcile(endingComputed, lines.EndingCashReported, e.tolerance),
	}
}

// lineResult converts a classified line into a statement line.
func lineResult(line ClassifiedLine) CashFlowLineResult {
	return CashFlowLineResult{
		Category: line.Category,
		Label:    line.Label,
		Amount:   line.Amount,
	}
}

// sectionSubtotal sums a section's line amounts exactly.
func sectionSubtotal(items []CashFlowLineResult) decimal.Decimal {
	amounts := make([]decimal.Decimal, len(items))
	for i, item := range items {
		amounts[i] = item.Amount
	}
	return sum(amounts)
}
