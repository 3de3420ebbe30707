package statement

import "github.com/shopspring/decimal"

// ClassifiedLine is one line routed into a cash-flow bucket with its
// signed cash contribution already applied (positive = source of cash).
type ClassifiedLine struct {
	Category AccountCategory
	Label    string
	Amount   decimal.Decimal
	AddBack  bool
}

// ClassifiedLines groups a period's lines by target bucket. It is the
// intermediate form between raw period inputs and the derived
// statement: flow items netted into net income, non-cash expenses
// separated as add-backs, and position deltas signed per category.
type ClassifiedLines struct {
	NetIncome decimal.Decimal

	// AddBacks are non-cash P&L expenses (depreciation, amortization)
	// that reduced net income but consumed no cash; they re-enter the
	// operating section with positive sign.
	AddBacks []ClassifiedLine

	// WorkingCapital holds the signed operating position deltas
	// (receivables, inventory, other current assets and liabilities,
	// payables).
	WorkingCapital []ClassifiedLine

	Investing []ClassifiedLine

	// Financing holds debt and equity-capital deltas. Dividends are not
	// classified here; they are derived from RetainedEarningsDelta and
	// NetIncome during derivation.
	Financing []ClassifiedLine

	RetainedEarningsDelta decimal.Decimal
	BeginningCash         decimal.Decimal
	EndingCashReported    decimal.Decimal
}

// Classifier maps a period's line items into cash-flow buckets using
// the category registry.
type Classifier struct {
	registry *Registry
}

// NewClassifier creates a classifier over the given registry.
func NewClassifier(registry *Registry) *Classifier {
	return &Classifier{registry: registry}
}

// Classify routes every line of the period into its bucket. Both
// snapshots are assumed to have passed validation. Line order follows
// the fixed registry order, so identical input always produces
// identical output.
func (c *Classifier) Classify(period *PeriodFinancials) *ClassifiedLines {
	lines := &ClassifiedLines{
		BeginningCash:      amountOf(period.StartBalanceSheet, CashEquivalents),
		EndingCashReported: amountOf(period.EndBalanceSheet, CashEquivalents),
	}

	for _, category := range Categories() {
		switch c.registry.KindOf(category) {
		case KindFlow:
			c.classifyFlow(lines, period, category)
		case KindPosition:
			c.classifyPosition(lines, period, category)
		}
	}

	return lines
}

// classifyFlow nets a P&L category into net income and, for non-cash
// expenses, records the add-back.
func (c *Classifier) classifyFlow(lines *ClassifiedLines, period *PeriodFinancials, category AccountCategory) {
	amount := amountOf(period.ProfitAndLoss, category)
	if amount.IsZero() {
		return
	}

	// Every flow reduces or raises net income, including the non-cash
	// ones; that is exactly why the non-cash ones must be added back.
	lines.NetIncome = lines.NetIncome.Add(c.registry.Contribution(category, amount))

	if c.registry.BucketOf(category) == BucketNonCash {
		lines.AddBacks = append(lines.AddBacks, ClassifiedLine{
			Category: category,
			Label:    c.registry.LabelOf(category),
			Amount:   amount,
			AddBack:  true,
		})
	}
}

// classifyPosition computes the period delta for a balance-sheet
// category and routes its signed contribution. Cash itself is the
// reconciliation target and never contributes; retained earnings only
// feeds the dividends plug; non-cash contra-assets are already carried
// by the P&L add-backs.
func (c *Classifier) classifyPosition(lines *ClassifiedLines, period *PeriodFinancials, category AccountCategory) {
	delta := amountOf(period.EndBalanceSheet, category).Sub(amountOf(period.StartBalanceSheet, category))

	if category == RetainedEarnings {
		lines.RetainedEarningsDelta = delta
		return
	}

	if delta.IsZero() {
		return
	}

	bucket := c.registry.BucketOf(category)
	if bucket == BucketCashItself || bucket == BucketNonCash {
		return
	}

	line := ClassifiedLine{
		Category: category,
		Label:    c.registry.LabelOf(category),
		Amount:   c.registry.Contribution(category, delta),
	}

	switch bucket {
	case BucketOperating:
		lines.WorkingCapital = append(lines.WorkingCapital, line)
	case BucketInvesting:
		lines.Investing = append(lines.Investing, line)
	case BucketFinancing:
		lines.Financing = append(lines.Financing, line)
	}
}
