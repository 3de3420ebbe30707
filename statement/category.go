// Package statement derives indirect-method cash-flow statements from
// a period's profit-and-loss lines and two balance-sheet snapshots.
//
// The derivation starts from net income, adds back non-cash expenses,
// applies signed working-capital deltas, aggregates investing and
// financing movements (with dividends derived as a retained-earnings
// plug), and reconciles the computed ending cash against the reported
// balance-sheet figure.
//
// All amounts are decimal.Decimal; nothing in the derivation path
// passes through a binary float.
package statement

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountCategory is a canonical account category produced by the
// upstream chart-of-accounts mapping step. The enumeration is closed:
// every category has exactly one bucket and one sign rule, and the
// engine never sees raw account names.
type AccountCategory int

const (
	// Flow (profit-and-loss) categories.
	RevenueSales AccountCategory = iota
	RevenueService
	OtherIncome
	CogsMaterial
	CogsLabor
	ExpenseSalaries
	ExpenseRent
	ExpenseMarketing
	ExpenseOther
	InterestExpense
	TaxExpense
	DepreciationExpense
	AmortizationExpense

	// Position (balance-sheet) categories.
	CashEquivalents
	AccountsReceivable
	Inventory
	OtherCurrentAssets
	PPEGross
	AccumulatedDepreciation
	AccumulatedAmortization
	IntangibleAssets
	Investments
	AccountsPayable
	OtherCurrentLiabilities
	ShortTermDebt
	LongTermDebt
	CommonStock
	AdditionalPaidInCapital
	RetainedEarnings

	numCategories
)

// CategoryNone marks derived statement lines (net income, dividends)
// that do not originate from a single mapped category.
const CategoryNone AccountCategory = -1

// Bucket is the cash-flow activity a category contributes to.
type Bucket int

const (
	BucketOperating Bucket = iota
	BucketInvesting
	BucketFinancing

	// BucketNonCash marks P&L expenses that reduced net income without
	// consuming cash (added back in the operating section) and their
	// contra-asset counterparts on the balance sheet (excluded from
	// delta classification).
	BucketNonCash

	// BucketCashItself marks the reconciliation target; it never
	// contributes to any section.
	BucketCashItself
)

// String returns the string representation of the bucket.
func (b Bucket) String() string {
	switch b {
	case BucketOperating:
		return "Operating"
	case BucketInvesting:
		return "Investing"
	case BucketFinancing:
		return "Financing"
	case BucketNonCash:
		return "NonCash"
	case BucketCashItself:
		return "CashItself"
	default:
		return "Unknown"
	}
}

// SignRule determines how an increase in a category translates into
// cash. For positions, an increase in an asset uses cash and an
// increase in a liability or equity account sources cash. For flows,
// revenues are sources and expenses are uses.
type SignRule int

const (
	IncreaseIsSource SignRule = iota
	IncreaseIsUse
)

// String returns the string representation of the sign rule.
func (r SignRule) String() string {
	switch r {
	case IncreaseIsSource:
		return "increase-is-source"
	case IncreaseIsUse:
		return "increase-is-use"
	default:
		return "Unknown"
	}
}

// Kind distinguishes flow (P&L) categories from position
// (balance-sheet) categories.
type Kind int

const (
	KindFlow Kind = iota
	KindPosition
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindFlow:
		return "Flow"
	case KindPosition:
		return "Position"
	default:
		return "Unknown"
	}
}

// Side is the balance-sheet side a position category is summed into by
// the snapshot validator. Flow categories have SideNone.
type Side int

const (
	SideNone Side = iota
	SideAssets
	SideLiabilitiesAndEquity
)

// categorySpec is the registry row for one category.
type categorySpec struct {
	name   string // wire name, matches upstream system_category strings
	label  string // presentation label for statement lines
	kind   Kind
	side   Side
	bucket Bucket
	sign   SignRule
}

// specs is indexed by AccountCategory. The table is package-private;
// all access goes through a Registry so tests can substitute fixture
// registries and concurrent readers share one immutable value.
var specs = [numCategories]categorySpec{
	RevenueSales:        {"revenue_sales", "Sales revenue", KindFlow, SideNone, BucketOperating, IncreaseIsSource},
	RevenueService:      {"revenue_service", "Service revenue", KindFlow, SideNone, BucketOperating, IncreaseIsSource},
	OtherIncome:         {"other_income", "Other income", KindFlow, SideNone, BucketOperating, IncreaseIsSource},
	CogsMaterial:        {"cogs_material", "Cost of goods sold (material)", KindFlow, SideNone, BucketOperating, IncreaseIsUse},
	CogsLabor:           {"cogs_labor", "Cost of goods sold (labor)", KindFlow, SideNone, BucketOperating, IncreaseIsUse},
	ExpenseSalaries:     {"expense_salaries", "Salaries", KindFlow, SideNone, BucketOperating, IncreaseIsUse},
	ExpenseRent:         {"expense_rent", "Rent", KindFlow, SideNone, BucketOperating, IncreaseIsUse},
	ExpenseMarketing:    {"expense_marketing", "Marketing", KindFlow, SideNone, BucketOperating, IncreaseIsUse},
	ExpenseOther:        {"expense_other", "Other operating expenses", KindFlow, SideNone, BucketOperating, IncreaseIsUse},
	InterestExpense:     {"interest_expense", "Interest expense", KindFlow, SideNone, BucketOperating, IncreaseIsUse},
	TaxExpense:          {"tax_expense", "Income tax expense", KindFlow, SideNone, BucketOperating, IncreaseIsUse},
	DepreciationExpense: {"depreciation_expense", "Depreciation", KindFlow, SideNone, BucketNonCash, IncreaseIsUse},
	AmortizationExpense: {"amortization_expense", "Amortization", KindFlow, SideNone, BucketNonCash, IncreaseIsUse},

	CashEquivalents:         {"cash_equivalents", "Cash and cash equivalents", KindPosition, SideAssets, BucketCashItself, IncreaseIsUse},
	AccountsReceivable:      {"accounts_receivable", "Accounts receivable", KindPosition, SideAssets, BucketOperating, IncreaseIsUse},
	Inventory:               {"inventory", "Inventory", KindPosition, SideAssets, BucketOperating, IncreaseIsUse},
	OtherCurrentAssets:      {"other_current_assets", "Other current assets", KindPosition, SideAssets, BucketOperating, IncreaseIsUse},
	PPEGross:                {"ppe_gross", "Property, plant and equipment", KindPosition, SideAssets, BucketInvesting, IncreaseIsUse},
	AccumulatedDepreciation: {"accumulated_depreciation", "Accumulated depreciation", KindPosition, SideAssets, BucketNonCash, IncreaseIsUse},
	AccumulatedAmortization: {"accumulated_amortization", "Accumulated amortization", KindPosition, SideAssets, BucketNonCash, IncreaseIsUse},
	IntangibleAssets:        {"intangible_assets", "Intangible assets", KindPosition, SideAssets, BucketInvesting, IncreaseIsUse},
	Investments:             {"investments", "Investments", KindPosition, SideAssets, BucketInvesting, IncreaseIsUse},
	AccountsPayable:         {"accounts_payable", "Accounts payable", KindPosition, SideLiabilitiesAndEquity, BucketOperating, IncreaseIsSource},
	OtherCurrentLiabilities: {"other_current_liabilities", "Other current liabilities", KindPosition, SideLiabilitiesAndEquity, BucketOperating, IncreaseIsSource},
	ShortTermDebt:           {"short_term_debt", "Short-term debt", KindPosition, SideLiabilitiesAndEquity, BucketFinancing, IncreaseIsSource},
	LongTermDebt:            {"long_term_debt", "Long-term debt", KindPosition, SideLiabilitiesAndEquity, BucketFinancing, IncreaseIsSource},
	CommonStock:             {"common_stock", "Common stock", KindPosition, SideLiabilitiesAndEquity, BucketFinancing, IncreaseIsSource},
	AdditionalPaidInCapital: {"additional_paid_in_capital", "Additional paid-in capital", KindPosition, SideLiabilitiesAndEquity, BucketFinancing, IncreaseIsSource},
	RetainedEarnings:        {"retained_earnings", "Retained earnings", KindPosition, SideLiabilitiesAndEquity, BucketFinancing, IncreaseIsSource},
}

// wireNames maps upstream system_category strings back to categories.
var wireNames = func() map[string]AccountCategory {
	m := make(map[string]AccountCategory, numCategories)
	for c := AccountCategory(0); c < numCategories; c++ {
		m[specs[c].name] = c
	}
	return m
}()

// String returns the category's wire name as produced by the upstream
// mapping step (e.g. "accounts_receivable").
func (c AccountCategory) String() string {
	if c == CategoryNone {
		return ""
	}
	if c < 0 || c >= numCategories {
		return fmt.Sprintf("AccountCategory(%d)", int(c))
	}
	return specs[c].name
}

// ParseCategory maps an upstream system_category string to its
// category. Unknown strings are a data error at the ingestion
// boundary, reported via UnknownCategoryError; past this point the
// vocabulary is closed and registry lookups are total.
func ParseCategory(name string) (AccountCategory, error) {
	c, ok := wireNames[name]
	if !ok {
		return 0, &UnknownCategoryError{Name: name}
	}
	return c, nil
}

// Registry is the immutable category lookup table. Construct one with
// NewRegistry at process start and share it freely; it is never
// mutated and requires no synchronization.
type Registry struct {
	specs *[numCategories]categorySpec
}

// NewRegistry returns the registry over the built-in taxonomy.
func NewRegistry() *Registry {
	return &Registry{specs: &specs}
}

// spec returns the registry row for a category. A value outside the
// enumeration is a programming error, not input data, so it panics
// rather than returning an error.
func (r *Registry) spec(c AccountCategory) *categorySpec {
	if c < 0 || c >= numCategories {
		panic(fmt.Sprintf("statement: unknown account category %d", int(c)))
	}
	return &r.specs[c]
}

// BucketOf returns the cash-flow bucket the category belongs to.
func (r *Registry) BucketOf(c AccountCategory) Bucket {
	return r.spec(c).bucket
}

// SignRuleOf returns the category's sign rule.
func (r *Registry) SignRuleOf(c AccountCategory) SignRule {
	return r.spec(c).sign
}

// KindOf reports whether the category is a P&L flow or a balance-sheet
// position.
func (r *Registry) KindOf(c AccountCategory) Kind {
	return r.spec(c).kind
}

// SideOf returns the balance-sheet side a position category is summed
// into by the snapshot validator. Flow categories return SideNone.
func (r *Registry) SideOf(c AccountCategory) Side {
	return r.spec(c).side
}

// LabelOf returns the presentation label used for statement lines.
func (r *Registry) LabelOf(c AccountCategory) string {
	return r.spec(c).label
}

// Contribution converts a signed movement in the category into its
// cash effect: positive for a source of cash, negative for a use.
func (r *Registry) Contribution(c AccountCategory, delta decimal.Decimal) decimal.Decimal {
	if r.spec(c).sign == IncreaseIsUse {
		return delta.Neg()
	}
	return delta
}

// Categories returns every category in fixed registry order. The order
// is the line order of derived statements, so it must stay stable.
func Categories() []AccountCategory {
	out := make([]AccountCategory, numCategories)
	for i := range out {
		out[i] = AccountCategory(i)
	}
	return out
}
