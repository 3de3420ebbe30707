package statement

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// SeasonalCashFlowLineResult pairs a derived line with its seasonally
// adjusted amount. The base derivation is never altered; when no
// factor exists for the line's category and season, Applied is false
// and AdjustedAmount equals BaseAmount unchanged.
type SeasonalCashFlowLineResult struct {
	Line           CashFlowLineResult
	BaseAmount     decimal.Decimal
	AdjustedAmount decimal.Decimal
	Applied        bool
}

// seasonalKey identifies one adjustment factor.
type seasonalKey struct {
	category AccountCategory
	season   string
}

// SeasonalFactors is an immutable table of multiplicative adjustment
// factors keyed by (category, season). Factor modeling happens
// upstream; this table only applies whatever factors it is given.
type SeasonalFactors struct {
	factors map[seasonalKey]decimal.Decimal
}

// NewSeasonalFactors creates an empty factor table.
func NewSeasonalFactors() *SeasonalFactors {
	return &SeasonalFactors{factors: make(map[seasonalKey]decimal.Decimal)}
}

// Set records the factor for a category and season, returning the
// table for chaining during construction. Tables are built once and
// read-only afterwards.
func (f *SeasonalFactors) Set(category AccountCategory, season string, factor decimal.Decimal) *SeasonalFactors {
	f.factors[seasonalKey{category, season}] = factor
	return f
}

// Seasons returns every season present in the table, sorted.
func (f *SeasonalFactors) Seasons() []string {
	seen := make(map[string]bool)
	var seasons []string
	for key := range f.factors {
		if !seen[key.season] {
			seen[key.season] = true
			seasons = append(seasons, key.season)
		}
	}
	slices.Sort(seasons)
	return seasons
}

// Adjust decorates one derived line with its seasonal adjustment for
// the given season. Pure: the input line is returned untouched inside
// the result.
func (f *SeasonalFactors) Adjust(line CashFlowLineResult, season string) SeasonalCashFlowLineResult {
	result := SeasonalCashFlowLineResult{
		Line:           line,
		BaseAmount:     line.Amount,
		AdjustedAmount: line.Amount,
	}

	factor, ok := f.factors[seasonalKey{line.Category, season}]
	if !ok {
		return result
	}

	result.AdjustedAmount = line.Amount.Mul(factor)
	result.Applied = true
	return result
}

// AdjustSection decorates every line of a section for the given
// season.
func (f *SeasonalFactors) AdjustSection(section CashFlowSection, season string) []SeasonalCashFlowLineResult {
	out := make([]SeasonalCashFlowLineResult, len(section.Items))
	for i, line := range section.Items {
		out[i] = f.Adjust(line, season)
	}
	return out
}
