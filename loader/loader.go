// Package loader reads period financials from their JSON wire format:
// a profit_loss array and two balance-sheet arrays of
// {system_category, value} entries, as produced by the upstream
// account-mapping service.
//
// Values are decoded straight into decimal.Decimal so amounts never
// pass through a binary float. Category strings are resolved against
// the closed taxonomy here, at the ingestion boundary; everything past
// the loader works on typed categories only.
//
// Example usage:
//
//	ldr := loader.New()
//	period, err := ldr.Load(ctx, "period.json")
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/cashflow/statement"
	"github.com/robinvdvleuten/cashflow/telemetry"
)

// Loader decodes period files with configurable handling of unknown
// categories.
//
// Configure the loader using functional options passed to New:
//
//	ldr := New(WithIgnoreUnknown())
type Loader struct {
	// IgnoreUnknown determines how unknown system_category strings are
	// handled. When false (default), loading fails with
	// statement.UnknownCategoryError. When true, unknown rows are
	// dropped, for exploratory use against partially mapped charts of
	// accounts.
	IgnoreUnknown bool
}

// Option configures how period files are loaded.
type Option func(*Loader)

// WithIgnoreUnknown configures the loader to drop rows whose
// system_category is not in the taxonomy instead of failing.
func WithIgnoreUnknown() Option {
	return func(l *Loader) {
		l.IgnoreUnknown = true
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// wireLineItem is one {system_category, value} row.
type wireLineItem struct {
	SystemCategory string          `json:"system_category"`
	Value          decimal.Decimal `json:"value"`
}

// wirePeriod is the top-level period document.
type wirePeriod struct {
	ProfitLoss        []wireLineItem `json:"profit_loss"`
	StartBalanceSheet []wireLineItem `json:"start_balance_sheet"`
	EndBalanceSheet   []wireLineItem `json:"end_balance_sheet"`
}

// Load reads and parses a period file.
func (l *Loader) Load(ctx context.Context, filename string) (*statement.PeriodFinancials, error) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("loader.load %s", filename))
	defer timer.End()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	period, err := l.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return period, nil
}

// Parse decodes a period from its JSON wire format.
func (l *Loader) Parse(data []byte) (*statement.PeriodFinancials, error) {
	var wire wirePeriod
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("invalid period document: %w", err)
	}

	period := &statement.PeriodFinancials{}
	var err error

	if period.ProfitAndLoss, err = l.mapItems("profit_loss", wire.ProfitLoss); err != nil {
		return nil, err
	}
	if period.StartBalanceSheet, err = l.mapItems("start_balance_sheet", wire.StartBalanceSheet); err != nil {
		return nil, err
	}
	if period.EndBalanceSheet, err = l.mapItems("end_balance_sheet", wire.EndBalanceSheet); err != nil {
		return nil, err
	}

	return period, nil
}

// mapItems resolves category strings for one section, preserving row
// order.
func (l *Loader) mapItems(section string, items []wireLineItem) ([]statement.MappedLineItem, error) {
	mapped := make([]statement.MappedLineItem, 0, len(items))

	for i, item := range items {
		category, err := statement.ParseCategory(item.SystemCategory)
		if err != nil {
			if l.IgnoreUnknown {
				continue
			}
			return nil, fmt.Errorf("%s[%d]: %w", section, i, err)
		}

		mapped = append(mapped, statement.MappedLineItem{
			Category: category,
			Amount:   item.Value,
		})
	}

	return mapped, nil
}
