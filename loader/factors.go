package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/cashflow/statement"
)

// wireFactor is one seasonal adjustment factor row.
type wireFactor struct {
	SystemCategory string          `json:"system_category"`
	Season         string          `json:"season"`
	Factor         decimal.Decimal `json:"factor"`
}

// wireFactors is the factor file shape.
type wireFactors struct {
	Factors []wireFactor `json:"factors"`
}

// LoadFactors reads a seasonal factor table from a JSON file of
// {system_category, season, factor} rows. Factor modeling happens
// elsewhere; this only loads an already-computed table.
func (l *Loader) LoadFactors(filename string) (*statement.SeasonalFactors, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	factors, err := l.ParseFactors(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return factors, nil
}

// ParseFactors decodes a seasonal factor table from JSON.
func (l *Loader) ParseFactors(data []byte) (*statement.SeasonalFactors, error) {
	var wire wireFactors
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("invalid factor document: %w", err)
	}

	factors := statement.NewSeasonalFactors()
	for i, row := range wire.Factors {
		category, err := statement.ParseCategory(row.SystemCategory)
		if err != nil {
			if l.IgnoreUnknown {
				continue
			}
			return nil, fmt.Errorf("factors[%d]: %w", i, err)
		}
		factors.Set(category, row.Season, row.Factor)
	}

	return factors, nil
}
