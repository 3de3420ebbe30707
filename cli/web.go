package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/cashflow/telemetry"
	"github.com/robinvdvleuten/cashflow/web"
)

// samplePeriod is written when the user asks the web command to create
// a missing scenario file. It is a small balanced period so the server
// starts with a derivable statement.
const samplePeriod = `{
  "profit_loss": [
    {"system_category": "revenue_sales", "value": 120000},
    {"system_category": "cogs_material", "value": 60000},
    {"system_category": "expense_salaries", "value": 30000},
    {"system_category": "depreciation_expense", "value": 2000},
    {"system_category": "tax_expense", "value": 5950}
  ],
  "start_balance_sheet": [
    {"system_category": "cash_equivalents", "value": 10000},
    {"system_category": "accounts_receivable", "value": 5000},
    {"system_category": "inventory", "value": 4000},
    {"system_category": "ppe_gross", "value": 30000},
    {"system_category": "accounts_payable", "value": 4000},
    {"system_category": "long_term_debt", "value": 10000},
    {"system_category": "common_stock", "value": 14000},
    {"system_category": "retained_earnings", "value": 21000}
  ],
  "end_balance_sheet": [
    {"system_category": "cash_equivalents", "value": 24050},
    {"system_category": "accounts_receivable", "value": 6000},
    {"system_category": "inventory", "value": 4000},
    {"system_category": "ppe_gross", "value": 35000},
    {"system_category": "accumulated_depreciation", "value": -2000},
    {"system_category": "accounts_payable", "value": 5000},
    {"system_category": "long_term_debt", "value": 10000},
    {"system_category": "common_stock", "value": 14000},
    {"system_category": "retained_earnings", "value": 38050}
  ]
}
`

type WebCmd struct {
	File   string `help:"Scenario period file to serve (omit for a stateless API server)." arg:"" optional:""`
	Port   int    `help:"Port to listen on." default:"8080"`
	Create bool   `help:"Automatically create a sample scenario file if it doesn't exist (no confirmation prompt)." short:"c"`
	Watch  bool   `help:"Watch the scenario file and broadcast reload events." short:"w"`
}

func (cmd *WebCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx := context.Background()

	if globals.Telemetry {
		collector := telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		defer func() {
			_, _ = fmt.Fprintln(ctx.Stderr)
			collector.Report(ctx.Stderr)
		}()
	}

	periodFile := ""
	if cmd.File != "" {
		resolved, err := filepath.Abs(cmd.File)
		if err != nil {
			return fmt.Errorf("failed to resolve absolute path: %w", err)
		}
		periodFile = resolved

		if _, err := os.Stat(periodFile); err != nil {
			if !os.IsNotExist(err) {
				return fmt.Errorf("failed to access file: %w", err)
			}

			shouldCreate := cmd.Create

			if !shouldCreate {
				confirmed, err := promptYesNo(ctx, fmt.Sprintf("File %q does not exist. Create it with a sample period?", periodFile))
				if err != nil {
					return fmt.Errorf("failed to read confirmation: %w", err)
				}
				shouldCreate = confirmed
			}

			if !shouldCreate {
				return fmt.Errorf("file does not exist: %s", periodFile)
			}

			parentDir := filepath.Dir(periodFile)
			if err := os.MkdirAll(parentDir, 0755); err != nil {
				return fmt.Errorf("failed to create parent directory: %w", err)
			}

			if err := os.WriteFile(periodFile, []byte(samplePeriod), 0600); err != nil {
				return fmt.Errorf("failed to create file: %w", err)
			}

			printInfof(ctx.Stdout, "Created sample scenario file: %s", pathStyle.Render(periodFile))
		}
	}

	server := web.NewWithFile(cmd.Port, periodFile)
	server.Version = buildValue(Version, "dev")
	server.CommitSHA = buildValue(CommitSHA, "local")
	server.WatchEnabled = cmd.Watch

	printSuccess(ctx.Stdout, fmt.Sprintf("Listening on http://%s:%d", server.Host, server.Port))

	return server.Start(runCtx)
}

// buildValue returns the ldflags-provided value or its fallback.
func buildValue(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
