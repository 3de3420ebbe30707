package cli

import (
	"context"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/alecthomas/kong"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/cashflow/loader"
	"github.com/robinvdvleuten/cashflow/statement"
	"github.com/robinvdvleuten/cashflow/telemetry"
	"github.com/robinvdvleuten/cashflow/web"
)

type DeriveCmd struct {
	File    FileOrStdin `help:"Period input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	JSON    bool        `help:"Emit the statement as JSON instead of a rendered table."`
	Factors string      `help:"Seasonal factor file to apply." type:"existingfile" optional:""`
	Season  string      `help:"Season key for the factor file (e.g. Q1)." optional:""`
}

// SeasonalAdjustmentOutput is one adjusted line in JSON output.
type SeasonalAdjustmentOutput struct {
	Label          string          `json:"label"`
	Season         string          `json:"season"`
	BaseAmount     decimal.Decimal `json:"baseAmount"`
	AdjustedAmount decimal.Decimal `json:"adjustedAmount"`
	Applied        bool            `json:"applied"`
}

// DeriveOutput is the JSON output of the derive command.
type DeriveOutput struct {
	Statement           *web.StatementResponse     `json:"statement"`
	SeasonalAdjustments []SeasonalAdjustmentOutput `json:"seasonalAdjustments,omitempty"`
}

func (cmd *DeriveCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}
	if cmd.Season != "" && cmd.Factors == "" {
		return fmt.Errorf("--season requires --factors")
	}

	runCtx := context.Background()

	var collector telemetry.Collector
	var deriveTimer telemetry.Timer
	var once sync.Once

	reportTelemetry := func() {
		once.Do(func() {
			if collector != nil {
				deriveTimer.End()
				_, _ = fmt.Fprintln(ctx.Stderr)
				collector.Report(ctx.Stderr)
			}
		})
	}

	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)

		deriveTimer = collector.Start(fmt.Sprintf("derive %s", filepath.Base(cmd.File.Filename)))

		defer reportTelemetry()
	}

	ldr := loader.New()
	period, err := cmd.loadPeriod(runCtx, ldr)
	if err != nil {
		printError(ctx.Stderr, err.Error())
		reportTelemetry()
		return NewCommandError(1)
	}

	var factors *statement.SeasonalFactors
	if cmd.Factors != "" {
		factors, err = ldr.LoadFactors(cmd.Factors)
		if err != nil {
			printError(ctx.Stderr, err.Error())
			reportTelemetry()
			return NewCommandError(1)
		}
	}

	engine := statement.NewEngine(statement.NewRegistry())
	derived, err := engine.Derive(runCtx, period)
	if err != nil {
		printError(ctx.Stderr, err.Error())
		reportTelemetry()
		return NewCommandError(1)
	}

	if cmd.JSON {
		return cmd.writeJSON(ctx, derived, factors)
	}

	renderStatement(ctx.Stdout, derived, factors, cmd.Season)

	if !derived.Reconciliation.WithinTolerance {
		_, _ = fmt.Fprintln(ctx.Stdout)
		printError(ctx.Stdout, fmt.Sprintf("reconciliation discrepancy of %s against reported ending cash",
			derived.Reconciliation.Discrepancy.StringFixed(2)))
	}

	return nil
}

// loadPeriod reads the period from a file or from buffered stdin.
func (cmd *DeriveCmd) loadPeriod(runCtx context.Context, ldr *loader.Loader) (*statement.PeriodFinancials, error) {
	if cmd.File.Filename == "<stdin>" {
		return ldr.Parse(cmd.File.Contents)
	}
	return ldr.Load(runCtx, cmd.File.Filename)
}

// writeJSON emits machine-readable output for scripted consumers.
func (cmd *DeriveCmd) writeJSON(ctx *kong.Context, derived *statement.CashFlowStatement, factors *statement.SeasonalFactors) error {
	out := &DeriveOutput{Statement: web.NewStatementResponse(derived)}

	if factors != nil && cmd.Season != "" {
		for _, adjusted := range factors.AdjustSection(derived.Operating, cmd.Season) {
			out.SeasonalAdjustments = append(out.SeasonalAdjustments, SeasonalAdjustmentOutput{
				Label:          adjusted.Line.Label,
				Season:         cmd.Season,
				BaseAmount:     adjusted.BaseAmount,
				AdjustedAmount: adjusted.AdjustedAmount,
				Applied:        adjusted.Applied,
			})
		}
	}

	encoder := json.NewEncoder(ctx.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// IsCommandError reports whether err carries a CLI exit code, and
// returns that code.
func IsCommandError(err error) (int, bool) {
	var cmdErr *CommandError
	if stdErrors.As(err, &cmdErr) {
		return cmdErr.ExitCode(), true
	}
	return 0, false
}
