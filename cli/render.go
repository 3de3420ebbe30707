package cli

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"

	"github.com/robinvdvleuten/cashflow/statement"
)

// renderStatement writes the statement as an aligned plain-text table.
// Amounts are rounded to two decimals at presentation only; the
// underlying statement keeps exact values.
func renderStatement(w io.Writer, derived *statement.CashFlowStatement, factors *statement.SeasonalFactors, season string) {
	sections := []statement.CashFlowSection{derived.Operating, derived.Investing, derived.Financing}

	labelWidth, amountWidth := columnWidths(derived, sections)

	titles := map[statement.Bucket]string{
		statement.BucketOperating: "Operating activities",
		statement.BucketInvesting: "Investing activities",
		statement.BucketFinancing: "Financing activities",
	}

	for _, section := range sections {
		_, _ = fmt.Fprintln(w, titles[section.Kind])

		for _, item := range section.Items {
			suffix := ""
			if item.IsNonCashAddBack {
				suffix = " " + subtleStyle.Render("(non-cash add-back)")
			}
			if factors != nil && season != "" {
				if adjusted := factors.Adjust(item, season); adjusted.Applied {
					suffix += " " + subtleStyle.Render(fmt.Sprintf("(%s adj %s)", season, adjusted.AdjustedAmount.StringFixed(2)))
				}
			}
			renderRow(w, labelWidth, amountWidth, "  "+item.Label, item.Amount, suffix)
		}

		renderRow(w, labelWidth, amountWidth, "Net cash from "+sectionNoun(section.Kind), section.Subtotal, "")
		_, _ = fmt.Fprintln(w)
	}

	renderRow(w, labelWidth, amountWidth, "Net change in cash", derived.NetChange, "")
	renderRow(w, labelWidth, amountWidth, "Cash at beginning of period", derived.BeginningCash, "")
	renderRow(w, labelWidth, amountWidth, "Cash at end of period (computed)", derived.EndingCashComputed, "")
	renderRow(w, labelWidth, amountWidth, "Cash at end of period (reported)", derived.EndingCashReported, "")
}

// renderRow writes one aligned label/amount row.
func renderRow(w io.Writer, labelWidth, amountWidth int, label string, amount decimal.Decimal, suffix string) {
	formatted := amount.StringFixed(2)
	padding := amountWidth - runewidth.StringWidth(formatted)
	_, _ = fmt.Fprintf(w, "%s  %*s%s%s\n",
		runewidth.FillRight(label, labelWidth),
		padding, "",
		amountStyle.Render(formatted),
		suffix,
	)
}

// columnWidths computes the label and amount column widths over every
// row the table will contain.
func columnWidths(derived *statement.CashFlowStatement, sections []statement.CashFlowSection) (int, int) {
	labelWidth := runewidth.StringWidth("Cash at end of period (computed)")
	amountWidth := 0

	widen := func(label string, amount decimal.Decimal) {
		if w := runewidth.StringWidth(label); w > labelWidth {
			labelWidth = w
		}
		if w := runewidth.StringWidth(amount.StringFixed(2)); w > amountWidth {
			amountWidth = w
		}
	}

	for _, section := range sections {
		for _, item := range section.Items {
			widen("  "+item.Label, item.Amount)
		}
		widen("Net cash from "+sectionNoun(section.Kind), section.Subtotal)
	}

	widen("Net change in cash", derived.NetChange)
	widen("Cash at beginning of period", derived.BeginningCash)
	widen("Cash at end of period (computed)", derived.EndingCashComputed)
	widen("Cash at end of period (reported)", derived.EndingCashReported)

	return labelWidth, amountWidth
}

// sectionNoun returns the subtotal wording for a section.
func sectionNoun(kind statement.Bucket) string {
	switch kind {
	case statement.BucketOperating:
		return "operating activities"
	case statement.BucketInvesting:
		return "investing activities"
	case statement.BucketFinancing:
		return "financing activities"
	default:
		return kind.String()
	}
}
