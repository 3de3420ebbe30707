package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/cashflow/statement"
)

type CategoriesCmd struct{}

// Run prints the category taxonomy in registry order: wire name, kind,
// bucket and sign rule. Upstream mapping configuration is written
// against this listing.
func (cmd *CategoriesCmd) Run(ctx *kong.Context) error {
	registry := statement.NewRegistry()
	categories := statement.Categories()

	nameWidth := 0
	for _, c := range categories {
		if w := runewidth.StringWidth(c.String()); w > nameWidth {
			nameWidth = w
		}
	}

	for _, c := range categories {
		_, _ = fmt.Fprintf(ctx.Stdout, "%s  %-8s  %-10s  %s\n",
			runewidth.FillRight(c.String(), nameWidth),
			registry.KindOf(c).String(),
			registry.BucketOf(c).String(),
			registry.SignRuleOf(c).String(),
		)
	}

	return nil
}
