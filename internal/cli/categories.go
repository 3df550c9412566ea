package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type CategoriesCmd struct{}

func (c *CategoriesCmd) Run(ctx *Context) error {
	t, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	breakdown := t.CategoryBreakdown()
	if len(breakdown.Categories) == 0 {
		fmt.Println("No subscriptions to analyze.")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Category", "Count", "Monthly Total", "Average", "Subscriptions"})
	for _, cat := range breakdown.Categories {
		tw.AppendRow(table.Row{
			string(cat.Category),
			cat.Count,
			ctx.Currency(cat.Total),
			ctx.Currency(cat.Average),
			strings.Join(cat.Members, ", "),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Monthly Total", Align: text.AlignRight},
		{Name: "Average", Align: text.AlignRight},
	})
	tw.SetStyle(table.StyleLight)
	tw.Render()

	fmt.Println()
	printStat("Top spending", string(breakdown.TopSpending))
	printStat("Most subscriptions", string(breakdown.MostSubscriptions))
	printStat("Fastest growing", string(breakdown.FastestGrowing))
	printStat("Average per category", ctx.Currency(breakdown.AveragePerCategory))
	return nil
}
