package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/julianstephens/subtrack/internal/analytics"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	t, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	subs := t.List()
	if len(subs) == 0 {
		fmt.Println("No subscriptions to analyze.")
		return nil
	}

	stats := t.AdvancedStats()
	fmt.Println(headingStyle.Render("Statistics"))
	printStat("Average cost", ctx.Currency(stats.AverageCost))
	if stats.MostExpensive != nil {
		printStat("Most expensive", fmt.Sprintf("%s (%s)", stats.MostExpensive.Name, ctx.Currency(stats.MostExpensive.Price)))
	}
	if stats.SpendingTrendPct != nil {
		printStat("Spending trend", fmt.Sprintf("%+.1f%%", *stats.SpendingTrendPct))
	} else {
		printStat("Spending trend", "no data")
	}
	printStat("Subscription growth", fmt.Sprintf("%+d%%", stats.SubscriptionGrowthPct))

	fmt.Println()
	fmt.Println(headingStyle.Render("Cost Efficiency"))
	now := time.Now()
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Name", "Age (months)", "Daily Cost", "Total Spent", "Score", "Value"})
	for _, sub := range subs {
		eff := analytics.EfficiencyFor(sub, now)
		tw.AppendRow(table.Row{
			sub.Name,
			eff.AgeMonths,
			ctx.Currency(eff.DailyCost),
			ctx.Currency(eff.TotalCost),
			fmt.Sprintf("%.2f", eff.Score),
			string(eff.Level),
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Daily Cost", Align: text.AlignRight},
		{Name: "Total Spent", Align: text.AlignRight},
		{Name: "Score", Align: text.AlignRight},
	})
	tw.SetStyle(table.StyleLight)
	tw.Render()
	return nil
}
