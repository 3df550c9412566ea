package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	valueStyle   = lipgloss.NewStyle().Bold(true)
)

type DashboardCmd struct{}

func (c *DashboardCmd) Run(ctx *Context) error {
	t, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	totals := t.DashboardTotals()
	renewal := t.NextRenewal()
	stats := t.AdvancedStats()

	fmt.Println(headingStyle.Render("Dashboard"))
	printStat("Monthly total", ctx.Currency(totals.Monthly))
	printStat("Yearly total", ctx.Currency(totals.Yearly))
	printStat("Subscriptions", fmt.Sprintf("%d", totals.Count))

	if renewal.Found {
		printStat("Next renewal", fmt.Sprintf("%s (%s)", renewal.Name, renewal.Label))
	} else {
		printStat("Next renewal", "none")
	}

	fmt.Println()
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
	return nil
}

func printStat(label, value string) {
	fmt.Printf("  %s %s\n", labelStyle.Render(label+":"), valueStyle.Render(value))
}
