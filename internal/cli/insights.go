package cli

import (
	"fmt"

	"github.com/julianstephens/subtrack/internal/analytics"
)

type InsightsCmd struct{}

func (c *InsightsCmd) Run(ctx *Context) error {
	t, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	if len(t.List()) == 0 {
		fmt.Println("No subscriptions to analyze.")
		return nil
	}

	ins := t.Insights()

	fmt.Println(headingStyle.Render("Cost Efficiency"))
	if ins.MostEfficient != nil {
		printStat("Best value", fmt.Sprintf("%s (score %.2f, %d months)",
			ins.MostEfficient.Subscription.Name, ins.MostEfficient.Score, ins.MostEfficient.AgeMonths))
	}
	if ins.LeastEfficient != nil {
		printStat("Least efficient", fmt.Sprintf("%s (score %.2f)",
			ins.LeastEfficient.Subscription.Name, ins.LeastEfficient.Score))
	}
	printStat("Average daily cost", ctx.Currency(ins.AverageDailyCost))
	printStat("Savings potential", fmt.Sprintf("%s/year", ctx.Currency(ins.SavingsPotential)))

	fmt.Println()
	fmt.Println(headingStyle.Render("Subscription Age"))
	if ins.LongestRunning != nil {
		printStat("Longest running", fmt.Sprintf("%s (%d months)",
			ins.LongestRunning.Subscription.Name, ins.LongestRunning.AgeMonths))
	}
	if ins.Newest != nil {
		printStat("Newest", fmt.Sprintf("%s (%d months)",
			ins.Newest.Subscription.Name, ins.Newest.AgeMonths))
	}
	printStat("Average age", fmt.Sprintf("%.1f months", ins.AverageAgeMonths))
	printStat("Lifetime value", ctx.Currency(ins.LifetimeValue))

	fmt.Println()
	fmt.Println(headingStyle.Render("Renewals"))
	printStat("Due this week", fmt.Sprintf("%d", ins.RenewalsThisWeek))
	printStat("Due this month", fmt.Sprintf("%d", ins.RenewalsThisMonth))
	printStat("Overdue", fmt.Sprintf("%d", ins.OverdueCount))
	if ins.PeakRenewalCount > 0 {
		printStat("Peak renewal month", fmt.Sprintf("%s (%d)", ins.PeakRenewalMonth, ins.PeakRenewalCount))
	}

	if len(ins.Upcoming) > 0 {
		fmt.Println()
		fmt.Println(headingStyle.Render("Upcoming Renewals"))
		for _, up := range ins.Upcoming {
			fmt.Printf("  %s  %s (%s)\n", up.Subscription.Date, up.Subscription.Name, renewalPhrase(up))
		}
	}
	return nil
}

func renewalPhrase(up analytics.UpcomingRenewal) string {
	switch {
	case up.Days == 0:
		return "today"
	case up.Days == 1:
		return "in 1 day"
	default:
		return fmt.Sprintf("in %d days", up.Days)
	}
}
