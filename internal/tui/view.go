package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateDashboard:
		content = docStyle.Render(m.viewDashboard())
	case StateSubscriptions:
		content = docStyle.Render(m.subList.View())
	case StateInsights:
		content = docStyle.Render(m.viewInsights())
	case StateCategories:
		content = docStyle.Render(m.viewCategories())
	case StateHistory:
		content = docStyle.Render(m.viewHistory())
	case StateEditing:
		content = m.form.View()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	sections := []string{m.viewTabs(), content}
	if m.errMsg != "" {
		sections = append(sections, docStyle.Render(dangerStyle.Render(m.errMsg)))
	}
	sections = append(sections, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Dashboard", "Subscriptions", "Insights", "Categories", "History"} {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) money(amount float64) string {
	return fmt.Sprintf("%s%.2f", m.currency, amount)
}

func (m Model) viewDashboard() string {
	totals := m.tracker.DashboardTotals()
	renewal := m.tracker.NextRenewal()
	stats := m.tracker.AdvancedStats()

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Overview") + "\n")
	fmt.Fprintf(&b, "  Monthly total      %s\n", m.money(totals.Monthly))
	fmt.Fprintf(&b, "  Yearly total       %s\n", m.money(totals.Yearly))
	fmt.Fprintf(&b, "  Subscriptions      %d\n", totals.Count)
	if renewal.Found {
		fmt.Fprintf(&b, "  Next renewal       %s (%s)\n", renewal.Name, renewal.Label)
	} else {
		b.WriteString("  Next renewal       " + mutedStyle.Render("none") + "\n")
	}

	b.WriteString("\n" + sectionStyle.Render("Statistics") + "\n")
	fmt.Fprintf(&b, "  Average cost       %s\n", m.money(stats.AverageCost))
	if stats.MostExpensive != nil {
		fmt.Fprintf(&b, "  Most expensive     %s (%s)\n", stats.MostExpensive.Name, m.money(stats.MostExpensive.Price))
	}
	if stats.SpendingTrendPct != nil {
		fmt.Fprintf(&b, "  Spending trend     %+.1f%%\n", *stats.SpendingTrendPct)
	} else {
		b.WriteString("  Spending trend     " + mutedStyle.Render("no data") + "\n")
	}
	fmt.Fprintf(&b, "  Growth             %+d%%\n", stats.SubscriptionGrowthPct)
	return b.String()
}

func (m Model) viewInsights() string {
	ins := m.tracker.Insights()
	if len(m.tracker.List()) == 0 {
		return mutedStyle.Render("No subscriptions to analyze.")
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Cost Efficiency") + "\n")
	if ins.MostEfficient != nil {
		fmt.Fprintf(&b, "  Best value         %s (score %.2f)\n", ins.MostEfficient.Subscription.Name, ins.MostEfficient.Score)
	}
	if ins.LeastEfficient != nil {
		fmt.Fprintf(&b, "  Least efficient    %s (score %.2f)\n", ins.LeastEfficient.Subscription.Name, ins.LeastEfficient.Score)
	}
	fmt.Fprintf(&b, "  Avg daily cost     %s\n", m.money(ins.AverageDailyCost))
	fmt.Fprintf(&b, "  Savings potential  %s/year\n", m.money(ins.SavingsPotential))

	b.WriteString("\n" + sectionStyle.Render("Age") + "\n")
	if ins.LongestRunning != nil {
		fmt.Fprintf(&b, "  Longest running    %s (%d months)\n", ins.LongestRunning.Subscription.Name, ins.LongestRunning.AgeMonths)
	}
	if ins.Newest != nil {
		fmt.Fprintf(&b, "  Newest             %s (%d months)\n", ins.Newest.Subscription.Name, ins.Newest.AgeMonths)
	}
	fmt.Fprintf(&b, "  Lifetime value     %s\n", m.money(ins.LifetimeValue))

	b.WriteString("\n" + sectionStyle.Render("Renewals") + "\n")
	fmt.Fprintf(&b, "  This week          %d\n", ins.RenewalsThisWeek)
	fmt.Fprintf(&b, "  This month         %d\n", ins.RenewalsThisMonth)
	fmt.Fprintf(&b, "  Overdue            %d\n", ins.OverdueCount)
	for _, up := range ins.Upcoming {
		fmt.Fprintf(&b, "  %s  %s (%d days)\n", up.Subscription.Date, up.Subscription.Name, up.Days)
	}
	return b.String()
}

func (m Model) viewCategories() string {
	breakdown := m.tracker.CategoryBreakdown()
	if len(breakdown.Categories) == 0 {
		return mutedStyle.Render("No subscriptions to analyze.")
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("By Category") + "\n")
	for _, cat := range breakdown.Categories {
		fmt.Fprintf(&b, "  %-15s %s/mo (%d)\n", cat.Category, m.money(cat.Total), cat.Count)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Top spending       %s\n", breakdown.TopSpending)
	fmt.Fprintf(&b, "  Most subs          %s\n", breakdown.MostSubscriptions)
	fmt.Fprintf(&b, "  Fastest growing    %s\n", breakdown.FastestGrowing)
	return b.String()
}

func (m Model) viewHistory() string {
	snaps := m.tracker.History()
	if len(snaps) == 0 {
		return mutedStyle.Render("No history yet. Press 'b' to backfill approximated months.")
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Monthly History") + "\n")
	for _, snap := range snaps {
		marker := ""
		if snap.Synthetic() {
			marker = mutedStyle.Render("  (approximated)")
		}
		fmt.Fprintf(&b, "  %s  %s/mo  %d sub(s)%s\n", snap.Month, m.money(snap.MonthlyTotal), snap.SubscriptionCount, marker)
	}
	return b.String()
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Are you sure you want to delete this subscription?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
