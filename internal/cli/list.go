package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/julianstephens/subtrack/internal/analytics"
	"github.com/julianstephens/subtrack/internal/models"
)

type ListCmd struct {
	Search   string `help:"Filter by name or notes substring."`
	Category string `short:"c" help:"Filter by category." default:"all"`
	Sort     string `help:"Sort by name, price, or date." enum:"none,name,price,date" default:"none"`
}

func (c *ListCmd) Run(ctx *Context) error {
	t, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	subs := filterAndSort(t.List(), c.Search, c.Category, c.Sort)
	if len(subs) == 0 {
		fmt.Println("No subscriptions found.")
		return nil
	}

	now := time.Now()
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"ID", "Name", "Price", "Category", "Renews", "Status", "Notes"})
	for _, sub := range subs {
		status := ""
		if days, ok := analytics.DaysUntilRenewal(sub.Date, now); ok {
			switch {
			case days < 0:
				status = "overdue"
			case days == 0:
				status = "today"
			case days <= 7:
				status = fmt.Sprintf("in %d day(s)", days)
			}
		}
		tw.AppendRow(table.Row{
			shortID(sub.ID), sub.Name, ctx.Currency(sub.Price),
			string(sub.Category), sub.Date, status, sub.Notes,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Price", Align: text.AlignRight},
	})
	tw.SetStyle(table.StyleLight)
	tw.Render()

	totals := t.DashboardTotals()
	fmt.Printf("\n%d subscription(s), %s/month (%s/year)\n",
		totals.Count, ctx.Currency(totals.Monthly), ctx.Currency(totals.Yearly))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// filterAndSort mirrors the search, category-filter and sort controls
// of the list view.
func filterAndSort(subs []models.Subscription, search, category, sortBy string) []models.Subscription {
	search = strings.ToLower(search)

	var filtered []models.Subscription
	for _, sub := range subs {
		if search != "" &&
			!strings.Contains(strings.ToLower(sub.Name), search) &&
			!strings.Contains(strings.ToLower(sub.Notes), search) {
			continue
		}
		if category != "all" && string(sub.Category) != category {
			continue
		}
		filtered = append(filtered, sub)
	}

	switch sortBy {
	case "name":
		sort.SliceStable(filtered, func(i, j int) bool {
			return strings.ToLower(filtered[i].Name) < strings.ToLower(filtered[j].Name)
		})
	case "price":
		// Most expensive first.
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price > filtered[j].Price
		})
	case "date":
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Date < filtered[j].Date
		})
	}

	return filtered
}
