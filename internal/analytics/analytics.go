// Package analytics derives every insight the tracker surfaces from
// the current subscription list and the monthly history ledger. All
// functions are pure reads: nothing here mutates the inputs.
package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/subtrack/internal/constants"
	"github.com/julianstephens/subtrack/internal/history"
	"github.com/julianstephens/subtrack/internal/models"
)

type Totals struct {
	Monthly float64
	Yearly  float64
	Count   int
}

// DashboardTotals sums the monthly spend across all subscriptions.
func DashboardTotals(subs []models.Subscription) Totals {
	var monthly float64
	for _, sub := range subs {
		monthly += sub.Price
	}
	return Totals{
		Monthly: monthly,
		Yearly:  monthly * 12,
		Count:   len(subs),
	}
}

// DaysUntilRenewal computes whole days from today's midnight to the
// renewal date's midnight. Negative means overdue. Returns false for
// unparsable dates.
func DaysUntilRenewal(date string, now time.Time) (int, bool) {
	renewal, err := time.Parse(constants.DateLayout, date)
	if err != nil {
		return 0, false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	diff := renewal.Sub(today).Hours() / 24
	return int(math.Ceil(diff)), true
}

// Renewal describes the next upcoming renewal across all records.
type Renewal struct {
	Found bool
	Name  string
	Date  string
	Days  int
	Label string
}

// NextRenewal picks the record with the smallest non-negative
// days-until-renewal, first occurrence winning ties. When every record
// is overdue the first record is reported with an Overdue label; an
// empty list reports not-found.
func NextRenewal(subs []models.Subscription, now time.Time) Renewal {
	best := -1
	bestDays := 0
	for i, sub := range subs {
		days, ok := DaysUntilRenewal(sub.Date, now)
		if !ok || days < 0 {
			continue
		}
		if best == -1 || days < bestDays {
			best = i
			bestDays = days
		}
	}

	if best == -1 {
		// All overdue: fall back to the first record rather than
		// reporting nothing the user still pays for.
		for i, sub := range subs {
			if days, ok := DaysUntilRenewal(sub.Date, now); ok {
				return Renewal{Found: true, Name: sub.Name, Date: subs[i].Date, Days: days, Label: "Overdue"}
			}
		}
		return Renewal{}
	}

	sub := subs[best]
	return Renewal{
		Found: true,
		Name:  sub.Name,
		Date:  sub.Date,
		Days:  bestDays,
		Label: renewalLabel(bestDays),
	}
}

func renewalLabel(days int) string {
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "in 1 day"
	case days > 1:
		return fmt.Sprintf("in %d days", days)
	default:
		return "Overdue"
	}
}

// Stats are the advanced dashboard numbers. SpendingTrendPct is nil
// when the ledger holds fewer than two months ("no data").
type Stats struct {
	AverageCost           float64
	MostExpensive         *models.Subscription
	SpendingTrendPct      *float64
	SubscriptionGrowthPct int
}

// AdvancedStats derives average cost and the most expensive record
// from the live list, and trend/growth from the history ledger.
func AdvancedStats(subs []models.Subscription, ledger []models.MonthlySnapshot) Stats {
	stats := Stats{
		SpendingTrendPct:      SpendingTrend(ledger),
		SubscriptionGrowthPct: SubscriptionGrowth(ledger),
	}
	if len(subs) == 0 {
		return stats
	}

	totals := DashboardTotals(subs)
	stats.AverageCost = totals.Monthly / float64(totals.Count)

	maxIdx := 0
	for i := 1; i < len(subs); i++ {
		if subs[i].Price > subs[maxIdx].Price {
			maxIdx = i
		}
	}
	most := subs[maxIdx]
	stats.MostExpensive = &most

	return stats
}

// SpendingTrend is the month-over-month change of the ledger's two
// latest totals, as a percentage rounded to one decimal. A zero
// previous total special-cases to +100 (or 0 when both are zero).
func SpendingTrend(ledger []models.MonthlySnapshot) *float64 {
	prev, cur, ok := history.LastTwo(ledger)
	if !ok {
		return nil
	}

	var pct float64
	switch {
	case prev.MonthlyTotal == 0 && cur.MonthlyTotal > 0:
		pct = 100
	case prev.MonthlyTotal == 0:
		pct = 0
	default:
		pct = (cur.MonthlyTotal - prev.MonthlyTotal) / prev.MonthlyTotal * 100
		pct = math.Round(pct*10) / 10
	}
	return &pct
}

// SubscriptionGrowth is the month-over-month change in subscription
// count, rounded to a whole percentage. Fewer than two ledger entries
// reports 0.
func SubscriptionGrowth(ledger []models.MonthlySnapshot) int {
	prev, cur, ok := history.LastTwo(ledger)
	if !ok {
		return 0
	}

	switch {
	case prev.SubscriptionCount == 0 && cur.SubscriptionCount > 0:
		return 100
	case prev.SubscriptionCount == 0:
		return 0
	}
	pct := float64(cur.SubscriptionCount-prev.SubscriptionCount) / float64(prev.SubscriptionCount) * 100
	return int(math.Round(pct))
}
