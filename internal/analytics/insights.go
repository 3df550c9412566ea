package analytics

import (
	"sort"
	"time"

	"github.com/julianstephens/subtrack/internal/constants"
	"github.com/julianstephens/subtrack/internal/models"
)

type RecordEfficiency struct {
	Subscription models.Subscription
	Efficiency
}

type RecordAge struct {
	Subscription models.Subscription
	AgeMonths    int
}

type UpcomingRenewal struct {
	Subscription models.Subscription
	Days         int
}

// Insights aggregates the cost-efficiency, lifecycle and
// renewal-pattern views of the subscription list.
type Insights struct {
	MostEfficient    *RecordEfficiency
	LeastEfficient   *RecordEfficiency
	AverageDailyCost float64
	SavingsPotential float64

	LongestRunning   *RecordAge
	Newest           *RecordAge
	AverageAgeMonths float64
	LifetimeValue    float64

	RenewalsThisWeek  int
	RenewalsThisMonth int
	OverdueCount      int
	PeakRenewalMonth  time.Month
	PeakRenewalCount  int
	Upcoming          []UpcomingRenewal
}

// ComputeInsights derives all per-record insights in one pass over the
// list. First occurrence wins every tie, so results are stable across
// runs for the same list order.
func ComputeInsights(subs []models.Subscription, now time.Time) Insights {
	var ins Insights
	if len(subs) == 0 {
		return ins
	}

	effs := make([]Efficiency, len(subs))
	for i, sub := range subs {
		effs[i] = EfficiencyFor(sub, now)
	}

	// Cost efficiency extremes. Unknown-age records score zero and are
	// ineligible for "least efficient": a record we know nothing about
	// is not evidence of waste.
	bestIdx, worstIdx := 0, -1
	for i := range subs {
		if effs[i].Score > effs[bestIdx].Score {
			bestIdx = i
		}
		if effs[i].Score > 0 && (worstIdx == -1 || effs[i].Score < effs[worstIdx].Score) {
			worstIdx = i
		}
	}
	ins.MostEfficient = &RecordEfficiency{Subscription: subs[bestIdx], Efficiency: effs[bestIdx]}
	if worstIdx >= 0 {
		ins.LeastEfficient = &RecordEfficiency{Subscription: subs[worstIdx], Efficiency: effs[worstIdx]}
	}

	var dailySum float64
	minPrice, maxPrice := subs[0].Price, subs[0].Price
	for _, sub := range subs {
		dailySum += sub.Price / constants.DaysPerMonth
		if sub.Price < minPrice {
			minPrice = sub.Price
		}
		if sub.Price > maxPrice {
			maxPrice = sub.Price
		}
	}
	ins.AverageDailyCost = dailySum / float64(len(subs))
	ins.SavingsPotential = (maxPrice - minPrice) * 12

	// Lifecycle aging.
	oldestIdx, newestIdx := 0, 0
	var ageSum, lifetime float64
	for i, sub := range subs {
		age := effs[i].AgeMonths
		ageSum += float64(age)
		lifetime += float64(age) * sub.Price
		if age > effs[oldestIdx].AgeMonths {
			oldestIdx = i
		}
		if age < effs[newestIdx].AgeMonths {
			newestIdx = i
		}
	}
	ins.LongestRunning = &RecordAge{Subscription: subs[oldestIdx], AgeMonths: effs[oldestIdx].AgeMonths}
	ins.Newest = &RecordAge{Subscription: subs[newestIdx], AgeMonths: effs[newestIdx].AgeMonths}
	ins.AverageAgeMonths = ageSum / float64(len(subs))
	ins.LifetimeValue = lifetime

	// Renewal patterns. The week bucket is checked first, so 0-7 days
	// never double-counts into the month bucket.
	monthCounts := make(map[time.Month]int)
	var monthOrder []time.Month
	for _, sub := range subs {
		days, ok := DaysUntilRenewal(sub.Date, now)
		if !ok {
			continue
		}
		switch {
		case days < 0:
			ins.OverdueCount++
		case days <= constants.RenewalWeekDays:
			ins.RenewalsThisWeek++
		case days <= constants.RenewalMonthDays:
			ins.RenewalsThisMonth++
		}

		if renewal, err := time.Parse(constants.DateLayout, sub.Date); err == nil {
			m := renewal.Month()
			if _, seen := monthCounts[m]; !seen {
				monthOrder = append(monthOrder, m)
			}
			monthCounts[m]++
		}

		if days >= 0 && days <= constants.RenewalMonthDays {
			ins.Upcoming = append(ins.Upcoming, UpcomingRenewal{Subscription: sub, Days: days})
		}
	}

	for _, m := range monthOrder {
		if monthCounts[m] > ins.PeakRenewalCount {
			ins.PeakRenewalMonth = m
			ins.PeakRenewalCount = monthCounts[m]
		}
	}

	sort.SliceStable(ins.Upcoming, func(i, j int) bool {
		return ins.Upcoming[i].Days < ins.Upcoming[j].Days
	})
	if len(ins.Upcoming) > constants.UpcomingRenewalsCap {
		ins.Upcoming = ins.Upcoming[:constants.UpcomingRenewalsCap]
	}

	return ins
}
