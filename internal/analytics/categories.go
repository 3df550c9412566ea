package analytics

import (
	"github.com/julianstephens/subtrack/internal/models"
)

// CategoryStats is the aggregate for one category.
type CategoryStats struct {
	Category models.Category
	Total    float64
	Count    int
	Average  float64
	Members  []string
}

// Breakdown groups spending by category. Categories appear in
// first-occurrence order of the subscription list.
type Breakdown struct {
	Categories         []CategoryStats
	TopSpending        models.Category
	MostSubscriptions  models.Category
	FastestGrowing     models.Category
	AveragePerCategory float64
}

// CategoryBreakdown aggregates the list per category. "Fastest
// growing" is approximated as the category with the highest average
// cost: the ledger's snapshot shape keeps no per-category time series,
// so true month-over-month growth cannot be computed.
func CategoryBreakdown(subs []models.Subscription) Breakdown {
	var breakdown Breakdown
	index := make(map[models.Category]int)

	for _, sub := range subs {
		cat := models.ParseCategory(string(sub.Category))
		i, ok := index[cat]
		if !ok {
			i = len(breakdown.Categories)
			index[cat] = i
			breakdown.Categories = append(breakdown.Categories, CategoryStats{Category: cat})
		}
		breakdown.Categories[i].Total += sub.Price
		breakdown.Categories[i].Count++
		breakdown.Categories[i].Members = append(breakdown.Categories[i].Members, sub.Name)
	}

	if len(breakdown.Categories) == 0 {
		return breakdown
	}

	var totalSum float64
	top, most, fastest := 0, 0, 0
	for i := range breakdown.Categories {
		c := &breakdown.Categories[i]
		c.Average = c.Total / float64(c.Count)
		totalSum += c.Total

		if c.Total > breakdown.Categories[top].Total {
			top = i
		}
		if c.Count > breakdown.Categories[most].Count {
			most = i
		}
		if c.Average > breakdown.Categories[fastest].Average {
			fastest = i
		}
	}

	breakdown.TopSpending = breakdown.Categories[top].Category
	breakdown.MostSubscriptions = breakdown.Categories[most].Category
	breakdown.FastestGrowing = breakdown.Categories[fastest].Category
	breakdown.AveragePerCategory = totalSum / float64(len(breakdown.Categories))

	return breakdown
}
