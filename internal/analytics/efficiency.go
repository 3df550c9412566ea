package analytics

import (
	"math"
	"time"

	"github.com/julianstephens/subtrack/internal/constants"
	"github.com/julianstephens/subtrack/internal/models"
)

type EfficiencyLevel string

const (
	EfficiencyHigh    EfficiencyLevel = "high"
	EfficiencyMedium  EfficiencyLevel = "medium"
	EfficiencyLow     EfficiencyLevel = "low"
	EfficiencyUnknown EfficiencyLevel = "unknown"
)

// Efficiency is the cost-efficiency view of one subscription. Score is
// age-in-months per dollar of monthly price: higher means more months
// of use bought per dollar.
type Efficiency struct {
	AgeMonths int
	DailyCost float64
	TotalCost float64
	Score     float64
	Level     EfficiencyLevel
}

// AgeMonths is the whole number of average-length months between the
// start date and today, floored at zero. A missing or unparsable start
// date reports zero ("unknown age").
func AgeMonths(startDate string, now time.Time) int {
	if startDate == "" {
		return 0
	}
	start, err := time.Parse(constants.DateLayout, startDate)
	if err != nil {
		return 0
	}
	days := now.Sub(start).Hours() / 24
	months := int(math.Floor(days / constants.DaysPerMonth))
	if months < 0 {
		return 0
	}
	return months
}

// EfficiencyFor scores one subscription. Records with unknown age
// (zero months) get an unknown level and a zero score, which also
// makes them ineligible for the "least efficient" insight.
func EfficiencyFor(sub models.Subscription, now time.Time) Efficiency {
	age := AgeMonths(sub.StartDate, now)
	if age == 0 {
		return Efficiency{Level: EfficiencyUnknown}
	}

	eff := Efficiency{
		AgeMonths: age,
		DailyCost: sub.Price / constants.DaysPerMonth,
		TotalCost: sub.Price * float64(age),
		Score:     float64(age) / sub.Price,
	}
	switch {
	case eff.Score > constants.EfficiencyHighScore:
		eff.Level = EfficiencyHigh
	case eff.Score < constants.EfficiencyLowScore:
		eff.Level = EfficiencyLow
	default:
		eff.Level = EfficiencyMedium
	}
	return eff
}
