package constants

const (
	// DaysPerMonth is the average Gregorian month length used for all
	// age and daily-cost arithmetic.
	DaysPerMonth = 30.44

	// HistoryMonths caps the monthly history ledger.
	HistoryMonths = 12

	// BackfillMonths is how many trailing months (current included)
	// synthetic history generation covers.
	BackfillMonths = 6
	// BackfillMinEntries is the ledger size below which backfill kicks in.
	BackfillMinEntries = 3
	// BackfillVariation bounds the pseudo-random perturbation applied
	// to synthesized totals, i.e. totals land in ±15% of the current one.
	BackfillVariation = 0.15

	// EfficiencyHighScore and EfficiencyLowScore split efficiency
	// scores (age-months per dollar) into high / medium / low bands.
	EfficiencyHighScore = 2.0
	EfficiencyLowScore  = 0.5

	// RenewalWeekDays and RenewalMonthDays bound the "this week" and
	// "this month" renewal buckets, in days from today.
	RenewalWeekDays  = 7
	RenewalMonthDays = 30

	// UpcomingRenewalsCap limits the upcoming-renewals list.
	UpcomingRenewalsCap = 10

	// DateLayout and MonthLayout are the wire formats for calendar
	// dates and month keys.
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
)
