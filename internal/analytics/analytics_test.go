package analytics

import (
	"testing"
	"time"

	"github.com/julianstephens/subtrack/internal/models"
)

var testNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func sub(name string, price float64, date string) models.Subscription {
	return models.Subscription{ID: name, Name: name, Price: price, Category: models.CategoryOther, Date: date}
}

func snap(month string, total float64, count int) models.MonthlySnapshot {
	return models.MonthlySnapshot{
		Month:             month,
		MonthlyTotal:      total,
		YearlyTotal:       total * 12,
		SubscriptionCount: count,
		CaptureDate:       month + "-01T00:00:00Z",
	}
}

func TestDashboardTotals(t *testing.T) {
	subs := []models.Subscription{
		sub("Netflix", 15.25, "2025-07-01"),
		sub("Notion", 8.5, "2025-07-10"),
	}

	totals := DashboardTotals(subs)
	if totals.Monthly != 23.75 {
		t.Errorf("Monthly = %v, want 23.75", totals.Monthly)
	}
	if totals.Yearly != 285 {
		t.Errorf("Yearly = %v, want 285", totals.Yearly)
	}
	if totals.Count != 2 {
		t.Errorf("Count = %d, want 2", totals.Count)
	}
}

func TestDashboardTotalsEmpty(t *testing.T) {
	totals := DashboardTotals(nil)
	if totals.Monthly != 0 || totals.Yearly != 0 || totals.Count != 0 {
		t.Errorf("empty list should report zero totals, got %+v", totals)
	}
}

func TestDaysUntilRenewal(t *testing.T) {
	tests := []struct {
		date string
		want int
		ok   bool
	}{
		{"2025-06-15", 0, true},
		{"2025-06-16", 1, true},
		{"2025-06-22", 7, true},
		{"2025-06-14", -1, true},
		{"2025-05-15", -31, true},
		{"not-a-date", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := DaysUntilRenewal(tt.date, testNow)
		if got != tt.want || ok != tt.ok {
			t.Errorf("DaysUntilRenewal(%q) = (%d, %v), want (%d, %v)", tt.date, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNextRenewalEmpty(t *testing.T) {
	r := NextRenewal(nil, testNow)
	if r.Found {
		t.Errorf("empty list should report no renewal, got %+v", r)
	}
}

func TestNextRenewalToday(t *testing.T) {
	subs := []models.Subscription{sub("Netflix", 15.99, "2025-06-15")}

	r := NextRenewal(subs, testNow)
	if !r.Found {
		t.Fatal("expected a renewal")
	}
	if r.Days != 0 {
		t.Errorf("Days = %d, want 0", r.Days)
	}
	if r.Label != "Today" {
		t.Errorf("Label = %q, want %q", r.Label, "Today")
	}
}

func TestNextRenewalPicksSoonest(t *testing.T) {
	subs := []models.Subscription{
		sub("Later", 5, "2025-07-20"),
		sub("Soon", 10, "2025-06-18"),
		sub("Overdue", 20, "2025-06-01"),
	}

	r := NextRenewal(subs, testNow)
	if r.Name != "Soon" {
		t.Errorf("Name = %q, want %q", r.Name, "Soon")
	}
	if r.Days != 3 {
		t.Errorf("Days = %d, want 3", r.Days)
	}
	if r.Label != "in 3 days" {
		t.Errorf("Label = %q, want %q", r.Label, "in 3 days")
	}
}

func TestNextRenewalFirstWinsTies(t *testing.T) {
	subs := []models.Subscription{
		sub("First", 5, "2025-06-18"),
		sub("Second", 10, "2025-06-18"),
	}

	if r := NextRenewal(subs, testNow); r.Name != "First" {
		t.Errorf("Name = %q, want the first record on a tie", r.Name)
	}
}

func TestNextRenewalAllOverdue(t *testing.T) {
	subs := []models.Subscription{
		sub("A", 5, "2025-05-01"),
		sub("B", 10, "2025-04-01"),
	}

	r := NextRenewal(subs, testNow)
	if !r.Found {
		t.Fatal("expected the first overdue record to be reported")
	}
	if r.Name != "A" {
		t.Errorf("Name = %q, want %q", r.Name, "A")
	}
	if r.Label != "Overdue" {
		t.Errorf("Label = %q, want %q", r.Label, "Overdue")
	}
	if r.Days >= 0 {
		t.Errorf("Days = %d, want negative", r.Days)
	}
}

func TestSpendingTrend(t *testing.T) {
	tests := []struct {
		name   string
		ledger []models.MonthlySnapshot
		want   float64
	}{
		{"increase", []models.MonthlySnapshot{snap("2025-04", 50, 3), snap("2025-05", 75, 4)}, 50.0},
		{"decrease", []models.MonthlySnapshot{snap("2025-04", 80, 3), snap("2025-05", 60, 3)}, -25.0},
		{"flat", []models.MonthlySnapshot{snap("2025-04", 40, 2), snap("2025-05", 40, 2)}, 0},
		{"from zero", []models.MonthlySnapshot{snap("2025-04", 0, 0), snap("2025-05", 30, 2)}, 100},
		{"both zero", []models.MonthlySnapshot{snap("2025-04", 0, 0), snap("2025-05", 0, 0)}, 0},
		{"rounded", []models.MonthlySnapshot{snap("2025-04", 30, 2), snap("2025-05", 40, 3)}, 33.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SpendingTrend(tt.ledger)
			if got == nil {
				t.Fatal("expected a trend value")
			}
			if *got != tt.want {
				t.Errorf("SpendingTrend = %v, want %v", *got, tt.want)
			}
		})
	}
}

func TestSpendingTrendInsufficientData(t *testing.T) {
	if got := SpendingTrend(nil); got != nil {
		t.Errorf("empty ledger should report nil, got %v", *got)
	}
	one := []models.MonthlySnapshot{snap("2025-05", 40, 2)}
	if got := SpendingTrend(one); got != nil {
		t.Errorf("single-month ledger should report nil, got %v", *got)
	}
}

func TestSubscriptionGrowth(t *testing.T) {
	tests := []struct {
		name   string
		ledger []models.MonthlySnapshot
		want   int
	}{
		{"empty", nil, 0},
		{"one month", []models.MonthlySnapshot{snap("2025-05", 40, 2)}, 0},
		{"quarter up", []models.MonthlySnapshot{snap("2025-04", 40, 4), snap("2025-05", 50, 5)}, 25},
		{"rounded", []models.MonthlySnapshot{snap("2025-04", 30, 3), snap("2025-05", 40, 4)}, 33},
		{"from zero", []models.MonthlySnapshot{snap("2025-04", 0, 0), snap("2025-05", 30, 2)}, 100},
		{"shrinking", []models.MonthlySnapshot{snap("2025-04", 40, 4), snap("2025-05", 30, 3)}, -25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SubscriptionGrowth(tt.ledger); got != tt.want {
				t.Errorf("SubscriptionGrowth = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAdvancedStats(t *testing.T) {
	subs := []models.Subscription{
		sub("Netflix", 15.99, "2025-07-01"),
		sub("Spotify", 9.99, "2025-07-05"),
		sub("iCloud", 2.99, "2025-07-10"),
	}
	ledger := []models.MonthlySnapshot{
		snap("2025-05", 20, 2),
		snap("2025-06", 29, 3),
	}

	stats := AdvancedStats(subs, ledger)

	wantAvg := (15.99 + 9.99 + 2.99) / 3
	if stats.AverageCost != wantAvg {
		t.Errorf("AverageCost = %v, want %v", stats.AverageCost, wantAvg)
	}
	if stats.MostExpensive == nil || stats.MostExpensive.Name != "Netflix" {
		t.Errorf("MostExpensive = %+v, want Netflix", stats.MostExpensive)
	}
	if stats.SpendingTrendPct == nil {
		t.Fatal("expected a spending trend")
	}
	if *stats.SpendingTrendPct != 45 {
		t.Errorf("SpendingTrendPct = %v, want 45", *stats.SpendingTrendPct)
	}
	if stats.SubscriptionGrowthPct != 50 {
		t.Errorf("SubscriptionGrowthPct = %d, want 50", stats.SubscriptionGrowthPct)
	}
}

func TestAdvancedStatsEmptyList(t *testing.T) {
	stats := AdvancedStats(nil, nil)
	if stats.AverageCost != 0 {
		t.Errorf("AverageCost = %v, want 0", stats.AverageCost)
	}
	if stats.MostExpensive != nil {
		t.Errorf("MostExpensive = %+v, want nil", stats.MostExpensive)
	}
	if stats.SpendingTrendPct != nil {
		t.Errorf("SpendingTrendPct = %v, want nil", *stats.SpendingTrendPct)
	}
}
