package models

// SnapshotEntry is the lightweight per-subscription copy carried by a
// snapshot. Synthesized history months have no entries.
type SnapshotEntry struct {
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Category Category `json:"category"`
}

// MonthlySnapshot captures the aggregate state of all subscriptions
// for one calendar month. Month keys are zero-padded YYYY-MM, so
// lexicographic order is chronological order.
type MonthlySnapshot struct {
	Month             string          `json:"month"` // YYYY-MM
	MonthlyTotal      float64         `json:"monthly_total"`
	YearlyTotal       float64         `json:"yearly_total"`
	SubscriptionCount int             `json:"subscription_count"`
	CaptureDate       string          `json:"capture_date"` // YYYY-MM-DD
	Subscriptions     []SnapshotEntry `json:"subscriptions"`
}

// Synthetic reports whether the snapshot was generated by history
// backfill rather than captured from live data.
func (m MonthlySnapshot) Synthetic() bool {
	return len(m.Subscriptions) == 0 && m.SubscriptionCount > 0
}
