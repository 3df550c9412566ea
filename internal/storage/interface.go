package storage

import "github.com/julianstephens/subtrack/internal/models"

// Settings are user preferences persisted alongside the data. History
// backfill is off by default: synthesized months are fabricated data
// and must be asked for.
type Settings struct {
	Currency        string `json:"currency"`
	BackfillHistory bool   `json:"backfill_history"`
}

func DefaultSettings() Settings {
	return Settings{Currency: "$", BackfillHistory: false}
}

// Provider persists the three logical keys of the tracker: the
// subscription list, the monthly history ledger, and the date of the
// last successful snapshot capture.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (Settings, error)
	SaveSettings(Settings) error

	// Subscriptions
	GetSubscriptions() ([]models.Subscription, error)
	SaveSubscriptions([]models.Subscription) error

	// Monthly history
	GetHistory() ([]models.MonthlySnapshot, error)
	SaveHistory([]models.MonthlySnapshot) error

	// Last snapshot capture date (YYYY-MM-DD, empty when never captured)
	GetLastHistoryUpdate() (string, error)
	SetLastHistoryUpdate(date string) error

	// Utils
	GetConfigPath() string
}
