package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/subtrack/internal/models"
)

// schema is fixed: two data tables plus a key/value settings table.
// The last-history-update date lives in settings under this key.
const lastHistoryUpdateKey = "last_history_update"

const schema = `
CREATE TABLE IF NOT EXISTS settings (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS subscriptions (
	id           TEXT PRIMARY KEY,
	position     INTEGER NOT NULL,
	name         TEXT NOT NULL,
	price        REAL NOT NULL,
	category     TEXT NOT NULL,
	renewal_date TEXT NOT NULL,
	start_date   TEXT NOT NULL DEFAULT '',
	notes        TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS monthly_history (
	month              TEXT PRIMARY KEY,
	monthly_total      REAL NOT NULL,
	yearly_total       REAL NOT NULL,
	subscription_count INTEGER NOT NULL,
	capture_date       TEXT NOT NULL,
	subscriptions      TEXT NOT NULL DEFAULT '[]'
);
`

type SQLiteStore struct {
	path string
	db   *sql.DB
	log  zerolog.Logger
}

func NewSQLiteStore(path string, log zerolog.Logger) *SQLiteStore {
	return &SQLiteStore{
		path: path,
		log:  log,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Initialize default settings if not present
	if _, err := s.GetSettings(); err != nil {
		if err := s.SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'subtrack init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// The schema is idempotent, applying it on load keeps older data
	// files usable after an upgrade adds a table.
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetSettings() (Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return Settings{}, err
	}
	defer rows.Close()

	settings := Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return Settings{}, err
		}
		switch key {
		case "currency":
			settings.Currency = value
			count++
		case "backfill_history":
			settings.BackfillHistory = value == "true"
			count++
		}
	}

	if count == 0 {
		return Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec("currency", settings.Currency); err != nil {
		return err
	}
	backfill := "false"
	if settings.BackfillHistory {
		backfill = "true"
	}
	if _, err := stmt.Exec("backfill_history", backfill); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetSubscriptions() ([]models.Subscription, error) {
	rows, err := s.db.Query(`
		SELECT id, name, price, category, renewal_date, start_date, notes
		FROM subscriptions ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []models.Subscription{}
	for rows.Next() {
		var sub models.Subscription
		var category string
		err := rows.Scan(&sub.ID, &sub.Name, &sub.Price, &category, &sub.Date, &sub.StartDate, &sub.Notes)
		if err != nil {
			return nil, err
		}
		sub.Category = models.ParseCategory(category)
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}

func (s *SQLiteStore) SaveSubscriptions(subs []models.Subscription) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Full rewrite keeps the table an exact mirror of the in-memory
	// list, including insertion order.
	if _, err := tx.Exec("DELETE FROM subscriptions"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO subscriptions (id, position, name, price, category, renewal_date, start_date, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, sub := range subs {
		_, err := stmt.Exec(sub.ID, i, sub.Name, sub.Price, string(sub.Category), sub.Date, sub.StartDate, sub.Notes)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetHistory() ([]models.MonthlySnapshot, error) {
	rows, err := s.db.Query(`
		SELECT month, monthly_total, yearly_total, subscription_count, capture_date, subscriptions
		FROM monthly_history ORDER BY month`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hist := []models.MonthlySnapshot{}
	for rows.Next() {
		var snap models.MonthlySnapshot
		var entries string
		err := rows.Scan(&snap.Month, &snap.MonthlyTotal, &snap.YearlyTotal,
			&snap.SubscriptionCount, &snap.CaptureDate, &entries)
		if err != nil {
			return nil, err
		}
		snap.Subscriptions = []models.SnapshotEntry{}
		if err := json.Unmarshal([]byte(entries), &snap.Subscriptions); err != nil {
			// A bad blob loses that month's member list, not the month.
			s.log.Warn().Err(err).Str("month", snap.Month).
				Msg("dropping unreadable snapshot subscription list")
			snap.Subscriptions = []models.SnapshotEntry{}
		}
		hist = append(hist, snap)
	}

	return hist, rows.Err()
}

func (s *SQLiteStore) SaveHistory(hist []models.MonthlySnapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM monthly_history"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO monthly_history (month, monthly_total, yearly_total, subscription_count, capture_date, subscriptions)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, snap := range hist {
		entries, err := json.Marshal(snap.Subscriptions)
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot subscriptions: %w", err)
		}
		_, err = stmt.Exec(snap.Month, snap.MonthlyTotal, snap.YearlyTotal,
			snap.SubscriptionCount, snap.CaptureDate, string(entries))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetLastHistoryUpdate() (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", lastHistoryUpdateKey).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *SQLiteStore) SetLastHistoryUpdate(date string) error {
	_, err := s.db.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", lastHistoryUpdateKey, date)
	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}
