package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/julianstephens/subtrack/internal/models"
)

// document is the single JSON file the store persists. The field names
// mirror the localStorage keys of the original web app so an exported
// file stays recognizable.
type document struct {
	Version           int                      `json:"version"`
	Settings          Settings                 `json:"settings"`
	Subscriptions     []models.Subscription    `json:"subscriptions"`
	MonthlyHistory    []models.MonthlySnapshot `json:"monthlyHistory"`
	LastHistoryUpdate string                   `json:"lastHistoryUpdate,omitempty"`
}

type JSONStore struct {
	path string
	doc  *document
	log  zerolog.Logger
}

func NewJSONStore(configPath string, log zerolog.Logger) *JSONStore {
	return &JSONStore{
		path: configPath,
		log:  log,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.doc = &document{
		Version:        1,
		Settings:       DefaultSettings(),
		Subscriptions:  []models.Subscription{},
		MonthlyHistory: []models.MonthlySnapshot{},
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'subtrack init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.doc = &document{}
	if err := json.Unmarshal(data, s.doc); err != nil {
		// Corrupt state: recover by resetting to defaults and
		// persisting the reset immediately.
		s.log.Error().Err(err).Str("path", s.path).
			Msg("persisted state is corrupt, resetting to defaults")
		s.doc = &document{
			Version:        1,
			Settings:       DefaultSettings(),
			Subscriptions:  []models.Subscription{},
			MonthlyHistory: []models.MonthlySnapshot{},
		}
		if saveErr := s.save(); saveErr != nil {
			s.log.Error().Err(saveErr).Msg("failed to persist corrupt-state reset")
		}
		return nil
	}

	// Ensure slices are initialized
	if s.doc.Subscriptions == nil {
		s.doc.Subscriptions = []models.Subscription{}
	}
	if s.doc.MonthlyHistory == nil {
		s.doc.MonthlyHistory = []models.MonthlySnapshot{}
	}
	if s.doc.Settings == (Settings{}) {
		s.doc.Settings = DefaultSettings()
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (Settings, error) {
	if s.doc == nil {
		return Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.doc.Settings, nil
}

func (s *JSONStore) SaveSettings(settings Settings) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.Settings = settings
	return s.save()
}

func (s *JSONStore) GetSubscriptions() ([]models.Subscription, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	subs := make([]models.Subscription, len(s.doc.Subscriptions))
	copy(subs, s.doc.Subscriptions)
	return subs, nil
}

func (s *JSONStore) SaveSubscriptions(subs []models.Subscription) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.doc.Subscriptions = make([]models.Subscription, len(subs))
	copy(s.doc.Subscriptions, subs)
	return s.save()
}

func (s *JSONStore) GetHistory() ([]models.MonthlySnapshot, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	hist := make([]models.MonthlySnapshot, len(s.doc.MonthlyHistory))
	copy(hist, s.doc.MonthlyHistory)
	return hist, nil
}

func (s *JSONStore) SaveHistory(hist []models.MonthlySnapshot) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.doc.MonthlyHistory = make([]models.MonthlySnapshot, len(hist))
	copy(s.doc.MonthlyHistory, hist)
	return s.save()
}

func (s *JSONStore) GetLastHistoryUpdate() (string, error) {
	if s.doc == nil {
		return "", fmt.Errorf("storage not loaded")
	}
	return s.doc.LastHistoryUpdate, nil
}

func (s *JSONStore) SetLastHistoryUpdate(date string) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.LastHistoryUpdate = date
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
