package history

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/julianstephens/subtrack/internal/constants"
	"github.com/julianstephens/subtrack/internal/models"
	"github.com/julianstephens/subtrack/internal/storage"
)

// fakeStore is an in-memory Provider with injectable save failures.
type fakeStore struct {
	settings   storage.Settings
	subs       []models.Subscription
	history    []models.MonthlySnapshot
	lastUpdate string

	failSaveHistory bool
	historySaves    int
	dateSaves       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{settings: storage.DefaultSettings()}
}

func (f *fakeStore) Init() error  { return nil }
func (f *fakeStore) Load() error  { return nil }
func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) GetSettings() (storage.Settings, error) { return f.settings, nil }
func (f *fakeStore) SaveSettings(s storage.Settings) error  { f.settings = s; return nil }

func (f *fakeStore) GetSubscriptions() ([]models.Subscription, error) { return f.subs, nil }
func (f *fakeStore) SaveSubscriptions(subs []models.Subscription) error {
	f.subs = subs
	return nil
}

func (f *fakeStore) GetHistory() ([]models.MonthlySnapshot, error) { return f.history, nil }
func (f *fakeStore) SaveHistory(hist []models.MonthlySnapshot) error {
	if f.failSaveHistory {
		return errors.New("disk full")
	}
	f.history = append([]models.MonthlySnapshot(nil), hist...)
	f.historySaves++
	return nil
}

func (f *fakeStore) GetLastHistoryUpdate() (string, error) { return f.lastUpdate, nil }
func (f *fakeStore) SetLastHistoryUpdate(date string) error {
	f.lastUpdate = date
	f.dateSaves++
	return nil
}

func (f *fakeStore) GetConfigPath() string { return "fake" }

var schedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestScheduler(store storage.Provider, opts ...Option) *Scheduler {
	base := []Option{
		WithClock(func() time.Time { return schedNow }),
		WithRand(rand.New(rand.NewSource(1))),
	}
	return New(store, zerolog.Nop(), append(base, opts...)...)
}

func TestCaptureRecordsCurrentMonth(t *testing.T) {
	store := newFakeStore()
	s := newTestScheduler(store)

	subs := []models.Subscription{
		{ID: "a", Name: "Netflix", Price: 15.5, Date: "2025-07-01"},
		{ID: "b", Name: "Notion", Price: 8.5, Date: "2025-07-10"},
	}
	s.Capture(subs)

	snaps := s.Snapshots()
	if len(snaps) != 1 {
		t.Fatalf("got %d snapshots, want 1", len(snaps))
	}
	snap := snaps[0]
	if snap.Month != "2025-06" {
		t.Errorf("Month = %q, want 2025-06", snap.Month)
	}
	if snap.MonthlyTotal != 24 {
		t.Errorf("MonthlyTotal = %v, want 24", snap.MonthlyTotal)
	}
	if snap.YearlyTotal != 288 {
		t.Errorf("YearlyTotal = %v, want 288", snap.YearlyTotal)
	}
	if snap.SubscriptionCount != 2 {
		t.Errorf("SubscriptionCount = %d, want 2", snap.SubscriptionCount)
	}
	if snap.CaptureDate != "2025-06-15" {
		t.Errorf("CaptureDate = %q, want 2025-06-15", snap.CaptureDate)
	}
	if len(snap.Subscriptions) != 2 || snap.Subscriptions[0].Name != "Netflix" {
		t.Errorf("snapshot entries = %+v", snap.Subscriptions)
	}

	if store.lastUpdate != "2025-06-15" {
		t.Errorf("persisted lastUpdate = %q, want 2025-06-15", store.lastUpdate)
	}
	if len(store.history) != 1 {
		t.Errorf("persisted %d snapshots, want 1", len(store.history))
	}
}

func TestCaptureSameMonthOverwrites(t *testing.T) {
	store := newFakeStore()
	s := newTestScheduler(store)

	s.Capture([]models.Subscription{{ID: "a", Name: "A", Price: 10, Date: "2025-07-01"}})
	s.Capture([]models.Subscription{
		{ID: "a", Name: "A", Price: 10, Date: "2025-07-01"},
		{ID: "b", Name: "B", Price: 5, Date: "2025-07-02"},
	})

	snaps := s.Snapshots()
	if len(snaps) != 1 {
		t.Fatalf("got %d snapshots, want 1", len(snaps))
	}
	if snaps[0].MonthlyTotal != 15 {
		t.Errorf("MonthlyTotal = %v, want the latest capture's 15", snaps[0].MonthlyTotal)
	}
}

func TestCaptureKeepsLedgerBounded(t *testing.T) {
	store := newFakeStore()
	for m := 0; m < 14; m++ {
		year := 2024 + m/12
		store.history = append(store.history, models.MonthlySnapshot{
			Month:       time.Date(year, time.Month(m%12+1), 1, 0, 0, 0, 0, time.UTC).Format(constants.MonthLayout),
			CaptureDate: "2024-01-01",
		})
	}

	s := newTestScheduler(store)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	s.Capture(nil)

	snaps := s.Snapshots()
	if len(snaps) != constants.HistoryMonths {
		t.Errorf("got %d snapshots, want %d", len(snaps), constants.HistoryMonths)
	}
	for i := 1; i < len(snaps); i++ {
		if snaps[i].Month <= snaps[i-1].Month {
			t.Errorf("ledger not strictly ascending at index %d: %q <= %q", i, snaps[i].Month, snaps[i-1].Month)
		}
	}
}

func TestEnsureCurrentFirstRun(t *testing.T) {
	store := newFakeStore()
	s := newTestScheduler(store)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	s.EnsureCurrent([]models.Subscription{{ID: "a", Name: "A", Price: 10, Date: "2025-07-01"}})
	if len(s.Snapshots()) != 1 {
		t.Errorf("first run should capture a snapshot, got %d", len(s.Snapshots()))
	}
}

func TestEnsureCurrentSameMonthNoop(t *testing.T) {
	store := newFakeStore()
	store.lastUpdate = "2025-06-01"
	store.history = []models.MonthlySnapshot{{Month: "2025-06", MonthlyTotal: 99, CaptureDate: "2025-06-01"}}

	s := newTestScheduler(store)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	s.EnsureCurrent([]models.Subscription{{ID: "a", Name: "A", Price: 10, Date: "2025-07-01"}})
	snaps := s.Snapshots()
	if len(snaps) != 1 || snaps[0].MonthlyTotal != 99 {
		t.Errorf("same-month startup should not recapture, got %+v", snaps)
	}
}

func TestEnsureCurrentNewMonthCaptures(t *testing.T) {
	store := newFakeStore()
	store.lastUpdate = "2025-05-20"
	store.history = []models.MonthlySnapshot{{Month: "2025-05", MonthlyTotal: 50, CaptureDate: "2025-05-20"}}

	s := newTestScheduler(store)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	s.EnsureCurrent([]models.Subscription{{ID: "a", Name: "A", Price: 10, Date: "2025-07-01"}})
	snaps := s.Snapshots()
	if len(snaps) != 2 {
		t.Fatalf("month rollover should add a snapshot, got %d", len(snaps))
	}
	if snaps[1].Month != "2025-06" {
		t.Errorf("new snapshot month = %q, want 2025-06", snaps[1].Month)
	}
	if snaps[0].MonthlyTotal != 50 {
		t.Errorf("previous month entry was modified: %+v", snaps[0])
	}
}

func TestEnsureCurrentBackfillDisabledByDefault(t *testing.T) {
	store := newFakeStore()
	s := newTestScheduler(store)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	s.EnsureCurrent([]models.Subscription{{ID: "a", Name: "A", Price: 10, Date: "2025-07-01"}})
	if got := len(s.Snapshots()); got != 1 {
		t.Errorf("backfill off: got %d snapshots, want only the capture", got)
	}
}

func TestEnsureCurrentBackfillFillsSparseLedger(t *testing.T) {
	store := newFakeStore()
	s := newTestScheduler(store, WithBackfill(true))
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	s.EnsureCurrent([]models.Subscription{{ID: "a", Name: "A", Price: 20, Date: "2025-07-01"}})

	snaps := s.Snapshots()
	if len(snaps) != constants.BackfillMonths {
		t.Fatalf("got %d snapshots, want %d", len(snaps), constants.BackfillMonths)
	}
	if snaps[0].Month != "2025-01" {
		t.Errorf("oldest synthetic month = %q, want 2025-01", snaps[0].Month)
	}

	// The real capture for the current month must survive untouched.
	cur := snaps[len(snaps)-1]
	if cur.Month != "2025-06" {
		t.Fatalf("newest month = %q, want 2025-06", cur.Month)
	}
	if cur.MonthlyTotal != 20 || cur.Synthetic() {
		t.Errorf("current month should be the real capture, got %+v", cur)
	}

	for _, snap := range snaps[:len(snaps)-1] {
		if !snap.Synthetic() {
			t.Errorf("month %s should be synthetic (no entries), got %+v", snap.Month, snap)
		}
		if snap.MonthlyTotal < 20*0.85-0.01 || snap.MonthlyTotal > 20*1.15+0.01 {
			t.Errorf("month %s total %v outside the ±15%% band", snap.Month, snap.MonthlyTotal)
		}
		if snap.SubscriptionCount < 1 {
			t.Errorf("month %s count %d, want at least 1", snap.Month, snap.SubscriptionCount)
		}
	}
}

func TestBackfillNeverOverwritesRealMonths(t *testing.T) {
	store := newFakeStore()
	store.history = []models.MonthlySnapshot{
		{Month: "2025-04", MonthlyTotal: 77, CaptureDate: "2025-04-10", Subscriptions: []models.SnapshotEntry{{Name: "Real", Price: 77}}},
	}
	s := newTestScheduler(store)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	s.Backfill([]models.Subscription{{ID: "a", Name: "A", Price: 20, Date: "2025-07-01"}})

	for _, snap := range s.Snapshots() {
		if snap.Month == "2025-04" && snap.MonthlyTotal != 77 {
			t.Errorf("real month was overwritten: %+v", snap)
		}
	}
}

func TestBackfillDoesNotAdvanceCaptureDate(t *testing.T) {
	store := newFakeStore()
	store.lastUpdate = "2025-06-01"
	s := newTestScheduler(store)
	if err := s.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	s.Backfill([]models.Subscription{{ID: "a", Name: "A", Price: 20, Date: "2025-07-01"}})

	if store.lastUpdate != "2025-06-01" {
		t.Errorf("backfill changed lastUpdate to %q; synthetic months are not captures", store.lastUpdate)
	}
}

func TestCapturePersistFailureKeepsMemoryState(t *testing.T) {
	store := newFakeStore()
	store.failSaveHistory = true
	s := newTestScheduler(store)

	s.Capture([]models.Subscription{{ID: "a", Name: "A", Price: 10, Date: "2025-07-01"}})

	if len(s.Snapshots()) != 1 {
		t.Error("in-memory ledger should keep the snapshot despite the save failure")
	}
	if len(store.history) != 0 {
		t.Error("store should hold nothing after the failed save")
	}

	// The next mutation retries the write.
	store.failSaveHistory = false
	s.Capture([]models.Subscription{{ID: "a", Name: "A", Price: 12, Date: "2025-07-01"}})
	if len(store.history) != 1 {
		t.Errorf("retry should persist the ledger, store holds %d", len(store.history))
	}
}
