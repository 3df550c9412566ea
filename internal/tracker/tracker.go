// Package tracker owns the in-memory subscription list and the
// mutation pipeline: mutate, persist the list, hand the new state to
// the snapshot scheduler, which persists the ledger. Each step is
// independently callable; persistence failures are logged and never
// roll back in-memory state.
package tracker

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/julianstephens/subtrack/internal/analytics"
	"github.com/julianstephens/subtrack/internal/history"
	"github.com/julianstephens/subtrack/internal/models"
	"github.com/julianstephens/subtrack/internal/storage"
	"github.com/julianstephens/subtrack/internal/validation"
)

var (
	// ErrNotFound is returned when an ID (or a stale reference) does
	// not match any current subscription. No mutation happens.
	ErrNotFound = errors.New("subscription not found")
	// ErrAmbiguous is returned when a lookup query matches more than
	// one subscription.
	ErrAmbiguous = errors.New("query matches multiple subscriptions")
)

type Tracker struct {
	store storage.Provider
	sched *history.Scheduler
	log   zerolog.Logger
	subs  []models.Subscription
	now   func() time.Time
}

type Option func(*Tracker)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func New(store storage.Provider, sched *history.Scheduler, log zerolog.Logger, opts ...Option) *Tracker {
	t := &Tracker{
		store: store,
		sched: sched,
		log:   log,
		subs:  []models.Subscription{},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load pulls persisted state into memory, drops records violating the
// store invariant, and runs the scheduler's startup policy. A corrupt
// store has already been reset by the storage layer by the time this
// returns.
func (t *Tracker) Load() error {
	subs, err := t.store.GetSubscriptions()
	if err != nil {
		return err
	}
	t.subs = subs

	if err := t.sched.Load(); err != nil {
		return err
	}

	if dropped := t.Validate(); dropped > 0 {
		t.log.Warn().Int("dropped", dropped).Msg("removed malformed subscriptions from store")
	}

	t.sched.EnsureCurrent(t.subs)
	return nil
}

// List returns the subscriptions in insertion order.
func (t *Tracker) List() []models.Subscription {
	out := make([]models.Subscription, len(t.subs))
	copy(out, t.subs)
	return out
}

func (t *Tracker) Get(id string) (models.Subscription, error) {
	for _, sub := range t.subs {
		if sub.ID == id {
			return sub, nil
		}
	}
	return models.Subscription{}, ErrNotFound
}

// Resolve finds a single subscription by exact ID, unique ID prefix,
// or unique exact name, in that order. CLI convenience only: the
// engine itself always addresses by full ID.
func (t *Tracker) Resolve(query string) (models.Subscription, error) {
	if sub, err := t.Get(query); err == nil {
		return sub, nil
	}

	matchByPrefix := t.matchAll(func(s models.Subscription) bool {
		return len(query) >= 4 && len(s.ID) >= len(query) && s.ID[:len(query)] == query
	})
	if len(matchByPrefix) == 1 {
		return matchByPrefix[0], nil
	}
	if len(matchByPrefix) > 1 {
		return models.Subscription{}, ErrAmbiguous
	}

	matchByName := t.matchAll(func(s models.Subscription) bool { return s.Name == query })
	if len(matchByName) == 1 {
		return matchByName[0], nil
	}
	if len(matchByName) > 1 {
		return models.Subscription{}, ErrAmbiguous
	}

	return models.Subscription{}, ErrNotFound
}

func (t *Tracker) matchAll(pred func(models.Subscription) bool) []models.Subscription {
	var out []models.Subscription
	for _, sub := range t.subs {
		if pred(sub) {
			out = append(out, sub)
		}
	}
	return out
}

// Add validates the input, assigns a fresh ID and appends the record.
func (t *Tracker) Add(in validation.RecordInput) (models.Subscription, error) {
	if err := validation.CheckRecord(in); err != nil {
		return models.Subscription{}, err
	}

	sub := validation.Normalize(in)
	sub.ID = uuid.New().String()
	t.subs = append(t.subs, sub)
	t.persist()
	return sub, nil
}

// Update replaces the record with the given ID in place, keeping its
// position and identity. A stale ID reports ErrNotFound and mutates
// nothing.
func (t *Tracker) Update(id string, in validation.RecordInput) (models.Subscription, error) {
	idx := t.indexOf(id)
	if idx < 0 {
		return models.Subscription{}, ErrNotFound
	}

	if err := validation.CheckRecord(in); err != nil {
		return models.Subscription{}, err
	}

	sub := validation.Normalize(in)
	sub.ID = id
	t.subs[idx] = sub
	t.persist()
	return sub, nil
}

// Remove deletes the record with the given ID.
func (t *Tracker) Remove(id string) (models.Subscription, error) {
	idx := t.indexOf(id)
	if idx < 0 {
		return models.Subscription{}, ErrNotFound
	}

	removed := t.subs[idx]
	t.subs = append(t.subs[:idx], t.subs[idx+1:]...)
	t.persist()
	return removed, nil
}

func (t *Tracker) indexOf(id string) int {
	for i := range t.subs {
		if t.subs[i].ID == id {
			return i
		}
	}
	return -1
}

// Validate drops records violating the store invariant (non-empty
// name, positive price) and, when anything was dropped, persists and
// re-snapshots: the drop is itself a mutation.
func (t *Tracker) Validate() int {
	kept := t.subs[:0]
	dropped := 0
	for _, sub := range t.subs {
		if sub.Valid() {
			kept = append(kept, sub)
		} else {
			dropped++
		}
	}
	t.subs = kept

	if dropped > 0 {
		t.persist()
	}
	return dropped
}

// persist is the write half of the pipeline. Both writes are
// best-effort: the in-memory state stays canonical and a later
// mutation retries.
func (t *Tracker) persist() {
	if err := t.store.SaveSubscriptions(t.subs); err != nil {
		t.log.Error().Err(err).Msg("failed to persist subscriptions, keeping in-memory state")
	}
	t.sched.Capture(t.subs)
}

// Backfill synthesizes sparse-ledger history on demand, regardless of
// the stored opt-in setting.
func (t *Tracker) Backfill() {
	t.sched.Backfill(t.subs)
}

// The read-only collaborator surface consumed by the presentation
// layer. Every call recomputes from current state.

func (t *Tracker) DashboardTotals() analytics.Totals {
	return analytics.DashboardTotals(t.subs)
}

func (t *Tracker) NextRenewal() analytics.Renewal {
	return analytics.NextRenewal(t.subs, t.now())
}

func (t *Tracker) AdvancedStats() analytics.Stats {
	return analytics.AdvancedStats(t.subs, t.sched.Snapshots())
}

func (t *Tracker) Insights() analytics.Insights {
	return analytics.ComputeInsights(t.subs, t.now())
}

func (t *Tracker) CategoryBreakdown() analytics.Breakdown {
	return analytics.CategoryBreakdown(t.subs)
}

func (t *Tracker) History() []models.MonthlySnapshot {
	return t.sched.Snapshots()
}
