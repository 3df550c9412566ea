package history

import (
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/julianstephens/subtrack/internal/constants"
	"github.com/julianstephens/subtrack/internal/models"
	"github.com/julianstephens/subtrack/internal/storage"
)

// Scheduler keeps the monthly history ledger representative of the
// subscription list over time. It owns the in-memory ledger; writes to
// durable storage are best-effort and retried on the next mutation.
type Scheduler struct {
	store      storage.Provider
	log        zerolog.Logger
	ledger     []models.MonthlySnapshot
	lastUpdate string // YYYY-MM-DD of the last successful capture
	now        func() time.Time
	rng        *rand.Rand
	backfill   bool
}

type Option func(*Scheduler)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithRand overrides the backfill randomness source, for tests.
func WithRand(rng *rand.Rand) Option {
	return func(s *Scheduler) { s.rng = rng }
}

// WithBackfill enables synthetic history generation for sparse
// ledgers. Off by default: synthesized months are approximations, not
// real history.
func WithBackfill(enabled bool) Option {
	return func(s *Scheduler) { s.backfill = enabled }
}

func New(store storage.Provider, log zerolog.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		store:  store,
		log:    log,
		ledger: []models.MonthlySnapshot{},
		now:    time.Now,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load pulls the persisted ledger and last-capture date into memory.
func (s *Scheduler) Load() error {
	hist, err := s.store.GetHistory()
	if err != nil {
		return err
	}
	last, err := s.store.GetLastHistoryUpdate()
	if err != nil {
		return err
	}
	s.ledger = Compact(hist)
	s.lastUpdate = last
	return nil
}

// Snapshots returns a copy of the current ledger, sorted ascending by
// month.
func (s *Scheduler) Snapshots() []models.MonthlySnapshot {
	out := make([]models.MonthlySnapshot, len(s.ledger))
	copy(out, s.ledger)
	return out
}

// Capture records a snapshot of the given subscriptions under the
// current calendar month. Capturing twice in one month overwrites the
// existing entry, so repeated edits collapse to one entry reflecting
// the latest state.
func (s *Scheduler) Capture(subs []models.Subscription) {
	now := s.now()
	today := now.Format(constants.DateLayout)

	var monthlyTotal float64
	for _, sub := range subs {
		monthlyTotal += sub.Price
	}

	entries := make([]models.SnapshotEntry, 0, len(subs))
	for _, sub := range subs {
		entries = append(entries, models.SnapshotEntry{
			Name:     sub.Name,
			Price:    sub.Price,
			Category: sub.Category,
		})
	}

	snap := models.MonthlySnapshot{
		Month:             now.Format(constants.MonthLayout),
		MonthlyTotal:      monthlyTotal,
		YearlyTotal:       monthlyTotal * 12,
		SubscriptionCount: len(subs),
		CaptureDate:       today,
		Subscriptions:     entries,
	}

	s.ledger = Compact(Upsert(s.ledger, snap))
	s.lastUpdate = today
	s.persist(true)
}

// EnsureCurrent runs the startup policy: capture immediately when no
// snapshot was ever taken, or when the last capture happened in a
// different calendar month. When backfill is enabled and the ledger is
// still sparse afterwards, synthesize trailing months.
func (s *Scheduler) EnsureCurrent(subs []models.Subscription) {
	if s.lastUpdate == "" || s.isNewMonth() {
		s.Capture(subs)
	}
	if s.backfill && len(s.ledger) < constants.BackfillMinEntries {
		s.Backfill(subs)
	}
}

func (s *Scheduler) isNewMonth() bool {
	last, err := time.Parse(constants.DateLayout, s.lastUpdate)
	if err != nil {
		return true
	}
	now := s.now()
	return last.Month() != now.Month() || last.Year() != now.Year()
}

// Backfill synthesizes up to six trailing months of plausible history
// from the current aggregate total, perturbed by ±15%. Existing months
// are never overwritten, and synthetic entries carry an empty
// subscription list: there is no way to know what the real history
// looked like.
func (s *Scheduler) Backfill(subs []models.Subscription) {
	var currentTotal float64
	for _, sub := range subs {
		currentTotal += sub.Price
	}

	now := s.now()
	changed := false
	for i := constants.BackfillMonths - 1; i >= 0; i-- {
		month := now.AddDate(0, 0, -now.Day()+1).AddDate(0, -i, 0)
		monthKey := month.Format(constants.MonthLayout)
		if HasMonth(s.ledger, monthKey) {
			continue
		}

		variation := (s.rng.Float64() - 0.5) * 2 * constants.BackfillVariation
		total := math.Max(0, currentTotal*(1+variation))
		total = math.Round(total*100) / 100
		count := int(math.Max(1, math.Round(float64(len(subs))*(1+variation*0.5))))

		s.ledger = append(s.ledger, models.MonthlySnapshot{
			Month:             monthKey,
			MonthlyTotal:      total,
			YearlyTotal:       math.Round(total*12*100) / 100,
			SubscriptionCount: count,
			CaptureDate:       month.Format(constants.DateLayout),
			Subscriptions:     []models.SnapshotEntry{},
		})
		changed = true
	}

	if changed {
		s.ledger = Compact(s.ledger)
		s.persist(false)
	}
}

// persist writes the ledger (and, after a real capture, the capture
// date) to storage. Failures are logged and the in-memory ledger kept;
// the next successful mutation retries the write.
func (s *Scheduler) persist(updateDate bool) {
	if err := s.store.SaveHistory(s.ledger); err != nil {
		s.log.Error().Err(err).Msg("failed to persist monthly history")
		return
	}
	if updateDate {
		if err := s.store.SetLastHistoryUpdate(s.lastUpdate); err != nil {
			s.log.Error().Err(err).Msg("failed to persist last history update date")
		}
	}
}
