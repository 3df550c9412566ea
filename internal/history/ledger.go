package history

import (
	"sort"

	"github.com/julianstephens/subtrack/internal/constants"
	"github.com/julianstephens/subtrack/internal/models"
)

// Upsert replaces the entry with snap's month key, or appends when the
// month is new. At most one entry per month survives.
func Upsert(ledger []models.MonthlySnapshot, snap models.MonthlySnapshot) []models.MonthlySnapshot {
	for i := range ledger {
		if ledger[i].Month == snap.Month {
			ledger[i] = snap
			return ledger
		}
	}
	return append(ledger, snap)
}

// Compact sorts the ledger ascending by month key and truncates it to
// the most recent entries. Month keys are zero-padded YYYY-MM, so a
// plain string sort is chronological.
func Compact(ledger []models.MonthlySnapshot) []models.MonthlySnapshot {
	sort.SliceStable(ledger, func(i, j int) bool {
		return ledger[i].Month < ledger[j].Month
	})
	if len(ledger) > constants.HistoryMonths {
		ledger = ledger[len(ledger)-constants.HistoryMonths:]
	}
	return ledger
}

// HasMonth reports whether the ledger already holds an entry for the
// given YYYY-MM key.
func HasMonth(ledger []models.MonthlySnapshot, month string) bool {
	for i := range ledger {
		if ledger[i].Month == month {
			return true
		}
	}
	return false
}

// LastTwo returns the two chronologically last entries (previous,
// current) after sorting, and false when the ledger holds fewer than
// two entries.
func LastTwo(ledger []models.MonthlySnapshot) (prev, cur models.MonthlySnapshot, ok bool) {
	if len(ledger) < 2 {
		return models.MonthlySnapshot{}, models.MonthlySnapshot{}, false
	}
	sorted := make([]models.MonthlySnapshot, len(ledger))
	copy(sorted, ledger)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Month < sorted[j].Month
	})
	return sorted[len(sorted)-2], sorted[len(sorted)-1], true
}
