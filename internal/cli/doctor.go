package cli

import (
	"fmt"
	"os"
	"sort"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/subtrack/internal/backup"
	"github.com/julianstephens/subtrack/internal/constants"
	"github.com/julianstephens/subtrack/internal/storage"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	// Check 1: store reachable
	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store reachable: OK\n")
		storeReachable = true
	}

	// Check 2: data validation (only if the store is reachable)
	if storeReachable {
		if err := checkValidation(ctx); err != nil {
			fmt.Printf("❌ Data validation: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Data validation: OK\n")
		}

		if err := checkLedger(ctx); err != nil {
			fmt.Printf("❌ History ledger: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ History ledger: OK\n")
		}
	} else {
		fmt.Printf("⊘ Data validation: SKIPPED (store not reachable)\n")
		fmt.Printf("⊘ History ledger: SKIPPED (store not reachable)\n")
	}

	// Check 3: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 4: concurrent processes (warning only)
	if err := checkConcurrentProcesses(); err != nil {
		fmt.Printf("⚠ Concurrent processes: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Concurrent processes: OK\n")
	}

	// Check 5: clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkValidation(ctx *Context) error {
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	subs, err := ctx.Store.GetSubscriptions()
	if err != nil {
		return fmt.Errorf("failed to get subscriptions: %w", err)
	}

	seen := make(map[string]bool)
	for _, sub := range subs {
		if seen[sub.ID] {
			return fmt.Errorf("duplicate subscription ID found: %s", sub.ID)
		}
		seen[sub.ID] = true

		if !sub.Valid() {
			return fmt.Errorf("malformed subscription %q: name and positive price required", sub.Name)
		}
		if _, err := time.Parse(constants.DateLayout, sub.Date); err != nil {
			return fmt.Errorf("subscription %q has unparseable renewal date %q", sub.Name, sub.Date)
		}
	}

	return nil
}

func checkLedger(ctx *Context) error {
	snaps, err := ctx.Store.GetHistory()
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}

	if len(snaps) > constants.HistoryMonths {
		return fmt.Errorf("ledger holds %d snapshots, maximum is %d", len(snaps), constants.HistoryMonths)
	}

	months := make(map[string]bool)
	for _, snap := range snaps {
		if months[snap.Month] {
			return fmt.Errorf("duplicate snapshot for month %s", snap.Month)
		}
		months[snap.Month] = true
	}

	sorted := sort.SliceIsSorted(snaps, func(i, j int) bool {
		return snaps[i].Month < snaps[j].Month
	})
	if !sorted {
		return fmt.Errorf("ledger is not sorted by month")
	}

	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'subtrack backup create'")
	}

	return nil
}

// checkConcurrentProcesses warns when another subtrack process is
// running: the stores use last-write-wins file replacement, so two
// writers can silently drop each other's mutations.
func checkConcurrentProcesses() error {
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	self := os.Getpid()
	for _, p := range procs {
		if p.Pid() != self && p.Executable() == "subtrack" {
			return fmt.Errorf("another subtrack process is running (pid %d); concurrent writes may be lost", p.Pid())
		}
	}

	return nil
}

func checkClockTimezone() error {
	now := time.Now()

	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	_, offset := now.Zone()
	if offset == 0 && now.Location() == time.UTC {
		fmt.Printf("   Note: timezone is UTC\n")
	}

	return nil
}
