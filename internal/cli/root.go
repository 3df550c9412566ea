package cli

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/julianstephens/subtrack/internal/backup"
	"github.com/julianstephens/subtrack/internal/history"
	"github.com/julianstephens/subtrack/internal/storage"
	"github.com/julianstephens/subtrack/internal/tracker"
)

type Context struct {
	Store    storage.Provider
	Log      zerolog.Logger
	Settings storage.Settings
}

// LoadTracker loads the store, wires the snapshot scheduler according
// to the persisted settings, and runs the tracker's startup policy.
func (ctx *Context) LoadTracker() (*tracker.Tracker, error) {
	if err := ctx.Store.Load(); err != nil {
		return nil, err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		settings = storage.DefaultSettings()
	}
	ctx.Settings = settings

	sched := history.New(ctx.Store, ctx.Log, history.WithBackfill(settings.BackfillHistory))
	t := tracker.New(ctx.Store, sched, ctx.Log)
	if err := t.Load(); err != nil {
		return nil, err
	}

	return t, nil
}

// PerformAutomaticBackup creates a backup without interrupting the
// user's workflow; failures are logged and swallowed.
func (ctx *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		ctx.Log.Warn().Err(err).Msg("automatic backup failed")
	}
}

// Currency formats an amount with the configured currency symbol.
func (ctx *Context) Currency(amount float64) string {
	symbol := ctx.Settings.Currency
	if symbol == "" {
		symbol = "$"
	}
	return fmt.Sprintf("%s%.2f", symbol, amount)
}
