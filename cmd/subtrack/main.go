package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/julianstephens/subtrack/internal/cli"
	"github.com/julianstephens/subtrack/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Data file path. A .json extension selects the JSON backend." type:"path" default:"~/.config/subtrack/subtrack.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init       cli.InitCmd       `cmd:"" help:"Initialize subtrack storage."`
	Tui        cli.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Add        cli.AddCmd        `cmd:"" help:"Add a subscription."`
	Edit       cli.EditCmd       `cmd:"" help:"Edit a subscription."`
	Delete     cli.DeleteCmd     `cmd:"" help:"Delete a subscription."`
	List       cli.ListCmd       `cmd:"" help:"List subscriptions."`
	Dashboard  cli.DashboardCmd  `cmd:"" help:"Show spending totals and the next renewal."`
	Stats      cli.StatsCmd      `cmd:"" help:"Show advanced statistics and cost efficiency."`
	Insights   cli.InsightsCmd   `cmd:"" help:"Show efficiency, age and renewal insights."`
	Categories cli.CategoriesCmd `cmd:"" help:"Show the spending breakdown by category."`
	History    cli.HistoryCmd    `cmd:"" help:"Show the monthly history ledger."`
	Export     cli.ExportCmd     `cmd:"" help:"Export subscriptions and history."`
	Import     cli.ImportCmd     `cmd:"" help:"Import subscriptions from a file."`
	Settings   cli.SettingsCmd   `cmd:"" help:"Show or change settings."`
	Doctor     cli.DoctorCmd     `cmd:"" help:"Run health checks on the data store."`
	Backup     struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup of the data file."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the data file from a backup."`
	} `cmd:"" help:"Manage backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("subtrack"),
		kong.Description("Personal subscription spend tracker"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	level := zerolog.WarnLevel
	if CLI.Debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	// The data file extension selects the storage backend.
	var store storage.Provider
	if strings.HasSuffix(CLI.Config, ".json") {
		store = storage.NewJSONStore(CLI.Config, log)
	} else {
		store = storage.NewSQLiteStore(CLI.Config, log)
	}

	appCtx := &cli.Context{
		Store: store,
		Log:   log,
	}

	if err := ctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
