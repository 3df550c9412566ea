package cli

import (
	"fmt"
)

type SettingsCmd struct {
	Currency *string `help:"Currency symbol used when formatting amounts."`
	Backfill *bool   `help:"Synthesize approximated history when the ledger is sparse at startup."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.Currency == nil && c.Backfill == nil {
		fmt.Println(headingStyle.Render("Settings"))
		printStat("Currency", settings.Currency)
		printStat("Backfill history", fmt.Sprintf("%t", settings.BackfillHistory))
		printStat("Data file", ctx.Store.GetConfigPath())
		return nil
	}

	if c.Currency != nil {
		settings.Currency = *c.Currency
	}
	if c.Backfill != nil {
		settings.BackfillHistory = *c.Backfill
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("✓ Settings updated")
	return nil
}
