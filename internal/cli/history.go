package cli

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type HistoryCmd struct {
	Backfill bool `help:"Synthesize approximated past months when the ledger is sparse."`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	t, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	if c.Backfill {
		t.Backfill()
	}

	snaps := t.History()
	if len(snaps) == 0 {
		fmt.Println("No history recorded yet.")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"Month", "Monthly", "Yearly", "Count", "Captured"})
	for _, snap := range snaps {
		captured := snap.CaptureDate
		if snap.Synthetic() {
			captured = "approximated"
		}
		tw.AppendRow(table.Row{
			snap.Month,
			ctx.Currency(snap.MonthlyTotal),
			ctx.Currency(snap.YearlyTotal),
			snap.SubscriptionCount,
			captured,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Monthly", Align: text.AlignRight},
		{Name: "Yearly", Align: text.AlignRight},
	})
	tw.SetStyle(table.StyleLight)
	tw.Render()
	return nil
}
