package cli

import (
	"fmt"

	"github.com/julianstephens/subtrack/internal/validation"
)

type EditCmd struct {
	ID       string   `arg:"" help:"Subscription ID, unique ID prefix, or exact name."`
	Name     *string  `help:"New name."`
	Price    *float64 `short:"p" help:"New monthly price."`
	Category *string  `short:"c" help:"New category."`
	Date     *string  `short:"d" help:"New renewal date (YYYY-MM-DD)."`
	Start    *string  `short:"s" help:"New start date (YYYY-MM-DD)."`
	Notes    *string  `short:"n" help:"New notes."`
}

func (c *EditCmd) Run(ctx *Context) error {
	t, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	sub, err := t.Resolve(c.ID)
	if err != nil {
		return fmt.Errorf("cannot edit %q: %w", c.ID, err)
	}

	// Unchanged fields keep their current values.
	in := validation.RecordInput{
		Name:      sub.Name,
		Price:     sub.Price,
		Category:  string(sub.Category),
		Date:      sub.Date,
		StartDate: sub.StartDate,
		Notes:     sub.Notes,
	}
	if c.Name != nil {
		in.Name = *c.Name
	}
	if c.Price != nil {
		in.Price = *c.Price
	}
	if c.Category != nil {
		in.Category = *c.Category
	}
	if c.Date != nil {
		in.Date = *c.Date
	}
	if c.Start != nil {
		in.StartDate = *c.Start
	}
	if c.Notes != nil {
		in.Notes = *c.Notes
	}

	updated, err := t.Update(sub.ID, in)
	if err != nil {
		return err
	}

	fmt.Printf("Updated subscription: %s (%s/month)\n", updated.Name, ctx.Currency(updated.Price))
	return nil
}
