package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/subtrack/internal/validation"
)

type AddCmd struct {
	Name     string  `arg:"" help:"Subscription name."`
	Price    float64 `short:"p" help:"Monthly price." required:""`
	Category string  `short:"c" help:"Category (entertainment|productivity|utilities|other)." default:"other"`
	Date     string  `short:"d" help:"Next renewal date (YYYY-MM-DD). Defaults to today."`
	Start    string  `short:"s" help:"Start date (YYYY-MM-DD), for age tracking."`
	Notes    string  `short:"n" help:"Free-form notes."`
}

func (c *AddCmd) Run(ctx *Context) error {
	t, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	date := c.Date
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	sub, err := t.Add(validation.RecordInput{
		Name:      c.Name,
		Price:     c.Price,
		Category:  c.Category,
		Date:      date,
		StartDate: c.Start,
		Notes:     c.Notes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added subscription: %s at %s/month (ID: %s)\n", sub.Name, ctx.Currency(sub.Price), sub.ID)
	return nil
}
