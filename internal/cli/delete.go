package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

type DeleteCmd struct {
	ID    string `arg:"" help:"Subscription ID, unique ID prefix, or exact name."`
	Force bool   `short:"f" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	t, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	sub, err := t.Resolve(c.ID)
	if err != nil {
		return fmt.Errorf("cannot delete %q: %w", c.ID, err)
	}

	if !c.Force {
		fmt.Printf("Delete %s (%s/month)? [y/N]: ", sub.Name, ctx.Currency(sub.Price))
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	removed, err := t.Remove(sub.ID)
	if err != nil {
		return err
	}

	fmt.Printf("Deleted subscription: %s\n", removed.Name)
	return nil
}
