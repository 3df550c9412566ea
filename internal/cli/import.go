package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/subtrack/internal/models"
	"github.com/julianstephens/subtrack/internal/validation"
)

type ImportCmd struct {
	File    string `arg:"" help:"File to import (JSON or YAML)." type:"existingfile"`
	Replace bool   `help:"Replace the current list instead of merging."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read import file: %w", err)
	}

	var doc exportDocument
	switch formatForPath(c.File) {
	case "yaml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return fmt.Errorf("failed to decode import file: %w", err)
	}
	if len(doc.Subscriptions) == 0 {
		return fmt.Errorf("import file contains no subscriptions")
	}

	t, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	if c.Replace {
		for _, sub := range t.List() {
			if _, err := t.Remove(sub.ID); err != nil {
				return fmt.Errorf("failed to clear existing list: %w", err)
			}
		}
	}

	imported, skipped := 0, 0
	for _, sub := range doc.Subscriptions {
		if _, err := t.Add(recordInput(sub)); err != nil {
			skipped++
			fmt.Fprintf(os.Stderr, "Skipping %q: %v\n", sub.Name, err)
			continue
		}
		imported++
	}

	fmt.Printf("✓ Imported %d subscription(s)", imported)
	if skipped > 0 {
		fmt.Printf(", skipped %d invalid record(s)", skipped)
	}
	fmt.Println()
	return nil
}

func recordInput(sub models.Subscription) validation.RecordInput {
	return validation.RecordInput{
		Name:      sub.Name,
		Price:     sub.Price,
		Category:  string(sub.Category),
		Date:      sub.Date,
		StartDate: sub.StartDate,
		Notes:     sub.Notes,
	}
}
