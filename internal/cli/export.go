package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/subtrack/internal/models"
)

// exportDocument is the portable interchange shape shared by export
// and import. Field names match the on-disk JSON store so an exported
// file can double as a raw data file.
type exportDocument struct {
	ExportedAt    string                   `json:"exportedAt" yaml:"exportedAt"`
	Subscriptions []models.Subscription    `json:"subscriptions" yaml:"subscriptions"`
	History       []models.MonthlySnapshot `json:"monthlyHistory" yaml:"monthlyHistory"`
}

type ExportCmd struct {
	Output string `short:"o" help:"Destination file. Defaults to stdout." type:"path"`
	Format string `help:"Output format. Inferred from the file extension when omitted." enum:",json,yaml" default:""`
}

func (c *ExportCmd) Run(ctx *Context) error {
	t, err := ctx.LoadTracker()
	if err != nil {
		return err
	}
	defer ctx.Store.Close()

	doc := exportDocument{
		ExportedAt:    time.Now().Format(time.RFC3339),
		Subscriptions: t.List(),
		History:       t.History(),
	}

	format := c.Format
	if format == "" {
		format = formatForPath(c.Output)
	}

	var data []byte
	switch format {
	case "yaml":
		data, err = yaml.Marshal(doc)
	default:
		data, err = json.MarshalIndent(doc, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}

	if c.Output == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(c.Output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	fmt.Printf("✓ Exported %d subscription(s) to %s\n", len(doc.Subscriptions), c.Output)
	return nil
}

func formatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}
