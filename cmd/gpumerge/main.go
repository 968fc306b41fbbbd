// Command gpumerge combines per-provider pricing JSON artifacts into one
// aggregate corpus (all.json) plus run metadata (meta.json).
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/becloudready/gpu-price/merge"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	InDir   string `required:"" help:"Directory containing provider JSON files"`
	OutJSON string `required:"" help:"Output merged JSON file"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("gpumerge"),
		kong.Description("Merge per-provider pricing JSON files into a single all.json"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	merger := merge.NewMerger()
	res, err := merger.Merge(cli.InDir)
	if err != nil {
		return err
	}

	if err := merge.WriteOutputs(cli.OutJSON, res); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Merged %d rows into %s\n", res.Meta.Rows, cli.OutJSON)
	return nil
}
