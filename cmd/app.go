// Package cmd implements the fev CLI to extract statement holdings and
// end-of-month price series.
package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/fineval/fineval"
	"github.com/google/subcommands"
)

// Commands lists the available subcommands.
// A main package registers them on a commander and Execute()s the user-selected one.
var Commands = []subcommands.Command{
	&eomCmd{},
	&fetchCmd{},
	&holdingsCmd{},
	&quoteCmd{},
}

// printMarkdown renders a markdown report on the terminal.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// readSeries loads a JSONL daily series file.
func readSeries(filename string) ([]fineval.DailyPrice, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open series file %q: %w", filename, err)
	}
	defer f.Close()
	return fineval.DecodeSeries(f)
}
