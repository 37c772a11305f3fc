package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fineval/fineval"
	"github.com/fineval/fineval/yahoo"
	"github.com/google/subcommands"
)

// fetchCmd fetches a daily price history and emits it as JSONL.
type fetchCmd struct {
	symbol string
	from   string
	to     string
	output string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch a daily price history from Yahoo Finance" }
func (*fetchCmd) Usage() string {
	return `fev fetch -symbol <ticker> [-from <date>] [-to <date>] [-o <file>]

  Fetches the daily price series for a ticker and writes it as JSONL
  (one row per trading day), suitable for 'fev eom -file'.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "^SPX", "ticker to fetch")
	f.StringVar(&c.from, "from", "2019-01-01", "first date of the history")
	f.StringVar(&c.to, "to", "", "last date of the history (defaults to today)")
	f.StringVar(&c.output, "o", "", "output file (defaults to stdout)")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	from, err := fineval.ParseDate(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	to := fineval.Today()
	if c.to != "" {
		if to, err = fineval.ParseDate(c.to); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	series, err := yahoo.History(c.symbol, from, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	w := os.Stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}

	if err := fineval.EncodeSeries(w, series); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing series: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.output != "" {
		fmt.Fprintf(os.Stderr, "Wrote %d rows to %s\n", len(series), c.output)
	}
	return subcommands.ExitSuccess
}
