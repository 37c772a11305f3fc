package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fineval/fineval"
	"github.com/fineval/fineval/renderer"
	"github.com/fineval/fineval/yahoo"
	"github.com/google/subcommands"
)

// eomCmd computes an end-of-month price series from a daily one.
type eomCmd struct {
	file   string
	symbol string
	start  string
	end    string
	field  string
}

func (*eomCmd) Name() string     { return "eom" }
func (*eomCmd) Synopsis() string { return "extract end-of-month prices from a daily series" }
func (*eomCmd) Usage() string {
	return `fev eom [-file <series.jsonl> | -symbol <ticker>] [-start <YYYY-MM>] [-end <YYYY-MM>|prior] [-field <name>]

  Identifies the last trading day observed in each month of a daily price
  series and displays the price on that day, for every month in the
  requested range.
`
}

func (c *eomCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "file", "", "JSONL daily series file (one {\"date\":..., \"close\":...} object per line)")
	f.StringVar(&c.symbol, "symbol", "", "fetch the daily series for this ticker instead of reading a file")
	f.StringVar(&c.start, "start", "2019-01", "first month of prices to return (YYYY-MM)")
	f.StringVar(&c.end, "end", fineval.PriorMonth, "last month of prices to return (YYYY-MM, or 'prior' for the month before the current one)")
	f.StringVar(&c.field, "field", "close", "name of the price field to extract")
}

func (c *eomCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	series, title, err := c.series()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	prices, err := fineval.EndOfMonthPrices(series, c.start, c.end, c.field)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.MonthlyPrices(title, c.field, prices))
	return subcommands.ExitSuccess
}

// series materializes the daily series from the file or the provider.
func (c *eomCmd) series() (series []fineval.DailyPrice, title string, err error) {
	switch {
	case c.file != "" && c.symbol != "":
		return nil, "", fmt.Errorf("-file and -symbol are exclusive")
	case c.file != "":
		series, err = readSeries(c.file)
		return series, c.file, err
	case c.symbol != "":
		start, err := fineval.ParseMonth(c.start)
		if err != nil {
			return nil, "", err
		}
		from := fineval.NewDate(start.Year(), start.Month(), 1)
		series, err := yahoo.History(c.symbol, from, fineval.Today())
		return series, c.symbol, err
	default:
		return nil, "", fmt.Errorf("one of -file or -symbol is required")
	}
}
