package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fineval/fineval/yahoo"
	"github.com/google/subcommands"
)

// quoteCmd displays the latest market price of a symbol.
type quoteCmd struct{}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "display the latest market price of a symbol" }
func (*quoteCmd) Usage() string {
	return `fev quote <symbol>...

  Displays the latest regular-market price for each symbol.
`
}

func (*quoteCmd) SetFlags(_ *flag.FlagSet) {}

func (c *quoteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: expected at least one symbol\n")
		return subcommands.ExitUsageError
	}
	status := subcommands.ExitSuccess
	for _, symbol := range f.Args() {
		price, err := yahoo.Latest(symbol)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Printf("%s\t%.4f\n", symbol, price)
	}
	return status
}
