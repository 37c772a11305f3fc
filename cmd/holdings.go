package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/fineval/fineval"
	"github.com/fineval/fineval/docconvert"
	"github.com/fineval/fineval/renderer"
	"github.com/google/subcommands"
)

// holdingsCmd converts a statement document and displays its holdings.
type holdingsCmd struct {
	docling string
	gemini  bool
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "extract the holdings table from a monthly statement" }
func (*holdingsCmd) Usage() string {
	return `fev holdings [-docling <addr> | -gemini] <statement.pdf>

  Converts a brokerage monthly statement to markdown through the selected
  backend, then extracts and displays the holdings table and the statement
  period end date.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.docling, "docling", "http://localhost:5001", "address of a docling-serve instance")
	f.BoolVar(&c.gemini, "gemini", false, "convert with the Gemini API instead of docling-serve")
}

func (c *holdingsCmd) converter(ctx context.Context) (docconvert.Converter, error) {
	if c.gemini {
		return docconvert.NewGemini(ctx)
	}
	return &docconvert.Docling{Addr: c.docling}, nil
}

func (c *holdingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one statement file\n")
		return subcommands.ExitUsageError
	}

	conv, err := c.converter(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	md, err := conv.Convert(ctx, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	stmt, err := fineval.ParseStatement([]byte(md))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Holdings(stmt))
	return subcommands.ExitSuccess
}
