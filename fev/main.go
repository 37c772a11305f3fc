package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/fineval/fineval/cmd"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// API keys (GEMINI_API_KEY) may live in a local .env file.
	godotenv.Load()

	// Shell completion: no-op unless invoked by the shell's completion hook.
	completion().Complete("fev")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	fields := predict.Set{"open", "high", "low", "close", "adjclose"}
	return &complete.Command{
		Sub: map[string]*complete.Command{
			"eom": {Flags: map[string]complete.Predictor{
				"file":   predict.Files("*.jsonl"),
				"symbol": predict.Nothing,
				"start":  predict.Nothing,
				"end":    predict.Set{"prior"},
				"field":  fields,
			}},
			"fetch": {Flags: map[string]complete.Predictor{
				"symbol": predict.Nothing,
				"from":   predict.Nothing,
				"to":     predict.Nothing,
				"o":      predict.Files("*.jsonl"),
			}},
			"holdings": {
				Flags: map[string]complete.Predictor{
					"docling": predict.Nothing,
					"gemini":  predict.Nothing,
				},
				Args: predict.Files("*.pdf"),
			},
			"quote": {Args: predict.Nothing},
		},
	}
}
