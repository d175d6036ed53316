package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/rebalancer/renderer"
	"github.com/google/subcommands"
)

// holdingCmd holds the flags for the 'holding' subcommand.
type holdingCmd struct{}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display holdings and target allocations" }
func (*holdingCmd) Usage() string {
	return `rbl holding

  Displays the stocks held, their value, and how far each one is from its
  target allocation.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {}

func (c *holdingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p, err := loadPortfolio(newLogger(os.Stderr, *logLevel))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio %q: %v\n", *portfolioFile, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.HoldingMarkdown(p))
	return subcommands.ExitSuccess
}
