package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/rebalancer"
	"github.com/google/subcommands"
)

type symbolsCmd struct{}

func (*symbolsCmd) Name() string     { return "symbols" }
func (*symbolsCmd) Synopsis() string { return "list the supported ticker symbols" }
func (*symbolsCmd) Usage() string {
	return `rbl symbols

  Lists the ticker symbols accepted in a portfolio file.
`
}

func (c *symbolsCmd) SetFlags(f *flag.FlagSet) {}

func (c *symbolsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	for _, s := range rebalancer.Symbols() {
		fmt.Fprintln(stdout, s)
	}
	return subcommands.ExitSuccess
}
