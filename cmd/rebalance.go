package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/rebalancer"
	"github.com/etnz/rebalancer/renderer"
	"github.com/google/subcommands"
)

// rebalanceCmd holds the flags for the 'rebalance' subcommand.
type rebalanceCmd struct {
	json      bool
	query     string
	tolerance float64
}

func (*rebalanceCmd) Name() string { return "rebalance" }
func (*rebalanceCmd) Synopsis() string {
	return "compute the trades that restore the target allocation"
}
func (*rebalanceCmd) Usage() string {
	return `rbl rebalance [-json] [-q <jsonpath>] [-t <amount>]

  Displays the holdings, the target allocations, and what to buy and sell to
  bring every holding back to its target. Every held symbol needs an allocation.

Usage Examples:
# Machine readable output.
$ rbl rebalance -json

# Symbols to sell.
$ rbl rebalance -q '$.toSell[*].symbol'

`
}

func (c *rebalanceCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print the result as JSON")
	f.StringVar(&c.query, "q", "", "JSONPath query applied to the JSON result, implies -json")
	f.Float64Var(&c.tolerance, "t", config.Tolerance, "Ignore gaps between target and current value up to this amount")
}

func (c *rebalanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := newLogger(os.Stderr, *logLevel)

	p, err := loadPortfolio(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading portfolio %q: %v\n", *portfolioFile, err)
		return subcommands.ExitFailure
	}
	p.SetTolerance(rebalancer.M(c.tolerance, p.Currency()))

	res, err := p.Rebalance()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rebalancing: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Debug().Int("buy", len(res.ToBuy)).Int("sell", len(res.ToSell)).Stringer("tolerance", p.Tolerance()).Msg("rebalanced")

	if c.json || c.query != "" {
		return c.printJSON(res)
	}

	printMarkdown(renderer.HoldingMarkdown(p) + "\n" + renderer.RebalanceMarkdown(res))
	return subcommands.ExitSuccess
}

// printJSON prints 'res', or the part of it selected by the -q query.
func (c *rebalanceCmd) printJSON(res rebalancer.Result) subcommands.ExitStatus {
	data, err := json.Marshal(res)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.query == "" {
		fmt.Fprintf(stdout, "%s\n", data)
		return subcommands.ExitSuccess
	}

	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		fmt.Fprintf(os.Stderr, "Error decoding result: %v\n", err)
		return subcommands.ExitFailure
	}
	jval, err := jsonpath.Get(c.query, jobj)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating query %q: %v\n", c.query, err)
		return subcommands.ExitUsageError
	}
	out, err := json.Marshal(jval)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding query result: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "%s\n", out)
	return subcommands.ExitSuccess
}
