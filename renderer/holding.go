package renderer

import (
	"bytes"
	"fmt"
	"math"

	"github.com/etnz/rebalancer"
	md "github.com/nao1215/markdown"
)

// driftThreshold is the gap, in percentage points, under which a holding is
// shown as on target.
const driftThreshold = 0.1

// HoldingMarkdown renders the current holdings of 'p' and how they compare to
// the target allocations.
func HoldingMarkdown(p *rebalancer.Portfolio) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Rebalance Strategy")

	total := p.TotalValue()

	doc.H2("Current Holdings")
	holdings := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Name", "Price", "Shares", "Value"},
	}
	for sym, stock := range p.Stocks() {
		holdings.Rows = append(holdings.Rows, []string{
			sym.String(),
			stock.Name(),
			stock.Price().String(),
			fmt.Sprintf("%d", p.Shares(sym)),
			p.Value(sym).String(),
		})
	}
	holdings.Rows = append(holdings.Rows, []string{md.Bold("Total Portfolio Value"), "", "", "", md.Bold(total.String())})
	doc.Table(holdings)

	doc.H2("Target Allocations")
	allocations := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Target %", "Target Value", "Current %", "Difference"},
	}
	for sym := range p.Stocks() {
		target, ok := p.Allocation(sym)
		if !ok {
			continue
		}
		current := p.Value(sym).Div(total).Percent()
		allocations.Rows = append(allocations.Rows, []string{
			sym.String(),
			target.Percent().String(),
			total.Mul(target).String(),
			current.String(),
			drift(current - target.Percent()),
		})
	}
	if len(allocations.Rows) == 0 {
		doc.PlainText("No target allocation.")
	} else {
		doc.Table(allocations)
	}

	return doc.String()
}

// drift formats the gap between the current and the target percentage.
func drift(diff rebalancer.Percent) string {
	abs := rebalancer.Percent(math.Abs(float64(diff)))
	switch {
	case abs < driftThreshold:
		return "✓ " + abs.String()
	case diff > 0:
		return "▲ " + abs.String()
	default:
		return "▼ " + abs.String()
	}
}
