package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/rebalancer"
	md "github.com/nao1215/markdown"
)

// RebalanceMarkdown renders the actions of a rebalance.
func RebalanceMarkdown(r rebalancer.Result) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Rebalance Actions")

	if r.IsBalanced() {
		doc.PlainText(md.Bold("✓ Portfolio is already balanced!"))
		return doc.String()
	}

	if len(r.ToSell) > 0 {
		doc.H3("Sell")
		doc.BulletList(items("▼", r.ToSell)...)
	}
	if len(r.ToBuy) > 0 {
		doc.H3("Buy")
		doc.BulletList(items("▲", r.ToBuy)...)
	}

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", "Amount"},
		Rows: [][]string{
			{"Total to sell", r.TotalToSell().String()},
			{"Total to buy", r.TotalToBuy().String()},
		},
	})

	return doc.String()
}

func items(marker string, actions []rebalancer.Rebalance) []string {
	list := make([]string, 0, len(actions))
	for _, a := range actions {
		list = append(list, fmt.Sprintf("%s %s %s", marker, md.Bold(a.Symbol.String()), a.Amount))
	}
	return list
}
