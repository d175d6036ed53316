package rebalancer

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type holding struct {
	stock  Stock
	shares int64
}

type target struct {
	symbol Symbol
	weight float64
}

func newTestPortfolio(holdings []holding, targets []target) *Portfolio {
	p := NewPortfolio()
	for _, h := range holdings {
		must(p.AddStock(h.stock, h.shares))
	}
	for _, a := range targets {
		must(p.AddAllocation(a.symbol, W(a.weight)))
	}
	return p
}

func TestPortfolio_Rebalance(t *testing.T) {
	tests := []struct {
		name     string
		holdings []holding
		targets  []target
		want     Result
	}{
		{
			name:     "two stocks to 40/60",
			holdings: []holding{{metaStock, 50}, {aaplStock, 50}},
			targets:  []target{{META, 0.40}, {AAPL, 0.60}},
			want: Result{
				ToBuy:  []Rebalance{{Action: Buy, Symbol: AAPL, Amount: USD(1000)}},
				ToSell: []Rebalance{{Action: Sell, Symbol: META, Amount: USD(1000)}},
			},
		},
		{
			name:     "three stocks with unequal allocation",
			holdings: []holding{{metaStock, 50}, {aaplStock, 50}, {googlStock, 50}},
			targets:  []target{{META, 0.30}, {AAPL, 0.50}, {GOOGL, 0.20}},
			want: Result{
				ToBuy: []Rebalance{{Action: Buy, Symbol: AAPL, Amount: USD(2500)}},
				ToSell: []Rebalance{
					{Action: Sell, Symbol: META, Amount: USD(500)},
					{Action: Sell, Symbol: GOOGL, Amount: USD(2000)},
				},
			},
		},
		{
			name:     "extreme imbalance to 70/30",
			holdings: []holding{{metaStock, 90}, {aaplStock, 10}},
			targets:  []target{{META, 0.70}, {AAPL, 0.30}},
			want: Result{
				ToBuy:  []Rebalance{{Action: Buy, Symbol: AAPL, Amount: USD(2000)}},
				ToSell: []Rebalance{{Action: Sell, Symbol: META, Amount: USD(2000)}},
			},
		},
		{
			name:     "already balanced",
			holdings: []holding{{metaStock, 60}, {aaplStock, 40}},
			targets:  []target{{META, 0.60}, {AAPL, 0.40}},
			want:     Result{},
		},
		{
			name:     "four stocks complex allocation",
			holdings: []holding{{metaStock, 50}, {aaplStock, 50}, {googlStock, 50}, {msftStock, 50}},
			targets:  []target{{META, 0.40}, {AAPL, 0.30}, {GOOGL, 0.20}, {MSFT, 0.10}},
			want: Result{
				ToBuy: []Rebalance{
					{Action: Buy, Symbol: META, Amount: USD(3000)},
					{Action: Buy, Symbol: AAPL, Amount: USD(1000)},
				},
				ToSell: []Rebalance{
					{Action: Sell, Symbol: GOOGL, Amount: USD(1000)},
					{Action: Sell, Symbol: MSFT, Amount: USD(3000)},
				},
			},
		},
		{
			name:     "allocation order does not matter",
			holdings: []holding{{metaStock, 50}, {aaplStock, 50}},
			targets:  []target{{AAPL, 0.60}, {META, 0.40}},
			want: Result{
				ToBuy:  []Rebalance{{Action: Buy, Symbol: AAPL, Amount: USD(1000)}},
				ToSell: []Rebalance{{Action: Sell, Symbol: META, Amount: USD(1000)}},
			},
		},
		{
			name:     "partial allocation sells the remainder",
			holdings: []holding{{metaStock, 50}, {aaplStock, 50}},
			targets:  []target{{META, 0.50}, {AAPL, 0.25}},
			want: Result{
				ToSell: []Rebalance{{Action: Sell, Symbol: AAPL, Amount: USD(2500)}},
			},
		},
		{
			name: "empty portfolio",
			want: Result{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPortfolio(tt.holdings, tt.targets)
			got, err := p.Rebalance()
			if err != nil {
				t.Fatalf("Rebalance() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got, cmpOpts); diff != "" {
				t.Errorf("Rebalance() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPortfolio_Rebalance_MissingAllocation(t *testing.T) {
	p := newTestPortfolio(
		[]holding{{metaStock, 50}, {aaplStock, 50}},
		[]target{{META, 1}},
	)
	got, err := p.Rebalance()
	if !errors.Is(err, ErrMissingAllocation) {
		t.Fatalf("Rebalance() error = %v, want %v", err, ErrMissingAllocation)
	}
	if !got.IsBalanced() {
		t.Errorf("Rebalance() returned a partial result %v", got)
	}
}

func TestPortfolio_Rebalance_Conservation(t *testing.T) {
	p := NewPortfolio()
	must(p.AddStock(NewStock(META, "Meta Platforms", USD(312.17)), 13))
	must(p.AddStock(NewStock(AAPL, "Apple Inc.", USD(189.03)), 41))
	must(p.AddStock(NewStock(TSLA, "Tesla Inc.", USD(251.44)), 7))
	must(p.AddAllocation(META, W(0.15)))
	must(p.AddAllocation(AAPL, W(0.6)))
	must(p.AddAllocation(TSLA, W(0.25)))

	res, err := p.Rebalance()
	if err != nil {
		t.Fatalf("Rebalance() error = %v", err)
	}
	if !res.TotalToBuy().Equal(res.TotalToSell()) {
		t.Errorf("TotalToBuy() = %v, TotalToSell() = %v, want equal", res.TotalToBuy(), res.TotalToSell())
	}
}

func TestPortfolio_Rebalance_Balanced(t *testing.T) {
	// Awkward prices that land on their targets only with exact arithmetic.
	p := NewPortfolio()
	must(p.AddStock(NewStock(META, "Meta Platforms", USD(0.1)), 3))
	must(p.AddStock(NewStock(AAPL, "Apple Inc.", USD(0.7)), 1))
	must(p.AddAllocation(META, W(0.3)))
	must(p.AddAllocation(AAPL, W(0.7)))

	res, err := p.Rebalance()
	if err != nil {
		t.Fatalf("Rebalance() error = %v", err)
	}
	if !res.IsBalanced() {
		t.Errorf("Rebalance() = %v, want balanced", res)
	}
}

func TestPortfolio_Rebalance_Idempotent(t *testing.T) {
	p := newTestPortfolio(
		[]holding{{metaStock, 50}, {aaplStock, 50}},
		[]target{{META, 0.4}, {AAPL, 0.6}},
	)
	first, err := p.Rebalance()
	if err != nil {
		t.Fatalf("Rebalance() error = %v", err)
	}
	second, err := p.Rebalance()
	if err != nil {
		t.Fatalf("Rebalance() error = %v", err)
	}
	if diff := cmp.Diff(first, second, cmpOpts); diff != "" {
		t.Errorf("Rebalance() is not deterministic (-first +second):\n%s", diff)
	}
	if got := p.Shares(META); got != 50 {
		t.Errorf("Shares(META) = %d after Rebalance(), want 50", got)
	}
}

func TestPortfolio_Actions(t *testing.T) {
	p := newTestPortfolio(
		[]holding{{metaStock, 40}, {aaplStock, 30}, {googlStock, 30}},
		[]target{{META, 0.5}, {AAPL, 0.3}, {GOOGL, 0.2}},
	)
	got, err := p.Actions()
	if err != nil {
		t.Fatalf("Actions() error = %v", err)
	}
	want := []Rebalance{
		{Action: Buy, Symbol: META, Amount: USD(1000)},
		{Action: Hold, Symbol: AAPL, Amount: M(0, "USD")},
		{Action: Sell, Symbol: GOOGL, Amount: USD(1000)},
	}
	if diff := cmp.Diff(want, got, cmpOpts); diff != "" {
		t.Errorf("Actions() mismatch (-want +got):\n%s", diff)
	}

	// Every held symbol is classified exactly once.
	res, err := p.Rebalance()
	if err != nil {
		t.Fatalf("Rebalance() error = %v", err)
	}
	seen := make(map[Symbol]int)
	for _, a := range append(res.ToBuy, res.ToSell...) {
		seen[a.Symbol]++
	}
	for s, n := range seen {
		if n != 1 {
			t.Errorf("%s appears %d times in the result", s, n)
		}
	}
	if seen[AAPL] != 0 {
		t.Errorf("held AAPL appears in the result")
	}
}

func TestPortfolio_SetTolerance(t *testing.T) {
	p := newTestPortfolio(
		[]holding{{metaStock, 50}, {aaplStock, 50}},
		[]target{{META, 0.4}, {AAPL, 0.6}},
	)

	p.SetTolerance(USD(-1000))
	if got := p.Tolerance(); !got.Equal(USD(1000)) {
		t.Errorf("Tolerance() = %v, want %v", got, USD(1000))
	}
	res, err := p.Rebalance()
	if err != nil {
		t.Fatalf("Rebalance() error = %v", err)
	}
	if !res.IsBalanced() {
		t.Errorf("Rebalance() = %v, want balanced within tolerance", res)
	}

	p.SetTolerance(USD(999.99))
	res, err = p.Rebalance()
	if err != nil {
		t.Fatalf("Rebalance() error = %v", err)
	}
	if len(res.ToBuy) != 1 || len(res.ToSell) != 1 {
		t.Errorf("Rebalance() = %v, want one buy and one sell", res)
	}
}

func TestResult_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{
			name: "empty",
			res:  Result{},
			want: `{"toBuy":[],"toSell":[]}`,
		},
		{
			name: "buy and sell",
			res: Result{
				ToBuy:  []Rebalance{{Action: Buy, Symbol: AAPL, Amount: USD(1000)}},
				ToSell: []Rebalance{{Action: Sell, Symbol: META, Amount: USD(1000)}},
			},
			want: `{"toBuy":[{"action":"buy","symbol":"AAPL","amount":{"currency":"USD","amount":"1000"}}],` +
				`"toSell":[{"action":"sell","symbol":"META","amount":{"currency":"USD","amount":"1000"}}]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.res)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAction_JSON(t *testing.T) {
	for _, a := range []Action{Hold, Buy, Sell} {
		data, err := json.Marshal(a)
		if err != nil {
			t.Fatalf("Marshal(%v) error = %v", a, err)
		}
		var got Action
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("Unmarshal(%s) error = %v", data, err)
		}
		if got != a {
			t.Errorf("Unmarshal(%s) = %v, want %v", data, got, a)
		}
	}

	var a Action
	if err := json.Unmarshal([]byte(`"short"`), &a); err == nil {
		t.Error("Unmarshal(\"short\") expected an error, got nil")
	}
}
