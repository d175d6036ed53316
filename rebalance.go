package rebalancer

import (
	"encoding/json"
	"fmt"
)

// Action is the direction a holding must move to reach its target weight.
type Action int

const (
	Hold Action = iota
	Buy
	Sell
)

var actionNames = map[Action]string{
	Hold: "hold",
	Buy:  "buy",
	Sell: "sell",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

func (a Action) MarshalJSON() ([]byte, error) { return json.Marshal(a.String()) }

func (a *Action) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for k, v := range actionNames {
		if v == s {
			*a = k
			return nil
		}
	}
	return fmt.Errorf("unknown action %q", s)
}

// DefaultTolerance is the largest gap between the target and the current value
// of a holding that is still considered balanced. Zero means exact equality.
var DefaultTolerance = Money{}

// Rebalance is a single action on a holding.
type Rebalance struct {
	Action Action
	Symbol Symbol
	Amount Money // Never negative, zero for Hold.
}

func (r Rebalance) String() string {
	return fmt.Sprintf("%s %s %v", r.Action, r.Symbol, r.Amount)
}

func (r Rebalance) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("action", r.Action)
	w.Append("symbol", r.Symbol)
	w.Append("amount", r.Amount)
	return w.MarshalJSON()
}

// Result holds the actions needed to rebalance a portfolio, in holdings order.
type Result struct {
	ToBuy  []Rebalance
	ToSell []Rebalance
}

// IsBalanced reports whether there is nothing to buy nor to sell.
func (r Result) IsBalanced() bool { return len(r.ToBuy) == 0 && len(r.ToSell) == 0 }

// TotalToBuy returns the sum of all buy amounts.
func (r Result) TotalToBuy() Money { return sum(r.ToBuy) }

// TotalToSell returns the sum of all sell amounts.
func (r Result) TotalToSell() Money { return sum(r.ToSell) }

func sum(actions []Rebalance) (total Money) {
	for _, a := range actions {
		total = total.Add(a.Amount)
	}
	return total
}

func (r Result) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("toBuy", nonNil(r.ToBuy))
	w.Append("toSell", nonNil(r.ToSell))
	return w.MarshalJSON()
}

func nonNil(actions []Rebalance) []Rebalance {
	if actions == nil {
		return []Rebalance{}
	}
	return actions
}

// SetTolerance sets the tolerance used to decide that a holding is balanced.
// Only the magnitude of 'tolerance' matters.
func (p *Portfolio) SetTolerance(tolerance Money) { p.tolerance = tolerance.Abs() }

// Tolerance returns the tolerance used to decide that a holding is balanced.
func (p *Portfolio) Tolerance() Money { return p.tolerance }

// Actions returns one action per holding, in holdings order, Hold included.
//
// Every held symbol must have a target allocation, otherwise ErrMissingAllocation is returned.
func (p *Portfolio) Actions() ([]Rebalance, error) {
	for _, s := range p.held {
		if _, ok := p.allocations[s]; !ok {
			return nil, fmt.Errorf("%w: %s is held but has no target allocation", ErrMissingAllocation, s)
		}
	}

	total := p.TotalValue()
	actions := make([]Rebalance, 0, len(p.held))
	for _, s := range p.held {
		current := p.Value(s)
		target := total.Mul(p.allocations[s])
		actions = append(actions, p.classify(s, current, target))
	}
	return actions, nil
}

// classify compares the target and current value of a holding.
func (p *Portfolio) classify(symbol Symbol, current, target Money) Rebalance {
	diff := target.Sub(current)
	switch {
	case diff.Abs().LessThanOrEqual(p.tolerance):
		return Rebalance{Action: Hold, Symbol: symbol, Amount: Money{cur: diff.cur}}
	case diff.IsNegative():
		return Rebalance{Action: Sell, Symbol: symbol, Amount: diff.Neg()}
	default:
		return Rebalance{Action: Buy, Symbol: symbol, Amount: diff}
	}
}

// Rebalance computes what to buy and what to sell to bring every holding to
// its target weight. Balanced holdings are left out.
//
// The portfolio is not modified, and the result only depends on its state.
func (p *Portfolio) Rebalance() (Result, error) {
	actions, err := p.Actions()
	if err != nil {
		return Result{}, err
	}
	res := Result{ToBuy: []Rebalance{}, ToSell: []Rebalance{}}
	for _, a := range actions {
		switch a.Action {
		case Buy:
			res.ToBuy = append(res.ToBuy, a)
		case Sell:
			res.ToSell = append(res.ToSell, a)
		}
	}
	return res, nil
}
