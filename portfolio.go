package rebalancer

import (
	"fmt"
	"iter"
)

// Portfolio holds owned stocks, their share counts and the target allocation
// for each symbol.
//
// It is not safe for concurrent use: callers must serialize access.
type Portfolio struct {
	stocks      map[Symbol]Stock
	holdings    map[Symbol]int64
	allocations map[Symbol]Weight

	held      []Symbol // holdings in order of first insertion.
	allocated []Symbol // allocations in order of first insertion.

	currency  string
	tolerance Money
}

// NewPortfolio returns an empty portfolio.
func NewPortfolio() *Portfolio {
	return &Portfolio{
		stocks:      make(map[Symbol]Stock),
		holdings:    make(map[Symbol]int64),
		allocations: make(map[Symbol]Weight),
		tolerance:   DefaultTolerance,
	}
}

// AddStock records 'shares' more shares of 'stock'.
//
// The stock catalog entry is replaced by 'stock' (last write wins) while shares
// accumulate. Nothing changes if an error is returned.
func (p *Portfolio) AddStock(stock Stock, shares int64) error {
	if shares <= 0 {
		return fmt.Errorf("%w: shares can't be zero or negative, got %d %s", ErrStockInvalid, shares, stock.symbol)
	}
	if !stock.price.IsPositive() {
		return fmt.Errorf("%w: %s price must be positive, got %v", ErrStockInvalid, stock.symbol, stock.price)
	}
	if c := stock.price.cur; c != "" && p.currency != "" && c != p.currency {
		return fmt.Errorf("%w: %s is priced in %s but the portfolio is in %s", ErrStockInvalid, stock.symbol, c, p.currency)
	}

	if _, exists := p.holdings[stock.symbol]; !exists {
		p.held = append(p.held, stock.symbol)
	}
	p.holdings[stock.symbol] += shares
	p.stocks[stock.symbol] = stock
	if p.currency == "" {
		p.currency = stock.price.cur
	}
	return nil
}

// AddAllocation adds 'weight' to the target allocation of 'symbol'.
//
// The weight must be in (0, 1], otherwise nothing changes. The accumulated
// allocations must sum within [0, 1]: this is checked after the weight has
// been added, so when it fails the allocation is still recorded. Use
// ResetAllocations to start over.
func (p *Portfolio) AddAllocation(symbol Symbol, weight Weight) error {
	if !weight.inUnitRange() {
		return fmt.Errorf("%w: allocation must be between 0%% and 100%%, got %v for %s", ErrAllocationInvalid, weight.Percent(), symbol)
	}

	if _, exists := p.allocations[symbol]; !exists {
		p.allocated = append(p.allocated, symbol)
	}
	p.allocations[symbol] = p.allocations[symbol].Add(weight)

	return p.validateAllocations()
}

func (p *Portfolio) validateAllocations() error {
	total := p.TotalAllocation()
	if total.GreaterThan(W(1)) || total.IsNegative() {
		return fmt.Errorf("%w: allocations must sum to 100%% at most, got %v", ErrAllocationInvalid, total.Percent())
	}
	return nil
}

// ResetAllocations removes every target allocation.
func (p *Portfolio) ResetAllocations() {
	clear(p.allocations)
	p.allocated = nil
}

// Currency returns the currency of the portfolio, set by the first stock added
// with a currency.
func (p *Portfolio) Currency() string { return p.currency }

// Stock returns the catalog entry for 'symbol'.
func (p *Portfolio) Stock(symbol Symbol) (Stock, bool) {
	s, ok := p.stocks[symbol]
	return s, ok
}

// Shares returns the number of shares held for 'symbol', zero if none.
func (p *Portfolio) Shares(symbol Symbol) int64 { return p.holdings[symbol] }

// Allocation returns the target weight for 'symbol'.
func (p *Portfolio) Allocation(symbol Symbol) (Weight, bool) {
	w, ok := p.allocations[symbol]
	return w, ok
}

// Stocks iterates over the stock catalog in insertion order.
func (p *Portfolio) Stocks() iter.Seq2[Symbol, Stock] {
	return func(yield func(Symbol, Stock) bool) {
		for _, s := range p.held {
			if !yield(s, p.stocks[s]) {
				return
			}
		}
	}
}

// Holdings iterates over the share counts in insertion order.
func (p *Portfolio) Holdings() iter.Seq2[Symbol, int64] {
	return func(yield func(Symbol, int64) bool) {
		for _, s := range p.held {
			if !yield(s, p.holdings[s]) {
				return
			}
		}
	}
}

// Allocations iterates over the target weights in insertion order.
func (p *Portfolio) Allocations() iter.Seq2[Symbol, Weight] {
	return func(yield func(Symbol, Weight) bool) {
		for _, s := range p.allocated {
			if !yield(s, p.allocations[s]) {
				return
			}
		}
	}
}

// TotalAllocation returns the sum of all target weights.
func (p *Portfolio) TotalAllocation() (total Weight) {
	for _, w := range p.allocations {
		total = total.Add(w)
	}
	return total
}

// Value returns the market value of the shares held for 'symbol'.
func (p *Portfolio) Value(symbol Symbol) Money {
	return p.stocks[symbol].Value(p.holdings[symbol])
}

// TotalValue returns the market value of all holdings.
func (p *Portfolio) TotalValue() Money {
	total := Money{cur: p.currency}
	for _, s := range p.held {
		total = total.Add(p.Value(s))
	}
	return total
}
