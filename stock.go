package rebalancer

import "github.com/shopspring/decimal"

// Stock is a catalog entry: a tradeable share identified by its ticker.
type Stock struct {
	symbol Symbol // The ticker used in the portfolio.
	name   string // A human-friendly name for display.
	price  Money  // The price of a single share.
}

func NewStock(symbol Symbol, name string, price Money) Stock {
	return Stock{
		symbol: symbol,
		name:   name,
		price:  price,
	}
}

// Symbol returns the ticker of the stock.
func (s Stock) Symbol() Symbol { return s.symbol }

// Name returns the display name of the stock.
func (s Stock) Name() string { return s.name }

// Price returns the price of one share.
func (s Stock) Price() Money { return s.price }

// Value returns the market value of 'shares' shares of this stock.
func (s Stock) Value(shares int64) Money {
	return Money{value: s.price.value.Mul(decimal.NewFromInt(shares)), cur: s.price.cur}
}
