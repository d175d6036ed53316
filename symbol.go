package rebalancer

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Symbol is a ticker identifier restricted to the set returned by Symbols.
type Symbol string

const (
	AAPL  Symbol = "AAPL"
	GOOGL Symbol = "GOOGL"
	MSFT  Symbol = "MSFT"
	AMZN  Symbol = "AMZN"
	TSLA  Symbol = "TSLA"
	META  Symbol = "META"
)

var symbols = []Symbol{AAPL, GOOGL, MSFT, AMZN, TSLA, META}

// Symbols returns all the supported tickers in their canonical order.
func Symbols() []Symbol { return slices.Clone(symbols) }

// ParseSymbol returns the Symbol for 's'. The input is trimmed and upper-cased
// first, so "meta " is META.
func ParseSymbol(s string) (Symbol, error) {
	sym := Symbol(strings.ToUpper(strings.TrimSpace(s)))
	if !sym.Valid() {
		return "", fmt.Errorf("%w: %q is not one of %v", ErrUnknownSymbol, s, symbols)
	}
	return sym, nil
}

// Valid reports whether s belongs to the supported set.
func (s Symbol) Valid() bool { return slices.Contains(symbols, s) }

func (s Symbol) String() string { return string(s) }

// UnmarshalJSON implements the json.Unmarshaler interface, rejecting unknown tickers.
func (s *Symbol) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	sym, err := ParseSymbol(raw)
	if err != nil {
		return err
	}
	*s = sym
	return nil
}
