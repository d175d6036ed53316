package rebalancer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
)

// A portfolio file is a JSONL file, one record per line, read from top to
// bottom. A record with "shares" adds a stock, a record with "allocation" adds
// a target weight, and a record can do both:
//
//	{"symbol":"META","name":"Meta Platforms","price":100,"shares":50}
//	{"symbol":"META","allocation":0.4}
//
// Records are applied with AddStock and AddAllocation, so they accumulate the
// same way.

// jrecord is a line of a portfolio file as read by the json parser.
type jrecord struct {
	Symbol     Symbol           `json:"symbol"`
	Name       string           `json:"name"`
	Price      *decimal.Decimal `json:"price"`
	Shares     *int64           `json:"shares"`
	Allocation *Weight          `json:"allocation"`
}

// LoadPortfolio reads the portfolio file 'filename'. Prices without an
// explicit currency are in 'currency'.
func LoadPortfolio(filename, currency string) (*Portfolio, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodePortfolio(filename, f, currency)
}

// DecodePortfolio reads a portfolio file from 'r'. Prices are in 'currency'.
func DecodePortfolio(r io.Reader, currency string) (*Portfolio, error) {
	return decodePortfolio("<input>", r, currency)
}

// decodePortfolio parses a portfolio file. filename is for error message only.
func decodePortfolio(filename string, r io.Reader, currency string) (*Portfolio, error) {
	p := NewPortfolio()
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var rec jrecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("format error in %q on line %d: %w", filename, n, err)
		}
		if err := rec.apply(p, currency); err != nil {
			return nil, fmt.Errorf("format error in %q on line %d: %w", filename, n, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %q: %w", filename, err)
	}
	return p, nil
}

func (rec jrecord) apply(p *Portfolio, currency string) error {
	if rec.Symbol == "" {
		return fmt.Errorf("%w: symbol is missing", ErrUnknownSymbol)
	}
	if rec.Shares == nil && rec.Allocation == nil {
		return fmt.Errorf("%s: record has neither \"shares\" nor \"allocation\"", rec.Symbol)
	}

	if rec.Shares != nil {
		if rec.Price == nil {
			return fmt.Errorf("%w: %s price is missing", ErrStockInvalid, rec.Symbol)
		}
		stock := NewStock(rec.Symbol, rec.Name, M(*rec.Price, currency))
		if err := p.AddStock(stock, *rec.Shares); err != nil {
			return err
		}
	}
	if rec.Allocation != nil {
		if err := p.AddAllocation(rec.Symbol, *rec.Allocation); err != nil {
			return err
		}
	}
	return nil
}
