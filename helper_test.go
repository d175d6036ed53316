package rebalancer

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

var (
	metaStock  = NewStock(META, "Meta Platforms", USD(100))
	aaplStock  = NewStock(AAPL, "Apple Inc.", USD(100))
	googlStock = NewStock(GOOGL, "Alphabet Inc.", USD(100))
	msftStock  = NewStock(MSFT, "Microsoft Corp.", USD(100))
)

// cmpOpts compares Money and Weight by value, and nil slices as empty ones.
var cmpOpts = cmp.Options{
	cmp.Comparer(func(a, b Money) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b Weight) bool { return a.Equal(b) }),
	cmpopts.EquateEmpty(),
}

// must panics if err is not nil.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
