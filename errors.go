package rebalancer

import "errors"

var (
	// ErrStockInvalid is returned when a stock cannot be added to a portfolio,
	// typically because the number of shares is not positive.
	ErrStockInvalid = errors.New("invalid stock")

	// ErrAllocationInvalid is returned when an allocation weight is out of
	// (0, 1] or when the allocations no longer sum within [0, 1].
	ErrAllocationInvalid = errors.New("invalid allocation")

	// ErrMissingAllocation is returned by Rebalance when a held symbol has no
	// target allocation.
	ErrMissingAllocation = errors.New("missing allocation")

	// ErrUnknownSymbol is returned when parsing a ticker outside the supported set.
	ErrUnknownSymbol = errors.New("unknown symbol")
)
