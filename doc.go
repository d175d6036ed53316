// Package rebalancer computes the trades that bring a stock portfolio back to
// its target allocation.
//
// A Portfolio tracks three things, all keyed by ticker Symbol:
//   - the stock catalog: name and price per share of each Stock,
//   - the holdings: how many shares are owned,
//   - the allocations: the target Weight of each symbol, as a fraction of the
//     total portfolio value.
//
// Portfolio.Rebalance compares, for each holding, its current value with its
// target value and returns what to buy and what to sell. Fees, taxes and
// fractional shares are ignored: amounts are expressed in money, not shares.
//
// All calculations use exact decimal arithmetic, so a holding that sits
// exactly on its target is reported as balanced.
//
// This package serves as the foundational logic for the `rbl` command-line
// tool.
package rebalancer
