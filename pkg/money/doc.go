// Package money provides an integer-cents monetary value type with an
// ISO-4217 currency code.
//
// All arithmetic and comparison between two Money values requires equal
// currencies; a mismatch is reported as ErrCurrencyMismatch rather than
// silently converted. Amounts are stored as non-negative cents — signed
// deltas (profit/loss) are expressed as plain int64 via Diff.
//
// # Usage
//
//	buyIn, _ := money.New(20000, "USD")
//	stack, _ := money.New(15000, "USD")
//
//	net, _ := stack.Diff(buyIn) // -5000
//
// Money values are immutable; every operation returns a new value.
package money
