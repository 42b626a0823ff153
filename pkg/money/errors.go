package money

import "errors"

var (
	// ErrCurrencyMismatch indicates arithmetic or comparison between
	// values of different currencies.
	ErrCurrencyMismatch = errors.New("money: currency mismatch")

	// ErrNegativeAmount indicates a negative cents amount where only
	// non-negative values are valid.
	ErrNegativeAmount = errors.New("money: negative amount")

	// ErrInvalidCurrency indicates a currency code that is not a
	// three-letter ISO-4217 code.
	ErrInvalidCurrency = errors.New("money: invalid currency code")
)
