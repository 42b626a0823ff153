package money

import "fmt"

// Money represents a non-negative monetary amount in integer cents with
// an ISO-4217 currency code.
type Money struct {
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

// New creates a Money value, validating the amount and currency code.
func New(amountCents int64, currency string) (Money, error) {
	m := Money{AmountCents: amountCents, Currency: currency}
	if err := m.Validate(); err != nil {
		return Money{}, err
	}
	return m, nil
}

// Validate checks the amount sign and the shape of the currency code.
func (m Money) Validate() error {
	if m.AmountCents < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeAmount, m.AmountCents)
	}
	if !validCurrency(m.Currency) {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, m.Currency)
	}
	return nil
}

// IsZero reports whether the value is the zero Money (no currency set).
func (m Money) IsZero() bool {
	return m.AmountCents == 0 && m.Currency == ""
}

// SameCurrency reports whether both values share a currency.
func (m Money) SameCurrency(o Money) bool {
	return m.Currency == o.Currency
}

// Add returns the sum of two same-currency values.
func (m Money) Add(o Money) (Money, error) {
	if !m.SameCurrency(o) {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, o.Currency)
	}
	return Money{AmountCents: m.AmountCents + o.AmountCents, Currency: m.Currency}, nil
}

// Diff returns the signed cents difference m − o between two
// same-currency values. Unlike the amounts themselves, the result may be
// negative.
func (m Money) Diff(o Money) (int64, error) {
	if !m.SameCurrency(o) {
		return 0, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, o.Currency)
	}
	return m.AmountCents - o.AmountCents, nil
}

// Cmp compares two same-currency values: -1 if m < o, 0 if equal, 1 if
// m > o.
func (m Money) Cmp(o Money) (int, error) {
	d, err := m.Diff(o)
	if err != nil {
		return 0, err
	}
	switch {
	case d < 0:
		return -1, nil
	case d > 0:
		return 1, nil
	default:
		return 0, nil
	}
}

// Equal reports whether both currency and amount match.
func (m Money) Equal(o Money) bool {
	return m.Currency == o.Currency && m.AmountCents == o.AmountCents
}

// String formats the value as "123.45 USD".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.AmountCents/100, m.AmountCents%100, m.Currency)
}

// validCurrency accepts exactly three ASCII uppercase letters, the shape
// of every ISO-4217 alphabetic code.
func validCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	for i := range 3 {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}
