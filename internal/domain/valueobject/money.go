package valueobject

import (
	"github.com/shopspring/decimal"

	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
)

// Money is an immutable monetary amount paired with a currency.
// Amounts are never negative; direction is carried by the transaction type.
// All arithmetic returns a new value.
type Money struct {
	amount   decimal.Decimal
	currency CurrencyCode
}

// NewMoney creates a Money value. It fails with ErrInvalidAmount for
// negative amounts and ErrMissingRequiredField for an unsupported currency.
func NewMoney(amount decimal.Decimal, currency CurrencyCode) (Money, error) {
	if !currency.IsValid() {
		return Money{}, domainerror.NewValidationError(
			domainerror.ErrCodeMissingRequiredField,
			"currency is required",
			domainerror.ErrMissingRequiredField,
		)
	}
	if amount.IsNegative() {
		return Money{}, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidAmount,
			"money amount cannot be negative",
			domainerror.ErrInvalidAmount,
		)
	}
	return Money{amount: amount, currency: currency}, nil
}

// MustMoney is a convenience constructor for statically known amounts.
// It panics on invalid input, so it belongs in tests and literals only.
func MustMoney(amount string, currency CurrencyCode) Money {
	m, err := NewMoney(decimal.RequireFromString(amount), currency)
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney returns a zero amount in the given currency. Like MustMoney it
// is meant for statically known currencies and panics on an unsupported one.
func ZeroMoney(currency CurrencyCode) Money {
	if !currency.IsValid() {
		panic("unsupported currency: " + currency.String())
	}
	return Money{amount: decimal.Zero, currency: currency}
}

// Amount returns the decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() CurrencyCode {
	return m.currency
}

// Add returns the sum of two amounts. It fails with ErrCurrencyMismatch
// when the currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if err := m.checkSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{amount: m.amount.Add(other.amount), currency: m.currency}, nil
}

// Subtract returns the difference of two amounts. A result that would be
// negative fails with ErrInvalidAmount; the type never holds negative values.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.checkSameCurrency(other); err != nil {
		return Money{}, err
	}
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidAmount,
			"subtraction would produce a negative amount",
			domainerror.ErrInvalidAmount,
		)
	}
	return Money{amount: result, currency: m.currency}, nil
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is strictly positive.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsZeroOrNegative reports whether the amount is zero or below.
func (m Money) IsZeroOrNegative() bool {
	return !m.amount.IsPositive()
}

// Equal compares amount numerically (trailing zeros are irrelevant) and
// currency exactly.
func (m Money) Equal(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

func (m Money) checkSameCurrency(other Money) error {
	if m.currency != other.currency {
		return domainerror.NewValidationError(
			domainerror.ErrCodeCurrencyMismatch,
			"currencies must match: "+m.currency.String()+" vs "+other.currency.String(),
			domainerror.ErrCurrencyMismatch,
		)
	}
	return nil
}

// String renders the amount and currency, e.g. "1500.06 NGN".
func (m Money) String() string {
	return m.amount.String() + " " + m.currency.String()
}
