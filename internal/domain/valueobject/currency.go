// Package valueobject defines the immutable value objects of the expense domain.
package valueobject

import (
	"strings"

	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
)

// CurrencyCode is a supported ISO 4217 currency code.
type CurrencyCode string

const (
	CurrencyNGN CurrencyCode = "NGN"
	CurrencyUSD CurrencyCode = "USD"
	CurrencyEUR CurrencyCode = "EUR"
	CurrencyGBP CurrencyCode = "GBP"
)

// supportedCurrencies is the closed set of currencies the domain accepts.
var supportedCurrencies = map[CurrencyCode]struct{}{
	CurrencyNGN: {},
	CurrencyUSD: {},
	CurrencyEUR: {},
	CurrencyGBP: {},
}

// ParseCurrencyCode parses a 3-letter currency code, case-insensitively.
// Unknown codes fail with ErrInvalidIdentifier.
func ParseCurrencyCode(code string) (CurrencyCode, error) {
	normalized := CurrencyCode(strings.ToUpper(strings.TrimSpace(code)))
	if _, ok := supportedCurrencies[normalized]; !ok {
		return "", domainerror.NewValidationError(
			domainerror.ErrCodeInvalidIdentifier,
			"unknown currency code: "+code,
			domainerror.ErrInvalidIdentifier,
		)
	}
	return normalized, nil
}

// IsValid reports whether the code belongs to the supported set.
func (c CurrencyCode) IsValid() bool {
	_, ok := supportedCurrencies[c]
	return ok
}

// String returns the 3-letter code.
func (c CurrencyCode) String() string {
	return string(c)
}
