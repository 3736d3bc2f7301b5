package valueobject

import (
	"strings"

	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
)

// Merchant is the payee of a transaction. It keeps the raw display name next
// to a normalized name used for identity, so "SPOTIFY INC PAYPAL" and
// "Spotify" can resolve to the same merchant.
type Merchant struct {
	name       string
	normalized string
}

// NewMerchant creates a merchant whose normalized name equals its display name.
func NewMerchant(name string) (Merchant, error) {
	return NewNormalizedMerchant(name, "")
}

// NewNormalizedMerchant creates a merchant with an explicit normalized name.
// An empty normalized name falls back to the display name.
func NewNormalizedMerchant(name, normalized string) (Merchant, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Merchant{}, domainerror.NewValidationError(
			domainerror.ErrCodeMissingRequiredField,
			"merchant name cannot be empty",
			domainerror.ErrMissingRequiredField,
		)
	}
	normalizedTrimmed := strings.TrimSpace(normalized)
	if normalizedTrimmed == "" {
		normalizedTrimmed = trimmed
	}
	return Merchant{name: trimmed, normalized: normalizedTrimmed}, nil
}

// Name returns the raw display name.
func (m Merchant) Name() string {
	return m.name
}

// NormalizedName returns the name used for identity.
func (m Merchant) NormalizedName() string {
	return m.normalized
}

// IsZero reports whether the merchant is unset.
func (m Merchant) IsZero() bool {
	return m.name == ""
}

// Equal compares by normalized name.
func (m Merchant) Equal(other Merchant) bool {
	return m.normalized == other.normalized
}

// String returns the display name.
func (m Merchant) String() string {
	return m.name
}
