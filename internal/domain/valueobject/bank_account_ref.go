package valueobject

import (
	"strings"

	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
)

// BankAccountRef is a lightweight immutable reference to a bank account,
// used where the full account aggregate is not needed. Identity is the
// account ID only.
type BankAccountRef struct {
	accountID string
	label     string
	last4     string // empty when unknown
	currency  CurrencyCode
}

// NewBankAccountRef creates an account reference. Account ID, label and
// currency are mandatory; last4 may be empty.
func NewBankAccountRef(accountID, label, last4 string, currency CurrencyCode) (BankAccountRef, error) {
	id := strings.TrimSpace(accountID)
	if id == "" {
		return BankAccountRef{}, domainerror.NewValidationError(
			domainerror.ErrCodeMissingRequiredField,
			"bank account id is required",
			domainerror.ErrMissingRequiredField,
		)
	}
	trimmedLabel := strings.TrimSpace(label)
	if trimmedLabel == "" {
		return BankAccountRef{}, domainerror.NewValidationError(
			domainerror.ErrCodeMissingRequiredField,
			"bank account label is required",
			domainerror.ErrMissingRequiredField,
		)
	}
	if !currency.IsValid() {
		return BankAccountRef{}, domainerror.NewValidationError(
			domainerror.ErrCodeMissingRequiredField,
			"bank account currency is required",
			domainerror.ErrMissingRequiredField,
		)
	}
	return BankAccountRef{
		accountID: id,
		label:     trimmedLabel,
		last4:     strings.TrimSpace(last4),
		currency:  currency,
	}, nil
}

// AccountID returns the internal or external account reference.
func (b BankAccountRef) AccountID() string {
	return b.accountID
}

// Label returns the display label, e.g. "GTBank Savings".
func (b BankAccountRef) Label() string {
	return b.label
}

// Last4 returns the masked digits for display, empty when unknown.
func (b BankAccountRef) Last4() string {
	return b.last4
}

// Currency returns the default currency of the account.
func (b BankAccountRef) Currency() CurrencyCode {
	return b.currency
}

// IsZero reports whether the reference is unset.
func (b BankAccountRef) IsZero() bool {
	return b.accountID == ""
}

// Equal compares by account ID only.
func (b BankAccountRef) Equal(other BankAccountRef) bool {
	return b.accountID == other.accountID
}

// String renders a masked display form, e.g. "GTBank Savings (****1234)".
func (b BankAccountRef) String() string {
	last4 := b.last4
	if last4 == "" {
		last4 = "xxxx"
	}
	return b.label + " (****" + last4 + ")"
}
