// Package entity defines the core business entities for the domain layer.
package entity

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
	"github.com/folaeazy/snap-bill/internal/domain/valueobject"
)

// TransactionType classifies the financial direction of a transaction.
// The amount itself is always positive; direction lives here.
type TransactionType string

const (
	// TransactionTypeDebit is money leaving the account (purchase, bill,
	// subscription charge) - the everyday notion of an expense.
	TransactionTypeDebit TransactionType = "DEBIT"
	// TransactionTypeCredit is money entering the account (salary, cashback).
	TransactionTypeCredit TransactionType = "CREDIT"
	// TransactionTypeRefund is a reversal of a previous debit.
	TransactionTypeRefund TransactionType = "REFUND"
	// TransactionTypeTransfer moves money between the user's own accounts.
	TransactionTypeTransfer TransactionType = "TRANSFER"
	// TransactionTypeOther covers adjustments, interest, fees and similar.
	TransactionTypeOther TransactionType = "OTHER"
)

// IsValid reports whether the type belongs to the closed set.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeDebit, TransactionTypeCredit, TransactionTypeRefund,
		TransactionTypeTransfer, TransactionTypeOther:
		return true
	}
	return false
}

// TransactionSource records where a transaction was captured from.
type TransactionSource string

const (
	SourceManual       TransactionSource = "MANUAL"
	SourceEmailGmail   TransactionSource = "EMAIL_GMAIL"
	SourceEmailOutlook TransactionSource = "EMAIL_OUTLOOK"
	SourceEmailOther   TransactionSource = "EMAIL_OTHER"
	SourceBankAPI      TransactionSource = "BANK_API"
	SourceCSVImport    TransactionSource = "CSV_IMPORT"
	SourceOther        TransactionSource = "OTHER"
)

// IsValid reports whether the source belongs to the closed set.
func (s TransactionSource) IsValid() bool {
	switch s {
	case SourceManual, SourceEmailGmail, SourceEmailOutlook, SourceEmailOther,
		SourceBankAPI, SourceCSVImport, SourceOther:
		return true
	}
	return false
}

// Transaction is the aggregate root of the expense domain. Every change to a
// transaction goes through this type so its invariants hold: the amount is
// strictly positive, type/date/source are always present, debits are never
// dated in the future, and the amount currency agrees with the account
// currency when an account is attached.
//
// Transactions are immutable; the WithX and tag mutators return a new value
// carrying the same identity with UpdatedAt refreshed.
type Transaction struct {
	id           valueobject.TransactionID
	txType       TransactionType
	amount       valueobject.Money
	date         valueobject.TransactionDate
	merchant     *valueobject.Merchant
	category     *valueobject.Category
	tags         map[string]valueobject.Tag
	account      *valueobject.BankAccountRef
	description  valueobject.Description
	source       TransactionSource
	aiConfidence *decimal.Decimal // 0.0-1.0 from AI extraction, nil for manual entry
	createdAt    time.Time
	updatedAt    time.Time
}

// TransactionAttributes carries the optional fields of a new transaction.
type TransactionAttributes struct {
	Merchant     *valueobject.Merchant
	Category     *valueobject.Category
	Tags         []valueobject.Tag
	Account      *valueobject.BankAccountRef
	Description  valueobject.Description
	AIConfidence *decimal.Decimal
}

// NewTransaction creates a transaction with a fresh identity, runs full
// invariant validation, and sets CreatedAt == UpdatedAt.
func NewTransaction(
	txType TransactionType,
	amount valueobject.Money,
	date valueobject.TransactionDate,
	source TransactionSource,
	attrs TransactionAttributes,
) (*Transaction, error) {
	now := time.Now().UTC()
	return RehydrateTransaction(
		valueobject.NewTransactionID(),
		txType, amount, date, source, attrs,
		now, now,
	)
}

// RehydrateTransaction rebuilds a transaction with known identity and
// timestamps, e.g. when loading from persistence. It validates like
// NewTransaction does.
func RehydrateTransaction(
	id valueobject.TransactionID,
	txType TransactionType,
	amount valueobject.Money,
	date valueobject.TransactionDate,
	source TransactionSource,
	attrs TransactionAttributes,
	createdAt, updatedAt time.Time,
) (*Transaction, error) {
	if id.IsZero() {
		return nil, domainerror.NewValidationError(
			domainerror.ErrCodeMissingRequiredField,
			"transaction id is required",
			domainerror.ErrMissingRequiredField,
		)
	}

	tags := make(map[string]valueobject.Tag, len(attrs.Tags))
	for _, tag := range attrs.Tags {
		tags[tag.Value()] = tag
	}

	tx := &Transaction{
		id:           id,
		txType:       txType,
		amount:       amount,
		date:         date,
		merchant:     attrs.Merchant,
		category:     attrs.Category,
		tags:         tags,
		account:      attrs.Account,
		description:  attrs.Description,
		source:       source,
		aiConfidence: attrs.AIConfidence,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}

	if err := tx.validate(); err != nil {
		return nil, err
	}
	return tx, nil
}

// validate enforces the aggregate invariants. It runs on every construction
// and every mutation.
func (t *Transaction) validate() error {
	if !t.txType.IsValid() {
		return domainerror.NewValidationError(
			domainerror.ErrCodeMissingRequiredField,
			"transaction type is required",
			domainerror.ErrMissingRequiredField,
		)
	}
	if t.date.IsZero() {
		return domainerror.NewValidationError(
			domainerror.ErrCodeMissingRequiredField,
			"transaction date is required",
			domainerror.ErrMissingRequiredField,
		)
	}
	if !t.source.IsValid() {
		return domainerror.NewValidationError(
			domainerror.ErrCodeMissingRequiredField,
			"transaction source is required",
			domainerror.ErrMissingRequiredField,
		)
	}
	if t.amount.IsZeroOrNegative() {
		return domainerror.NewValidationError(
			domainerror.ErrCodeInvalidAmount,
			"transaction amount must be positive",
			domainerror.ErrInvalidAmount,
		)
	}
	if t.txType == TransactionTypeDebit && t.date.After(valueobject.TransactionDateNow()) {
		return domainerror.NewValidationError(
			domainerror.ErrCodeFutureDebitDate,
			"debit transactions cannot have future dates",
			domainerror.ErrFutureDebitDate,
		)
	}
	if t.aiConfidence != nil && (t.aiConfidence.IsNegative() || t.aiConfidence.GreaterThan(decimal.NewFromInt(1))) {
		return domainerror.NewValidationError(
			domainerror.ErrCodeInvalidAmount,
			"extraction confidence must be within [0, 1]",
			domainerror.ErrInvalidAmount,
		)
	}
	if t.account != nil && t.account.Currency() != t.amount.Currency() {
		return domainerror.NewValidationError(
			domainerror.ErrCodeCurrencyMismatch,
			"transaction currency ("+t.amount.Currency().String()+
				") does not match account currency ("+t.account.Currency().String()+")",
			domainerror.ErrCurrencyMismatch,
		)
	}
	return nil
}

// copy returns a shallow clone with its own tag set, used by the mutators.
func (t *Transaction) copy() *Transaction {
	tags := make(map[string]valueobject.Tag, len(t.tags))
	for k, v := range t.tags {
		tags[k] = v
	}
	clone := *t
	clone.tags = tags
	return &clone
}

// touch refreshes UpdatedAt on a mutated copy. CreatedAt never changes.
func (t *Transaction) touch() {
	t.updatedAt = time.Now().UTC()
}

// WithType returns a copy with the type replaced and invariants re-checked.
func (t *Transaction) WithType(txType TransactionType) (*Transaction, error) {
	clone := t.copy()
	clone.txType = txType
	clone.touch()
	if err := clone.validate(); err != nil {
		return nil, err
	}
	return clone, nil
}

// WithAmount returns a copy with the amount replaced and invariants re-checked.
func (t *Transaction) WithAmount(amount valueobject.Money) (*Transaction, error) {
	clone := t.copy()
	clone.amount = amount
	clone.touch()
	if err := clone.validate(); err != nil {
		return nil, err
	}
	return clone, nil
}

// WithDate returns a copy with the date replaced and invariants re-checked.
func (t *Transaction) WithDate(date valueobject.TransactionDate) (*Transaction, error) {
	clone := t.copy()
	clone.date = date
	clone.touch()
	if err := clone.validate(); err != nil {
		return nil, err
	}
	return clone, nil
}

// WithMerchant returns a copy with the merchant replaced (nil clears it).
func (t *Transaction) WithMerchant(merchant *valueobject.Merchant) *Transaction {
	clone := t.copy()
	clone.merchant = merchant
	clone.touch()
	return clone
}

// WithCategory returns a copy with the category replaced (nil clears it).
func (t *Transaction) WithCategory(category *valueobject.Category) *Transaction {
	clone := t.copy()
	clone.category = category
	clone.touch()
	return clone
}

// WithDescription returns a copy with the description replaced.
func (t *Transaction) WithDescription(description valueobject.Description) *Transaction {
	clone := t.copy()
	clone.description = description
	clone.touch()
	return clone
}

// WithAccount returns a copy with the account reference replaced (nil clears
// it) and invariants re-checked for currency agreement.
func (t *Transaction) WithAccount(account *valueobject.BankAccountRef) (*Transaction, error) {
	clone := t.copy()
	clone.account = account
	clone.touch()
	if err := clone.validate(); err != nil {
		return nil, err
	}
	return clone, nil
}

// AddTag returns a copy with the tag added. Adding a tag that is already a
// member leaves the set unchanged but still refreshes UpdatedAt.
func (t *Transaction) AddTag(tag valueobject.Tag) *Transaction {
	clone := t.copy()
	clone.tags[tag.Value()] = tag
	clone.touch()
	return clone
}

// RemoveTag returns a copy with the tag removed. Removing an absent tag is a
// membership no-op but still refreshes UpdatedAt.
func (t *Transaction) RemoveTag(tag valueobject.Tag) *Transaction {
	clone := t.copy()
	delete(clone.tags, tag.Value())
	clone.touch()
	return clone
}

// ID returns the transaction identity.
func (t *Transaction) ID() valueobject.TransactionID { return t.id }

// Type returns the transaction type.
func (t *Transaction) Type() TransactionType { return t.txType }

// Amount returns the monetary amount.
func (t *Transaction) Amount() valueobject.Money { return t.amount }

// Date returns the transaction date.
func (t *Transaction) Date() valueobject.TransactionDate { return t.date }

// Merchant returns the merchant, or nil when unknown.
func (t *Transaction) Merchant() *valueobject.Merchant { return t.merchant }

// Category returns the category, or nil when uncategorized.
func (t *Transaction) Category() *valueobject.Category { return t.category }

// Account returns the bank account reference, or nil.
func (t *Transaction) Account() *valueobject.BankAccountRef { return t.account }

// Description returns the narration (possibly empty).
func (t *Transaction) Description() valueobject.Description { return t.description }

// Source returns where the transaction was captured from.
func (t *Transaction) Source() TransactionSource { return t.source }

// AIConfidence returns the extraction confidence, or nil for manual entries.
func (t *Transaction) AIConfidence() *decimal.Decimal { return t.aiConfidence }

// CreatedAt returns the creation timestamp.
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }

// UpdatedAt returns the last modification timestamp.
func (t *Transaction) UpdatedAt() time.Time { return t.updatedAt }

// Tags returns the tag set as a sorted copy; mutating it does not touch the
// transaction.
func (t *Transaction) Tags() []valueobject.Tag {
	tags := make([]valueobject.Tag, 0, len(t.tags))
	for _, tag := range t.tags {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Value() < tags[j].Value() })
	return tags
}

// HasTag reports tag membership.
func (t *Transaction) HasTag(tag valueobject.Tag) bool {
	_, ok := t.tags[tag.Value()]
	return ok
}

// IsDebit reports whether the transaction is a debit.
func (t *Transaction) IsDebit() bool { return t.txType == TransactionTypeDebit }

// IsCredit reports whether the transaction is a credit.
func (t *Transaction) IsCredit() bool { return t.txType == TransactionTypeCredit }

// Equal compares by identity only; two versions of the same transaction are
// equal regardless of their other fields.
func (t *Transaction) Equal(other *Transaction) bool {
	if other == nil {
		return false
	}
	return t.id.Equal(other.id)
}

// String renders a short summary for logs.
func (t *Transaction) String() string {
	return "Transaction{id=" + t.id.String() +
		", type=" + string(t.txType) +
		", amount=" + t.amount.String() +
		", date=" + t.date.String() +
		", source=" + string(t.source) + "}"
}
