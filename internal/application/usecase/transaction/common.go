// Package transaction contains transaction-related use cases.
package transaction

import (
	"time"

	"github.com/folaeazy/snap-bill/internal/domain/entity"
	"github.com/folaeazy/snap-bill/internal/domain/valueobject"
)

// BankAccountInput carries the bank account reference fields of an input.
type BankAccountInput struct {
	AccountID string
	Label     string
	Last4     string
	Currency  string
}

// BankAccountOutput represents a bank account reference in use case output.
type BankAccountOutput struct {
	AccountID string
	Label     string
	Last4     string
	Currency  string
}

// TransactionOutput represents a transaction in use case output.
type TransactionOutput struct {
	ID           string
	Type         string
	Amount       string
	Currency     string
	Date         string
	Timestamp    *time.Time
	Merchant     *string
	Category     *string
	Tags         []string
	Account      *BankAccountOutput
	Description  string
	Source       string
	AIConfidence *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// newTransactionOutput maps a transaction entity to its output representation.
func newTransactionOutput(txn *entity.Transaction) *TransactionOutput {
	out := &TransactionOutput{
		ID:          txn.ID().String(),
		Type:        string(txn.Type()),
		Amount:      txn.Amount().Amount().String(),
		Currency:    txn.Amount().Currency().String(),
		Date:        txn.Date().String(),
		Description: txn.Description().Text(),
		Source:      string(txn.Source()),
		CreatedAt:   txn.CreatedAt(),
		UpdatedAt:   txn.UpdatedAt(),
	}
	if at, ok := txn.Date().Time(); ok {
		out.Timestamp = &at
	}
	if m := txn.Merchant(); m != nil {
		name := m.Name()
		out.Merchant = &name
	}
	if c := txn.Category(); c != nil {
		path := c.FullPath()
		out.Category = &path
	}
	for _, tag := range txn.Tags() {
		out.Tags = append(out.Tags, tag.Value())
	}
	if a := txn.Account(); a != nil {
		out.Account = &BankAccountOutput{
			AccountID: a.AccountID(),
			Label:     a.Label(),
			Last4:     a.Last4(),
			Currency:  a.Currency().String(),
		}
	}
	if conf := txn.AIConfidence(); conf != nil {
		s := conf.String()
		out.AIConfidence = &s
	}
	return out
}

// buildDate converts an input timestamp to a transaction date. When dateOnly
// is set the time of day is discarded.
func buildDate(at time.Time, dateOnly bool) valueobject.TransactionDate {
	if dateOnly {
		return valueobject.NewTransactionDate(at)
	}
	return valueobject.NewTransactionDateTime(at)
}

// buildMerchant builds an optional merchant from its raw name.
func buildMerchant(name string) (*valueobject.Merchant, error) {
	if name == "" {
		return nil, nil
	}
	merchant, err := valueobject.NewMerchant(name)
	if err != nil {
		return nil, err
	}
	return &merchant, nil
}

// buildCategory builds an optional category, with an optional sub-category
// nested under it.
func buildCategory(name, subName string) (*valueobject.Category, error) {
	if name == "" {
		return nil, nil
	}
	parent, err := valueobject.NewCategory(name)
	if err != nil {
		return nil, err
	}
	if subName == "" {
		return &parent, nil
	}
	sub, err := valueobject.NewSubCategory(subName, &parent)
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// buildTags builds the tag set from raw values.
func buildTags(values []string) ([]valueobject.Tag, error) {
	tags := make([]valueobject.Tag, 0, len(values))
	for _, v := range values {
		tag, err := valueobject.NewTag(v)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// buildAccount builds an optional bank account reference.
func buildAccount(input *BankAccountInput) (*valueobject.BankAccountRef, error) {
	if input == nil {
		return nil, nil
	}
	currency, err := valueobject.ParseCurrencyCode(input.Currency)
	if err != nil {
		return nil, err
	}
	account, err := valueobject.NewBankAccountRef(input.AccountID, input.Label, input.Last4, currency)
	if err != nil {
		return nil, err
	}
	return &account, nil
}
