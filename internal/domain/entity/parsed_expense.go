package entity

import (
	"github.com/shopspring/decimal"

	"github.com/folaeazy/snap-bill/internal/domain/valueobject"
)

// ParsedExpense is the structured record produced by AI/email extraction.
// It is the sole extraction input the domain accepts; ToTransaction converts
// it into validated value objects and rejects malformed records before a
// Transaction is ever constructed.
type ParsedExpense struct {
	Type         TransactionType
	Amount       decimal.Decimal
	Currency     string
	Date         valueobject.TransactionDate
	MerchantName string
	CategoryName string
	Tags         []string
	Description  string
	Confidence   decimal.Decimal // 0.0-1.0
}

// ExtractionResult is the outcome of running extraction over one email.
type ExtractionResult struct {
	Expenses          []ParsedExpense
	OverallConfidence decimal.Decimal
	RawReasoning      string // model output kept for debugging and user review
	ErrorMessage      string // empty on success
}

// ToTransaction validates every field of the parsed record and wraps it into
// a new Transaction with the given source.
func (p ParsedExpense) ToTransaction(source TransactionSource) (*Transaction, error) {
	currency, err := valueobject.ParseCurrencyCode(p.Currency)
	if err != nil {
		return nil, err
	}
	amount, err := valueobject.NewMoney(p.Amount, currency)
	if err != nil {
		return nil, err
	}

	attrs := TransactionAttributes{
		Description: valueobject.NewDescription(p.Description),
	}

	if p.MerchantName != "" {
		merchant, err := valueobject.NewMerchant(p.MerchantName)
		if err != nil {
			return nil, err
		}
		attrs.Merchant = &merchant
	}
	if p.CategoryName != "" {
		category, err := valueobject.NewCategory(p.CategoryName)
		if err != nil {
			return nil, err
		}
		attrs.Category = &category
	}
	for _, raw := range p.Tags {
		tag, err := valueobject.NewTag(raw)
		if err != nil {
			return nil, err
		}
		attrs.Tags = append(attrs.Tags, tag)
	}

	confidence := p.Confidence
	attrs.AIConfidence = &confidence

	return NewTransaction(p.Type, amount, p.Date, source, attrs)
}
