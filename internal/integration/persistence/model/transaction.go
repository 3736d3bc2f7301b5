// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/folaeazy/snap-bill/internal/domain/entity"
	"github.com/folaeazy/snap-bill/internal/domain/valueobject"
)

// TransactionModel represents the transactions table in the database.
// Value objects are flattened into scalar columns and rebuilt on load.
type TransactionModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type       string          `gorm:"type:varchar(10);not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Currency   string          `gorm:"type:varchar(3);not null;index"`
	Date       time.Time       `gorm:"type:date;not null;index"`
	OccurredAt *time.Time      `gorm:"type:timestamptz"` // set when the time of day is known

	MerchantName       string `gorm:"type:varchar(255)"`
	MerchantNormalized string `gorm:"type:varchar(255);index"`

	CategoryName    string `gorm:"type:varchar(100);index"`
	SubCategoryName string `gorm:"type:varchar(100)"`

	Tags pq.StringArray `gorm:"type:text[]"`

	AccountID       string `gorm:"type:varchar(100)"`
	AccountLabel    string `gorm:"type:varchar(100)"`
	AccountLast4    string `gorm:"type:varchar(4)"`
	AccountCurrency string `gorm:"type:varchar(3)"`

	Description  string           `gorm:"type:text"`
	Source       string           `gorm:"type:varchar(20);not null;index"`
	SourceRef    string           `gorm:"type:varchar(255);index:idx_transactions_source_ref"`
	AIConfidence *decimal.Decimal `gorm:"type:decimal(3,2)"`

	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"` // Soft-delete support

	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity rebuilds the domain Transaction from the stored columns. Rows that
// no longer satisfy the domain invariants surface as errors instead of
// half-built aggregates.
func (m *TransactionModel) ToEntity() (*entity.Transaction, error) {
	currency, err := valueobject.ParseCurrencyCode(m.Currency)
	if err != nil {
		return nil, err
	}
	amount, err := valueobject.NewMoney(m.Amount, currency)
	if err != nil {
		return nil, err
	}

	var date valueobject.TransactionDate
	if m.OccurredAt != nil {
		date = valueobject.NewTransactionDateTime(*m.OccurredAt)
	} else {
		date = valueobject.NewTransactionDate(m.Date)
	}

	attrs := entity.TransactionAttributes{
		Description:  valueobject.NewDescription(m.Description),
		AIConfidence: m.AIConfidence,
	}

	if m.MerchantName != "" {
		merchant, err := valueobject.NewNormalizedMerchant(m.MerchantName, m.MerchantNormalized)
		if err != nil {
			return nil, err
		}
		attrs.Merchant = &merchant
	}

	if m.CategoryName != "" {
		category, err := valueobject.NewCategory(m.CategoryName)
		if err != nil {
			return nil, err
		}
		if m.SubCategoryName != "" {
			sub, err := valueobject.NewSubCategory(m.SubCategoryName, &category)
			if err != nil {
				return nil, err
			}
			category = sub
		}
		attrs.Category = &category
	}

	for _, raw := range m.Tags {
		tag, err := valueobject.NewTag(raw)
		if err != nil {
			return nil, err
		}
		attrs.Tags = append(attrs.Tags, tag)
	}

	if m.AccountID != "" {
		accountCurrency, err := valueobject.ParseCurrencyCode(m.AccountCurrency)
		if err != nil {
			return nil, err
		}
		account, err := valueobject.NewBankAccountRef(m.AccountID, m.AccountLabel, m.AccountLast4, accountCurrency)
		if err != nil {
			return nil, err
		}
		attrs.Account = &account
	}

	return entity.RehydrateTransaction(
		valueobject.TransactionIDFromUUID(m.ID),
		entity.TransactionType(m.Type),
		amount,
		date,
		entity.TransactionSource(m.Source),
		attrs,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

// TransactionFromEntity flattens a domain Transaction into its table row.
func TransactionFromEntity(userID uuid.UUID, txn *entity.Transaction) *TransactionModel {
	m := &TransactionModel{
		ID:          txn.ID().UUID(),
		UserID:      userID,
		Type:        string(txn.Type()),
		Amount:      txn.Amount().Amount(),
		Currency:    txn.Amount().Currency().String(),
		Date:        txn.Date().Date(),
		Description: txn.Description().Text(),
		Source:      string(txn.Source()),
		CreatedAt:   txn.CreatedAt(),
		UpdatedAt:   txn.UpdatedAt(),
	}

	if at, ok := txn.Date().Time(); ok {
		m.OccurredAt = &at
	}
	if merchant := txn.Merchant(); merchant != nil {
		m.MerchantName = merchant.Name()
		m.MerchantNormalized = merchant.NormalizedName()
	}
	if category := txn.Category(); category != nil {
		if parent := category.Parent(); parent != nil {
			m.CategoryName = parent.Name()
			m.SubCategoryName = category.Name()
		} else {
			m.CategoryName = category.Name()
		}
	}
	for _, tag := range txn.Tags() {
		m.Tags = append(m.Tags, tag.Value())
	}
	if account := txn.Account(); account != nil {
		m.AccountID = account.AccountID()
		m.AccountLabel = account.Label()
		m.AccountLast4 = account.Last4()
		m.AccountCurrency = account.Currency().String()
	}
	if conf := txn.AIConfidence(); conf != nil {
		m.AIConfidence = conf
	}
	return m
}
