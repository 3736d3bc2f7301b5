package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
	"github.com/folaeazy/snap-bill/internal/domain/entity"
	"github.com/folaeazy/snap-bill/internal/domain/valueobject"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	Type        entity.TransactionType
	Amount      decimal.Decimal
	Currency    string
	Date        time.Time
	DateOnly    bool
	Merchant    string
	Category    string
	SubCategory string
	Tags        []string
	Account     *BankAccountInput
	Description string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles manual transaction creation.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	reportCache     adapter.ReportCache
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	reportCache adapter.ReportCache,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		reportCache:     reportCache,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	currency, err := valueobject.ParseCurrencyCode(input.Currency)
	if err != nil {
		return nil, err
	}

	amount, err := valueobject.NewMoney(input.Amount, currency)
	if err != nil {
		return nil, err
	}

	merchant, err := buildMerchant(input.Merchant)
	if err != nil {
		return nil, err
	}

	category, err := buildCategory(input.Category, input.SubCategory)
	if err != nil {
		return nil, err
	}

	tags, err := buildTags(input.Tags)
	if err != nil {
		return nil, err
	}

	account, err := buildAccount(input.Account)
	if err != nil {
		return nil, err
	}

	txn, err := entity.NewTransaction(
		input.Type,
		amount,
		buildDate(input.Date, input.DateOnly),
		entity.SourceManual,
		entity.TransactionAttributes{
			Merchant:    merchant,
			Category:    category,
			Tags:        tags,
			Account:     account,
			Description: valueobject.NewDescription(input.Description),
		},
	)
	if err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Create(ctx, input.UserID, txn); err != nil {
		return nil, err
	}

	if err := uc.reportCache.InvalidateUser(ctx, input.UserID.String()); err != nil {
		slog.Warn("failed to invalidate report cache", "user_id", input.UserID, "error", err)
	}

	slog.Info("transaction created",
		"transaction_id", txn.ID(),
		"user_id", input.UserID,
		"type", txn.Type(),
		"amount", txn.Amount(),
	)

	return &CreateTransactionOutput{Transaction: newTransactionOutput(txn)}, nil
}
