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

// UpdateTransactionInput represents the input for a partial transaction
// update. Nil fields are left untouched.
type UpdateTransactionInput struct {
	UserID       uuid.UUID
	ID           string
	Type         *entity.TransactionType
	Amount       *decimal.Decimal
	Currency     *string
	Date         *time.Time
	DateOnly     bool
	Merchant     *string // empty string clears the merchant
	Category     *string // empty string clears the category
	SubCategory  string
	AddTags      []string
	RemoveTags   []string
	Account      *BankAccountInput
	ClearAccount bool
	Description  *string
}

// UpdateTransactionOutput represents the output of a transaction update.
type UpdateTransactionOutput struct {
	Transaction *TransactionOutput
}

// UpdateTransactionUseCase handles transaction updates.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	reportCache     adapter.ReportCache
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	reportCache adapter.ReportCache,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		reportCache:     reportCache,
	}
}

// Execute applies the update and persists the result.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	id, err := valueobject.ParseTransactionID(input.ID)
	if err != nil {
		return nil, err
	}

	txn, err := uc.transactionRepo.FindByID(ctx, input.UserID, id)
	if err != nil {
		return nil, err
	}

	if input.Type != nil {
		if txn, err = txn.WithType(*input.Type); err != nil {
			return nil, err
		}
	}

	if input.Amount != nil || input.Currency != nil {
		amount := txn.Amount().Amount()
		currency := txn.Amount().Currency()
		if input.Amount != nil {
			amount = *input.Amount
		}
		if input.Currency != nil {
			if currency, err = valueobject.ParseCurrencyCode(*input.Currency); err != nil {
				return nil, err
			}
		}
		money, err := valueobject.NewMoney(amount, currency)
		if err != nil {
			return nil, err
		}
		if txn, err = txn.WithAmount(money); err != nil {
			return nil, err
		}
	}

	if input.Date != nil {
		if txn, err = txn.WithDate(buildDate(*input.Date, input.DateOnly)); err != nil {
			return nil, err
		}
	}

	if input.Merchant != nil {
		merchant, err := buildMerchant(*input.Merchant)
		if err != nil {
			return nil, err
		}
		txn = txn.WithMerchant(merchant)
	}

	if input.Category != nil {
		category, err := buildCategory(*input.Category, input.SubCategory)
		if err != nil {
			return nil, err
		}
		txn = txn.WithCategory(category)
	}

	if input.ClearAccount {
		if txn, err = txn.WithAccount(nil); err != nil {
			return nil, err
		}
	} else if input.Account != nil {
		account, err := buildAccount(input.Account)
		if err != nil {
			return nil, err
		}
		if txn, err = txn.WithAccount(account); err != nil {
			return nil, err
		}
	}

	if input.Description != nil {
		txn = txn.WithDescription(valueobject.NewDescription(*input.Description))
	}

	for _, v := range input.AddTags {
		tag, err := valueobject.NewTag(v)
		if err != nil {
			return nil, err
		}
		txn = txn.AddTag(tag)
	}

	for _, v := range input.RemoveTags {
		tag, err := valueobject.NewTag(v)
		if err != nil {
			return nil, err
		}
		txn = txn.RemoveTag(tag)
	}

	if err := uc.transactionRepo.Update(ctx, input.UserID, txn); err != nil {
		return nil, err
	}

	if err := uc.reportCache.InvalidateUser(ctx, input.UserID.String()); err != nil {
		slog.Warn("failed to invalidate report cache", "user_id", input.UserID, "error", err)
	}

	slog.Info("transaction updated", "transaction_id", txn.ID(), "user_id", input.UserID)

	return &UpdateTransactionOutput{Transaction: newTransactionOutput(txn)}, nil
}
