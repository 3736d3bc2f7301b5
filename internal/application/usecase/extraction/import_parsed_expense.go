package extraction

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
	"github.com/folaeazy/snap-bill/internal/domain/entity"
	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
	"github.com/folaeazy/snap-bill/internal/domain/valueobject"
)

// ImportParsedExpenseInput represents one structured expense record to import,
// e.g. a reviewed AI extraction or a CSV row.
type ImportParsedExpenseInput struct {
	UserID       uuid.UUID
	Source       entity.TransactionSource
	SourceRef    string // dedupe key within the source; empty disables dedupe
	Type         entity.TransactionType
	Amount       decimal.Decimal
	Currency     string
	Date         time.Time
	MerchantName string
	CategoryName string
	Tags         []string
	Description  string
	Confidence   decimal.Decimal
}

// ImportParsedExpenseOutput represents the output of importing one record.
type ImportParsedExpenseOutput struct {
	TransactionID string
}

// ImportParsedExpenseUseCase converts a structured expense record into a
// transaction and persists it.
type ImportParsedExpenseUseCase struct {
	transactionRepo adapter.TransactionRepository
	reportCache     adapter.ReportCache
}

// NewImportParsedExpenseUseCase creates a new ImportParsedExpenseUseCase instance.
func NewImportParsedExpenseUseCase(
	transactionRepo adapter.TransactionRepository,
	reportCache adapter.ReportCache,
) *ImportParsedExpenseUseCase {
	return &ImportParsedExpenseUseCase{
		transactionRepo: transactionRepo,
		reportCache:     reportCache,
	}
}

// Execute imports the record.
func (uc *ImportParsedExpenseUseCase) Execute(ctx context.Context, input ImportParsedExpenseInput) (*ImportParsedExpenseOutput, error) {
	if input.SourceRef != "" {
		exists, err := uc.transactionRepo.ExistsBySourceRef(ctx, input.UserID, input.Source, input.SourceRef)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeDuplicateTransaction,
				"record was already imported",
				domainerror.ErrDuplicateTransaction,
			)
		}
	}

	expense := entity.ParsedExpense{
		Type:         input.Type,
		Amount:       input.Amount,
		Currency:     input.Currency,
		Date:         valueobject.NewTransactionDate(input.Date),
		MerchantName: input.MerchantName,
		CategoryName: input.CategoryName,
		Tags:         input.Tags,
		Description:  input.Description,
		Confidence:   input.Confidence,
	}

	txn, err := expense.ToTransaction(input.Source)
	if err != nil {
		return nil, err
	}

	if input.SourceRef != "" {
		err = uc.transactionRepo.CreateImported(ctx, input.UserID, txn, input.SourceRef)
	} else {
		err = uc.transactionRepo.Create(ctx, input.UserID, txn)
	}
	if err != nil {
		return nil, err
	}

	if err := uc.reportCache.InvalidateUser(ctx, input.UserID.String()); err != nil {
		slog.Warn("failed to invalidate report cache", "user_id", input.UserID, "error", err)
	}

	slog.Info("parsed expense imported",
		"transaction_id", txn.ID(),
		"user_id", input.UserID,
		"source", input.Source,
	)
	return &ImportParsedExpenseOutput{TransactionID: txn.ID().String()}, nil
}
