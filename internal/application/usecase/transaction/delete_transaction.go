package transaction

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
	"github.com/folaeazy/snap-bill/internal/domain/valueobject"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	UserID uuid.UUID
	ID     string
}

// DeleteTransactionUseCase handles transaction deletion.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	reportCache     adapter.ReportCache
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	reportCache adapter.ReportCache,
) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
		reportCache:     reportCache,
	}
}

// Execute deletes the transaction.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	id, err := valueobject.ParseTransactionID(input.ID)
	if err != nil {
		return err
	}

	if err := uc.transactionRepo.Delete(ctx, input.UserID, id); err != nil {
		return err
	}

	if err := uc.reportCache.InvalidateUser(ctx, input.UserID.String()); err != nil {
		slog.Warn("failed to invalidate report cache", "user_id", input.UserID, "error", err)
	}

	slog.Info("transaction deleted", "transaction_id", id, "user_id", input.UserID)
	return nil
}
