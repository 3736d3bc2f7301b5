package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
	"github.com/folaeazy/snap-bill/internal/domain/valueobject"
)

// GetTransactionInput represents the input for fetching a transaction.
type GetTransactionInput struct {
	UserID uuid.UUID
	ID     string
}

// GetTransactionOutput represents the output of fetching a transaction.
type GetTransactionOutput struct {
	Transaction *TransactionOutput
}

// GetTransactionUseCase handles fetching a single transaction.
type GetTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetTransactionUseCase creates a new GetTransactionUseCase instance.
func NewGetTransactionUseCase(transactionRepo adapter.TransactionRepository) *GetTransactionUseCase {
	return &GetTransactionUseCase{transactionRepo: transactionRepo}
}

// Execute fetches the transaction.
func (uc *GetTransactionUseCase) Execute(ctx context.Context, input GetTransactionInput) (*GetTransactionOutput, error) {
	id, err := valueobject.ParseTransactionID(input.ID)
	if err != nil {
		return nil, err
	}

	txn, err := uc.transactionRepo.FindByID(ctx, input.UserID, id)
	if err != nil {
		return nil, err
	}

	return &GetTransactionOutput{Transaction: newTransactionOutput(txn)}, nil
}
