package extraction

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
)

// DisconnectEmailAccountInput represents the input for disconnecting an inbox.
type DisconnectEmailAccountInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

// DisconnectEmailAccountUseCase removes a connected email account.
// Previously imported transactions are kept.
type DisconnectEmailAccountUseCase struct {
	accountRepo adapter.EmailAccountRepository
}

// NewDisconnectEmailAccountUseCase creates a new DisconnectEmailAccountUseCase instance.
func NewDisconnectEmailAccountUseCase(accountRepo adapter.EmailAccountRepository) *DisconnectEmailAccountUseCase {
	return &DisconnectEmailAccountUseCase{accountRepo: accountRepo}
}

// Execute disconnects the account.
func (uc *DisconnectEmailAccountUseCase) Execute(ctx context.Context, input DisconnectEmailAccountInput) error {
	if err := uc.accountRepo.Delete(ctx, input.UserID, input.AccountID); err != nil {
		return err
	}
	slog.Info("email account disconnected", "account_id", input.AccountID, "user_id", input.UserID)
	return nil
}
