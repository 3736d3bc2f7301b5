package extraction

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
	"github.com/folaeazy/snap-bill/internal/domain/entity"
	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
)

// ConnectEmailAccountInput represents the input for connecting an inbox.
type ConnectEmailAccountInput struct {
	UserID        uuid.UUID
	Provider      entity.EmailProvider
	ProviderEmail string
	AccessToken   string
	RefreshToken  string
}

// ConnectEmailAccountOutput represents the output of connecting an inbox.
type ConnectEmailAccountOutput struct {
	AccountID string
}

// ConnectEmailAccountUseCase registers a mailbox for receipt ingestion.
type ConnectEmailAccountUseCase struct {
	accountRepo adapter.EmailAccountRepository
}

// NewConnectEmailAccountUseCase creates a new ConnectEmailAccountUseCase instance.
func NewConnectEmailAccountUseCase(accountRepo adapter.EmailAccountRepository) *ConnectEmailAccountUseCase {
	return &ConnectEmailAccountUseCase{accountRepo: accountRepo}
}

// Execute connects the account.
func (uc *ConnectEmailAccountUseCase) Execute(ctx context.Context, input ConnectEmailAccountInput) (*ConnectEmailAccountOutput, error) {
	if !input.Provider.IsValid() {
		return nil, domainerror.NewExtractionError(
			domainerror.ErrCodeUnsupportedProvider,
			"email provider must be GMAIL or OUTLOOK",
			domainerror.ErrUnsupportedEmailProvider,
		)
	}

	account := entity.NewEmailAccount(
		input.UserID,
		input.Provider,
		input.ProviderEmail,
		input.AccessToken,
		input.RefreshToken,
	)
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	slog.Info("email account connected",
		"account_id", account.ID,
		"user_id", input.UserID,
		"provider", input.Provider,
	)
	return &ConnectEmailAccountOutput{AccountID: account.ID.String()}, nil
}
