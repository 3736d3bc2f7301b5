package extraction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
)

// ListEmailAccountsInput represents the input for listing connected inboxes.
type ListEmailAccountsInput struct {
	UserID uuid.UUID
}

// EmailAccountOutput represents a connected inbox in use case output.
type EmailAccountOutput struct {
	ID            string
	Provider      string
	ProviderEmail string
	Status        string
	LastSyncAt    *time.Time
	LastError     string
	ConnectedAt   time.Time
}

// ListEmailAccountsOutput represents the output of listing connected inboxes.
type ListEmailAccountsOutput struct {
	Accounts []*EmailAccountOutput
}

// ListEmailAccountsUseCase lists a user's connected email accounts.
type ListEmailAccountsUseCase struct {
	accountRepo adapter.EmailAccountRepository
}

// NewListEmailAccountsUseCase creates a new ListEmailAccountsUseCase instance.
func NewListEmailAccountsUseCase(accountRepo adapter.EmailAccountRepository) *ListEmailAccountsUseCase {
	return &ListEmailAccountsUseCase{accountRepo: accountRepo}
}

// Execute lists the accounts.
func (uc *ListEmailAccountsUseCase) Execute(ctx context.Context, input ListEmailAccountsInput) (*ListEmailAccountsOutput, error) {
	accounts, err := uc.accountRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	out := &ListEmailAccountsOutput{Accounts: make([]*EmailAccountOutput, 0, len(accounts))}
	for _, account := range accounts {
		out.Accounts = append(out.Accounts, &EmailAccountOutput{
			ID:            account.ID.String(),
			Provider:      string(account.Provider),
			ProviderEmail: account.ProviderEmail,
			Status:        string(account.Status),
			LastSyncAt:    account.LastSyncAt,
			LastError:     account.LastError,
			ConnectedAt:   account.ConnectedAt,
		})
	}
	return out, nil
}
