// Package extraction contains use cases that turn connected-inbox email into
// transactions.
package extraction

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
	"github.com/folaeazy/snap-bill/internal/domain/entity"
	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
)

// defaultLookback bounds the first sync of a freshly connected account.
const defaultLookback = 30 * 24 * time.Hour

// SyncEmailAccountInput represents the input for syncing one email account.
type SyncEmailAccountInput struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
}

// SyncEmailAccountOutput summarizes a sync run.
type SyncEmailAccountOutput struct {
	MessagesFetched      int
	TransactionsImported int
	DuplicatesSkipped    int
	InvalidSkipped       int
}

// SyncEmailAccountUseCase fetches new messages from a connected inbox, runs
// expense extraction over them, and imports the resulting transactions.
type SyncEmailAccountUseCase struct {
	accountRepo     adapter.EmailAccountRepository
	transactionRepo adapter.TransactionRepository
	gatewayResolver adapter.EmailGatewayResolver
	extractor       adapter.ExpenseExtractor
	reportCache     adapter.ReportCache
	emailService    adapter.EmailService
	userRepo        adapter.UserRepository
}

// NewSyncEmailAccountUseCase creates a new SyncEmailAccountUseCase instance.
func NewSyncEmailAccountUseCase(
	accountRepo adapter.EmailAccountRepository,
	transactionRepo adapter.TransactionRepository,
	gatewayResolver adapter.EmailGatewayResolver,
	extractor adapter.ExpenseExtractor,
	reportCache adapter.ReportCache,
	emailService adapter.EmailService,
	userRepo adapter.UserRepository,
) *SyncEmailAccountUseCase {
	return &SyncEmailAccountUseCase{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		gatewayResolver: gatewayResolver,
		extractor:       extractor,
		reportCache:     reportCache,
		emailService:    emailService,
		userRepo:        userRepo,
	}
}

// Execute runs one sync for the account.
func (uc *SyncEmailAccountUseCase) Execute(ctx context.Context, input SyncEmailAccountInput) (*SyncEmailAccountOutput, error) {
	account, err := uc.accountRepo.FindByID(ctx, input.UserID, input.AccountID)
	if err != nil {
		return nil, err
	}

	if account.Status == entity.ConnectionStatusRevoked {
		return nil, domainerror.NewExtractionError(
			domainerror.ErrCodeEmailAccountRevoked,
			"email account connection was revoked",
			domainerror.ErrEmailAccountRevoked,
		)
	}

	gateway, err := uc.gatewayResolver.Resolve(account.Provider)
	if err != nil {
		return nil, err
	}

	if account.TokenExpiry != nil && account.TokenExpiry.Before(time.Now().UTC()) {
		if err := gateway.RefreshAccessToken(ctx, account); err != nil {
			return nil, uc.failSync(ctx, account, err)
		}
	}

	since := time.Now().UTC().Add(-defaultLookback)
	if account.LastSyncAt != nil {
		since = *account.LastSyncAt
	}

	messages, err := gateway.FetchMessages(ctx, account, since)
	if err != nil {
		return nil, uc.failSync(ctx, account, err)
	}

	out := &SyncEmailAccountOutput{MessagesFetched: len(messages)}
	source := account.TransactionSource()

	for _, message := range messages {
		exists, err := uc.transactionRepo.ExistsBySourceRef(ctx, input.UserID, source, message.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			out.DuplicatesSkipped++
			continue
		}

		result, err := uc.extractor.Extract(ctx, message)
		if err != nil {
			slog.Warn("expense extraction failed for message",
				"account_id", account.ID, "message_id", message.ID, "error", err)
			out.InvalidSkipped++
			continue
		}

		for _, expense := range result.Expenses {
			txn, err := expense.ToTransaction(source)
			if err != nil {
				slog.Warn("discarding invalid parsed expense",
					"account_id", account.ID, "message_id", message.ID, "error", err)
				out.InvalidSkipped++
				continue
			}
			if err := uc.transactionRepo.CreateImported(ctx, input.UserID, txn, message.ID); err != nil {
				if errors.Is(err, domainerror.ErrDuplicateTransaction) {
					out.DuplicatesSkipped++
					continue
				}
				return nil, err
			}
			out.TransactionsImported++
		}
	}

	account.MarkSynced(time.Now().UTC())
	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	if out.TransactionsImported > 0 {
		if err := uc.reportCache.InvalidateUser(ctx, input.UserID.String()); err != nil {
			slog.Warn("failed to invalidate report cache", "user_id", input.UserID, "error", err)
		}
	}

	slog.Info("email account synced",
		"account_id", account.ID,
		"user_id", input.UserID,
		"fetched", out.MessagesFetched,
		"imported", out.TransactionsImported,
		"duplicates", out.DuplicatesSkipped,
		"invalid", out.InvalidSkipped,
	)
	return out, nil
}

// failSync records the failure on the account and notifies the user.
func (uc *SyncEmailAccountUseCase) failSync(ctx context.Context, account *entity.EmailAccount, cause error) error {
	account.MarkSyncFailed(cause)
	if err := uc.accountRepo.Update(ctx, account); err != nil {
		slog.Error("failed to persist sync failure", "account_id", account.ID, "error", err)
	}

	if user, err := uc.userRepo.FindByID(ctx, account.UserID); err == nil {
		queueErr := uc.emailService.QueueSyncFailureEmail(ctx, adapter.QueueSyncFailureInput{
			UserID:       user.ID.String(),
			UserEmail:    user.Email,
			UserName:     user.Name,
			AccountEmail: account.ProviderEmail,
			Provider:     string(account.Provider),
			Reason:       cause.Error(),
		})
		if queueErr != nil {
			slog.Warn("failed to queue sync failure email", "account_id", account.ID, "error", queueErr)
		}
	}

	return domainerror.NewExtractionError(
		domainerror.ErrCodeGatewayUnavailable,
		"email sync failed",
		cause,
	)
}
