package extraction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
	"github.com/folaeazy/snap-bill/internal/domain/entity"
	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
	"github.com/folaeazy/snap-bill/internal/domain/valueobject"
)

type fakeAccountRepo struct {
	accounts map[uuid.UUID]*entity.EmailAccount
	deleted  []uuid.UUID
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[uuid.UUID]*entity.EmailAccount{}}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *entity.EmailAccount) error {
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) FindByID(_ context.Context, userID, id uuid.UUID) (*entity.EmailAccount, error) {
	account, ok := r.accounts[id]
	if !ok || account.UserID != userID {
		return nil, domainerror.NewExtractionError(
			domainerror.ErrCodeEmailAccountNotFound,
			"email account not found",
			domainerror.ErrEmailAccountNotFound,
		)
	}
	return account, nil
}

func (r *fakeAccountRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.EmailAccount, error) {
	var all []*entity.EmailAccount
	for _, account := range r.accounts {
		if account.UserID == userID {
			all = append(all, account)
		}
	}
	return all, nil
}

func (r *fakeAccountRepo) FindActive(_ context.Context) ([]*entity.EmailAccount, error) {
	var active []*entity.EmailAccount
	for _, account := range r.accounts {
		if account.Status == entity.ConnectionStatusActive {
			active = append(active, account)
		}
	}
	return active, nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *entity.EmailAccount) error {
	r.accounts[account.ID] = account
	return nil
}

func (r *fakeAccountRepo) Delete(_ context.Context, _, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	delete(r.accounts, id)
	return nil
}

type fakeGateway struct {
	messages  []*entity.EmailMessage
	fetchErr  error
	refreshed int
}

func (g *fakeGateway) FetchMessages(_ context.Context, _ *entity.EmailAccount, _ time.Time) ([]*entity.EmailMessage, error) {
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	return g.messages, nil
}

func (g *fakeGateway) RefreshAccessToken(_ context.Context, account *entity.EmailAccount) error {
	g.refreshed++
	account.AccessToken = "refreshed"
	return nil
}

type fakeResolver struct {
	gateway adapter.EmailGateway
}

func (r *fakeResolver) Resolve(_ entity.EmailProvider) (adapter.EmailGateway, error) {
	return r.gateway, nil
}

type fakeExtractor struct {
	results map[string]*entity.ExtractionResult
}

func (e *fakeExtractor) Extract(_ context.Context, message *entity.EmailMessage) (*entity.ExtractionResult, error) {
	result, ok := e.results[message.ID]
	if !ok {
		return nil, domainerror.NewExtractionError(
			domainerror.ErrCodeExtractionFailed,
			"extraction failed",
			domainerror.ErrExtractionFailed,
		)
	}
	return result, nil
}

func (e *fakeExtractor) IsAvailable() bool { return true }

type fakeEmailService struct {
	syncFailures []adapter.QueueSyncFailureInput
}

func (s *fakeEmailService) QueuePasswordResetEmail(_ context.Context, _ adapter.QueuePasswordResetInput) error {
	return nil
}

func (s *fakeEmailService) QueueSyncFailureEmail(_ context.Context, input adapter.QueueSyncFailureInput) error {
	s.syncFailures = append(s.syncFailures, input)
	return nil
}

type syncTransactionRepo struct {
	imported   map[string]*entity.Transaction
	sourceRefs map[string]struct{}
}

func newSyncTransactionRepo() *syncTransactionRepo {
	return &syncTransactionRepo{
		imported:   map[string]*entity.Transaction{},
		sourceRefs: map[string]struct{}{},
	}
}

func (r *syncTransactionRepo) Create(context.Context, uuid.UUID, *entity.Transaction) error {
	return nil
}

func (r *syncTransactionRepo) CreateImported(_ context.Context, _ uuid.UUID, txn *entity.Transaction, sourceRef string) error {
	r.imported[txn.ID().String()] = txn
	r.sourceRefs[sourceRef] = struct{}{}
	return nil
}

func (r *syncTransactionRepo) FindByID(context.Context, uuid.UUID, valueobject.TransactionID) (*entity.Transaction, error) {
	return nil, domainerror.ErrTransactionNotFound
}

func (r *syncTransactionRepo) FindByUser(context.Context, uuid.UUID) ([]*entity.Transaction, error) {
	return nil, nil
}

func (r *syncTransactionRepo) FindByFilter(context.Context, adapter.TransactionFilter, adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	return &adapter.TransactionListResult{}, nil
}

func (r *syncTransactionRepo) FindByDateRange(context.Context, uuid.UUID, time.Time, time.Time) ([]*entity.Transaction, error) {
	return nil, nil
}

func (r *syncTransactionRepo) Update(context.Context, uuid.UUID, *entity.Transaction) error {
	return nil
}

func (r *syncTransactionRepo) Delete(context.Context, uuid.UUID, valueobject.TransactionID) error {
	return nil
}

func (r *syncTransactionRepo) ExistsBySourceRef(_ context.Context, _ uuid.UUID, _ entity.TransactionSource, sourceRef string) (bool, error) {
	_, ok := r.sourceRefs[sourceRef]
	return ok, nil
}

type syncUserRepo struct {
	user *entity.User
}

func (r *syncUserRepo) Create(context.Context, *entity.User) error { return nil }

func (r *syncUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *syncUserRepo) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, domainerror.ErrUserNotFound
}

func (r *syncUserRepo) FindByProviderID(context.Context, entity.AuthProvider, string) (*entity.User, error) {
	return nil, domainerror.ErrUserNotFound
}

func (r *syncUserRepo) Update(context.Context, *entity.User) error { return nil }

func (r *syncUserRepo) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }

type noopCache struct {
	invalidations int
}

func (c *noopCache) Get(context.Context, string) ([]byte, error) { return nil, nil }

func (c *noopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (c *noopCache) InvalidateUser(context.Context, string) error {
	c.invalidations++
	return nil
}

func receiptMessage(id string) *entity.EmailMessage {
	return &entity.EmailMessage{
		ID:         id,
		Subject:    "Debit alert",
		From:       "alerts@bank.example",
		ReceivedAt: time.Now().UTC().Add(-time.Hour),
		BodyText:   "You spent NGN 1,250.75 at Shoprite",
	}
}

func parsedDebit(amount string) entity.ParsedExpense {
	return entity.ParsedExpense{
		Type:         entity.TransactionTypeDebit,
		Amount:       decimal.RequireFromString(amount),
		Currency:     "NGN",
		Date:         valueobject.NewTransactionDate(time.Now().UTC().Add(-time.Hour)),
		MerchantName: "Shoprite",
		CategoryName: "Groceries",
		Confidence:   decimal.RequireFromString("0.92"),
	}
}

func TestSyncEmailAccount(t *testing.T) {
	userID := uuid.New()

	setup := func(t *testing.T, gateway *fakeGateway, extractor *fakeExtractor) (*SyncEmailAccountUseCase, *fakeAccountRepo, *syncTransactionRepo, *fakeEmailService, *noopCache, *entity.EmailAccount) {
		t.Helper()
		accountRepo := newFakeAccountRepo()
		account := entity.NewEmailAccount(userID, entity.EmailProviderGmail, "inbox@gmail.com", "token", "refresh")
		if err := accountRepo.Create(context.Background(), account); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		txnRepo := newSyncTransactionRepo()
		emailService := &fakeEmailService{}
		cache := &noopCache{}
		users := &syncUserRepo{user: entity.NewUser("ada@example.com", "Ada", "")}
		users.user.ID = userID

		uc := NewSyncEmailAccountUseCase(
			accountRepo, txnRepo, &fakeResolver{gateway: gateway},
			extractor, cache, emailService, users,
		)
		return uc, accountRepo, txnRepo, emailService, cache, account
	}

	t.Run("imports extracted expenses and marks the account synced", func(t *testing.T) {
		gateway := &fakeGateway{messages: []*entity.EmailMessage{receiptMessage("msg-1"), receiptMessage("msg-2")}}
		extractor := &fakeExtractor{results: map[string]*entity.ExtractionResult{
			"msg-1": {Expenses: []entity.ParsedExpense{parsedDebit("1250.75")}},
			"msg-2": {Expenses: nil}, // no expense in this one
		}}
		uc, accountRepo, txnRepo, _, cache, account := setup(t, gateway, extractor)

		out, err := uc.Execute(context.Background(), SyncEmailAccountInput{UserID: userID, AccountID: account.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.MessagesFetched != 2 || out.TransactionsImported != 1 {
			t.Errorf("unexpected counts %+v", out)
		}
		if len(txnRepo.imported) != 1 {
			t.Error("expected one imported transaction")
		}
		if accountRepo.accounts[account.ID].LastSyncAt == nil {
			t.Error("expected LastSyncAt to be set")
		}
		if cache.invalidations != 1 {
			t.Errorf("expected one cache invalidation, got %d", cache.invalidations)
		}
	})

	t.Run("skips messages already imported", func(t *testing.T) {
		gateway := &fakeGateway{messages: []*entity.EmailMessage{receiptMessage("msg-1")}}
		extractor := &fakeExtractor{results: map[string]*entity.ExtractionResult{
			"msg-1": {Expenses: []entity.ParsedExpense{parsedDebit("1250.75")}},
		}}
		uc, _, txnRepo, _, _, account := setup(t, gateway, extractor)

		if _, err := uc.Execute(context.Background(), SyncEmailAccountInput{UserID: userID, AccountID: account.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out, err := uc.Execute(context.Background(), SyncEmailAccountInput{UserID: userID, AccountID: account.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.DuplicatesSkipped != 1 || out.TransactionsImported != 0 {
			t.Errorf("unexpected counts %+v", out)
		}
		if len(txnRepo.imported) != 1 {
			t.Error("expected no new transactions on the second run")
		}
	})

	t.Run("counts failed extractions as invalid", func(t *testing.T) {
		gateway := &fakeGateway{messages: []*entity.EmailMessage{receiptMessage("msg-broken")}}
		extractor := &fakeExtractor{results: map[string]*entity.ExtractionResult{}}
		uc, _, _, _, _, account := setup(t, gateway, extractor)

		out, err := uc.Execute(context.Background(), SyncEmailAccountInput{UserID: userID, AccountID: account.ID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.InvalidSkipped != 1 || out.TransactionsImported != 0 {
			t.Errorf("unexpected counts %+v", out)
		}
	})

	t.Run("refuses a revoked account", func(t *testing.T) {
		gateway := &fakeGateway{}
		uc, accountRepo, _, _, _, account := setup(t, gateway, &fakeExtractor{})
		accountRepo.accounts[account.ID].Status = entity.ConnectionStatusRevoked

		_, err := uc.Execute(context.Background(), SyncEmailAccountInput{UserID: userID, AccountID: account.ID})
		if !errors.Is(err, domainerror.ErrEmailAccountRevoked) {
			t.Errorf("expected ErrEmailAccountRevoked, got %v", err)
		}
	})

	t.Run("refreshes an expired token before fetching", func(t *testing.T) {
		gateway := &fakeGateway{}
		uc, accountRepo, _, _, _, account := setup(t, gateway, &fakeExtractor{results: map[string]*entity.ExtractionResult{}})
		expired := time.Now().UTC().Add(-time.Hour)
		accountRepo.accounts[account.ID].TokenExpiry = &expired

		if _, err := uc.Execute(context.Background(), SyncEmailAccountInput{UserID: userID, AccountID: account.ID}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gateway.refreshed != 1 {
			t.Errorf("expected one token refresh, got %d", gateway.refreshed)
		}
		if accountRepo.accounts[account.ID].AccessToken != "refreshed" {
			t.Error("expected the access token to be replaced")
		}
	})

	t.Run("records the failure and notifies the user when the gateway is down", func(t *testing.T) {
		gateway := &fakeGateway{fetchErr: errors.New("gateway timeout")}
		uc, accountRepo, _, emailService, _, account := setup(t, gateway, &fakeExtractor{})

		_, err := uc.Execute(context.Background(), SyncEmailAccountInput{UserID: userID, AccountID: account.ID})
		var extErr *domainerror.ExtractionError
		if !errors.As(err, &extErr) || extErr.Code != domainerror.ErrCodeGatewayUnavailable {
			t.Fatalf("expected ErrCodeGatewayUnavailable, got %v", err)
		}
		if accountRepo.accounts[account.ID].LastError == "" {
			t.Error("expected the failure to be recorded on the account")
		}
		if len(emailService.syncFailures) != 1 {
			t.Fatalf("expected one sync failure notification, got %d", len(emailService.syncFailures))
		}
		if emailService.syncFailures[0].AccountEmail != "inbox@gmail.com" {
			t.Errorf("unexpected notification %+v", emailService.syncFailures[0])
		}
	})

	t.Run("unknown account fails with not found", func(t *testing.T) {
		uc, _, _, _, _, _ := setup(t, &fakeGateway{}, &fakeExtractor{})
		_, err := uc.Execute(context.Background(), SyncEmailAccountInput{UserID: userID, AccountID: uuid.New()})
		if !errors.Is(err, domainerror.ErrEmailAccountNotFound) {
			t.Errorf("expected ErrEmailAccountNotFound, got %v", err)
		}
	})
}
