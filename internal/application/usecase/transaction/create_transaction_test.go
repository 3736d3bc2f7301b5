package transaction

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

type fakeTransactionRepo struct {
	byUser     map[uuid.UUID]map[string]*entity.Transaction
	sourceRefs map[string]struct{}
}

func newFakeTransactionRepo() *fakeTransactionRepo {
	return &fakeTransactionRepo{
		byUser:     map[uuid.UUID]map[string]*entity.Transaction{},
		sourceRefs: map[string]struct{}{},
	}
}

func (r *fakeTransactionRepo) store(userID uuid.UUID, txn *entity.Transaction) {
	if r.byUser[userID] == nil {
		r.byUser[userID] = map[string]*entity.Transaction{}
	}
	r.byUser[userID][txn.ID().String()] = txn
}

func (r *fakeTransactionRepo) Create(_ context.Context, userID uuid.UUID, txn *entity.Transaction) error {
	r.store(userID, txn)
	return nil
}

func (r *fakeTransactionRepo) CreateImported(_ context.Context, userID uuid.UUID, txn *entity.Transaction, sourceRef string) error {
	r.store(userID, txn)
	r.sourceRefs[sourceRef] = struct{}{}
	return nil
}

func (r *fakeTransactionRepo) FindByID(_ context.Context, userID uuid.UUID, id valueobject.TransactionID) (*entity.Transaction, error) {
	txn, ok := r.byUser[userID][id.String()]
	if !ok {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}
	return txn, nil
}

func (r *fakeTransactionRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	var all []*entity.Transaction
	for _, txn := range r.byUser[userID] {
		all = append(all, txn)
	}
	return all, nil
}

func (r *fakeTransactionRepo) FindByFilter(_ context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	var matched []*entity.Transaction
	for _, txn := range r.byUser[filter.UserID] {
		if filter.Type != nil && txn.Type() != *filter.Type {
			continue
		}
		matched = append(matched, txn)
	}
	return &adapter.TransactionListResult{
		Transactions: matched,
		Total:        int64(len(matched)),
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   1,
	}, nil
}

func (r *fakeTransactionRepo) FindByDateRange(_ context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error) {
	var matched []*entity.Transaction
	for _, txn := range r.byUser[userID] {
		d := txn.Date().Date()
		if !d.Before(start) && !d.After(end) {
			matched = append(matched, txn)
		}
	}
	return matched, nil
}

func (r *fakeTransactionRepo) Update(_ context.Context, userID uuid.UUID, txn *entity.Transaction) error {
	if _, ok := r.byUser[userID][txn.ID().String()]; !ok {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}
	r.store(userID, txn)
	return nil
}

func (r *fakeTransactionRepo) Delete(_ context.Context, userID uuid.UUID, id valueobject.TransactionID) error {
	if _, ok := r.byUser[userID][id.String()]; !ok {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}
	delete(r.byUser[userID], id.String())
	return nil
}

func (r *fakeTransactionRepo) ExistsBySourceRef(_ context.Context, _ uuid.UUID, _ entity.TransactionSource, sourceRef string) (bool, error) {
	_, ok := r.sourceRefs[sourceRef]
	return ok, nil
}

type fakeReportCache struct {
	invalidations []string
}

func (c *fakeReportCache) Get(_ context.Context, _ string) ([]byte, error) { return nil, nil }

func (c *fakeReportCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return nil
}

func (c *fakeReportCache) InvalidateUser(_ context.Context, userID string) error {
	c.invalidations = append(c.invalidations, userID)
	return nil
}

var (
	_ adapter.TransactionRepository = (*fakeTransactionRepo)(nil)
	_ adapter.ReportCache           = (*fakeReportCache)(nil)
)

func TestCreateTransaction(t *testing.T) {
	userID := uuid.New()

	t.Run("creates a manual debit and invalidates reports", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		cache := &fakeReportCache{}
		uc := NewCreateTransactionUseCase(repo, cache)

		output, err := uc.Execute(context.Background(), CreateTransactionInput{
			UserID:   userID,
			Type:     entity.TransactionTypeDebit,
			Amount:   decimal.RequireFromString("1250.75"),
			Currency: "NGN",
			Date:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			DateOnly: true,
			Merchant: "Shoprite",
			Category: "Groceries",
			Tags:     []string{"Food"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := output.Transaction
		if got.Source != string(entity.SourceManual) {
			t.Errorf("expected MANUAL source, got %s", got.Source)
		}
		if got.Amount != "1250.75" || got.Currency != "NGN" {
			t.Errorf("unexpected amount %s %s", got.Amount, got.Currency)
		}
		if got.Date != "2026-03-15" {
			t.Errorf("unexpected date %s", got.Date)
		}
		if len(got.Tags) != 1 || got.Tags[0] != "food" {
			t.Errorf("expected normalized tags, got %v", got.Tags)
		}
		if len(repo.byUser[userID]) != 1 {
			t.Error("expected the transaction to be persisted")
		}
		if len(cache.invalidations) != 1 || cache.invalidations[0] != userID.String() {
			t.Errorf("expected one cache invalidation for the user, got %v", cache.invalidations)
		}
	})

	t.Run("rejects an unknown currency", func(t *testing.T) {
		uc := NewCreateTransactionUseCase(newFakeTransactionRepo(), &fakeReportCache{})
		_, err := uc.Execute(context.Background(), CreateTransactionInput{
			UserID:   userID,
			Type:     entity.TransactionTypeDebit,
			Amount:   decimal.NewFromInt(10),
			Currency: "BTC",
			Date:     time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			DateOnly: true,
		})
		if !errors.Is(err, domainerror.ErrInvalidIdentifier) {
			t.Errorf("expected ErrInvalidIdentifier, got %v", err)
		}
	})

	t.Run("rejects a future-dated debit without persisting", func(t *testing.T) {
		repo := newFakeTransactionRepo()
		cache := &fakeReportCache{}
		uc := NewCreateTransactionUseCase(repo, cache)

		_, err := uc.Execute(context.Background(), CreateTransactionInput{
			UserID:   userID,
			Type:     entity.TransactionTypeDebit,
			Amount:   decimal.NewFromInt(10),
			Currency: "NGN",
			Date:     time.Now().UTC().AddDate(0, 0, 2),
			DateOnly: true,
		})
		if !errors.Is(err, domainerror.ErrFutureDebitDate) {
			t.Errorf("expected ErrFutureDebitDate, got %v", err)
		}
		if len(repo.byUser[userID]) != 0 {
			t.Error("expected nothing to be persisted")
		}
		if len(cache.invalidations) != 0 {
			t.Error("expected no cache invalidation")
		}
	})

	t.Run("nests a sub-category under its parent", func(t *testing.T) {
		uc := NewCreateTransactionUseCase(newFakeTransactionRepo(), &fakeReportCache{})
		output, err := uc.Execute(context.Background(), CreateTransactionInput{
			UserID:      userID,
			Type:        entity.TransactionTypeDebit,
			Amount:      decimal.RequireFromString("4.50"),
			Currency:    "NGN",
			Date:        time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			DateOnly:    true,
			Category:    "Food & Drinks",
			SubCategory: "Coffee",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Transaction.Category == nil || *output.Transaction.Category != "Food & Drinks > Coffee" {
			t.Errorf("unexpected category %v", output.Transaction.Category)
		}
	})
}

func TestUpdateTransaction(t *testing.T) {
	userID := uuid.New()

	seed := func(t *testing.T) (*fakeTransactionRepo, *fakeReportCache, string) {
		t.Helper()
		repo := newFakeTransactionRepo()
		cache := &fakeReportCache{}
		created, err := NewCreateTransactionUseCase(repo, cache).Execute(context.Background(), CreateTransactionInput{
			UserID:   userID,
			Type:     entity.TransactionTypeDebit,
			Amount:   decimal.RequireFromString("75.25"),
			Currency: "NGN",
			Date:     time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
			DateOnly: true,
			Category: "Misc",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cache.invalidations = nil
		return repo, cache, created.Transaction.ID
	}

	t.Run("applies a partial update", func(t *testing.T) {
		repo, cache, id := seed(t)
		category := "Transport"
		output, err := NewUpdateTransactionUseCase(repo, cache).Execute(context.Background(), UpdateTransactionInput{
			UserID:   userID,
			ID:       id,
			Category: &category,
			AddTags:  []string{"commute"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := output.Transaction
		if got.Category == nil || *got.Category != "Transport" {
			t.Errorf("unexpected category %v", got.Category)
		}
		if got.Amount != "75.25" {
			t.Errorf("expected the amount to be untouched, got %s", got.Amount)
		}
		if len(got.Tags) != 1 || got.Tags[0] != "commute" {
			t.Errorf("unexpected tags %v", got.Tags)
		}
		if len(cache.invalidations) != 1 {
			t.Errorf("expected one cache invalidation, got %v", cache.invalidations)
		}
	})

	t.Run("clears the merchant with an empty string", func(t *testing.T) {
		repo, cache, id := seed(t)
		merchant := ""
		output, err := NewUpdateTransactionUseCase(repo, cache).Execute(context.Background(), UpdateTransactionInput{
			UserID:   userID,
			ID:       id,
			Merchant: &merchant,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Transaction.Merchant != nil {
			t.Errorf("expected no merchant, got %v", *output.Transaction.Merchant)
		}
	})

	t.Run("unknown id fails with not found", func(t *testing.T) {
		repo, cache, _ := seed(t)
		_, err := NewUpdateTransactionUseCase(repo, cache).Execute(context.Background(), UpdateTransactionInput{
			UserID: userID,
			ID:     uuid.NewString(),
		})
		var txnErr *domainerror.TransactionError
		if !errors.As(err, &txnErr) || txnErr.Code != domainerror.ErrCodeTransactionNotFound {
			t.Errorf("expected ErrCodeTransactionNotFound, got %v", err)
		}
	})

	t.Run("malformed id fails before touching the repository", func(t *testing.T) {
		repo, cache, _ := seed(t)
		_, err := NewUpdateTransactionUseCase(repo, cache).Execute(context.Background(), UpdateTransactionInput{
			UserID: userID,
			ID:     "not-a-uuid",
		})
		if !errors.Is(err, domainerror.ErrInvalidIdentifier) {
			t.Errorf("expected ErrInvalidIdentifier, got %v", err)
		}
	})
}

func TestDeleteTransaction(t *testing.T) {
	userID := uuid.New()
	repo := newFakeTransactionRepo()
	cache := &fakeReportCache{}

	created, err := NewCreateTransactionUseCase(repo, cache).Execute(context.Background(), CreateTransactionInput{
		UserID:   userID,
		Type:     entity.TransactionTypeDebit,
		Amount:   decimal.RequireFromString("20.75"),
		Currency: "NGN",
		Date:     time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC),
		DateOnly: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uc := NewDeleteTransactionUseCase(repo, cache)
	if err := uc.Execute(context.Background(), DeleteTransactionInput{UserID: userID, ID: created.Transaction.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.byUser[userID]) != 0 {
		t.Error("expected the transaction to be removed")
	}

	err = uc.Execute(context.Background(), DeleteTransactionInput{UserID: userID, ID: created.Transaction.ID})
	var txnErr *domainerror.TransactionError
	if !errors.As(err, &txnErr) || txnErr.Code != domainerror.ErrCodeTransactionNotFound {
		t.Errorf("expected ErrCodeTransactionNotFound, got %v", err)
	}
}

func TestListTransactionsPagination(t *testing.T) {
	userID := uuid.New()
	repo := newFakeTransactionRepo()
	uc := NewListTransactionsUseCase(repo)

	output, err := uc.Execute(context.Background(), ListTransactionsInput{UserID: userID, Page: 0, Limit: 500})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Page != 1 {
		t.Errorf("expected page to default to 1, got %d", output.Page)
	}
	if output.Limit != MaxPageLimit {
		t.Errorf("expected limit to be capped at %d, got %d", MaxPageLimit, output.Limit)
	}
}
