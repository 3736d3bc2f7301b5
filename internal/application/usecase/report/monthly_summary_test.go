package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
	"github.com/folaeazy/snap-bill/internal/domain/entity"
	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
	"github.com/folaeazy/snap-bill/internal/domain/valueobject"
)

// reportRepo serves a fixed transaction set; only FindByDateRange is
// exercised by the reporting use cases.
type reportRepo struct {
	transactions []*entity.Transaction
	calls        int
}

func (r *reportRepo) Create(context.Context, uuid.UUID, *entity.Transaction) error { return nil }

func (r *reportRepo) CreateImported(context.Context, uuid.UUID, *entity.Transaction, string) error {
	return nil
}

func (r *reportRepo) FindByID(context.Context, uuid.UUID, valueobject.TransactionID) (*entity.Transaction, error) {
	return nil, domainerror.ErrTransactionNotFound
}

func (r *reportRepo) FindByUser(context.Context, uuid.UUID) ([]*entity.Transaction, error) {
	return r.transactions, nil
}

func (r *reportRepo) FindByFilter(context.Context, adapter.TransactionFilter, adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	return &adapter.TransactionListResult{}, nil
}

func (r *reportRepo) FindByDateRange(_ context.Context, _ uuid.UUID, start, end time.Time) ([]*entity.Transaction, error) {
	r.calls++
	var matched []*entity.Transaction
	for _, txn := range r.transactions {
		d := txn.Date().Date()
		if !d.Before(start) && !d.After(end) {
			matched = append(matched, txn)
		}
	}
	return matched, nil
}

func (r *reportRepo) Update(context.Context, uuid.UUID, *entity.Transaction) error { return nil }

func (r *reportRepo) Delete(context.Context, uuid.UUID, valueobject.TransactionID) error {
	return nil
}

func (r *reportRepo) ExistsBySourceRef(context.Context, uuid.UUID, entity.TransactionSource, string) (bool, error) {
	return false, nil
}

type memoryCache struct {
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	return c.entries[key], nil
}

func (c *memoryCache) Set(_ context.Context, key string, payload []byte, _ time.Duration) error {
	c.entries[key] = payload
	return nil
}

func (c *memoryCache) InvalidateUser(_ context.Context, _ string) error {
	c.entries = map[string][]byte{}
	return nil
}

var (
	_ adapter.TransactionRepository = (*reportRepo)(nil)
	_ adapter.ReportCache           = (*memoryCache)(nil)
)

func marchTransaction(t *testing.T, txType entity.TransactionType, amount, date, category string) *entity.Transaction {
	t.Helper()
	d, err := valueobject.ParseTransactionDate(date)
	if err != nil {
		t.Fatalf("bad date %q: %v", date, err)
	}
	attrs := entity.TransactionAttributes{}
	if category != "" {
		c, err := valueobject.NewCategory(category)
		if err != nil {
			t.Fatalf("bad category %q: %v", category, err)
		}
		attrs.Category = &c
	}
	txn, err := entity.NewTransaction(txType, valueobject.MustMoney(amount, valueobject.CurrencyNGN), d, entity.SourceManual, attrs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return txn
}

func TestMonthlySummary(t *testing.T) {
	userID := uuid.New()

	newRepo := func(t *testing.T) *reportRepo {
		return &reportRepo{transactions: []*entity.Transaction{
			marchTransaction(t, entity.TransactionTypeDebit, "100.50", "2026-03-05", "Groceries"),
			marchTransaction(t, entity.TransactionTypeDebit, "49.50", "2026-03-20", "Transport"),
			marchTransaction(t, entity.TransactionTypeCredit, "2000", "2026-03-25", ""),
			marchTransaction(t, entity.TransactionTypeDebit, "12.50", "2026-02-10", "Groceries"),
		}}
	}

	t.Run("summarizes one month only", func(t *testing.T) {
		uc := NewMonthlySummaryUseCase(newRepo(t), newMemoryCache(), time.Minute)
		out, err := uc.Execute(context.Background(), MonthlySummaryInput{UserID: userID, Year: 2026, Month: time.March})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.TransactionCount != 3 {
			t.Errorf("expected 3 transactions, got %d", out.TransactionCount)
		}
		if out.DebitTotal != "150" || out.Currency != "NGN" {
			t.Errorf("unexpected total %s %s", out.DebitTotal, out.Currency)
		}
		if len(out.ByCategory) != 2 {
			t.Fatalf("expected 2 category rows, got %d", len(out.ByCategory))
		}
		if out.ByCategory[0].Category != "Groceries" || out.ByCategory[0].Amount != "100.5" {
			t.Errorf("unexpected first row %+v", out.ByCategory[0])
		}
	})

	t.Run("serves repeat requests from the cache", func(t *testing.T) {
		repo := newRepo(t)
		uc := NewMonthlySummaryUseCase(repo, newMemoryCache(), time.Minute)
		input := MonthlySummaryInput{UserID: userID, Year: 2026, Month: time.March}

		first, err := uc.Execute(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := uc.Execute(context.Background(), input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.calls != 1 {
			t.Errorf("expected one repository read, got %d", repo.calls)
		}
		if second.DebitTotal != first.DebitTotal {
			t.Error("expected identical cached output")
		}
	})

	t.Run("empty month reports zero in the default currency", func(t *testing.T) {
		uc := NewMonthlySummaryUseCase(&reportRepo{}, newMemoryCache(), time.Minute)
		out, err := uc.Execute(context.Background(), MonthlySummaryInput{UserID: userID, Year: 2025, Month: time.January})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.TransactionCount != 0 || out.DebitTotal != "0" || out.Currency != "NGN" {
			t.Errorf("unexpected empty summary %+v", out)
		}
	})

	t.Run("mixed currencies surface as a validation error", func(t *testing.T) {
		d, _ := valueobject.ParseTransactionDate("2026-03-10")
		usd, err := entity.NewTransaction(
			entity.TransactionTypeDebit,
			valueobject.MustMoney("10", valueobject.CurrencyUSD),
			d, entity.SourceManual, entity.TransactionAttributes{},
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		repo := newRepo(t)
		repo.transactions = append(repo.transactions, usd)

		uc := NewMonthlySummaryUseCase(repo, newMemoryCache(), time.Minute)
		_, err = uc.Execute(context.Background(), MonthlySummaryInput{UserID: userID, Year: 2026, Month: time.March})
		if !errors.Is(err, domainerror.ErrMixedCurrency) {
			t.Errorf("expected ErrMixedCurrency, got %v", err)
		}
	})
}

func TestCategoryBreakdown(t *testing.T) {
	userID := uuid.New()
	repo := &reportRepo{transactions: []*entity.Transaction{
		marchTransaction(t, entity.TransactionTypeDebit, "30.25", "2026-02-10", "Dining"),
		marchTransaction(t, entity.TransactionTypeDebit, "19.75", "2026-03-10", "Dining"),
		marchTransaction(t, entity.TransactionTypeDebit, "5", "2026-04-01", "Dining"),
	}}

	uc := NewCategoryBreakdownUseCase(repo)
	out, err := uc.Execute(context.Background(), CategoryBreakdownInput{
		UserID:    userID,
		StartDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.DebitTotal != "50" {
		t.Errorf("expected 50, got %s", out.DebitTotal)
	}
	if len(out.ByCategory) != 1 || out.ByCategory[0].Category != "Dining" {
		t.Errorf("unexpected breakdown %+v", out.ByCategory)
	}
}
