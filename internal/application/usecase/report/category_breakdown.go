package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
	"github.com/folaeazy/snap-bill/internal/domain/report"
)

// CategoryBreakdownInput represents the input for a category breakdown report.
type CategoryBreakdownInput struct {
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

// CategoryBreakdownOutput represents the category breakdown report.
type CategoryBreakdownOutput struct {
	StartDate  string                `json:"start_date"`
	EndDate    string                `json:"end_date"`
	DebitTotal string                `json:"debit_total"`
	Currency   string                `json:"currency"`
	ByCategory []CategoryTotalOutput `json:"by_category"`
}

// CategoryBreakdownUseCase computes debit totals per category over a date range.
type CategoryBreakdownUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewCategoryBreakdownUseCase creates a new CategoryBreakdownUseCase instance.
func NewCategoryBreakdownUseCase(transactionRepo adapter.TransactionRepository) *CategoryBreakdownUseCase {
	return &CategoryBreakdownUseCase{transactionRepo: transactionRepo}
}

// Execute computes the breakdown.
func (uc *CategoryBreakdownUseCase) Execute(ctx context.Context, input CategoryBreakdownInput) (*CategoryBreakdownOutput, error) {
	transactions, err := uc.transactionRepo.FindByDateRange(ctx, input.UserID, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	debitTotal, err := report.TotalDebits(transactions)
	if err != nil {
		return nil, err
	}

	byCategory, err := report.SumByCategory(transactions)
	if err != nil {
		return nil, err
	}

	out := &CategoryBreakdownOutput{
		StartDate:  input.StartDate.Format("2006-01-02"),
		EndDate:    input.EndDate.Format("2006-01-02"),
		DebitTotal: debitTotal.Amount().String(),
		Currency:   debitTotal.Currency().String(),
		ByCategory: make([]CategoryTotalOutput, 0, len(byCategory)),
	}
	for _, row := range byCategory {
		out.ByCategory = append(out.ByCategory, CategoryTotalOutput{
			Category: row.Category.FullPath(),
			Amount:   row.Total.Amount().String(),
			Currency: row.Total.Currency().String(),
		})
	}
	return out, nil
}
