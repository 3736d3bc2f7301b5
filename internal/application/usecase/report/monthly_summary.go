// Package report contains reporting use cases built on the domain aggregator.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
	"github.com/folaeazy/snap-bill/internal/domain/report"
)

// MonthlySummaryInput represents the input for the monthly summary report.
type MonthlySummaryInput struct {
	UserID uuid.UUID
	Year   int
	Month  time.Month
}

// CategoryTotalOutput represents one category row of a report.
type CategoryTotalOutput struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// MonthlySummaryOutput represents the monthly summary report.
type MonthlySummaryOutput struct {
	Year             int                   `json:"year"`
	Month            int                   `json:"month"`
	TransactionCount int                   `json:"transaction_count"`
	DebitTotal       string                `json:"debit_total"`
	Currency         string                `json:"currency"`
	ByCategory       []CategoryTotalOutput `json:"by_category"`
}

// MonthlySummaryUseCase computes a per-month spending summary, cached in Redis.
type MonthlySummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
	reportCache     adapter.ReportCache
	cacheTTL        time.Duration
}

// NewMonthlySummaryUseCase creates a new MonthlySummaryUseCase instance.
func NewMonthlySummaryUseCase(
	transactionRepo adapter.TransactionRepository,
	reportCache adapter.ReportCache,
	cacheTTL time.Duration,
) *MonthlySummaryUseCase {
	return &MonthlySummaryUseCase{
		transactionRepo: transactionRepo,
		reportCache:     reportCache,
		cacheTTL:        cacheTTL,
	}
}

// Execute computes the summary, serving from cache when possible.
func (uc *MonthlySummaryUseCase) Execute(ctx context.Context, input MonthlySummaryInput) (*MonthlySummaryOutput, error) {
	key := fmt.Sprintf("report:%s:monthly:%04d-%02d", input.UserID, input.Year, int(input.Month))

	if cached, err := uc.reportCache.Get(ctx, key); err != nil {
		slog.Warn("report cache read failed", "key", key, "error", err)
	} else if cached != nil {
		var out MonthlySummaryOutput
		if err := json.Unmarshal(cached, &out); err == nil {
			return &out, nil
		}
		slog.Warn("discarding corrupt report cache entry", "key", key)
	}

	start := time.Date(input.Year, input.Month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	transactions, err := uc.transactionRepo.FindByDateRange(ctx, input.UserID, start, end)
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

	out := &MonthlySummaryOutput{
		Year:             input.Year,
		Month:            int(input.Month),
		TransactionCount: len(transactions),
		DebitTotal:       debitTotal.Amount().String(),
		Currency:         debitTotal.Currency().String(),
		ByCategory:       make([]CategoryTotalOutput, 0, len(byCategory)),
	}
	for _, row := range byCategory {
		out.ByCategory = append(out.ByCategory, CategoryTotalOutput{
			Category: row.Category.FullPath(),
			Amount:   row.Total.Amount().String(),
			Currency: row.Total.Currency().String(),
		})
	}

	if payload, err := json.Marshal(out); err == nil {
		if err := uc.reportCache.Set(ctx, key, payload, uc.cacheTTL); err != nil {
			slog.Warn("report cache write failed", "key", key, "error", err)
		}
	}

	return out, nil
}
