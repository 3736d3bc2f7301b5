package report

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
	"github.com/folaeazy/snap-bill/internal/domain/entity"
	"github.com/folaeazy/snap-bill/internal/domain/report"
	"github.com/folaeazy/snap-bill/internal/domain/valueobject"
)

// SearchTransactionsInput represents the input for an in-memory transaction
// search. All supplied criteria must match.
type SearchTransactionsInput struct {
	UserID      uuid.UUID
	DebitsOnly  bool
	CreditsOnly bool
	StartDate   *time.Time
	EndDate     *time.Time
	Merchant    string
	Tag         string
	Description string
}

// SearchHitOutput represents one matching transaction.
type SearchHitOutput struct {
	ID          string
	Type        string
	Amount      string
	Currency    string
	Date        string
	Merchant    *string
	Category    *string
	Tags        []string
	Description string
	Source      string
}

// SearchTransactionsOutput represents the search result.
type SearchTransactionsOutput struct {
	Total        int
	Transactions []SearchHitOutput
}

// SearchTransactionsUseCase composes domain filters over a user's transactions.
type SearchTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewSearchTransactionsUseCase creates a new SearchTransactionsUseCase instance.
func NewSearchTransactionsUseCase(transactionRepo adapter.TransactionRepository) *SearchTransactionsUseCase {
	return &SearchTransactionsUseCase{transactionRepo: transactionRepo}
}

// Execute runs the search.
func (uc *SearchTransactionsUseCase) Execute(ctx context.Context, input SearchTransactionsInput) (*SearchTransactionsOutput, error) {
	transactions, err := uc.transactionRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	var filters []report.Filter
	if input.DebitsOnly {
		filters = append(filters, report.IsDebit())
	}
	if input.CreditsOnly {
		filters = append(filters, report.IsCredit())
	}
	if input.StartDate != nil && input.EndDate != nil {
		filters = append(filters, report.InDateRange(
			valueobject.NewTransactionDate(*input.StartDate),
			valueobject.NewTransactionDate(*input.EndDate),
		))
	}
	if input.Merchant != "" {
		merchant, err := valueobject.NewMerchant(input.Merchant)
		if err != nil {
			return nil, err
		}
		filters = append(filters, report.ByMerchant(&merchant))
	}
	if input.Tag != "" {
		tag, err := valueobject.NewTag(input.Tag)
		if err != nil {
			return nil, err
		}
		filters = append(filters, report.ByTag(tag))
	}
	if input.Description != "" {
		filters = append(filters, report.HasDescriptionContaining(input.Description))
	}

	matched := report.Apply(transactions, report.And(filters...))
	hits := make([]SearchHitOutput, 0, len(matched))
	for _, txn := range matched {
		hits = append(hits, newSearchHitOutput(txn))
	}
	return &SearchTransactionsOutput{Total: len(hits), Transactions: hits}, nil
}

// newSearchHitOutput maps a matched transaction to its output representation.
func newSearchHitOutput(txn *entity.Transaction) SearchHitOutput {
	hit := SearchHitOutput{
		ID:          txn.ID().String(),
		Type:        string(txn.Type()),
		Amount:      txn.Amount().Amount().String(),
		Currency:    txn.Amount().Currency().String(),
		Date:        txn.Date().String(),
		Description: txn.Description().Text(),
		Source:      string(txn.Source()),
	}
	if m := txn.Merchant(); m != nil {
		name := m.Name()
		hit.Merchant = &name
	}
	if c := txn.Category(); c != nil {
		path := c.FullPath()
		hit.Category = &path
	}
	for _, tag := range txn.Tags() {
		hit.Tags = append(hit.Tags, tag.Value())
	}
	return hit
}
