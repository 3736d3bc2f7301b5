package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
	"github.com/folaeazy/snap-bill/internal/domain/entity"
	"github.com/folaeazy/snap-bill/internal/domain/valueobject"
)

const (
	// DefaultPageLimit is the page size used when none is given.
	DefaultPageLimit = 20
	// MaxPageLimit caps the page size.
	MaxPageLimit = 100
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Type      *entity.TransactionType
	Source    *entity.TransactionSource
	Currency  string
	Category  string
	Merchant  string
	Tag       string
	Search    string
	Page      int
	Limit     int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []*TransactionOutput
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// ListTransactionsUseCase handles filtered, paginated transaction listing.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{transactionRepo: transactionRepo}
}

// Execute lists transactions matching the filter.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	filter := adapter.TransactionFilter{
		UserID:    input.UserID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Type:      input.Type,
		Source:    input.Source,
		Category:  input.Category,
		Merchant:  input.Merchant,
		Tag:       input.Tag,
		Search:    input.Search,
	}

	if input.Currency != "" {
		currency, err := valueobject.ParseCurrencyCode(input.Currency)
		if err != nil {
			return nil, err
		}
		filter.Currency = &currency
	}

	pagination := adapter.TransactionPagination{
		Page:  input.Page,
		Limit: input.Limit,
	}
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.Limit < 1 {
		pagination.Limit = DefaultPageLimit
	}
	if pagination.Limit > MaxPageLimit {
		pagination.Limit = MaxPageLimit
	}

	result, err := uc.transactionRepo.FindByFilter(ctx, filter, pagination)
	if err != nil {
		return nil, err
	}

	out := &ListTransactionsOutput{
		Transactions: make([]*TransactionOutput, 0, len(result.Transactions)),
		Total:        result.Total,
		Page:         result.Page,
		Limit:        result.Limit,
		TotalPages:   result.TotalPages,
	}
	for _, txn := range result.Transactions {
		out.Transactions = append(out.Transactions, newTransactionOutput(txn))
	}
	return out, nil
}
