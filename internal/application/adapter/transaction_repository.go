// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/folaeazy/snap-bill/internal/domain/entity"
	"github.com/folaeazy/snap-bill/internal/domain/valueobject"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Type      *entity.TransactionType
	Source    *entity.TransactionSource
	Currency  *valueobject.CurrencyCode
	Category  string // Case-insensitive category name match (top-level or sub-category)
	Merchant  string // Normalized merchant name match
	Tag       string // Lowercase tag match
	Search    string // Case-insensitive description match
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*entity.Transaction
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction for the given user.
	Create(ctx context.Context, userID uuid.UUID, transaction *entity.Transaction) error

	// CreateImported creates a transaction produced by an import, recording the
	// source reference (e.g. email message ID) for deduplication.
	CreateImported(ctx context.Context, userID uuid.UUID, transaction *entity.Transaction, sourceRef string) error

	// FindByID retrieves a transaction by its ID, scoped to the given user.
	FindByID(ctx context.Context, userID uuid.UUID, id valueobject.TransactionID) (*entity.Transaction, error)

	// FindByUser retrieves all transactions for a given user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)

	// FindByFilter retrieves transactions based on filter criteria with pagination.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*TransactionListResult, error)

	// FindByDateRange retrieves all transactions for a user whose date falls
	// within the inclusive range. Used by reporting.
	FindByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error)

	// Update updates an existing transaction, scoped to the given user.
	Update(ctx context.Context, userID uuid.UUID, transaction *entity.Transaction) error

	// Delete soft-deletes a transaction, scoped to the given user.
	Delete(ctx context.Context, userID uuid.UUID, id valueobject.TransactionID) error

	// ExistsBySourceRef checks whether a transaction was already imported from
	// the given source reference.
	ExistsBySourceRef(ctx context.Context, userID uuid.UUID, source entity.TransactionSource, sourceRef string) (bool, error)
}
