// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
	"github.com/folaeazy/snap-bill/internal/domain/entity"
	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
	"github.com/folaeazy/snap-bill/internal/domain/valueobject"
	"github.com/folaeazy/snap-bill/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction for the given user.
func (r *transactionRepository) Create(ctx context.Context, userID uuid.UUID, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(userID, transaction)
	return r.db.WithContext(ctx).Create(transactionModel).Error
}

// CreateImported creates an imported transaction with its source reference.
func (r *transactionRepository) CreateImported(ctx context.Context, userID uuid.UUID, transaction *entity.Transaction, sourceRef string) error {
	transactionModel := model.TransactionFromEntity(userID, transaction)
	transactionModel.SourceRef = sourceRef
	return r.db.WithContext(ctx).Create(transactionModel).Error
}

// FindByID retrieves a transaction by its ID, scoped to the given user.
func (r *transactionRepository) FindByID(ctx context.Context, userID uuid.UUID, id valueobject.TransactionID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id.UUID(), userID).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.NewTransactionError(domainerror.ErrCodeTransactionNotFound, "transaction not found", domainerror.ErrTransactionNotFound)
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity()
}

// FindByUser retrieves all transactions for a given user.
func (r *transactionRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntities(transactionModels)
}

// FindByFilter retrieves transactions based on filter criteria with pagination.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	query := r.db.WithContext(ctx).Model(&model.TransactionModel{})

	query = query.Where("user_id = ?", filter.UserID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", filter.EndDate)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.Source != nil {
		query = query.Where("source = ?", string(*filter.Source))
	}
	if filter.Currency != nil {
		query = query.Where("currency = ?", filter.Currency.String())
	}
	if filter.Category != "" {
		category := strings.ToLower(strings.TrimSpace(filter.Category))
		query = query.Where(
			"LOWER(category_name) = ? OR LOWER(sub_category_name) = ?",
			category, category,
		)
	}
	if filter.Merchant != "" {
		query = query.Where("merchant_normalized = ?", strings.ToLower(strings.TrimSpace(filter.Merchant)))
	}
	if filter.Tag != "" {
		query = query.Where("? = ANY(tags)", strings.ToLower(strings.TrimSpace(filter.Tag)))
	}
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(description) LIKE ?", searchPattern)
	}

	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (pagination.Page - 1) * pagination.Limit
	totalPages := int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	if totalPages == 0 {
		totalPages = 1
	}

	var transactionModels []model.TransactionModel
	result := query.
		Order("date DESC, created_at DESC").
		Offset(offset).
		Limit(pagination.Limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	transactions, err := toEntities(transactionModels)
	if err != nil {
		return nil, err
	}

	return &adapter.TransactionListResult{
		Transactions: transactions,
		Total:        total,
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   totalPages,
	}, nil
}

// FindByDateRange retrieves all transactions in the inclusive date range.
func (r *transactionRepository) FindByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date ASC, created_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntities(transactionModels)
}

// Update updates an existing transaction, scoped to the given user.
func (r *transactionRepository) Update(ctx context.Context, userID uuid.UUID, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(userID, transaction)
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id = ? AND user_id = ?", transactionModel.ID, userID).
		Select("*").
		Omit("id", "user_id", "created_at", "source_ref", "deleted_at").
		Updates(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.NewTransactionError(domainerror.ErrCodeTransactionNotFound, "transaction not found", domainerror.ErrTransactionNotFound)
	}
	return nil
}

// Delete soft-deletes a transaction, scoped to the given user.
func (r *transactionRepository) Delete(ctx context.Context, userID uuid.UUID, id valueobject.TransactionID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id.UUID(), userID).
		Delete(&model.TransactionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.NewTransactionError(domainerror.ErrCodeTransactionNotFound, "transaction not found", domainerror.ErrTransactionNotFound)
	}
	return nil
}

// ExistsBySourceRef checks whether a transaction was already imported from
// the given source reference.
func (r *transactionRepository) ExistsBySourceRef(ctx context.Context, userID uuid.UUID, source entity.TransactionSource, sourceRef string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("user_id = ? AND source = ? AND source_ref = ?", userID, string(source), sourceRef).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// toEntities rebuilds domain transactions from their rows.
func toEntities(transactionModels []model.TransactionModel) ([]*entity.Transaction, error) {
	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		txn, err := transactionModels[i].ToEntity()
		if err != nil {
			return nil, err
		}
		transactions[i] = txn
	}
	return transactions, nil
}
