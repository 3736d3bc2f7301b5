package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
	"github.com/folaeazy/snap-bill/internal/domain/entity"
	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
	"github.com/folaeazy/snap-bill/internal/integration/persistence/model"
)

// emailAccountRepository implements the adapter.EmailAccountRepository interface.
type emailAccountRepository struct {
	db *gorm.DB
}

// NewEmailAccountRepository creates a new email account repository instance.
func NewEmailAccountRepository(db *gorm.DB) adapter.EmailAccountRepository {
	return &emailAccountRepository{
		db: db,
	}
}

// Create creates a new connected email account.
func (r *emailAccountRepository) Create(ctx context.Context, account *entity.EmailAccount) error {
	accountModel := model.EmailAccountFromEntity(account)
	return r.db.WithContext(ctx).Create(accountModel).Error
}

// FindByID retrieves an email account by its ID, scoped to the given user.
func (r *emailAccountRepository) FindByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*entity.EmailAccount, error) {
	var accountModel model.EmailAccountModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&accountModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrEmailAccountNotFound
		}
		return nil, result.Error
	}
	return accountModel.ToEntity(), nil
}

// FindByUser retrieves all connected email accounts for a user.
func (r *emailAccountRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.EmailAccount, error) {
	var accountModels []model.EmailAccountModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("connected_at ASC").
		Find(&accountModels)
	if result.Error != nil {
		return nil, result.Error
	}

	accounts := make([]*entity.EmailAccount, len(accountModels))
	for i := range accountModels {
		accounts[i] = accountModels[i].ToEntity()
	}
	return accounts, nil
}

// FindActive retrieves all accounts with an active connection, across users.
func (r *emailAccountRepository) FindActive(ctx context.Context) ([]*entity.EmailAccount, error) {
	var accountModels []model.EmailAccountModel
	result := r.db.WithContext(ctx).
		Where("status = ?", string(entity.ConnectionStatusActive)).
		Order("last_sync_at ASC NULLS FIRST").
		Find(&accountModels)
	if result.Error != nil {
		return nil, result.Error
	}

	accounts := make([]*entity.EmailAccount, len(accountModels))
	for i := range accountModels {
		accounts[i] = accountModels[i].ToEntity()
	}
	return accounts, nil
}

// Update saves changes to an email account.
func (r *emailAccountRepository) Update(ctx context.Context, account *entity.EmailAccount) error {
	accountModel := model.EmailAccountFromEntity(account)
	return r.db.WithContext(ctx).Save(accountModel).Error
}

// Delete removes a connected email account.
func (r *emailAccountRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.EmailAccountModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrEmailAccountNotFound
	}
	return nil
}
