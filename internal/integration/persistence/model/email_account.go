package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/folaeazy/snap-bill/internal/domain/entity"
)

// EmailAccountModel represents the email_accounts table in the database.
type EmailAccountModel struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Provider      string     `gorm:"type:varchar(20);not null"`
	ProviderEmail string     `gorm:"type:varchar(255);not null"`
	AccessToken   string     `gorm:"type:text;not null"`
	RefreshToken  string     `gorm:"type:text"`
	TokenExpiry   *time.Time `gorm:"type:timestamptz"`
	Status        string     `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	LastSyncAt    *time.Time `gorm:"type:timestamptz"`
	LastError     string     `gorm:"type:text"`
	ConnectedAt   time.Time  `gorm:"not null"`

	User *UserModel `gorm:"foreignKey:UserID;references:ID"`
}

// TableName returns the table name for the EmailAccountModel.
func (EmailAccountModel) TableName() string {
	return "email_accounts"
}

// ToEntity converts an EmailAccountModel to a domain EmailAccount entity.
func (m *EmailAccountModel) ToEntity() *entity.EmailAccount {
	return &entity.EmailAccount{
		ID:            m.ID,
		UserID:        m.UserID,
		Provider:      entity.EmailProvider(m.Provider),
		ProviderEmail: m.ProviderEmail,
		AccessToken:   m.AccessToken,
		RefreshToken:  m.RefreshToken,
		TokenExpiry:   m.TokenExpiry,
		Status:        entity.ConnectionStatus(m.Status),
		LastSyncAt:    m.LastSyncAt,
		LastError:     m.LastError,
		ConnectedAt:   m.ConnectedAt,
	}
}

// EmailAccountFromEntity creates an EmailAccountModel from a domain EmailAccount entity.
func EmailAccountFromEntity(account *entity.EmailAccount) *EmailAccountModel {
	return &EmailAccountModel{
		ID:            account.ID,
		UserID:        account.UserID,
		Provider:      string(account.Provider),
		ProviderEmail: account.ProviderEmail,
		AccessToken:   account.AccessToken,
		RefreshToken:  account.RefreshToken,
		TokenExpiry:   account.TokenExpiry,
		Status:        string(account.Status),
		LastSyncAt:    account.LastSyncAt,
		LastError:     account.LastError,
		ConnectedAt:   account.ConnectedAt,
	}
}
