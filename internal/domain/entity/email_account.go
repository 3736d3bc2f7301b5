package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmailProvider identifies the mailbox provider of a connected account.
type EmailProvider string

const (
	EmailProviderGmail   EmailProvider = "GMAIL"
	EmailProviderOutlook EmailProvider = "OUTLOOK"
)

// IsValid reports whether the provider belongs to the closed set.
func (p EmailProvider) IsValid() bool {
	return p == EmailProviderGmail || p == EmailProviderOutlook
}

// ConnectionStatus tracks the health of a connected email account.
type ConnectionStatus string

const (
	ConnectionStatusActive  ConnectionStatus = "ACTIVE"
	ConnectionStatusExpired ConnectionStatus = "EXPIRED"
	ConnectionStatusRevoked ConnectionStatus = "REVOKED"
	ConnectionStatusError   ConnectionStatus = "ERROR"
)

// EmailAccount is a mailbox connected for receipt ingestion. Transactions
// extracted from its messages carry an EMAIL_* source.
type EmailAccount struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Provider      EmailProvider
	ProviderEmail string // the actual inbox address
	AccessToken   string
	RefreshToken  string
	TokenExpiry   *time.Time
	Status        ConnectionStatus
	LastSyncAt    *time.Time
	LastError     string
	ConnectedAt   time.Time
}

// NewEmailAccount creates a newly connected email account.
func NewEmailAccount(userID uuid.UUID, provider EmailProvider, providerEmail, accessToken, refreshToken string) *EmailAccount {
	return &EmailAccount{
		ID:            uuid.New(),
		UserID:        userID,
		Provider:      provider,
		ProviderEmail: providerEmail,
		AccessToken:   accessToken,
		RefreshToken:  refreshToken,
		Status:        ConnectionStatusActive,
		ConnectedAt:   time.Now().UTC(),
	}
}

// MarkSynced records a successful sync.
func (a *EmailAccount) MarkSynced(at time.Time) {
	a.LastSyncAt = &at
	a.Status = ConnectionStatusActive
	a.LastError = ""
}

// MarkSyncFailed records a failed sync attempt with its error.
func (a *EmailAccount) MarkSyncFailed(err error) {
	a.Status = ConnectionStatusError
	if err != nil {
		a.LastError = err.Error()
	}
}

// TransactionSource maps the provider to the source a transaction extracted
// from this account carries.
func (a *EmailAccount) TransactionSource() TransactionSource {
	switch a.Provider {
	case EmailProviderGmail:
		return SourceEmailGmail
	case EmailProviderOutlook:
		return SourceEmailOutlook
	default:
		return SourceEmailOther
	}
}
