package dto

import "time"

// ConnectEmailAccountRequest represents the request body for connecting an inbox.
type ConnectEmailAccountRequest struct {
	Provider      string `json:"provider" binding:"required"`
	ProviderEmail string `json:"provider_email" binding:"required,email"`
	AccessToken   string `json:"access_token" binding:"required"`
	RefreshToken  string `json:"refresh_token" binding:"required"`
}

// ConnectEmailAccountResponse represents the response after connecting an inbox.
type ConnectEmailAccountResponse struct {
	AccountID string `json:"account_id"`
}

// EmailAccountResponse represents a connected inbox in API responses.
type EmailAccountResponse struct {
	ID            string     `json:"id"`
	Provider      string     `json:"provider"`
	ProviderEmail string     `json:"provider_email"`
	Status        string     `json:"status"`
	LastSyncAt    *time.Time `json:"last_sync_at,omitempty"`
	LastError     string     `json:"last_error,omitempty"`
	ConnectedAt   time.Time  `json:"connected_at"`
}

// ListEmailAccountsResponse represents the connected inbox listing.
type ListEmailAccountsResponse struct {
	Accounts []EmailAccountResponse `json:"accounts"`
}

// SyncEmailAccountResponse summarizes a sync run.
type SyncEmailAccountResponse struct {
	MessagesFetched      int `json:"messages_fetched"`
	TransactionsImported int `json:"transactions_imported"`
	DuplicatesSkipped    int `json:"duplicates_skipped"`
	InvalidSkipped       int `json:"invalid_skipped"`
}
