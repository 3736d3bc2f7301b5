package dto

import (
	"time"

	"github.com/folaeazy/snap-bill/internal/application/usecase/transaction"
)

// BankAccountPayload represents a bank account reference in requests and responses.
type BankAccountPayload struct {
	AccountID string `json:"account_id" binding:"required"`
	Label     string `json:"label"`
	Last4     string `json:"last4"`
	Currency  string `json:"currency"`
}

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Type        string              `json:"type" binding:"required"`
	Amount      string              `json:"amount" binding:"required"`
	Currency    string              `json:"currency"`
	Date        string              `json:"date" binding:"required"`
	Merchant    string              `json:"merchant"`
	Category    string              `json:"category"`
	SubCategory string              `json:"sub_category"`
	Tags        []string            `json:"tags"`
	Account     *BankAccountPayload `json:"account"`
	Description string              `json:"description" binding:"max=500"`
}

// ImportTransactionRequest represents one structured expense record to import.
type ImportTransactionRequest struct {
	Source      string   `json:"source" binding:"required"`
	SourceRef   string   `json:"source_ref"`
	Type        string   `json:"type" binding:"required"`
	Amount      string   `json:"amount" binding:"required"`
	Currency    string   `json:"currency" binding:"required"`
	Date        string   `json:"date" binding:"required"`
	Merchant    string   `json:"merchant"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Description string   `json:"description" binding:"max=500"`
	Confidence  string   `json:"confidence"`
}

// ImportTransactionResponse represents the result of importing one record.
type ImportTransactionResponse struct {
	ID string `json:"id"`
}

// UpdateTransactionRequest represents the request body for transaction updates.
// Absent fields are left untouched.
type UpdateTransactionRequest struct {
	Type         *string             `json:"type"`
	Amount       *string             `json:"amount"`
	Currency     *string             `json:"currency"`
	Date         *string             `json:"date"`
	Merchant     *string             `json:"merchant"`
	Category     *string             `json:"category"`
	SubCategory  string              `json:"sub_category"`
	AddTags      []string            `json:"add_tags"`
	RemoveTags   []string            `json:"remove_tags"`
	Account      *BankAccountPayload `json:"account"`
	ClearAccount bool                `json:"clear_account"`
	Description  *string             `json:"description"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID           string              `json:"id"`
	Type         string              `json:"type"`
	Amount       string              `json:"amount"`
	Currency     string              `json:"currency"`
	Date         string              `json:"date"`
	Timestamp    *time.Time          `json:"timestamp,omitempty"`
	Merchant     *string             `json:"merchant,omitempty"`
	Category     *string             `json:"category,omitempty"`
	Tags         []string            `json:"tags"`
	Account      *BankAccountPayload `json:"account,omitempty"`
	Description  string              `json:"description,omitempty"`
	Source       string              `json:"source"`
	AIConfidence *string             `json:"ai_confidence,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// ListTransactionsResponse represents a paginated transaction listing.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	TotalPages   int                   `json:"total_pages"`
}

// ToTransactionResponse converts a use case transaction output to its API representation.
func ToTransactionResponse(out *transaction.TransactionOutput) TransactionResponse {
	resp := TransactionResponse{
		ID:           out.ID,
		Type:         out.Type,
		Amount:       out.Amount,
		Currency:     out.Currency,
		Date:         out.Date,
		Timestamp:    out.Timestamp,
		Merchant:     out.Merchant,
		Category:     out.Category,
		Tags:         out.Tags,
		Description:  out.Description,
		Source:       out.Source,
		AIConfidence: out.AIConfidence,
		CreatedAt:    out.CreatedAt,
		UpdatedAt:    out.UpdatedAt,
	}
	if out.Account != nil {
		resp.Account = &BankAccountPayload{
			AccountID: out.Account.AccountID,
			Label:     out.Account.Label,
			Last4:     out.Account.Last4,
			Currency:  out.Account.Currency,
		}
	}
	return resp
}

// ToTransactionResponses converts a slice of use case outputs.
func ToTransactionResponses(outs []*transaction.TransactionOutput) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(outs))
	for _, out := range outs {
		responses = append(responses, ToTransactionResponse(out))
	}
	return responses
}
