package dto

// CategoryTotalResponse represents one category row of a spending report.
type CategoryTotalResponse struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

// MonthlySummaryResponse represents the monthly spending summary.
type MonthlySummaryResponse struct {
	Year             int                     `json:"year"`
	Month            int                     `json:"month"`
	TransactionCount int                     `json:"transaction_count"`
	DebitTotal       string                  `json:"debit_total"`
	Currency         string                  `json:"currency"`
	ByCategory       []CategoryTotalResponse `json:"by_category"`
}

// SearchHitResponse represents one transaction row of a search result.
type SearchHitResponse struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Amount      string   `json:"amount"`
	Currency    string   `json:"currency"`
	Date        string   `json:"date"`
	Merchant    *string  `json:"merchant,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Tags        []string `json:"tags"`
	Description string   `json:"description,omitempty"`
	Source      string   `json:"source"`
}

// SearchTransactionsResponse represents a transaction search result.
type SearchTransactionsResponse struct {
	Total        int                 `json:"total"`
	Transactions []SearchHitResponse `json:"transactions"`
}

// CategoryBreakdownResponse represents debit totals per category over a range.
type CategoryBreakdownResponse struct {
	StartDate  string                  `json:"start_date"`
	EndDate    string                  `json:"end_date"`
	DebitTotal string                  `json:"debit_total"`
	Currency   string                  `json:"currency"`
	ByCategory []CategoryTotalResponse `json:"by_category"`
}
