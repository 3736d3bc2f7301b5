// Package adapters provides implementations for external service integrations.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"

	"github.com/folaeazy/snap-bill/internal/domain/entity"
	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
	"github.com/folaeazy/snap-bill/internal/domain/valueobject"
)

// GeminiExtractor implements the ExpenseExtractor using Google Gemini.
type GeminiExtractor struct {
	apiKey    string
	modelName string
}

// NewGeminiExtractor creates a new Gemini extractor instance.
func NewGeminiExtractor(apiKey string) *GeminiExtractor {
	return &GeminiExtractor{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the extractor is available and properly configured.
func (s *GeminiExtractor) IsAvailable() bool {
	return s.apiKey != ""
}

// Extract analyzes an email message and returns the expenses found in it.
func (s *GeminiExtractor) Extract(ctx context.Context, message *entity.EmailMessage) (*entity.ExtractionResult, error) {
	if !s.IsAvailable() {
		return nil, domainerror.NewExtractionError(
			domainerror.ErrCodeExtractionFailed,
			"gemini extractor is not configured",
			nil,
		)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(s.buildPrompt(message)))
	if err != nil {
		return nil, domainerror.NewExtractionError(
			domainerror.ErrCodeExtractionFailed,
			"gemini request failed",
			err,
		)
	}

	result, err := s.parseResponse(resp)
	if err != nil {
		return nil, domainerror.NewExtractionError(
			domainerror.ErrCodeExtractionFailed,
			"failed to parse gemini response",
			err,
		)
	}
	return result, nil
}

// buildPrompt creates the extraction prompt for Gemini.
func (s *GeminiExtractor) buildPrompt(message *entity.EmailMessage) string {
	var sb strings.Builder

	sb.WriteString(`You are a financial assistant that extracts expense records from bank alert and receipt emails.

Analyze the email below and extract every financial transaction it describes.

RULES:
- type must be one of: DEBIT, CREDIT, REFUND, TRANSFER, OTHER
- amount is the absolute value as a decimal string, never negative
- currency is the ISO 4217 code (NGN, USD, EUR, GBP); default to NGN when the email shows naira amounts
- date is the transaction date formatted as YYYY-MM-DD; use the email receipt date when no date is stated
- merchant is the payee name as written, or empty when unknown
- category is a single short spending category like Groceries, Transport, Airtime, Utilities, or empty when unclear
- tags is a list of zero or more short lowercase labels
- confidence is your certainty for that record between 0.0 and 1.0
- Emails that describe no transaction produce an empty expenses array

EMAIL:
`)
	sb.WriteString(fmt.Sprintf("Subject: %s\n", message.Subject))
	sb.WriteString(fmt.Sprintf("From: %s\n", message.From))
	sb.WriteString(fmt.Sprintf("Received: %s\n\n", message.ReceivedAt.Format("2006-01-02")))
	if message.BodyText != "" {
		sb.WriteString(message.BodyText)
	} else {
		sb.WriteString(message.RawContent)
	}

	sb.WriteString(`

Respond with a single JSON object:
{
  "expenses": [
    {
      "type": "DEBIT",
      "amount": "1500.00",
      "currency": "NGN",
      "date": "2025-01-15",
      "merchant": "string",
      "category": "string",
      "tags": ["string"],
      "description": "string",
      "confidence": 0.0-1.0
    }
  ],
  "overall_confidence": 0.0-1.0,
  "reasoning": "brief explanation"
}

RESPONSE FORMAT: Return only the JSON object, no additional text.
`)

	return sb.String()
}

// geminiExpense represents one raw expense record from Gemini.
type geminiExpense struct {
	Type        string   `json:"type"`
	Amount      string   `json:"amount"`
	Currency    string   `json:"currency"`
	Date        string   `json:"date"`
	Merchant    string   `json:"merchant"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	Confidence  float64  `json:"confidence"`
}

// geminiExtraction represents the raw response from Gemini.
type geminiExtraction struct {
	Expenses          []geminiExpense `json:"expenses"`
	OverallConfidence float64         `json:"overall_confidence"`
	Reasoning         string          `json:"reasoning"`
}

// parseResponse parses the Gemini response into an ExtractionResult.
func (s *GeminiExtractor) parseResponse(resp *genai.GenerateContentResponse) (*entity.ExtractionResult, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from gemini")
	}

	var textContent string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			textContent = string(text)
			break
		}
	}
	if textContent == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	// Strip markdown code fences if present
	textContent = strings.TrimPrefix(textContent, "```json")
	textContent = strings.TrimPrefix(textContent, "```")
	textContent = strings.TrimSuffix(textContent, "```")
	textContent = strings.TrimSpace(textContent)

	var raw geminiExtraction
	if err := json.Unmarshal([]byte(textContent), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	result := &entity.ExtractionResult{
		OverallConfidence: decimal.NewFromFloat(raw.OverallConfidence),
		RawReasoning:      raw.Reasoning,
	}

	for _, e := range raw.Expenses {
		amount, err := decimal.NewFromString(e.Amount)
		if err != nil {
			continue // Skip records with unparseable amounts
		}

		date, err := valueobject.ParseTransactionDate(e.Date)
		if err != nil {
			continue
		}

		txType := entity.TransactionType(strings.ToUpper(e.Type))
		if !txType.IsValid() {
			txType = entity.TransactionTypeOther
		}

		result.Expenses = append(result.Expenses, entity.ParsedExpense{
			Type:         txType,
			Amount:       amount,
			Currency:     strings.ToUpper(e.Currency),
			Date:         date,
			MerchantName: e.Merchant,
			CategoryName: e.Category,
			Tags:         e.Tags,
			Description:  e.Description,
			Confidence:   decimal.NewFromFloat(e.Confidence),
		})
	}

	return result, nil
}
