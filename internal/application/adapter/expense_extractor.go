package adapter

import (
	"context"

	"github.com/folaeazy/snap-bill/internal/domain/entity"
)

// ExpenseExtractor defines the interface for AI-backed expense extraction
// from email content.
type ExpenseExtractor interface {
	// Extract analyzes an email message and returns the expenses found in it.
	// A message with no recognizable expenses yields an empty result, not an error.
	Extract(ctx context.Context, message *entity.EmailMessage) (*entity.ExtractionResult, error)

	// IsAvailable checks if the extractor is available and properly configured.
	IsAvailable() bool
}
