package valueobject

import (
	"strings"

	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
)

// Tag is a free-form label attached to a transaction, e.g. "recurring",
// "business", "2026-trip". Tags are trimmed and lower-cased on creation so
// membership tests are case-insensitive.
type Tag struct {
	value string
}

// NewTag creates a tag. Empty or blank input fails.
func NewTag(value string) (Tag, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return Tag{}, domainerror.NewValidationError(
			domainerror.ErrCodeMissingRequiredField,
			"tag cannot be empty",
			domainerror.ErrMissingRequiredField,
		)
	}
	return Tag{value: normalized}, nil
}

// Value returns the normalized label.
func (t Tag) Value() string {
	return t.value
}

// Equal compares normalized labels.
func (t Tag) Equal(other Tag) bool {
	return t.value == other.value
}

// String returns the normalized label.
func (t Tag) String() string {
	return t.value
}
