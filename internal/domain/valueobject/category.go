package valueobject

import (
	"regexp"
	"strings"

	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
)

var categoryWhitespace = regexp.MustCompile(`\s+`)

// Category is a transaction category, e.g. "Subscriptions" or "Food & Drinks".
// It supports an optional parent for hierarchical reporting. Identity is the
// case-insensitive name only; the parent is not part of equality.
type Category struct {
	name   string
	parent *Category
}

// NewCategory creates a top-level category. The name is trimmed and inner
// whitespace runs are collapsed; an empty name fails.
func NewCategory(name string) (Category, error) {
	return NewSubCategory(name, nil)
}

// NewSubCategory creates a category under the given parent (nil for top-level).
func NewSubCategory(name string, parent *Category) (Category, error) {
	trimmed := categoryWhitespace.ReplaceAllString(strings.TrimSpace(name), " ")
	if trimmed == "" {
		return Category{}, domainerror.NewValidationError(
			domainerror.ErrCodeMissingRequiredField,
			"category name cannot be empty",
			domainerror.ErrMissingRequiredField,
		)
	}
	return Category{name: trimmed, parent: parent}, nil
}

// Name returns the normalized display name.
func (c Category) Name() string {
	return c.name
}

// Parent returns the parent category, or nil for top-level categories.
func (c Category) Parent() *Category {
	return c.parent
}

// IsTopLevel reports whether the category has no parent.
func (c Category) IsTopLevel() bool {
	return c.parent == nil
}

// IsZero reports whether the category is unset.
func (c Category) IsZero() bool {
	return c.name == ""
}

// FullPath renders the hierarchy for display, e.g. "Food & Drinks > Coffee".
func (c Category) FullPath() string {
	if c.parent == nil {
		return c.name
	}
	return c.parent.FullPath() + " > " + c.name
}

// Key returns the case-insensitive identity used for grouping and map keys.
func (c Category) Key() string {
	return strings.ToLower(c.name)
}

// Equal compares names case-insensitively; parents do not participate.
func (c Category) Equal(other Category) bool {
	return strings.EqualFold(c.name, other.name)
}

// String returns the display name.
func (c Category) String() string {
	return c.name
}
