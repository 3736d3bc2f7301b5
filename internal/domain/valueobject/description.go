package valueobject

import "strings"

// Description is the free-text narration of a transaction. The zero value
// represents "no description"; text is trimmed on creation.
type Description struct {
	text string
}

// NewDescription creates a description from raw text.
func NewDescription(text string) Description {
	return Description{text: strings.TrimSpace(text)}
}

// EmptyDescription returns the "no description" value.
func EmptyDescription() Description {
	return Description{}
}

// Text returns the trimmed narration.
func (d Description) Text() string {
	return d.text
}

// IsEmpty reports whether there is no narration.
func (d Description) IsEmpty() bool {
	return d.text == ""
}

// Contains reports a case-insensitive substring match. An empty description
// never matches a non-empty needle.
func (d Description) Contains(substring string) bool {
	if d.text == "" && substring != "" {
		return false
	}
	return strings.Contains(strings.ToLower(d.text), strings.ToLower(substring))
}

// Equal compares the trimmed text exactly.
func (d Description) Equal(other Description) bool {
	return d.text == other.text
}

// String returns the narration.
func (d Description) String() string {
	return d.text
}
