package valueobject

import (
	"github.com/google/uuid"

	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
)

// TransactionID is the opaque, globally unique identity of a transaction.
// It is generated once at creation and never reused.
type TransactionID struct {
	value uuid.UUID
}

// NewTransactionID generates a fresh random identifier.
func NewTransactionID() TransactionID {
	return TransactionID{value: uuid.New()}
}

// ParseTransactionID parses the canonical string form of an identifier.
// Malformed input fails with ErrInvalidIdentifier.
func ParseTransactionID(s string) (TransactionID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return TransactionID{}, domainerror.NewValidationError(
			domainerror.ErrCodeInvalidIdentifier,
			"invalid transaction id: "+s,
			domainerror.ErrInvalidIdentifier,
		)
	}
	return TransactionID{value: id}, nil
}

// TransactionIDFromUUID wraps an existing UUID, e.g. when loading from persistence.
func TransactionIDFromUUID(id uuid.UUID) TransactionID {
	return TransactionID{value: id}
}

// UUID returns the underlying UUID.
func (id TransactionID) UUID() uuid.UUID {
	return id.value
}

// IsZero reports whether the identifier is unset.
func (id TransactionID) IsZero() bool {
	return id.value == uuid.Nil
}

// Equal compares two identifiers by value.
func (id TransactionID) Equal(other TransactionID) bool {
	return id.value == other.value
}

// String returns the canonical UUID string.
func (id TransactionID) String() string {
	return id.value.String()
}
