package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/folaeazy/snap-bill/internal/domain/valueobject"
)

// AuthProvider identifies how a user authenticates.
type AuthProvider string

const (
	AuthProviderLocal  AuthProvider = "LOCAL"
	AuthProviderGoogle AuthProvider = "GOOGLE"
)

// User represents an account holder in the SnapBill system. The expense core
// treats the user ID as an opaque token; this entity exists for the auth and
// email-sync layers around it.
type User struct {
	ID              uuid.UUID
	Email           string
	Name            string
	AuthProvider    AuthProvider
	ProviderUserID  string // empty for local accounts
	PasswordHash    string // bcrypt, empty for OAuth-only accounts
	DefaultCurrency valueobject.CurrencyCode
	Enabled         bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewUser creates a new local User entity.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()

	return &User{
		ID:              uuid.New(),
		Email:           email,
		Name:            name,
		AuthProvider:    AuthProviderLocal,
		PasswordHash:    passwordHash,
		DefaultCurrency: valueobject.CurrencyNGN,
		Enabled:         true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
