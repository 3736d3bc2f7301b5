package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/folaeazy/snap-bill/internal/domain/entity"
)

// EmailAccountRepository defines the interface for connected email account persistence.
type EmailAccountRepository interface {
	// Create creates a new connected email account.
	Create(ctx context.Context, account *entity.EmailAccount) error

	// FindByID retrieves an email account by its ID, scoped to the given user.
	FindByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*entity.EmailAccount, error)

	// FindByUser retrieves all connected email accounts for a user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.EmailAccount, error)

	// FindActive retrieves all accounts with an active connection, across users.
	// Used by the background sync scheduler.
	FindActive(ctx context.Context) ([]*entity.EmailAccount, error)

	// Update saves changes to an email account (tokens, sync state, status).
	Update(ctx context.Context, account *entity.EmailAccount) error

	// Delete removes a connected email account.
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}
