package adapter

import (
	"context"
	"time"

	"github.com/folaeazy/snap-bill/internal/domain/entity"
)

// EmailGateway defines the interface for fetching messages from an email provider.
type EmailGateway interface {
	// FetchMessages retrieves messages received since the given time.
	// Messages are returned oldest first.
	FetchMessages(ctx context.Context, account *entity.EmailAccount, since time.Time) ([]*entity.EmailMessage, error)

	// RefreshAccessToken exchanges the account's refresh token for a new
	// access token and updates the account in place.
	RefreshAccessToken(ctx context.Context, account *entity.EmailAccount) error
}

// EmailGatewayResolver resolves the gateway for a provider.
type EmailGatewayResolver interface {
	// Resolve returns the gateway for the account's provider, or
	// ErrUnsupportedEmailProvider if none exists.
	Resolve(provider entity.EmailProvider) (EmailGateway, error)
}
