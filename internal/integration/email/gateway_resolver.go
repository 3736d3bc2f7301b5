package email

import (
	"github.com/folaeazy/snap-bill/internal/application/adapter"
	"github.com/folaeazy/snap-bill/internal/domain/entity"
	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
)

// GatewayResolver maps an email provider to its gateway.
type GatewayResolver struct {
	gmail   *GmailGateway
	outlook *OutlookGateway
}

var _ adapter.EmailGatewayResolver = (*GatewayResolver)(nil)

// NewGatewayResolver creates a resolver over the supported gateways.
func NewGatewayResolver(gmail *GmailGateway, outlook *OutlookGateway) *GatewayResolver {
	return &GatewayResolver{
		gmail:   gmail,
		outlook: outlook,
	}
}

// Resolve returns the gateway for the provider.
func (r *GatewayResolver) Resolve(provider entity.EmailProvider) (adapter.EmailGateway, error) {
	switch provider {
	case entity.EmailProviderGmail:
		return r.gmail, nil
	case entity.EmailProviderOutlook:
		return r.outlook, nil
	default:
		return nil, domainerror.NewExtractionError(
			domainerror.ErrCodeUnsupportedProvider,
			"no gateway for provider "+string(provider),
			domainerror.ErrUnsupportedEmailProvider,
		)
	}
}
