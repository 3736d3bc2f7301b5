package email

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
	"github.com/folaeazy/snap-bill/internal/domain/entity"
	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
)

const (
	graphBaseURL  = "https://graph.microsoft.com/v1.0"
	graphTokenURL = "https://login.microsoftonline.com/common/oauth2/v2.0/token"
	graphPageSize = 100
)

// OutlookGateway fetches messages through the Microsoft Graph API on behalf
// of a connected account.
type OutlookGateway struct {
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

var _ adapter.EmailGateway = (*OutlookGateway)(nil)

// NewOutlookGateway creates an Outlook gateway with the OAuth client
// credentials used to refresh account tokens.
func NewOutlookGateway(clientID, clientSecret string) *OutlookGateway {
	return &OutlookGateway{
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

type graphMessage struct {
	ID              string    `json:"id"`
	Subject         string    `json:"subject"`
	ReceivedAt      time.Time `json:"receivedDateTime"`
	BodyPreview     string    `json:"bodyPreview"`
	HasAttachments  bool      `json:"hasAttachments"`
	From            struct {
		EmailAddress struct {
			Name    string `json:"name"`
			Address string `json:"address"`
		} `json:"emailAddress"`
	} `json:"from"`
	Body struct {
		ContentType string `json:"contentType"`
		Content     string `json:"content"`
	} `json:"body"`
}

type graphMessageList struct {
	Value    []graphMessage `json:"value"`
	NextLink string         `json:"@odata.nextLink"`
}

// FetchMessages retrieves messages received since the given time, oldest first.
func (g *OutlookGateway) FetchMessages(ctx context.Context, account *entity.EmailAccount, since time.Time) ([]*entity.EmailMessage, error) {
	filter := fmt.Sprintf("receivedDateTime ge %s", since.UTC().Format(time.RFC3339))
	endpoint := fmt.Sprintf(
		"%s/me/messages?$filter=%s&$orderby=receivedDateTime asc&$top=%d&$select=id,subject,from,receivedDateTime,body,bodyPreview,hasAttachments",
		graphBaseURL, url.QueryEscape(filter), graphPageSize,
	)

	var messages []*entity.EmailMessage

	for endpoint != "" {
		page, err := g.fetchPage(ctx, account, endpoint)
		if err != nil {
			return nil, err
		}

		for i := range page.Value {
			messages = append(messages, graphMessageToEntity(&page.Value[i]))
		}

		endpoint = page.NextLink
	}

	return messages, nil
}

func (g *OutlookGateway) fetchPage(ctx context.Context, account *entity.EmailAccount, endpoint string) (*graphMessageList, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domainerror.NewExtractionError(
			domainerror.ErrCodeGatewayUnavailable,
			"failed to build graph request",
			err,
		)
	}
	req.Header.Set("Authorization", "Bearer "+account.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, domainerror.NewExtractionError(
			domainerror.ErrCodeGatewayUnavailable,
			"failed to call microsoft graph",
			err,
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, domainerror.NewExtractionError(
			domainerror.ErrCodeGatewayAuth,
			fmt.Sprintf("microsoft graph rejected credentials with status %d", resp.StatusCode),
			domainerror.ErrEmailGatewayUnavailable,
		)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, domainerror.NewExtractionError(
			domainerror.ErrCodeGatewayUnavailable,
			fmt.Sprintf("microsoft graph returned status %d", resp.StatusCode),
			domainerror.ErrEmailGatewayUnavailable,
		)
	}

	var page graphMessageList
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, domainerror.NewExtractionError(
			domainerror.ErrCodeGatewayUnavailable,
			"failed to decode graph response",
			err,
		)
	}
	return &page, nil
}

// RefreshAccessToken exchanges the account's refresh token for a new access
// token and updates the account in place.
func (g *OutlookGateway) RefreshAccessToken(ctx context.Context, account *entity.EmailAccount) error {
	form := url.Values{}
	form.Set("client_id", g.clientID)
	form.Set("client_secret", g.clientSecret)
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", account.RefreshToken)
	form.Set("scope", "https://graph.microsoft.com/Mail.Read offline_access")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, graphTokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return domainerror.NewExtractionError(
			domainerror.ErrCodeGatewayAuth,
			"failed to build token refresh request",
			err,
		)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return domainerror.NewExtractionError(
			domainerror.ErrCodeGatewayAuth,
			"failed to refresh outlook access token",
			err,
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domainerror.NewExtractionError(
			domainerror.ErrCodeGatewayAuth,
			fmt.Sprintf("token refresh returned status %d", resp.StatusCode),
			domainerror.ErrEmailGatewayUnavailable,
		)
	}

	var token struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return domainerror.NewExtractionError(
			domainerror.ErrCodeGatewayAuth,
			"failed to decode token response",
			err,
		)
	}

	account.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		account.RefreshToken = token.RefreshToken
	}
	expiry := time.Now().UTC().Add(time.Duration(token.ExpiresIn) * time.Second)
	account.TokenExpiry = &expiry

	return nil
}

func graphMessageToEntity(msg *graphMessage) *entity.EmailMessage {
	from := msg.From.EmailAddress.Address
	if msg.From.EmailAddress.Name != "" {
		from = fmt.Sprintf("%s <%s>", msg.From.EmailAddress.Name, msg.From.EmailAddress.Address)
	}

	body := msg.Body.Content
	if strings.EqualFold(msg.Body.ContentType, "html") {
		body = stripHTML(body)
	}
	if body == "" {
		body = msg.BodyPreview
	}

	return &entity.EmailMessage{
		ID:         msg.ID,
		Subject:    msg.Subject,
		From:       from,
		ReceivedAt: msg.ReceivedAt,
		BodyText:   body,
		RawContent: body,
	}
}
