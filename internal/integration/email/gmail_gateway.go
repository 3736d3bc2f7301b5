package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/folaeazy/snap-bill/internal/application/adapter"
	"github.com/folaeazy/snap-bill/internal/domain/entity"
	domainerror "github.com/folaeazy/snap-bill/internal/domain/error"
)

const gmailPageSize = 100

// gmailQuery narrows the fetch to likely receipt and bank alert messages.
const gmailQuery = "{subject:receipt subject:debit subject:credit subject:transaction subject:alert subject:payment}"

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// GmailGateway fetches messages through the Gmail API on behalf of a
// connected account.
type GmailGateway struct {
	oauthConfig *oauth2.Config
}

var _ adapter.EmailGateway = (*GmailGateway)(nil)

// NewGmailGateway creates a Gmail gateway with the OAuth client credentials
// used to refresh account tokens.
func NewGmailGateway(clientID, clientSecret string) *GmailGateway {
	return &GmailGateway{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL: "https://oauth2.googleapis.com/token",
			},
			Scopes: []string{gmail.GmailReadonlyScope},
		},
	}
}

// FetchMessages retrieves messages received since the given time, oldest first.
func (g *GmailGateway) FetchMessages(ctx context.Context, account *entity.EmailAccount, since time.Time) ([]*entity.EmailMessage, error) {
	service, err := g.newService(ctx, account)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("%s after:%d", gmailQuery, since.Unix())

	var messages []*entity.EmailMessage
	pageToken := ""

	for {
		call := service.Users.Messages.List("me").Q(query).MaxResults(gmailPageSize)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Context(ctx).Do()
		if err != nil {
			return nil, domainerror.NewExtractionError(
				domainerror.ErrCodeGatewayUnavailable,
				"failed to list gmail messages",
				err,
			)
		}

		for _, ref := range resp.Messages {
			msg, err := service.Users.Messages.Get("me", ref.Id).Format("full").Context(ctx).Do()
			if err != nil {
				return nil, domainerror.NewExtractionError(
					domainerror.ErrCodeGatewayUnavailable,
					"failed to get gmail message",
					err,
				)
			}
			messages = append(messages, gmailMessageToEntity(msg))
		}

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	// Gmail lists newest first
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// RefreshAccessToken exchanges the account's refresh token for a new access
// token and updates the account in place.
func (g *GmailGateway) RefreshAccessToken(ctx context.Context, account *entity.EmailAccount) error {
	token := &oauth2.Token{
		RefreshToken: account.RefreshToken,
	}

	refreshed, err := g.oauthConfig.TokenSource(ctx, token).Token()
	if err != nil {
		return domainerror.NewExtractionError(
			domainerror.ErrCodeGatewayAuth,
			"failed to refresh gmail access token",
			err,
		)
	}

	account.AccessToken = refreshed.AccessToken
	if refreshed.RefreshToken != "" {
		account.RefreshToken = refreshed.RefreshToken
	}
	expiry := refreshed.Expiry
	account.TokenExpiry = &expiry

	return nil
}

func (g *GmailGateway) newService(ctx context.Context, account *entity.EmailAccount) (*gmail.Service, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: account.AccessToken})

	service, err := gmail.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, domainerror.NewExtractionError(
			domainerror.ErrCodeGatewayUnavailable,
			"failed to create gmail service",
			err,
		)
	}
	return service, nil
}

func gmailMessageToEntity(msg *gmail.Message) *entity.EmailMessage {
	out := &entity.EmailMessage{
		ID: msg.Id,
	}

	if msg.Payload == nil {
		return out
	}

	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "Subject":
			out.Subject = header.Value
		case "From":
			out.From = header.Value
		case "Date":
			if t, err := parseEmailDate(header.Value); err == nil {
				out.ReceivedAt = t
			}
		}
	}
	if out.ReceivedAt.IsZero() && msg.InternalDate > 0 {
		out.ReceivedAt = time.UnixMilli(msg.InternalDate).UTC()
	}

	out.BodyText = extractPlainText(msg.Payload)
	if out.BodyText == "" {
		if html := extractHTML(msg.Payload); html != "" {
			out.BodyText = stripHTML(html)
		}
	}
	out.RawContent = out.BodyText

	collectAttachmentNames(msg.Payload, &out.Attachments)

	return out
}

// extractPlainText finds the first text/plain part, recursing into multiparts.
func extractPlainText(part *gmail.MessagePart) string {
	if part == nil {
		return ""
	}

	if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
		data, err := base64.URLEncoding.DecodeString(part.Body.Data)
		if err == nil {
			return string(data)
		}
	}

	for _, p := range part.Parts {
		if text := extractPlainText(p); text != "" {
			return text
		}
	}
	return ""
}

func extractHTML(part *gmail.MessagePart) string {
	if part == nil {
		return ""
	}

	if part.MimeType == "text/html" && part.Body != nil && part.Body.Data != "" {
		data, err := base64.URLEncoding.DecodeString(part.Body.Data)
		if err == nil {
			return string(data)
		}
	}

	for _, p := range part.Parts {
		if html := extractHTML(p); html != "" {
			return html
		}
	}
	return ""
}

func stripHTML(html string) string {
	text := htmlTagPattern.ReplaceAllString(html, " ")
	return strings.Join(strings.Fields(text), " ")
}

func collectAttachmentNames(part *gmail.MessagePart, names *[]string) {
	if part == nil {
		return
	}
	if part.Filename != "" {
		*names = append(*names, part.Filename)
	}
	for _, p := range part.Parts {
		collectAttachmentNames(p, names)
	}
}

func parseEmailDate(dateStr string) (time.Time, error) {
	formats := []string{
		time.RFC1123Z,
		time.RFC1123,
		"Mon, 2 Jan 2006 15:04:05 -0700",
		"2 Jan 2006 15:04:05 -0700",
		"Mon, 02 Jan 2006 15:04:05 -0700 (MST)",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}
