package gmail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mikey/inbox-triage/internal/core"
	"github.com/mikey/inbox-triage/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// Client fetches and normalizes inbox messages through the Gmail API.
type Client struct {
	svc          *gmail.Service
	tp           *utils.TextProcessor
	maxBodyChars int
	logger       *zap.Logger
}

// NewClient creates a new Gmail client on top of an authenticated HTTP client
func NewClient(ctx context.Context, httpClient *http.Client, tp *utils.TextProcessor, maxBodyChars int, logger *zap.Logger) (*Client, error) {
	svc, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}

	return &Client{
		svc:          svc,
		tp:           tp,
		maxBodyChars: maxBodyChars,
		logger:       logger,
	}, nil
}

// ListMessageIDs returns up to maxResults message IDs matching the query.
func (c *Client) ListMessageIDs(ctx context.Context, query string, maxResults int64) ([]string, error) {
	resp, err := c.svc.Users.Messages.List("me").
		Q(query).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	ids := make([]string, 0, len(resp.Messages))
	for _, m := range resp.Messages {
		ids = append(ids, m.Id)
	}

	c.logger.Debug("Listed inbox messages",
		zap.String("query", query),
		zap.Int("count", len(ids)))

	return ids, nil
}

// FetchMessage fetches headers, snippet and plaintext body for one message
// and normalizes them into a core.Message. The body is flattened and
// truncated to the configured character budget here, so every downstream
// consumer sees the bounded form.
func (c *Client) FetchMessage(ctx context.Context, id string) (*core.Message, error) {
	meta, err := c.svc.Users.Messages.Get("me", id).
		Format("metadata").
		MetadataHeaders("From", "Subject", "Date").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch message metadata for %s: %w", id, err)
	}

	headers := make(map[string]string)
	if meta.Payload != nil {
		for _, h := range meta.Payload.Headers {
			headers[h.Name] = h.Value
		}
	}

	body, err := c.fetchPlaintextBody(ctx, id)
	if err != nil {
		return nil, err
	}

	return &core.Message{
		ID:      id,
		From:    headers["From"],
		Subject: headers["Subject"],
		Date:    headers["Date"],
		Snippet: meta.Snippet,
		Body:    c.tp.Normalize(body, c.maxBodyChars),
	}, nil
}
