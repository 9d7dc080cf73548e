package gmail

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"google.golang.org/api/gmail/v1"
)

// fetchPlaintextBody fetches the full payload and extracts the first
// text/plain part, or "" when the message carries none.
func (c *Client) fetchPlaintextBody(ctx context.Context, id string) (string, error) {
	full, err := c.svc.Users.Messages.Get("me", id).
		Format("full").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to fetch message body for %s: %w", id, err)
	}
	return extractPlaintext(full.Payload), nil
}

// extractPlaintext walks the MIME tree depth-first and returns the first
// non-empty text/plain part.
func extractPlaintext(part *gmail.MessagePart) string {
	if part == nil {
		return ""
	}

	if strings.EqualFold(part.MimeType, "text/plain") && part.Body != nil && part.Body.Data != "" {
		if text := decodePartBody(part); text != "" {
			return text
		}
	}

	for _, child := range part.Parts {
		if text := extractPlaintext(child); text != "" {
			return text
		}
	}

	return ""
}

// decodePartBody decodes the base64url payload of a part and converts it to
// UTF-8 when the part declares another charset.
func decodePartBody(part *gmail.MessagePart) string {
	data, err := base64.RawURLEncoding.DecodeString(part.Body.Data)
	if err != nil {
		// Some payloads arrive padded.
		data, err = base64.URLEncoding.DecodeString(part.Body.Data)
		if err != nil {
			return ""
		}
	}
	return decodeCharset(data, partCharset(part))
}

// partCharset reads the charset parameter of the part's Content-Type header.
func partCharset(part *gmail.MessagePart) string {
	for _, h := range part.Headers {
		if strings.EqualFold(h.Name, "Content-Type") {
			if _, params, err := mime.ParseMediaType(h.Value); err == nil {
				return params["charset"]
			}
		}
	}
	return ""
}

// decodeCharset converts data to UTF-8. Unknown or missing charsets fall
// back to the raw bytes rather than dropping the body.
func decodeCharset(data []byte, charset string) string {
	if charset == "" || strings.EqualFold(charset, "utf-8") || strings.EqualFold(charset, "us-ascii") {
		return string(data)
	}

	enc, err := htmlindex.Get(charset)
	if err != nil || enc == nil {
		return string(data)
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
