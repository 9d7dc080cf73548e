package gmail

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/api/gmail/v1"
)

func b64(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func TestExtractPlaintextSinglePart(t *testing.T) {
	part := &gmail.MessagePart{
		MimeType: "text/plain",
		Body:     &gmail.MessagePartBody{Data: b64("hello world")},
	}
	assert.Equal(t, "hello world", extractPlaintext(part))
}

func TestExtractPlaintextPrefersFirstTextPart(t *testing.T) {
	part := &gmail.MessagePart{
		MimeType: "multipart/alternative",
		Parts: []*gmail.MessagePart{
			{
				MimeType: "text/html",
				Body:     &gmail.MessagePartBody{Data: b64("<p>hi</p>")},
			},
			{
				MimeType: "text/plain",
				Body:     &gmail.MessagePartBody{Data: b64("plain body")},
			},
		},
	}
	assert.Equal(t, "plain body", extractPlaintext(part))
}

func TestExtractPlaintextNestedMultipart(t *testing.T) {
	part := &gmail.MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*gmail.MessagePart{
			{
				MimeType: "multipart/alternative",
				Parts: []*gmail.MessagePart{
					{
						MimeType: "text/plain",
						Body:     &gmail.MessagePartBody{Data: b64("nested text")},
					},
				},
			},
			{
				MimeType: "application/pdf",
				Body:     &gmail.MessagePartBody{Data: b64("%PDF-")},
			},
		},
	}
	assert.Equal(t, "nested text", extractPlaintext(part))
}

func TestExtractPlaintextNoTextPart(t *testing.T) {
	part := &gmail.MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*gmail.MessagePart{
			{
				MimeType: "text/html",
				Body:     &gmail.MessagePartBody{Data: b64("<p>only html</p>")},
			},
		},
	}
	assert.Equal(t, "", extractPlaintext(part))
	assert.Equal(t, "", extractPlaintext(nil))
}

func TestExtractPlaintextPaddedBase64(t *testing.T) {
	part := &gmail.MessagePart{
		MimeType: "text/plain",
		Body:     &gmail.MessagePartBody{Data: base64.URLEncoding.EncodeToString([]byte("padded"))},
	}
	assert.Equal(t, "padded", extractPlaintext(part))
}

func TestDecodePartBodyCharset(t *testing.T) {
	// "café" in ISO-8859-1: the é is a single 0xE9 byte.
	raw := []byte{'c', 'a', 'f', 0xE9}
	part := &gmail.MessagePart{
		MimeType: "text/plain",
		Headers: []*gmail.MessagePartHeader{
			{Name: "Content-Type", Value: `text/plain; charset=iso-8859-1`},
		},
		Body: &gmail.MessagePartBody{Data: base64.RawURLEncoding.EncodeToString(raw)},
	}
	assert.Equal(t, "café", decodePartBody(part))
}

func TestDecodePartBodyUnknownCharsetKeepsRawBytes(t *testing.T) {
	part := &gmail.MessagePart{
		MimeType: "text/plain",
		Headers: []*gmail.MessagePartHeader{
			{Name: "Content-Type", Value: `text/plain; charset=x-no-such-charset`},
		},
		Body: &gmail.MessagePartBody{Data: b64("fallback")},
	}
	assert.Equal(t, "fallback", decodePartBody(part))
}
