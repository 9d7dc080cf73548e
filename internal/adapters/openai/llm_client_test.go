package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mikey/inbox-triage/internal/core"
	"github.com/mikey/inbox-triage/internal/llm"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testMessage() *core.Message {
	return &core.Message{
		From:    "friend@example.com",
		Subject: "Coffee?",
		Snippet: "Let's grab coffee",
		Body:    "Let's grab coffee Friday",
	}
}

func TestBuildRequestModes(t *testing.T) {
	tests := []struct {
		mode     string
		wantType openai.ChatCompletionResponseFormatType
		wantNil  bool
	}{
		{FormatJSONObject, openai.ChatCompletionResponseFormatTypeJSONObject, false},
		{FormatJSONSchema, openai.ChatCompletionResponseFormatTypeJSONSchema, false},
		{FormatText, openai.ChatCompletionResponseFormatTypeText, false},
		{FormatNone, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			client := NewClient("key", "", "gpt-4o-mini", tt.mode, zap.NewNop())
			req := client.buildRequest("payload")

			if tt.wantNil {
				assert.Nil(t, req.ResponseFormat)
				return
			}
			require.NotNil(t, req.ResponseFormat)
			assert.Equal(t, tt.wantType, req.ResponseFormat.Type)

			if tt.mode == FormatJSONSchema {
				require.NotNil(t, req.ResponseFormat.JSONSchema)
				assert.Equal(t, "spam_classification", req.ResponseFormat.JSONSchema.Name)
				assert.True(t, req.ResponseFormat.JSONSchema.Strict)
			}
		})
	}
}

func TestBuildRequestPrompt(t *testing.T) {
	client := NewClient("key", "", "gpt-4o-mini", FormatJSONObject, zap.NewNop())
	req := client.buildRequest("payload")

	require.Len(t, req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Equal(t, llm.SystemRules, req.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
	assert.Equal(t, "payload", req.Messages[1].Content)
	assert.Equal(t, "gpt-4o-mini", req.Model)
	assert.Greater(t, float64(req.Temperature), 0.0, "must survive omitempty")
	assert.Less(t, float64(req.Temperature), 1e-6)
}

func TestClassifyParsesVerdict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"choices": [{
				"index": 0,
				"message": {"role": "assistant", "content": "{\"label\":\"SPAM\",\"reason\":\"Cold outreach with a booking link\"}"},
				"finish_reason": "stop"
			}]
		}`))
	}))
	defer server.Close()

	client := NewClient("key", server.URL+"/v1", "gpt-4o-mini", FormatJSONObject, zap.NewNop())
	verdict, err := client.Classify(context.Background(), testMessage())

	require.NoError(t, err)
	assert.Equal(t, core.LabelSpam, verdict.Label)
	assert.Equal(t, "Cold outreach with a booking link", verdict.Reason)
}

func TestClassifyRecoversMalformedOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-2",
			"object": "chat.completion",
			"choices": [{
				"index": 0,
				"message": {"role": "assistant", "content": "I could not decide, sorry."},
				"finish_reason": "stop"
			}]
		}`))
	}))
	defer server.Close()

	client := NewClient("key", server.URL+"/v1", "gpt-4o-mini", FormatText, zap.NewNop())
	verdict, err := client.Classify(context.Background(), testMessage())

	require.NoError(t, err, "malformed output must never become an error")
	assert.Equal(t, core.LabelNotSpam, verdict.Label)
	assert.Equal(t, llm.UnparseableReason, verdict.Reason)
}

func TestClassifyTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("key", server.URL+"/v1", "gpt-4o-mini", FormatJSONObject, zap.NewNop())
	verdict, err := client.Classify(context.Background(), testMessage())

	require.Error(t, err)
	assert.Nil(t, verdict)
	assert.ErrorIs(t, err, core.ErrBackendUnavailable)
}

func TestClassifyConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens anymore

	client := NewClient("key", server.URL+"/v1", "gpt-4o-mini", FormatJSONObject, zap.NewNop())
	_, err := client.Classify(context.Background(), testMessage())

	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrBackendUnavailable)
}
