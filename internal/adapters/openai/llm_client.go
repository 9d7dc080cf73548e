package openai

import (
	"context"
	"encoding/json"
	"math"

	"github.com/mikey/inbox-triage/internal/core"
	"github.com/mikey/inbox-triage/internal/llm"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Response format modes. json_object works against the hosted API;
// json_schema is for servers that insist on a pre-declared schema (LM
// Studio); text and none are for lenient or older servers, where the regex
// fallback carries the parsing.
const (
	FormatJSONObject = "json_object"
	FormatJSONSchema = "json_schema"
	FormatText       = "text"
	FormatNone       = "none"
)

// verdictSchema pre-declares the output contract for json_schema mode.
var verdictSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"label": {
			"type": "string",
			"enum": ["SPAM", "NOT_SPAM"],
			"description": "Classification result"
		},
		"reason": {
			"type": "string",
			"description": "Brief explanation (10-25 words)"
		}
	},
	"required": ["label", "reason"],
	"additionalProperties": false
}`)

// Client is an implementation of the LLMClassifier interface using a
// chat-completion endpoint, either the hosted OpenAI API or any compatible
// server reachable through a custom base URL.
type Client struct {
	client         *openai.Client
	modelName      string
	responseFormat string
	logger         *zap.Logger
}

// NewClient creates a new chat-completion client
func NewClient(apiKey string, baseURL string, modelName string, responseFormat string, logger *zap.Logger) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &Client{
		client:         openai.NewClientWithConfig(cfg),
		modelName:      modelName,
		responseFormat: responseFormat,
		logger:         logger,
	}
}

// Classify sends the message to the chat-completion endpoint and parses the
// verdict. Transport failures wrap core.ErrBackendUnavailable; a received
// response is always turned into a verdict by the parse fallback.
func (c *Client) Classify(ctx context.Context, msg *core.Message) (*core.Verdict, error) {
	resp, err := c.client.CreateChatCompletion(ctx, c.buildRequest(llm.UserContent(msg)))
	if err != nil {
		return nil, core.BackendUnavailable("openai", err)
	}

	raw := ""
	if len(resp.Choices) > 0 {
		raw = resp.Choices[0].Message.Content
	}
	verdict := llm.ParseVerdict(raw)

	c.logger.Debug("Chat-completion classification",
		zap.String("model", c.modelName),
		zap.String("sender", msg.From),
		zap.String("label", string(verdict.Label)))

	return verdict, nil
}

// buildRequest assembles the chat request: system rules, serialized message,
// deterministic sampling, and the configured response-format mode.
func (c *Client) buildRequest(content string) openai.ChatCompletionRequest {
	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		// go-openai omits a literal 0 via omitempty; the smallest nonzero
		// float still pins sampling to deterministic output.
		Temperature: math.SmallestNonzeroFloat32,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: llm.SystemRules,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: content,
			},
		},
	}

	switch c.responseFormat {
	case FormatJSONObject:
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	case FormatJSONSchema:
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "spam_classification",
				Strict: true,
				Schema: verdictSchema,
			},
		}
	case FormatText:
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeText,
		}
	case FormatNone:
		// Some servers reject the response_format field outright.
	}

	return req
}
