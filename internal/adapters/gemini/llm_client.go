package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/mikey/inbox-triage/internal/core"
	"github.com/mikey/inbox-triage/internal/llm"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Client is an implementation of the LLMClassifier interface using the
// Gemini generative REST endpoint.
type Client struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	logger    *zap.Logger
}

// NewClient creates a new Gemini client
func NewClient(apiKey string, modelName string, logger *zap.Logger) (*Client, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	// Temperature 0 and a JSON response MIME type: the verdict must be
	// deterministic and machine-parseable.
	model.SetTemperature(0)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(llm.SystemRules)},
	}

	return &Client{
		client:    client,
		model:     model,
		modelName: modelName,
		logger:    logger,
	}, nil
}

// Close closes the Gemini client
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Classify sends the message to Gemini and parses the verdict. Transport
// failures wrap core.ErrBackendUnavailable; anything the model actually
// returned is handled by the parse fallback and never becomes an error.
func (c *Client) Classify(ctx context.Context, msg *core.Message) (*core.Verdict, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(llm.UserContent(msg)))
	if err != nil {
		return nil, core.BackendUnavailable("gemini", err)
	}

	raw := responseText(resp)
	verdict := llm.ParseVerdict(raw)

	c.logger.Debug("Gemini classification",
		zap.String("model", c.modelName),
		zap.String("sender", msg.From),
		zap.String("label", string(verdict.Label)))

	return verdict, nil
}

// responseText concatenates the text parts of the first candidate. An empty
// or candidate-less response yields "", which the parser turns into the
// default NOT_SPAM verdict.
func responseText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
