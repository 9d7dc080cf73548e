package openai

import (
	"github.com/mikey/inbox-triage/internal/core"
	"go.uber.org/zap"
)

// Factory creates new instances of the chat-completion client
type Factory struct {
	apiKey         string
	baseURL        string
	modelName      string
	responseFormat string
	logger         *zap.Logger
}

// NewFactory creates a new factory for chat-completion clients
func NewFactory(apiKey, baseURL, modelName, responseFormat string, logger *zap.Logger) *Factory {
	return &Factory{
		apiKey:         apiKey,
		baseURL:        baseURL,
		modelName:      modelName,
		responseFormat: responseFormat,
		logger:         logger,
	}
}

// CreateClassifier creates a new chat-completion-backed classifier
func (f *Factory) CreateClassifier() (core.LLMClassifier, error) {
	return NewClient(f.apiKey, f.baseURL, f.modelName, f.responseFormat, f.logger), nil
}
