package gemini

import (
	"github.com/mikey/inbox-triage/internal/core"
	"go.uber.org/zap"
)

// Factory creates new instances of the Gemini client
type Factory struct {
	apiKey    string
	modelName string
	logger    *zap.Logger
}

// NewFactory creates a new factory for Gemini clients
func NewFactory(apiKey string, modelName string, logger *zap.Logger) *Factory {
	return &Factory{
		apiKey:    apiKey,
		modelName: modelName,
		logger:    logger,
	}
}

// CreateClassifier creates a new Gemini-backed classifier
func (f *Factory) CreateClassifier() (core.LLMClassifier, error) {
	return NewClient(f.apiKey, f.modelName, f.logger)
}
