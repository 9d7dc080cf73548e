package factory

import (
	"fmt"

	"github.com/mikey/inbox-triage/internal/adapters/gemini"
	"github.com/mikey/inbox-triage/internal/adapters/openai"
	"github.com/mikey/inbox-triage/internal/config"
	"github.com/mikey/inbox-triage/internal/core"
	"go.uber.org/zap"
)

// LLMFactory creates the configured LLM classifier
type LLMFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewLLMFactory creates a new LLM factory
func NewLLMFactory(cfg *config.Config, logger *zap.Logger) *LLMFactory {
	return &LLMFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClassifier creates a classifier for the configured backend
func (f *LLMFactory) CreateClassifier() (core.LLMClassifier, error) {
	llmConfig := f.cfg.GetLLM()

	switch llmConfig.Provider {
	case "gemini":
		geminiCfg := f.cfg.GetGemini()
		return gemini.NewFactory(geminiCfg.APIKey, geminiCfg.ModelName, f.logger).CreateClassifier()
	case "openai":
		openaiCfg := f.cfg.GetOpenAI()
		return openai.NewFactory(
			openaiCfg.APIKey,
			openaiCfg.BaseURL,
			openaiCfg.ModelName,
			openaiCfg.ResponseFormat,
			f.logger,
		).CreateClassifier()
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", llmConfig.Provider)
	}
}
