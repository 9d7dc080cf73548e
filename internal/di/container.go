package di

import (
	"context"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/inbox-triage/internal/adapters/gmail"
	"github.com/mikey/inbox-triage/internal/config"
	"github.com/mikey/inbox-triage/internal/core"
	"github.com/mikey/inbox-triage/internal/factory"
	"github.com/mikey/inbox-triage/internal/logging"
	"github.com/mikey/inbox-triage/internal/rules"
	"github.com/mikey/inbox-triage/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register LLM factory and classifier
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.LLMFactory) (core.LLMClassifier, error) {
		return f.CreateClassifier()
	}); err != nil {
		return nil, err
	}

	// Register rule engine
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.RuleEngine {
		rulesCfg := cfg.GetRules()
		return rules.NewEngine(
			rulesCfg.BlockedDomains,
			rulesCfg.SurveyPhrases,
			rulesCfg.SalesPhrases,
			logger,
		)
	}); err != nil {
		return nil, err
	}

	// Register triage service
	if err := container.Provide(func(
		cfg *config.Config,
		ruleEngine core.RuleEngine,
		classifier core.LLMClassifier,
		logger *zap.Logger,
	) *core.TriageService {
		llmCfg := cfg.GetLLM()
		return core.NewTriageService(ruleEngine, classifier, logger, llmCfg.MaxAttempts, llmCfg.RetryBackoff)
	}); err != nil {
		return nil, err
	}

	// Register Gmail client
	if err := container.Provide(func(
		cfg *config.Config,
		tp *utils.TextProcessor,
		logger *zap.Logger,
	) (*gmail.Client, error) {
		gmailCfg := cfg.GetGmail()
		httpClient, err := gmail.NewHTTPClient(
			context.Background(),
			gmailCfg.CredentialsFile,
			gmailCfg.TokenFile,
			gmailCfg.AuthMode,
		)
		if err != nil {
			return nil, err
		}
		return gmail.NewClient(context.Background(), httpClient, tp, cfg.GetLLM().MaxBodyChars, logger)
	}); err != nil {
		return nil, err
	}

	return container, nil
}
