package core

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// maxRetryBackoff caps the exponential backoff between LLM attempts.
const maxRetryBackoff = 8 * time.Second

// TriageService is the core classification pipeline: local rules first,
// LLM escalation only when the rules are inconclusive.
type TriageService struct {
	rules        RuleEngine
	llm          LLMClassifier
	logger       *zap.Logger
	maxAttempts  int
	retryBackoff time.Duration
}

// NewTriageService creates a new triage service
func NewTriageService(
	rules RuleEngine,
	llm LLMClassifier,
	logger *zap.Logger,
	maxAttempts int,
	retryBackoff time.Duration,
) *TriageService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &TriageService{
		rules:        rules,
		llm:          llm,
		logger:       logger,
		maxAttempts:  maxAttempts,
		retryBackoff: retryBackoff,
	}
}

// ClassifyMessage classifies a single message. A rule match short-circuits
// without any network call; otherwise the configured LLM backend decides.
// An error wrapping ErrBackendUnavailable is recoverable per message: the
// caller may skip this message and continue with the next one.
func (s *TriageService) ClassifyMessage(ctx context.Context, msg *Message) (*Verdict, error) {
	if verdict, ok := s.rules.Evaluate(msg); ok {
		s.logger.Debug("Rule engine short-circuit",
			zap.String("sender", msg.From),
			zap.String("label", string(verdict.Label)),
			zap.String("reason", verdict.Reason))
		return verdict, nil
	}

	return s.classifyWithRetry(ctx, msg)
}

// classifyWithRetry resends the same prompt on transport failure, with
// capped exponential backoff. The prompt carries no state, so resending is
// safe.
func (s *TriageService) classifyWithRetry(ctx context.Context, msg *Message) (*Verdict, error) {
	backoff := s.retryBackoff
	var lastErr error

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		verdict, err := s.llm.Classify(ctx, msg)
		if err == nil {
			return verdict, nil
		}
		lastErr = err

		if !errors.Is(err, ErrBackendUnavailable) || attempt == s.maxAttempts {
			break
		}

		s.logger.Warn("LLM backend unavailable, retrying",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.maxAttempts),
			zap.Duration("backoff", backoff),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxRetryBackoff {
			backoff = maxRetryBackoff
		}
	}

	return nil, lastErr
}
