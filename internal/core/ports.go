package core

import (
	"context"
)

// LLMClassifier defines the interface for LLM-backed classification backends
type LLMClassifier interface {
	// Classify sends the message to the model and returns its verdict.
	// Transport failures are reported as errors wrapping ErrBackendUnavailable;
	// malformed model output is recovered internally and never returned as an
	// error.
	Classify(ctx context.Context, msg *Message) (*Verdict, error)
}

// RuleEngine defines the interface for the deterministic local rule pass
type RuleEngine interface {
	// Evaluate returns a definite verdict and true if a hard rule matched,
	// or nil and false when the message needs LLM classification.
	Evaluate(msg *Message) (*Verdict, bool)
}
