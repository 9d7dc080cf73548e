package rules

import (
	"net/mail"
	"strings"

	"github.com/mikey/inbox-triage/internal/core"
	"go.uber.org/zap"
)

// Fixed reasons for rule verdicts. The LLM path produces free-form reasons;
// the rule path always uses one of these.
const (
	ReasonBlockedDomain = "Sender domain is on the spam blocklist"
	ReasonSurvey        = "Post-purchase survey / rating request"
	ReasonSales         = "Sales outreach / booking language detected"
)

// Engine applies the deterministic local rules. It is pure string matching:
// no network, no state, never fails, and tolerates empty fields.
type Engine struct {
	blockedDomains []string
	surveyPhrases  []string
	salesPhrases   []string
	logger         *zap.Logger
}

// NewEngine creates a new rule engine
func NewEngine(blockedDomains, surveyPhrases, salesPhrases []string, logger *zap.Logger) *Engine {
	return &Engine{
		blockedDomains: normalize(blockedDomains),
		surveyPhrases:  normalize(surveyPhrases),
		salesPhrases:   normalize(salesPhrases),
		logger:         logger,
	}
}

func normalize(values []string) []string {
	normalized := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			normalized = append(normalized, v)
		}
	}
	return normalized
}

// Evaluate runs the rules in fixed order, first match wins. It returns a
// definite verdict and true on a match, or nil and false to signal that the
// message needs LLM classification.
func (e *Engine) Evaluate(msg *core.Message) (*core.Verdict, bool) {
	if e.matchesBlockedDomain(msg.From) {
		return e.spam(msg, ReasonBlockedDomain), true
	}

	haystack := strings.ToLower(msg.Subject + " " + msg.Snippet + " " + msg.Body)

	if containsAny(haystack, e.surveyPhrases) {
		return e.spam(msg, ReasonSurvey), true
	}
	if containsAny(haystack, e.salesPhrases) {
		return e.spam(msg, ReasonSales), true
	}

	return nil, false
}

func (e *Engine) spam(msg *core.Message, reason string) *core.Verdict {
	if e.logger != nil {
		e.logger.Debug("Local rule matched",
			zap.String("sender", msg.From),
			zap.String("reason", reason))
	}
	return &core.Verdict{Label: core.LabelSpam, Reason: reason}
}

// matchesBlockedDomain extracts the sender domain and exact-matches it
// against the blocklist. From headers usually carry a display name, so the
// address is parsed first and the raw string only used as a fallback.
func (e *Engine) matchesBlockedDomain(from string) bool {
	if len(e.blockedDomains) == 0 {
		return false
	}

	addr := from
	if parsed, err := mail.ParseAddress(from); err == nil {
		addr = parsed.Address
	}

	at := strings.LastIndex(addr, "@")
	if at < 0 || at == len(addr)-1 {
		return false
	}
	domain := strings.ToLower(strings.Trim(addr[at+1:], "<> "))

	for _, blocked := range e.blockedDomains {
		if domain == blocked {
			return true
		}
	}
	return false
}

func containsAny(haystack string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(haystack, p) {
			return true
		}
	}
	return false
}
