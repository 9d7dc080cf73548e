package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/mikey/inbox-triage/internal/core"
)

const (
	// DefaultReason stands in when the model returned a valid label without
	// an explanation.
	DefaultReason = "Model classification"
	// UnparseableReason marks responses where neither JSON decode nor the
	// token fallback produced a label.
	UnparseableReason = "Unparseable model response"

	notSpamTokenReason = "Model output contained NOT_SPAM outside a JSON object"
	spamTokenReason    = "Model output contained SPAM outside a JSON object"
)

var (
	jsonBlobRe = regexp.MustCompile(`(?s)\{.*\}`)
	notSpamRe  = regexp.MustCompile(`(?i)NOT[_\s-]?SPAM`)
	spamRe     = regexp.MustCompile(`(?i)\bSPAM\b`)
)

// wireVerdict is the two-field object both backends are instructed to return.
type wireVerdict struct {
	Label  string `json:"label"`
	Reason string `json:"reason"`
}

// ParseVerdict turns raw model output into a verdict and never fails:
//  1. strict JSON decode of the whole response,
//  2. decode of the first {...} blob embedded in surrounding prose,
//  3. case-insensitive token search, NOT_SPAM before SPAM since one contains
//     the other,
//  4. default NOT_SPAM — a lost spam mail is cheaper than a crashed run.
func ParseVerdict(raw string) *core.Verdict {
	raw = strings.TrimSpace(raw)

	if verdict, ok := decodeStrict(raw); ok {
		return verdict
	}
	if blob := jsonBlobRe.FindString(raw); blob != "" {
		if verdict, ok := decodeStrict(blob); ok {
			return verdict
		}
	}

	if notSpamRe.MatchString(raw) {
		return &core.Verdict{Label: core.LabelNotSpam, Reason: notSpamTokenReason}
	}
	if spamRe.MatchString(raw) {
		return &core.Verdict{Label: core.LabelSpam, Reason: spamTokenReason}
	}
	return &core.Verdict{Label: core.LabelNotSpam, Reason: UnparseableReason}
}

// decodeStrict decodes one JSON object and validates the label against the
// enum. An unknown label is a parse failure, not a third variant.
func decodeStrict(s string) (*core.Verdict, bool) {
	var wire wireVerdict
	if err := json.Unmarshal([]byte(s), &wire); err != nil {
		return nil, false
	}

	label, ok := core.ParseLabel(wire.Label)
	if !ok {
		return nil, false
	}

	reason := strings.TrimSpace(wire.Reason)
	if reason == "" {
		reason = DefaultReason
	}
	return &core.Verdict{Label: label, Reason: reason}, true
}
