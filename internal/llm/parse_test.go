package llm

import (
	"encoding/json"
	"testing"

	"github.com/mikey/inbox-triage/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerdictStrictJSON(t *testing.T) {
	verdict := ParseVerdict(`{"label":"SPAM","reason":"Cold outreach asking to book a call"}`)
	assert.Equal(t, core.LabelSpam, verdict.Label)
	assert.Equal(t, "Cold outreach asking to book a call", verdict.Reason)
}

func TestParseVerdictNormalizesLabelCase(t *testing.T) {
	verdict := ParseVerdict(`{"label":"not_spam","reason":"Reply in an ongoing thread"}`)
	assert.Equal(t, core.LabelNotSpam, verdict.Label)
}

func TestParseVerdictEmptyReasonGetsDefault(t *testing.T) {
	verdict := ParseVerdict(`{"label":"SPAM","reason":""}`)
	assert.Equal(t, core.LabelSpam, verdict.Label)
	assert.Equal(t, DefaultReason, verdict.Reason)
}

func TestParseVerdictEmbeddedJSONBlob(t *testing.T) {
	raw := "Sure! Here is the classification:\n{\"label\":\"NOT_SPAM\",\"reason\":\"Personal note from a known contact\"}\nLet me know if you need anything else."
	verdict := ParseVerdict(raw)
	assert.Equal(t, core.LabelNotSpam, verdict.Label)
	assert.Equal(t, "Personal note from a known contact", verdict.Reason)
}

func TestParseVerdictUnknownLabelFallsThrough(t *testing.T) {
	// A valid JSON object with a label outside the enum is a parse failure,
	// and the raw text carries no recognizable token either.
	verdict := ParseVerdict(`{"label":"MAYBE","reason":"unsure"}`)
	assert.Equal(t, core.LabelNotSpam, verdict.Label)
	assert.Equal(t, UnparseableReason, verdict.Reason)
}

func TestParseVerdictTokenFallback(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want core.Label
	}{
		{"not_spam lowercase", "i think this is not_spam, honestly", core.LabelNotSpam},
		{"NOT SPAM with space", "Verdict: NOT SPAM", core.LabelNotSpam},
		{"spam token", "this is clearly SPAM.", core.LabelSpam},
		{"spam lowercase", "looks like spam to me", core.LabelSpam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := ParseVerdict(tt.raw)
			assert.Equal(t, tt.want, verdict.Label)
			assert.NotEmpty(t, verdict.Reason)
		})
	}
}

func TestParseVerdictDefaultsToNotSpam(t *testing.T) {
	for _, raw := range []string{"", "no idea what this is", "{broken json"} {
		verdict := ParseVerdict(raw)
		assert.Equal(t, core.LabelNotSpam, verdict.Label)
		assert.Equal(t, UnparseableReason, verdict.Reason)
	}
}

func TestVerdictSerialization(t *testing.T) {
	out, err := json.Marshal(&core.Verdict{Label: core.LabelSpam, Reason: "Survey request"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"label":"SPAM","reason":"Survey request"}`, string(out))
}

func TestUserContent(t *testing.T) {
	content := UserContent(&core.Message{
		From:    "friend@example.com",
		Subject: "Coffee?",
		Snippet: "Let's grab coffee",
		Body:    "Let's grab coffee Friday",
	})

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(content), &payload))
	assert.Equal(t, "friend@example.com", payload["from"])
	assert.Equal(t, "Coffee?", payload["subject"])
	assert.Equal(t, "Let's grab coffee", payload["snippet"])
	assert.Equal(t, "Let's grab coffee Friday", payload["body"])
}
