package llm

import (
	"encoding/json"

	"github.com/mikey/inbox-triage/internal/core"
)

// SystemRules is the single source of truth for the classification contract.
// Both backends send it verbatim as their system instruction.
const SystemRules = `You are an email gate. Classify ONE email as SPAM or NOT_SPAM.

Hard rules (override everything):
- If sender domain contains "thegivingblock.com" → SPAM.
- If the email asks to rate an experience or complete a store/merchant survey → SPAM.
- If the email is cold outreach / sales solicitation (e.g., "intro X x Y", "would you be interested", "book a call", Calendly links, "we help you <outcome>", lead-gen) → SPAM.

Signals for sales/solicitations (weigh heavily):
- Phrases: "would you be interested", "quick call", "jump on a call", "book time", "schedule", "pick a time", "intro", "case study", "pilot", "free consultation", "special offer", "limited time".
- Mentions lead-gen or booking meetings; Calendly/Meet/Zoom links; "we help you reach…".
- Marketing footers: "unsubscribe", "update preferences", "view in browser".

False-positive guards:
- Transactional receipts, codes, real ongoing threads/replies from known contacts, expected calendar invites.

Output:
Return exactly one JSON object on one line:
{"label":"SPAM|NOT_SPAM","reason":"10–25 words"}
No extra text.`

// userPayload is the serialized message content sent as the user turn.
type userPayload struct {
	From    string `json:"from"`
	Subject string `json:"subject"`
	Snippet string `json:"snippet"`
	Body    string `json:"body"`
}

// UserContent serializes the message fields for the user turn of the prompt.
// The body is expected to be normalized and truncated already.
func UserContent(msg *core.Message) string {
	payload, err := json.Marshal(userPayload{
		From:    msg.From,
		Subject: msg.Subject,
		Snippet: msg.Snippet,
		Body:    msg.Body,
	})
	if err != nil {
		// Marshaling four plain strings cannot fail.
		return "{}"
	}
	return string(payload)
}
