package core

import (
	"strings"
)

// Label is the classification outcome. Exactly two values exist.
type Label string

const (
	LabelSpam    Label = "SPAM"
	LabelNotSpam Label = "NOT_SPAM"
)

// ParseLabel normalizes a raw label string and validates it against the
// two-variant enum. Any other value is rejected.
func ParseLabel(s string) (Label, bool) {
	switch Label(strings.ToUpper(strings.TrimSpace(s))) {
	case LabelSpam:
		return LabelSpam, true
	case LabelNotSpam:
		return LabelNotSpam, true
	default:
		return "", false
	}
}

// Message is a normalized inbox message. It is constructed once per fetched
// item and never mutated afterwards; the body is already plaintext (empty if
// no text part was found) and already truncated to the configured budget.
type Message struct {
	ID      string
	From    string
	Subject string
	Date    string
	Snippet string
	Body    string
}

// Verdict is the final classification for one message.
type Verdict struct {
	Label  Label  `json:"label"`
	Reason string `json:"reason"`
}
