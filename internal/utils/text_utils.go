package utils

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// TextProcessor provides utilities for preparing message text
type TextProcessor struct {
	logger *zap.Logger
}

// NewTextProcessor creates a new TextProcessor
func NewTextProcessor(logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		logger: logger,
	}
}

var lineBreaks = strings.NewReplacer("\r", " ", "\n", " ")

// Flatten replaces line breaks with spaces and trims surrounding whitespace,
// so a body fits on one line of a prompt payload.
func (tp *TextProcessor) Flatten(text string) string {
	return strings.TrimSpace(lineBreaks.Replace(text))
}

// Truncate keeps the first maxChars characters of text. The limit is
// inclusive: a text of exactly maxChars characters is returned untouched.
// Counting is per rune so a multi-byte character is never split.
func (tp *TextProcessor) Truncate(text string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return text
	}

	runes := []rune(text)
	truncated := string(runes[:maxChars])

	tp.logger.Debug("Message body truncated",
		zap.Int("original_chars", len(runes)),
		zap.Int("max_chars", maxChars))

	return truncated
}

// Normalize flattens and truncates in one operation.
func (tp *TextProcessor) Normalize(text string, maxChars int) string {
	return tp.Truncate(tp.Flatten(text), maxChars)
}
