package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTruncateBoundary(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	exact := strings.Repeat("a", 2000)
	assert.Equal(t, exact, tp.Truncate(exact, 2000), "a body of exactly the limit passes through untouched")

	over := exact + "b"
	got := tp.Truncate(over, 2000)
	assert.Len(t, got, 2000)
	assert.Equal(t, exact, got)
}

func TestTruncateCountsRunes(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	text := "héllo wörld"
	assert.Equal(t, text, tp.Truncate(text, 11))
	assert.Equal(t, "héllo", tp.Truncate(text, 5))
}

func TestTruncateNoLimit(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())
	assert.Equal(t, "anything", tp.Truncate("anything", 0))
}

func TestFlatten(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())
	assert.Equal(t, "one  two   three", tp.Flatten("  one\r\ntwo\r\n three\n"))
	assert.Equal(t, "", tp.Flatten("\r\n"))
}

func TestNormalize(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())
	got := tp.Normalize("line one\nline two", 8)
	assert.Equal(t, "line one", got)
}
