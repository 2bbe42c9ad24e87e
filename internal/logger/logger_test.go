package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func reset(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	reset(t)

	SetVerbose(false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebugInfoSection_VerboseOnly(t *testing.T) {
	buf := reset(t)

	SetVerbose(false)
	Debug("parsed %d quotes", 3)
	Info("saved to %s", "quotes.jsonl")
	Section("Parse Highlights")
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Debug("parsed %d quotes", 3)
	Info("saved to %s", "quotes.jsonl")
	Section("Parse Highlights")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] parsed 3 quotes\n")
	assert.Contains(t, out, "[INFO] saved to quotes.jsonl\n")
	assert.Contains(t, out, "=== Parse Highlights ===\n")
}

func TestWarn_AlwaysPrints(t *testing.T) {
	buf := reset(t)

	SetVerbose(false)
	Warn("embedding cache unavailable: %v", os.ErrPermission)

	assert.Contains(t, buf.String(), "[WARN] embedding cache unavailable")
}
