package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapkeeper/mapkeeper-cli/internal/core/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "mapkeeper version")
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "My Clippings.txt")
	output := filepath.Join(dir, "quotes.jsonl")

	clippings := strings.Join([]string{
		"Dune (Frank Herbert)",
		"- Your Highlight on page 12 | Location 182-184 | Added on Monday, January 2, 2023 10:15:32 AM",
		"",
		"Fear is the mind-killer.",
		"==========",
		"Dune (Frank Herbert)",
		"- Your Highlight on page 40 | Location 610-611 | Added on Tuesday, January 3, 2023 9:00:00 PM",
		"",
		"The mystery of life isn't a problem to solve, but a reality to experience.",
		"==========",
		"",
	}, "\r\n")
	require.NoError(t, os.WriteFile(input, []byte(clippings), 0o644))

	out, err := execute(t, "parse", input, output)
	require.NoError(t, err)

	assert.Contains(t, out, "Parse complete")
	assert.Contains(t, out, "Frank Herbert")
	assert.FileExists(t, output)
}

func TestParseCommandMissingInput(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "parse", filepath.Join(dir, "nope.txt"), filepath.Join(dir, "out.jsonl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestParseCommandEmptyInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "export.csv")
	output := filepath.Join(dir, "out.jsonl")
	require.NoError(t, os.WriteFile(input, []byte("highlight,author\n"), 0o644))

	_, err := execute(t, "parse", input, output)
	require.ErrorIs(t, err, domain.ErrNoQuotes)
	// The hint names the expected tabular shape.
	assert.Contains(t, err.Error(), "header row")
	assert.NoFileExists(t, output)
}

func TestGraphCommandMissingQuotes(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "graph", filepath.Join(dir, "nope.jsonl"), filepath.Join(dir, "graph.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mapkeeper parse")
}

func TestBuildEmbedderUnknownProvider(t *testing.T) {
	old := graphProvider
	graphProvider = "bedrock"
	defer func() { graphProvider = old }()

	_, err := buildEmbedder()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bedrock")
}

func TestBuildEmbedderOpenAIRequiresKey(t *testing.T) {
	old := graphProvider
	graphProvider = "openai"
	defer func() { graphProvider = old }()
	t.Setenv("OPENAI_API_KEY", "")

	_, err := buildEmbedder()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly ten", truncate("exactly ten", 11))
	assert.Equal(t, "long te...", truncate("long text that keeps going", 10))
}
