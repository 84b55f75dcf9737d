package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemPromptEmbeddedDefault(t *testing.T) {
	// Empty config dir falls back to the embedded style prompt
	pm := NewPromptManager(t.TempDir(), StyleTutorial, "")

	prompt, err := pm.SystemPrompt()
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
}

func TestSystemPromptConfigDirOverride(t *testing.T) {
	configDir := t.TempDir()
	custom := "You are a test prompt."
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "tutorial.txt"), []byte(custom), 0644))

	pm := NewPromptManager(configDir, StyleTutorial, "")

	prompt, err := pm.SystemPrompt()
	require.NoError(t, err)
	assert.Equal(t, custom, prompt)
}

func TestSystemPromptCustomString(t *testing.T) {
	pm := NewPromptManager(t.TempDir(), StyleTutorial, "Summarize in three bullet points, no preamble please.")

	prompt, err := pm.SystemPrompt()
	require.NoError(t, err)
	assert.Equal(t, "Summarize in three bullet points, no preamble please.", prompt)
}

func TestSystemPromptCustomFile(t *testing.T) {
	promptFile := filepath.Join(t.TempDir(), "custom.txt")
	require.NoError(t, os.WriteFile(promptFile, []byte("Prompt from file."), 0644))

	pm := NewPromptManager(t.TempDir(), StyleTutorial, promptFile)

	prompt, err := pm.SystemPrompt()
	require.NoError(t, err)
	assert.Equal(t, "Prompt from file.", prompt)
}

func TestSystemPromptUnknownStyle(t *testing.T) {
	pm := NewPromptManager(t.TempDir(), "haiku", "")

	_, err := pm.SystemPrompt()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown style")
}

func TestValidateStyle(t *testing.T) {
	assert.NoError(t, ValidateStyle(StyleTutorial))
	assert.NoError(t, ValidateStyle(StyleLecture))
	assert.Error(t, ValidateStyle("podcast"))
}

func TestIsLikelyFilePath(t *testing.T) {
	assert.True(t, IsLikelyFilePath("prompts/custom.txt"))
	assert.True(t, IsLikelyFilePath("custom.md"))
	assert.False(t, IsLikelyFilePath("Summarize this video for me."))
	assert.False(t, IsLikelyFilePath("line one\nline two"))
}
