package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Note styles selectable via config or the --style flag.
const (
	StyleTutorial = "tutorial"
	StyleLecture  = "lecture"
)

// PromptManager resolves the system prompt for generation requests from
// a canned style or a custom prompt (string or file path).
type PromptManager struct {
	configDir    string
	style        string
	promptFile   string
	promptString string
}

// NewPromptManager creates a new prompt manager. promptSetting, when
// non-empty, overrides the style with a custom prompt.
func NewPromptManager(configDir, style, promptSetting string) *PromptManager {
	pm := &PromptManager{
		configDir: configDir,
		style:     style,
	}

	if promptSetting != "" {
		if IsLikelyFilePath(promptSetting) && FileExists(promptSetting) {
			pm.promptFile = promptSetting
		} else {
			pm.promptString = promptSetting
		}
	}

	return pm
}

// ValidateStyle checks that a style name is one of the canned styles.
func ValidateStyle(style string) error {
	switch style {
	case StyleTutorial, StyleLecture:
		return nil
	}
	return fmt.Errorf("unknown style: %s (supported: %s, %s)", style, StyleTutorial, StyleLecture)
}

// SystemPrompt returns the system prompt text for generation requests.
// A custom prompt string or file wins over the configured style; styles
// are read from the config directory so users can edit them, with the
// embedded defaults as fallback.
func (pm *PromptManager) SystemPrompt() (string, error) {
	if pm.promptString != "" {
		return pm.promptString, nil
	}

	if pm.promptFile != "" {
		content, err := os.ReadFile(pm.promptFile)
		if err != nil {
			return "", fmt.Errorf("reading prompt file: %w", err)
		}
		return string(content), nil
	}

	style := pm.style
	if style == "" {
		style = StyleTutorial
	}
	if err := ValidateStyle(style); err != nil {
		return "", err
	}

	filename := style + ".txt"
	if path := filepath.Join(pm.configDir, filename); FileExists(path) {
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading style prompt: %w", err)
		}
		return string(content), nil
	}

	content, err := defaultFS.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("reading embedded style prompt: %w", err)
	}
	return string(content), nil
}

// IsLikelyFilePath uses heuristics to determine if a string is likely a file path
func IsLikelyFilePath(s string) bool {
	// Check for common file path indicators
	if strings.Contains(s, "/") || strings.Contains(s, "\\") {
		return true
	}

	// Check for common file extensions
	if strings.Contains(s, ".txt") || strings.Contains(s, ".md") ||
		strings.Contains(s, ".template") || strings.Contains(s, ".tmpl") {
		return true
	}

	// If it's longer than 200 characters, it's likely a prompt string
	if len(s) > 200 {
		return false
	}

	// Default to treating as file path if it doesn't contain spaces and newlines
	return !strings.Contains(s, " ") && !strings.Contains(s, "\n")
}
