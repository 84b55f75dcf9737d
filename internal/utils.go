package internal

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ParseArg normalizes YouTube video IDs and URLs
func ParseArg(arg string) (string, string) {
	if strings.HasPrefix(arg, "https://") {
		videoID, err := getVideoID(arg)
		if err != nil {
			// Fall back to the original arg if we can't extract an ID
			return arg, arg
		}
		return arg, videoID
	}

	return "https://www.youtube.com/watch?v=" + arg, arg
}

// getVideoID extracts the video ID from a YouTube URL
func getVideoID(youtubeURL string) (string, error) {
	youtubeURL = strings.TrimSpace(youtubeURL)
	u, err := url.Parse(youtubeURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}

	if u.Host != "www.youtube.com" && u.Host != "youtube.com" && u.Host != "youtu.be" {
		return "", fmt.Errorf("not a YouTube URL: %s", youtubeURL)
	}

	if v := u.Query().Get("v"); v != "" {
		return v, nil
	}

	parts := strings.Split(u.Path, "/")
	if len(parts) > 0 && parts[len(parts)-1] != "" {
		return parts[len(parts)-1], nil
	}

	return "", fmt.Errorf("could not extract video ID from URL: %s", youtubeURL)
}

var nonKeyRunes = regexp.MustCompile(`[^a-z0-9-]`)
var hyphenRuns = regexp.MustCompile(`-+`)

// SanitizeTitle derives a cache filename from a video title: lowercase,
// non-alphanumeric runs collapsed to a single hyphen, leading and
// trailing hyphens trimmed.
func SanitizeTitle(title string) string {
	key := nonKeyRunes.ReplaceAllString(strings.ToLower(title), "-")
	key = hyphenRuns.ReplaceAllString(key, "-")
	return strings.Trim(key, "-")
}

// getTerminalWidth gets terminal width with fallback
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}

	if width > 10 {
		return width - 4
	}

	return width
}

// StdoutIsTerminal reports whether stdout is attached to a terminal.
// Notes are rendered with glamour on a terminal and printed raw otherwise.
func StdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// RenderMarkdown renders markdown content with glamour
func RenderMarkdown(content string) (string, error) {
	width := getTerminalWidth()
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.EnvColorProfile()),
	)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}

	renderedContent, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	return renderedContent, nil
}

// FileExists checks if a file exists
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// EnsureDirs creates directories if needed
func EnsureDirs(dirs ...string) error {
	for _, dir := range dirs {
		if !FileExists(dir) {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
		}
	}
	return nil
}

// SaveNotes writes a markdown document, creating parent directories as needed.
func SaveNotes(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := EnsureDirs(dir); err != nil {
			return fmt.Errorf("creating notes directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("saving notes: %w", err)
	}
	return nil
}

// ValidateModel checks if the model is supported
func ValidateModel(model string) error {
	supportedModels := []string{
		"gemini-3-flash-preview",
		"gemini-2.5-flash",
		"gemini-2.5-pro",
		"gemini-2.0-flash",
	}
	if slices.Contains(supportedModels, model) {
		return nil
	}
	return fmt.Errorf("unsupported model: %s (supported: %s)", model, strings.Join(supportedModels, ", "))
}

// ValidateAPIKey checks that a Google API key is configured.
func ValidateAPIKey(apiKey string) error {
	if apiKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// IsValidYouTubeID checks if a string looks like a valid YouTube video ID
func IsValidYouTubeID(id string) bool {
	// YouTube video IDs are exactly 11 characters long
	if len(id) != 11 {
		return false
	}

	matched, _ := regexp.MatchString(`^[A-Za-z0-9_-]+$`, id)
	return matched
}

// IsLikelyCommand checks if a string looks like it might be a mistyped command
func IsLikelyCommand(arg string) bool {
	return len(arg) <= 10 && !IsValidYouTubeID(arg)
}
