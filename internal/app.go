package internal

import (
	"context"
	"fmt"
	"os"
)

// TranscriptSource abstracts video metadata and caption retrieval
type TranscriptSource interface {
	Metadata(ctx context.Context, youtubeURL string) (*VideoMetadata, error)
	Captions(ctx context.Context, metadata *VideoMetadata) (string, error)
}

// App holds the application state and dependencies
type App struct {
	youtube TranscriptSource
	ai      *AI
	prompts *PromptManager
	cache   *TranscriptCache
	config  *Config
	ui      UIManager
	noCache bool
}

// NewApp initializes the application
func NewApp(config *Config, options ...AppOption) *App {
	app := &App{
		youtube: NewYouTube(nil, config.Verbose),
		ai:      NewAIWithKey(config.GoogleAPIKey, config.Model, config.ChunkSize, config.GenerationTimeout, config.Verbose),
		prompts: NewPromptManager(config.ConfigDir, config.Style, config.Prompt),
		cache:   NewTranscriptCache(config.TranscriptsDir),
		config:  config,
		ui:      NewUIManager(config.Verbose, config.Quiet),
	}

	// Apply any custom options
	for _, option := range options {
		option(app)
	}

	return app
}

// AppOption customizes App creation
type AppOption func(*App)

// WithTranscriptSource sets a custom transcript source
func WithTranscriptSource(source TranscriptSource) AppOption {
	return func(a *App) {
		a.youtube = source
	}
}

// WithAI sets a custom AI processor
func WithAI(ai *AI) AppOption {
	return func(a *App) {
		a.ai = ai
	}
}

// SetPromptManager sets a new prompt manager
func (app *App) SetPromptManager(pm *PromptManager) {
	app.prompts = pm
}

// SetCacheDisabled forces fresh caption fetches; the fresh transcript is
// still written back to the cache.
func (app *App) SetCacheDisabled(disabled bool) {
	app.noCache = disabled
}

// Metadata gets video metadata from YouTube
func (app *App) Metadata(ctx context.Context, youtubeURL string) (*VideoMetadata, error) {
	return app.youtube.Metadata(ctx, youtubeURL)
}

// GetTranscript gets a transcript from YouTube (cached or fetched)
func (app *App) GetTranscript(ctx context.Context, youtubeURL string) (string, error) {
	return app.GetTranscriptWithStatus(ctx, youtubeURL, false)
}

// GetTranscriptWithStatus gets a transcript with optional status spinner.
// The cache key derives from the video title; deriving it is best-effort
// and falls back to a fixed key, never blocking a fresh fetch.
func (app *App) GetTranscriptWithStatus(ctx context.Context, youtubeURL string, showStatus bool) (string, error) {
	var spinner ProgressBar
	if showStatus {
		spinner = app.ui.NewSpinner("Checking for cached transcript...")
	}
	finish := func() {
		if spinner != nil {
			spinner.Finish()
		}
	}

	key := FallbackCacheKey
	metadata, metaErr := app.youtube.Metadata(ctx, youtubeURL)
	if metaErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not determine video title: %v\n", metaErr)
	} else if derived := SanitizeTitle(metadata.Title); derived != "" {
		key = derived
	}

	if !app.noCache {
		if transcript, ok := app.cache.Read(key); ok {
			if spinner != nil {
				spinner.Describe("Found cached transcript")
			}
			finish()
			app.ui.Verbose("Found cached transcript for %q\n", key)
			return transcript, nil
		}
	}

	// Cache miss with no metadata means we have no subtitle tracks to
	// work from either.
	if metadata == nil {
		finish()
		return "", fmt.Errorf("checking video metadata: %w", metaErr)
	}

	if spinner != nil {
		spinner.Describe("Fetching YouTube captions...")
		spinner.Advance()
	}
	app.ui.Verbose("Fetching captions for %q\n", key)

	transcript, err := app.youtube.Captions(ctx, metadata)
	if err != nil {
		finish()
		return "", err
	}
	if transcript == "" {
		finish()
		return "", fmt.Errorf("transcript not available: captions contained no text")
	}

	// Best-effort cache write; a failure never blocks the fresh transcript
	if err := app.cache.Write(key, transcript); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	finish()
	return transcript, nil
}

// GenerateNotes performs the complete workflow: get transcript, then
// turn it into a notes document. An unavailable transcript fails the
// operation before any generation request is made.
func (app *App) GenerateNotes(ctx context.Context, youtubeURL, instruction string) (string, error) {
	if err := app.ai.Ready(); err != nil {
		return "", err
	}

	showStatus := !app.config.Quiet && !app.config.Verbose
	transcript, err := app.GetTranscriptWithStatus(ctx, youtubeURL, showStatus)
	if err != nil {
		return "", err
	}

	systemPrompt, err := app.prompts.SystemPrompt()
	if err != nil {
		return "", fmt.Errorf("resolving system prompt: %w", err)
	}

	if instruction == "" {
		instruction = app.config.Instruction
	}

	var spinner ProgressBar
	if showStatus {
		spinner = app.ui.NewSpinner("Generating notes...")
	}

	notes, err := app.ai.GenerateNotes(ctx, systemPrompt, instruction, transcript)
	if spinner != nil {
		spinner.Finish()
	}
	if err != nil {
		return "", err
	}

	return notes, nil
}
