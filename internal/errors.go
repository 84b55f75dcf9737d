package internal

import "errors"

// Sentinel errors for the transcript and generation pipeline. Callers
// match them with errors.Is to decide which user-facing message to show.
var (
	// ErrNoSubtitles means the video has no subtitle tracks at all,
	// neither manually authored nor auto-generated.
	ErrNoSubtitles = errors.New("no subtitles available")

	// ErrNoEnglishSubtitles means subtitle tracks exist but none is English.
	ErrNoEnglishSubtitles = errors.New("no English subtitles available")

	// ErrDownloadFailed means the subtitle track URL returned a non-200 status.
	ErrDownloadFailed = errors.New("subtitle download failed")

	// ErrMissingAPIKey is returned before any network activity when no
	// Google API key is configured.
	ErrMissingAPIKey = errors.New("Google API key is required - set GOOGLE_API_KEY or google_api_key in config.toml")

	// ErrEmptyResult means a generation call succeeded but produced no text.
	ErrEmptyResult = errors.New("model returned no text")
)
