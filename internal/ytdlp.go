package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/lrstanley/go-ytdlp"
)

// SubtitleTrack is one downloadable subtitle rendition of a video.
type SubtitleTrack struct {
	URL  string `json:"url"`
	Ext  string `json:"ext"`
	Name string `json:"name"`
}

// VideoMetadata contains YouTube video information, including the
// available subtitle tracks keyed by language code.
type VideoMetadata struct {
	Title        string                     `json:"title"`
	Channel      string                     `json:"channel"`
	Duration     float64                    `json:"duration"`
	Subtitles    map[string][]SubtitleTrack `json:"subtitles"`
	AutoCaptions map[string][]SubtitleTrack `json:"automatic_captions"`
	HasCaptions  bool                       `json:"has_captions"`
}

// YouTube handles video metadata and caption operations
type YouTube struct {
	httpClient *http.Client
	verbose    bool
}

// NewYouTube creates a new YouTube caption fetcher
func NewYouTube(httpClient *http.Client, verbose bool) *YouTube {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &YouTube{
		httpClient: httpClient,
		verbose:    verbose,
	}
}

// Metadata fetches video details using go-ytdlp
func (yt *YouTube) Metadata(ctx context.Context, youtubeURL string) (*VideoMetadata, error) {
	if yt.verbose {
		fmt.Println("Extracting video metadata...")
	}

	dl := ytdlp.New().
		DumpSingleJSON(). // Get all info in JSON format
		NoPlaylist().     // Don't process playlists
		SkipDownload()    // Don't download the actual video

	result, err := dl.Run(ctx, youtubeURL)
	if err != nil {
		if yt.verbose {
			fmt.Printf("Metadata extraction error: %v\n", err)
			fmt.Printf("Stderr: %s\n", result.Stderr)
		}
		return nil, fmt.Errorf("extracting video metadata: %w", err)
	}

	var metadata VideoMetadata
	if err := json.Unmarshal([]byte(result.Stdout), &metadata); err != nil {
		return nil, fmt.Errorf("parsing video metadata: %w", err)
	}
	metadata.HasCaptions = len(metadata.Subtitles) > 0 || len(metadata.AutoCaptions) > 0

	if yt.verbose {
		fmt.Println("Metadata extraction completed successfully")
		fmt.Printf("Title: %s\n", metadata.Title)
		fmt.Printf("Channel: %s\n", metadata.Channel)
		fmt.Printf("Duration: %.2f seconds\n", metadata.Duration)
		fmt.Printf("Subtitle languages: %d manual, %d auto\n", len(metadata.Subtitles), len(metadata.AutoCaptions))
	}

	return &metadata, nil
}

// EnglishTrack selects the English subtitle track. Manually authored
// subtitles are preferred over auto-generated captions; a video without
// any subtitle set and one without an English entry fail distinctly.
func EnglishTrack(metadata *VideoMetadata) (SubtitleTrack, error) {
	tracks := metadata.Subtitles
	if len(tracks) == 0 {
		tracks = metadata.AutoCaptions
	}
	if len(tracks) == 0 {
		return SubtitleTrack{}, ErrNoSubtitles
	}

	english, ok := tracks["en"]
	if !ok || len(english) == 0 {
		return SubtitleTrack{}, ErrNoEnglishSubtitles
	}

	// Prefer the VTT rendition, which is what the sanitizer expects;
	// fall back to the first entry otherwise.
	for _, track := range english {
		if track.Ext == "vtt" {
			return track, nil
		}
	}
	return english[0], nil
}

// Captions downloads the English subtitle track for a video and
// sanitizes it to plain text. An empty result means the track held no
// caption text.
func (yt *YouTube) Captions(ctx context.Context, metadata *VideoMetadata) (string, error) {
	track, err := EnglishTrack(metadata)
	if err != nil {
		return "", err
	}

	if yt.verbose {
		fmt.Printf("Downloading %s subtitle track...\n", track.Ext)
	}

	raw, err := yt.downloadTrack(ctx, track)
	if err != nil {
		return "", err
	}

	return CleanVTT(raw), nil
}

// downloadTrack fetches the subtitle track content via HTTP GET.
func (yt *YouTube) downloadTrack(ctx context.Context, track SubtitleTrack) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, track.URL, nil)
	if err != nil {
		return "", fmt.Errorf("creating subtitle request: %w", err)
	}

	resp, err := yt.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("downloading subtitles: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrDownloadFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading subtitle response: %w", err)
	}

	return string(body), nil
}
