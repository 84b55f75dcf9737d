package internal

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTranscriptSource serves canned metadata and captions.
type fakeTranscriptSource struct {
	metadata      *VideoMetadata
	metadataErr   error
	captions      string
	captionsErr   error
	metadataCalls int
	captionsCalls int
}

func (f *fakeTranscriptSource) Metadata(ctx context.Context, youtubeURL string) (*VideoMetadata, error) {
	f.metadataCalls++
	if f.metadataErr != nil {
		return nil, f.metadataErr
	}
	return f.metadata, nil
}

func (f *fakeTranscriptSource) Captions(ctx context.Context, metadata *VideoMetadata) (string, error) {
	f.captionsCalls++
	if f.captionsErr != nil {
		return "", f.captionsErr
	}
	return f.captions, nil
}

func testConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{
		Model:             "gemini-3-flash-preview",
		Style:             StyleTutorial,
		Instruction:       "Generate notes from this video transcript.",
		ChunkSize:         DefaultChunkSize,
		GenerationTimeout: time.Minute,
		TranscriptsDir:    t.TempDir(),
		ConfigDir:         t.TempDir(),
		Quiet:             true,
	}
}

func TestGetTranscriptCacheHit(t *testing.T) {
	config := testConfig(t)
	source := &fakeTranscriptSource{
		metadata: &VideoMetadata{Title: "My Video: Part #1!"},
	}
	app := NewApp(config, WithTranscriptSource(source))

	cache := NewTranscriptCache(config.TranscriptsDir)
	require.NoError(t, cache.Write("my-video-part-1", "cached words"))

	transcript, err := app.GetTranscript(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "cached words", transcript)
	assert.Zero(t, source.captionsCalls, "cache hit must not fetch captions")
}

func TestGetTranscriptFetchesAndCaches(t *testing.T) {
	config := testConfig(t)
	source := &fakeTranscriptSource{
		metadata: &VideoMetadata{Title: "Some Talk"},
		captions: "fresh transcript text",
	}
	app := NewApp(config, WithTranscriptSource(source))

	transcript, err := app.GetTranscript(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "fresh transcript text", transcript)

	cached, ok := NewTranscriptCache(config.TranscriptsDir).Read("some-talk")
	require.True(t, ok, "fetched transcript should be cached under the title key")
	assert.Equal(t, "fresh transcript text", cached)
}

func TestGetTranscriptFallbackKey(t *testing.T) {
	config := testConfig(t)
	source := &fakeTranscriptSource{metadataErr: errors.New("yt-dlp failed")}
	app := NewApp(config, WithTranscriptSource(source))

	cache := NewTranscriptCache(config.TranscriptsDir)
	require.NoError(t, cache.Write(FallbackCacheKey, "previously saved"))

	// Metadata failure falls back to the fixed key, which still hits
	transcript, err := app.GetTranscript(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "previously saved", transcript)
}

func TestGetTranscriptMetadataFailureWithoutCache(t *testing.T) {
	config := testConfig(t)
	source := &fakeTranscriptSource{metadataErr: errors.New("yt-dlp failed")}
	app := NewApp(config, WithTranscriptSource(source))

	_, err := app.GetTranscript(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checking video metadata")
	assert.Zero(t, source.captionsCalls)
}

func TestGetTranscriptNoCacheBypassesRead(t *testing.T) {
	config := testConfig(t)
	source := &fakeTranscriptSource{
		metadata: &VideoMetadata{Title: "Some Talk"},
		captions: "refetched text",
	}
	app := NewApp(config, WithTranscriptSource(source))
	app.SetCacheDisabled(true)

	cache := NewTranscriptCache(config.TranscriptsDir)
	require.NoError(t, cache.Write("some-talk", "stale entry"))

	transcript, err := app.GetTranscript(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "refetched text", transcript)
	assert.Equal(t, 1, source.captionsCalls)

	// Bypassing reads still refreshes the entry
	cached, ok := cache.Read("some-talk")
	require.True(t, ok)
	assert.Equal(t, "refetched text", cached)
}

func TestGetTranscriptNoEnglishSubtitles(t *testing.T) {
	config := testConfig(t)
	source := &fakeTranscriptSource{
		metadata:    &VideoMetadata{Title: "Untranslated"},
		captionsErr: ErrNoEnglishSubtitles,
	}
	app := NewApp(config, WithTranscriptSource(source))

	_, err := app.GetTranscript(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	assert.ErrorIs(t, err, ErrNoEnglishSubtitles)
}

func TestGetTranscriptEmptyCaptions(t *testing.T) {
	config := testConfig(t)
	source := &fakeTranscriptSource{
		metadata: &VideoMetadata{Title: "Silent Film"},
		captions: "",
	}
	app := NewApp(config, WithTranscriptSource(source))

	_, err := app.GetTranscript(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transcript not available")
}

func TestAppGenerateNotesEndToEnd(t *testing.T) {
	config := testConfig(t)
	source := &fakeTranscriptSource{
		metadata: &VideoMetadata{Title: "Go Concurrency Patterns"},
		captions: "talk transcript",
	}
	client := &fakeGenAIClient{responses: []string{"# Go Concurrency Patterns\n\nnotes"}}
	app := NewApp(config,
		WithTranscriptSource(source),
		WithAI(newTestAI(client, config.ChunkSize)),
	)

	notes, err := app.GenerateNotes(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "")
	require.NoError(t, err)
	assert.Equal(t, "# Go Concurrency Patterns\n\nnotes", notes)

	require.Len(t, client.calls, 1)
	call := client.calls[0]
	require.Len(t, call, 3)
	assert.NotEmpty(t, call[0], "system prompt must be resolved")
	assert.Equal(t, config.Instruction, call[1], "empty instruction falls back to the configured one")
	assert.Equal(t, "talk transcript", call[2])
}

func TestAppGenerateNotesCustomInstruction(t *testing.T) {
	config := testConfig(t)
	source := &fakeTranscriptSource{
		metadata: &VideoMetadata{Title: "Go Concurrency Patterns"},
		captions: "talk transcript",
	}
	client := &fakeGenAIClient{responses: []string{"notes"}}
	app := NewApp(config,
		WithTranscriptSource(source),
		WithAI(newTestAI(client, config.ChunkSize)),
	)

	_, err := app.GenerateNotes(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "Focus on the select statement.")
	require.NoError(t, err)
	require.Len(t, client.calls, 1)
	assert.Equal(t, "Focus on the select statement.", client.calls[0][1])
}

func TestAppGenerateNotesTranscriptFailureSkipsGeneration(t *testing.T) {
	config := testConfig(t)
	source := &fakeTranscriptSource{
		metadata:    &VideoMetadata{Title: "Gone"},
		captionsErr: ErrNoSubtitles,
	}
	client := &fakeGenAIClient{}
	app := NewApp(config,
		WithTranscriptSource(source),
		WithAI(newTestAI(client, config.ChunkSize)),
	)

	_, err := app.GenerateNotes(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "")
	assert.ErrorIs(t, err, ErrNoSubtitles)
	assert.Empty(t, client.calls, "generation must not start without a transcript")
}

func TestAppGenerateNotesMissingKeyFailsEarly(t *testing.T) {
	config := testConfig(t)
	source := &fakeTranscriptSource{
		metadata: &VideoMetadata{Title: "Whatever"},
		captions: "text",
	}
	app := NewApp(config, WithTranscriptSource(source))

	_, err := app.GenerateNotes(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Zero(t, source.metadataCalls, "key check happens before any fetching")
}

func TestTranscriptCacheRoundTrip(t *testing.T) {
	cache := NewTranscriptCache(t.TempDir())

	_, ok := cache.Read("missing")
	assert.False(t, ok)

	require.NoError(t, cache.Write("my-video", "line one line two"))
	got, ok := cache.Read("my-video")
	require.True(t, ok)
	assert.Equal(t, "line one line two", got)

	// Entries land as one flat file per key
	_, err := os.Stat(cache.Path("my-video"))
	assert.NoError(t, err)
}

func TestTranscriptCacheNestedDir(t *testing.T) {
	dir := t.TempDir() + "/transcripts"
	cache := NewTranscriptCache(dir)

	// First write creates the directory
	require.NoError(t, cache.Write("key", "value"))
	got, ok := cache.Read("key")
	require.True(t, ok)
	assert.Equal(t, "value", got)
}
