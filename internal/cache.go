package internal

import (
	"fmt"
	"os"
	"path/filepath"
)

// FallbackCacheKey is used when the video title cannot be determined.
const FallbackCacheKey = "transcript"

// TranscriptCache stores one plain-text transcript per title-derived key
// as {dir}/{key}.txt. Entries are never invalidated: once a transcript
// is cached it is served forever, even if the video's captions change
// upstream. Callers that need fresh captions must bypass the cache.
type TranscriptCache struct {
	dir string
}

// NewTranscriptCache creates a cache rooted at dir. The directory is
// created lazily on first write.
func NewTranscriptCache(dir string) *TranscriptCache {
	return &TranscriptCache{dir: dir}
}

// Path returns the on-disk location for a key.
func (c *TranscriptCache) Path(key string) string {
	return filepath.Join(c.dir, key+".txt")
}

// Read returns the cached transcript for key, or ok=false when no entry
// exists or the file cannot be read.
func (c *TranscriptCache) Read(key string) (string, bool) {
	path := c.Path(key)
	if !FileExists(path) {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: reading cached transcript %s: %v\n", path, err)
		return "", false
	}
	return string(data), true
}

// Write stores a transcript under key, creating the cache directory if
// needed. Failures are returned for the caller to log; a failed write
// must never block returning the fresh transcript.
func (c *TranscriptCache) Write(key, transcript string) error {
	if err := EnsureDirs(c.dir); err != nil {
		return fmt.Errorf("creating transcripts directory: %w", err)
	}
	if err := os.WriteFile(c.Path(key), []byte(transcript), 0644); err != nil {
		return fmt.Errorf("saving transcript: %w", err)
	}
	return nil
}
