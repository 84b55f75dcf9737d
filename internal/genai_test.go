package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGenAIClient records generation calls and serves canned responses.
type fakeGenAIClient struct {
	calls     [][]string
	responses []string
	failAt    int // 1-based call number that fails; 0 means never
	err       error
}

func (f *fakeGenAIClient) GenerateText(ctx context.Context, model string, parts ...string) (string, error) {
	f.calls = append(f.calls, parts)
	n := len(f.calls)

	if f.failAt != 0 && n == f.failAt {
		if f.err != nil {
			return "", f.err
		}
		return "", errors.New("generation failed")
	}

	if len(f.responses) >= n {
		return f.responses[n-1], nil
	}
	return fmt.Sprintf("notes-%d", n), nil
}

func newTestAI(client GenAIClientInterface, chunkSize int) *AI {
	return NewAI(client, "gemini-3-flash-preview", chunkSize, time.Minute, false)
}

func TestGenerateNotesSingleChunk(t *testing.T) {
	client := &fakeGenAIClient{responses: []string{"# Notes\n\ncontent"}}
	ai := newTestAI(client, 25000)

	notes, err := ai.GenerateNotes(context.Background(), "system", "user", "short transcript")
	require.NoError(t, err)

	// One round trip, output returned unmodified
	assert.Equal(t, "# Notes\n\ncontent", notes)
	require.Len(t, client.calls, 1)
	assert.Equal(t, []string{"system", "user", "short transcript"}, client.calls[0])
}

func TestGenerateNotesSingleChunkEmpty(t *testing.T) {
	client := &fakeGenAIClient{responses: []string{"  \n "}}
	ai := newTestAI(client, 25000)

	_, err := ai.GenerateNotes(context.Background(), "system", "user", "short transcript")
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestGenerateNotesMultiChunkMerge(t *testing.T) {
	transcript := strings.Repeat("a", 60000)
	client := &fakeGenAIClient{responses: []string{"part one", "part two", "part three", "merged document"}}
	ai := newTestAI(client, 25000)

	notes, err := ai.GenerateNotes(context.Background(), "system", "user", transcript)
	require.NoError(t, err)
	assert.Equal(t, "merged document", notes)

	// 3 chunk calls followed by exactly one merge call
	require.Len(t, client.calls, 4)
	for i := range 3 {
		call := client.calls[i]
		require.Len(t, call, 3)
		assert.Equal(t, "system", call[0])
		assert.Equal(t, fmt.Sprintf("user [chunk %d/3]", i+1), call[1])
	}
	assert.Equal(t, transcript[:25000], client.calls[0][2])
	assert.Equal(t, transcript[25000:50000], client.calls[1][2])
	assert.Equal(t, transcript[50000:], client.calls[2][2])
	assert.Len(t, client.calls[2][2], 10000)

	merge := client.calls[3]
	require.Len(t, merge, 3)
	assert.Equal(t, "system", merge[0])
	assert.Equal(t, mergeInstruction, merge[1])
	assert.Equal(t, "part one"+partialsSeparator+"part two"+partialsSeparator+"part three", merge[2])
}

func TestGenerateNotesChunkFailureAborts(t *testing.T) {
	transcript := strings.Repeat("b", 60000)
	client := &fakeGenAIClient{failAt: 2}
	ai := newTestAI(client, 25000)

	_, err := ai.GenerateNotes(context.Background(), "system", "user", transcript)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chunk 2/3")

	// The failure aborts immediately: no third chunk, no merge call
	assert.Len(t, client.calls, 2)
}

func TestGenerateNotesEmptyPartialSkipped(t *testing.T) {
	transcript := strings.Repeat("c", 60000)
	client := &fakeGenAIClient{responses: []string{"", "part two", "part three", "merged"}}
	ai := newTestAI(client, 25000)

	notes, err := ai.GenerateNotes(context.Background(), "system", "user", transcript)
	require.NoError(t, err)
	assert.Equal(t, "merged", notes)

	// Empty partial contributes nothing to the merge input but does not abort
	require.Len(t, client.calls, 4)
	assert.Equal(t, "part two"+partialsSeparator+"part three", client.calls[3][2])
}

func TestGenerateNotesSinglePartialStillMerges(t *testing.T) {
	transcript := strings.Repeat("d", 30000)
	client := &fakeGenAIClient{responses: []string{"only part", "", "merged"}}
	ai := newTestAI(client, 25000)

	notes, err := ai.GenerateNotes(context.Background(), "system", "user", transcript)
	require.NoError(t, err)
	assert.Equal(t, "merged", notes)

	// Two chunks, one non-empty partial: the merge call still fires
	require.Len(t, client.calls, 3)
	assert.Equal(t, "only part", client.calls[2][2])
}

func TestGenerateNotesMissingAPIKey(t *testing.T) {
	ai := NewAIWithKey("", "gemini-3-flash-preview", 25000, time.Minute, false)

	_, err := ai.GenerateNotes(context.Background(), "system", "user", "transcript")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.ErrorIs(t, ai.Ready(), ErrMissingAPIKey)
}
