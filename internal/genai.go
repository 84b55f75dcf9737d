package internal

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GenAIClientInterface defines the interface for generation calls
type GenAIClientInterface interface {
	GenerateText(ctx context.Context, model string, parts ...string) (string, error)
}

// GeminiClient wraps the official Gemini Go SDK
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

// GenerateText sends one generation request with the given text parts
// and returns the concatenated text of the response candidates.
func (c *GeminiClient) GenerateText(ctx context.Context, model string, parts ...string) (string, error) {
	gparts := make([]genai.Part, len(parts))
	for i, p := range parts {
		gparts[i] = genai.Text(p)
	}

	resp, err := c.client.GenerativeModel(model).GenerateContent(ctx, gparts...)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}
	return sb.String(), nil
}

// Close releases the underlying client connection.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// partialsSeparator joins partial notes fed into the merge request.
const partialsSeparator = "\n\n---\n\n"

// mergeInstruction asks the model to unify partial notes from
// sequential transcript chunks into one document.
const mergeInstruction = "The following are partial notes generated from sequential chunks of a single video transcript, separated by '---'. Deduplicate and unify them into one coherent notes document. Merge overlapping sections, keep the structure, and do not drop details that appear in only one part."

// AI handles Gemini API interactions for notes generation
type AI struct {
	client     GenAIClientInterface
	model      string
	chunkSize  int
	timeout    time.Duration
	verbose    bool
	apiKey     string
	clientOnce sync.Once
	clientErr  error
}

// NewAI creates a new AI processor with an injected client
func NewAI(client GenAIClientInterface, model string, chunkSize int, timeout time.Duration, verbose bool) *AI {
	return &AI{
		client:    client,
		model:     model,
		chunkSize: chunkSize,
		timeout:   timeout,
		verbose:   verbose,
	}
}

// NewAIWithKey creates a new AI processor with lazy client initialization
func NewAIWithKey(apiKey, model string, chunkSize int, timeout time.Duration, verbose bool) *AI {
	return &AI{
		model:     model,
		chunkSize: chunkSize,
		timeout:   timeout,
		verbose:   verbose,
		apiKey:    apiKey,
	}
}

// Ready reports whether generation can proceed, without touching the
// network. It fails when no client is injected and no API key is set.
func (ai *AI) Ready() error {
	if ai.client != nil {
		return nil
	}
	return ValidateAPIKey(ai.apiKey)
}

// ensureClient initializes the Gemini client if needed. The API key is
// checked before any network activity happens.
func (ai *AI) ensureClient(ctx context.Context) error {
	if ai.client != nil {
		return nil
	}

	if err := ValidateAPIKey(ai.apiKey); err != nil {
		return err
	}

	ai.clientOnce.Do(func() {
		client, err := NewGeminiClient(ctx, ai.apiKey)
		if err != nil {
			ai.clientErr = err
			return
		}
		ai.client = client
	})

	return ai.clientErr
}

// GenerateNotes turns a transcript into a notes document. Transcripts
// within the chunk size take a single round trip; longer ones are split
// into chunks processed strictly in order, then unified by one merge
// request. Any single request failure aborts the whole operation with
// no partial result and no retry.
func (ai *AI) GenerateNotes(ctx context.Context, systemPrompt, userPrompt, transcript string) (string, error) {
	if err := ai.ensureClient(ctx); err != nil {
		return "", err
	}

	if len(transcript) <= ai.chunkSize {
		if ai.verbose {
			fmt.Printf("Generating notes in a single request (model: %s)\n", ai.model)
		}
		notes, err := ai.generate(ctx, systemPrompt, userPrompt, transcript)
		if err != nil {
			return "", fmt.Errorf("generating notes: %w", err)
		}
		if strings.TrimSpace(notes) == "" {
			return "", ErrEmptyResult
		}
		return notes, nil
	}

	chunks := SplitChunks(transcript, ai.chunkSize)
	numChunks := len(chunks)
	if ai.verbose {
		fmt.Printf("Transcript exceeds %d characters, generating notes in %d chunks (model: %s)\n", ai.chunkSize, numChunks, ai.model)
	}

	var partials []string
	for i, chunk := range chunks {
		annotated := fmt.Sprintf("%s [chunk %d/%d]", userPrompt, i+1, numChunks)
		partial, err := ai.generate(ctx, systemPrompt, annotated, chunk)
		if err != nil {
			return "", fmt.Errorf("generating notes for chunk %d/%d: %w", i+1, numChunks, err)
		}
		if strings.TrimSpace(partial) == "" {
			fmt.Fprintf(os.Stderr, "Warning: chunk %d/%d produced no text, skipping\n", i+1, numChunks)
			continue
		}
		partials = append(partials, partial)

		if ai.verbose {
			fmt.Printf("Generated notes for chunk %d/%d\n", i+1, numChunks)
		}
	}

	// The merge request always fires once the multi-chunk path is
	// entered, even when only a single partial was collected.
	merged, err := ai.generate(ctx, systemPrompt, mergeInstruction, strings.Join(partials, partialsSeparator))
	if err != nil {
		return "", fmt.Errorf("merging partial notes: %w", err)
	}
	if strings.TrimSpace(merged) == "" {
		return "", ErrEmptyResult
	}
	return merged, nil
}

// generate issues one generation request with a per-call timeout.
func (ai *AI) generate(ctx context.Context, parts ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, ai.timeout)
	defer cancel()

	return ai.client.GenerateText(ctx, ai.model, parts...)
}
