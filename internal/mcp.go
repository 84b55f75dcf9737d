package internal

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer wraps the MCP server and application dependencies
type MCPServer struct {
	app       *App
	mcpServer *server.MCPServer
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(app *App) *MCPServer {
	mcpServer := server.NewMCPServer(
		"ytnotes-server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s := &MCPServer{
		app:       app,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools
func (s *MCPServer) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_video_metadata",
		mcp.WithDescription("Extract YouTube video metadata including caption availability. Check 'Has Captions' before requesting a transcript or notes."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL"),
			mcp.Required(),
		),
	), s.handleGetMetadata)

	s.mcpServer.AddTool(mcp.NewTool("get_video_transcript",
		mcp.WithDescription("Get the plain-text English transcript of a YouTube video from its captions. Cached transcripts are reused. Fails if the video has no English captions."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL"),
			mcp.Required(),
		),
	), s.handleGetTranscript)

	s.mcpServer.AddTool(mcp.NewTool("generate_video_notes",
		mcp.WithDescription("Generate structured markdown notes from a YouTube video's captions using Gemini. Requires GOOGLE_API_KEY. Long transcripts are processed in chunks and merged."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL"),
			mcp.Required(),
		),
		mcp.WithString("instruction",
			mcp.Description("Optional instruction for the notes (defaults to well-structured notes)"),
		),
	), s.handleGenerateNotes)
}

// handleGetMetadata implements the get_video_metadata tool
func (s *MCPServer) handleGetMetadata(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	MCPLogInfo("get_video_metadata %s", url)
	metadata, err := s.app.Metadata(ctx, url)
	if err != nil {
		MCPLogError("metadata error for %s: %v", url, err)
		return mcp.NewToolResultErrorFromErr("metadata error", err), nil
	}

	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("Title: %s\n", metadata.Title))
	buf.WriteString(fmt.Sprintf("Channel: %s\n", metadata.Channel))
	buf.WriteString(fmt.Sprintf("Duration: %.0f seconds\n", metadata.Duration))
	buf.WriteString(fmt.Sprintf("Has Captions: %t\n", metadata.HasCaptions))

	if len(metadata.Subtitles) > 0 {
		buf.WriteString(fmt.Sprintf("Subtitle languages: %s\n", strings.Join(languageCodes(metadata.Subtitles), ", ")))
	}
	if len(metadata.AutoCaptions) > 0 {
		buf.WriteString(fmt.Sprintf("Auto-caption languages: %s\n", strings.Join(languageCodes(metadata.AutoCaptions), ", ")))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(buf.String())},
	}, nil
}

// handleGetTranscript implements the get_video_transcript tool
func (s *MCPServer) handleGetTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	MCPLogInfo("get_video_transcript %s", url)
	transcript, err := s.app.GetTranscript(ctx, url)
	if err != nil {
		MCPLogError("transcript error for %s: %v", url, err)
		return mcp.NewToolResultErrorFromErr("transcript not available - use get_video_metadata to check caption availability", err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(transcript)},
	}, nil
}

// handleGenerateNotes implements the generate_video_notes tool
func (s *MCPServer) handleGenerateNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}
	instruction := request.GetString("instruction", "")

	MCPLogInfo("generate_video_notes %s", url)
	notes, err := s.app.GenerateNotes(ctx, url, instruction)
	if err != nil {
		MCPLogError("notes error for %s: %v", url, err)
		return mcp.NewToolResultErrorFromErr("failed to generate notes", err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(notes)},
	}, nil
}

// languageCodes lists the language keys of a subtitle map
func languageCodes(tracks map[string][]SubtitleTrack) []string {
	codes := make([]string, 0, len(tracks))
	for code := range tracks {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// Start starts the MCP server using the specified transport
func (s *MCPServer) Start(ctx context.Context, transport string, port int) error {
	if transport == "http" {
		httpServer := server.NewStreamableHTTPServer(s.mcpServer)
		addr := fmt.Sprintf(":%d", port)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return httpServer.Start(addr)
	}

	// Default to stdio transport
	return server.ServeStdio(s.mcpServer)
}
