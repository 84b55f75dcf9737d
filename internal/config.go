package internal

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/lrstanley/go-ytdlp"
	"github.com/spf13/viper"
)

// DefaultChunkSize is the maximum transcript length sent in a single
// generation request. Longer transcripts are split and merged.
const DefaultChunkSize = 25000

// Config holds application settings, loaded once at startup and passed
// by reference into every component that needs it.
type Config struct {
	// User configurable settings
	GoogleAPIKey      string
	Model             string
	Style             string
	Prompt            string
	Instruction       string
	ChunkSize         int
	NotesDir          string
	AudioDir          string
	TranscriptsDir    string
	GenerationTimeout time.Duration
	Verbose           bool
	Quiet             bool
	MCPLogEnabled     bool

	// Fixed XDG paths (not configurable)
	ConfigDir string
	DataDir   string
	CacheDir  string
}

//go:embed config.toml tutorial.txt lecture.txt
var defaultFS embed.FS

// ensureDefaultFile checks if a file exists in the specified directory
// and creates it from the embedded default if it doesn't exist
func ensureDefaultFile(configDir, embedFilename, description string) error {
	filePath := filepath.Join(configDir, embedFilename)

	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile(embedFilename)
	if err != nil {
		return fmt.Errorf("reading embedded default %s: %w", description, err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return fmt.Errorf("writing default %s: %w", description, err)
	}

	fmt.Printf("Created default %s at %s\n", description, filePath)
	return nil
}

// EnsureDefaultConfig checks if a config file exists in the XDG config
// directory and creates it from the embedded default if it doesn't exist
func EnsureDefaultConfig(configDir string) error {
	return ensureDefaultFile(configDir, "config.toml", "configuration")
}

// EnsureDefaultPrompts writes the embedded note-style prompts to the XDG
// config directory so users can edit them in place.
func EnsureDefaultPrompts(configDir string) error {
	if err := ensureDefaultFile(configDir, "tutorial.txt", "tutorial prompt"); err != nil {
		return err
	}
	return ensureDefaultFile(configDir, "lecture.txt", "lecture prompt")
}

// InitConfig initializes Viper and loads configuration
func InitConfig() *Config {
	// Ensure yt-dlp is installed
	ytdlp.MustInstall(context.Background(), nil)

	// A .env file in the working directory takes effect as plain
	// environment variables; absence is fine.
	_ = godotenv.Load()

	// XDG standard directories
	configDir := filepath.Join(xdg.ConfigHome, "ytnotes")
	dataDir := filepath.Join(xdg.DataHome, "ytnotes")
	cacheDir := filepath.Join(xdg.CacheHome, "ytnotes")

	v := viper.New()

	// Set default values for configurable settings
	v.SetDefault("model", "gemini-3-flash-preview")
	v.SetDefault("style", "tutorial")
	v.SetDefault("prompt", "") // if empty the selected style's template is used
	v.SetDefault("instruction", "Generate well-structured, easy-to-read notes from this transcript.")
	v.SetDefault("chunk_size", DefaultChunkSize)
	v.SetDefault("dir_notes_path", filepath.Join("data", "notes"))
	v.SetDefault("dir_audio_path", filepath.Join("data", "audio"))
	v.SetDefault("dir_transcripts", filepath.Join("data", "transcripts"))
	v.SetDefault("generation_timeout", 2*time.Minute)
	v.SetDefault("verbose", false)
	v.SetDefault("mcp_log", false)

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Environment variables use their documented names rather than a prefix
	_ = v.BindEnv("google_api_key", "GOOGLE_API_KEY")
	_ = v.BindEnv("dir_notes_path", "DIR_NOTES_PATH")
	_ = v.BindEnv("dir_audio_path", "DIR_AUDIO_PATH")
	_ = v.BindEnv("dir_transcripts", "DIR_TRANSCRIPTS")
	_ = v.BindEnv("chunk_size", "CHUNK_SIZE")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	config := &Config{
		GoogleAPIKey:      v.GetString("google_api_key"),
		Model:             v.GetString("model"),
		Style:             v.GetString("style"),
		Prompt:            v.GetString("prompt"),
		Instruction:       v.GetString("instruction"),
		ChunkSize:         chunkSizeOrDefault(v.GetInt("chunk_size")),
		NotesDir:          v.GetString("dir_notes_path"),
		AudioDir:          v.GetString("dir_audio_path"),
		TranscriptsDir:    v.GetString("dir_transcripts"),
		GenerationTimeout: v.GetDuration("generation_timeout"),
		Verbose:           v.GetBool("verbose"),
		MCPLogEnabled:     v.GetBool("mcp_log"),

		// Fixed XDG paths
		ConfigDir: configDir,
		DataDir:   dataDir,
		CacheDir:  cacheDir,
	}

	if config.Verbose {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	return config
}

// chunkSizeOrDefault guards against unparsable or non-positive CHUNK_SIZE values.
func chunkSizeOrDefault(size int) int {
	if size <= 0 {
		return DefaultChunkSize
	}
	return size
}
