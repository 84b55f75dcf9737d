package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ytnotes/ytnotes/internal"
)

var (
	config *internal.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ytnotes [YouTube URL or ID]",
	Short: "Turn YouTube videos into structured AI notes",
	Long: `ytnotes converts a YouTube video's spoken content into structured
markdown notes.

It extracts the video's English captions, caches the transcript on
disk, and sends it to Gemini. Transcripts longer than the configured
chunk size are processed in sequential chunks and unified by a final
merge request.`,
	Example: `  # Generate notes for a YouTube video (default behavior)
  ytnotes "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  ytnotes tAP1eZYEuKA

  # Use a specific Gemini model
  ytnotes "https://youtu.be/tAP1eZYEuKA" --model gemini-2.5-pro

  # Academic lecture style, saved to data/notes/notes.md
  ytnotes tAP1eZYEuKA --style lecture --save

  # Custom system prompt
  ytnotes tAP1eZYEuKA --prompt "You are an expert educator creating structured notes."`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.HandleVerboseFlag(cmd, config); err != nil {
			return err
		}
		return internal.HandleQuietFlag(cmd, config)
	},
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Validate argument before any work
		arg := args[0]
		if internal.IsLikelyCommand(arg) {
			availableCommands := []string{"notes", "transcript", "cp", "metadata", "mcp", "paths", "version", "help"}
			var suggestions []string
			for _, cmdName := range availableCommands {
				if strings.Contains(cmdName, arg) || (len(arg) <= len(cmdName) && strings.Contains(arg, cmdName[:len(arg)])) {
					suggestions = append(suggestions, cmdName)
				}
			}

			if len(suggestions) > 0 {
				return fmt.Errorf("'%s' doesn't look like a YouTube URL or video ID. Did you mean: %s?", arg, strings.Join(suggestions, ", "))
			}
			return fmt.Errorf("'%s' doesn't look like a YouTube URL or video ID. Use --help to see available commands", arg)
		}

		return runNotes(cmd, arg)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Create a cancellable context for the entire application
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize configuration with Viper
	config = internal.InitConfig()

	// Ensure XDG directories exist
	if err := internal.EnsureDirs(config.ConfigDir, config.DataDir, config.CacheDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating XDG directories: %v\n", err)
		os.Exit(1)
	}

	// Ensure default config exists in XDG config directory
	if err := internal.EnsureDefaultConfig(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default config: %v\n", err)
	}

	// Ensure default style prompts exist in XDG config directory
	if err := internal.EnsureDefaultPrompts(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default prompts: %v\n", err)
	}

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nReceived interrupt signal. Shutting down...")
		cancel()
		os.Exit(0)
	}()

	// Set context on root command
	rootCmd.SetContext(ctx)

	return rootCmd.Execute()
}

func init() {
	internal.AddTranscriptFlags(rootCmd)
	internal.AddGenAIFlags(rootCmd)
	addOutputFlags(rootCmd)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress status output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is $XDG_CONFIG_HOME/ytnotes/config.toml)")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}
