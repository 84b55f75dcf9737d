package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddTranscriptFlags adds flags shared by commands that fetch transcripts
func AddTranscriptFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-cache", false, "Ignore the cached transcript and fetch fresh captions")
}

// AddGenAIFlags adds flags related to notes generation
func AddGenAIFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("model", "m", "", "Gemini model to use for notes")
	cmd.Flags().String("style", "", "Notes style (tutorial or lecture)")
	cmd.Flags().StringP("prompt", "p", "", "Custom system prompt (string or file path)")
	cmd.Flags().StringP("instruction", "i", "", "Instruction sent with the transcript")
}

// HandleNotesFlags applies generation and cache flags to the app
func HandleNotesFlags(cmd *cobra.Command, app *App) error {
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		app.SetCacheDisabled(true)
	}

	styleFlag := cmd.Flags().Lookup("style")
	promptFlag := cmd.Flags().Lookup("prompt")
	styleChanged := styleFlag != nil && styleFlag.Changed
	promptChanged := promptFlag != nil && promptFlag.Changed
	if !styleChanged && !promptChanged {
		return nil
	}

	style := app.config.Style
	if styleChanged {
		style, _ = cmd.Flags().GetString("style")
		if err := ValidateStyle(style); err != nil {
			return err
		}
	}

	prompt := app.config.Prompt
	if promptChanged {
		prompt, _ = cmd.Flags().GetString("prompt")
	}

	app.SetPromptManager(NewPromptManager(app.config.ConfigDir, style, prompt))

	if app.config.Verbose {
		if prompt != "" && IsLikelyFilePath(prompt) && FileExists(prompt) {
			fmt.Printf("Using custom prompt file: %s\n", prompt)
		} else if prompt != "" {
			fmt.Printf("Using custom prompt string\n")
		} else {
			fmt.Printf("Using %s style\n", style)
		}
	}

	return nil
}

// HandleVerboseFlag processes the --verbose flag to update config
func HandleVerboseFlag(cmd *cobra.Command, config *Config) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	config.Verbose = verbose
	return nil
}

// HandleQuietFlag processes the --quiet flag to update config
func HandleQuietFlag(cmd *cobra.Command, config *Config) error {
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	config.Quiet = quiet
	return nil
}

// ValidateGenAIRequirements validates the API key and model from command
// flags and config before any generation work starts
func ValidateGenAIRequirements(cmd *cobra.Command, config *Config) error {
	if err := ValidateAPIKey(config.GoogleAPIKey); err != nil {
		return err
	}

	modelFlag, _ := cmd.Flags().GetString("model")
	if modelFlag != "" {
		if err := ValidateModel(modelFlag); err != nil {
			return err
		}
		config.Model = modelFlag
	} else if err := ValidateModel(config.Model); err != nil {
		return fmt.Errorf("invalid model in config: %w", err)
	}

	return nil
}
