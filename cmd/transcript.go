package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ytnotes/ytnotes/internal"
)

// transcriptCmd represents the transcript command
var transcriptCmd = &cobra.Command{
	Use:   "transcript [YouTube URL or ID]",
	Short: "Get the plain-text transcript of a YouTube video (cached or fetched)",
	Example: `  # Get transcript from YouTube captions
  ytnotes transcript "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  ytnotes transcript tAP1eZYEuKA

  # Save transcript to file
  ytnotes transcript tAP1eZYEuKA -o transcript.txt

  # Bypass the cache and refetch captions
  ytnotes transcript tAP1eZYEuKA --no-cache`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := internal.NewApp(config)
		transcript, err := fetchTranscript(cmd, app, args[0])
		if err != nil {
			return err
		}

		// Handle output flag
		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			return os.WriteFile(outputFile, []byte(transcript), 0644)
		}

		fmt.Println(transcript)
		return nil
	},
}

// fetchTranscript retrieves a transcript for the given argument, honoring
// the --no-cache flag.
func fetchTranscript(cmd *cobra.Command, app *internal.App, arg string) (string, error) {
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		app.SetCacheDisabled(true)
	}

	youtubeURL, _ := internal.ParseArg(arg)
	return app.GetTranscriptWithStatus(cmd.Context(), youtubeURL, !config.Quiet && !config.Verbose)
}

func init() {
	internal.AddTranscriptFlags(transcriptCmd)
	transcriptCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	rootCmd.AddCommand(transcriptCmd)
}
