package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ytnotes/ytnotes/internal"
)

// notesCmd represents the notes command
var notesCmd = &cobra.Command{
	Use:   "notes [YouTube URL or ID]",
	Short: "Generate structured notes from a YouTube video",
	Example: `  # Generate notes from a YouTube video
  ytnotes notes "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  ytnotes notes tAP1eZYEuKA

  # Use specific Gemini model and lecture style
  ytnotes notes tAP1eZYEuKA --model gemini-2.5-pro --style lecture

  # Write the markdown document to a file
  ytnotes notes tAP1eZYEuKA -o my-notes.md

  # Bypass the transcript cache
  ytnotes notes tAP1eZYEuKA --no-cache`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNotes(cmd, args[0])
	},
}

// addOutputFlags adds flags controlling where the notes document goes
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().Bool("save", false, "Save notes to {dir_notes_path}/notes.md")
}

// runNotes runs the complete notes workflow for one video argument
func runNotes(cmd *cobra.Command, arg string) error {
	if err := internal.ValidateGenAIRequirements(cmd, config); err != nil {
		return err
	}

	app := internal.NewApp(config)
	if err := internal.HandleNotesFlags(cmd, app); err != nil {
		return err
	}

	youtubeURL, _ := internal.ParseArg(arg)
	instruction, _ := cmd.Flags().GetString("instruction")

	notes, err := app.GenerateNotes(cmd.Context(), youtubeURL, instruction)
	if err != nil {
		return err
	}

	outputFile, _ := cmd.Flags().GetString("output")
	if save, _ := cmd.Flags().GetBool("save"); save && outputFile == "" {
		outputFile = filepath.Join(config.NotesDir, "notes.md")
	}
	if outputFile != "" {
		if err := internal.SaveNotes(outputFile, notes); err != nil {
			return err
		}
		if !config.Quiet {
			fmt.Printf("Notes saved to %s\n", outputFile)
		}
		return nil
	}

	// Render markdown on a terminal, print raw when piped
	if internal.StdoutIsTerminal() {
		rendered, err := internal.RenderMarkdown(notes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			fmt.Println(notes)
			return nil
		}
		fmt.Println(rendered)
		return nil
	}

	fmt.Println(notes)
	return nil
}

func init() {
	internal.AddTranscriptFlags(notesCmd)
	internal.AddGenAIFlags(notesCmd)
	addOutputFlags(notesCmd)
	rootCmd.AddCommand(notesCmd)
}
