package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/sentencemine/internal/archive"
	"codeberg.org/snonux/sentencemine/internal/cli"
	"codeberg.org/snonux/sentencemine/internal/models"
	"codeberg.org/snonux/sentencemine/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Handle --list-models flag
	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListAvailableModels()
	}

	// --archive without input archives the media directory and exits;
	// combined with mining it archives after the run instead
	if flags.Archive && flags.BatchFile == "" && len(args) == 0 {
		if err := archive.ArchiveMedia(flags.OutputDir); err != nil {
			return fmt.Errorf("failed to archive media: %w", err)
		}
		return nil
	}

	// Auto-adjust image size for DALL-E 3
	if flags.OpenAIImageModel == "dall-e-3" && !cmd.Flags().Changed("openai-image-size") {
		// If user didn't explicitly set size, use 1024x1024 for DALL-E 3
		flags.OpenAIImageSize = "1024x1024"
	}

	// Create processor
	proc := processor.NewProcessor(flags)

	// Explicit GUI request wins over other inputs
	if flags.GUIMode {
		return proc.RunGUIMode()
	}

	// Handle batch processing
	if flags.BatchFile != "" {
		return proc.ProcessBatch()
	}

	if len(args) > 0 {
		return proc.ProcessSingleSentence(args[0])
	}

	// No input provided - launch GUI mode by default
	return proc.RunGUIMode()
}
