package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/studiowebux/promptstudio/internal/cli"
	"github.com/studiowebux/promptstudio/internal/config"
	"github.com/studiowebux/promptstudio/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "promptstudio",
	Short: "Prompt Studio - interactive image generation authoring tool",
	Long: `Prompt Studio is an authoring tool for iterating on image generation
prompts. It keeps a local library of prompts and rendered images, drives a
two-phase variation workflow against a generation backend, and runs as an
interactive TUI.

Run without arguments to start the TUI, or use 'gen' for one-shot
generation from a shell.

Examples:
  promptstudio                               # Start interactive TUI
  promptstudio gen -p "a stormy coastline"   # Render with the active profile
  promptstudio gen -p "..." -c 2 -o yaml     # Two images, YAML report
  promptstudio keymap                        # Print effective keybindings`,
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run()
	},
}

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Render a prompt without the TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		opts := cli.GenOptions{
			Prompt:       flagPrompt,
			Title:        flagTitle,
			Profile:      flagProfile,
			Count:        flagCount,
			OutputFormat: flagOutput,
			OutputDir:    flagOutputDir,
			AspectRatio:  flagAspect,
			ImageSize:    flagSize,
			Seed:         flagSeed,
			NoSave:       flagNoSave,
		}
		return cli.Gen(opts)
	},
}

var keymapCmd = &cobra.Command{
	Use:   "keymap",
	Short: "Print the effective keybindings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return cli.Keymap()
	},
}

var (
	flagPrompt    string
	flagTitle     string
	flagProfile   string
	flagCount     int
	flagOutput    string
	flagOutputDir string
	flagAspect    string
	flagSize      string
	flagSeed      int64
	flagNoSave    bool
)

func init() {
	genCmd.Flags().StringVarP(&flagPrompt, "prompt", "p", "", "Prompt text to render")
	genCmd.Flags().StringVarP(&flagTitle, "title", "t", "", "Library title for the run (defaults to the prompt)")
	genCmd.Flags().StringVar(&flagProfile, "profile", "", "Profile to use")
	genCmd.Flags().IntVarP(&flagCount, "count", "c", 0, "Number of images (default: profile setting)")
	genCmd.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (json/yaml/text)")
	genCmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "Where to write images (default: profile setting)")
	genCmd.Flags().StringVar(&flagAspect, "aspect-ratio", "", "Aspect ratio override (e.g. 16:9)")
	genCmd.Flags().StringVar(&flagSize, "image-size", "", "Image size override (e.g. 1024)")
	genCmd.Flags().Int64Var(&flagSeed, "seed", 0, "Seed override")
	genCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Skip recording the run in the library")

	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(keymapCmd)
}
