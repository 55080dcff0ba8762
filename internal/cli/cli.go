package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/studiowebux/promptstudio/internal/config"
	"github.com/studiowebux/promptstudio/internal/generation"
	"github.com/studiowebux/promptstudio/internal/keybinds"
	"github.com/studiowebux/promptstudio/internal/library"
	"github.com/studiowebux/promptstudio/internal/session"
	"github.com/studiowebux/promptstudio/internal/types"
)

// GenOptions contains options for one-shot generation in CLI mode
type GenOptions struct {
	Prompt       string
	Title        string
	Profile      string
	Count        int
	OutputFormat string // json, yaml, text
	OutputDir    string
	AspectRatio  string
	ImageSize    string
	Seed         int64
	NoSave       bool // Skip recording the run in the library
}

// genReport is what the gen command prints
type genReport struct {
	Prompt   string   `json:"prompt" yaml:"prompt"`
	PromptID string   `json:"promptId,omitempty" yaml:"promptId,omitempty"`
	Images   []string `json:"images" yaml:"images"`
	Seeds    []int64  `json:"seeds,omitempty" yaml:"seeds,omitempty"`
}

// Gen renders a prompt without the TUI and prints where the images landed
func Gen(opts GenOptions) error {
	if opts.Prompt == "" {
		return fmt.Errorf("no prompt given (use --prompt)")
	}

	mgr := session.NewManager()
	if err := mgr.Load(); err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	if opts.Profile != "" {
		if err := mgr.SetActiveProfile(opts.Profile); err != nil {
			return fmt.Errorf("failed to set profile: %w", err)
		}
	}
	profile := mgr.GetActiveProfile()

	count := opts.Count
	if count <= 0 {
		count = profile.ImagesPerRun
	}

	params := profile.DefaultParams
	if opts.AspectRatio != "" {
		params.AspectRatio = opts.AspectRatio
	}
	if opts.ImageSize != "" {
		params.ImageSize = opts.ImageSize
	}
	if opts.Seed != 0 {
		params.Seed = opts.Seed
	}

	outputDirSetting := opts.OutputDir
	if outputDirSetting == "" {
		outputDirSetting = profile.OutputDir
	}
	outputDir, err := config.GetOutputDirectory(outputDirSetting)
	if err != nil {
		return err
	}

	// ctrl+c cancels the in-flight renders
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := generation.NewClient(profile)
	fmt.Fprintf(os.Stderr, "Generating %d image(s)...\n", count)

	results, err := client.GenerateImages(ctx, opts.Prompt, params, nil, count, outputDir)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	report := genReport{Prompt: opts.Prompt}
	for _, result := range results {
		report.Images = append(report.Images, result.FilePath)
		report.Seeds = append(report.Seeds, result.Seed)
	}

	if !opts.NoSave {
		promptID, err := saveRun(opts, results)
		if err != nil {
			return err
		}
		report.PromptID = promptID
	}

	return printReport(report, opts.OutputFormat)
}

// saveRun records the prompt and its images in the library
func saveRun(opts GenOptions, results []generation.ImageResult) (string, error) {
	lib, err := library.NewManager(config.DatabasePath)
	if err != nil {
		return "", err
	}
	defer lib.Close()

	title := opts.Title
	if title == "" {
		title = opts.Prompt
	}

	prompt := &types.Prompt{Title: title, Text: opts.Prompt}
	if err := lib.SavePrompt(prompt); err != nil {
		return "", err
	}

	for _, result := range results {
		image := &types.GeneratedImage{
			ID:       result.ID,
			PromptID: prompt.ID,
			FilePath: result.FilePath,
			Seed:     result.Seed,
		}
		if err := lib.SaveImage(image); err != nil {
			return "", err
		}
	}

	return prompt.ID, nil
}

func printReport(report genReport, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))

	case "yaml":
		data, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Print(string(data))

	default:
		for _, path := range report.Images {
			fmt.Println(path)
		}
	}

	return nil
}

// Keymap prints the effective keybindings, including file overrides
func Keymap() error {
	registry := keybinds.NewDefaultRegistry()
	if err := keybinds.LoadAndApply(registry, config.GetKeybindsFilePath()); err != nil {
		return err
	}

	contexts := []keybinds.Context{
		keybinds.ContextGlobal,
		keybinds.ContextLibrary,
		keybinds.ContextVariations,
		keybinds.ContextCompare,
		keybinds.ContextConfirm,
	}

	for _, context := range contexts {
		fmt.Printf("[%s]\n", context)

		bindings := registry.ListBindings(context)
		sort.Slice(bindings, func(i, j int) bool { return bindings[i].Key < bindings[j].Key })
		for _, binding := range bindings {
			if binding.Context != context {
				continue // Skip inherited globals; they get their own section
			}
			fmt.Printf("  %-12s %s\n", binding.Key, binding.Action)
		}
		fmt.Println()
	}

	return nil
}
