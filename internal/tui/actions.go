package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/studiowebux/promptstudio/internal/config"
	"github.com/studiowebux/promptstudio/internal/generation"
	"github.com/studiowebux/promptstudio/internal/types"
)

// promptSource adapts the prompt list for fuzzy matching on title and text
type promptSource []types.Prompt

func (p promptSource) String(i int) string { return p[i].Title + " " + p[i].Text }
func (p promptSource) Len() int            { return len(p) }

// applyPromptFilter recomputes the visible prompt indices from the filter
// query. An empty query shows everything in library order.
func (m *Model) applyPromptFilter() {
	query := m.store.Navigation().GetPromptFilter()

	if query == "" {
		m.visible = make([]int, len(m.prompts))
		for i := range m.prompts {
			m.visible[i] = i
		}
		return
	}

	matches := fuzzy.FindFrom(query, promptSource(m.prompts))
	m.visible = make([]int, len(matches))
	for i, match := range matches {
		m.visible[i] = match.Index
	}
}

// loadPrompts reloads the prompt list from the library
func (m *Model) loadPrompts() tea.Cmd {
	return func() tea.Msg {
		prompts, err := m.libraryMgr.ListPrompts()
		if err != nil {
			return errorMsg(fmt.Sprintf("Failed to load prompts: %v", err))
		}
		return promptsLoadedMsg{prompts: prompts}
	}
}

// loadImages reloads the image sequence for a prompt
func (m *Model) loadImages(promptID string) tea.Cmd {
	return func() tea.Msg {
		images, err := m.libraryMgr.ListImages(promptID)
		if err != nil {
			return errorMsg(fmt.Sprintf("Failed to load images: %v", err))
		}
		return imagesLoadedMsg{promptID: promptID, images: images}
	}
}

// copyPrompt copies the focused prompt's text to the system clipboard
func (m *Model) copyPrompt() {
	prompt := m.selectedPrompt()
	if prompt == nil {
		m.statusMsg = "No prompt selected"
		return
	}

	if err := clipboard.WriteAll(prompt.Text); err != nil {
		m.errorMsg = fmt.Sprintf("Failed to copy: %v", err)
		return
	}
	m.statusMsg = "Prompt copied to clipboard"
}

// downloadImage copies the focused image file into the profile's output
// directory
func (m *Model) downloadImage() {
	id, ok := m.focusedImage()
	if !ok {
		m.statusMsg = "No image selected"
		return
	}

	var image *types.GeneratedImage
	for i := range m.images {
		if m.images[i].ID == id {
			image = &m.images[i]
			break
		}
	}
	if image == nil {
		return
	}

	profile := m.sessionMgr.GetActiveProfile()
	outputDir, err := config.GetOutputDirectory(profile.OutputDir)
	if err != nil {
		m.errorMsg = fmt.Sprintf("Failed to resolve output directory: %v", err)
		return
	}

	data, err := os.ReadFile(image.FilePath)
	if err != nil {
		m.errorMsg = fmt.Sprintf("Failed to read image: %v", err)
		return
	}

	target := filepath.Join(outputDir, filepath.Base(image.FilePath))
	if err := os.WriteFile(target, data, 0644); err != nil {
		m.errorMsg = fmt.Sprintf("Failed to write image: %v", err)
		return
	}

	m.statusMsg = fmt.Sprintf("Saved to %s", target)
}

// enterCompare pairs the two selected images and switches to the compare view
func (m *Model) enterCompare() {
	selected := m.store.Selection().GetSelectedIDs()
	if len(selected) != 2 {
		m.statusMsg = "Select exactly two images to compare"
		return
	}

	m.store.SetComparePair(selected[0], selected[1])
	m.mode = ModeCompare
}

// deleteImageByID removes a confirmed image from the library and the loaded
// sequence. Invoked by the dispatcher once the two-step confirm resolves.
func (m *Model) deleteImageByID(id string) {
	if err := m.libraryMgr.DeleteImage(id); err != nil {
		m.errorMsg = fmt.Sprintf("Failed to delete image: %v", err)
		return
	}

	for i := range m.images {
		if m.images[i].ID == id {
			m.images = append(m.images[:i], m.images[i+1:]...)
			break
		}
	}
	m.store.RemoveContextImage(id)
}

// proposeVariations starts phase one of the generation workflow for the
// focused prompt
func (m *Model) proposeVariations() tea.Cmd {
	if m.store.Workflow().GetGenerating() {
		m.statusMsg = "A variation request is already in flight"
		return nil
	}

	prompt := m.selectedPrompt()
	if prompt == nil {
		m.statusMsg = "No prompt selected"
		return nil
	}

	m.store.SetGenerating(true)
	m.store.SetBasePrompt(prompt.Text)
	m.store.SetWorkflowTitle(prompt.Title)
	m.statusMsg = "Proposing variations..."

	basePromptID := prompt.ID
	basePrompt := prompt.Text
	contextIDs := m.store.Workflow().GetContextImageIDs()

	return func() tea.Msg {
		drafts, err := m.client.ProposeVariations(context.Background(), generation.VariationRequest{
			BasePrompt:      basePrompt,
			ContextImageIDs: contextIDs,
			Count:           4,
		})
		if err != nil {
			return generationFailedMsg{err: err}
		}
		return variationsProposedMsg{basePromptID: basePromptID, drafts: drafts}
	}
}

// commitWorkflow runs phase two: render every draft as a new prompt with its
// own image sequence, then clear the workflow
func (m *Model) commitWorkflow() tea.Cmd {
	drafts := m.store.Workflow().GetDrafts()
	if len(drafts) == 0 {
		m.statusMsg = "Nothing to generate"
		return nil
	}

	profile := m.sessionMgr.GetActiveProfile()
	outputDir, err := config.GetOutputDirectory(profile.OutputDir)
	if err != nil {
		m.errorMsg = fmt.Sprintf("Failed to resolve output directory: %v", err)
		return nil
	}

	params := m.store.Workflow().GetImageParams()
	if params == (types.ImageParams{}) {
		params = profile.DefaultParams
	}
	count := profile.ImagesPerRun
	title := m.store.Workflow().GetTitle()
	contextIDs := m.store.Workflow().GetContextImageIDs()

	var cmds []tea.Cmd
	for _, draft := range drafts {
		requestID := draft.ID
		text := draft.Text

		// Per-draft recommended ids narrow the context pool when present
		draftContext := contextIDs
		if len(draft.RecommendedContextIDs) > 0 {
			draftContext = draft.RecommendedContextIDs
		}

		m.store.AddPending(requestID, types.PendingGeneration{Title: title, Count: count})

		// Progress streaming is best effort; the render result does not
		// depend on it
		cmds = append(cmds, func() tea.Msg {
			_ = m.client.StreamProgress(context.Background(), requestID, func(event generation.ProgressEvent) {
				select {
				case m.progressChan <- event:
				default:
				}
			})
			return nil
		})

		cmds = append(cmds, func() tea.Msg {
			results, err := m.client.GenerateImages(context.Background(), text, params, draftContext, count, outputDir)
			if err != nil {
				return generationFailedMsg{requestID: requestID, err: err}
			}

			prompt := &types.Prompt{Title: title, Text: text}
			if err := m.libraryMgr.SavePrompt(prompt); err != nil {
				return generationFailedMsg{requestID: requestID, err: err}
			}

			var saved []types.GeneratedImage
			for _, result := range results {
				image := &types.GeneratedImage{
					ID:       result.ID,
					PromptID: prompt.ID,
					FilePath: result.FilePath,
					Seed:     result.Seed,
				}
				if err := m.libraryMgr.SaveImage(image); err != nil {
					return generationFailedMsg{requestID: requestID, err: err}
				}
				saved = append(saved, *image)
			}

			return imagesGeneratedMsg{requestID: requestID, promptID: prompt.ID, images: saved}
		})
	}

	m.store.ClearVariations()
	m.draftIndex = 0
	m.mode = ModeLibrary
	m.statusMsg = fmt.Sprintf("Generating %d prompt(s)...", len(drafts))

	cmds = append(cmds, m.loadPrompts())
	return tea.Batch(cmds...)
}
