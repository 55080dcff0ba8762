package tui

import (
	"sync"
	"testing"

	"github.com/studiowebux/promptstudio/internal/types"
)

func TestNewNavigationState(t *testing.T) {
	state := NewNavigationState()

	if state == nil {
		t.Fatal("NewNavigationState returned nil")
	}

	if state.GetViewMode() != types.ViewSingle {
		t.Errorf("Expected single view mode, got %s", state.GetViewMode())
	}

	if state.GetCurrentPrompt() != nil {
		t.Error("Expected no focused prompt initially")
	}

	if state.GetImageIndex() != 0 {
		t.Errorf("Expected image index 0, got %d", state.GetImageIndex())
	}

	if state.GetPromptFilter() != "" {
		t.Errorf("Expected empty filter, got %q", state.GetPromptFilter())
	}
}

func TestNavigationState_SetCurrentPromptResetsIndex(t *testing.T) {
	state := NewNavigationState()

	a := "prompt-a"
	state.SetCurrentPrompt(&a)
	state.SetImageIndex(7)

	if state.GetImageIndex() != 7 {
		t.Fatalf("Expected index 7, got %d", state.GetImageIndex())
	}

	// Switching prompts resets the index
	b := "prompt-b"
	state.SetCurrentPrompt(&b)
	if state.GetImageIndex() != 0 {
		t.Errorf("Expected index reset to 0 on prompt change, got %d", state.GetImageIndex())
	}

	// Re-selecting the same prompt also resets
	state.SetImageIndex(3)
	state.SetCurrentPrompt(&b)
	if state.GetImageIndex() != 0 {
		t.Errorf("Expected index reset to 0 on same-prompt set, got %d", state.GetImageIndex())
	}

	// Clearing focus resets too
	state.SetImageIndex(5)
	state.SetCurrentPrompt(nil)
	if state.GetImageIndex() != 0 {
		t.Errorf("Expected index reset to 0 on nil prompt, got %d", state.GetImageIndex())
	}
	if state.GetCurrentPrompt() != nil {
		t.Error("Expected no focused prompt after SetCurrentPrompt(nil)")
	}
}

func TestNavigationState_NavigateImage(t *testing.T) {
	state := NewNavigationState()

	state.NavigateImage(1)
	state.NavigateImage(1)
	if state.GetImageIndex() != 2 {
		t.Errorf("Expected index 2, got %d", state.GetImageIndex())
	}

	// Clamped at zero going backwards
	state.NavigateImage(-5)
	if state.GetImageIndex() != 0 {
		t.Errorf("Expected index clamped to 0, got %d", state.GetImageIndex())
	}

	// SetImageIndex clamps negatives as well
	state.SetImageIndex(-3)
	if state.GetImageIndex() != 0 {
		t.Errorf("Expected index clamped to 0, got %d", state.GetImageIndex())
	}
}

func TestNavigationState_ViewModeToggle(t *testing.T) {
	state := NewNavigationState()

	state.ToggleViewMode()
	if state.GetViewMode() != types.ViewGrid {
		t.Errorf("Expected grid after toggle, got %s", state.GetViewMode())
	}

	state.ToggleViewMode()
	if state.GetViewMode() != types.ViewSingle {
		t.Errorf("Expected single after second toggle, got %s", state.GetViewMode())
	}

	state.SetViewMode(types.ViewGrid)
	if state.GetViewMode() != types.ViewGrid {
		t.Errorf("Expected grid after SetViewMode, got %s", state.GetViewMode())
	}
}

func TestNavigationState_Tabs(t *testing.T) {
	state := NewNavigationState()

	if state.GetLeftTab() != "prompts" {
		t.Errorf("Expected default left tab 'prompts', got %q", state.GetLeftTab())
	}
	if state.GetRightTab() != "images" {
		t.Errorf("Expected default right tab 'images', got %q", state.GetRightTab())
	}

	state.SetLeftTab("context")
	state.SetRightTab("drafts")

	if state.GetLeftTab() != "context" {
		t.Errorf("Expected left tab 'context', got %q", state.GetLeftTab())
	}
	if state.GetRightTab() != "drafts" {
		t.Errorf("Expected right tab 'drafts', got %q", state.GetRightTab())
	}
}

func TestNavigationState_PromptFilter(t *testing.T) {
	state := NewNavigationState()

	state.SetPromptFilter("sunset")
	if state.GetPromptFilter() != "sunset" {
		t.Errorf("Expected filter 'sunset', got %q", state.GetPromptFilter())
	}

	state.ClearPromptFilter()
	if state.GetPromptFilter() != "" {
		t.Errorf("Expected empty filter after clear, got %q", state.GetPromptFilter())
	}
}

func TestNavigationState_PromptIDImmutability(t *testing.T) {
	state := NewNavigationState()

	id := "prompt-a"
	state.SetCurrentPrompt(&id)

	// Mutating the caller's variable must not affect internal state
	id = "mutated"
	got := state.GetCurrentPrompt()
	if got == nil || *got != "prompt-a" {
		t.Errorf("Expected stored prompt id 'prompt-a', got %v", got)
	}

	// Mutating the returned pointer must not affect internal state either
	*got = "mutated-again"
	again := state.GetCurrentPrompt()
	if again == nil || *again != "prompt-a" {
		t.Errorf("Prompt id was not copied on read: got %v", again)
	}
}

func TestNavigationState_ConcurrentAccess(t *testing.T) {
	state := NewNavigationState()

	var wg sync.WaitGroup
	iterations := 50

	for i := 0; i < iterations; i++ {
		wg.Add(4)

		go func() {
			defer wg.Done()
			id := "prompt-x"
			state.SetCurrentPrompt(&id)
		}()

		go func() {
			defer wg.Done()
			state.NavigateImage(1)
		}()

		go func() {
			defer wg.Done()
			state.ToggleViewMode()
		}()

		go func() {
			defer wg.Done()
			_ = state.GetImageIndex()
			_ = state.GetCurrentPrompt()
		}()
	}

	wg.Wait()
	// If we get here without panic or data race, success
}
