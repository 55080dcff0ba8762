package tui

import (
	"sync"
	"testing"

	"github.com/studiowebux/promptstudio/internal/types"
)

func TestNewSelectionState(t *testing.T) {
	state := NewSelectionState()

	if state == nil {
		t.Fatal("NewSelectionState returned nil")
	}

	if state.GetMode() != types.SelectNone {
		t.Errorf("Expected mode none, got %s", state.GetMode())
	}

	if state.SelectionCount() != 0 {
		t.Errorf("Expected empty selection, got %d", state.SelectionCount())
	}

	if state.GetComparePair() != nil {
		t.Error("Expected no compare pair initially")
	}
}

func TestSelectionState_ModeChangeClearsSelection(t *testing.T) {
	state := NewSelectionState()

	state.SetMode(types.SelectImage)
	state.ToggleSelection("img-1")
	state.ToggleSelection("img-2")

	if state.SelectionCount() != 2 {
		t.Fatalf("Expected 2 selected, got %d", state.SelectionCount())
	}

	// Changing to another mode clears the set
	state.SetMode(types.SelectBatch)
	if state.SelectionCount() != 0 {
		t.Errorf("Expected selection cleared on mode change, got %d", state.SelectionCount())
	}

	// Setting the same mode again also clears
	state.ToggleSelection("img-3")
	state.SetMode(types.SelectBatch)
	if state.SelectionCount() != 0 {
		t.Errorf("Expected selection cleared on same-mode set, got %d", state.SelectionCount())
	}
}

func TestSelectionState_ToggleNoOpWhileModeNone(t *testing.T) {
	state := NewSelectionState()

	state.ToggleSelection("img-1")
	if state.SelectionCount() != 0 {
		t.Errorf("Expected toggle to be a no-op while mode is none, got %d selected", state.SelectionCount())
	}
	if state.IsSelected("img-1") {
		t.Error("Expected img-1 unselected while mode is none")
	}
}

func TestSelectionState_ToggleIsItsOwnInverse(t *testing.T) {
	state := NewSelectionState()
	state.SetMode(types.SelectImage)

	state.ToggleSelection("img-1")
	if !state.IsSelected("img-1") {
		t.Fatal("Expected img-1 selected after toggle")
	}

	state.ToggleSelection("img-1")
	if state.IsSelected("img-1") {
		t.Error("Expected img-1 unselected after double toggle")
	}
	if state.SelectionCount() != 0 {
		t.Errorf("Expected empty selection after double toggle, got %d", state.SelectionCount())
	}
}

func TestSelectionState_ClearSelectionKeepsMode(t *testing.T) {
	state := NewSelectionState()
	state.SetMode(types.SelectBatch)
	state.ToggleSelection("img-1")

	state.ClearSelection()

	if state.SelectionCount() != 0 {
		t.Errorf("Expected empty selection after clear, got %d", state.SelectionCount())
	}
	if state.GetMode() != types.SelectBatch {
		t.Errorf("Expected mode unchanged by clear, got %s", state.GetMode())
	}
}

func TestSelectionState_PromptSelection(t *testing.T) {
	state := NewSelectionState()

	// Prompt selection works independently of the image selection mode
	state.TogglePromptSelection("prompt-1")
	state.TogglePromptSelection("prompt-2")

	ids := state.GetSelectedPromptIDs()
	if len(ids) != 2 {
		t.Fatalf("Expected 2 selected prompts, got %d", len(ids))
	}

	state.TogglePromptSelection("prompt-1")
	if len(state.GetSelectedPromptIDs()) != 1 {
		t.Errorf("Expected 1 selected prompt after toggle off, got %d", len(state.GetSelectedPromptIDs()))
	}
}

func TestSelectionState_ComparePair(t *testing.T) {
	state := NewSelectionState()

	state.SetComparePair("img-1", "img-2")

	pair := state.GetComparePair()
	if pair == nil {
		t.Fatal("Expected compare pair to be set")
	}
	if pair[0] != "img-1" || pair[1] != "img-2" {
		t.Errorf("Expected pair (img-1, img-2), got (%s, %s)", pair[0], pair[1])
	}

	// Mutating the returned copy must not affect internal state
	pair[0] = "mutated"
	again := state.GetComparePair()
	if again == nil || again[0] != "img-1" {
		t.Error("Compare pair was not copied on read")
	}

	state.ClearComparePair()
	if state.GetComparePair() != nil {
		t.Error("Expected compare pair cleared")
	}
}

func TestSelectionState_SelectedIDsImmutability(t *testing.T) {
	state := NewSelectionState()
	state.SetMode(types.SelectImage)
	state.ToggleSelection("img-1")

	ids := state.GetSelectedIDs()
	ids[0] = "mutated"

	if !state.IsSelected("img-1") {
		t.Error("Selected set was not copied on read")
	}
}

func TestSelectionState_ConcurrentAccess(t *testing.T) {
	state := NewSelectionState()
	state.SetMode(types.SelectImage)

	var wg sync.WaitGroup
	iterations := 50

	for i := 0; i < iterations; i++ {
		wg.Add(4)

		go func() {
			defer wg.Done()
			state.ToggleSelection("img-1")
		}()

		go func() {
			defer wg.Done()
			_ = state.GetSelectedIDs()
		}()

		go func() {
			defer wg.Done()
			state.SetComparePair("img-1", "img-2")
		}()

		go func() {
			defer wg.Done()
			_ = state.GetComparePair()
		}()
	}

	wg.Wait()
	// If we get here without panic or data race, success
}
