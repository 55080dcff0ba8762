package tui

import (
	"sync"

	"github.com/studiowebux/promptstudio/internal/types"
)

// SelectionState encapsulates the selection mode, the selected image set,
// selected prompts and the optional compare pair.
//
// Invariant: the selected image set is scoped to one mode. Changing the mode
// clears it, even when the "new" mode equals the old one, so a selection can
// never leak across mode changes. While the mode is SelectNone the set stays
// empty.
type SelectionState struct {
	mu sync.RWMutex

	mode              types.SelectionMode
	selectedIDs       map[string]struct{}
	selectedPromptIDs map[string]struct{}
	comparePair       *[2]string
}

// NewSelectionState creates a new selection state
func NewSelectionState() *SelectionState {
	return &SelectionState{
		mode:              types.SelectNone,
		selectedIDs:       make(map[string]struct{}),
		selectedPromptIDs: make(map[string]struct{}),
	}
}

// GetMode returns the current selection mode
func (s *SelectionState) GetMode() types.SelectionMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode sets the selection mode and unconditionally clears the selected
// image set, even for a no-op mode change to the same mode.
func (s *SelectionState) SetMode(mode types.SelectionMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	s.selectedIDs = make(map[string]struct{})
}

// ToggleSelection flips membership of id in the selected image set.
// No-op while the mode is SelectNone.
func (s *SelectionState) ToggleSelection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == types.SelectNone {
		return
	}
	if _, ok := s.selectedIDs[id]; ok {
		delete(s.selectedIDs, id)
	} else {
		s.selectedIDs[id] = struct{}{}
	}
}

// IsSelected reports whether id is in the selected image set
func (s *SelectionState) IsSelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.selectedIDs[id]
	return ok
}

// GetSelectedIDs returns a copy of the selected image ids
func (s *SelectionState) GetSelectedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]string, 0, len(s.selectedIDs))
	for id := range s.selectedIDs {
		result = append(result, id)
	}
	return result
}

// SelectionCount returns the number of selected images
func (s *SelectionState) SelectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selectedIDs)
}

// ClearSelection empties the selected image set without touching the mode
func (s *SelectionState) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedIDs = make(map[string]struct{})
}

// TogglePromptSelection flips membership of id in the selected prompt set.
// Prompt selection is independent of the image selection mode.
func (s *SelectionState) TogglePromptSelection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.selectedPromptIDs[id]; ok {
		delete(s.selectedPromptIDs, id)
	} else {
		s.selectedPromptIDs[id] = struct{}{}
	}
}

// IsPromptSelected reports whether id is in the selected prompt set
func (s *SelectionState) IsPromptSelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.selectedPromptIDs[id]
	return ok
}

// GetSelectedPromptIDs returns a copy of the selected prompt ids
func (s *SelectionState) GetSelectedPromptIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]string, 0, len(s.selectedPromptIDs))
	for id := range s.selectedPromptIDs {
		result = append(result, id)
	}
	return result
}

// SetComparePair pairs two image ids for the compare view
func (s *SelectionState) SetComparePair(a, b string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pair := [2]string{a, b}
	s.comparePair = &pair
}

// GetComparePair returns a copy of the compare pair, or nil when unset
func (s *SelectionState) GetComparePair() *[2]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.comparePair == nil {
		return nil
	}
	pair := *s.comparePair
	return &pair
}

// ClearComparePair clears the compare pair
func (s *SelectionState) ClearComparePair() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comparePair = nil
}
