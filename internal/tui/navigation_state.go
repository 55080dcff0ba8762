package tui

import (
	"sync"

	"github.com/studiowebux/promptstudio/internal/types"
)

// NavigationState encapsulates which view, tabs, prompt and image are focused.
//
// Invariant: currentImageIndex is reset to 0 on every prompt change. An image
// index is only meaningful against the image sequence it was chosen for, and
// this state does not know sequence lengths; resetting on change is what keeps
// the index valid by construction.
type NavigationState struct {
	mu sync.RWMutex

	viewMode          types.ViewMode
	leftTab           string
	rightTab          string
	currentPromptID   *string
	currentImageIndex int
	promptFilter      string
}

// NewNavigationState creates a new navigation state
func NewNavigationState() *NavigationState {
	return &NavigationState{
		viewMode: types.ViewSingle,
		leftTab:  "prompts",
		rightTab: "images",
	}
}

// GetViewMode returns the current view mode
func (s *NavigationState) GetViewMode() types.ViewMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewMode
}

// SetViewMode sets the view mode
func (s *NavigationState) SetViewMode(mode types.ViewMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewMode = mode
}

// ToggleViewMode flips between single and grid layout
func (s *NavigationState) ToggleViewMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.viewMode == types.ViewSingle {
		s.viewMode = types.ViewGrid
	} else {
		s.viewMode = types.ViewSingle
	}
}

// GetLeftTab returns the active left panel tab
func (s *NavigationState) GetLeftTab() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leftTab
}

// SetLeftTab sets the active left panel tab
func (s *NavigationState) SetLeftTab(tab string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leftTab = tab
}

// GetRightTab returns the active right panel tab
func (s *NavigationState) GetRightTab() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rightTab
}

// SetRightTab sets the active right panel tab
func (s *NavigationState) SetRightTab(tab string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rightTab = tab
}

// GetCurrentPrompt returns the focused prompt id, or nil when none is focused
func (s *NavigationState) GetCurrentPrompt() *string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentPromptID == nil {
		return nil
	}
	id := *s.currentPromptID
	return &id
}

// SetCurrentPrompt sets the focused prompt and unconditionally resets the
// image index to 0, even when id matches the current prompt or is nil.
func (s *NavigationState) SetCurrentPrompt(id *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == nil {
		s.currentPromptID = nil
	} else {
		v := *id
		s.currentPromptID = &v
	}
	s.currentImageIndex = 0
}

// GetImageIndex returns the focused image index
func (s *NavigationState) GetImageIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentImageIndex
}

// SetImageIndex sets the focused image index. Negative values clamp to 0.
func (s *NavigationState) SetImageIndex(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 {
		index = 0
	}
	s.currentImageIndex = index
}

// NavigateImage moves the focused image index by delta, clamped at 0.
// There is no upper clamp; sequence lengths live with the library, and the
// rendering layer clamps for display.
func (s *NavigationState) NavigateImage(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentImageIndex += delta
	if s.currentImageIndex < 0 {
		s.currentImageIndex = 0
	}
}

// GetPromptFilter returns the prompt filter query
func (s *NavigationState) GetPromptFilter() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.promptFilter
}

// SetPromptFilter sets the prompt filter query
func (s *NavigationState) SetPromptFilter(filter string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.promptFilter = filter
}

// ClearPromptFilter clears the prompt filter query
func (s *NavigationState) ClearPromptFilter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.promptFilter = ""
}
