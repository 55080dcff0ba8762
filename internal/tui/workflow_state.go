package tui

import (
	"sync"

	"github.com/google/uuid"
	"github.com/studiowebux/promptstudio/internal/types"
)

// WorkflowState encapsulates the generation workflow: the context image pool,
// the two-phase variation workflow (draft -> preview -> commit) and the map
// of in-flight generation requests.
//
// Every operation is total. An unknown id degrades to a no-op rather than an
// error; existence validation belongs to the library, which hands out the ids
// in the first place.
type WorkflowState struct {
	mu sync.RWMutex

	// Context pool: insertion order significant, no duplicates. Order is
	// preserved for display and for aligning per-draft recommended ids.
	contextImageIDs []string

	// Variation workflow
	drafts       []types.VariationDraft
	isGenerating bool
	basePrompt   string
	title        string
	showPreview  bool
	imageParams  types.ImageParams

	// In-flight requests, keyed by client-chosen request id
	pending map[string]types.PendingGeneration
}

// NewWorkflowState creates a new workflow state
func NewWorkflowState() *WorkflowState {
	return &WorkflowState{
		contextImageIDs: []string{},
		drafts:          []types.VariationDraft{},
		pending:         make(map[string]types.PendingGeneration),
	}
}

// --- Context pool ---

// AddContextImage appends id to the context pool. Idempotent: re-adding an
// existing id neither duplicates nor reorders.
func (s *WorkflowState) AddContextImage(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.contextImageIDs {
		if existing == id {
			return
		}
	}
	s.contextImageIDs = append(s.contextImageIDs, id)
}

// RemoveContextImage removes id from the context pool. No-op if absent.
func (s *WorkflowState) RemoveContextImage(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.contextImageIDs {
		if existing == id {
			s.contextImageIDs = append(s.contextImageIDs[:i], s.contextImageIDs[i+1:]...)
			return
		}
	}
}

// ClearContextImages empties the context pool
func (s *WorkflowState) ClearContextImages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contextImageIDs = []string{}
}

// GetContextImageIDs returns a copy of the ordered context pool
func (s *WorkflowState) GetContextImageIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]string, len(s.contextImageIDs))
	copy(result, s.contextImageIDs)
	return result
}

// HasContextImage reports whether id is in the context pool
func (s *WorkflowState) HasContextImage(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, existing := range s.contextImageIDs {
		if existing == id {
			return true
		}
	}
	return false
}

// --- Variation workflow ---

// GetDrafts returns a deep copy of the draft list
func (s *WorkflowState) GetDrafts() []types.VariationDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]types.VariationDraft, len(s.drafts))
	for i, d := range s.drafts {
		result[i] = d.Clone()
	}
	return result
}

// SetDrafts replaces the draft list. Drafts missing an id get a fresh one.
func (s *WorkflowState) SetDrafts(drafts []types.VariationDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts = make([]types.VariationDraft, len(drafts))
	for i, d := range drafts {
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		s.drafts[i] = d.Clone()
	}
}

// DraftCount returns the number of drafts
func (s *WorkflowState) DraftCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.drafts)
}

// UpdateVariation replaces the text of the draft with matching id, leaving
// every other field untouched. No-op if id is absent.
func (s *WorkflowState) UpdateVariation(id, newText string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.drafts {
		if s.drafts[i].ID == id {
			s.drafts[i].Text = newText
			return
		}
	}
}

// DuplicateVariation inserts a copy of the draft with matching id immediately
// after the original, with a freshly generated id. Mood, type, recommended
// context ids and reasoning are copied verbatim. No-op if id is absent.
func (s *WorkflowState) DuplicateVariation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.drafts {
		if s.drafts[i].ID == id {
			dup := s.drafts[i].Clone()
			dup.ID = uuid.NewString()
			s.drafts = append(s.drafts[:i+1], append([]types.VariationDraft{dup}, s.drafts[i+1:]...)...)
			return
		}
	}
}

// RemoveVariation removes the draft with matching id. No-op if absent.
func (s *WorkflowState) RemoveVariation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.drafts {
		if s.drafts[i].ID == id {
			s.drafts = append(s.drafts[:i], s.drafts[i+1:]...)
			return
		}
	}
}

// ClearVariations resets the whole variation workflow atomically: drafts,
// base prompt, title, preview flag and image params all go back to their
// initial values under one lock hold. Idempotent.
func (s *WorkflowState) ClearVariations() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts = []types.VariationDraft{}
	s.basePrompt = ""
	s.title = ""
	s.showPreview = false
	s.imageParams = types.ImageParams{}
}

// GetGenerating reports whether a variation request is in flight
func (s *WorkflowState) GetGenerating() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isGenerating
}

// SetGenerating sets the in-flight flag for the variation request
func (s *WorkflowState) SetGenerating(generating bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isGenerating = generating
}

// GetBasePrompt returns the workflow's base prompt text
func (s *WorkflowState) GetBasePrompt() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.basePrompt
}

// SetBasePrompt sets the workflow's base prompt text
func (s *WorkflowState) SetBasePrompt(prompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.basePrompt = prompt
}

// GetTitle returns the workflow title
func (s *WorkflowState) GetTitle() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.title
}

// SetTitle sets the workflow title
func (s *WorkflowState) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
}

// GetShowPreview reports whether the draft preview pane is visible
func (s *WorkflowState) GetShowPreview() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.showPreview
}

// SetShowPreview sets the draft preview pane visibility
func (s *WorkflowState) SetShowPreview(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showPreview = show
}

// GetImageParams returns the workflow's image parameters
func (s *WorkflowState) GetImageParams() types.ImageParams {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.imageParams
}

// SetImageParams sets the workflow's image parameters
func (s *WorkflowState) SetImageParams(params types.ImageParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.imageParams = params
}

// --- Pending generations ---

// AddPending records an in-flight generation request
func (s *WorkflowState) AddPending(requestID string, pending types.PendingGeneration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[requestID] = pending
}

// RemovePending removes an in-flight request marker. No-op if absent, so the
// result and failure paths can both call it safely.
func (s *WorkflowState) RemovePending(requestID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, requestID)
}

// GetPending returns a copy of the pending request map
func (s *WorkflowState) GetPending() map[string]types.PendingGeneration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[string]types.PendingGeneration, len(s.pending))
	for id, p := range s.pending {
		result[id] = p
	}
	return result
}

// PendingCount returns the number of in-flight requests
func (s *WorkflowState) PendingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pending)
}
