package tui

import (
	"sync"

	"github.com/studiowebux/promptstudio/internal/types"
)

// Store aggregates the navigation, selection and workflow state modules
// behind one action surface. Each module enforces its own invariants; the
// store's job is composition and change notification.
//
// Subscribers are notified synchronously, in registration order, exactly once
// per action. Callbacks must re-read state through the getters and must not
// invoke store actions while being notified; one action, one notification
// pass.
//
// The store is constructed explicitly at session start and handed to whatever
// owns the UI session. There is no package-level instance.
type Store struct {
	nav *NavigationState
	sel *SelectionState
	wf  *WorkflowState

	mu          sync.Mutex
	subscribers []func()
}

// NewStore creates a store with fresh state modules
func NewStore() *Store {
	return &Store{
		nav: NewNavigationState(),
		sel: NewSelectionState(),
		wf:  NewWorkflowState(),
	}
}

// Navigation exposes read access to the navigation state
func (st *Store) Navigation() *NavigationState { return st.nav }

// Selection exposes read access to the selection state
func (st *Store) Selection() *SelectionState { return st.sel }

// Workflow exposes read access to the workflow state
func (st *Store) Workflow() *WorkflowState { return st.wf }

// Subscribe registers a callback invoked after every action
func (st *Store) Subscribe(fn func()) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.subscribers = append(st.subscribers, fn)
}

func (st *Store) notify() {
	st.mu.Lock()
	subs := make([]func(), len(st.subscribers))
	copy(subs, st.subscribers)
	st.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// --- Navigation actions ---

// SetCurrentPrompt focuses a prompt (nil clears focus) and resets the image
// index to 0
func (st *Store) SetCurrentPrompt(id *string) {
	st.nav.SetCurrentPrompt(id)
	st.notify()
}

// SetViewMode sets the image panel layout
func (st *Store) SetViewMode(mode types.ViewMode) {
	st.nav.SetViewMode(mode)
	st.notify()
}

// ToggleViewMode flips between single and grid layout
func (st *Store) ToggleViewMode() {
	st.nav.ToggleViewMode()
	st.notify()
}

// SetLeftTab sets the left panel tab
func (st *Store) SetLeftTab(tab string) {
	st.nav.SetLeftTab(tab)
	st.notify()
}

// SetRightTab sets the right panel tab
func (st *Store) SetRightTab(tab string) {
	st.nav.SetRightTab(tab)
	st.notify()
}

// NavigateImage moves the focused image index by delta
func (st *Store) NavigateImage(delta int) {
	st.nav.NavigateImage(delta)
	st.notify()
}

// SetPromptFilter sets the prompt filter query
func (st *Store) SetPromptFilter(filter string) {
	st.nav.SetPromptFilter(filter)
	st.notify()
}

// --- Selection actions ---

// SetSelectionMode sets the selection mode, clearing the selected set
func (st *Store) SetSelectionMode(mode types.SelectionMode) {
	st.sel.SetMode(mode)
	st.notify()
}

// ToggleSelection flips selection of an image id (no-op outside a mode)
func (st *Store) ToggleSelection(id string) {
	st.sel.ToggleSelection(id)
	st.notify()
}

// TogglePromptSelection flips selection of a prompt id
func (st *Store) TogglePromptSelection(id string) {
	st.sel.TogglePromptSelection(id)
	st.notify()
}

// SetComparePair pairs two image ids for the compare view
func (st *Store) SetComparePair(a, b string) {
	st.sel.SetComparePair(a, b)
	st.notify()
}

// ClearComparePair leaves the compare view
func (st *Store) ClearComparePair() {
	st.sel.ClearComparePair()
	st.notify()
}

// --- Workflow actions ---

// AddContextImage adds an image to the context pool (idempotent)
func (st *Store) AddContextImage(id string) {
	st.wf.AddContextImage(id)
	st.notify()
}

// RemoveContextImage removes an image from the context pool (idempotent)
func (st *Store) RemoveContextImage(id string) {
	st.wf.RemoveContextImage(id)
	st.notify()
}

// SetDrafts replaces the variation draft list
func (st *Store) SetDrafts(drafts []types.VariationDraft) {
	st.wf.SetDrafts(drafts)
	st.notify()
}

// UpdateVariation replaces the text of one draft
func (st *Store) UpdateVariation(id, newText string) {
	st.wf.UpdateVariation(id, newText)
	st.notify()
}

// DuplicateVariation duplicates one draft in place
func (st *Store) DuplicateVariation(id string) {
	st.wf.DuplicateVariation(id)
	st.notify()
}

// RemoveVariation removes one draft
func (st *Store) RemoveVariation(id string) {
	st.wf.RemoveVariation(id)
	st.notify()
}

// ClearVariations resets the whole variation workflow
func (st *Store) ClearVariations() {
	st.wf.ClearVariations()
	st.notify()
}

// SetGenerating flags the variation request as in flight
func (st *Store) SetGenerating(generating bool) {
	st.wf.SetGenerating(generating)
	st.notify()
}

// SetBasePrompt sets the workflow base prompt
func (st *Store) SetBasePrompt(prompt string) {
	st.wf.SetBasePrompt(prompt)
	st.notify()
}

// SetWorkflowTitle sets the workflow title
func (st *Store) SetWorkflowTitle(title string) {
	st.wf.SetTitle(title)
	st.notify()
}

// SetShowPreview sets the draft preview pane visibility
func (st *Store) SetShowPreview(show bool) {
	st.wf.SetShowPreview(show)
	st.notify()
}

// SetImageParams sets the workflow image parameters
func (st *Store) SetImageParams(params types.ImageParams) {
	st.wf.SetImageParams(params)
	st.notify()
}

// AddPending records an in-flight generation request
func (st *Store) AddPending(requestID string, pending types.PendingGeneration) {
	st.wf.AddPending(requestID, pending)
	st.notify()
}

// RemovePending clears an in-flight request marker (idempotent)
func (st *Store) RemovePending(requestID string) {
	st.wf.RemovePending(requestID)
	st.notify()
}
