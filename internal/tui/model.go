package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/studiowebux/promptstudio/internal/generation"
	"github.com/studiowebux/promptstudio/internal/keybinds"
	"github.com/studiowebux/promptstudio/internal/library"
	"github.com/studiowebux/promptstudio/internal/session"
	"github.com/studiowebux/promptstudio/internal/types"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeLibrary Mode = iota
	ModeFilter
	ModeVariations
	ModeDraftEdit
	ModeCompare
	ModeHelp
)

// Model represents the TUI state
type Model struct {
	// Core state
	sessionMgr *session.Manager
	libraryMgr *library.Manager
	client     *generation.Client
	store      *Store
	dispatcher *Dispatcher
	registry   *keybinds.Registry

	mode Mode

	// Prompt list
	prompts      []types.Prompt
	visible      []int // Indices into prompts after filtering
	promptIndex  int   // Selected position within visible
	promptOffset int   // Scroll offset for the prompt list

	// Images of the focused prompt
	images []types.GeneratedImage

	// Variation editor state
	draftIndex int
	editInput  string
	editCursor int

	// Filter input state
	filterInput  string
	filterCursor int

	// Dispatcher notices arrive from the key path and the confirmation timer
	noticeChan chan Notice

	// Progress events arrive from the backend's websocket during generation
	progressChan chan generation.ProgressEvent

	// UI state
	helpView     viewport.Model
	width        int
	height       int
	statusMsg    string
	errorMsg     string
	loading      bool
	gPressed     bool // Track if 'g' was pressed for 'gg' vim motion
	sessionDirty bool
}

type noticeMsg Notice

type errorMsg string

type promptsLoadedMsg struct {
	prompts []types.Prompt
}

type imagesLoadedMsg struct {
	promptID string
	images   []types.GeneratedImage
}

type variationsProposedMsg struct {
	basePromptID string
	drafts       []types.VariationDraft
}

type imagesGeneratedMsg struct {
	requestID string
	promptID  string
	images    []types.GeneratedImage
}

type generationFailedMsg struct {
	requestID string
	err       error
}

type progressMsg generation.ProgressEvent

// Init initializes the TUI
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.waitForNotice(), m.waitForProgress())
}

// waitForNotice blocks on the dispatcher notice channel. The confirmation
// timer delivers from its own goroutine, so notices are bridged into the
// update loop through this command.
func (m *Model) waitForNotice() tea.Cmd {
	return func() tea.Msg {
		return noticeMsg(<-m.noticeChan)
	}
}

// waitForProgress bridges websocket progress events into the update loop,
// the same way notices are bridged
func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		return progressMsg(<-m.progressChan)
	}
}

// Cleanup closes database connections and persists session state
func (m *Model) Cleanup() {
	if m.sessionDirty {
		_ = m.sessionMgr.SaveSession()
	}
	if m.libraryMgr != nil {
		_ = m.libraryMgr.Close()
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.MouseMsg:
		// Capture and discard so the terminal buffer doesn't scroll;
		// navigation stays keyboard-only

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.helpView.Width = msg.Width - 4
		m.helpView.Height = msg.Height - 6

	case noticeMsg:
		switch msg.Kind {
		case NoticeDeleteWarning:
			m.statusMsg = "Press delete again to remove the image"
		case NoticeDeleteConfirmed:
			m.statusMsg = "Image deleted"
		case NoticeDeleteCancelled:
			m.statusMsg = "Delete cancelled"
		}
		return m, m.waitForNotice()

	case promptsLoadedMsg:
		m.prompts = msg.prompts
		m.applyPromptFilter()
		m.clampPromptIndex()
		cmd = m.focusSelectedPrompt()

	case imagesLoadedMsg:
		// Stale loads for a previously focused prompt are dropped
		if current := m.store.Navigation().GetCurrentPrompt(); current != nil && *current == msg.promptID {
			m.images = msg.images
		}

	case variationsProposedMsg:
		m.store.SetGenerating(false)
		m.store.SetDrafts(msg.drafts)
		m.draftIndex = 0
		m.mode = ModeVariations
		m.statusMsg = "Review the drafts, then press enter to generate"

	case imagesGeneratedMsg:
		m.store.RemovePending(msg.requestID)
		m.statusMsg = "Generation complete"
		if current := m.store.Navigation().GetCurrentPrompt(); current != nil && *current == msg.promptID {
			return m, m.loadImages(msg.promptID)
		}

	case generationFailedMsg:
		m.store.RemovePending(msg.requestID)
		m.store.SetGenerating(false)
		m.errorMsg = msg.err.Error()
		m.statusMsg = "Generation failed"

	case progressMsg:
		if msg.Message != "" {
			m.statusMsg = msg.Message
		} else if msg.Percent > 0 {
			m.statusMsg = fmt.Sprintf("Generating... %d%%", msg.Percent)
		}
		return m, m.waitForProgress()

	case errorMsg:
		m.loading = false
		m.errorMsg = string(msg)
		m.statusMsg = string(msg)
	}

	return m, cmd
}

// selectedPrompt returns the prompt under the cursor, if any
func (m *Model) selectedPrompt() *types.Prompt {
	if len(m.visible) == 0 || m.promptIndex < 0 || m.promptIndex >= len(m.visible) {
		return nil
	}
	return &m.prompts[m.visible[m.promptIndex]]
}

// focusedImage resolves the image the cursor is on. The stored index is
// clamped against the loaded sequence here, where the length is known.
func (m *Model) focusedImage() (string, bool) {
	if len(m.images) == 0 {
		return "", false
	}
	idx := m.store.Navigation().GetImageIndex()
	if idx >= len(m.images) {
		idx = len(m.images) - 1
	}
	return m.images[idx].ID, true
}

func (m *Model) clampPromptIndex() {
	if m.promptIndex >= len(m.visible) {
		m.promptIndex = len(m.visible) - 1
	}
	if m.promptIndex < 0 {
		m.promptIndex = 0
	}
	if m.promptOffset > m.promptIndex {
		m.promptOffset = m.promptIndex
	}
}

// focusSelectedPrompt pushes the cursor's prompt into the store and loads
// its image sequence
func (m *Model) focusSelectedPrompt() tea.Cmd {
	prompt := m.selectedPrompt()
	if prompt == nil {
		m.images = nil
		m.store.SetCurrentPrompt(nil)
		return nil
	}
	id := prompt.ID
	m.store.SetCurrentPrompt(&id)
	m.sessionMgr.GetSession().LastPromptID = id
	m.sessionDirty = true
	return m.loadImages(id)
}
