package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/promptstudio/internal/keybinds"
)

// keyEventFrom normalizes a bubbletea key message for the dispatcher
func keyEventFrom(msg tea.KeyMsg, textInput bool) KeyEvent {
	key := msg.String()
	return KeyEvent{
		Key:       key,
		TextInput: textInput,
		Ctrl:      strings.HasPrefix(key, "ctrl+"),
		Alt:       msg.Alt,
	}
}

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// ctrl+c quits from any mode
	if msg.String() == "ctrl+c" {
		m.Cleanup()
		return tea.Quit
	}

	switch m.mode {
	case ModeLibrary:
		return m.handleLibraryKeys(msg)
	case ModeFilter:
		return m.handleFilterKeys(msg)
	case ModeVariations:
		return m.handleVariationKeys(msg)
	case ModeDraftEdit:
		return m.handleDraftEditKeys(msg)
	case ModeCompare:
		return m.handleCompareKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	}

	return nil
}

// handleLibraryKeys handles keyboard input in the library browser
func (m *Model) handleLibraryKeys(msg tea.KeyMsg) tea.Cmd {
	ev := keyEventFrom(msg, false)

	// 'gg' vim motion: second g jumps to the top
	if m.gPressed {
		m.gPressed = false
		if ev.Key == "g" {
			m.promptIndex = 0
			m.promptOffset = 0
			return m.focusSelectedPrompt()
		}
	}

	action, ok := m.dispatcher.HandleKey(keybinds.ContextLibrary, ev)
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuit:
		m.Cleanup()
		return tea.Quit

	case keybinds.ActionNavigateUp:
		return m.navigatePrompts(-1)

	case keybinds.ActionNavigateDown:
		return m.navigatePrompts(1)

	case keybinds.ActionGoToTopPrepare:
		m.gPressed = true

	case keybinds.ActionGoToBottom:
		if len(m.visible) > 0 {
			m.promptIndex = len(m.visible) - 1
			return m.focusSelectedPrompt()
		}

	case keybinds.ActionOpenFilter:
		m.mode = ModeFilter
		m.filterInput = m.store.Navigation().GetPromptFilter()
		m.filterCursor = len(m.filterInput)

	case keybinds.ActionOpenHelp:
		m.mode = ModeHelp
		m.helpView.SetContent(m.renderHelpContent())
		m.helpView.GotoTop()

	case keybinds.ActionCopyPrompt:
		m.copyPrompt()

	case keybinds.ActionDownloadImage:
		m.downloadImage()

	case keybinds.ActionSetComparePair:
		m.enterCompare()

	case keybinds.ActionProposeVariations:
		return m.proposeVariations()
	}

	return nil
}

// navigatePrompts moves the prompt selection up or down with wrap-around
func (m *Model) navigatePrompts(delta int) tea.Cmd {
	if len(m.visible) == 0 {
		return nil
	}

	m.promptIndex += delta
	if m.promptIndex < 0 {
		m.promptIndex = len(m.visible) - 1
	} else if m.promptIndex >= len(m.visible) {
		m.promptIndex = 0
	}

	pageSize := m.promptListHeight()
	if m.promptIndex < m.promptOffset {
		m.promptOffset = m.promptIndex
	} else if m.promptIndex >= m.promptOffset+pageSize {
		m.promptOffset = m.promptIndex - pageSize + 1
	}

	return m.focusSelectedPrompt()
}

// handleFilterKeys handles keyboard input while the prompt filter is focused.
// Every keystroke here is text; bound actions never fire.
func (m *Model) handleFilterKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.mode = ModeLibrary
		return nil

	case "esc":
		m.filterInput = ""
		m.filterCursor = 0
		m.store.SetPromptFilter("")
		m.applyPromptFilter()
		m.mode = ModeLibrary
		return m.focusSelectedPrompt()

	case "backspace":
		if m.filterCursor > 0 {
			m.filterInput = m.filterInput[:m.filterCursor-1] + m.filterInput[m.filterCursor:]
			m.filterCursor--
			return m.filterChanged()
		}

	case "left":
		if m.filterCursor > 0 {
			m.filterCursor--
		}

	case "right":
		if m.filterCursor < len(m.filterInput) {
			m.filterCursor++
		}

	default:
		if msg.Type == tea.KeyRunes {
			text := string(msg.Runes)
			m.filterInput = m.filterInput[:m.filterCursor] + text + m.filterInput[m.filterCursor:]
			m.filterCursor += len(text)
			return m.filterChanged()
		}
	}

	return nil
}

func (m *Model) filterChanged() tea.Cmd {
	m.store.SetPromptFilter(m.filterInput)
	m.applyPromptFilter()
	m.promptIndex = 0
	m.promptOffset = 0
	return m.focusSelectedPrompt()
}

// handleVariationKeys handles keyboard input in the variation draft editor
func (m *Model) handleVariationKeys(msg tea.KeyMsg) tea.Cmd {
	ev := keyEventFrom(msg, false)

	action, ok := m.dispatcher.HandleKey(keybinds.ContextVariations, ev)
	if !ok {
		return nil
	}

	drafts := m.store.Workflow().GetDrafts()

	switch action {
	case keybinds.ActionNavigateUp:
		if m.draftIndex > 0 {
			m.draftIndex--
		}

	case keybinds.ActionNavigateDown:
		if m.draftIndex < len(drafts)-1 {
			m.draftIndex++
		}

	case keybinds.ActionEditDraft:
		if m.draftIndex < len(drafts) {
			m.editInput = drafts[m.draftIndex].Text
			m.editCursor = len(m.editInput)
			m.mode = ModeDraftEdit
		}

	case keybinds.ActionDuplicateDraft:
		if m.draftIndex < len(drafts) {
			m.store.DuplicateVariation(drafts[m.draftIndex].ID)
		}

	case keybinds.ActionRemoveDraft:
		if m.draftIndex < len(drafts) {
			m.store.RemoveVariation(drafts[m.draftIndex].ID)
			if m.draftIndex > 0 && m.draftIndex >= len(drafts)-1 {
				m.draftIndex--
			}
		}

	case keybinds.ActionTogglePreview:
		m.store.SetShowPreview(!m.store.Workflow().GetShowPreview())

	case keybinds.ActionCommitWorkflow:
		return m.commitWorkflow()

	case keybinds.ActionClearWorkflow:
		m.store.ClearVariations()
		m.draftIndex = 0
		m.mode = ModeLibrary
		m.statusMsg = "Workflow discarded"
	}

	return nil
}

// handleDraftEditKeys handles text entry for a draft's prompt text
func (m *Model) handleDraftEditKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		drafts := m.store.Workflow().GetDrafts()
		if m.draftIndex < len(drafts) {
			m.store.UpdateVariation(drafts[m.draftIndex].ID, m.editInput)
		}
		m.mode = ModeVariations

	case "esc":
		m.mode = ModeVariations

	case "backspace":
		if m.editCursor > 0 {
			m.editInput = m.editInput[:m.editCursor-1] + m.editInput[m.editCursor:]
			m.editCursor--
		}

	case "left":
		if m.editCursor > 0 {
			m.editCursor--
		}

	case "right":
		if m.editCursor < len(m.editInput) {
			m.editCursor++
		}

	default:
		if msg.Type == tea.KeyRunes {
			text := string(msg.Runes)
			m.editInput = m.editInput[:m.editCursor] + text + m.editInput[m.editCursor:]
			m.editCursor += len(text)
		}
	}

	return nil
}

// handleCompareKeys handles keyboard input in the side-by-side compare view
func (m *Model) handleCompareKeys(msg tea.KeyMsg) tea.Cmd {
	ev := keyEventFrom(msg, false)

	action, ok := m.dispatcher.HandleKey(keybinds.ContextCompare, ev)
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionClearCompare:
		m.store.ClearComparePair()
		m.mode = ModeLibrary
	}

	return nil
}

// handleHelpKeys handles keyboard input in the help viewer
func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = ModeLibrary
	case "up", "k":
		m.helpView.ScrollUp(1)
	case "down", "j":
		m.helpView.ScrollDown(1)
	case "pgup":
		m.helpView.PageUp()
	case "pgdown":
		m.helpView.PageDown()
	}

	return nil
}
