package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/studiowebux/promptstudio/internal/config"
	"github.com/studiowebux/promptstudio/internal/generation"
	"github.com/studiowebux/promptstudio/internal/keybinds"
	"github.com/studiowebux/promptstudio/internal/library"
	"github.com/studiowebux/promptstudio/internal/session"
)

// New creates a new TUI model
func New(mgr *session.Manager, lib *library.Manager, registry *keybinds.Registry) (*Model, error) {
	m := &Model{
		sessionMgr:   mgr,
		libraryMgr:   lib,
		client:       generation.NewClient(mgr.GetActiveProfile()),
		store:        NewStore(),
		registry:     registry,
		mode:         ModeLibrary,
		noticeChan:   make(chan Notice, 16),
		progressChan: make(chan generation.ProgressEvent, 16),
		helpView:     viewport.New(80, 20),
	}

	m.dispatcher = NewDispatcher(DispatcherOptions{
		Store:        m.store,
		Registry:     registry,
		FocusedImage: m.focusedImage,
		DeleteImage:  m.deleteImageByID,
		Notify:       func(n Notice) { m.noticeChan <- n },
	})

	// Restore the persisted view mode
	m.store.SetViewMode(mgr.GetSession().ViewMode)
	m.store.Subscribe(func() {
		if mode := m.store.Navigation().GetViewMode(); mode != mgr.GetSession().ViewMode {
			mgr.GetSession().ViewMode = mode
			m.sessionDirty = true
		}
	})

	prompts, err := lib.ListPrompts()
	if err != nil {
		return nil, err
	}
	m.prompts = prompts
	m.applyPromptFilter()

	// Restore the last focused prompt
	if last := mgr.GetSession().LastPromptID; last != "" {
		for i, idx := range m.visible {
			if m.prompts[idx].ID == last {
				m.promptIndex = i
				break
			}
		}
	}
	if prompt := m.selectedPrompt(); prompt != nil {
		id := prompt.ID
		m.store.SetCurrentPrompt(&id)
		images, err := lib.ListImages(id)
		if err == nil {
			m.images = images
		}
	}

	return m, nil
}

// Run starts the TUI
func Run() error {
	if err := config.Initialize(); err != nil {
		return err
	}

	mgr := session.NewManager()
	if err := mgr.Load(); err != nil {
		return err
	}

	lib, err := library.NewManager(config.DatabasePath)
	if err != nil {
		return err
	}

	registry := keybinds.NewDefaultRegistry()
	if err := keybinds.LoadAndApply(registry, config.GetKeybindsFilePath()); err != nil {
		return err
	}

	m, err := New(mgr, lib, registry)
	if err != nil {
		lib.Close()
		return err
	}

	defer m.Cleanup()

	// Note: Mouse is disabled by default in bubbletea
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
