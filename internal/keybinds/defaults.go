package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerViewerBindings(r)
	registerLibraryBindings(r)
	registerVariationBindings(r)
	registerCompareBindings(r)
	registerFilterBindings(r)
	registerTextInputBindings(r)
	registerModalBindings(r)
	registerConfirmBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
	r.Register(ContextGlobal, "?", ActionOpenHelp)
}

// registerViewerBindings sets up common navigation bindings for viewers
func registerViewerBindings(r *Registry) {
	r.RegisterMultiple(ContextViewer, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextViewer, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextViewer, "pgup", ActionPageUp)
	r.Register(ContextViewer, "pgdown", ActionPageDown)
	r.Register(ContextViewer, "g", ActionGoToTopPrepare)
	r.Register(ContextViewer, "gg", ActionGoToTop)
	r.Register(ContextViewer, "G", ActionGoToBottom)
	r.Register(ContextViewer, "home", ActionGoToTop)
	r.Register(ContextViewer, "end", ActionGoToBottom)
}

// registerLibraryBindings sets up keybindings for the library browser
func registerLibraryBindings(r *Registry) {
	r.Register(ContextLibrary, "q", ActionQuit)

	// Prompt list navigation
	r.RegisterMultiple(ContextLibrary, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextLibrary, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextLibrary, "g", ActionGoToTopPrepare)
	r.Register(ContextLibrary, "gg", ActionGoToTop)
	r.Register(ContextLibrary, "G", ActionGoToBottom)

	// Image sequence navigation
	r.RegisterMultiple(ContextLibrary, []string{"left", "h"}, ActionImagePrev)
	r.RegisterMultiple(ContextLibrary, []string{"right", "l"}, ActionImageNext)

	// Views and tabs
	r.Register(ContextLibrary, "f", ActionToggleViewMode)
	r.Register(ContextLibrary, "tab", ActionCycleLeftTab)
	r.Register(ContextLibrary, "shift+tab", ActionCycleRightTab)
	r.Register(ContextLibrary, "/", ActionOpenFilter)

	// Selection
	r.Register(ContextLibrary, "s", ActionToggleSelectMode)
	r.Register(ContextLibrary, "S", ActionToggleBatchMode)
	r.Register(ContextLibrary, "x", ActionToggleSelection)
	r.Register(ContextLibrary, "p", ActionSetComparePair)

	// Image operations
	r.Register(ContextLibrary, "c", ActionCopyPrompt)
	r.Register(ContextLibrary, "d", ActionDownloadImage)
	r.Register(ContextLibrary, "a", ActionAddToContext)
	r.Register(ContextLibrary, "A", ActionRemoveContext)
	r.RegisterMultiple(ContextLibrary, []string{"delete", "backspace"}, ActionDeleteImage)

	// Generation workflow
	r.Register(ContextLibrary, "v", ActionProposeVariations)
}

// registerVariationBindings sets up keybindings for the variation editor
func registerVariationBindings(r *Registry) {
	r.RegisterMultiple(ContextVariations, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextVariations, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextVariations, "e", ActionEditDraft)
	r.Register(ContextVariations, "y", ActionDuplicateDraft)
	r.Register(ContextVariations, "D", ActionRemoveDraft)
	r.Register(ContextVariations, "P", ActionTogglePreview)
	r.Register(ContextVariations, "enter", ActionCommitWorkflow)
	r.Register(ContextVariations, "esc", ActionClearWorkflow)
}

// registerCompareBindings sets up keybindings for the compare view
func registerCompareBindings(r *Registry) {
	r.RegisterMultiple(ContextCompare, []string{"esc", "q"}, ActionClearCompare)
	r.RegisterMultiple(ContextCompare, []string{"left", "h"}, ActionImagePrev)
	r.RegisterMultiple(ContextCompare, []string{"right", "l"}, ActionImageNext)
}

// registerFilterBindings sets up keybindings for the prompt filter input
func registerFilterBindings(r *Registry) {
	r.Register(ContextFilter, "enter", ActionTextSubmit)
	r.Register(ContextFilter, "esc", ActionTextCancel)
}

// registerTextInputBindings sets up common text input bindings
func registerTextInputBindings(r *Registry) {
	r.Register(ContextTextInput, "enter", ActionTextSubmit)
	r.Register(ContextTextInput, "esc", ActionTextCancel)
}

// registerModalBindings sets up generic modal bindings
func registerModalBindings(r *Registry) {
	r.RegisterMultiple(ContextModal, []string{"esc", "q"}, ActionCloseModal)
	r.RegisterMultiple(ContextModal, []string{"up", "k"}, ActionNavigateUp)
	r.RegisterMultiple(ContextModal, []string{"down", "j"}, ActionNavigateDown)
	r.Register(ContextModal, "g", ActionGoToTopPrepare)
	r.Register(ContextModal, "gg", ActionGoToTop)
	r.Register(ContextModal, "G", ActionGoToBottom)
}

// registerConfirmBindings sets up confirmation dialog bindings
func registerConfirmBindings(r *Registry) {
	r.RegisterMultiple(ContextConfirm, []string{"y", "Y", "enter"}, ActionConfirm)
	r.RegisterMultiple(ContextConfirm, []string{"n", "N", "esc"}, ActionCancel)
}
