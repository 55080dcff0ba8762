package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

// Context represents the context in which keybindings are active
type Context string

const (
	// Contexts define where keybindings are active
	ContextGlobal     Context = "global"     // Available everywhere
	ContextLibrary    Context = "library"    // Library browser (normal mode)
	ContextVariations Context = "variations" // Variation draft editor
	ContextCompare    Context = "compare"    // Side-by-side compare view
	ContextFilter     Context = "filter"     // Prompt filter input
	ContextModal      Context = "modal"      // Generic modal (applies to all modals)
	ContextTextInput  Context = "text_input" // Text input (applies to all text inputs)
	ContextConfirm    Context = "confirm"    // Confirmation dialogs
	ContextViewer     Context = "viewer"     // Generic viewer (scrollable content)
)

const (
	// Global actions
	ActionQuit      Action = "quit"       // Quit application
	ActionQuitForce Action = "quit_force" // Force quit (ctrl+c)
	ActionOpenHelp  Action = "open_help"  // Open help viewer

	// Navigation actions
	ActionNavigateUp     Action = "navigate_up"       // Move up one item
	ActionNavigateDown   Action = "navigate_down"     // Move down one item
	ActionImagePrev      Action = "image_prev"        // Previous image in sequence
	ActionImageNext      Action = "image_next"        // Next image in sequence
	ActionGoToTop        Action = "go_to_top"         // Go to top
	ActionGoToBottom     Action = "go_to_bottom"      // Go to bottom
	ActionGoToTopPrepare Action = "go_to_top_prepare" // First 'g' in 'gg' sequence
	ActionPageUp         Action = "page_up"           // Move up one page
	ActionPageDown       Action = "page_down"         // Move down one page

	// View and tab switching
	ActionToggleViewMode Action = "toggle_view_mode" // Single <-> grid image layout
	ActionCycleLeftTab   Action = "cycle_left_tab"   // Next tab in the left panel
	ActionCycleRightTab  Action = "cycle_right_tab"  // Next tab in the right panel
	ActionOpenFilter     Action = "open_filter"      // Open prompt filter input

	// Selection actions
	ActionToggleSelectMode Action = "toggle_select_mode" // Enter/leave select mode
	ActionToggleBatchMode  Action = "toggle_batch_mode"  // Enter/leave batch mode
	ActionToggleSelection  Action = "toggle_selection"   // Flip selection of focused image
	ActionSetComparePair   Action = "set_compare_pair"   // Pair two selected images for compare
	ActionClearCompare     Action = "clear_compare"      // Leave compare view

	// Image operations
	ActionCopyPrompt     Action = "copy_prompt"      // Copy focused prompt text to clipboard
	ActionDownloadImage  Action = "download_image"   // Save focused image to output dir
	ActionAddToContext   Action = "add_to_context"   // Add focused image to context pool
	ActionRemoveContext  Action = "remove_context"   // Remove focused image from context pool
	ActionDeleteImage    Action = "delete_image"     // Delete focused image (two-step confirm)

	// Generation workflow actions
	ActionProposeVariations Action = "propose_variations" // Phase one: request drafts
	ActionCommitWorkflow    Action = "commit_workflow"    // Phase two: render committed drafts
	ActionClearWorkflow     Action = "clear_workflow"     // Discard the draft workflow
	ActionTogglePreview     Action = "toggle_preview"     // Show/hide the draft preview pane
	ActionEditDraft         Action = "edit_draft"         // Edit the focused draft's text
	ActionDuplicateDraft    Action = "duplicate_draft"    // Duplicate the focused draft
	ActionRemoveDraft       Action = "remove_draft"       // Remove the focused draft

	// Text input actions
	ActionTextSubmit Action = "text_submit" // Submit text input
	ActionTextCancel Action = "text_cancel" // Cancel text input

	// Modal actions
	ActionCloseModal Action = "close_modal" // Close current modal
	ActionConfirm    Action = "confirm"     // Confirm action (y/Y)
	ActionCancel     Action = "cancel"      // Cancel action (n/N)
)
