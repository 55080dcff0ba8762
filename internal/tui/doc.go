/*
Package tui implements the terminal user interface for Prompt Studio.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: Maintains all application state
  - Update: Processes messages and returns commands
  - View: Renders the current state to the terminal

# Key Components

  - model.go: Core state and message handling, defines the Model struct
  - keys.go: Keyboard input handling per mode
  - render.go: View rendering for the library, variations and compare views
  - actions.go: Side effects (backend requests, clipboard, file operations)

# State Management

Application state is decomposed into three focused modules, aggregated by
the Store (store.go):
  - NavigationState: Focused prompt, image index, view mode, tabs, filter
  - SelectionState: Selection mode, selected image/prompt sets, compare pair
  - WorkflowState: Context pool, variation drafts, in-flight generations

All state modules use sync.RWMutex and return copies from their getters.
Mutations go through Store action methods, which notify subscribers
synchronously, once per action, in registration order.

# Command Dispatch

The Dispatcher (dispatcher.go) translates key events into store actions
through the keybinds registry. Actions the store can apply directly are
dispatched there; actions needing external collaborators (clipboard,
backend, prompt list) are returned to the Model's key handlers.

The dispatcher also owns the two-step delete confirmation: deleting an
image takes two keystrokes on the same target within the confirmation
window, enforced with a single-shot timer and a generation guard.

# Modes

The interface is mode-based: the library browser, the prompt filter, the
variation draft editor (with an inline text-edit submode), the compare
view and the help viewer. Each mode has a handler in keys.go and a render
function in render.go.
*/
package tui
