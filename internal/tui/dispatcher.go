package tui

import (
	"sync"
	"time"

	"github.com/studiowebux/promptstudio/internal/keybinds"
	"github.com/studiowebux/promptstudio/internal/types"
)

// NoticeKind names the notifications the dispatcher emits
type NoticeKind string

const (
	NoticeDeleteWarning   NoticeKind = "delete_warning"   // First delete keystroke; confirmation window open
	NoticeDeleteConfirmed NoticeKind = "delete_confirmed" // Second keystroke on the same target in time
	NoticeDeleteCancelled NoticeKind = "delete_cancelled" // Window expired with no confirmation
)

// Notice is an out-of-band notification from the dispatcher to the UI
type Notice struct {
	Kind     NoticeKind
	TargetID string
}

// KeyEvent is a normalized key event as seen by the dispatcher
type KeyEvent struct {
	Key       string // Key string in bubbletea notation ("d", "delete", "shift+tab")
	TextInput bool   // True when a text-entry control has focus
	Ctrl      bool
	Alt       bool
	Meta      bool
}

// DefaultConfirmWindow is how long a delete confirmation stays open
const DefaultConfirmWindow = 2 * time.Second

// Tab cycles for the two panels
var (
	leftTabs  = []string{"prompts", "sessions", "context"}
	rightTabs = []string{"images", "drafts", "info"}
)

type pendingDelete struct {
	target   string
	deadline time.Time
	timer    *time.Timer
}

// Dispatcher translates key events into store actions. It owns the
// single-shot delete confirmation: deleting the focused image takes two
// keystrokes on the same target inside the confirmation window.
//
// At most one confirmation is pending at any time. Every transition out of
// the awaiting state stops the running timer, and a timer that fires after
// its confirmation has been retargeted or resolved is ignored (generation
// guard), so a stale timer can never cancel a newer confirmation.
type Dispatcher struct {
	store    *Store
	registry *keybinds.Registry

	confirmWindow time.Duration
	notify        func(Notice)
	deleteImage   func(id string)
	focusedImage  func() (string, bool)

	mu         sync.Mutex
	pending    *pendingDelete
	generation uint64
}

// DispatcherOptions wires the dispatcher's collaborators
type DispatcherOptions struct {
	Store    *Store
	Registry *keybinds.Registry

	// FocusedImage resolves the currently focused image id, if any
	FocusedImage func() (string, bool)

	// DeleteImage performs the actual deletion once confirmed
	DeleteImage func(id string)

	// Notify receives dispatcher notices; required
	Notify func(Notice)

	// ConfirmWindow overrides DefaultConfirmWindow (used by tests)
	ConfirmWindow time.Duration
}

// NewDispatcher creates a command dispatcher
func NewDispatcher(opts DispatcherOptions) *Dispatcher {
	window := opts.ConfirmWindow
	if window <= 0 {
		window = DefaultConfirmWindow
	}
	notify := opts.Notify
	if notify == nil {
		notify = func(Notice) {}
	}
	deleteImage := opts.DeleteImage
	if deleteImage == nil {
		deleteImage = func(string) {}
	}
	focused := opts.FocusedImage
	if focused == nil {
		focused = func() (string, bool) { return "", false }
	}

	return &Dispatcher{
		store:         opts.Store,
		registry:      opts.Registry,
		confirmWindow: window,
		notify:        notify,
		deleteImage:   deleteImage,
		focusedImage:  focused,
	}
}

// HandleKey resolves a key event in the given context. It returns the matched
// action and whether the event was consumed. Store-native actions are
// dispatched here; actions needing external collaborators (clipboard,
// network, library list navigation) are returned for the caller to execute.
//
// Events are ignored in their entirety while a text-entry control has focus,
// and modifier-held keys never match so platform shortcuts stay intact.
func (d *Dispatcher) HandleKey(context keybinds.Context, ev KeyEvent) (keybinds.Action, bool) {
	if ev.TextInput {
		return "", false
	}
	if ev.Ctrl || ev.Alt || ev.Meta {
		return "", false
	}

	action, ok := d.registry.Match(context, ev.Key)
	if !ok {
		return "", false
	}

	switch action {
	case keybinds.ActionToggleViewMode:
		d.store.ToggleViewMode()

	case keybinds.ActionCycleLeftTab:
		d.store.SetLeftTab(nextTab(leftTabs, d.store.Navigation().GetLeftTab()))

	case keybinds.ActionCycleRightTab:
		d.store.SetRightTab(nextTab(rightTabs, d.store.Navigation().GetRightTab()))

	case keybinds.ActionImagePrev:
		d.store.NavigateImage(-1)

	case keybinds.ActionImageNext:
		d.store.NavigateImage(1)

	case keybinds.ActionToggleSelectMode:
		d.toggleMode(types.SelectImage)

	case keybinds.ActionToggleBatchMode:
		d.toggleMode(types.SelectBatch)

	case keybinds.ActionToggleSelection:
		if id, ok := d.focusedImage(); ok {
			d.store.ToggleSelection(id)
		}

	case keybinds.ActionAddToContext:
		if id, ok := d.focusedImage(); ok {
			d.store.AddContextImage(id)
		}

	case keybinds.ActionRemoveContext:
		if id, ok := d.focusedImage(); ok {
			d.store.RemoveContextImage(id)
		}

	case keybinds.ActionDeleteImage:
		if id, ok := d.focusedImage(); ok {
			d.handleDelete(id)
		}
	}

	return action, true
}

func (d *Dispatcher) toggleMode(mode types.SelectionMode) {
	if d.store.Selection().GetMode() == mode {
		d.store.SetSelectionMode(types.SelectNone)
	} else {
		d.store.SetSelectionMode(mode)
	}
}

// handleDelete runs the two-phase confirm state machine for one keystroke
func (d *Dispatcher) handleDelete(target string) {
	d.mu.Lock()

	if d.pending != nil {
		d.pending.timer.Stop()

		if d.pending.target == target {
			// Confirmed in time
			d.pending = nil
			d.generation++
			d.mu.Unlock()
			d.notify(Notice{Kind: NoticeDeleteConfirmed, TargetID: target})
			d.deleteImage(target)
			return
		}
		// Different target: discard the old confirmation silently and
		// restart for the new one
	}

	d.generation++
	gen := d.generation
	d.pending = &pendingDelete{
		target:   target,
		deadline: time.Now().Add(d.confirmWindow),
	}
	d.pending.timer = time.AfterFunc(d.confirmWindow, func() { d.expire(gen) })
	d.mu.Unlock()

	d.notify(Notice{Kind: NoticeDeleteWarning, TargetID: target})
}

// expire fires when the confirmation window elapses with no second keystroke
func (d *Dispatcher) expire(gen uint64) {
	d.mu.Lock()
	if d.pending == nil || d.generation != gen {
		// Stale timer: the confirmation it belonged to was already
		// confirmed or retargeted
		d.mu.Unlock()
		return
	}
	target := d.pending.target
	d.pending = nil
	d.mu.Unlock()

	d.notify(Notice{Kind: NoticeDeleteCancelled, TargetID: target})
}

// PendingDelete returns the target and deadline of the open confirmation,
// if any
func (d *Dispatcher) PendingDelete() (string, time.Time, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending == nil {
		return "", time.Time{}, false
	}
	return d.pending.target, d.pending.deadline, true
}

func nextTab(tabs []string, current string) string {
	for i, tab := range tabs {
		if tab == current {
			return tabs[(i+1)%len(tabs)]
		}
	}
	return tabs[0]
}
