package tui

import (
	"sync"
	"testing"
	"time"

	"github.com/studiowebux/promptstudio/internal/keybinds"
	"github.com/studiowebux/promptstudio/internal/types"
)

// noticeRecorder collects dispatcher notices for assertions. The timer
// callback delivers from another goroutine, so access is guarded.
type noticeRecorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *noticeRecorder) record(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *noticeRecorder) all() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]Notice, len(r.notices))
	copy(result, r.notices)
	return result
}

type dispatcherFixture struct {
	store      *Store
	dispatcher *Dispatcher
	recorder   *noticeRecorder

	mu      sync.Mutex
	deleted []string
}

func newDispatcherFixture(t *testing.T, focused string, window time.Duration) *dispatcherFixture {
	t.Helper()

	f := &dispatcherFixture{
		store:    NewStore(),
		recorder: &noticeRecorder{},
	}
	f.dispatcher = NewDispatcher(DispatcherOptions{
		Store:    f.store,
		Registry: keybinds.NewDefaultRegistry(),
		FocusedImage: func() (string, bool) {
			if focused == "" {
				return "", false
			}
			return focused, true
		},
		DeleteImage: func(id string) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.deleted = append(f.deleted, id)
		},
		Notify:        f.recorder.record,
		ConfirmWindow: window,
	})
	return f
}

func (f *dispatcherFixture) deletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]string, len(f.deleted))
	copy(result, f.deleted)
	return result
}

func TestDispatcher_StoreNativeActions(t *testing.T) {
	f := newDispatcherFixture(t, "img-1", 0)

	action, ok := f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "f"})
	if !ok || action != keybinds.ActionToggleViewMode {
		t.Fatalf("Expected toggle view mode consumed, got (%s, %v)", action, ok)
	}
	if f.store.Navigation().GetViewMode() != types.ViewGrid {
		t.Error("Expected view mode toggled to grid")
	}

	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "l"})
	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "l"})
	if f.store.Navigation().GetImageIndex() != 2 {
		t.Errorf("Expected image index 2, got %d", f.store.Navigation().GetImageIndex())
	}

	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "h"})
	if f.store.Navigation().GetImageIndex() != 1 {
		t.Errorf("Expected image index 1, got %d", f.store.Navigation().GetImageIndex())
	}
}

func TestDispatcher_TabCycling(t *testing.T) {
	f := newDispatcherFixture(t, "", 0)

	if f.store.Navigation().GetLeftTab() != "prompts" {
		t.Fatalf("Expected default left tab 'prompts', got %q", f.store.Navigation().GetLeftTab())
	}

	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "tab"})
	if f.store.Navigation().GetLeftTab() != "sessions" {
		t.Errorf("Expected left tab 'sessions', got %q", f.store.Navigation().GetLeftTab())
	}

	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "tab"})
	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "tab"})
	if f.store.Navigation().GetLeftTab() != "prompts" {
		t.Errorf("Expected left tab to wrap to 'prompts', got %q", f.store.Navigation().GetLeftTab())
	}

	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "shift+tab"})
	if f.store.Navigation().GetRightTab() != "drafts" {
		t.Errorf("Expected right tab 'drafts', got %q", f.store.Navigation().GetRightTab())
	}
}

func TestDispatcher_SelectionModeToggle(t *testing.T) {
	f := newDispatcherFixture(t, "img-1", 0)

	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "s"})
	if f.store.Selection().GetMode() != types.SelectImage {
		t.Fatalf("Expected image select mode, got %s", f.store.Selection().GetMode())
	}

	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "x"})
	if !f.store.Selection().IsSelected("img-1") {
		t.Error("Expected focused image selected")
	}

	// Pressing the mode key again leaves the mode and clears the selection
	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "s"})
	if f.store.Selection().GetMode() != types.SelectNone {
		t.Errorf("Expected mode none after second press, got %s", f.store.Selection().GetMode())
	}
	if f.store.Selection().SelectionCount() != 0 {
		t.Errorf("Expected selection cleared, got %d", f.store.Selection().SelectionCount())
	}

	// Switching straight from image mode to batch mode
	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "s"})
	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "S"})
	if f.store.Selection().GetMode() != types.SelectBatch {
		t.Errorf("Expected batch mode, got %s", f.store.Selection().GetMode())
	}
}

func TestDispatcher_ContextPoolKeys(t *testing.T) {
	f := newDispatcherFixture(t, "img-1", 0)

	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "a"})
	if !f.store.Workflow().HasContextImage("img-1") {
		t.Error("Expected focused image added to the context pool")
	}

	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "A"})
	if f.store.Workflow().HasContextImage("img-1") {
		t.Error("Expected focused image removed from the context pool")
	}
}

func TestDispatcher_EffectfulActionsReturnedNotDispatched(t *testing.T) {
	f := newDispatcherFixture(t, "img-1", 0)

	count := 0
	f.store.Subscribe(func() { count++ })

	action, ok := f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "c"})
	if !ok || action != keybinds.ActionCopyPrompt {
		t.Fatalf("Expected copy prompt returned, got (%s, %v)", action, ok)
	}
	if count != 0 {
		t.Errorf("Expected no store mutation for an effectful action, got %d notifications", count)
	}

	action, ok = f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "v"})
	if !ok || action != keybinds.ActionProposeVariations {
		t.Fatalf("Expected propose variations returned, got (%s, %v)", action, ok)
	}
}

func TestDispatcher_TextInputSuppressesEverything(t *testing.T) {
	f := newDispatcherFixture(t, "img-1", 0)

	count := 0
	f.store.Subscribe(func() { count++ })

	action, ok := f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "f", TextInput: true})
	if ok || action != "" {
		t.Errorf("Expected event ignored while text input is focused, got (%s, %v)", action, ok)
	}

	// Delete must not open a confirmation either
	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "delete", TextInput: true})
	if _, _, pending := f.dispatcher.PendingDelete(); pending {
		t.Error("Expected no confirmation opened while text input is focused")
	}

	if count != 0 {
		t.Errorf("Expected no store mutations, got %d notifications", count)
	}
}

func TestDispatcher_ModifiersSuppressMatching(t *testing.T) {
	f := newDispatcherFixture(t, "img-1", 0)

	cases := []KeyEvent{
		{Key: "f", Ctrl: true},
		{Key: "f", Alt: true},
		{Key: "f", Meta: true},
	}
	for _, ev := range cases {
		if action, ok := f.dispatcher.HandleKey(keybinds.ContextLibrary, ev); ok {
			t.Errorf("Expected modifier-held key ignored, got %s", action)
		}
	}
	if f.store.Navigation().GetViewMode() != types.ViewSingle {
		t.Error("Expected view mode untouched by modifier-held keys")
	}
}

func TestDispatcher_UnboundKeyNotConsumed(t *testing.T) {
	f := newDispatcherFixture(t, "img-1", 0)

	if action, ok := f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "z"}); ok {
		t.Errorf("Expected unbound key not consumed, got %s", action)
	}
}

func TestDispatcher_DeleteConfirmFlow(t *testing.T) {
	f := newDispatcherFixture(t, "img-1", time.Hour)

	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "delete"})

	target, deadline, pending := f.dispatcher.PendingDelete()
	if !pending || target != "img-1" {
		t.Fatalf("Expected pending confirmation for img-1, got (%s, %v)", target, pending)
	}
	if !deadline.After(time.Now()) {
		t.Error("Expected deadline in the future")
	}
	if len(f.deletedIDs()) != 0 {
		t.Fatal("Expected nothing deleted after the first keystroke")
	}

	// Second keystroke on the same target confirms
	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "delete"})

	if _, _, pending := f.dispatcher.PendingDelete(); pending {
		t.Error("Expected confirmation resolved after second keystroke")
	}
	deleted := f.deletedIDs()
	if len(deleted) != 1 || deleted[0] != "img-1" {
		t.Errorf("Expected img-1 deleted exactly once, got %v", deleted)
	}

	notices := f.recorder.all()
	if len(notices) != 2 {
		t.Fatalf("Expected 2 notices, got %d", len(notices))
	}
	if notices[0].Kind != NoticeDeleteWarning || notices[0].TargetID != "img-1" {
		t.Errorf("Expected warning for img-1 first, got %+v", notices[0])
	}
	if notices[1].Kind != NoticeDeleteConfirmed || notices[1].TargetID != "img-1" {
		t.Errorf("Expected confirmation for img-1 second, got %+v", notices[1])
	}
}

func TestDispatcher_DeleteRetargetsSilently(t *testing.T) {
	focused := "img-1"
	f := &dispatcherFixture{store: NewStore(), recorder: &noticeRecorder{}}
	f.dispatcher = NewDispatcher(DispatcherOptions{
		Store:        f.store,
		Registry:     keybinds.NewDefaultRegistry(),
		FocusedImage: func() (string, bool) { return focused, true },
		DeleteImage: func(id string) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.deleted = append(f.deleted, id)
		},
		Notify:        f.recorder.record,
		ConfirmWindow: time.Hour,
	})

	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "delete"})

	// Focus moves; the next delete keystroke targets img-2
	focused = "img-2"
	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "delete"})

	target, _, pending := f.dispatcher.PendingDelete()
	if !pending || target != "img-2" {
		t.Fatalf("Expected confirmation retargeted to img-2, got (%s, %v)", target, pending)
	}
	if len(f.deletedIDs()) != 0 {
		t.Fatal("Expected nothing deleted on retarget")
	}

	// No cancellation notice for the discarded img-1 confirmation
	notices := f.recorder.all()
	if len(notices) != 2 {
		t.Fatalf("Expected 2 notices, got %d", len(notices))
	}
	if notices[1].Kind != NoticeDeleteWarning || notices[1].TargetID != "img-2" {
		t.Errorf("Expected fresh warning for img-2, got %+v", notices[1])
	}

	// Confirming the new target deletes it
	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "delete"})
	deleted := f.deletedIDs()
	if len(deleted) != 1 || deleted[0] != "img-2" {
		t.Errorf("Expected only img-2 deleted, got %v", deleted)
	}
}

func TestDispatcher_DeleteExpires(t *testing.T) {
	f := newDispatcherFixture(t, "img-1", 20*time.Millisecond)

	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "delete"})

	deadline := time.Now().Add(time.Second)
	for {
		if _, _, pending := f.dispatcher.PendingDelete(); !pending {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Confirmation never expired")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if len(f.deletedIDs()) != 0 {
		t.Error("Expected nothing deleted on expiry")
	}

	notices := f.recorder.all()
	if len(notices) != 2 {
		t.Fatalf("Expected 2 notices, got %d", len(notices))
	}
	if notices[1].Kind != NoticeDeleteCancelled || notices[1].TargetID != "img-1" {
		t.Errorf("Expected cancellation for img-1, got %+v", notices[1])
	}

	// The next delete keystroke starts from idle: a fresh warning, no delete
	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "delete"})
	if target, _, pending := f.dispatcher.PendingDelete(); !pending || target != "img-1" {
		t.Errorf("Expected a fresh confirmation after expiry, got (%s, %v)", target, pending)
	}
	if len(f.deletedIDs()) != 0 {
		t.Error("Expected the post-expiry keystroke to warn, not delete")
	}
}

func TestDispatcher_StaleTimerCannotCancelNewConfirmation(t *testing.T) {
	f := newDispatcherFixture(t, "img-1", 30*time.Millisecond)

	// Open and immediately confirm; the first timer is stopped, but even if it
	// fired it must not touch later confirmations
	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "delete"})
	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "delete"})

	// Open a new confirmation and hold it past the first window
	f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "delete"})
	time.Sleep(15 * time.Millisecond)

	if target, _, pending := f.dispatcher.PendingDelete(); !pending || target != "img-1" {
		t.Fatalf("Expected the new confirmation still open, got (%s, %v)", target, pending)
	}

	for _, n := range f.recorder.all() {
		if n.Kind == NoticeDeleteCancelled {
			t.Fatalf("Unexpected cancellation notice: %+v", n)
		}
	}
}

func TestDispatcher_DeleteWithoutFocusedImage(t *testing.T) {
	f := newDispatcherFixture(t, "", time.Hour)

	action, ok := f.dispatcher.HandleKey(keybinds.ContextLibrary, KeyEvent{Key: "delete"})
	if !ok || action != keybinds.ActionDeleteImage {
		t.Fatalf("Expected delete action matched, got (%s, %v)", action, ok)
	}

	if _, _, pending := f.dispatcher.PendingDelete(); pending {
		t.Error("Expected no confirmation without a focused image")
	}
	if len(f.recorder.all()) != 0 {
		t.Errorf("Expected no notices, got %v", f.recorder.all())
	}
}

func TestDispatcher_DefaultConfirmWindow(t *testing.T) {
	d := NewDispatcher(DispatcherOptions{
		Store:    NewStore(),
		Registry: keybinds.NewDefaultRegistry(),
	})

	if d.confirmWindow != DefaultConfirmWindow {
		t.Errorf("Expected default window %v, got %v", DefaultConfirmWindow, d.confirmWindow)
	}
}
