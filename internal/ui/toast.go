package ui

import (
	"sync"
	"time"
)

// Toaster manages the lifecycle of transient notifications: visible for
// the display window, fading for the fade window, then removed. Each
// toast runs on its own timers and is independent of the UI state.
type Toaster struct {
	view    View
	display time.Duration
	fade    time.Duration

	mu     sync.Mutex
	nextID int
	timers map[int][]*time.Timer
	closed bool
}

// NewToaster builds a Toaster rendering through view.
func NewToaster(view View, display, fade time.Duration) *Toaster {
	return &Toaster{
		view:    view,
		display: display,
		fade:    fade,
		timers:  make(map[int][]*time.Timer),
	}
}

// Show displays a toast and schedules its fade and removal. The returned
// id identifies the toast in the view.
func (t *Toaster) Show(message string, severity Severity) int {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return 0
	}
	t.nextID++
	id := t.nextID
	toast := Toast{ID: id, Message: message, Severity: severity, Created: time.Now()}

	fadeTimer := time.AfterFunc(t.display, func() {
		t.view.FadeToast(id)
	})
	removeTimer := time.AfterFunc(t.display+t.fade, func() {
		t.remove(id)
	})
	t.timers[id] = []*time.Timer{fadeTimer, removeTimer}
	t.mu.Unlock()

	t.view.ShowToast(toast)
	return id
}

func (t *Toaster) remove(id int) {
	t.mu.Lock()
	delete(t.timers, id)
	t.mu.Unlock()
	t.view.DismissToast(id)
}

// Close stops all pending timers. Already-visible toasts are dismissed.
func (t *Toaster) Close() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	ids := make([]int, 0, len(t.timers))
	for id, timers := range t.timers {
		for _, timer := range timers {
			timer.Stop()
		}
		ids = append(ids, id)
	}
	t.timers = make(map[int][]*time.Timer)
	t.mu.Unlock()

	for _, id := range ids {
		t.view.DismissToast(id)
	}
}
