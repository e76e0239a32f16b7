// Package ui owns the presentation state machine, the view abstraction it
// renders through, and transient toast notifications.
package ui

import "time"

// Severity classifies a toast.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Toast is one transient notification. Toasts live outside the UI state
// machine and any number may be visible at once.
type Toast struct {
	ID       int
	Message  string
	Severity Severity
	Created  time.Time
}

// ResultView is a recognition result pre-formatted for display. All
// numeric formatting happens before the view sees it, so every view
// renders identical text.
type ResultView struct {
	Title            string
	Year             int
	HasYear          bool
	ConfidenceBadge  string // e.g. "100.0% Match"
	MatchBadge       string // e.g. "Strong"
	TimeBadge        string // e.g. "0.6s"
	ConfidenceDetail string // e.g. "100.00%"
	TimeDetail       string // e.g. "0.59 seconds"
	SceneTimestamp   string // e.g. "1:03", empty when absent
}

// View is the rendering surface the presenter drives. Implementations:
// the terminal view, the web gateway's template renderer, and test fakes.
type View interface {
	RenderLoading(prompt string)
	RenderResult(rv ResultView)
	RenderError(message, hint string)
	ClearPanel()
	SetBusy(busy bool)
	ShowToast(t Toast)
	FadeToast(id int)
	DismissToast(id int)
	SetConnectivity(online bool)
}
