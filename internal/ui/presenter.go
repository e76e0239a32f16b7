package ui

import (
	"sync"

	"github.com/awwal-10/visrec-go/internal/config"
	"github.com/awwal-10/visrec-go/internal/visrec"
)

// State is the single current UI state. Transitions through the
// Presenter are the only way it changes.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateResult
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateResult:
		return "result"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Presenter is the presentation state machine. Every submission gets a
// strictly increasing generation id from Begin; a settlement whose
// generation is not the latest issued is discarded, so only the outcome
// of the most recent submission is ever rendered.
type Presenter struct {
	cfg    *config.Config
	view   View
	toasts *Toaster

	mu    sync.Mutex
	state State
	gen   uint64
}

// NewPresenter builds a Presenter rendering through view.
func NewPresenter(cfg *config.Config, view View) *Presenter {
	return &Presenter{
		cfg:    cfg,
		view:   view,
		toasts: NewToaster(view, cfg.ToastDisplay(), cfg.ToastFade()),
	}
}

// Begin enters Loading for a new submission and returns its generation.
// Submission controls are disabled and any prior panel cleared.
func (p *Presenter) Begin(prompt string) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.state = StateLoading
	p.view.ClearPanel()
	p.view.SetBusy(true)
	p.view.RenderLoading(prompt)
	return p.gen
}

// ShowResult settles generation gen with a server result. An unmatched
// result takes the error path with the catalog's no-match message. Stale
// generations are ignored.
func (p *Presenter) ShowResult(gen uint64, res *visrec.RecognitionResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.current(gen) {
		return
	}
	if !res.Matched {
		p.fail(p.cfg.Message(config.MsgErrNoMatch))
		return
	}
	p.state = StateResult
	p.view.RenderResult(FormatResult(res))
	p.view.SetBusy(false)
	p.toasts.Show(p.cfg.Message(config.MsgToastMatch), SeveritySuccess)
}

// ShowError settles generation gen with a user-facing failure message.
// Stale generations are ignored.
func (p *Presenter) ShowError(gen uint64, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.current(gen) {
		return
	}
	p.fail(message)
}

// current reports whether gen is the latest issued and still pending.
// Caller holds p.mu.
func (p *Presenter) current(gen uint64) bool {
	return gen == p.gen && p.state == StateLoading
}

// fail enters ErrorShown. Caller holds p.mu.
func (p *Presenter) fail(message string) {
	p.state = StateError
	p.view.RenderError(message, p.cfg.Message(config.MsgHintRetry))
	p.view.SetBusy(false)
	p.toasts.Show(message, SeverityError)
}

// SetConnectivity updates the online/offline indicator. It bypasses the
// state machine and never blocks submissions.
func (p *Presenter) SetConnectivity(online bool) {
	p.view.SetConnectivity(online)
}

// Toast shows a free-standing notification.
func (p *Presenter) Toast(message string, severity Severity) {
	p.toasts.Show(message, severity)
}

// State returns the current UI state.
func (p *Presenter) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Close stops toast timers.
func (p *Presenter) Close() {
	p.toasts.Close()
}
