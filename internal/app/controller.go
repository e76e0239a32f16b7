// Package app wires submissions to the API client and feeds outcomes to
// the presenter.
package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/awwal-10/visrec-go/internal/client"
	"github.com/awwal-10/visrec-go/internal/config"
	"github.com/awwal-10/visrec-go/internal/history"
	"github.com/awwal-10/visrec-go/internal/media"
	"github.com/awwal-10/visrec-go/internal/ui"
	"github.com/awwal-10/visrec-go/internal/visrec"
)

// Controller is the app controller: every file-producing input funnels
// into Process, which drives the presenter through one submission.
type Controller struct {
	cfg       *config.Config
	client    *client.Client
	presenter *ui.Presenter
	store     *history.Store
	log       *slog.Logger
}

// New builds a Controller. store may be nil when the history feature is
// disabled.
func New(cfg *config.Config, c *client.Client, p *ui.Presenter, store *history.Store, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{cfg: cfg, client: c, presenter: p, store: store, log: log}
}

// ProcessFile reads a file from disk and submits it.
func (c *Controller) ProcessFile(ctx context.Context, path string) (*visrec.RecognitionResult, error) {
	cand, err := media.FromFile(path)
	if err != nil {
		gen := c.presenter.Begin(c.cfg.Message(config.MsgPromptAnalyzing))
		c.presenter.ShowError(gen, c.cfg.Message(config.MsgErrNoFile))
		return nil, err
	}
	return c.Process(ctx, cand)
}

// Process runs one submission end to end: re-validate, enter Loading,
// cancel any in-flight call, identify, and settle the presenter with the
// translated outcome. It returns the raw outcome for callers that render
// outside the presenter (the web gateway, the CLI's JSON mode).
func (c *Controller) Process(ctx context.Context, cand media.Candidate) (*visrec.RecognitionResult, error) {
	gen := c.presenter.Begin(c.cfg.Message(config.MsgPromptAnalyzing))

	// Cheap re-validation ahead of the client's own check, so a UI
	// bypass still cannot reach the network.
	if err := client.Validate(c.cfg, cand); err != nil {
		c.settle(gen, cand.Name, nil, err)
		return nil, err
	}

	c.client.Cancel()

	res, err := c.client.Identify(ctx, cand, nil)
	c.settle(gen, cand.Name, res, err)
	return res, err
}

// ProcessURL submits a remote clip through the same funnel.
func (c *Controller) ProcessURL(ctx context.Context, url string) (*visrec.RecognitionResult, error) {
	gen := c.presenter.Begin(c.cfg.Message(config.MsgPromptAnalyzing))

	c.client.Cancel()

	res, err := c.client.IdentifyURL(ctx, url)
	c.settle(gen, url, res, err)
	return res, err
}

// settle feeds one outcome to the presenter and the history log. A
// canceled submission was superseded and is dropped without a transition.
func (c *Controller) settle(gen uint64, name string, res *visrec.RecognitionResult, err error) {
	if errors.Is(err, client.ErrCanceled) {
		c.log.Debug("submission superseded", "file", name)
		return
	}

	if err != nil {
		msg := c.UserMessage(err)
		c.log.Info("submission failed", "file", name, "error", err)
		c.presenter.ShowError(gen, msg)
		c.record(name, nil, msg)
		return
	}

	c.log.Info("submission settled", "file", name, "matched", res.Matched)
	c.presenter.ShowResult(gen, res)
	failure := ""
	if !res.Matched {
		failure = c.cfg.Message(config.MsgErrNoMatch)
	}
	c.record(name, res, failure)
}

// UserMessage translates a client failure into the user-facing message:
// validation reasons verbatim, timeouts and network failures through the
// catalog, anything else the generic retry message.
func (c *Controller) UserMessage(err error) string {
	var vErr *client.ValidationError
	var tErr *client.TimeoutError
	var nErr *client.NetworkError

	switch {
	case errors.As(err, &vErr):
		return vErr.Reason
	case errors.As(err, &tErr):
		return c.cfg.Message(config.MsgErrTimeout)
	case errors.As(err, &nErr):
		return c.cfg.Message(config.MsgErrNetwork)
	default:
		return c.cfg.Message(config.MsgErrGeneric)
	}
}

func (c *Controller) record(name string, res *visrec.RecognitionResult, failure string) {
	if c.store == nil || !c.cfg.Features.History {
		return
	}
	if err := c.store.Insert(history.NewEntry(name, res, failure)); err != nil {
		c.log.Warn("failed to record submission", "error", err)
	}
}

// Cancel aborts the in-flight submission, if any.
func (c *Controller) Cancel() {
	c.client.Cancel()
}

// SetOnline propagates a connectivity change to the client's
// classification flag and the presenter's indicator. It does not touch
// the UI state machine.
func (c *Controller) SetOnline(online bool) {
	c.client.SetOnline(online)
	c.presenter.SetConnectivity(online)
}
