package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/awwal-10/visrec-go/internal/client"
	"github.com/awwal-10/visrec-go/internal/config"
	"github.com/awwal-10/visrec-go/internal/history"
	"github.com/awwal-10/visrec-go/internal/media"
	"github.com/awwal-10/visrec-go/internal/ui"
)

type recordingView struct {
	mu      sync.Mutex
	results []ui.ResultView
	errors  []string
	online  []bool
}

func (v *recordingView) RenderLoading(string) {}

func (v *recordingView) RenderResult(rv ui.ResultView) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.results = append(v.results, rv)
}

func (v *recordingView) RenderError(message, hint string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errors = append(v.errors, message)
}

func (v *recordingView) ClearPanel()        {}
func (v *recordingView) SetBusy(bool)       {}
func (v *recordingView) ShowToast(ui.Toast) {}
func (v *recordingView) FadeToast(int)      {}
func (v *recordingView) DismissToast(int)   {}

func (v *recordingView) SetConnectivity(online bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.online = append(v.online, online)
}

func (v *recordingView) lastError(t *testing.T) string {
	t.Helper()
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.errors) == 0 {
		t.Fatal("no error rendered")
	}
	return v.errors[len(v.errors)-1]
}

type harness struct {
	cfg   *config.Config
	view  *recordingView
	ctrl  *Controller
	store *history.Store
}

func newHarness(t *testing.T, baseURL string) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.API.BaseURL = baseURL

	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	view := &recordingView{}
	presenter := ui.NewPresenter(cfg, view)
	t.Cleanup(presenter.Close)

	ctrl := New(cfg, client.New(cfg, nil, nil), presenter, store, nil)
	return &harness{cfg: cfg, view: view, ctrl: ctrl, store: store}
}

const matchedJSON = `{"matched": true, "title": "The Dictator", "year": 2012, "confidence": 1.0, "match_type": "strong", "processing_time_ms": 593.8}`

func TestProcessMatched(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(matchedJSON))
	}))
	defer srv.Close()

	h := newHarness(t, srv.URL)
	res, err := h.ctrl.Process(context.Background(), media.FromBytes("clip.mp4", "video/mp4", []byte("data")))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if !res.Matched {
		t.Error("expected matched outcome")
	}

	h.view.mu.Lock()
	rendered := len(h.view.results)
	h.view.mu.Unlock()
	if rendered != 1 {
		t.Fatalf("expected one rendered result, got %d", rendered)
	}

	entries, err := h.store.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "The Dictator" {
		t.Errorf("submission not recorded: %+v", entries)
	}
}

func TestProcessUnmatchedShowsCatalogMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"matched": false, "match_type": "none", "confidence": 0.1, "processing_time_ms": 100}`))
	}))
	defer srv.Close()

	h := newHarness(t, srv.URL)
	if _, err := h.ctrl.Process(context.Background(), media.FromBytes("clip.mp4", "video/mp4", []byte("data"))); err != nil {
		t.Fatalf("Process: %v", err)
	}

	if got := h.view.lastError(t); got != h.cfg.Message(config.MsgErrNoMatch) {
		t.Errorf("expected catalog no-match message, got %q", got)
	}
}

func TestFailureMessageTranslation(t *testing.T) {
	t.Run("validation shown verbatim", func(t *testing.T) {
		var hits atomic.Int64
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
		}))
		defer srv.Close()

		h := newHarness(t, srv.URL)
		h.cfg.Limits.MaxUploadBytes = 8

		_, err := h.ctrl.Process(context.Background(), media.FromBytes("big.mp4", "video/mp4", make([]byte, 64)))
		if err == nil {
			t.Fatal("expected validation failure")
		}
		if got := h.view.lastError(t); got != h.cfg.Message(config.MsgErrTooLarge) {
			t.Errorf("validation reason not shown verbatim: %q", got)
		}
		if hits.Load() != 0 {
			t.Error("validation failure must not reach the network")
		}
	})

	t.Run("timeout uses catalog message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		h := newHarness(t, srv.URL)
		h.cfg.API.TimeoutMS = 50

		if _, err := h.ctrl.Process(context.Background(), media.FromBytes("clip.mp4", "video/mp4", []byte("x"))); err == nil {
			t.Fatal("expected timeout failure")
		}
		if got := h.view.lastError(t); got != h.cfg.Message(config.MsgErrTimeout) {
			t.Errorf("expected catalog timeout message, got %q", got)
		}
	})

	t.Run("network failure uses catalog message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		h := newHarness(t, srv.URL)
		h.ctrl.SetOnline(false)

		if _, err := h.ctrl.Process(context.Background(), media.FromBytes("clip.mp4", "video/mp4", []byte("x"))); err == nil {
			t.Fatal("expected network failure")
		}
		if got := h.view.lastError(t); got != h.cfg.Message(config.MsgErrNetwork) {
			t.Errorf("expected catalog network message, got %q", got)
		}
	})

	t.Run("server error uses generic message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "pipeline exploded"}`))
		}))
		defer srv.Close()

		h := newHarness(t, srv.URL)
		if _, err := h.ctrl.Process(context.Background(), media.FromBytes("clip.mp4", "video/mp4", []byte("x"))); err == nil {
			t.Fatal("expected API failure")
		}
		if got := h.view.lastError(t); got != h.cfg.Message(config.MsgErrGeneric) {
			t.Errorf("expected generic retry message, got %q", got)
		}
	})
}

func TestSupersessionRendersOnlyNewest(t *testing.T) {
	var first atomic.Bool
	firstStarted := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if first.CompareAndSwap(false, true) {
			close(firstStarted)
			<-r.Context().Done()
			return
		}
		w.Write([]byte(matchedJSON))
	}))
	defer srv.Close()

	h := newHarness(t, srv.URL)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.ctrl.Process(context.Background(), media.FromBytes("first.mp4", "video/mp4", []byte("x")))
	}()
	<-firstStarted

	if _, err := h.ctrl.Process(context.Background(), media.FromBytes("second.mp4", "video/mp4", []byte("x"))); err != nil {
		t.Fatalf("second Process: %v", err)
	}
	wg.Wait()

	h.view.mu.Lock()
	results := len(h.view.results)
	errors := len(h.view.errors)
	h.view.mu.Unlock()

	if results != 1 {
		t.Errorf("expected exactly one rendered result, got %d", results)
	}
	if errors != 0 {
		t.Errorf("superseded submission must not render, got %d errors", errors)
	}
}

func TestSetOnline(t *testing.T) {
	h := newHarness(t, "http://localhost:1")

	h.ctrl.SetOnline(false)
	h.ctrl.SetOnline(true)

	h.view.mu.Lock()
	defer h.view.mu.Unlock()
	if len(h.view.online) != 2 || h.view.online[0] || !h.view.online[1] {
		t.Errorf("connectivity not forwarded to the view: %v", h.view.online)
	}
}

func TestProcessFileMissing(t *testing.T) {
	h := newHarness(t, "http://localhost:1")

	_, err := h.ctrl.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "gone.mp4"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if got := h.view.lastError(t); got != h.cfg.Message(config.MsgErrNoFile) {
		t.Errorf("expected no-file message, got %q", got)
	}
}

func TestCancelIdleIsNoOp(t *testing.T) {
	h := newHarness(t, "http://localhost:1")
	h.ctrl.Cancel()
	h.ctrl.Cancel()
	// Nothing rendered, nothing recorded.
	time.Sleep(10 * time.Millisecond)
	h.view.mu.Lock()
	defer h.view.mu.Unlock()
	if len(h.view.errors) != 0 || len(h.view.results) != 0 {
		t.Error("cancel with no active request must not touch the view")
	}
}
