// Package web serves a local upload page (file picker, drag-drop, camera
// capture hint) that funnels submissions through the controller to the
// remote recognition service.
package web

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/awwal-10/visrec-go/internal/app"
	"github.com/awwal-10/visrec-go/internal/client"
	"github.com/awwal-10/visrec-go/internal/config"
	"github.com/awwal-10/visrec-go/internal/history"
	"github.com/awwal-10/visrec-go/internal/media"
	"github.com/awwal-10/visrec-go/internal/ui"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// App holds the gateway's collaborators.
type App struct {
	Cfg     *config.Config
	Ctrl    *app.Controller
	History *history.Store
}

func (a *App) UploadPageHandler(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Title    string
		Features config.Features
		Accept   string
		MaxSize  string
	}{
		Title:    "Visual Recognition",
		Features: a.Cfg.Features,
		Accept:   strings.Join(a.Cfg.Limits.AllowedTypes, ","),
		MaxSize:  formatFileSize(a.Cfg.Limits.MaxUploadBytes),
	}
	if err := templates.ExecuteTemplate(w, "base.html", data); err != nil {
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
	}
}

func (a *App) IdentifyHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, a.Cfg.Limits.MaxUploadBytes)

	if err := r.ParseMultipartForm(a.Cfg.Limits.MaxUploadBytes); err != nil {
		a.renderError(w, a.Cfg.Message(config.MsgErrTooLarge))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		a.renderError(w, a.Cfg.Message(config.MsgErrNoFile))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = media.TypeForName(header.Filename)
	}

	cand := media.Candidate{
		Name:        header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Open: func() (io.ReadCloser, error) {
			if _, err := file.Seek(0, io.SeekStart); err != nil {
				return nil, err
			}
			return io.NopCloser(file), nil
		},
	}

	res, err := a.Ctrl.Process(r.Context(), cand)
	switch {
	case errors.Is(err, client.ErrCanceled):
		a.renderError(w, "Superseded by a newer upload.")
	case err != nil:
		a.renderError(w, a.Ctrl.UserMessage(err))
	case !res.Matched:
		a.renderError(w, a.Cfg.Message(config.MsgErrNoMatch))
	default:
		a.renderResult(w, ui.FormatResult(res))
	}
}

func (a *App) HistoryPartialHandler(w http.ResponseWriter, r *http.Request) {
	if a.History == nil || !a.Cfg.Features.History {
		w.Write([]byte("<p>History is disabled</p>"))
		return
	}

	entries, err := a.History.Recent(20)
	if err != nil {
		w.Write([]byte("<p>Error loading history</p>"))
		return
	}
	if len(entries) == 0 {
		w.Write([]byte("<p>No submissions yet</p>"))
		return
	}

	if err := templates.ExecuteTemplate(w, "history.html", entries); err != nil {
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
	}
}

func (a *App) renderResult(w http.ResponseWriter, rv ui.ResultView) {
	if err := templates.ExecuteTemplate(w, "result.html", rv); err != nil {
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
	}
}

func (a *App) renderError(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, `<div class="alert alert-error">%s<br><small>%s</small></div>`,
		template.HTMLEscapeString(message),
		template.HTMLEscapeString(a.Cfg.Message(config.MsgHintRetry)))
}

func formatFileSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case size >= GB:
		return fmt.Sprintf("%.2f GB", float64(size)/float64(GB))
	case size >= MB:
		return fmt.Sprintf("%.2f MB", float64(size)/float64(MB))
	case size >= KB:
		return fmt.Sprintf("%.2f KB", float64(size)/float64(KB))
	default:
		return fmt.Sprintf("%d B", size)
	}
}
