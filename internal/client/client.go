// Package client talks to the Visual Recognition API. It validates
// uploads before spending network resources, bounds every call with the
// configured timeout, supports cancellation and supersession of in-flight
// requests, and classifies failures into the package's error types.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/awwal-10/visrec-go/internal/config"
	"github.com/awwal-10/visrec-go/internal/media"
	"github.com/awwal-10/visrec-go/internal/visrec"
)

// errorBodyLimit caps how much of a failure response is read while
// looking for the server's error field.
const errorBodyLimit = 1 << 20

// ProgressFunc receives upload progress. The transport does not expose
// incremental byte counts, so it is invoked exactly twice per submission:
// once with (0, total) at call start and once with (total, total) at
// settlement. A two-point approximation, not streaming progress.
type ProgressFunc func(sent, total int64)

// Client is the request orchestrator. At most one identify call is
// active at a time: starting a new one cancels the previous handle.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
	log        *slog.Logger

	online atomic.Bool

	mu     sync.Mutex
	active *handle
	gen    uint64
}

// handle pairs the cancel func of one in-flight call with its generation.
type handle struct {
	cancel context.CancelFunc
	gen    uint64
}

// New builds a Client. A nil httpClient gets a default one; tests inject
// their own. The connectivity flag starts online.
func New(cfg *config.Config, httpClient *http.Client, log *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if log == nil {
		log = slog.Default()
	}
	c := &Client{cfg: cfg, httpClient: httpClient, log: log}
	c.online.Store(true)
	return c
}

// SetOnline records the connectivity state reported by the environment.
// It is consulted only when classifying transport failures.
func (c *Client) SetOnline(online bool) {
	c.online.Store(online)
}

// Online reports the last known connectivity state.
func (c *Client) Online() bool {
	return c.online.Load()
}

// Validate applies the pre-flight checks shared by the client and the
// controller: a file must be present, within the size limit and of an
// allowed content type. It issues no I/O.
func Validate(cfg *config.Config, cand media.Candidate) error {
	if cand.IsZero() {
		return &ValidationError{Reason: cfg.Message(config.MsgErrNoFile)}
	}
	if cand.Size > cfg.Limits.MaxUploadBytes {
		return &ValidationError{Reason: cfg.Message(config.MsgErrTooLarge)}
	}
	if !cfg.AllowsType(cand.ContentType) {
		return &ValidationError{Reason: cfg.Message(config.MsgErrBadType)}
	}
	return nil
}

// Identify uploads the candidate as a multipart body and returns the
// server's recognition result. Validation failures return before any
// request is issued. Starting a new call cancels a still-pending one.
func (c *Client) Identify(ctx context.Context, cand media.Candidate, onProgress ProgressFunc) (*visrec.RecognitionResult, error) {
	if err := Validate(c.cfg, cand); err != nil {
		return nil, err
	}

	ctx, h := c.acquire(ctx)
	defer c.release(h)

	if onProgress != nil {
		onProgress(0, cand.Size)
		defer onProgress(cand.Size, cand.Size)
	}

	body, contentType := multipartBody(cand)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint(c.cfg.API.IdentifyPath), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	c.log.Debug("identify request", "file", cand.Name, "size", cand.Size, "type", cand.ContentType)
	return c.recognize(ctx, req)
}

// IdentifyURL asks the server to fetch and identify a remote clip.
func (c *Client) IdentifyURL(ctx context.Context, rawURL string) (*visrec.RecognitionResult, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, &ValidationError{Reason: "URL is required"}
	}

	ctx, h := c.acquire(ctx)
	defer c.release(h)

	payload, err := json.Marshal(map[string]string{"url": rawURL})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint(c.cfg.API.IdentifyURLRef), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("identify-url request", "url", rawURL)
	return c.recognize(ctx, req)
}

// Health fetches server health and database statistics.
func (c *Client) Health(ctx context.Context) (*visrec.HealthStatus, error) {
	var status visrec.HealthStatus
	if err := c.getJSON(ctx, c.cfg.API.HealthPath, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Media fetches the list of fingerprinted items.
func (c *Client) Media(ctx context.Context) (*visrec.MediaList, error) {
	var list visrec.MediaList
	if err := c.getJSON(ctx, c.cfg.API.MediaPath, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Cancel aborts the active request handle, if any. Safe to call at any
// time and any number of times.
func (c *Client) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		c.active.cancel()
		c.active = nil
	}
}

// acquire arms the timeout and installs a new handle, cancelling any
// prior one still alive (supersession).
func (c *Client) acquire(ctx context.Context) (context.Context, *handle) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout())

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		c.log.Debug("superseding in-flight request", "generation", c.active.gen)
		c.active.cancel()
	}
	c.gen++
	h := &handle{cancel: cancel, gen: c.gen}
	c.active = h
	return ctx, h
}

// release disarms the timeout and clears the handle unless it has already
// been replaced by a newer call.
func (c *Client) release(h *handle) {
	h.cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active == h {
		c.active = nil
	}
}

func (c *Client) recognize(ctx context.Context, req *http.Request) (*visrec.RecognitionResult, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classifyTransport(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.classifyStatus(resp)
	}

	var result visrec.RecognitionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint(path), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.classifyTransport(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.classifyStatus(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// classifyTransport maps a failed round trip onto the error taxonomy.
// Deadline expiry wins over cancellation, cancellation over connectivity.
func (c *Client) classifyTransport(ctx context.Context, err error) error {
	switch {
	case ctx.Err() == context.DeadlineExceeded:
		return &TimeoutError{Timeout: c.cfg.RequestTimeout()}
	case ctx.Err() == context.Canceled:
		return ErrCanceled
	default:
		return &NetworkError{Offline: !c.online.Load(), Err: err}
	}
}

// classifyStatus turns a non-success response into an APIError. The
// message comes from the JSON error field when the body parses; a
// malformed body is swallowed and the status text used instead.
func (c *Client) classifyStatus(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	body, err := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
	if err != nil {
		return apiErr
	}
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		apiErr.Message = envelope.Error
	}
	return apiErr
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, `\"`)

// multipartBody streams the candidate as a single "file" part. The pipe
// keeps the upload from buffering the whole payload in memory.
func multipartBody(cand media.Candidate) (io.Reader, string) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		src, err := cand.Open()
		if err != nil {
			pw.CloseWithError(fmt.Errorf("opening file: %w", err))
			return
		}
		defer src.Close()

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(cand.Name)))
		header.Set("Content-Type", cand.ContentType)

		part, err := mw.CreatePart(header)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, src); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	return pr, mw.FormDataContentType()
}
