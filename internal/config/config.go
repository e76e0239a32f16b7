// Package config loads the immutable settings shared by every component:
// API endpoints, request limits, the message catalog and feature flags.
// A Config is built once at startup and never mutated afterwards.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// API contains the remote service location and endpoint paths.
type API struct {
	BaseURL        string `toml:"base_url"`
	HealthPath     string `toml:"health_path"`
	IdentifyPath   string `toml:"identify_path"`
	IdentifyURLRef string `toml:"identify_url_path"`
	MediaPath      string `toml:"media_path"`
	TimeoutMS      int    `toml:"timeout_ms"`
}

// Limits contains client-side upload constraints enforced before any call.
type Limits struct {
	MaxUploadBytes int64    `toml:"max_upload_bytes"`
	AllowedTypes   []string `toml:"allowed_types"`
}

// Toasts contains the timing of transient notifications.
type Toasts struct {
	DisplayMS int `toml:"display_ms"`
	FadeMS    int `toml:"fade_ms"`
}

// Features toggles optional client surfaces.
type Features struct {
	Capture bool `toml:"capture"`
	Upload  bool `toml:"upload"`
	History bool `toml:"history"`
	Share   bool `toml:"share"`
}

// History contains the local submission log settings.
type History struct {
	Path string `toml:"path"`
}

// Serve contains the local web gateway settings.
type Serve struct {
	Bind string `toml:"bind"`
}

// Log contains logger settings.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type Config struct {
	API      API               `toml:"api"`
	Limits   Limits            `toml:"limits"`
	Toasts   Toasts            `toml:"toasts"`
	Features Features          `toml:"features"`
	History  History           `toml:"history"`
	Serve    Serve             `toml:"serve"`
	Log      Log               `toml:"log"`
	Messages map[string]string `toml:"messages"`
}

// Message catalog keys.
const (
	MsgPromptAnalyzing = "prompt_analyzing"
	MsgErrNoMatch      = "error_no_match"
	MsgErrTimeout      = "error_timeout"
	MsgErrNetwork      = "error_network"
	MsgErrGeneric      = "error_generic"
	MsgErrTooLarge     = "error_too_large"
	MsgErrBadType      = "error_bad_type"
	MsgErrNoFile       = "error_no_file"
	MsgHintRetry       = "hint_retry"
	MsgToastMatch      = "toast_match"
)

func defaultMessages() map[string]string {
	return map[string]string{
		MsgPromptAnalyzing: "Analyzing your clip...",
		MsgErrNoMatch:      "Could not identify this clip.",
		MsgErrTimeout:      "The request timed out. The video might be too large.",
		MsgErrNetwork:      "Cannot reach the recognition service. Check your connection.",
		MsgErrGeneric:      "Something went wrong. Please try again.",
		MsgErrTooLarge:     "File is too large.",
		MsgErrBadType:      "Unsupported file type.",
		MsgErrNoFile:       "No file provided.",
		MsgHintRetry:       "Try a different clip or a longer sample.",
		MsgToastMatch:      "Match found!",
	}
}

// Default returns a Config with every field populated.
func Default() *Config {
	return &Config{
		API: API{
			BaseURL:        "http://localhost:5000",
			HealthPath:     "/api/v1/health",
			IdentifyPath:   "/api/v1/identify",
			IdentifyURLRef: "/api/v1/identify/url",
			MediaPath:      "/api/v1/media",
			TimeoutMS:      30000,
		},
		Limits: Limits{
			MaxUploadBytes: 100 << 20,
			AllowedTypes: []string{
				"video/mp4",
				"video/quicktime",
				"video/x-msvideo",
				"image/jpeg",
				"image/png",
				"image/jpg",
			},
		},
		Toasts:   Toasts{DisplayMS: 3000, FadeMS: 300},
		Features: Features{Capture: true, Upload: true, History: true, Share: false},
		History:  History{Path: "./visrec_history.db"},
		Serve:    Serve{Bind: ":8080"},
		Log:      Log{Level: "info", Format: "console"},
		Messages: defaultMessages(),
	}
}

// Load reads the TOML file at path over the defaults, applies environment
// overrides and validates the result. An empty path loads defaults only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)

	// File or env may have cleared catalog entries; defaults backfill.
	defaults := defaultMessages()
	if cfg.Messages == nil {
		cfg.Messages = defaults
	} else {
		for k, v := range defaults {
			if cfg.Messages[k] == "" {
				cfg.Messages[k] = v
			}
		}
	}

	for i, t := range cfg.Limits.AllowedTypes {
		cfg.Limits.AllowedTypes[i] = strings.ToLower(strings.TrimSpace(t))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("VISREC_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("VISREC_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			cfg.API.TimeoutMS = ms
		}
	}
	if v := os.Getenv("VISREC_HISTORY_PATH"); v != "" {
		cfg.History.Path = v
	}
}

// Validate rejects configurations no component could run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("config: api.base_url is required")
	}
	if c.API.TimeoutMS <= 0 {
		return fmt.Errorf("config: api.timeout_ms must be positive")
	}
	if c.Limits.MaxUploadBytes <= 0 {
		return fmt.Errorf("config: limits.max_upload_bytes must be positive")
	}
	if len(c.Limits.AllowedTypes) == 0 {
		return fmt.Errorf("config: limits.allowed_types must not be empty")
	}
	if c.Toasts.DisplayMS <= 0 || c.Toasts.FadeMS < 0 {
		return fmt.Errorf("config: invalid toast durations")
	}
	return nil
}

// RequestTimeout returns the per-request deadline.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.API.TimeoutMS) * time.Millisecond
}

// ToastDisplay returns how long a toast stays fully visible.
func (c *Config) ToastDisplay() time.Duration {
	return time.Duration(c.Toasts.DisplayMS) * time.Millisecond
}

// ToastFade returns the fade-out window after the display period.
func (c *Config) ToastFade() time.Duration {
	return time.Duration(c.Toasts.FadeMS) * time.Millisecond
}

// AllowsType reports whether a declared content type may be uploaded.
func (c *Config) AllowsType(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	for _, allowed := range c.Limits.AllowedTypes {
		if ct == allowed {
			return true
		}
	}
	return false
}

// Endpoint joins the base URL with a configured path.
func (c *Config) Endpoint(path string) string {
	return strings.TrimRight(c.API.BaseURL, "/") + path
}

// Message looks up a catalog entry, falling back to the key itself so a
// missing entry is visible rather than blank.
func (c *Config) Message(key string) string {
	if msg, ok := c.Messages[key]; ok && msg != "" {
		return msg
	}
	return key
}
