package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.RequestTimeout() != 30*time.Second {
		t.Errorf("expected 30s timeout, got %s", cfg.RequestTimeout())
	}
	if cfg.Limits.MaxUploadBytes != 100<<20 {
		t.Errorf("expected 100 MiB limit, got %d", cfg.Limits.MaxUploadBytes)
	}
	if len(cfg.Limits.AllowedTypes) != 6 {
		t.Errorf("expected 6 allowed types, got %d", len(cfg.Limits.AllowedTypes))
	}
}

func TestLoadFile(t *testing.T) {
	content := `
[api]
base_url = "https://visrec.example.com"
timeout_ms = 5000

[limits]
max_upload_bytes = 1048576
allowed_types = ["video/mp4", "IMAGE/PNG"]

[messages]
error_no_match = "Nothing matched."
`
	path := filepath.Join(t.TempDir(), "visrec.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("VISREC_API_URL", "")
	t.Setenv("VISREC_TIMEOUT_MS", "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.API.BaseURL != "https://visrec.example.com" {
		t.Errorf("base URL not loaded: %q", cfg.API.BaseURL)
	}
	if cfg.RequestTimeout() != 5*time.Second {
		t.Errorf("timeout not loaded: %s", cfg.RequestTimeout())
	}
	if !cfg.AllowsType("image/png") {
		t.Error("allowed types should be normalized to lower case")
	}
	if cfg.AllowsType("video/quicktime") {
		t.Error("file-provided type list should replace the default")
	}
	if got := cfg.Message(MsgErrNoMatch); got != "Nothing matched." {
		t.Errorf("catalog override not applied: %q", got)
	}
	// Untouched catalog entries keep their defaults.
	if got := cfg.Message(MsgErrNetwork); got == "" || got == MsgErrNetwork {
		t.Errorf("default catalog entry lost: %q", got)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("VISREC_API_URL", "http://10.0.0.5:5000")
	t.Setenv("VISREC_TIMEOUT_MS", "1500")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://10.0.0.5:5000" {
		t.Errorf("env base URL not applied: %q", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutMS != 1500 {
		t.Errorf("env timeout not applied: %d", cfg.API.TimeoutMS)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.API.BaseURL = " " }},
		{"zero timeout", func(c *Config) { c.API.TimeoutMS = 0 }},
		{"zero max size", func(c *Config) { c.Limits.MaxUploadBytes = 0 }},
		{"no allowed types", func(c *Config) { c.Limits.AllowedTypes = nil }},
		{"zero toast display", func(c *Config) { c.Toasts.DisplayMS = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestEndpoint(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = "http://host:5000/"

	if got := cfg.Endpoint(cfg.API.IdentifyPath); got != "http://host:5000/api/v1/identify" {
		t.Errorf("unexpected endpoint: %q", got)
	}
}

func TestMessageFallback(t *testing.T) {
	cfg := Default()
	if got := cfg.Message("no_such_key"); got != "no_such_key" {
		t.Errorf("expected key fallback, got %q", got)
	}
}
