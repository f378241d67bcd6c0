package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points HOME at a temp dir so the user's real config is never read.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// --- Load ---

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DataDir != filepath.Join(home, ".quietscan") {
		t.Errorf("DataDir = %s", cfg.DataDir)
	}
	if cfg.AutoAdvanceDelay != 600*time.Millisecond {
		t.Errorf("AutoAdvanceDelay = %s, want 600ms", cfg.AutoAdvanceDelay)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
	if cfg.ScoreCacheSize != 128 {
		t.Errorf("ScoreCacheSize = %d, want 128", cfg.ScoreCacheSize)
	}
	if cfg.MetricsAddr != "" || cfg.CatalogFile != "" {
		t.Errorf("optional settings should be empty: %+v", cfg)
	}
}

func TestLoad_DefaultFileIsRead(t *testing.T) {
	home := isolate(t)
	writeFile(t, home, ".quietscan/config.yaml", "log_level: debug\nauto_advance_delay: 250ms\n")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
	if cfg.AutoAdvanceDelay != 250*time.Millisecond {
		t.Errorf("AutoAdvanceDelay = %s, want 250ms", cfg.AutoAdvanceDelay)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "qs.yaml", strings.Join([]string{
		"data_dir: " + filepath.Join(dir, "data"),
		"catalog_file: ~/custom.yaml",
		"metrics_addr: 127.0.0.1:9464",
		"score_cache_size: 32",
	}, "\n"))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DataDir != filepath.Join(dir, "data") {
		t.Errorf("DataDir = %s", cfg.DataDir)
	}
	if !strings.HasSuffix(cfg.CatalogFile, "custom.yaml") || strings.HasPrefix(cfg.CatalogFile, "~") {
		t.Errorf("CatalogFile should be home-expanded, got %s", cfg.CatalogFile)
	}
	if cfg.MetricsAddr != "127.0.0.1:9464" {
		t.Errorf("MetricsAddr = %s", cfg.MetricsAddr)
	}
	if cfg.ScoreCacheSize != 32 {
		t.Errorf("ScoreCacheSize = %d, want 32", cfg.ScoreCacheSize)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "qs.yaml", "log_level: debug\n")
	t.Setenv("QUIETSCAN_LOG_LEVEL", "warn")
	t.Setenv("QUIETSCAN_SCORE_CACHE_SIZE", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %s, want warn", cfg.LogLevel)
	}
	if cfg.ScoreCacheSize != 7 {
		t.Errorf("ScoreCacheSize = %d, want 7", cfg.ScoreCacheSize)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit file")
	}
}

// --- Validate ---

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, false},
		{"zero delay", func(c *Config) { c.AutoAdvanceDelay = 0 }, false},
		{"zero cache", func(c *Config) { c.ScoreCacheSize = 0 }, false},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, false},
		{"debug level", func(c *Config) { c.LogLevel = "debug" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected error")
			}
		})
	}
}
