package server

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/HendryAvila/quietscan/internal/archive"
	"github.com/HendryAvila/quietscan/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap/zaptest"
)

func testDeps(t *testing.T) Deps {
	t.Helper()
	cfg := config.Defaults()
	cfg.DataDir = t.TempDir()
	cfg.AutoAdvanceDelay = 10 * time.Millisecond
	return Deps{
		Config:   cfg,
		Logger:   zaptest.NewLogger(t),
		Registry: prometheus.NewRegistry(),
	}
}

func TestNew_RegistersEveryTool(t *testing.T) {
	deps := testDeps(t)
	s, cleanup, err := New(deps)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer cleanup()

	tools := s.ListTools()
	for _, name := range []string{
		"qps_setup", "qps_start", "qps_answer", "qps_navigate", "qps_role",
		"qps_summary", "qps_export", "qps_status", "qps_restart", "qps_reports",
	} {
		if _, ok := tools[name]; !ok {
			t.Errorf("tool %s not registered", name)
		}
	}
	if len(tools) != 10 {
		t.Errorf("tools = %d, want 10", len(tools))
	}

	if _, err := os.Stat(filepath.Join(deps.Config.DataDir, archive.DBFile)); err != nil {
		t.Errorf("archive database should be created: %v", err)
	}
}

func TestNew_BadCatalogFile(t *testing.T) {
	deps := testDeps(t)
	deps.Config.CatalogFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, cleanup, err := New(deps)
	if err == nil {
		t.Fatal("expected error for missing catalog")
	}
	cleanup()
}

func TestNew_ArchiveFailureIsNotFatal(t *testing.T) {
	deps := testDeps(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	deps.Config.DataDir = filepath.Join(blocker, "data")

	s, cleanup, err := New(deps)
	if err != nil {
		t.Fatalf("archive failure should not fail startup: %v", err)
	}
	defer cleanup()
	if s == nil {
		t.Fatal("server should be created")
	}
}

func TestServerInstructions(t *testing.T) {
	text := serverInstructions()
	for _, want := range []string{"qps_answer", "NEVER answer on the user's behalf", "qps_export"} {
		if !strings.Contains(text, want) {
			t.Errorf("instructions missing %q", want)
		}
	}
}
