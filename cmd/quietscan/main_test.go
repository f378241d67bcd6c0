package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HendryAvila/quietscan/internal/archive"
	"github.com/HendryAvila/quietscan/internal/catalog"
	"github.com/HendryAvila/quietscan/internal/ledger"
	"github.com/HendryAvila/quietscan/internal/scoring"
	"github.com/HendryAvila/quietscan/internal/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI against an isolated home directory.
func execute(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", home)
	t.Setenv("QUIETSCAN_LOG_LEVEL", "error")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "quietscan v")
}

func TestCatalog_Default(t *testing.T) {
	out, err := execute(t, t.TempDir(), "catalog", "--questions")
	require.NoError(t, err)
	for _, p := range catalog.Default().Ordered() {
		assert.Contains(t, out, p.Name)
	}
	assert.Contains(t, out, "P1")
	assert.Contains(t, out, "Global Brand Health")
}

func TestCatalog_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pillars: [\n"), 0o644))

	_, err := execute(t, t.TempDir(), "catalog", "--file", path)
	assert.Error(t, err)
}

func TestReport_ListAndShow(t *testing.T) {
	home := t.TempDir()

	out, err := execute(t, home, "report", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No reports archived yet.")

	cat := catalog.Default()
	l := ledger.New()
	for _, q := range cat.Pillar(catalog.PillarPresence).Questions {
		l.Set(ledger.RoleOwner, catalog.PillarPresence, q.ID, catalog.AnswerYes)
	}
	payload := summary.Export(summary.Input{
		Engine:     scoring.NewEngine(cat, 4),
		Ledger:     l,
		Active:     []catalog.PillarKey{catalog.PillarPresence},
		Roles:      ledger.Sequence{ledger.RoleOwner},
		InitialWho: "my-brand",
		Scope:      "custom",
	})
	store, err := archive.New(archive.Config{DataDir: filepath.Join(home, ".quietscan")})
	require.NoError(t, err)
	id, err := store.Save(payload)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	out, err = execute(t, home, "report", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "4.00 / 4")

	out, err = execute(t, home, "report", "show", id)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "# Completed"), out)

	_, err = execute(t, home, "report", "show", "missing")
	assert.Error(t, err)
}
