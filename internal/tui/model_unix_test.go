//go:build !windows

package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sibikrish3000/scriptrun/internal/config"
)

func TestHeaderShowsStopping(t *testing.T) {
	m, ctl, dir := newTestModel(t)
	path := filepath.Join(dir, "wait.sh")
	if err := os.WriteFile(path, []byte("sleep 30\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := ctl.Store().Config()
	cfg.UpsertProfile(config.InterpreterProfile{Name: "sh", Command: "/bin/sh"})
	cfg.SetActiveProfile("sh")
	ctl.LoadScript(path)
	defer ctl.Shutdown()

	m = press(t, m, key(tea.KeyCtrlR))
	if !strings.Contains(m.header(), "Running") {
		t.Fatalf("header = %q", m.header())
	}
	m = press(t, m, key(tea.KeyCtrlX))
	if !strings.Contains(m.header(), "Stopping") {
		t.Errorf("header after ctrl+x = %q", m.header())
	}
}
