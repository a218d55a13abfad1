//go:build !windows

package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sibikrish3000/scriptrun/internal/config"
)

func TestHeadlessRun(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, dir, "profile", "add", "sh", "/bin/sh"); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, dir, "profile", "use", "sh"); err != nil {
		t.Fatal(err)
	}
	script := filepath.Join(dir, "job.sh")
	if err := os.WriteFile(script, []byte("echo \"args: $*\"\nexit 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, dir, "--headless", "--args", "--mode 'fast path'", script)
	var exit exitCodeError
	if !errors.As(err, &exit) || exit.code != 3 {
		t.Fatalf("err = %v, want exit status 3", err)
	}
	for _, want := range []string{"> Running job.sh", "args: --mode fast path\n", "> Script finished with exit code 3."} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}

	cfg := config.Load(filepath.Join(dir, "config.json"))
	if len(cfg.History) != 1 || cfg.History[0].Arguments != "--mode 'fast path'" {
		t.Errorf("history = %+v", cfg.History)
	}

	// Without --args the remembered arguments are reused.
	out, _ = execute(t, dir, "--headless", script)
	if !strings.Contains(out, "args: --mode fast path\n") {
		t.Errorf("second run output = %q", out)
	}

	out, err = execute(t, dir, "history", "run", "1", "--headless")
	if !errors.As(err, &exit) || exit.code != 3 {
		t.Errorf("history run err = %v, want exit status 3", err)
	}
	if !strings.Contains(out, "args: --mode fast path\n") {
		t.Errorf("history run output = %q", out)
	}
	if _, err := execute(t, dir, "history", "run", "7"); err == nil {
		t.Error("running a missing history entry should fail")
	}
}

func TestPrintCommand(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, dir, "profile", "add", "sh", "/bin/sh", "-e"); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, dir, "profile", "use", "sh"); err != nil {
		t.Fatal(err)
	}
	script := filepath.Join(dir, "job.sh")
	if err := os.WriteFile(script, []byte("exit 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, dir, "--print-command", "--args", "--mode 'fast path'", script)
	if err != nil {
		t.Fatal(err)
	}
	if want := "/bin/sh -e " + script + " --mode 'fast path'\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	// Remembered arguments are used when --args is absent.
	out, _ = execute(t, dir, "--print-command", script)
	if !strings.HasSuffix(out, " --mode 'fast path'\n") {
		t.Errorf("output = %q", out)
	}

	if _, err := execute(t, dir, "--print-command", filepath.Join(dir, "missing.sh")); err == nil {
		t.Error("expected an error for a missing script")
	}
}

func TestHeadlessMissingScript(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "nope.sh")
	out, err := execute(t, dir, "--headless", missing)
	var exit exitCodeError
	if !errors.As(err, &exit) || exit.code != 1 {
		t.Errorf("err = %v, want exit status 1", err)
	}
	if !strings.Contains(out, "> Auto-run skipped: not a file -> "+missing) {
		t.Errorf("output = %q", out)
	}
}
