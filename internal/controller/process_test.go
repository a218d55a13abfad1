//go:build !windows

package controller

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sibikrish3000/scriptrun/internal/config"
	"github.com/sibikrish3000/scriptrun/internal/logs"
	"github.com/sibikrish3000/scriptrun/pkg/runner"
)

// newShellController drives a real runner with /bin/sh as the interpreter.
func newShellController(t *testing.T) (*Controller, *fakeDisplay, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.UpsertProfile(config.InterpreterProfile{Name: "sh", Command: "/bin/sh"})
	cfg.SetActiveProfile("sh")
	display := &fakeDisplay{}
	c := New(config.NewStore(filepath.Join(dir, "config.json"), cfg), display, Options{
		Runner: runner.NewProcess(),
		Logs:   logs.NewLibrary(filepath.Join(dir, "logs")),
	})
	return c, display, dir
}

// drain feeds events back into the controller until it is idle.
func drain(t *testing.T, c *Controller) {
	t.Helper()
	timeout := time.After(10 * time.Second)
	for c.Pending() {
		select {
		case ev := <-c.Events():
			c.HandleEvent(ev)
		case <-timeout:
			t.Fatalf("timed out; transcript: %q", c.Transcript())
		}
	}
}

func TestRunThenStopEndsIdle(t *testing.T) {
	for _, args := range []string{"", "--flag value", `"quoted arg" 'single'`} {
		t.Run(args, func(t *testing.T) {
			c, display, dir := newShellController(t)
			path := filepath.Join(dir, "long.sh")
			if err := os.WriteFile(path, []byte("sleep 30\n"), 0o644); err != nil {
				t.Fatal(err)
			}
			c.LoadScript(path)
			c.SetArguments(args)

			if err := c.Run(); err != nil {
				t.Fatal(err)
			}
			if err := c.Stop(); err != nil {
				t.Fatal(err)
			}
			drain(t, c)

			if c.State() != Idle {
				t.Errorf("state = %v", c.State())
			}
			if !strings.Contains(c.Transcript(), "> Script stopped by user (exit code 9).") {
				t.Errorf("transcript = %q", c.Transcript())
			}
			if n := len(display.running); n != 2 || display.running[n-1] {
				t.Errorf("SetRunning calls = %v", display.running)
			}
		})
	}
}

func TestRunStreamsOutput(t *testing.T) {
	c, _, dir := newShellController(t)
	path := filepath.Join(dir, "hello.sh")
	if err := os.WriteFile(path, []byte("echo \"hello $1\"\necho oops >&2\nexit 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c.LoadScript(path)
	c.SetArguments("world")
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	drain(t, c)

	out := c.Transcript()
	for _, want := range []string{"] hello world\n", "] oops\n", "> Script finished with exit code 4."} {
		if !strings.Contains(out, want) {
			t.Errorf("transcript %q missing %q", out, want)
		}
	}

	// The same controller runs again after the first run ended.
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	drain(t, c)
	if strings.Count(c.Transcript(), "> Running hello.sh") != 1 {
		t.Errorf("second run did not clear the console: %q", c.Transcript())
	}
}

func TestRunMissingInterpreter(t *testing.T) {
	c, _, dir := newShellController(t)
	c.Store().Config().UpsertProfile(config.InterpreterProfile{Name: "sh", Command: "/nonexistent/shell"})
	path := filepath.Join(dir, "x.sh")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	c.LoadScript(path)
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	drain(t, c)
	if !strings.Contains(c.Transcript(), "> Process error: ") {
		t.Errorf("transcript = %q", c.Transcript())
	}
}

func TestArgumentParsingError(t *testing.T) {
	c, _, dir := newShellController(t)
	path := filepath.Join(dir, "x.sh")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	c.LoadScript(path)
	c.SetArguments(`--name "unterminated`)
	if err := c.Run(); err == nil {
		t.Fatal("expected parsing error")
	}
	if !strings.Contains(c.Transcript(), "> Argument parsing error: ") || c.State() != Idle {
		t.Errorf("transcript = %q, state %v", c.Transcript(), c.State())
	}
}
