package wsl

import (
	"errors"
	"strings"
	"testing"
)

func stubWSLPath(t *testing.T, fn func(name string, args ...string) (string, error)) {
	t.Helper()
	original := commandRunner
	ClearPathCache()
	commandRunner = fn
	t.Cleanup(func() {
		commandRunner = original
		ClearPathCache()
	})
}

func TestToWindowsPath(t *testing.T) {
	stubWSLPath(t, func(name string, args ...string) (string, error) {
		if name != "wslpath" || len(args) != 2 || args[0] != "-w" {
			t.Fatalf("unexpected invocation %s %v", name, args)
		}
		p := strings.TrimPrefix(args[1], "/mnt/c")
		return `C:` + strings.ReplaceAll(p, "/", `\`), nil
	})

	got, err := ToWindowsPath("/mnt/c/Users/test/run.ps1")
	if err != nil {
		t.Fatal(err)
	}
	if want := `C:\Users\test\run.ps1`; got != want {
		t.Errorf("ToWindowsPath = %q, want %q", got, want)
	}
}

func TestToWindowsPathEmpty(t *testing.T) {
	if _, err := ToWindowsPath(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestToWindowsPathError(t *testing.T) {
	stubWSLPath(t, func(string, ...string) (string, error) {
		return "", errors.New("wslpath: not found")
	})
	if _, err := ToWindowsPath("/home/user/a.ps1"); err == nil {
		t.Error("expected error when wslpath fails")
	}
}

func TestToWindowsPathCaching(t *testing.T) {
	calls := 0
	stubWSLPath(t, func(string, ...string) (string, error) {
		calls++
		return `C:\x`, nil
	})

	_, _ = ToWindowsPath("/mnt/c/x")
	_, _ = ToWindowsPath("/mnt/c/x")
	if calls != 1 {
		t.Errorf("wslpath invoked %d times, want 1", calls)
	}
}
