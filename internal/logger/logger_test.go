package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"bogus": slog.LevelWarn,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitWritesToFileAndExtra(t *testing.T) {
	original := Log
	t.Cleanup(func() { Log = original })

	path := filepath.Join(t.TempDir(), "diag.log")
	var extra bytes.Buffer
	closer, err := Init("info", path, &extra)
	if err != nil {
		t.Fatal(err)
	}

	Debug("hidden")
	Info("config loaded", "path", "/x/config.json")
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "config loaded") {
		t.Errorf("log file = %q", data)
	}
	if strings.Contains(string(data), "hidden") {
		t.Error("debug message written at info level")
	}
	if !strings.Contains(extra.String(), "path=/x/config.json") {
		t.Errorf("extra writer = %q", extra.String())
	}
}
