package logs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestClassifyText(t *testing.T) {
	tests := []struct {
		text string
		want Category
	}{
		{"Traceback (most recent call last):", CategoryError},
		{"ValueError: bad", CategoryError},
		{"Unhandled EXCEPTION", CategoryError},
		{"warning: deprecated; but success", CategoryWarning},
		{"error then warning", CategoryError},
		{"Build SUCCESSFUL", CategorySuccess},
		{"Done.", CategorySuccess},
		{"hello", CategoryOther},
		{"", CategoryOther},
	}
	for _, tt := range tests {
		if got := ClassifyText(tt.text); got != tt.want {
			t.Errorf("ClassifyText(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestClassifyReadsOnlyTheHead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "long.log")
	content := strings.Repeat("x", classifyHeadSize) + "error"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Classify(path); got != CategoryOther {
		t.Errorf("Classify = %s, keyword beyond the head should be ignored", got)
	}
	if got := Classify(filepath.Join(dir, "missing.log")); got != CategoryOther {
		t.Errorf("Classify(missing) = %s", got)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
		ok   bool
	}{
		{"", "", true},
		{"All", "", true},
		{"ERROR", CategoryError, true},
		{"other", CategoryOther, true},
		{"fatal", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseCategory(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseCategory(%q) = %q, %v", tt.in, got, ok)
		}
	}
}
