package config

import (
	"fmt"
	"reflect"
	"testing"
)

func TestProfiles(t *testing.T) {
	cfg := Default()
	cfg.UpsertProfile(InterpreterProfile{Name: "py311", Command: "/opt/py311/bin/python"})
	cfg.UpsertProfile(InterpreterProfile{Name: "node20", Command: "node", Arguments: []string{"--trace-warnings"}})
	cfg.UpsertProfile(InterpreterProfile{Name: "py311", Command: "/opt/py311/bin/python3", Arguments: []string{"-u"}})

	if len(cfg.InterpreterProfiles) != 2 {
		t.Fatalf("profiles = %+v", cfg.InterpreterProfiles)
	}
	p, ok := cfg.Profile("py311")
	if !ok || p.Command != "/opt/py311/bin/python3" || !reflect.DeepEqual(p.Arguments, []string{"-u"}) {
		t.Errorf("py311 = %+v, %v (last write should win)", p, ok)
	}

	if _, ok := cfg.SelectedProfile(); ok {
		t.Error("no profile should be selected by default")
	}
	cfg.SetActiveProfile("node20")
	if sel, ok := cfg.SelectedProfile(); !ok || sel.Command != "node" {
		t.Errorf("SelectedProfile = %+v, %v", sel, ok)
	}

	cfg.SetActiveProfile(DefaultProfileName)
	if cfg.ActiveProfile != nil {
		t.Error("selecting Default should clear the active profile")
	}

	cfg.SetActiveProfile("py311")
	if !cfg.DeleteProfile("py311") {
		t.Error("DeleteProfile(py311) = false")
	}
	if cfg.ActiveProfile != nil {
		t.Error("deleting the active profile should clear the selection")
	}
	if cfg.DeleteProfile("py311") {
		t.Error("second delete reported success")
	}
}

func TestSelectedProfileWithoutCommand(t *testing.T) {
	cfg := Default()
	cfg.UpsertProfile(InterpreterProfile{Name: "empty"})
	cfg.SetActiveProfile("empty")
	if _, ok := cfg.SelectedProfile(); ok {
		t.Error("a profile with no command must not be used")
	}
	cfg.SetActiveProfile("ghost")
	if _, ok := cfg.SelectedProfile(); ok {
		t.Error("a missing profile must not be used")
	}
}

func TestUpsertProfileDefaultsName(t *testing.T) {
	cfg := Default()
	cfg.UpsertProfile(InterpreterProfile{Command: "bash"})
	if p := cfg.InterpreterProfiles[0]; p.Name != "Custom" || p.Arguments == nil {
		t.Errorf("profile = %+v", p)
	}
}

func TestRecordSuggestions(t *testing.T) {
	cfg := Default()
	if !cfg.RecordSuggestions("--input", "data.csv", "--summary", "data.csv", "") {
		t.Error("RecordSuggestions reported no change")
	}
	if !reflect.DeepEqual(cfg.ArgumentSuggestions, []string{"data.csv", "--summary"}) {
		t.Errorf("stored = %v", cfg.ArgumentSuggestions)
	}
	if cfg.RecordSuggestions("--help", "--summary") {
		t.Error("only known tokens should report no change")
	}

	bank := cfg.Suggestions()
	if bank[0] != "--help" || bank[len(bank)-1] != "--summary" {
		t.Errorf("bank = %v", bank)
	}
}

func TestRecordSuggestionsCap(t *testing.T) {
	cfg := Default()
	for i := 0; i < SuggestionLimit+7; i++ {
		cfg.RecordSuggestions(fmt.Sprintf("tok%d", i))
	}
	if len(cfg.ArgumentSuggestions) != SuggestionLimit {
		t.Fatalf("len = %d, want %d", len(cfg.ArgumentSuggestions), SuggestionLimit)
	}
	if cfg.ArgumentSuggestions[0] != "tok7" {
		t.Errorf("oldest kept = %q, want tok7", cfg.ArgumentSuggestions[0])
	}
}

func TestComplete(t *testing.T) {
	bank := []string{"--help", "--input", "--input-format", "data.csv"}
	tests := []struct {
		text string
		want string
	}{
		{"--in", "--input"},
		{"run --he", "run --help"},
		{"--input", "--input-format"},
		{"da", "data.csv"},
		{"--zzz", "--zzz"},
		{"--input ", "--input "},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Complete(tt.text, bank); got != tt.want {
				t.Errorf("Complete(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
