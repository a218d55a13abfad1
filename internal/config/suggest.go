package config

import (
	"slices"
	"strings"
)

// SuggestionLimit caps the stored, user-derived argument suggestions.
const SuggestionLimit = 60

// CommonArguments are always offered for completion and never stored.
var CommonArguments = []string{
	"--help",
	"--verbose",
	"--quiet",
	"--log-level",
	"--config",
	"--dry-run",
	"--input",
	"--output",
	"--limit",
	"--env",
}

// Suggestions returns the completion bank: the built-in arguments followed
// by the stored ones, without duplicates.
func (c *Config) Suggestions() []string {
	bank := make([]string, 0, len(CommonArguments)+len(c.ArgumentSuggestions))
	seen := make(map[string]bool)
	for _, s := range slices.Concat(CommonArguments, c.ArgumentSuggestions) {
		if !seen[s] {
			seen[s] = true
			bank = append(bank, s)
		}
	}
	return bank
}

// RecordSuggestions adds unseen tokens to the bank, keeping only the newest
// SuggestionLimit stored entries. It reports whether the bank changed.
func (c *Config) RecordSuggestions(tokens ...string) bool {
	changed := false
	for _, tok := range tokens {
		if tok == "" || slices.Contains(CommonArguments, tok) || slices.Contains(c.ArgumentSuggestions, tok) {
			continue
		}
		c.ArgumentSuggestions = append(c.ArgumentSuggestions, tok)
		changed = true
	}
	if n := len(c.ArgumentSuggestions); n > SuggestionLimit {
		c.ArgumentSuggestions = slices.Clone(c.ArgumentSuggestions[n-SuggestionLimit:])
	}
	return changed
}

// Complete extends the last whitespace-separated token of text with the
// first bank entry it prefixes. Text is returned unchanged when nothing matches.
func Complete(text string, bank []string) string {
	if text == "" || strings.HasSuffix(text, " ") {
		return text
	}
	start := strings.LastIndexAny(text, " \t") + 1
	token := text[start:]
	for _, s := range bank {
		if len(s) > len(token) && strings.HasPrefix(s, token) {
			return text[:start] + s
		}
	}
	return text
}
