package config

import (
	"encoding/json"
	"strings"
	"time"
)

// HistoryLimit caps the number of remembered scripts.
const HistoryLimit = 40

// HistoryTimestampLayout formats HistoryEntry.Timestamp.
const HistoryTimestampLayout = "2006-01-02 15:04:05"

// HistoryEntry records a script that was opened, with the arguments that
// were last used for it.
type HistoryEntry struct {
	Path      string `json:"path" yaml:"path"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Arguments string `json:"arguments" yaml:"arguments"`
}

// History is ordered most-recent-first.
type History []HistoryEntry

// historyNow is the clock used when normalizing legacy entries.
var historyNow = time.Now

// UnmarshalJSON accepts both entry objects and legacy bare path strings.
// Entries without a path are dropped; missing timestamps are filled in.
func (h *History) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	stamp := historyNow().Format(HistoryTimestampLayout)
	out := make(History, 0, len(raw))
	for _, item := range raw {
		var path string
		if err := json.Unmarshal(item, &path); err == nil {
			if path != "" {
				out = append(out, HistoryEntry{Path: path, Timestamp: stamp})
			}
			continue
		}

		var obj struct {
			Path      string  `json:"path"`
			Timestamp *string `json:"timestamp"`
			Arguments string  `json:"arguments"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			// Anything else (numbers, nested arrays) is not an entry.
			continue
		}
		if obj.Path == "" {
			continue
		}
		entry := HistoryEntry{Path: obj.Path, Timestamp: stamp, Arguments: obj.Arguments}
		if obj.Timestamp != nil {
			entry.Timestamp = *obj.Timestamp
		}
		out = append(out, entry)
	}
	*h = out
	return nil
}

// RememberScript moves path to the front of the history, recording args.
// Re-adding an existing path replaces its entry instead of duplicating it.
func (c *Config) RememberScript(path, args string) {
	entry := HistoryEntry{
		Path:      path,
		Timestamp: c.clock().Format(HistoryTimestampLayout),
		Arguments: args,
	}
	next := make(History, 0, len(c.History)+1)
	next = append(next, entry)
	for _, e := range c.History {
		if e.Path != path {
			next = append(next, e)
		}
	}
	if len(next) > HistoryLimit {
		next = next[:HistoryLimit]
	}
	c.History = next
}

// RemoveHistory drops the entry for path. It reports whether one existed.
func (c *Config) RemoveHistory(path string) bool {
	next := c.History[:0:0]
	removed := false
	for _, e := range c.History {
		if e.Path == path {
			removed = true
			continue
		}
		next = append(next, e)
	}
	c.History = next
	return removed
}

// ClearHistory forgets every entry.
func (c *Config) ClearHistory() {
	c.History = History{}
}

// FilterHistory returns the entries whose path or timestamp contains query,
// case-insensitively. An empty query matches everything.
func (c *Config) FilterHistory(query string) History {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append(History(nil), c.History...)
	}
	var out History
	for _, e := range c.History {
		if strings.Contains(strings.ToLower(e.Path), q) || strings.Contains(strings.ToLower(e.Timestamp), q) {
			out = append(out, e)
		}
	}
	return out
}

// HistoryEntryFor returns the entry for path, if any.
func (c *Config) HistoryEntryFor(path string) (HistoryEntry, bool) {
	for _, e := range c.History {
		if e.Path == path {
			return e, true
		}
	}
	return HistoryEntry{}, false
}
